package icsp

import "time"

// Config holds the port configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// ClockDelay is the adapter's clock delay parameter. Larger values
	// slow down the ICSP clock for long cables.
	ClockDelay byte

	// StrictFraming accepts only all-ones framing bits on 14-bit data
	// memory reads. By default all-zeros is accepted too, as later chips
	// clear those bits.
	StrictFraming bool

	// SettleTime is waited after the power-up sequence
	SettleTime time.Duration
}

// SlowClockDelay is the clock delay used by WithSlowClock.
const SlowClockDelay = 10

func defaultConfig() Config {
	return Config{
		SettleTime: 500 * time.Millisecond,
	}
}

// Option is a functional option for configuring the Port.
type Option func(*Config)

// WithLogger sets a logger for port diagnostics.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithSlowClock slows down the ICSP clock.
//
// Example:
//
//	port := icsp.NewPort(framer, icsp.WithSlowClock())
func WithSlowClock() Option {
	return func(c *Config) {
		c.ClockDelay = SlowClockDelay
	}
}

// WithClockDelay sets the adapter clock delay parameter directly.
func WithClockDelay(d byte) Option {
	return func(c *Config) {
		c.ClockDelay = d
	}
}

// WithStrictFraming enables or disables strict 14-bit framing checks.
func WithStrictFraming(strict bool) Option {
	return func(c *Config) {
		c.StrictFraming = strict
	}
}

// WithSettleTime sets the wait after powering up the target.
func WithSettleTime(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.SettleTime = d
		}
	}
}
