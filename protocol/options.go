package protocol

import "time"

// Config holds the framer configuration.
type Config struct {
	// Timeout bounds a receive that makes no forward progress
	Timeout time.Duration

	// Retries is the number of retries after the first attempt, used by
	// both GetSync and Command
	Retries int

	// Logger is used for logging operations (optional)
	Logger Logger

	// Clock supplies the time for timeouts
	Clock Clock
}

func defaultConfig() Config {
	return Config{
		Timeout: DefaultTimeout,
		Retries: DefaultRetries,
		Clock:   systemClock{},
	}
}

// Option is a functional option for configuring the Framer.
type Option func(*Config)

// WithTimeout sets the receive timeout.
//
// Example:
//
//	f := protocol.NewFramer(ch, protocol.WithTimeout(5*time.Second))
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithRetries sets the number of retries after the first attempt.
func WithRetries(retries int) Option {
	return func(c *Config) {
		if retries >= 0 {
			c.Retries = retries
		}
	}
}

// WithLogger sets a logger for framer diagnostics.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(c *Config) {
		if clock != nil {
			c.Clock = clock
		}
	}
}
