package programmer

// Config holds the programmer configuration.
type Config struct {
	// ProgressCallback is called during programming and reading (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// ReadBatch is the number of locations read per adapter round trip
	ReadBatch int

	// EEPROMPolls bounds the status polls while a PIC18 data EEPROM write
	// completes
	EEPROMPolls int
}

// DefaultReadBatch is the default number of reads per round trip.
const DefaultReadBatch = 10

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		ReadBatch:   DefaultReadBatch,
		EEPROMPolls: 1000,
	}
}

// Option is a functional option for configuring the Programmer.
type Option func(*Config)

// WithProgressCallback sets a callback function to track progress.
//
// Example:
//
//	prog := programmer.New(port,
//	    programmer.WithProgressCallback(func(p programmer.Progress) {
//	        fmt.Printf("%s %.1f%%\n", p.Phase, p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the programmer operations.
//
// Example:
//
//	prog := programmer.New(port, programmer.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithReadBatch sets how many locations are queued before their values are
// collected.
//
// Example:
//
//	prog := programmer.New(port, programmer.WithReadBatch(20))
func WithReadBatch(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.ReadBatch = n
		}
	}
}

// WithEEPROMPolls sets how many times the write-in-progress bit of a PIC18
// data EEPROM write is polled before giving up.
func WithEEPROMPolls(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.EEPROMPolls = n
		}
	}
}
