package protocol

import "time"

// Channel is the raw byte stream to the adapter. A serial port, a USB HID
// bridge or a network socket can all serve.
type Channel interface {
	// Send writes b completely.
	Send(b []byte) error

	// Recv reads up to len(b) bytes. It returns 0 and a nil error when no
	// data arrived within the channel's own poll interval.
	Recv(b []byte) (int, error)

	// Drain discards any input that has been received but not read.
	Drain() error
}

// Clock reports the current time. Tests substitute a fake to drive
// timeouts deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Logger is an optional logging interface. It matches the logger accepted by
// the icsp and programmer packages, so one adapter serves all of them.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Warn logs a warning with optional key-value pairs
	Warn(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
