package programmer

import "time"

// Phase names a stage of a programming or read session.
type Phase string

// Phases reported through Progress.
const (
	PhaseIdentify    Phase = "identifying"
	PhaseCalibration Phase = "preserving calibration"
	PhaseErase       Phase = "erasing"
	PhaseProgram     Phase = "program memory"
	PhaseData        Phase = "data memory"
	PhaseID          Phase = "id words"
	PhaseFuses       Phase = "fuses"
	PhaseComplete    Phase = "complete"
)

// Progress contains information about the session progress.
// Passed to ProgressCallback during Program and Read.
type Progress struct {
	// Phase is the current stage
	Phase Phase

	// Current is the number of locations of the stage handled so far
	Current int

	// Total is the number of locations in the stage
	Total int

	// Percentage is the completion of the stage (0.0 to 100.0)
	Percentage float64

	// Written is the number of locations written in the session so far
	Written int

	// ElapsedTime is the time elapsed since the session started
	ElapsedTime time.Duration
}

// ProgressCallback is called periodically to report progress.
// Implementations should return quickly to avoid stalling the session.
//
// Example:
//
//	prog := programmer.New(port,
//	    programmer.WithProgressCallback(func(p programmer.Progress) {
//	        fmt.Printf("[%s] %d/%d\n", p.Phase, p.Current, p.Total)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the programmer.
// This allows integration with any logging framework.
//
// Warn carries the conditions a session tolerates: calibration values from
// the input file that were ignored, configuration words that did not verify
// and skipped memories.
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
