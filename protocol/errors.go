package protocol

import (
	"fmt"
	"time"

	"github.com/moffa90/go-picprog/picerr"
)

// StatusError is a non-OK status returned by the adapter for a command.
type StatusError struct {
	// Command is the first body byte of the request
	Command byte

	// Status is the status byte of the reply
	Status byte
}

func (e *StatusError) Error() string {
	if e.Status == StatusUnknownCmd {
		return fmt.Sprintf("command 0x%02X: %s", e.Command, statusName(e.Status))
	}
	return fmt.Sprintf("command 0x%02X failed: %s (0x%02X)", e.Command, statusName(e.Status), e.Status)
}

// Kind classifies the error.
func (e *StatusError) Kind() picerr.Kind { return picerr.Protocol }

// Retryable reports whether the status is one of the timeout variants.
func (e *StatusError) Retryable() bool {
	return e.Status == StatusCmdTimeout || e.Status == StatusBusyTimeout
}

// ChecksumError reports a frame whose checksum failed to verify. Peer is set
// when the adapter reported that it received our previous frame corrupted.
type ChecksumError struct {
	Peer bool
}

func (e *ChecksumError) Error() string {
	if e.Peer {
		return "previous packet sent with wrong checksum"
	}
	return "checksum error"
}

// Kind classifies the error.
func (e *ChecksumError) Kind() picerr.Kind { return picerr.Protocol }

// TimeoutError reports a receive that made no progress for Timeout.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout communicating with programmer after %s", e.Timeout)
}

// Kind classifies the error.
func (e *TimeoutError) Kind() picerr.Kind { return picerr.Protocol }

// statusName returns a human-readable name for a status code.
func statusName(code byte) string {
	switch code {
	case StatusOK:
		return "success"
	case StatusCmdTimeout:
		return "command timed out"
	case StatusBusyTimeout:
		return "sampling of the RDY/nBSY pin timed out"
	case StatusParamMissing:
		return "device parameters have not been set"
	case StatusFailed:
		return "command failed"
	case StatusUnknownCmd:
		return "unknown command"
	default:
		return fmt.Sprintf("unknown status 0x%02X", code)
	}
}
