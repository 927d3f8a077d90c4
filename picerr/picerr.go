// Package picerr defines the error categories shared by every layer of the
// programmer.
//
// Each package returns its own typed errors. A typed error reports its
// category through a Kind method, and KindOf walks a wrapped error chain to
// find the first one that does:
//
//	if picerr.KindOf(err) == picerr.Verification {
//	    // chip content does not match the image
//	}
package picerr

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// Internal is an unreachable invariant violation, and the default for
	// unclassified errors.
	Internal Kind = iota

	// IO is a file or channel fault.
	IO

	// DataFormat is a malformed hex line, bad checksum, unknown record or
	// length mismatch.
	DataFormat

	// AddressRange is an address outside every known region of the device.
	AddressRange

	// Protocol is a transport desync, checksum failure, timeout or bad status.
	Protocol

	// DeviceFault is a missing chip or a failed framing sanity check.
	DeviceFault

	// Verification means a programmed value did not read back.
	Verification

	// Usage is an unknown device name or missing option.
	Usage

	// Cancelled means the caller cancelled the operation.
	Cancelled
)

var kindNames = map[Kind]string{
	Internal:     "internal",
	IO:           "i/o",
	DataFormat:   "data format",
	AddressRange: "address range",
	Protocol:     "protocol",
	DeviceFault:  "device fault",
	Verification: "verification",
	Usage:        "usage",
	Cancelled:    "cancelled",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a generic classified error for places that have no dedicated type.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a classified error. A nil err yields nil.
func E(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds a classified error from a format string.
func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

type kinder interface {
	Kind() Kind
}

// KindOf returns the category of err. Context cancellation maps to
// Cancelled; errors that carry no category are Internal.
func KindOf(err error) Kind {
	if err == nil {
		return Internal
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Cancelled
	}
	return Internal
}

// Is reports whether err belongs to kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
