package hexfile

import (
	"fmt"
	"strings"

	"github.com/moffa90/go-picprog/picerr"
)

// Format is an Intel HEX sub-format.
type Format int

const (
	// FormatAuto detects the format on load and picks the family default on
	// save.
	FormatAuto Format = iota

	// IHX8M carries bytes with 16-bit addresses; 12/14-bit words are stored
	// little-endian at twice their word address.
	IHX8M

	// IHX16 carries one word per four hex digits at its word address.
	IHX16

	// IHX32 is IHX8M plus extended linear address records.
	IHX32
)

func (f Format) String() string {
	switch f {
	case IHX8M:
		return "ihx8m"
	case IHX16:
		return "ihx16"
	case IHX32:
		return "ihx32"
	default:
		return "auto"
	}
}

// ParseFormat converts a format name such as "ihx32" into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "ihx8m", "inhx8m":
		return IHX8M, nil
	case "ihx16", "inhx16":
		return IHX16, nil
	case "ihx32", "inhx32":
		return IHX32, nil
	default:
		return FormatAuto, picerr.Errorf(picerr.Usage, "unknown hex format %q", s)
	}
}

// Record line constants.
const (
	// EOFRecord terminates a hex file
	EOFRecord = ":00000001FF"

	// extPrefix starts an extended linear address record
	extPrefix = ":02000004"

	// extRecordLength is the length of an extended address record line
	extRecordLength = 15

	// minRecordLength is ':' + count(2) + address(4) + type(2) + checksum(2) + one data byte
	minRecordLength = 13

	// recordOverhead is the number of characters of a record besides its data
	recordOverhead = 11
)

// LineError reports a malformed or rejected line of a hex file.
type LineError struct {
	// Line is the 1-based line number
	Line int

	// Class is the failure category
	Class picerr.Kind

	Err error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Kind returns the failure category.
func (e *LineError) Kind() picerr.Kind { return e.Class }

func lineErrorf(line int, kind picerr.Kind, format string, args ...interface{}) error {
	return &LineError{Line: line, Class: kind, Err: fmt.Errorf(format, args...)}
}
