package hexfile

import (
	"bufio"
	"encoding/hex"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/moffa90/go-picprog/picerr"
)

// Record is one validated data record.
type Record struct {
	// Line is the 1-based line number
	Line int

	// Address is the record address plus the current extended address. It
	// counts words for IHX16 files and bytes otherwise.
	Address uint32

	// Count is the declared length: words for IHX16, bytes otherwise
	Count int

	// Data holds the payload bytes in file order
	Data []byte
}

// Decoder reads data records from Intel HEX text. It checks syntax, length
// and checksum of every line and tracks the sub-format and extended address.
type Decoder struct {
	scanner *bufio.Scanner
	line    int
	format  Format
	upper   uint32
	eof     bool
}

// NewDecoder returns a decoder that auto-detects the sub-format.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{scanner: bufio.NewScanner(r)}
}

// Format returns the sub-format seen so far.
func (d *Decoder) Format() Format { return d.format }

// SawEOF reports whether the end-of-file record terminated decoding.
func (d *Decoder) SawEOF() bool { return d.eof }

// Line returns the number of the last line read.
func (d *Decoder) Line() int { return d.line }

// Next returns the next data record. It returns io.EOF after the EOF record
// or at the end of input; lines after the EOF record are never read.
func (d *Decoder) Next() (*Record, error) {
	if d.eof {
		return nil, io.EOF
	}
	for d.scanner.Scan() {
		d.line++
		line := strings.TrimRightFunc(d.scanner.Text(), unicode.IsSpace)

		if strings.EqualFold(line, EOFRecord) {
			d.eof = true
			return nil, io.EOF
		}

		if len(line) == extRecordLength &&
			(d.format == FormatAuto || d.format == IHX32) &&
			strings.HasPrefix(line, extPrefix) {
			if err := d.extended(line); err != nil {
				return nil, err
			}
			continue
		}

		if line == "" {
			continue
		}

		return d.data(line)
	}
	if err := d.scanner.Err(); err != nil {
		return nil, picerr.E(picerr.IO, "read hex file", err)
	}
	return nil, io.EOF
}

func (d *Decoder) extended(line string) error {
	raw, err := hex.DecodeString(line[1:])
	if err != nil {
		return lineErrorf(d.line, picerr.DataFormat, "invalid extended address record")
	}
	if sum(raw) != 0 {
		return lineErrorf(d.line, picerr.DataFormat,
			"checksum mismatch, checksum is 0x%02X, should be 0x%02X",
			raw[len(raw)-1], -sum(raw[:len(raw)-1]))
	}
	d.format = IHX32
	d.upper = (uint32(raw[4])<<8 | uint32(raw[5])) << 16
	return nil
}

func (d *Decoder) data(line string) (*Record, error) {
	if line[0] != ':' || len(line)&1 != 1 || len(line) < minRecordLength ||
		!isHex(line[1:]) || line[7:9] != "00" {
		return nil, lineErrorf(d.line, picerr.DataFormat,
			"invalid input line, not an 8 or 16 bit intel hex record")
	}

	count, _ := strconv.ParseUint(line[1:3], 16, 8)
	if d.format == FormatAuto {
		switch {
		case int(count)*4+recordOverhead == len(line):
			d.format = IHX16
		case int(count)*2+recordOverhead == len(line):
			d.format = IHX8M
		default:
			return nil, lineErrorf(d.line, picerr.DataFormat,
				"unknown input format, only ihx8m, ihx16 and ihx32 accepted")
		}
	}

	digits := 2
	if d.format == IHX16 {
		digits = 4
	}
	if want := int(count)*digits + recordOverhead; want != len(line) {
		return nil, lineErrorf(d.line, picerr.DataFormat,
			"line length mismatch: %s %d != %d", d.format, want, len(line))
	}

	raw, _ := hex.DecodeString(line[1:])
	if sum(raw) != 0 {
		return nil, lineErrorf(d.line, picerr.DataFormat,
			"checksum mismatch, checksum is 0x%02X, should be 0x%02X",
			raw[len(raw)-1], -sum(raw[:len(raw)-1]))
	}

	addr := uint32(raw[1])<<8 | uint32(raw[2])
	return &Record{
		Line:    d.line,
		Address: addr + d.upper,
		Count:   int(count),
		Data:    raw[4 : len(raw)-1],
	}, nil
}

// sum adds bytes modulo 256. A record including its checksum sums to zero.
func sum(b []byte) byte {
	var s byte
	for _, v := range b {
		s += v
	}
	return s
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
