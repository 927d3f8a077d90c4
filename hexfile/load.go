package hexfile

import (
	"io"
	"os"

	"github.com/moffa90/go-picprog/memory"
	"github.com/moffa90/go-picprog/picerr"
)

// Summary describes a loaded hex file.
type Summary struct {
	// Format is the detected sub-format
	Format Format

	// Records is the number of data records read
	Records int

	// Cells is the number of image cells written
	Cells int

	// EOF is false when the file ended without an EOF record
	EOF bool
}

// Load reads the hex file at path into img.
//
// Example:
//
//	img := memory.NewImage(d)
//	sum, err := hexfile.Load("firmware.hex", img)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("format:", sum.Format)
func Load(path string, img *memory.Image) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, picerr.E(picerr.IO, "open hex file", err)
	}
	defer func() { _ = f.Close() }()

	return LoadReader(f, img)
}

// LoadReader reads Intel HEX text from r into img. The sub-format is
// detected from the first record. Each record is validated completely before
// any cell is stored, so a rejected line leaves the image untouched.
func LoadReader(r io.Reader, img *memory.Image) (*Summary, error) {
	dec := NewDecoder(r)
	s := &Summary{}

	for {
		rec, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.Format = dec.Format()
			return s, err
		}

		n, err := place(img, dec.Format(), rec)
		if err != nil {
			s.Format = dec.Format()
			return s, err
		}
		s.Records++
		s.Cells += n
	}

	s.Format = dec.Format()
	s.EOF = dec.SawEOF()
	return s, nil
}

type cell struct {
	region *memory.Region
	index  int
	value  uint32
}

// place demultiplexes one record into image regions.
func place(img *memory.Image, format Format, rec *Record) (int, error) {
	var cells []cell
	var err error
	if img.Device.Family.Wide() {
		cells, err = wideCells(img, format, rec)
	} else {
		cells, err = wordCells(img, format, rec)
	}
	if err != nil {
		return 0, err
	}
	for _, c := range cells {
		if err := c.region.Set(c.index, c.value); err != nil {
			return 0, picerr.E(picerr.Internal, "store cell", err)
		}
	}
	return len(cells), nil
}

// wordCells decodes a record for 12/14-bit parts.
func wordCells(img *memory.Image, format Format, rec *Record) ([]cell, error) {
	addr := rec.Address
	words := rec.Count
	if format != IHX16 {
		if words&1 != 0 || addr&1 != 0 {
			return nil, lineErrorf(rec.Line, picerr.DataFormat, "odd address or number of words")
		}
		words /= 2
		addr /= 2
	}

	cells := make([]cell, 0, words)
	for i := 0; i < words; i++ {
		var w uint32
		if format == IHX16 {
			w = uint32(rec.Data[2*i])<<8 | uint32(rec.Data[2*i+1])
		} else {
			w = uint32(rec.Data[2*i]) | uint32(rec.Data[2*i+1])<<8
		}
		a := addr + uint32(i)
		r, idx, ok := locate(img, a)
		if !ok {
			return nil, lineErrorf(rec.Line, picerr.AddressRange,
				"invalid address 0x%04X, possibly not a hex file for %s", a, img.Device.Name)
		}
		cells = append(cells, cell{region: r, index: idx, value: w})
	}
	return cells, nil
}

// wideCells decodes a record for byte-addressed families. IHX16 words are
// byte swapped.
func wideCells(img *memory.Image, format Format, rec *Record) ([]cell, error) {
	addr := rec.Address
	if format == IHX16 {
		addr *= 2
	}

	cells := make([]cell, 0, len(rec.Data))
	for i, b := range rec.Data {
		a := addr + uint32(i)
		if format == IHX16 {
			a ^= 1
		}
		r, idx, ok := locate(img, a)
		if !ok {
			return nil, lineErrorf(rec.Line, picerr.AddressRange,
				"invalid address 0x%06X, possibly not a hex file for %s", a, img.Device.Name)
		}
		cells = append(cells, cell{region: r, index: idx, value: uint32(b)})
	}
	return cells, nil
}
