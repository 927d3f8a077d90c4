package hexfile

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/moffa90/go-picprog/memory"
	"github.com/moffa90/go-picprog/picerr"
)

// SaveOptions control hex file output.
type SaveOptions struct {
	// Format selects the sub-format. FormatAuto picks IHX32 for wide
	// families and IHX16 otherwise.
	Format Format

	// SkipOnes omits cells holding the erased pattern of their memory
	SkipOnes bool
}

// Save writes img to the file at path.
func Save(path string, img *memory.Image, opts SaveOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return picerr.E(picerr.IO, "create hex file", err)
	}
	if err := Write(f, img, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return picerr.E(picerr.IO, "close hex file", err)
	}
	return nil
}

// Write encodes the defined cells of img as Intel HEX. Regions are written
// in the order program, id, config, data, followed by the EOF record.
func Write(w io.Writer, img *memory.Image, opts SaveOptions) error {
	format := opts.Format
	if format == FormatAuto {
		format = IHX16
		if img.Device.Family.Wide() {
			format = IHX32
		}
	}
	if format == IHX16 && img.Device.Family.Wide() {
		return picerr.Errorf(picerr.Usage, "ihx16 output is only available for 12/14-bit devices")
	}

	e := &encoder{
		w:      bufio.NewWriter(w),
		img:    img,
		format: format,
		upper:  1, // forces an extended address record before the first line
	}
	for _, r := range saved(img) {
		if err := e.region(r, opts.SkipOnes); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(e.w, EOFRecord); err != nil {
		return picerr.E(picerr.IO, "write hex file", err)
	}
	if err := e.w.Flush(); err != nil {
		return picerr.E(picerr.IO, "write hex file", err)
	}
	return nil
}

type encoder struct {
	w      *bufio.Writer
	img    *memory.Image
	format Format
	upper  uint32
}

// region writes maximal runs of defined cells, never crossing a row
// boundary.
func (e *encoder) region(r *memory.Region, skipOnes bool) error {
	erased, hasErased := erasedValue(e.img, r)
	rowLen := rowLength(e.img)

	keep := func(i int) bool {
		v, ok := r.Get(i)
		if !ok {
			return false
		}
		return !(skipOnes && hasErased && v == erased)
	}

	n := r.Len()
	for i := 0; i < n; {
		if !keep(i) {
			i++
			continue
		}
		addr := r.Base() + uint32(i)
		run := 1
		for uint32(run) < rowLen &&
			(addr+uint32(run))%rowLen != 0 &&
			i+run < n &&
			keep(i+run) {
			run++
		}
		if err := e.line(r, i, addr, run); err != nil {
			return err
		}
		i += run
	}
	return nil
}

// line writes one data record of run cells starting at index i.
func (e *encoder) line(r *memory.Region, i int, addr uint32, run int) error {
	wide := e.img.Device.Family.Wide()

	fileAddr := addr
	count := run
	if !wide && e.format != IHX16 {
		fileAddr = addr * 2
		count = run * 2
	}

	if e.format == IHX32 {
		if upper := fileAddr & 0xffff0000; upper != e.upper {
			e.upper = upper
			hi, lo := byte(upper>>24), byte(upper>>16)
			if _, err := fmt.Fprintf(e.w, "%s%02X%02X%02X\n", extPrefix, hi, lo, -(0x02 + 0x04 + hi + lo)); err != nil {
				return picerr.E(picerr.IO, "write hex file", err)
			}
		}
	} else if fileAddr+uint32(count) > 0x10000 {
		return picerr.Errorf(picerr.Usage, "address 0x%06X needs ihx32 format", fileAddr)
	}

	payload := make([]byte, 0, 2*run)
	for j := 0; j < run; j++ {
		v, _ := r.Get(i + j)
		switch {
		case wide:
			payload = append(payload, byte(v))
		case e.format == IHX16:
			payload = append(payload, byte(v>>8), byte(v))
		default:
			payload = append(payload, byte(v), byte(v>>8))
		}
	}

	head := []byte{byte(count), byte(fileAddr >> 8), byte(fileAddr), 0x00}
	check := -(sum(head) + sum(payload))
	if _, err := fmt.Fprintf(e.w, ":%02X%02X%02X00%X%02X\n", head[0], head[1], head[2], payload, check); err != nil {
		return picerr.E(picerr.IO, "write hex file", err)
	}
	return nil
}
