// Package memory holds the per-device memory image: program, data,
// configuration and ID regions whose cells are either defined words or
// undefined.
//
// An image is sized from a device descriptor and starts out entirely
// undefined. The hex codec fills it from a file and the programmer fills it
// from silicon:
//
//	d, _ := device.Lookup("pic16f628a")
//	img := memory.NewImage(d)
//	_ = img.Program.Set(0, 0x2805)
//
// Images are not safe for concurrent use.
package memory

import (
	"github.com/moffa90/go-picprog/device"
)

// Image is the complete memory content of one device.
type Image struct {
	Device *device.Descriptor

	Program *Region
	Data    *Region
	Config  *Region
	ID      *Region
}

// NewImage allocates an undefined image for d.
func NewImage(d *device.Descriptor) *Image {
	progWidth, confWidth := widths(d.Family)
	return &Image{
		Device:  d,
		Program: NewRegion("program", 0, d.ProgSize, progWidth),
		Data:    NewRegion("data", dataBase(d), d.DataSize, 8),
		Config:  NewRegion("config", d.ConfigAddress(), d.ConfSize, confWidth),
		ID:      NewRegion("id", idBase(d), d.IDSize(), confWidth),
	}
}

// widths returns the program and config/id word widths of a family. Wide
// families are stored byte by byte.
func widths(f device.Family) (int, int) {
	switch f {
	case device.Family12:
		return 12, 12
	case device.Family14:
		return 14, 14
	default:
		return 8, 8
	}
}

func dataBase(d *device.Descriptor) uint32 {
	switch d.Family {
	case device.Family14:
		return 0x2100
	case device.Family16:
		return 0xf00000
	case device.Family24:
		return 0x800000 - uint32(d.DataSize)
	default:
		return 0
	}
}

func idBase(d *device.Descriptor) uint32 {
	switch d.Family {
	case device.Family12:
		return uint32(d.ProgSize)
	case device.Family14:
		return 0x2000
	case device.Family16:
		return 0x200000
	default:
		return 0
	}
}

// Regions returns the regions in the order they are written to a hex file.
func (m *Image) Regions() []*Region {
	return []*Region{m.Program, m.ID, m.Config, m.Data}
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	c := NewImage(m.Device)
	for i, r := range m.Regions() {
		dst := c.Regions()[i]
		copy(dst.words, r.words)
		copy(dst.defined, r.defined)
	}
	return c
}

// Equal reports whether both images hold the same defined cells.
func (m *Image) Equal(o *Image) bool {
	a, b := m.Regions(), o.Regions()
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Empty reports whether no cell of the image is defined.
func (m *Image) Empty() bool {
	for _, r := range m.Regions() {
		if r.Count() > 0 {
			return false
		}
	}
	return true
}
