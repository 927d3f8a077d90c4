package hexfile

import (
	"github.com/moffa90/go-picprog/device"
	"github.com/moffa90/go-picprog/memory"
)

// windows returns the regions that own a fixed address window, in the
// order they are matched. Program memory is the fallback and is not listed.
func windows(img *memory.Image) []*memory.Region {
	switch img.Device.Family {
	case device.Family12:
		// Baseline data memory has no file window.
		return []*memory.Region{img.Config, img.ID}
	default:
		return []*memory.Region{img.Config, img.Data, img.ID}
	}
}

// locate maps a chip address to a region and index.
func locate(img *memory.Image, addr uint32) (*memory.Region, int, bool) {
	for _, r := range windows(img) {
		if r.Len() == 0 {
			continue
		}
		if addr >= r.Base() && addr < r.Base()+uint32(r.Len()) {
			return r, int(addr - r.Base()), true
		}
	}
	if addr < uint32(img.Program.Len()) {
		return img.Program, int(addr), true
	}
	return nil, 0, false
}

// saved returns the regions written to a hex file, in file order.
func saved(img *memory.Image) []*memory.Region {
	out := []*memory.Region{img.Program}
	if img.ID.Len() > 0 {
		out = append(out, img.ID)
	}
	out = append(out, img.Config)
	if img.Device.Family != device.Family12 {
		out = append(out, img.Data)
	}
	return out
}

// erasedValue returns the erased pattern of a region, used by the skip-ones
// option. Wide families have no erased pattern.
func erasedValue(img *memory.Image, r *memory.Region) (uint32, bool) {
	switch img.Device.Family {
	case device.Family12:
		return 0xfff, true
	case device.Family14:
		if r == img.Data {
			return 0xff, true
		}
		return 0x3fff, true
	default:
		return 0, false
	}
}

// rowLength returns the maximum number of cells per data record.
func rowLength(img *memory.Image) uint32 {
	if img.Device.Family.Wide() {
		return 16
	}
	return 8
}
