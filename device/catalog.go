package device

import (
	"fmt"
	"strings"

	"github.com/moffa90/go-picprog/picerr"
)

// Find returns the catalog index of the part called name, compared without
// regard to case.
//
// Example:
//
//	i, err := device.Find("PIC16F628A")
func Find(name string) (int, error) {
	name = strings.TrimSpace(name)
	for i := range catalog {
		if strings.EqualFold(catalog[i].Name, name) {
			return i, nil
		}
	}
	return -1, &NotFoundError{Name: name}
}

// Lookup returns the descriptor of the part called name.
func Lookup(name string) (*Descriptor, error) {
	i, err := Find(name)
	if err != nil {
		return nil, err
	}
	return At(i), nil
}

// At returns a copy of the descriptor at catalog index i, or nil.
func At(i int) *Descriptor {
	if i < 0 || i >= len(catalog) {
		return nil
	}
	d := catalog[i]
	return &d
}

// All returns copies of every descriptor in catalog order.
func All() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Default returns the first entry of family f. It is used for old parts
// that carry no ID.
func Default(f Family) (*Descriptor, error) {
	for i := range catalog {
		if catalog[i].Family == f {
			return At(i), nil
		}
	}
	return nil, picerr.Errorf(picerr.Internal, "no %s entries in catalog", f)
}

// idMask returns the bits of a read ID compared against entry id. Some PIC18
// pairs share every ID bit except the high revision bit, so that bit joins the
// mask only when the entry sets it.
func idMask(id int) int {
	return 0xffe0 | (0x0010 & id)
}

// Match finds the part of family f whose ID matches the raw value read
// from the chip. dsPIC IDs must match exactly; other families ignore the
// revision bits.
func Match(f Family, id int) (*Descriptor, error) {
	for i := range catalog {
		d := &catalog[i]
		if d.DeviceID == NoID || d.Family != f {
			continue
		}
		if f == Family24 {
			if d.DeviceID == id {
				return At(i), nil
			}
			continue
		}
		mask := idMask(d.DeviceID)
		if d.DeviceID&mask == id&mask {
			return At(i), nil
		}
	}
	return nil, &UnknownDeviceError{Family: f, ID: id}
}

// Revision returns the silicon revision bits of a 12/14/16-bit ID once d has
// been matched.
func Revision(d *Descriptor, id int) int {
	return id & 0x1f &^ idMask(d.DeviceID)
}

// NotFoundError reports an unknown part name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown device %q", e.Name)
}

// Kind classifies the error as a usage error.
func (e *NotFoundError) Kind() picerr.Kind { return picerr.Usage }

// UnknownDeviceError reports an ID that matches no catalog entry.
type UnknownDeviceError struct {
	Family Family
	ID     int
}

func (e *UnknownDeviceError) Error() string {
	return fmt.Sprintf("%s device id 0x%04X unknown", e.Family, e.ID)
}

// Kind classifies the error as a protocol error.
func (e *UnknownDeviceError) Kind() picerr.Kind { return picerr.Protocol }
