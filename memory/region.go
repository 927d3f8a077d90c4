package memory

import "fmt"

// Region is an address-indexed store of fixed-width words. Every cell is
// either a defined value or undefined; a fresh region is entirely undefined.
type Region struct {
	name    string
	base    uint32
	width   int
	words   []uint32
	defined []bool
}

// NewRegion allocates size undefined cells of width bits. Base is the chip
// address of cell 0 and is only used in messages.
func NewRegion(name string, base uint32, size, width int) *Region {
	if size < 0 {
		size = 0
	}
	return &Region{
		name:    name,
		base:    base,
		width:   width,
		words:   make([]uint32, size),
		defined: make([]bool, size),
	}
}

// Name returns the region name ("program", "data", "config" or "id").
func (r *Region) Name() string { return r.name }

// Base returns the chip address of cell 0.
func (r *Region) Base() uint32 { return r.base }

// Width returns the word width in bits.
func (r *Region) Width() int { return r.width }

// Mask returns the bit mask covering one word.
func (r *Region) Mask() uint32 {
	return uint32(1)<<uint(r.width) - 1
}

// Len returns the number of cells.
func (r *Region) Len() int { return len(r.words) }

// Get returns the value at index i and whether it is defined. Out of range
// indexes read as undefined.
func (r *Region) Get(i int) (uint32, bool) {
	if i < 0 || i >= len(r.words) || !r.defined[i] {
		return 0, false
	}
	return r.words[i], true
}

// Defined reports whether index i holds a value.
func (r *Region) Defined(i int) bool {
	_, ok := r.Get(i)
	return ok
}

// Set stores v, truncated to the region width, at index i.
func (r *Region) Set(i int, v uint32) error {
	if i < 0 || i >= len(r.words) {
		return &RangeError{Region: r.name, Index: i, Len: len(r.words)}
	}
	r.words[i] = v & r.Mask()
	r.defined[i] = true
	return nil
}

// Clear makes index i undefined.
func (r *Region) Clear(i int) {
	if i >= 0 && i < len(r.words) {
		r.words[i] = 0
		r.defined[i] = false
	}
}

// Reset makes every cell undefined.
func (r *Region) Reset() {
	for i := range r.words {
		r.words[i] = 0
		r.defined[i] = false
	}
}

// Count returns the number of defined cells.
func (r *Region) Count() int {
	n := 0
	for _, d := range r.defined {
		if d {
			n++
		}
	}
	return n
}

// ByteOr returns the low byte at index i, or fill when undefined.
func (r *Region) ByteOr(i int, fill byte) byte {
	if v, ok := r.Get(i); ok {
		return byte(v)
	}
	return fill
}

// Equal reports whether both regions hold the same defined cells.
func (r *Region) Equal(o *Region) bool {
	if r.Len() != o.Len() {
		return false
	}
	for i := range r.words {
		a, aok := r.Get(i)
		b, bok := o.Get(i)
		if aok != bok || a != b {
			return false
		}
	}
	return true
}

// RangeError reports a store past the end of a region.
type RangeError struct {
	Region string
	Index  int
	Len    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range (size %d)", e.Region, e.Index, e.Len)
}
