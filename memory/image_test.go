package memory

import (
	"testing"

	"github.com/moffa90/go-picprog/device"
)

func mustLookup(t *testing.T, name string) *device.Descriptor {
	t.Helper()
	d, err := device.Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q) error = %v", name, err)
	}
	return d
}

func TestNewImage(t *testing.T) {
	tests := []struct {
		name       string
		device     string
		progLen    int
		dataLen    int
		confLen    int
		idLen      int
		progWidth  int
		configBase uint32
	}{
		{"14-bit", "pic16f628a", 2048, 128, 1, 4, 14, 0x2007},
		{"12-bit", "pic12f509", 1024, 0, 1, 5, 12, 0xfff},
		{"pic18", "pic18f452", 32 * 1024, 256, 14, 8, 8, 0x300000},
		{"dspic", "dspic30f2010", 4 * 4096, 1024, 16, 0, 8, 0xf80000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := NewImage(mustLookup(t, tt.device))
			if img.Program.Len() != tt.progLen {
				t.Errorf("Program.Len() = %d, want %d", img.Program.Len(), tt.progLen)
			}
			if img.Data.Len() != tt.dataLen {
				t.Errorf("Data.Len() = %d, want %d", img.Data.Len(), tt.dataLen)
			}
			if img.Config.Len() != tt.confLen {
				t.Errorf("Config.Len() = %d, want %d", img.Config.Len(), tt.confLen)
			}
			if img.ID.Len() != tt.idLen {
				t.Errorf("ID.Len() = %d, want %d", img.ID.Len(), tt.idLen)
			}
			if img.Program.Width() != tt.progWidth {
				t.Errorf("Program.Width() = %d, want %d", img.Program.Width(), tt.progWidth)
			}
			if img.Config.Base() != tt.configBase {
				t.Errorf("Config.Base() = 0x%X, want 0x%X", img.Config.Base(), tt.configBase)
			}
			if !img.Empty() {
				t.Error("new image is not empty")
			}
		})
	}
}

func TestRegionSetGet(t *testing.T) {
	r := NewRegion("program", 0, 4, 14)

	if _, ok := r.Get(0); ok {
		t.Fatal("fresh cell is defined")
	}
	if err := r.Set(1, 0xffff); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	v, ok := r.Get(1)
	if !ok || v != 0x3fff {
		t.Errorf("Get(1) = 0x%X, %v, want 0x3FFF, true", v, ok)
	}

	// An all-ones value is still a defined cell.
	if !r.Defined(1) {
		t.Error("all-ones cell reads as undefined")
	}

	if err := r.Set(4, 0); err == nil {
		t.Error("Set() past end succeeded")
	}
	if _, ok := r.Get(-1); ok {
		t.Error("Get(-1) is defined")
	}

	r.Clear(1)
	if r.Defined(1) {
		t.Error("Clear() left cell defined")
	}
	if r.Count() != 0 {
		t.Errorf("Count() = %d, want 0", r.Count())
	}
}

func TestRegionByteOr(t *testing.T) {
	r := NewRegion("program", 0, 2, 8)
	_ = r.Set(0, 0x12)
	if got := r.ByteOr(0, 0xff); got != 0x12 {
		t.Errorf("ByteOr(0) = 0x%X, want 0x12", got)
	}
	if got := r.ByteOr(1, 0xff); got != 0xff {
		t.Errorf("ByteOr(1) = 0x%X, want 0xFF", got)
	}
}

func TestImageCloneEqual(t *testing.T) {
	img := NewImage(mustLookup(t, "pic16f84a"))
	_ = img.Program.Set(10, 0x1234)
	_ = img.Data.Set(3, 0x55)

	c := img.Clone()
	if !c.Equal(img) {
		t.Fatal("clone differs from original")
	}

	_ = c.Config.Set(0, 0x3ff1)
	if c.Equal(img) {
		t.Error("Equal() ignores config region")
	}
	if img.Config.Defined(0) {
		t.Error("clone shares storage with original")
	}
}
