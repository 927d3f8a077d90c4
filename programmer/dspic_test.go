package programmer

import (
	"context"
	"errors"
	"testing"

	"github.com/moffa90/go-picprog/memory"
)

func TestInstruction(t *testing.T) {
	r := memory.NewRegion("program", 0, 8, 8)
	mustSet(t, r, 0, 0x34)
	mustSet(t, r, 1, 0x12)
	mustSet(t, r, 2, 0x04)
	mustSet(t, r, 3, 0x00)
	mustSet(t, r, 5, 0xab)

	tests := []struct {
		name     string
		index    int
		want     uint32
		wantMask uint32
		defined  bool
	}{
		{name: "complete", index: 0, want: 0x041234, wantMask: 0xffffff, defined: true},
		{name: "middle byte only", index: 4, want: 0xffabff, wantMask: 0x00ff00, defined: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, mask, ok := instruction(r, tt.index)
			if v != tt.want || mask != tt.wantMask || ok != tt.defined {
				t.Errorf("instruction() = %#x, %#x, %v; want %#x, %#x, %v",
					v, mask, ok, tt.want, tt.wantMask, tt.defined)
			}
		})
	}

	empty := memory.NewRegion("program", 0, 8, 8)
	if _, _, ok := instruction(empty, 0); ok {
		t.Error("undefined instruction reported as defined")
	}
}

func TestDSPIC_Read(t *testing.T) {
	prog, chip, d := setup(t, "dspic30f2010")
	chip.regout = 0x1234

	img := memory.NewImage(d)
	if err := prog.Read(context.Background(), img); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	for i, want := range []uint32{0x34, 0x12, 0x34, 0x00} {
		wantWord(t, img.Program, i, want)
	}
	if img.Program.Count() != d.ProgSize {
		t.Errorf("read %d program bytes, want %d", img.Program.Count(), d.ProgSize)
	}
	wantWord(t, img.Data, 0, 0x34)
	wantWord(t, img.Data, d.DataSize-1, 0x12)
	wantWord(t, img.Config, 1, 0x12)
	if chip.sixCount(movVISIW7) == 0 {
		t.Error("VISI was never set up")
	}
}

func TestDSPIC_ProgramRow(t *testing.T) {
	ctx := context.Background()

	t.Run("matching row is skipped", func(t *testing.T) {
		prog, chip, d := setup(t, "dspic30f2010")
		chip.regout = 0x1234

		img := memory.NewImage(d)
		mustSet(t, img.Program, 0, 0x34)
		mustSet(t, img.Program, 1, 0x12)
		mustSet(t, img.Program, 2, 0x34)
		if err := prog.Program(ctx, img, ProgramOptions{}); err != nil {
			t.Fatalf("Program() error = %v", err)
		}
		if n := chip.sixCount(0x24001a); n != 0 {
			t.Errorf("%d row writes, want 0", n)
		}
	})

	t.Run("row that does not read back", func(t *testing.T) {
		prog, chip, d := setup(t, "dspic30f2010")
		chip.regout = 0x1234

		img := memory.NewImage(d)
		mustSet(t, img.Program, 0, 0x00)
		err := prog.Program(ctx, img, ProgramOptions{})
		var verr *VerificationError
		if !errors.As(err, &verr) {
			t.Fatalf("error = %v, want *VerificationError", err)
		}
		if verr.Addr != 0 || verr.Want != 0 || verr.Got != 0x34 {
			t.Errorf("error = %+v", verr)
		}
		if n := chip.sixCount(0x24001a); n != 1 {
			t.Errorf("%d row writes, want 1", n)
		}
		// W0 gets the low word of the first instruction, undefined bytes
		// padded with ones.
		if chip.sixCount(movW(0xff00, 0)) != 1 {
			t.Error("first instruction not loaded into W0")
		}
	})
}

func TestDSPIC_DataAndConfig(t *testing.T) {
	ctx := context.Background()
	logger := &MockLogger{}
	prog, chip, d := setup(t, "dspic30f2010", WithLogger(logger))
	chip.regout = 0xffff

	img := memory.NewImage(d)
	mustSet(t, img.Config, 0, 0x07)
	err := prog.Program(ctx, img, ProgramOptions{})
	if err != nil {
		t.Fatalf("Program() error = %v", err)
	}
	// The fake chip keeps reading 0xFFFF, so the register only warns.
	if chip.sixCount(0x24008a) != 1 {
		t.Errorf("config writes = %d, want 1", chip.sixCount(0x24008a))
	}
	if chip.sixCount(movW(0xff07, 6)) != 1 {
		t.Error("unset high byte not merged from the chip")
	}
	if !contains(logger.warnMsgs, "configuration register did not verify") {
		t.Errorf("warnings = %v", logger.warnMsgs)
	}

	img = memory.NewImage(d)
	mustSet(t, img.Data, 2, 0x00)
	err = prog.Program(ctx, img, ProgramOptions{})
	var verr *VerificationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *VerificationError", err)
	}
	if verr.Region != "data" || verr.Addr != 0x800000-uint32(d.DataSize)+2 {
		t.Errorf("error = %+v", verr)
	}
}
