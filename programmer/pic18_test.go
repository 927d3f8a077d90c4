package programmer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/moffa90/go-picprog/memory"
	"github.com/moffa90/go-picprog/picerr"
)

func TestPIC18_ProgramBlocks(t *testing.T) {
	ctx := context.Background()
	prog, chip, d := setup(t, "pic18f2550")

	img := memory.NewImage(d)
	for i, v := range []uint32{0x12, 0x34, 0x56, 0x78} {
		mustSet(t, img.Program, i, v)
	}
	mustSet(t, img.Program, 33, 0xaa)
	mustSet(t, img.ID, 0, 0x01)

	if err := prog.Program(ctx, img, ProgramOptions{}); err != nil {
		t.Fatalf("Program() error = %v", err)
	}
	// Two program blocks and the ID block.
	if chip.writes != 3 {
		t.Errorf("writes = %d, want 3", chip.writes)
	}
	for a, want := range map[uint32]byte{0: 0x12, 3: 0x78, 4: 0xff, 33: 0xaa, 0x200000: 0x01} {
		if got := chip.read18(a); got != want {
			t.Errorf("mem[%#x] = %#x, want %#x", a, got, want)
		}
	}

	before := chip.writes
	if err := prog.Program(ctx, img, ProgramOptions{}); err != nil {
		t.Fatalf("second Program() error = %v", err)
	}
	if chip.writes != before {
		t.Errorf("second pass wrote %d blocks, want 0", chip.writes-before)
	}

	got := memory.NewImage(d)
	if err := prog.Read(ctx, got); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	wantWord(t, got.Program, 1, 0x34)
	wantWord(t, got.Program, 33, 0xaa)
	wantWord(t, got.Program, 34, 0xff)
	wantWord(t, got.ID, 0, 0x01)
	if got.Config.Count() != d.ConfSize || got.Data.Count() != d.DataSize {
		t.Errorf("read %d config and %d data bytes", got.Config.Count(), got.Data.Count())
	}
}

func TestPIC18_MultiPanel(t *testing.T) {
	prog, chip, d := setup(t, "pic18f452")

	img := memory.NewImage(d)
	mustSet(t, img.Program, 0, 0x11)
	mustSet(t, img.Program, 8192, 0x22)
	mustSet(t, img.Program, 3*8192+7, 0x33)

	if err := prog.Program(context.Background(), img, ProgramOptions{}); err != nil {
		t.Fatalf("Program() error = %v", err)
	}
	// All panels of a block are latched and written together.
	if chip.writes != 1 {
		t.Errorf("writes = %d, want 1", chip.writes)
	}
	if chip.read18(0) != 0x11 || chip.read18(8192) != 0x22 || chip.read18(3*8192+7) != 0x33 {
		t.Errorf("panels = %#x %#x %#x", chip.read18(0), chip.read18(8192), chip.read18(3*8192+7))
	}
}

func TestPIC18_VerifyFailure(t *testing.T) {
	prog, chip, d := setup(t, "pic18f2550")
	chip.stuck18[1] = 0x00

	img := memory.NewImage(d)
	mustSet(t, img.Program, 0, 0x12)
	mustSet(t, img.Program, 1, 0x34)

	err := prog.Program(context.Background(), img, ProgramOptions{})
	var berr *BlockVerifyError
	if !errors.As(err, &berr) {
		t.Fatalf("error = %v, want *BlockVerifyError", err)
	}
	if berr.Addr != 1 || berr.Panel != 0 || berr.Block != 0 || berr.Byte != 1 || berr.Want != 0x34 || berr.Got != 0 {
		t.Errorf("error = %+v", berr)
	}
	if picerr.KindOf(err) != picerr.Verification {
		t.Errorf("KindOf = %v, want verification", picerr.KindOf(err))
	}
}

func TestPIC18_DataEEPROM(t *testing.T) {
	ctx := context.Background()

	t.Run("write and verify", func(t *testing.T) {
		prog, chip, d := setup(t, "pic18f2550")
		chip.busyPolls = 2

		img := memory.NewImage(d)
		mustSet(t, img.Data, 3, 0x42)
		mustSet(t, img.Data, 0x80, 0x99)
		if err := prog.Program(ctx, img, ProgramOptions{}); err != nil {
			t.Fatalf("Program() error = %v", err)
		}
		if chip.ee[3] != 0x42 || chip.ee[0x80] != 0x99 {
			t.Errorf("eeprom = %v", chip.ee)
		}
		if chip.wren {
			t.Error("writes left enabled")
		}

		got := memory.NewImage(d)
		if err := prog.Read(ctx, got); err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		wantWord(t, got.Data, 3, 0x42)
		wantWord(t, got.Data, 0x80, 0x99)
		wantWord(t, got.Data, 4, 0xff)
	})

	t.Run("write never completes", func(t *testing.T) {
		prog, chip, d := setup(t, "pic18f2550", WithEEPROMPolls(3))
		chip.busyPolls = 100

		img := memory.NewImage(d)
		mustSet(t, img.Data, 0, 0x01)
		err := prog.Program(ctx, img, ProgramOptions{})
		if picerr.KindOf(err) != picerr.DeviceFault {
			t.Errorf("KindOf = %v, want device fault", picerr.KindOf(err))
		}
		if err == nil || !strings.Contains(err.Error(), "did not complete after 3 polls") {
			t.Errorf("error = %v", err)
		}
	})
}

func TestPIC18_Fuses(t *testing.T) {
	logger := &MockLogger{}
	prog, chip, d := setup(t, "pic18f2550", WithLogger(logger))
	chip.stuck18[0x300002] = 0x00

	img := memory.NewImage(d)
	mustSet(t, img.Config, 0, 0x22)
	mustSet(t, img.Config, 1, 0x0e)
	mustSet(t, img.Config, 2, 0x1f)
	if err := prog.Program(context.Background(), img, ProgramOptions{}); err != nil {
		t.Fatalf("Program() error = %v", err)
	}
	if chip.read18(0x300000) != 0x22 || chip.read18(0x300001) != 0x0e {
		t.Errorf("config = %#x %#x", chip.read18(0x300000), chip.read18(0x300001))
	}
	if !contains(logger.warnMsgs, "configuration byte did not verify") {
		t.Errorf("warnings = %v", logger.warnMsgs)
	}
}

func TestPIC18_Erase(t *testing.T) {
	for _, name := range []string{"pic18f2550", "pic18f452"} {
		t.Run(name, func(t *testing.T) {
			prog, chip, _ := setup(t, name)
			chip.mem[0x10] = 0x00
			chip.mem[0x300000] = 0x00
			chip.ee[1] = 0x00
			if err := prog.Erase(context.Background()); err != nil {
				t.Fatalf("Erase() error = %v", err)
			}
			if len(chip.mem) != 0 || len(chip.ee) != 0 {
				t.Errorf("erase left mem %v ee %v", chip.mem, chip.ee)
			}
		})
	}
}
