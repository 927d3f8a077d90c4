package programmer

import (
	"context"
	"time"

	"github.com/moffa90/go-picprog/device"
	"github.com/moffa90/go-picprog/icsp"
	"github.com/moffa90/go-picprog/memory"
	"github.com/moffa90/go-picprog/picerr"
)

// pic18 programs 18F parts through core instructions and table reads and
// writes. Program memory and ID words are written in blocks of WriteSize
// bytes; parts with panels latch one block per panel and program them all
// at once.
type pic18 struct {
	p *Programmer
	t Target
	d *device.Descriptor
}

// Core instructions used by the sequences below.
const (
	bsfEEPGD  = 0x8ea6 // BSF EECON1, EEPGD
	bcfEEPGD  = 0x9ea6 // BCF EECON1, EEPGD
	bsfCFGS   = 0x8ca6 // BSF EECON1, CFGS
	bcfCFGS   = 0x9ca6 // BCF EECON1, CFGS
	bsfWREN   = 0x84a6 // BSF EECON1, WREN
	bcfWREN   = 0x94a6 // BCF EECON1, WREN
	bsfRD     = 0x80a6 // BSF EECON1, RD
	bsfWR     = 0x82a6 // BSF EECON1, WR
	idBase18  = 0x200000
	cfgBase18 = 0x300000
	eeBase18  = 0xf00000
)

func newPIC18(p *Programmer, d *device.Descriptor) *pic18 {
	return &pic18{p: p, t: p.target, d: d}
}

// instr queues core instructions.
func (c *pic18) instr(ctx context.Context, codes ...uint32) error {
	for _, code := range codes {
		if err := c.t.Queue18(ctx, icsp.Instr, code); err != nil {
			return err
		}
	}
	return nil
}

func (c *pic18) preserve(ctx context.Context, img *memory.Image, opts ProgramOptions) error {
	return nil
}

func (c *pic18) rewind(ctx context.Context) error {
	if c.t.Address() != 0 {
		return c.t.Reset(ctx, 0)
	}
	return nil
}

func (c *pic18) erase(ctx context.Context) error {
	switch {
	case c.d.ProgType == device.Flash18 && c.d.PanelSize == 0:
		// Newer parts take the bulk erase key in two halves.
		if err := c.t.SetAddress(ctx, 0x3c0005); err != nil {
			return err
		}
		if err := c.t.Queue18(ctx, icsp.TWrite, 0x0f0f); err != nil {
			return err
		}
		if err := c.t.SetAddress(ctx, 0x3c0004); err != nil {
			return err
		}
		if err := c.t.Queue18(ctx, icsp.TWrite, 0x8787); err != nil {
			return err
		}
	case c.d.ProgType == device.Flash18 || c.d.ProgType == device.EPROM18:
		if err := c.t.SetAddress(ctx, 0x3c0004); err != nil {
			return err
		}
		if err := c.t.Queue18(ctx, icsp.TWrite, 0x0080); err != nil {
			return err
		}
	default:
		return picerr.Errorf(picerr.Internal, "%s: no erase sequence for %s memory", c.d.Name, c.d.ProgType)
	}

	if err := c.instr(ctx, 0); err != nil {
		return err
	}
	if err := c.t.Queue18(ctx, icsp.NopErase, 0); err != nil {
		return err
	}
	if err := c.t.Delay(ctx, 50*time.Millisecond); err != nil {
		return err
	}
	return c.t.Reset(ctx, 0)
}

func (c *pic18) programStages() []stage {
	return []stage{
		{PhaseProgram, c.burnProgram},
		{PhaseData, c.burnData},
		{PhaseID, c.burnIDs},
		{PhaseFuses, c.burnFuses},
	}
}

func (c *pic18) burnProgram(ctx context.Context, img *memory.Image) (int, error) {
	if c.d.ProgType == device.ROM || c.d.ProgSize == 0 {
		c.p.logInfo("skipped program memory")
		return 0, nil
	}

	multi := uint32(0)
	if c.d.PanelSize > 0 {
		multi = 0x0040
	}
	if err := c.instr(ctx, bsfEEPGD, bsfCFGS, 0x86a6); err != nil {
		return 0, err
	}
	if err := c.t.SetAddress(ctx, 0x3c0006); err != nil {
		return 0, err
	}
	if err := c.t.Queue18(ctx, icsp.TWrite, multi); err != nil {
		return 0, err
	}
	if err := c.instr(ctx, bsfEEPGD, bcfCFGS); err != nil {
		return 0, err
	}
	if err := c.t.SetAddress(ctx, 0); err != nil {
		return 0, err
	}

	panel := c.d.Panels()
	ws := c.d.WriteSize
	if ws <= 0 {
		return 0, picerr.Errorf(picerr.Internal, "%s: no write block size", c.d.Name)
	}
	n := 0
	for a := 0; a < panel; a += ws {
		w, err := c.writeBlock(ctx, img.Program, 0, a, ws, panel)
		if err != nil {
			return n, err
		}
		if w {
			n++
		}
		if err := c.p.cancelled(ctx); err != nil {
			return n, err
		}
		if (a/ws)%progressEvery == 0 {
			c.p.reportProgress(PhaseProgram, a, panel)
		}
	}
	return n, nil
}

// panelStarts returns the panel offsets a block at addr is written to.
// Only program memory has panels.
func (c *pic18) panelStarts(base uint32, addr, panel int) []int {
	if base != 0 {
		return []int{0}
	}
	var pans []int
	for pan := 0; pan+addr < c.d.ProgSize; pan += panel {
		pans = append(pans, pan)
	}
	return pans
}

// writeBlock writes the size-byte block at index addr of r, and the
// matching block of every further panel, unless it already verifies.
// base is the chip address of r's first byte. It reports whether the block
// was written.
func (c *pic18) writeBlock(ctx context.Context, r *memory.Region, base uint32, addr, size, panel int) (bool, error) {
	if ok, err := c.verifyBlock(ctx, r, base, addr, size, panel, false); err != nil || ok {
		return false, err
	}

	program := base == 0
	for _, pan := range c.panelStarts(base, addr, panel) {
		off := pan + addr
		if err := c.t.SetAddress(ctx, base+uint32(off)); err != nil {
			return false, err
		}
		for i := 0; i < size; i += 2 {
			v := uint32(r.ByteOr(off+i, 0xff)) | uint32(r.ByteOr(off+i+1, 0xff))<<8
			cmd := icsp.TWriteProg
			switch {
			case i+2 < size:
				cmd = icsp.TWriteInc2
			case program && pan+panel+addr < c.d.ProgSize:
				// Latch only; the last panel starts the write.
				cmd = icsp.TWrite
			}
			if err := c.t.Queue18(ctx, cmd, v); err != nil {
				return false, err
			}
		}
	}
	if err := c.t.Queue18(ctx, icsp.NopProg, 0); err != nil {
		return false, err
	}
	c.p.written++

	if _, err := c.verifyBlock(ctx, r, base, addr, size, panel, true); err != nil {
		return true, err
	}
	return true, nil
}

// verifyBlock reads back the defined bytes of a block. With loud set a
// mismatch is returned as a BlockVerifyError.
func (c *pic18) verifyBlock(ctx context.Context, r *memory.Region, base uint32, addr, size, panel int, loud bool) (bool, error) {
	for _, pan := range c.panelStarts(base, addr, panel) {
		off := pan + addr
		first, last := -1, -1
		for i := 0; i < size; i++ {
			if r.Defined(off + i) {
				if first < 0 {
					first = i
				}
				last = i
			}
		}
		if first < 0 {
			continue
		}

		if err := c.t.SetAddress(ctx, base+uint32(off+first)); err != nil {
			return false, err
		}
		for i := first; i <= last; i++ {
			if err := c.t.Queue18(ctx, icsp.TReadInc, 0); err != nil {
				return false, err
			}
		}
		vals, err := c.t.Execute(ctx)
		if err != nil {
			return false, err
		}
		if len(vals) != last-first+1 {
			return false, &ReadError{Region: r.Name(), Addr: base + uint32(off+first), Want: last - first + 1, Got: len(vals)}
		}

		for i := first; i <= last; i++ {
			want, ok := r.Get(off + i)
			got := byte(vals[i-first])
			if !ok || got == byte(want) {
				continue
			}
			if !loud {
				return false, nil
			}
			return false, &BlockVerifyError{
				Addr:  base + uint32(off+i),
				Panel: pan / panel,
				Block: uint32(addr),
				Byte:  i,
				Want:  byte(want),
				Got:   got,
			}
		}
	}
	return true, nil
}

// queueEERead queues the read of one data EEPROM byte.
func (c *pic18) queueEERead(ctx context.Context, i int) error {
	err := c.instr(ctx,
		0x0e00|uint32(i)&0xff, 0x6ea9, // EEADR
		0x0e00|uint32(i>>8)&0xff, 0x6eaa, // EEADRH
		bsfRD, 0x50a8, 0x6ef5, 0x0000, // EEDATA to TABLAT
	)
	if err != nil {
		return err
	}
	return c.t.Queue18(ctx, icsp.ShiftOut, 0)
}

func (c *pic18) readEE(ctx context.Context, i int) (uint32, error) {
	if err := c.queueEERead(ctx, i); err != nil {
		return 0, err
	}
	vals, err := c.t.Execute(ctx)
	if err != nil {
		return 0, err
	}
	if len(vals) != 1 {
		return 0, &ReadError{Region: "data", Addr: eeBase18 + uint32(i), Want: 1, Got: len(vals)}
	}
	return vals[0] & 0xff, nil
}

func (c *pic18) burnData(ctx context.Context, img *memory.Image) (int, error) {
	if c.d.DataType == device.ROM || c.d.DataSize == 0 {
		c.p.logInfo("skipped data memory")
		return 0, nil
	}
	if err := c.instr(ctx, bcfEEPGD, bcfCFGS); err != nil {
		return 0, err
	}

	n := 0
	for i := 0; i < c.d.DataSize; i++ {
		want, ok := img.Data.Get(i)
		if !ok {
			continue
		}
		got, err := c.readEE(ctx, i)
		if err != nil {
			return n, err
		}
		if got == want {
			continue
		}

		// EEADR still holds i from the read.
		err = c.instr(ctx,
			0x0e00|want, 0x6ea8, // EEDATA
			bsfWREN,
			0x0e55, 0x6ea7, 0x0eaa, 0x6ea7, // unlock through EECON2
			bsfWR,
		)
		if err != nil {
			return n, err
		}
		if err := c.waitEEWrite(ctx, i); err != nil {
			return n, err
		}
		if err := c.instr(ctx, bcfWREN); err != nil {
			return n, err
		}
		c.p.written++

		if got, err = c.readEE(ctx, i); err != nil {
			return n, err
		}
		if got != want {
			return n, &VerificationError{Region: "data", Addr: eeBase18 + uint32(i), Want: want, Got: got}
		}
		n++
		if err := c.p.cancelled(ctx); err != nil {
			return n, err
		}
		c.p.reportProgress(PhaseData, i, c.d.DataSize)
	}
	return n, nil
}

// waitEEWrite polls EECON1 until the write bit clears.
func (c *pic18) waitEEWrite(ctx context.Context, i int) error {
	for polls := 0; polls < c.p.config.EEPROMPolls; polls++ {
		if err := c.instr(ctx, 0x50a6, 0x6ef5, 0x0000); err != nil {
			return err
		}
		v, err := c.t.Command18(ctx, icsp.ShiftOut, 0)
		if err != nil {
			return err
		}
		if v&0x02 == 0 {
			return nil
		}
		if err := c.p.cancelled(ctx); err != nil {
			return err
		}
	}
	return picerr.Errorf(picerr.DeviceFault, "data EEPROM write at 0x%06X did not complete after %d polls",
		eeBase18+uint32(i), c.p.config.EEPROMPolls)
}

func (c *pic18) burnIDs(ctx context.Context, img *memory.Image) (int, error) {
	if img.ID.Count() == 0 {
		return 0, nil
	}
	if err := c.instr(ctx, bsfEEPGD, bsfCFGS, 0x86a6); err != nil {
		return 0, err
	}
	if err := c.t.SetAddress(ctx, 0x3c0006); err != nil {
		return 0, err
	}
	if err := c.t.Queue18(ctx, icsp.TWrite, 0); err != nil {
		return 0, err
	}
	if err := c.instr(ctx, bsfEEPGD, bcfCFGS); err != nil {
		return 0, err
	}
	size := img.ID.Len()
	w, err := c.writeBlock(ctx, img.ID, idBase18, 0, size, size)
	if err != nil || !w {
		return 0, err
	}
	return 1, nil
}

func (c *pic18) burnFuses(ctx context.Context, img *memory.Image) (int, error) {
	// Config writes need the core parked at an address outside program
	// memory: GOTO 0x100000.
	if err := c.instr(ctx, bsfEEPGD, bsfCFGS, 0xef00, 0xf800); err != nil {
		return 0, err
	}

	n := 0
	explained := false
	for i := 0; i < img.Config.Len(); i++ {
		want, ok := img.Config.Get(i)
		if !ok {
			continue
		}
		addr := cfgBase18 + uint32(i)
		if err := c.t.SetAddress(ctx, addr); err != nil {
			return n, err
		}
		got, err := c.t.Command18(ctx, icsp.TRead, 0)
		if err != nil {
			return n, err
		}
		if got == want {
			continue
		}

		// Odd addresses take their byte from the high half of the latch.
		w := want
		if i&1 == 1 {
			w <<= 8
		}
		if err := c.t.Queue18(ctx, icsp.TWriteProg, w); err != nil {
			return n, err
		}
		if err := c.t.Queue18(ctx, icsp.NopProg, 0); err != nil {
			return n, err
		}
		c.p.written++
		n++

		if got, err = c.t.Command18(ctx, icsp.TRead, 0); err != nil {
			return n, err
		}
		if got != want {
			c.p.logWarn("configuration byte did not verify",
				"address", hex4(addr), "programmed", hex4(want), "read", hex4(got))
			if !explained {
				c.p.logWarn("unimplemented configuration bits read as 0; the value in the input file should match the chip")
				explained = true
			}
		}
	}
	return n, nil
}

func (c *pic18) readStages() []stage {
	return []stage{
		{PhaseProgram, c.readProgram},
		{PhaseData, c.readData},
		{PhaseID, func(ctx context.Context, img *memory.Image) (int, error) {
			return c.readBytes(ctx, img.ID, idBase18, PhaseID)
		}},
		{PhaseFuses, func(ctx context.Context, img *memory.Image) (int, error) {
			return c.readBytes(ctx, img.Config, cfgBase18, PhaseFuses)
		}},
	}
}

func (c *pic18) readProgram(ctx context.Context, img *memory.Image) (int, error) {
	if c.d.ProgSize == 0 {
		c.p.logInfo("skipped program memory")
		return 0, nil
	}
	return c.readBytes(ctx, img.Program, 0, PhaseProgram)
}

// readBytes fills r with table reads starting at chip address base.
func (c *pic18) readBytes(ctx context.Context, r *memory.Region, base uint32, phase Phase) (int, error) {
	n := r.Len()
	if n == 0 {
		return 0, nil
	}
	if err := c.t.SetAddress(ctx, base); err != nil {
		return 0, err
	}
	batch := c.p.config.ReadBatch
	for i := 0; i < n; i += batch {
		k := min(batch, n-i)
		for j := 0; j < k; j++ {
			if err := c.t.Queue18(ctx, icsp.TReadInc, 0); err != nil {
				return i, err
			}
		}
		vals, err := c.t.Execute(ctx)
		if err != nil {
			return i, err
		}
		if err := store(r, i, k, vals); err != nil {
			return i, err
		}
		if err := c.p.cancelled(ctx); err != nil {
			return i, err
		}
		c.p.reportProgress(phase, i+k, n)
	}
	return n, nil
}

func (c *pic18) readData(ctx context.Context, img *memory.Image) (int, error) {
	n := c.d.DataSize
	if n == 0 {
		c.p.logInfo("skipped data memory")
		return 0, nil
	}
	if err := c.instr(ctx, bcfEEPGD, bcfCFGS); err != nil {
		return 0, err
	}
	batch := c.p.config.ReadBatch
	for i := 0; i < n; i += batch {
		k := min(batch, n-i)
		for j := 0; j < k; j++ {
			if err := c.queueEERead(ctx, i+j); err != nil {
				return i, err
			}
		}
		vals, err := c.t.Execute(ctx)
		if err != nil {
			return i, err
		}
		if err := store(img.Data, i, k, vals); err != nil {
			return i, err
		}
		if err := c.p.cancelled(ctx); err != nil {
			return i, err
		}
		c.p.reportProgress(PhaseData, i+k, n)
	}
	return n, nil
}
