package programmer

import (
	"context"
	"time"

	"github.com/moffa90/go-picprog/device"
	"github.com/moffa90/go-picprog/icsp"
	"github.com/moffa90/go-picprog/memory"
)

// dspic programs dsPIC30 parts by executing instructions on the core.
//
// Program memory is held in the image as four bytes per instruction at
// twice the program counter: low, middle and high byte, then a phantom
// byte. Configuration registers and data EEPROM are 16-bit words stored as
// little-endian byte pairs.
type dspic struct {
	p *Programmer
	t Target
	d *device.Descriptor
}

const (
	nop30      = 0x000000
	gotoReset  = 0x040100 // GOTO 0x100
	movVISIW7  = 0x207847 // MOV #VISI, W7
	rowInstrs  = 32
	cfgBase30  = 0xf80000
	dataTop30  = 0x800000
	rowBytes30 = rowInstrs * 4
)

func newDSPIC(p *Programmer, d *device.Descriptor) *dspic {
	return &dspic{p: p, t: p.target, d: d}
}

// movW encodes MOV #lit, Wn.
func movW(lit uint32, n uint32) uint32 {
	return 0x200000 | (lit&0xffff)<<4 | n
}

func (c *dspic) six(ctx context.Context, instrs ...uint32) error {
	for _, in := range instrs {
		if err := c.t.Queue30(ctx, icsp.Six, in); err != nil {
			return err
		}
	}
	return nil
}

// exitReset moves the core off the reset vector.
func (c *dspic) exitReset(ctx context.Context) error {
	return c.six(ctx, nop30, nop30, gotoReset, nop30)
}

// write starts the NVM operation loaded into NVMCON and waits for it.
func (c *dspic) write(ctx context.Context) error {
	err := c.six(ctx,
		0x200558, 0x883b38, // 0x55 to NVMKEY
		0x200aa9, 0x883b39, // 0xAA to NVMKEY
		0xa8e761, nop30, nop30, // BSET NVMCON, WR
	)
	if err != nil {
		return err
	}
	if err := c.t.Delay(ctx, 2*time.Millisecond); err != nil {
		return err
	}
	return c.six(ctx, 0xa9e761, nop30, nop30) // BCLR NVMCON, WR
}

func (c *dspic) preserve(ctx context.Context, img *memory.Image, opts ProgramOptions) error {
	return nil
}

func (c *dspic) rewind(ctx context.Context) error {
	return c.exitReset(ctx)
}

func (c *dspic) erase(ctx context.Context) error {
	if err := c.exitReset(ctx); err != nil {
		return err
	}
	// NVMCON = 0x407F, erase all
	if err := c.six(ctx, 0x2407fa, 0x883b0a); err != nil {
		return err
	}
	if err := c.write(ctx); err != nil {
		return err
	}
	if err := c.t.Delay(ctx, 50*time.Millisecond); err != nil {
		return err
	}
	return c.t.Reset(ctx, c.d.ResetAddress())
}

// readCode reads n instructions starting at program counter pc.
func (c *dspic) readCode(ctx context.Context, pc uint32, n int) ([]uint32, error) {
	if err := c.exitReset(ctx); err != nil {
		return nil, err
	}
	if err := c.t.SetAddress30(ctx, pc); err != nil {
		return nil, err
	}
	if err := c.six(ctx, movVISIW7, nop30); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		// TBLRDL [W6], [W7] then TBLRDH [W6++], [W7]
		for _, rd := range []uint32{0xba0b96, 0xba8bb6} {
			if err := c.six(ctx, rd, nop30, nop30); err != nil {
				return nil, err
			}
			if err := c.t.Queue30(ctx, icsp.RegOut, 0); err != nil {
				return nil, err
			}
			if err := c.six(ctx, nop30); err != nil {
				return nil, err
			}
		}
	}
	if err := c.six(ctx, gotoReset, nop30); err != nil {
		return nil, err
	}

	vals, err := c.t.Execute(ctx)
	if err != nil {
		return nil, err
	}
	if len(vals) != 2*n {
		return nil, &ReadError{Region: "program", Addr: pc, Want: n, Got: len(vals) / 2}
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = vals[2*i]&0xffff | (vals[2*i+1]&0xff)<<16
	}
	return out, nil
}

// readWords reads n 16-bit words starting at program counter pc.
func (c *dspic) readWords(ctx context.Context, region string, pc uint32, n int) ([]uint32, error) {
	out := make([]uint32, 0, n)
	batch := c.p.config.ReadBatch
	for i := 0; i < n; i += batch {
		k := min(batch, n-i)
		if err := c.exitReset(ctx); err != nil {
			return nil, err
		}
		if err := c.t.SetAddress30(ctx, pc+uint32(2*i)); err != nil {
			return nil, err
		}
		if err := c.six(ctx, movVISIW7, nop30); err != nil {
			return nil, err
		}
		for j := 0; j < k; j++ {
			// TBLRDL [W6++], [W7]
			if err := c.six(ctx, 0xba0bb6, nop30, nop30); err != nil {
				return nil, err
			}
			if err := c.t.Queue30(ctx, icsp.RegOut, 0); err != nil {
				return nil, err
			}
			if err := c.six(ctx, nop30); err != nil {
				return nil, err
			}
		}
		if err := c.six(ctx, gotoReset, nop30); err != nil {
			return nil, err
		}
		vals, err := c.t.Execute(ctx)
		if err != nil {
			return nil, err
		}
		if len(vals) != k {
			return nil, &ReadError{Region: region, Addr: pc + uint32(2*i), Want: k, Got: len(vals)}
		}
		for _, v := range vals {
			out = append(out, v&0xffff)
		}
		if err := c.p.cancelled(ctx); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// instruction returns the 24-bit instruction at image index i, the mask of
// its defined bytes and whether any byte is defined. The phantom byte is
// ignored.
func instruction(r *memory.Region, i int) (uint32, uint32, bool) {
	var v, mask uint32
	for k := 0; k < 3; k++ {
		b, ok := r.Get(i + k)
		if !ok {
			b = 0xff
		} else {
			mask |= 0xff << (8 * k)
		}
		v |= (b & 0xff) << (8 * k)
	}
	return v, mask, mask != 0
}

// word returns the 16-bit register at image index i, in the same form as
// instruction.
func word(r *memory.Region, i int) (uint32, uint32, bool) {
	var v, mask uint32
	for k := 0; k < 2; k++ {
		b, ok := r.Get(i + k)
		if !ok {
			b = 0xff
		} else {
			mask |= 0xff << (8 * k)
		}
		v |= (b & 0xff) << (8 * k)
	}
	return v, mask, mask != 0
}

func (c *dspic) programStages() []stage {
	return []stage{
		{PhaseProgram, c.burnProgram},
		{PhaseData, c.burnData},
		{PhaseID, func(context.Context, *memory.Image) (int, error) { return 0, nil }},
		{PhaseFuses, c.burnFuses},
	}
}

func (c *dspic) burnProgram(ctx context.Context, img *memory.Image) (int, error) {
	if c.d.ProgType == device.ROM || c.d.ProgSize == 0 {
		c.p.logInfo("skipped program memory")
		return 0, nil
	}
	rows := c.d.ProgSize / rowBytes30
	n := 0
	for row := 0; row < rows; row++ {
		idx := row * rowBytes30
		defined := false
		for i := 0; i < rowBytes30 && !defined; i += 4 {
			_, _, defined = instruction(img.Program, idx+i)
		}
		if !defined {
			continue
		}

		bad, err := c.verifyRow(ctx, img.Program, idx)
		if err != nil {
			return n, err
		}
		if bad == nil {
			continue
		}
		if err := c.writeRow(ctx, img.Program, idx); err != nil {
			return n, err
		}
		c.p.written++
		n++
		if bad, err = c.verifyRow(ctx, img.Program, idx); err != nil {
			return n, err
		}
		if bad != nil {
			return n, bad
		}

		if err := c.p.cancelled(ctx); err != nil {
			return n, err
		}
		c.p.reportProgress(PhaseProgram, row, rows)
	}
	return n, nil
}

// verifyRow returns the first instruction of the row at image index idx
// whose defined bytes differ from the chip, or nil.
func (c *dspic) verifyRow(ctx context.Context, r *memory.Region, idx int) (*VerificationError, error) {
	pc := uint32(idx / 2)
	got, err := c.readCode(ctx, pc, rowInstrs)
	if err != nil {
		return nil, err
	}
	for i, g := range got {
		want, mask, ok := instruction(r, idx+4*i)
		if !ok || g&mask == want&mask {
			continue
		}
		return &VerificationError{Region: r.Name(), Addr: pc + uint32(2*i), Want: want & mask, Got: g & mask}, nil
	}
	return nil, nil
}

// writeRow loads the 32 instructions of a row into the write latches,
// four at a time through W0..W5, and programs the row.
func (c *dspic) writeRow(ctx context.Context, r *memory.Region, idx int) error {
	pc := uint32(idx / 2)
	if err := c.exitReset(ctx); err != nil {
		return err
	}
	err := c.six(ctx,
		0x24001a, 0x883b0a, // NVMCON = 0x4001, row program
		movW(pc>>16, 0), 0x880190, // TBLPAG
		movW(pc, 7),
	)
	if err != nil {
		return err
	}

	for g := 0; g < rowInstrs/4; g++ {
		var lsw, msb [4]uint32
		for j := range lsw {
			v, _, _ := instruction(r, idx+16*g+4*j)
			lsw[j] = v & 0xffff
			msb[j] = v >> 16
		}
		err := c.six(ctx,
			movW(lsw[0], 0),
			movW(msb[1]<<8|msb[0], 1),
			movW(lsw[1], 2),
			movW(lsw[2], 3),
			movW(msb[3]<<8|msb[2], 4),
			movW(lsw[3], 5),
			0xeb0300, nop30, // CLR W6
		)
		if err != nil {
			return err
		}
		for _, wt := range []uint32{
			0xbb0bb6, 0xbbdbb6, 0xbbebb6, 0xbb1bb6,
			0xbb0bb6, 0xbbdbb6, 0xbbebb6, 0xbb1bb6,
		} {
			if err := c.six(ctx, wt, nop30, nop30); err != nil {
				return err
			}
		}
	}

	if err := c.write(ctx); err != nil {
		return err
	}
	return c.six(ctx, gotoReset, nop30)
}

func (c *dspic) burnData(ctx context.Context, img *memory.Image) (int, error) {
	if c.d.DataType == device.ROM || c.d.DataSize == 0 {
		c.p.logInfo("skipped data memory")
		return 0, nil
	}
	if img.Data.Count() == 0 {
		return 0, nil
	}
	base := uint32(dataTop30 - c.d.DataSize)
	words := c.d.DataSize / 2
	chip, err := c.readWords(ctx, "data", base, words)
	if err != nil {
		return 0, err
	}

	n := 0
	for j := 0; j < words; j++ {
		want, mask, ok := word(img.Data, 2*j)
		if !ok || chip[j]&mask == want&mask {
			continue
		}
		v := want&mask | chip[j]&^mask
		pc := base + uint32(2*j)

		if err := c.exitReset(ctx); err != nil {
			return n, err
		}
		err := c.six(ctx,
			0x24004a, 0x883b0a, // NVMCON = 0x4004, data word
			movW(0x7f, 0), 0x880190, // TBLPAG
			movW(pc, 7),
			movW(v, 0),
			0xbb0b80, nop30, nop30, // TBLWTL W0, [W7]
		)
		if err != nil {
			return n, err
		}
		if err := c.write(ctx); err != nil {
			return n, err
		}
		c.p.written++
		n++

		got, err := c.readWords(ctx, "data", pc, 1)
		if err != nil {
			return n, err
		}
		if got[0] != v {
			return n, &VerificationError{Region: "data", Addr: pc, Want: v, Got: got[0]}
		}
		c.p.reportProgress(PhaseData, j, words)
	}
	return n, nil
}

func (c *dspic) burnFuses(ctx context.Context, img *memory.Image) (int, error) {
	regs := img.Config.Len() / 2
	if regs == 0 || img.Config.Count() == 0 {
		return 0, nil
	}
	chip, err := c.readWords(ctx, "config", cfgBase30, regs)
	if err != nil {
		return 0, err
	}

	n := 0
	for j := 0; j < regs; j++ {
		want, mask, ok := word(img.Config, 2*j)
		if !ok || chip[j]&mask == want&mask {
			continue
		}
		v := want&mask | chip[j]&^mask
		pc := uint32(cfgBase30 + 2*j)

		if err := c.exitReset(ctx); err != nil {
			return n, err
		}
		err := c.six(ctx,
			movW(0xf8, 0), 0x880190, // TBLPAG
			movW(pc, 7),
			0x24008a, 0x883b0a, // NVMCON = 0x4008, config register
			movW(v, 6), nop30,
			0xbb1b86, nop30, nop30, // TBLWTL W6, [W7++]
		)
		if err != nil {
			return n, err
		}
		if err := c.write(ctx); err != nil {
			return n, err
		}
		c.p.written++
		n++

		got, err := c.readWords(ctx, "config", pc, 1)
		if err != nil {
			return n, err
		}
		if got[0] != v {
			c.p.logWarn("configuration register did not verify, ignored: it may have unimplemented bits",
				"address", hex4(pc), "programmed", hex4(v), "read", hex4(got[0]))
		}
	}
	return n, nil
}

func (c *dspic) readStages() []stage {
	return []stage{
		{PhaseProgram, c.readProgram},
		{PhaseData, c.readData},
		{PhaseFuses, c.readFuses},
	}
}

func (c *dspic) readProgram(ctx context.Context, img *memory.Image) (int, error) {
	n := c.d.ProgSize / 4
	if n == 0 {
		c.p.logInfo("skipped program memory")
		return 0, nil
	}
	batch := c.p.config.ReadBatch
	for i := 0; i < n; i += batch {
		k := min(batch, n-i)
		code, err := c.readCode(ctx, uint32(2*i), k)
		if err != nil {
			return i, err
		}
		for j, v := range code {
			idx := 4 * (i + j)
			for b, x := range []uint32{v & 0xff, v >> 8 & 0xff, v >> 16, 0} {
				if err := img.Program.Set(idx+b, x); err != nil {
					return i, err
				}
			}
		}
		if err := c.p.cancelled(ctx); err != nil {
			return i, err
		}
		c.p.reportProgress(PhaseProgram, i+k, n)
	}
	return n, nil
}

// storeWords puts 16-bit words into r as little-endian byte pairs.
func storeWords(r *memory.Region, words []uint32) error {
	for j, v := range words {
		if err := r.Set(2*j, v&0xff); err != nil {
			return err
		}
		if err := r.Set(2*j+1, v>>8&0xff); err != nil {
			return err
		}
	}
	return nil
}

func (c *dspic) readData(ctx context.Context, img *memory.Image) (int, error) {
	if c.d.DataSize == 0 {
		c.p.logInfo("skipped data memory")
		return 0, nil
	}
	words, err := c.readWords(ctx, "data", uint32(dataTop30-c.d.DataSize), c.d.DataSize/2)
	if err != nil {
		return 0, err
	}
	return len(words), storeWords(img.Data, words)
}

func (c *dspic) readFuses(ctx context.Context, img *memory.Image) (int, error) {
	words, err := c.readWords(ctx, "config", cfgBase30, img.Config.Len()/2)
	if err != nil {
		return 0, err
	}
	return len(words), storeWords(img.Config, words)
}
