package programmer

import (
	"context"
	"time"

	"github.com/moffa90/go-picprog/device"
	"github.com/moffa90/go-picprog/icsp"
	"github.com/moffa90/go-picprog/memory"
	"github.com/moffa90/go-picprog/picerr"
)

// midrange programs 12-bit and 14-bit parts. Both walk one auto-incrementing
// address pointer through program memory, ID words and configuration; data
// memory shares the pointer's low bits.
type midrange struct {
	p *Programmer
	t Target
	d *device.Descriptor

	// wrap is where the 12-bit pointer rolls over to 0; zero on 14-bit
	// parts, whose pointer wraps from 0x4000 to 0x2000 instead
	wrap uint32
}

type cellKind int

const (
	cellProgram cellKind = iota
	cellData
	cellConfig
)

// progressEvery is how many locations pass between progress reports.
const progressEvery = 64

func newMidrange(p *Programmer, d *device.Descriptor) *midrange {
	m := &midrange{p: p, t: p.target, d: d}
	if d.Family == device.Family12 {
		m.wrap = uint32(2 * d.ProgSize)
	}
	return m
}

// baseline reports whether the part is a 12-bit one. Baseline parts reset
// to the configuration word at 0xFFF and keep a backup calibration word
// after the ID locations.
func (m *midrange) baseline() bool {
	return m.d.Family == device.Family12
}

func (m *midrange) inc(ctx context.Context) error {
	return m.t.Queue(ctx, icsp.IncAddr, m.wrap)
}

// incTo steps the pointer forward until it reaches addr.
func (m *midrange) incTo(ctx context.Context, addr uint32) error {
	for n := 0; m.t.Address() != addr; n++ {
		if n > 0x8000 {
			return picerr.Errorf(picerr.Internal, "address 0x%04X not reachable from 0x%04X", addr, m.t.Address())
		}
		if err := m.inc(ctx); err != nil {
			return err
		}
	}
	return nil
}

// send queues commands that carry no data.
func (m *midrange) send(ctx context.Context, cmds ...icsp.Cmd) error {
	for _, c := range cmds {
		if err := m.t.Queue(ctx, c, 0); err != nil {
			return err
		}
	}
	return nil
}

func (m *midrange) rewind(ctx context.Context) error {
	if m.baseline() {
		// The pointer of a 12-bit part sits on the configuration word after
		// reset and wraps to 0 on the next increment.
		if err := m.t.Reset(ctx, 0xfff); err != nil {
			return err
		}
		return m.inc(ctx)
	}
	if m.t.Address() != 0 {
		return m.t.Reset(ctx, 0)
	}
	return nil
}

func (m *midrange) preserve(ctx context.Context, img *memory.Image, opts ProgramOptions) error {
	if m.d.ProgPreserved > 0 {
		var err error
		if opts.Erase {
			err = m.keepCalibration(ctx, img)
		} else {
			m.skipCalibration(img)
		}
		if err != nil {
			return err
		}
	}
	if m.d.ConfigMask != 0 && !m.baseline() {
		return m.keepConfigBits(ctx, img, opts.Erase)
	}
	return nil
}

// skipCalibration leaves the calibration words out of img so a chip that is
// not erased keeps them.
func (m *midrange) skipCalibration(img *memory.Image) {
	size := m.d.ProgSize
	for i := size - m.d.ProgPreserved; i < size; i++ {
		m.skipWord(img.Program, i)
	}
	if m.baseline() {
		m.skipWord(img.ID, 4)
	}
}

func (m *midrange) skipWord(r *memory.Region, i int) {
	addr := hex4(r.Base() + uint32(i))
	if r.Defined(i) {
		r.Clear(i)
		m.p.logWarn("calibration word not programmed, value in input file ignored", "address", addr)
		return
	}
	m.p.logInfo("calibration word not programmed", "address", addr)
}

// keepCalibration reads the calibration words off the chip before an erase
// and puts them into img.
func (m *midrange) keepCalibration(ctx context.Context, img *memory.Image) error {
	size := uint32(m.d.ProgSize)
	start := size - uint32(m.d.ProgPreserved)

	if m.baseline() || m.t.Address() > start {
		if err := m.rewind(ctx); err != nil {
			return err
		}
	}
	if err := m.incTo(ctx, start); err != nil {
		return err
	}
	for a := start; a < size; a++ {
		if a != start {
			if err := m.inc(ctx); err != nil {
				return err
			}
		}
		if err := m.keepWord(ctx, img.Program, int(a)); err != nil {
			return err
		}
	}

	if m.baseline() {
		// Backup calibration word after the four ID locations.
		if err := m.incTo(ctx, size+4); err != nil {
			return err
		}
		return m.keepWord(ctx, img.ID, 4)
	}
	return nil
}

func (m *midrange) keepWord(ctx context.Context, r *memory.Region, i int) error {
	v, err := m.t.Command(ctx, icsp.DataFromProg, 0)
	if err != nil {
		return err
	}
	v &= r.Mask()
	addr := hex4(r.Base() + uint32(i))
	if r.Defined(i) {
		m.p.logWarn("calibration word preserved, value in input file ignored", "address", addr, "value", hex4(v))
	} else {
		m.p.logInfo("calibration word preserved", "address", addr, "value", hex4(v))
	}
	return r.Set(i, v)
}

// keepConfigBits merges the masked bits of the chip's configuration word
// into img.
func (m *midrange) keepConfigBits(ctx context.Context, img *memory.Image, erase bool) error {
	mask := uint32(m.d.ConfigMask)
	if !erase && !img.Config.Defined(0) {
		m.p.logInfo("calibration bits in configuration word not programmed", "mask", hex4(mask))
		return nil
	}

	if err := m.t.Queue(ctx, icsp.LoadConf, 0); err != nil {
		return err
	}
	if err := m.incTo(ctx, 0x2007); err != nil {
		return err
	}
	v, err := m.t.Command(ctx, icsp.DataFromProg, 0)
	if err != nil {
		return err
	}
	v &= mask

	cfg, ok := img.Config.Get(0)
	if !ok {
		cfg = 0x3fff
	}
	m.p.logInfo("calibration bits in configuration word preserved", "mask", hex4(mask), "value", hex4(v))
	return img.Config.Set(0, cfg&^mask|v)
}

func (m *midrange) erase(ctx context.Context) error {
	var err error
	switch m.d.ProgType {
	case device.Flash2:
		if m.baseline() {
			// Erasing from the first ID location clears the whole chip.
			err = m.incTo(ctx, uint32(m.d.ProgSize))
		} else {
			err = m.t.Queue(ctx, icsp.LoadConf, 0x3fff)
		}
		if err == nil {
			err = m.send(ctx, icsp.EraseProg)
		}

	case device.Flash3, device.Flash5:
		if err = m.t.Queue(ctx, icsp.LoadConf, 0x3fff); err == nil {
			err = m.send(ctx, icsp.ChipErase)
		}

	case device.Flash4:
		if err = m.t.Queue(ctx, icsp.LoadConf, 0x3fff); err != nil {
			return err
		}
		if err = m.send(ctx, icsp.EraseProg); err != nil {
			return err
		}
		if err = m.t.Delay(ctx, 50*time.Millisecond); err != nil {
			return err
		}
		err = m.send(ctx, icsp.EraseData)

	case device.Flash, device.EEPROM:
		err = m.eraseProtected(ctx)

	default:
		return picerr.Errorf(picerr.Internal, "%s: no erase sequence for %s memory", m.d.Name, m.d.ProgType)
	}
	if err != nil {
		return err
	}

	if err := m.t.Delay(ctx, 50*time.Millisecond); err != nil {
		return err
	}
	return m.t.Reset(ctx, m.d.ResetAddress())
}

// eraseProtected clears code protection on the oldest flash and EEPROM
// parts, then erases data memory, which the first pass leaves alone when
// the chip was not protected.
func (m *midrange) eraseProtected(ctx context.Context) error {
	if err := m.t.Queue(ctx, icsp.LoadConf, 0x3fff); err != nil {
		return err
	}
	if err := m.incTo(ctx, 0x2007); err != nil {
		return err
	}
	if err := m.send(ctx, icsp.Command1, icsp.Command7, icsp.BegProg); err != nil {
		return err
	}
	if err := m.t.Delay(ctx, 20*time.Millisecond); err != nil {
		return err
	}
	if err := m.send(ctx, icsp.Command1, icsp.Command7); err != nil {
		return err
	}
	if err := m.t.Queue(ctx, icsp.DataForData, 0x3fff); err != nil {
		return err
	}
	return m.send(ctx, icsp.EraseData, icsp.BegProg)
}

// pulse runs the programming cycle for the part's memory technology after
// a load command.
func (m *midrange) pulse(ctx context.Context, addr uint32) error {
	type step struct {
		cmd   icsp.Cmd
		delay time.Duration
	}
	var steps []step
	switch m.d.ProgType {
	case device.Flash2:
		steps = []step{{icsp.BegProg, time.Millisecond}, {icsp.EndProg, 0}}
	case device.PROM, device.EPROM:
		// Worst case of 100 pulses of 100 µs.
		steps = []step{{icsp.BegProg, 10 * time.Millisecond}, {icsp.EndProg, 0}}
	case device.Flash3:
		if addr == 0x2007 {
			steps = []step{{icsp.BegProg, 10 * time.Millisecond}}
		} else {
			steps = []step{{icsp.BegProgOnly, time.Millisecond}, {icsp.EndProgOnly, 0}}
		}
	case device.Flash5:
		steps = []step{{icsp.BegProgOnly, time.Millisecond}, {icsp.EndProgOnly, 0}}
	case device.Flash4:
		steps = []step{{icsp.BegProg, 6 * time.Millisecond}}
	case device.Flash, device.EEPROM:
		steps = []step{{icsp.BegProg, 10 * time.Millisecond}}
	default:
		return picerr.Errorf(picerr.Internal, "unknown memory type %s", m.d.ProgType)
	}

	for _, s := range steps {
		if err := m.t.Queue(ctx, s.cmd, 0); err != nil {
			return err
		}
		if s.delay > 0 {
			if err := m.t.Delay(ctx, s.delay); err != nil {
				return err
			}
		}
	}
	return nil
}

// burn programs cell i of r at the current pointer. Undefined cells and
// cells that already hold their value are left alone. It reports whether
// the cell was written.
func (m *midrange) burn(ctx context.Context, r *memory.Region, i int, kind cellKind) (bool, error) {
	want, ok := r.Get(i)
	if !ok {
		return false, nil
	}
	rd, wr := icsp.DataFromProg, icsp.DataForProg
	if kind == cellData {
		rd, wr = icsp.DataFromData, icsp.DataForData
	}
	read := func() (uint32, error) {
		v, err := m.t.Command(ctx, rd, 0)
		return v & r.Mask(), err
	}

	got, err := read()
	if err != nil {
		return false, err
	}
	if got == want {
		return false, nil
	}

	addr := r.Base() + uint32(i)
	if err := m.t.Queue(ctx, wr, want); err != nil {
		return false, err
	}
	if err := m.pulse(ctx, addr); err != nil {
		return false, err
	}
	m.p.written++

	for try := 0; try < 2 && got != want; try++ {
		if got, err = read(); err != nil {
			return false, err
		}
	}
	if got != want {
		if kind == cellConfig {
			m.p.logWarn("configuration word did not verify, ignored: it may have hardwired or code protection bits",
				"address", hex4(addr), "programmed", hex4(want), "read", hex4(got))
			return true, nil
		}
		return false, &VerificationError{Region: r.Name(), Addr: addr, Want: want, Got: got}
	}
	return true, nil
}

func (m *midrange) programStages() []stage {
	return []stage{
		{PhaseProgram, m.burnProgram},
		{PhaseData, m.burnData},
		{PhaseID, m.burnIDs},
		{PhaseFuses, m.burnFuses},
	}
}

func (m *midrange) burnProgram(ctx context.Context, img *memory.Image) (int, error) {
	if m.d.ProgType == device.ROM || m.d.ProgSize == 0 {
		m.p.logInfo("skipped program memory")
		return 0, nil
	}
	size := uint32(m.d.ProgSize)
	n := 0
	for a := m.t.Address(); a < size; a = m.t.Address() {
		w, err := m.burn(ctx, img.Program, int(a), cellProgram)
		if err != nil {
			return n, err
		}
		if w {
			n++
		}
		if err := m.inc(ctx); err != nil {
			return n, err
		}
		if err := m.p.cancelled(ctx); err != nil {
			return n, err
		}
		if a%progressEvery == 0 {
			m.p.reportProgress(PhaseProgram, int(a), int(size))
		}
	}
	return n, nil
}

func (m *midrange) burnData(ctx context.Context, img *memory.Image) (int, error) {
	if m.d.DataType == device.ROM || m.d.DataSize == 0 {
		m.p.logInfo("skipped data memory")
		return 0, nil
	}
	if m.baseline() {
		m.p.logWarn("12-bit data memory is not supported, skipped")
		return 0, nil
	}
	n := 0
	for i := 0; i < m.d.DataSize; i++ {
		w, err := m.burn(ctx, img.Data, i, cellData)
		if err != nil {
			return n, err
		}
		if w {
			n++
		}
		if err := m.inc(ctx); err != nil {
			return n, err
		}
		if err := m.p.cancelled(ctx); err != nil {
			return n, err
		}
		if i%progressEvery == 0 {
			m.p.reportProgress(PhaseData, i, m.d.DataSize)
		}
	}
	return n, nil
}

func (m *midrange) burnIDs(ctx context.Context, img *memory.Image) (int, error) {
	var err error
	if m.baseline() {
		err = m.incTo(ctx, uint32(m.d.ProgSize))
	} else {
		err = m.t.Queue(ctx, icsp.LoadConf, 0x3fff)
	}
	if err != nil {
		return 0, err
	}

	n := 0
	for i := 0; i < img.ID.Len(); i++ {
		w, err := m.burn(ctx, img.ID, i, cellProgram)
		if err != nil {
			return n, err
		}
		if w {
			n++
		}
		if err := m.inc(ctx); err != nil {
			return n, err
		}
		if err := m.p.cancelled(ctx); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (m *midrange) burnFuses(ctx context.Context, img *memory.Image) (int, error) {
	if m.baseline() {
		// The configuration word is only reachable right after a reset.
		if err := m.t.Reset(ctx, 0xfff); err != nil {
			return 0, err
		}
		w, err := m.burn(ctx, img.Config, 0, cellConfig)
		if err != nil || !w {
			return 0, err
		}
		return 1, nil
	}

	if err := m.incTo(ctx, 0x2006); err != nil {
		return 0, err
	}
	n := 0
	for i := 0; i < img.Config.Len(); i++ {
		if err := m.inc(ctx); err != nil {
			return n, err
		}
		w, err := m.burn(ctx, img.Config, i, cellConfig)
		if err != nil {
			return n, err
		}
		if w {
			n++
		}
	}
	return n, nil
}

func (m *midrange) readStages() []stage {
	return []stage{
		{PhaseProgram, m.readProgram},
		{PhaseData, m.readData},
		{PhaseID, m.readIDs},
		{PhaseFuses, m.readFuses},
	}
}

func (m *midrange) readProgram(ctx context.Context, img *memory.Image) (int, error) {
	if m.d.ProgSize == 0 {
		m.p.logInfo("skipped program memory")
		return 0, nil
	}
	return m.readRun(ctx, img.Program, icsp.DataFromProg, PhaseProgram)
}

func (m *midrange) readData(ctx context.Context, img *memory.Image) (int, error) {
	if m.d.DataSize == 0 {
		m.p.logInfo("skipped data memory")
		return 0, nil
	}
	if m.baseline() {
		m.p.logWarn("12-bit data memory is not supported, skipped")
		return 0, nil
	}
	return m.readRun(ctx, img.Data, icsp.DataFromData, PhaseData)
}

func (m *midrange) readIDs(ctx context.Context, img *memory.Image) (int, error) {
	var err error
	if m.baseline() {
		err = m.incTo(ctx, uint32(m.d.ProgSize))
	} else {
		err = m.t.Queue(ctx, icsp.LoadConf, 0)
	}
	if err != nil {
		return 0, err
	}
	return m.readRun(ctx, img.ID, icsp.DataFromProg, PhaseID)
}

func (m *midrange) readFuses(ctx context.Context, img *memory.Image) (int, error) {
	var err error
	if m.baseline() {
		err = m.t.Reset(ctx, 0xfff)
	} else {
		err = m.incTo(ctx, 0x2007)
	}
	if err != nil {
		return 0, err
	}
	return m.readRun(ctx, img.Config, icsp.DataFromProg, PhaseFuses)
}

// readRun reads every cell of r starting at the current pointer, queueing
// ReadBatch reads per round trip.
func (m *midrange) readRun(ctx context.Context, r *memory.Region, c icsp.Cmd, phase Phase) (int, error) {
	n := r.Len()
	batch := m.p.config.ReadBatch
	for i := 0; i < n; i += batch {
		k := min(batch, n-i)
		for j := 0; j < k; j++ {
			if err := m.t.Queue(ctx, c, 0); err != nil {
				return i, err
			}
			if err := m.inc(ctx); err != nil {
				return i, err
			}
		}
		vals, err := m.t.Execute(ctx)
		if err != nil {
			return i, err
		}
		if err := store(r, i, k, vals); err != nil {
			return i, err
		}
		if err := m.p.cancelled(ctx); err != nil {
			return i, err
		}
		m.p.reportProgress(phase, i+k, n)
	}
	return n, nil
}

// store puts a batch of k values read from index i into r.
func store(r *memory.Region, i, k int, vals []uint32) error {
	if len(vals) != k {
		return &ReadError{Region: r.Name(), Addr: r.Base() + uint32(i), Want: k, Got: len(vals)}
	}
	for j, v := range vals {
		if err := r.Set(i+j, v); err != nil {
			return picerr.E(picerr.Internal, "store", err)
		}
	}
	return nil
}
