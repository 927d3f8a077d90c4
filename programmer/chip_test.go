package programmer

import (
	"context"
	"strings"
	"time"

	"github.com/moffa90/go-picprog/device"
	"github.com/moffa90/go-picprog/icsp"
)

// fakeChip simulates the memories of a PIC as seen through the ICSP
// commands the programmer issues. Erased cells read as all ones.
type fakeChip struct {
	family device.Family

	// 12/14-bit
	addr      uint32
	prog      map[uint32]uint32
	data      map[uint32]uint32
	dataSize  uint32
	latch     uint32
	latched   bool
	latchData bool
	armed     bool
	prev      icsp.Cmd
	stuck     map[uint32]uint32

	// 18F
	mem       map[uint32]byte
	stuck18   map[uint32]byte
	latches   map[uint32]byte
	tblptr    uint32
	w         byte
	tablat    byte
	eeadr     uint32
	eedata    byte
	ee        map[uint32]byte
	wren      bool
	busy      int
	busyPolls int
	eraseKey  bool

	// dsPIC
	six    []uint32
	regout uint32
	visi   []uint32

	pending  []uint32
	dropRead bool
	writes   int
	onWrite  func(n int)
	delay    time.Duration
	resets   []uint32
}

func newFakeChip(d *device.Descriptor) *fakeChip {
	return &fakeChip{
		family:   d.Family,
		prog:     map[uint32]uint32{},
		data:     map[uint32]uint32{},
		dataSize: uint32(d.DataSize),
		stuck:    map[uint32]uint32{},
		mem:      map[uint32]byte{},
		stuck18:  map[uint32]byte{},
		latches:  map[uint32]byte{},
		ee:       map[uint32]byte{},
		regout:   0xffff,
	}
}

// newFakeFamily returns a chip of family f that no catalog entry has to
// describe; used for identification.
func newFakeFamily(f device.Family) *fakeChip {
	return newFakeChip(&device.Descriptor{Family: f})
}

func (f *fakeChip) midrange() bool {
	return f.family == device.Family12 || f.family == device.Family14
}

func (f *fakeChip) mask() uint32 {
	if f.family == device.Family12 {
		return 0xfff
	}
	return 0x3fff
}

func (f *fakeChip) wrote() {
	f.writes++
	if f.onWrite != nil {
		f.onWrite(f.writes)
	}
}

func (f *fakeChip) Address() uint32 {
	if f.family == device.Family16 {
		return f.tblptr
	}
	return f.addr
}

func (f *fakeChip) Command(ctx context.Context, c icsp.Cmd, data uint32) (uint32, error) {
	return f.command(c, data), nil
}

func (f *fakeChip) Queue(ctx context.Context, c icsp.Cmd, data uint32) error {
	v := f.command(c, data)
	if c.IsRead() {
		f.pending = append(f.pending, v)
	}
	return nil
}

func (f *fakeChip) command(c icsp.Cmd, data uint32) uint32 {
	prev := f.prev
	f.prev = c
	switch c {
	case icsp.Command7:
		// Command 1 then 7 arms the code protection erase of the oldest
		// parts; the next BegProg runs it.
		f.armed = prev == icsp.Command1
	case icsp.LoadConf:
		f.addr = 0x2000
	case icsp.IncAddr:
		f.addr++
		if data != 0 {
			if f.addr >= data {
				f.addr = 0
			}
		} else if f.addr >= 0x4000 {
			f.addr = 0x2000
		}
	case icsp.DataFromProg:
		if !f.midrange() {
			return 0x3fff
		}
		return f.readProg(f.addr)
	case icsp.DataFromData:
		if !f.midrange() || f.dataSize == 0 {
			return 0xff
		}
		if v, ok := f.data[f.addr%f.dataSize]; ok {
			return v
		}
		return 0xff
	case icsp.DataForProg:
		f.latch, f.latched, f.latchData = data&f.mask(), true, false
	case icsp.DataForData:
		f.latch, f.latched, f.latchData = data&0xff, true, true
	case icsp.BegProg, icsp.BegProgOnly:
		if f.armed && !f.latched {
			f.armed = false
			f.eraseProg()
			f.data = map[uint32]uint32{}
		}
		f.commit()
	case icsp.EraseProg:
		f.eraseProg()
	case icsp.EraseData:
		f.data = map[uint32]uint32{}
		f.latched = false
	case icsp.ChipErase:
		f.eraseProg()
		f.data = map[uint32]uint32{}
	}
	return 0
}

func (f *fakeChip) readProg(a uint32) uint32 {
	if v, ok := f.stuck[a]; ok {
		return v
	}
	if v, ok := f.prog[a]; ok {
		return v
	}
	return f.mask()
}

// eraseProg clears program, ID and configuration memory. The device ID
// survives.
func (f *fakeChip) eraseProg() {
	for a := range f.prog {
		if a != 0x2006 {
			delete(f.prog, a)
		}
	}
	f.latched = false
}

func (f *fakeChip) commit() {
	if !f.latched {
		return
	}
	f.latched = false
	if f.latchData {
		if f.dataSize > 0 {
			f.data[f.addr%f.dataSize] = f.latch
		}
	} else {
		f.prog[f.addr] = f.latch
	}
	f.wrote()
}

func (f *fakeChip) Command18(ctx context.Context, c icsp.Cmd18, data uint32) (uint32, error) {
	return f.command18(c, data), nil
}

func (f *fakeChip) Queue18(ctx context.Context, c icsp.Cmd18, data uint32) error {
	v := f.command18(c, data)
	if c.IsRead() {
		f.pending = append(f.pending, v)
	}
	return nil
}

func (f *fakeChip) command18(c icsp.Cmd18, data uint32) uint32 {
	if f.family != device.Family16 {
		if c.IsRead() {
			return 0xff
		}
		return 0
	}
	switch c {
	case icsp.Instr, icsp.NopProg, icsp.NopErase:
		if c == icsp.NopErase && f.eraseKey {
			f.eraseKey = false
			for a := range f.mem {
				if a < 0x3ffffe {
					delete(f.mem, a)
				}
			}
			f.ee = map[uint32]byte{}
		}
		f.instr(data)
	case icsp.ShiftOut:
		return uint32(f.tablat)
	case icsp.TRead:
		return uint32(f.read18(f.tblptr))
	case icsp.TReadInc:
		v := f.read18(f.tblptr)
		f.tblptr++
		return uint32(v)
	case icsp.TWrite:
		f.latch18(data)
	case icsp.TWriteInc2:
		f.latch18(data)
		f.tblptr += 2
	case icsp.TWriteProg:
		f.latch18(data)
		f.program18(data)
	}
	return 0
}

func (f *fakeChip) read18(a uint32) byte {
	if v, ok := f.stuck18[a]; ok {
		return v
	}
	if v, ok := f.mem[a]; ok {
		return v
	}
	return 0xff
}

func (f *fakeChip) latch18(data uint32) {
	switch {
	case f.tblptr >= 0x3c0000:
		if f.tblptr == 0x3c0004 && (data == 0x0080 || data == 0x8787) {
			f.eraseKey = true
		}
	case f.tblptr >= 0x300000:
	default:
		f.latches[f.tblptr] = byte(data)
		f.latches[f.tblptr+1] = byte(data >> 8)
	}
}

func (f *fakeChip) program18(data uint32) {
	switch {
	case f.tblptr >= 0x3c0000:
		return
	case f.tblptr >= 0x300000:
		f.mem[f.tblptr] = byte(data >> (8 * (f.tblptr & 1)))
	default:
		for a, v := range f.latches {
			f.mem[a] = v
		}
		f.latches = map[uint32]byte{}
	}
	f.wrote()
}

func (f *fakeChip) instr(code uint32) {
	switch {
	case code&0xff00 == 0x0e00:
		f.w = byte(code)
	case code == 0x6ef8:
		f.tblptr = f.tblptr&0x00ffff | uint32(f.w)<<16
	case code == 0x6ef7:
		f.tblptr = f.tblptr&0xff00ff | uint32(f.w)<<8
	case code == 0x6ef6:
		f.tblptr = f.tblptr&0xffff00 | uint32(f.w)
	case code == 0x6ea9:
		f.eeadr = f.eeadr&0xff00 | uint32(f.w)
	case code == 0x6eaa:
		f.eeadr = f.eeadr&0x00ff | uint32(f.w)<<8
	case code == 0x80a6:
		f.eedata = 0xff
		if v, ok := f.ee[f.eeadr]; ok {
			f.eedata = v
		}
	case code == 0x50a8:
		f.w = f.eedata
	case code == 0x6ea8:
		f.eedata = f.w
	case code == 0x6ef5:
		f.tablat = f.w
	case code == 0x84a6:
		f.wren = true
	case code == 0x94a6:
		f.wren = false
	case code == 0x82a6:
		if f.wren {
			f.ee[f.eeadr] = f.eedata
			f.busy = f.busyPolls
			f.wrote()
		}
	case code == 0x50a6:
		v := byte(0x04)
		if f.busy > 0 {
			v |= 0x02
			f.busy--
		}
		f.w = v
	}
}

func (f *fakeChip) SetAddress(ctx context.Context, a uint32) error {
	if f.family == device.Family16 {
		f.tblptr = a
	}
	return nil
}

func (f *fakeChip) Command30(ctx context.Context, c icsp.Cmd30, data uint32) (uint32, error) {
	return f.command30(c, data), nil
}

func (f *fakeChip) Queue30(ctx context.Context, c icsp.Cmd30, data uint32) error {
	v := f.command30(c, data)
	if c == icsp.RegOut {
		f.pending = append(f.pending, v)
	}
	return nil
}

func (f *fakeChip) command30(c icsp.Cmd30, data uint32) uint32 {
	if c == icsp.Six {
		f.six = append(f.six, data)
		return 0
	}
	if f.family != device.Family24 {
		return 0xffff
	}
	if len(f.visi) > 0 {
		v := f.visi[0]
		f.visi = f.visi[1:]
		return v
	}
	return f.regout
}

func (f *fakeChip) SetAddress30(ctx context.Context, a uint32) error {
	return nil
}

func (f *fakeChip) Execute(ctx context.Context) ([]uint32, error) {
	out := f.pending
	f.pending = nil
	if f.dropRead && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (f *fakeChip) Delay(ctx context.Context, d time.Duration) error {
	f.delay += d
	return nil
}

func (f *fakeChip) Reset(ctx context.Context, resetAddr uint32) error {
	f.addr = resetAddr
	f.tblptr = 0
	f.resets = append(f.resets, resetAddr)
	return nil
}

// sixCount returns how many times instr was executed on a dsPIC core.
func (f *fakeChip) sixCount(instr uint32) int {
	n := 0
	for _, in := range f.six {
		if in == instr {
			n++
		}
	}
	return n
}

// MockLogger records messages by level.
type MockLogger struct {
	debugMsgs []string
	infoMsgs  []string
	warnMsgs  []string
	errorMsgs []string
}

func (l *MockLogger) Debug(msg string, kv ...interface{}) {
	l.debugMsgs = append(l.debugMsgs, msg)
}

func (l *MockLogger) Info(msg string, kv ...interface{}) {
	l.infoMsgs = append(l.infoMsgs, msg)
}

func (l *MockLogger) Warn(msg string, kv ...interface{}) {
	l.warnMsgs = append(l.warnMsgs, msg)
}

func (l *MockLogger) Error(msg string, kv ...interface{}) {
	l.errorMsgs = append(l.errorMsgs, msg)
}

func contains(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

var _ Target = (*fakeChip)(nil)
