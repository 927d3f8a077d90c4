package icsp

import (
	"context"
	"time"
)

// Cmd is a 12/14-bit ICSP command. Commands are six bits wide.
type Cmd uint8

// 12/14-bit commands.
const (
	LoadConf     Cmd = 000
	Command1     Cmd = 001
	DataForProg  Cmd = 002
	DataForData  Cmd = 003
	DataFromProg Cmd = 004
	DataFromData Cmd = 005
	IncAddr      Cmd = 006
	Command7     Cmd = 007
	BegProg      Cmd = 010
	EraseProg    Cmd = 011
	EraseData    Cmd = 013
	EndProg      Cmd = 016
	EndProgOnly  Cmd = 027
	BegProgOnly  Cmd = 030
	ChipErase    Cmd = 037
)

// IsRead reports whether the command shifts a word out of the chip.
func (c Cmd) IsRead() bool {
	return c == DataFromProg || c == DataFromData
}

// Command issues a 12/14-bit command and, for a read, returns the value
// read. For IncAddr a non-zero data is the wrap point of the address
// counter, used on 12-bit parts; otherwise the counter wraps from 0x4000
// back to 0x2000.
//
// Example:
//
//	_, _ = port.Command(ctx, icsp.LoadConf, 0x3fff)
//	for i := 0; i < 7; i++ {
//	    _, _ = port.Command(ctx, icsp.IncAddr, 0)
//	}
//	cfg, err := port.Command(ctx, icsp.DataFromProg, 0)
func (p *Port) Command(ctx context.Context, c Cmd, data uint32) (uint32, error) {
	return p.command(ctx, c, data, true)
}

// Queue issues a command like Command, but a read is only queued; its
// result is returned by the next Execute.
func (p *Port) Queue(ctx context.Context, c Cmd, data uint32) error {
	_, err := p.command(ctx, c, data, false)
	return err
}

func (p *Port) command(ctx context.Context, c Cmd, data uint32, exec bool) (uint32, error) {
	if err := p.sendBits(ctx, 6, uint32(c)); err != nil {
		return 0, err
	}

	var v uint32
	switch c {
	case IncAddr:
		p.addr++
		if data != 0 {
			if p.addr >= data {
				p.addr = 0
			}
		} else if p.addr >= 0x4000 {
			p.addr = 0x2000
		}

	case DataFromProg, DataFromData:
		if err := p.Delay(ctx, time.Microsecond); err != nil {
			return 0, err
		}
		kind := readProg14
		if c == DataFromData {
			kind = readData14
		}
		var err error
		if v, err = p.read(ctx, opRead14, pendingRead{kind: kind, addr: p.addr}, exec); err != nil {
			return 0, err
		}

	case LoadConf, DataForProg, DataForData:
		if c == LoadConf {
			p.addr = 0x2000
		}
		if err := p.Delay(ctx, time.Microsecond); err != nil {
			return 0, err
		}
		if err := p.sendBits(ctx, 16, (data&0x3fff)<<1); err != nil {
			return 0, err
		}
	}

	if err := p.Delay(ctx, time.Microsecond); err != nil {
		return 0, err
	}
	return v, nil
}
