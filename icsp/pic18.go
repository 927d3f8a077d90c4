package icsp

import (
	"context"
	"time"
)

// Cmd18 is an 18F ICSP command. Commands are four bits wide; NopProg and
// NopErase are variants of the core instruction with programming and erase
// timing.
type Cmd18 uint8

// 18F commands.
const (
	Instr      Cmd18 = 000
	ShiftOut   Cmd18 = 002
	TRead      Cmd18 = 010
	TReadInc   Cmd18 = 011
	TReadDec   Cmd18 = 012
	IncTRead   Cmd18 = 013
	TWrite     Cmd18 = 014
	TWriteInc2 Cmd18 = 015
	TWriteDec2 Cmd18 = 016
	TWriteProg Cmd18 = 017
	NopProg    Cmd18 = 0100
	NopErase   Cmd18 = 0200
)

// IsRead reports whether the command shifts a byte out of the chip.
func (c Cmd18) IsRead() bool {
	switch c {
	case ShiftOut, TRead, TReadInc, TReadDec, IncTRead:
		return true
	}
	return false
}

// Command18 issues an 18F command and, for a read, returns the byte read.
// Core instructions that load the table pointer through W0 update the
// shadow address.
func (p *Port) Command18(ctx context.Context, c Cmd18, data uint32) (uint32, error) {
	return p.command18(ctx, c, data, true)
}

// Queue18 issues an 18F command; a read result is returned by Execute.
func (p *Port) Queue18(ctx context.Context, c Cmd18, data uint32) error {
	_, err := p.command18(ctx, c, data, false)
	return err
}

func (p *Port) command18(ctx context.Context, c Cmd18, data uint32, exec bool) (uint32, error) {
	if c == NopProg {
		// The fourth clock stays high for the programming time.
		if err := p.sendBits(ctx, 3, 0); err != nil {
			return 0, err
		}
		if err := p.setClockData(ctx, true, false); err != nil {
			return 0, err
		}
		if err := p.Delay(ctx, time.Millisecond); err != nil {
			return 0, err
		}
		if err := p.setClockData(ctx, false, false); err != nil {
			return 0, err
		}
		if err := p.Delay(ctx, 100*time.Microsecond); err != nil {
			return 0, err
		}
	} else {
		if err := p.sendBits(ctx, 4, uint32(c)&0xf); err != nil {
			return 0, err
		}
		if err := p.Delay(ctx, time.Microsecond); err != nil {
			return 0, err
		}
	}

	var v uint32
	var err error
	switch c {
	case NopErase, Instr, NopProg:
		if c == NopErase {
			if err := p.Delay(ctx, 10*time.Millisecond); err != nil {
				return 0, err
			}
		}
		p.mirror18(data)
		err = p.sendBits(ctx, 16, data)

	case TWriteDec2:
		p.addr -= 2
		err = p.sendBits(ctx, 16, data)

	case TWriteInc2:
		p.addr += 2
		err = p.sendBits(ctx, 16, data)

	case TWrite, TWriteProg:
		err = p.sendBits(ctx, 16, data)

	case TReadDec:
		p.addr--
		v, err = p.read(ctx, opReadByte, pendingRead{kind: readByte, addr: p.addr}, exec)

	case TReadInc, IncTRead:
		p.addr++
		v, err = p.read(ctx, opReadByte, pendingRead{kind: readByte, addr: p.addr}, exec)

	case ShiftOut, TRead:
		v, err = p.read(ctx, opReadByte, pendingRead{kind: readByte, addr: p.addr}, exec)
	}
	if err != nil {
		return 0, err
	}

	if err := p.Delay(ctx, time.Microsecond); err != nil {
		return 0, err
	}
	return v, nil
}

// mirror18 tracks MOVLW into W0 and MOVWF into TBLPTRU/H/L.
func (p *Port) mirror18(data uint32) {
	switch {
	case data&0xff00 == 0x0e00:
		p.w[0] = uint16(data & 0xff)
	case data == 0x6ef8:
		p.addr = p.addr&0x00ffff | uint32(p.w[0])<<16
	case data == 0x6ef7:
		p.addr = p.addr&0xff00ff | uint32(p.w[0])<<8
	case data == 0x6ef6:
		p.addr = p.addr&0xffff00 | uint32(p.w[0])
	}
}

// SetAddress loads the 18F table pointer with a. Nothing is sent when the
// shadow pointer already holds a non-zero a.
func (p *Port) SetAddress(ctx context.Context, a uint32) error {
	if a != 0 && p.addr == a {
		return nil
	}
	seq := []uint32{
		0x0e00 | (a&0xff0000)>>16, 0x6ef8,
		0x0e00 | (a&0x00ff00)>>8, 0x6ef7,
		0x0e00 | a&0x0000ff, 0x6ef6,
	}
	for _, instr := range seq {
		if _, err := p.command18(ctx, Instr, instr, false); err != nil {
			return err
		}
	}
	return nil
}
