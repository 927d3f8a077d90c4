package icsp

import "context"

// Cmd30 is a dsPIC30 ICSP command.
type Cmd30 uint8

const (
	// Six executes one 24-bit instruction on the core.
	Six Cmd30 = 0

	// RegOut shifts the VISI register out of the chip.
	RegOut Cmd30 = 1
)

// Command30 issues a dsPIC30 command. Six returns zero; RegOut returns the
// 16-bit VISI value. Instructions that move literals into W registers, clear
// them, load TBLPAG or post-increment through table reads and writes update
// the shadow address, which is TBLPAG:W6.
func (p *Port) Command30(ctx context.Context, c Cmd30, data uint32) (uint32, error) {
	return p.command30(ctx, c, data, true)
}

// Queue30 issues a dsPIC30 command; a RegOut result is returned by Execute.
func (p *Port) Queue30(ctx context.Context, c Cmd30, data uint32) error {
	_, err := p.command30(ctx, c, data, false)
	return err
}

func (p *Port) command30(ctx context.Context, c Cmd30, data uint32, exec bool) (uint32, error) {
	switch c {
	case Six:
		if err := p.sendBits(ctx, 4, uint32(Six)); err != nil {
			return 0, err
		}
		p.mirror30(data)
		return 0, p.sendBits(ctx, 24, data&0xffffff)
	case RegOut:
		return p.read(ctx, opRead16, pendingRead{kind: readWord, addr: p.addr}, exec)
	}
	return 0, nil
}

// mirror30 decodes the instructions the programming sequences use to move
// the table address.
func (p *Port) mirror30(d uint32) {
	switch {
	case d&0xf00000 == 0x200000:
		// MOV #lit16, Wn
		p.w[d&15] = uint16(d >> 4)

	case d&0xfff87f == 0xeb0000:
		// CLR Wn
		p.w[(d>>7)&15] = 0

	case d&0xfffff0 == 0x880190:
		// MOV Wn, TBLPAG
		p.tblpag = p.w[d&15] & 0xff

	case d&0xfe0000 == 0xba0000:
		// TBLRDL/H and TBLWTL/H with register indirect addressing
		inc := uint16(2)
		if d&0x4000 != 0 {
			inc = 1
		}
		if (d>>4)&7 == 3 {
			p.w[d&15] += inc
		}
		switch (d >> 11) & 7 {
		case 3, 5:
			p.w[(d>>7)&15] += inc
		}
	}
	p.addr = uint32(p.tblpag)<<16 | uint32(p.w[6])
}

// SetAddress30 loads TBLPAG:W6 with a. Nothing is sent when the shadow
// address already holds a non-zero a.
func (p *Port) SetAddress30(ctx context.Context, a uint32) error {
	if a != 0 && p.addr == a {
		return nil
	}
	seq := []uint32{
		0x200000 | (a&0xff0000)>>12, // MOV #page, W0
		0x880190,                    // MOV W0, TBLPAG
		0x200006 | (a&0x00ffff)<<4,  // MOV #offset, W6
	}
	for _, instr := range seq {
		if _, err := p.command30(ctx, Six, instr, false); err != nil {
			return err
		}
	}
	return nil
}
