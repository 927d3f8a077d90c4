package programmer

import (
	"context"

	"github.com/moffa90/go-picprog/device"
	"github.com/moffa90/go-picprog/icsp"
)

// Identify reads the device ID and returns the matching catalog entry. The
// 14-bit ID location is tried first, then the 18F and dsPIC ones. A chip
// without an ID, such as a 12-bit part or an old 14-bit one, is taken to be
// the first 14-bit entry of the catalog.
//
// An ID that matches no entry is a *device.UnknownDeviceError.
func (p *Programmer) Identify(ctx context.Context) (*device.Descriptor, error) {
	if err := p.cancelled(ctx); err != nil {
		return nil, err
	}
	p.reportProgress(PhaseIdentify, 0, 1)

	family := device.Family14
	id, err := p.readID14(ctx)
	if err != nil {
		return nil, err
	}

	var rev uint32
	if id == 0x3fff {
		if id, err = p.readID18(ctx); err != nil {
			return nil, err
		}
		family = device.Family16
		if id == 0xffff {
			if id, rev, err = p.readID30(ctx); err != nil {
				return nil, err
			}
			family = device.Family24
			if id == 0xffff || rev == 0xffff {
				return p.assume(device.Family14)
			}
		}
	}

	d, err := device.Match(family, int(id))
	if err != nil {
		return nil, err
	}
	p.reportProgress(PhaseIdentify, 1, 1)
	if family == device.Family24 {
		p.logInfo("identified device", "device", d.Name, "id", hex4(id), "version", hex4(rev))
	} else {
		p.logInfo("identified device", "device", d.Name, "id", hex4(id),
			"revision", device.Revision(d, int(id)))
	}
	return d, nil
}

func (p *Programmer) assume(f device.Family) (*device.Descriptor, error) {
	d, err := device.Default(f)
	if err != nil {
		return nil, err
	}
	p.reportProgress(PhaseIdentify, 1, 1)
	p.logInfo("no device ID, assuming default device", "device", d.Name)
	return d, nil
}

// readID14 reads the word at 0x2006.
func (p *Programmer) readID14(ctx context.Context) (uint32, error) {
	t := p.target
	if err := t.Queue(ctx, icsp.LoadConf, 0); err != nil {
		return 0, err
	}
	for i := 0; i < 6; i++ {
		if err := t.Queue(ctx, icsp.IncAddr, 0); err != nil {
			return 0, err
		}
	}
	return t.Command(ctx, icsp.DataFromProg, 0)
}

// readID18 reads DEVID1 and DEVID2 at 0x3FFFFE.
func (p *Programmer) readID18(ctx context.Context) (uint32, error) {
	t := p.target
	for _, in := range []uint32{bsfEEPGD, bcfCFGS} {
		if err := t.Queue18(ctx, icsp.Instr, in); err != nil {
			return 0, err
		}
	}
	if err := t.SetAddress(ctx, 0x3ffffe); err != nil {
		return 0, err
	}
	if err := t.Queue18(ctx, icsp.TReadInc, 0); err != nil {
		return 0, err
	}
	if err := t.Queue18(ctx, icsp.TRead, 0); err != nil {
		return 0, err
	}
	vals, err := t.Execute(ctx)
	if err != nil {
		return 0, err
	}
	if len(vals) != 2 {
		return 0, &ReadError{Region: "id", Addr: 0x3ffffe, Want: 2, Got: len(vals)}
	}
	return vals[0]&0xff | (vals[1]&0xff)<<8, nil
}

// readID30 reads the dsPIC device ID and silicon version at 0xFF0000.
func (p *Programmer) readID30(ctx context.Context) (uint32, uint32, error) {
	t := p.target
	six := func(instrs ...uint32) error {
		for _, in := range instrs {
			if err := t.Queue30(ctx, icsp.Six, in); err != nil {
				return err
			}
		}
		return nil
	}

	if err := six(nop30, nop30, gotoReset, nop30); err != nil {
		return 0, 0, err
	}
	if err := t.SetAddress30(ctx, 0xff0000); err != nil {
		return 0, 0, err
	}
	for i := 0; i < 2; i++ {
		// CLR W7; TBLRDL [W6++], [W7]; MOV W0, VISI
		if err := six(0xeb0380, 0xba0bb6, nop30, 0x883c20, nop30); err != nil {
			return 0, 0, err
		}
		if err := t.Queue30(ctx, icsp.RegOut, 0); err != nil {
			return 0, 0, err
		}
		if err := six(nop30); err != nil {
			return 0, 0, err
		}
	}
	if err := six(gotoReset, nop30); err != nil {
		return 0, 0, err
	}

	vals, err := t.Execute(ctx)
	if err != nil {
		return 0, 0, err
	}
	if len(vals) != 2 {
		return 0, 0, &ReadError{Region: "id", Addr: 0xff0000, Want: 2, Got: len(vals)}
	}
	return vals[0] & 0xffff, vals[1] & 0xffff, nil
}
