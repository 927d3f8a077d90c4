package icsp

import (
	"context"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/moffa90/go-picprog/picerr"
	"github.com/moffa90/go-picprog/protocol"
)

type readKind int

const (
	readProg14 readKind = iota
	readData14
	readByte
	readWord
)

// pendingRead describes a queued read so its raw result can be decoded once
// the adapter has answered.
type pendingRead struct {
	kind readKind
	addr uint32
}

// cmdBuffer accumulates adapter operations. An operation is never split
// across transactions: when the buffer fills in the middle of one, the
// partial operation moves to the next buffer.
type cmdBuffer struct {
	buf     []byte
	lastCmd int
	reads   []pendingRead
}

func newCmdBuffer() *cmdBuffer {
	b := &cmdBuffer{buf: make([]byte, 0, BufferSize)}
	b.reset()
	return b
}

func (b *cmdBuffer) reset() {
	b.buf = append(b.buf[:0], protocol.CmdRunICSP)
	b.lastCmd = 1
	b.reads = b.reads[:0]
}

// full reports whether another byte would leave no room for the trailing nop.
func (b *cmdBuffer) full() bool {
	return len(b.buf) >= BufferSize-1
}

// add appends an operation byte (isData false) or one of its argument bytes.
func (p *Port) add(ctx context.Context, c byte, isData bool) error {
	b := p.cmd
	if b.full() {
		var carry []byte
		if isData {
			carry = append(carry, b.buf[b.lastCmd:]...)
			b.buf = b.buf[:b.lastCmd]
		}
		p.logDebug("command buffer full", "count", len(b.buf), "carry", len(carry))
		if err := p.flush(ctx); err != nil {
			return err
		}
		b.buf = append(b.buf, carry...)
	}

	if !isData {
		b.lastCmd = len(b.buf)
	}
	b.buf = append(b.buf, c)
	return nil
}

func (p *Port) op(ctx context.Context, code byte, args ...byte) error {
	if err := p.add(ctx, code, false); err != nil {
		return err
	}
	for _, a := range args {
		if err := p.add(ctx, a, true); err != nil {
			return err
		}
	}
	return nil
}

// queueRead adds a read operation and records how to decode its result.
func (p *Port) queueRead(ctx context.Context, code byte, r pendingRead) error {
	if err := p.op(ctx, code); err != nil {
		return err
	}
	p.cmd.reads = append(p.cmd.reads, r)
	return nil
}

// flush runs the buffered operations on the adapter and appends their read
// results to p.results. An empty buffer is not sent.
func (p *Port) flush(ctx context.Context) error {
	b := p.cmd
	if len(b.buf) <= 1 {
		b.reset()
		return nil
	}

	body := make([]byte, len(b.buf), len(b.buf)+1)
	copy(body, b.buf)
	body = append(body, opNop)
	reads := append([]pendingRead(nil), b.reads...)
	b.reset()

	reply, err := p.transport.Command(ctx, body)
	if err != nil {
		return errors.Wrapf(err, "run icsp buffer of %d bytes", len(body))
	}

	data := reply[2:]
	if len(data) != 2*len(reads) {
		return picerr.Errorf(picerr.DeviceFault,
			"adapter returned %d bytes for %d reads", len(data), len(reads))
	}

	for i, r := range reads {
		v, err := p.decode(r, binary.LittleEndian.Uint16(data[2*i:]))
		if err != nil {
			return err
		}
		p.results = append(p.results, v)
	}
	return nil
}

func (p *Port) decode(r pendingRead, raw uint16) (uint32, error) {
	switch r.kind {
	case readProg14:
		return uint32(raw & 0x3fff), nil
	case readData14:
		frame := raw & 0x3f00
		if frame != 0x3f00 && (p.config.StrictFraming || frame != 0) {
			return 0, &FramingError{Addr: r.addr, Value: raw}
		}
		return uint32(raw & 0xff), nil
	case readByte:
		return uint32(raw & 0xff), nil
	default:
		return uint32(raw), nil
	}
}
