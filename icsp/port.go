package icsp

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/moffa90/go-picprog/picerr"
	"github.com/moffa90/go-picprog/protocol"
)

// Transport carries adapter commands. *protocol.Framer implements it.
type Transport interface {
	GetSync(ctx context.Context) (string, error)
	Command(ctx context.Context, body []byte) ([]byte, error)
	Drain() error
}

// Logger is an optional logging interface, identical to protocol.Logger.
type Logger = protocol.Logger

// Port is an ICSP session with one target chip through the adapter. It
// keeps a shadow of the chip's address pointer and, for 18F and dsPIC
// parts, of the working registers used to load it.
//
// Operations are buffered and sent in batches. Writes only reach the chip
// when the buffer fills or on Execute, Reset or a Command that reads.
//
// Port is not safe for concurrent use.
type Port struct {
	transport Transport
	config    Config

	cmd     *cmdBuffer
	results []uint32

	addr   uint32
	w      [16]uint16
	tblpag uint16
	open   bool
}

// NewPort creates a port on t. Call Open before issuing commands.
//
// Example:
//
//	framer := protocol.NewFramer(ch)
//	port := icsp.NewPort(framer, icsp.WithLogger(myLogger))
//	if err := port.Open(ctx); err != nil {
//	    return err
//	}
//	defer port.Close(ctx)
func NewPort(t Transport, opts ...Option) *Port {
	if t == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Port{
		transport: t,
		config:    cfg,
		cmd:       newCmdBuffer(),
	}
}

// Open signs on to the adapter, enters programming mode and runs the
// power-up sequence: VDD on, MCLR to reset, clock and data low, then MCLR to
// high voltage.
func (p *Port) Open(ctx context.Context) error {
	if err := p.transport.Drain(); err != nil {
		return err
	}
	sig, err := p.transport.GetSync(ctx)
	if err != nil {
		return err
	}
	if err := p.transport.Drain(); err != nil {
		return err
	}
	p.logInfo("programmer found", "signature", sig)

	if _, err := p.transport.Command(ctx, []byte{protocol.CmdPrepareProgMode}); err != nil {
		return errors.Wrap(err, "prepare programming mode")
	}
	p.open = true
	p.cmd.reset()
	p.results = p.results[:0]

	steps := [][]byte{
		{opVDDOn},
		{opSetParam, paramClockDelay, p.config.ClockDelay},
		{opDelayMs, 250},
		{opHVResetEnable},
		{opToReset},
		{opDelayMs, 10},
		{opEnablePGCD},
		{opPGCLow},
		{opPGDLow},
		{opDelayMs, 250},
		{opToHV},
		{opDelayMs, 250},
	}
	for _, s := range steps {
		if err := p.op(ctx, s[0], s[1:]...); err != nil {
			return err
		}
	}
	if err := p.flush(ctx); err != nil {
		return errors.Wrap(err, "power up target")
	}

	return sleep(ctx, p.config.SettleTime)
}

// Close leaves programming mode. Buffered operations are sent first.
func (p *Port) Close(ctx context.Context) error {
	if !p.open {
		return nil
	}
	p.open = false

	flushErr := p.flush(ctx)
	if _, err := p.transport.Command(ctx, []byte{protocol.CmdLeaveProgMode}); err != nil {
		return errors.Wrap(err, "leave programming mode")
	}
	return flushErr
}

// Address returns the shadow of the chip's address pointer.
func (p *Port) Address() uint32 { return p.addr }

// Execute sends buffered operations and returns the results of every read
// queued since the previous Execute, in order.
func (p *Port) Execute(ctx context.Context) ([]uint32, error) {
	err := p.flush(ctx)
	out := p.results
	p.results = nil
	return out, err
}

// Delay queues a wait on the adapter. Waits under 600 µs are counted in
// 5 µs ticks; longer ones in milliseconds, split into 250 ms steps.
func (p *Port) Delay(ctx context.Context, d time.Duration) error {
	us := int(d / time.Microsecond)
	for us >= 250000 {
		if err := p.op(ctx, opDelayMs, 250); err != nil {
			return err
		}
		us -= 250000
		if us == 0 {
			return nil
		}
	}

	switch {
	case us < 600:
		if us < 5 {
			us = 5
		}
		return p.op(ctx, opDelayUs, byte((us+3)/5))
	case us <= 1000:
		return p.op(ctx, opDelayMs, 1)
	default:
		return p.op(ctx, opDelayMs, byte((us+500)/1000))
	}
}

// Reset cycles MCLR, which restarts the chip's address pointer, and sets
// the shadow pointer to resetAddr. The buffer is sent.
func (p *Port) Reset(ctx context.Context, resetAddr uint32) error {
	if err := p.setClockData(ctx, false, false); err != nil {
		return err
	}
	if err := p.Delay(ctx, 100*time.Microsecond); err != nil {
		return err
	}
	if err := p.op(ctx, opToReset); err != nil {
		return err
	}
	if err := p.Delay(ctx, 50*time.Microsecond); err != nil {
		return err
	}
	if err := p.op(ctx, opToHV); err != nil {
		return err
	}
	if err := p.Delay(ctx, 10*time.Microsecond); err != nil {
		return err
	}
	p.addr = resetAddr
	p.w = [16]uint16{}
	p.tblpag = 0
	return p.flush(ctx)
}

func (p *Port) setClockData(ctx context.Context, clk, data bool) error {
	c, d := byte(opPGCLow), byte(opPGDLow)
	if clk {
		c = opPGCHigh
	}
	if data {
		d = opPGDHigh
	}
	if err := p.op(ctx, c); err != nil {
		return err
	}
	return p.op(ctx, d)
}

// sendBits queues n bits of v, sent LSB first.
func (p *Port) sendBits(ctx context.Context, n int, v uint32) error {
	args := []byte{byte(n), byte(v)}
	if n > 8 {
		args = append(args, byte(v>>8))
	}
	if n > 16 {
		args = append(args, byte(v>>16))
	}
	if n > 24 {
		args = append(args, byte(v>>24))
	}
	return p.op(ctx, opSend, args...)
}

// read queues a read. With exec set the buffer is sent at once and the
// decoded value is returned; results of earlier queued reads stay pending
// for Execute.
func (p *Port) read(ctx context.Context, code byte, r pendingRead, exec bool) (uint32, error) {
	if err := p.queueRead(ctx, code, r); err != nil {
		return 0, err
	}
	if !exec {
		return 0, nil
	}
	if err := p.flush(ctx); err != nil {
		return 0, err
	}
	if len(p.results) == 0 {
		return 0, picerr.Errorf(picerr.DeviceFault, "no result for read at 0x%04X", r.addr)
	}
	v := p.results[len(p.results)-1]
	p.results = p.results[:len(p.results)-1]
	return v, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return picerr.E(picerr.Cancelled, "settle", ctx.Err())
	case <-t.C:
		return nil
	}
}

func (p *Port) logDebug(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Debug(msg, keysAndValues...)
	}
}

func (p *Port) logInfo(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Info(msg, keysAndValues...)
	}
}
