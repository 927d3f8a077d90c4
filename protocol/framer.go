package protocol

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/moffa90/go-picprog/picerr"
)

// Framer exchanges STK500v2 frames with the adapter over a Channel. It owns
// the sequence counter: every request carries the current number and the
// counter advances when a reply with that number has been framed.
//
// Framer is not safe for concurrent use; the link is half-duplex.
type Framer struct {
	ch     Channel
	config Config
	seq    byte
	buf    []byte
	rx     []byte
}

// NewFramer creates a Framer on ch.
//
// Example:
//
//	port, _ := serialport.Open("/dev/ttyACM0", 115200)
//	f := protocol.NewFramer(port, protocol.WithLogger(myLogger))
//	if _, err := f.GetSync(ctx); err != nil {
//	    return err
//	}
func NewFramer(ch Channel, opts ...Option) *Framer {
	if ch == nil {
		panic("channel cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Framer{
		ch:     ch,
		config: cfg,
		seq:    1,
		buf:    make([]byte, 2*(MaxBodySize+Overhead)),
	}
}

// Seq returns the sequence number the next request will carry.
func (f *Framer) Seq() byte { return f.seq }

// Reset restarts the sequence counter and discards pending input.
func (f *Framer) Reset() error {
	f.seq = 1
	return f.Drain()
}

// Drain discards unread input on the framer and the channel.
func (f *Framer) Drain() error {
	f.rx = nil
	if err := f.ch.Drain(); err != nil {
		return picerr.E(picerr.IO, "drain", errors.Wrap(err, "discard channel input"))
	}
	return nil
}

// Send frames body with the current sequence number and writes it.
func (f *Framer) Send(body []byte) error {
	frame, err := EncodeFrame(f.seq, body)
	if err != nil {
		return err
	}
	f.logDebug("send", "seq", f.seq, "frame", frame)
	if err := f.ch.Send(frame); err != nil {
		return picerr.E(picerr.IO, "send", errors.Wrapf(err, "frame seq %d", f.seq))
	}
	return nil
}

// Receive reads the next frame carrying the current sequence number and
// returns its body. Noise and frames with another sequence number are
// skipped. A frame failing its checksum yields a ChecksumError, and a
// TimeoutError is returned once no byte has advanced a frame for the
// configured timeout.
func (f *Framer) Receive(ctx context.Context) ([]byte, error) {
	r := newReceiver(f.seq)
	last := f.config.Clock.Now()

	for {
		if err := ctx.Err(); err != nil {
			return nil, picerr.E(picerr.Cancelled, "receive", err)
		}

		if len(f.rx) == 0 {
			n, err := f.ch.Recv(f.buf)
			if err != nil {
				return nil, picerr.E(picerr.IO, "receive", errors.Wrap(err, "read channel"))
			}
			f.rx = f.buf[:n]
		}

		for len(f.rx) > 0 {
			c := f.rx[0]
			f.rx = f.rx[1:]

			progress, err := r.feed(c)
			if progress {
				last = f.config.Clock.Now()
			}
			if err != nil {
				f.logDebug("receive failed", "seq", f.seq, "error", err)
				return nil, err
			}
			if r.state == done {
				f.seq++
				body := make([]byte, len(r.body))
				copy(body, r.body)
				f.logDebug("recv", "seq", f.seq-1, "body", body)
				return body, nil
			}
		}

		if f.config.Clock.Now().Sub(last) > f.config.Timeout {
			return nil, &TimeoutError{Timeout: f.config.Timeout}
		}
	}
}

// GetSync signs on to the adapter and returns its signature. An adapter
// with an unknown signature is accepted with a warning.
func (f *Framer) GetSync(ctx context.Context) (string, error) {
	var last error
	for attempt := 0; attempt <= f.config.Retries; attempt++ {
		if err := f.Send(SignOn()); err != nil {
			return "", err
		}

		reply, err := f.Receive(ctx)
		if err != nil {
			if fatal(err) {
				return "", err
			}
			last = err
			continue
		}

		sig, err := ParseSignOn(reply)
		if err != nil {
			last = err
			continue
		}

		if strings.HasPrefix(sig, Signature) {
			f.logDebug("stk500v2 found", "signature", sig)
		} else {
			f.logWarn("response from unknown programmer, assuming STK500", "signature", sig)
		}
		return sig, nil
	}

	return "", picerr.E(picerr.Protocol, "getsync",
		errors.Wrapf(last, "can't communicate with programmer after %d attempts", f.config.Retries+1))
}

// Command sends body and returns the adapter's reply. The reply echoes the
// command byte and carries a status byte:
//
//	[CMD][STATUS][DATA...]
//
// Short, garbled and lost replies are retried after signing on again.
// The two timeout statuses are retried with a warning. Any other non-OK
// status is returned as a StatusError without retry.
func (f *Framer) Command(ctx context.Context, body []byte) ([]byte, error) {
	if len(body) == 0 {
		return nil, picerr.Errorf(picerr.Internal, "empty command")
	}

	var last error
	resync := false
	for attempt := 0; attempt <= f.config.Retries; attempt++ {
		if resync {
			resync = false
			if err := f.Drain(); err != nil {
				return nil, err
			}
			if _, err := f.GetSync(ctx); err != nil {
				if fatal(err) {
					return nil, err
				}
				last = err
				resync = true
				continue
			}
		}

		if err := f.Send(body); err != nil {
			return nil, err
		}

		reply, err := f.Receive(ctx)
		switch {
		case err != nil:
			if fatal(err) {
				return nil, err
			}
			last = err
			resync = true

		case len(reply) < 2:
			last = picerr.Errorf(picerr.Protocol, "short reply to command 0x%02X", body[0])
			resync = true

		case reply[0] != body[0]:
			last = picerr.Errorf(picerr.Protocol, "reply to command 0x%02X echoes 0x%02X", body[0], reply[0])
			resync = true

		case reply[1] == StatusOK:
			return reply, nil

		default:
			se := &StatusError{Command: body[0], Status: reply[1]}
			if !se.Retryable() {
				f.logError("command failed", "command", body[0], "status", reply[1])
				return nil, se
			}
			f.logWarn(se.Error())
			last = se
		}
	}

	return nil, picerr.E(picerr.Protocol, "command",
		errors.Wrapf(last, "failed to execute command 0x%02X", body[0]))
}

// fatal reports errors that no retry can cure.
func fatal(err error) bool {
	k := picerr.KindOf(err)
	return k == picerr.Cancelled || k == picerr.IO
}

func (f *Framer) logDebug(msg string, keysAndValues ...interface{}) {
	if f.config.Logger != nil {
		f.config.Logger.Debug(msg, keysAndValues...)
	}
}

func (f *Framer) logWarn(msg string, keysAndValues ...interface{}) {
	if f.config.Logger != nil {
		f.config.Logger.Warn(msg, keysAndValues...)
	}
}

func (f *Framer) logError(msg string, keysAndValues ...interface{}) {
	if f.config.Logger != nil {
		f.config.Logger.Error(msg, keysAndValues...)
	}
}
