package serialport

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	"github.com/moffa90/go-picprog/picerr"
)

// conn is the part of a driver's port that Port needs.
type conn interface {
	io.ReadWriteCloser

	// ResetInputBuffer discards unread input.
	ResetInputBuffer() error
}

// Port is a serial line to the programmer adapter. It implements
// protocol.Channel.
type Port struct {
	name string
	conn conn
}

// Config holds the line settings.
type Config struct {
	// Baud is the line speed
	Baud int

	// PollInterval bounds how long Recv waits for input
	PollInterval time.Duration
}

// DefaultBaud is the adapter's line speed.
const DefaultBaud = 115200

func defaultConfig() Config {
	return Config{
		Baud:         DefaultBaud,
		PollInterval: 100 * time.Millisecond,
	}
}

// Option is a functional option for configuring a Port.
type Option func(*Config)

// WithBaud sets the line speed.
func WithBaud(baud int) Option {
	return func(c *Config) {
		if baud > 0 {
			c.Baud = baud
		}
	}
}

// WithPollInterval sets how long Recv waits for input before returning
// no data.
func WithPollInterval(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.PollInterval = d
		}
	}
}

// Open opens name with the go.bug.st/serial driver at 8N1.
//
// Example:
//
//	port, err := serialport.Open("/dev/ttyUSB0", serialport.WithBaud(115200))
//	if err != nil {
//	    return err
//	}
//	defer port.Close()
//	framer := protocol.NewFramer(port)
func Open(name string, opts ...Option) (*Port, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	mode := &serial.Mode{
		BaudRate: cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	sp, err := serial.Open(name, mode)
	if err != nil {
		return nil, picerr.E(picerr.IO, "open", errors.Wrapf(err, "serial port %s", name))
	}
	if err := sp.SetReadTimeout(cfg.PollInterval); err != nil {
		sp.Close()
		return nil, picerr.E(picerr.IO, "open", errors.Wrapf(err, "set read timeout on %s", name))
	}
	return &Port{name: name, conn: sp}, nil
}

// List returns the names of the serial ports present on the system.
func List() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, picerr.E(picerr.IO, "list", errors.Wrap(err, "enumerate serial ports"))
	}
	return ports, nil
}

// Name returns the device the port was opened on.
func (p *Port) Name() string {
	return p.name
}

// Send writes b completely.
func (p *Port) Send(b []byte) error {
	for len(b) > 0 {
		n, err := p.conn.Write(b)
		if err != nil {
			return errors.Wrapf(err, "write %s", p.name)
		}
		if n == 0 {
			return errors.Errorf("write %s: no progress", p.name)
		}
		b = b[n:]
	}
	return nil
}

// Recv reads up to len(b) bytes. It returns 0 and a nil error when nothing
// arrived within the poll interval.
func (p *Port) Recv(b []byte) (int, error) {
	n, err := p.conn.Read(b)
	if err == io.EOF {
		// tarm/serial reports an expired read timeout as EOF on POSIX
		return n, nil
	}
	if err != nil {
		return n, errors.Wrapf(err, "read %s", p.name)
	}
	return n, nil
}

// Drain discards any input that has been received but not read.
func (p *Port) Drain() error {
	return errors.Wrapf(p.conn.ResetInputBuffer(), "drain %s", p.name)
}

// Close closes the line.
func (p *Port) Close() error {
	return errors.Wrapf(p.conn.Close(), "close %s", p.name)
}
