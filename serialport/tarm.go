package serialport

import (
	"github.com/pkg/errors"
	"github.com/tarm/serial"

	"github.com/moffa90/go-picprog/picerr"
)

// tarmConn adapts a tarm/serial port. Flush discards both directions,
// which is what a drain needs since writes are never left pending.
type tarmConn struct {
	*serial.Port
}

func (c tarmConn) ResetInputBuffer() error {
	return c.Flush()
}

// OpenTarm opens name with the tarm/serial driver, for systems where the
// default driver cannot open the adapter.
func OpenTarm(name string, opts ...Option) (*Port, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	sp, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.PollInterval,
	})
	if err != nil {
		return nil, picerr.E(picerr.IO, "open", errors.Wrapf(err, "serial port %s", name))
	}
	return &Port{name: name, conn: tarmConn{sp}}, nil
}
