package main

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/moffa90/go-picprog/icsp"
	"github.com/moffa90/go-picprog/protocol"
	"github.com/moffa90/go-picprog/serialport"
)

// channel is a protocol.Channel that can be closed.
type channel interface {
	protocol.Channel
	io.Closer
}

// session is an open connection to a chip through the adapter.
type session struct {
	ch   channel
	port *icsp.Port
}

func openChannel(s Settings) (channel, error) {
	opts := []serialport.Option{serialport.WithBaud(s.Baud)}
	if s.Driver == driverTarm {
		return serialport.OpenTarm(s.Port, opts...)
	}
	return serialport.Open(s.Port, opts...)
}

// openSession opens the serial line, signs on to the adapter and powers up
// the target in programming mode.
func openSession(ctx context.Context, s Settings, log *logrus.Logger) (*session, error) {
	ch, err := openChannel(s)
	if err != nil {
		return nil, err
	}

	framer := protocol.NewFramer(ch,
		protocol.WithTimeout(s.Timeout),
		protocol.WithRetries(s.Retries),
		protocol.WithLogger(newLogger(log, "protocol")),
	)
	opts := []icsp.Option{
		icsp.WithLogger(newLogger(log, "icsp")),
		icsp.WithStrictFraming(s.StrictFraming),
	}
	if s.Slow {
		opts = append(opts, icsp.WithSlowClock())
	}
	port := icsp.NewPort(framer, opts...)
	if err := port.Open(ctx); err != nil {
		ch.Close()
		return nil, errors.Wrapf(err, "connect to programmer on %s", s.Port)
	}
	return &session{ch: ch, port: port}, nil
}

// Close leaves programming mode and closes the line. It runs even after
// cancellation, so it does not use the session context.
func (s *session) Close() error {
	err := s.port.Close(context.Background())
	if cerr := s.ch.Close(); err == nil {
		err = cerr
	}
	return err
}
