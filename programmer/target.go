package programmer

import (
	"context"
	"time"

	"github.com/moffa90/go-picprog/icsp"
)

// Target is the ICSP session the programmer drives. *icsp.Port implements
// it; tests substitute simulated chips.
//
// Commands without a read may be buffered by the implementation. Address
// reports the chip address pointer as it will be once every buffered
// command has run.
type Target interface {
	Address() uint32

	Command(ctx context.Context, c icsp.Cmd, data uint32) (uint32, error)
	Queue(ctx context.Context, c icsp.Cmd, data uint32) error

	Command18(ctx context.Context, c icsp.Cmd18, data uint32) (uint32, error)
	Queue18(ctx context.Context, c icsp.Cmd18, data uint32) error
	SetAddress(ctx context.Context, a uint32) error

	Command30(ctx context.Context, c icsp.Cmd30, data uint32) (uint32, error)
	Queue30(ctx context.Context, c icsp.Cmd30, data uint32) error
	SetAddress30(ctx context.Context, a uint32) error

	Execute(ctx context.Context) ([]uint32, error)
	Delay(ctx context.Context, d time.Duration) error
	Reset(ctx context.Context, resetAddr uint32) error
}

var _ Target = (*icsp.Port)(nil)
