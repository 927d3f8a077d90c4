package icsp

import (
	"fmt"

	"github.com/moffa90/go-picprog/picerr"
)

// FramingError reports a 14-bit data memory read whose framing bits were
// neither all ones nor all zeros. It usually means no programmer or chip is
// connected, or code protection is enabled.
type FramingError struct {
	Addr  uint32
	Value uint16
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("read value 0x%04X at 0x%04X: PIC programmer or chip fault, "+
		"is code protection enabled? erase the chip to disable code protection", e.Value, e.Addr)
}

// Kind classifies the error.
func (e *FramingError) Kind() picerr.Kind { return picerr.DeviceFault }
