package programmer

import (
	"fmt"

	"github.com/moffa90/go-picprog/picerr"
)

// VerificationError indicates that a programmed location did not read back.
type VerificationError struct {
	Region string
	Addr   uint32
	Want   uint32
	Got    uint32
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("%s 0x%04X: programmed 0x%04X, read 0x%04X: "+
		"is code protection enabled, or does the chip need to be erased first?",
		e.Region, e.Addr, e.Want, e.Got)
}

// Kind classifies the error.
func (e *VerificationError) Kind() picerr.Kind { return picerr.Verification }

// BlockVerifyError reports the first byte of a PIC18 write block that did
// not read back.
type BlockVerifyError struct {
	Addr  uint32
	Panel int
	Block uint32
	Byte  int
	Want  byte
	Got   byte
}

func (e *BlockVerifyError) Error() string {
	return fmt.Sprintf("0x%06X: panel %d, block 0x%04X, byte %d: verification failed, read 0x%02X, should be 0x%02X",
		e.Addr, e.Panel, e.Block, e.Byte, e.Got, e.Want)
}

// Kind classifies the error.
func (e *BlockVerifyError) Kind() picerr.Kind { return picerr.Verification }

// ReadError reports a batch of reads that came back incomplete.
type ReadError struct {
	Region string
	Addr   uint32
	Want   int
	Got    int
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("unable to read %s at 0x%04X: %d of %d values returned",
		e.Region, e.Addr, e.Got, e.Want)
}

// Kind classifies the error.
func (e *ReadError) Kind() picerr.Kind { return picerr.DeviceFault }

func errCancelled(err error) error {
	return picerr.E(picerr.Cancelled, "operation cancelled", err)
}
