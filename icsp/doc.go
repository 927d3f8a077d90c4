// Package icsp encodes PIC in-circuit serial programming commands for the
// adapter.
//
// # Command Sets
//
// Three families of chips speak three command sets:
//
//	12/14-bit  six-bit commands with 14-bit data words (Command, Queue)
//	18F        four-bit commands with 16-bit operands (Command18, Queue18)
//	dsPIC30    SIX instructions and REGOUT reads (Command30, Queue30)
//
// Bits go to the chip LSB first. The Port tracks the chip's address
// pointer so the programming engine can position it with SetAddress or
// SetAddress30, which send nothing when the pointer is already in place.
//
// # Batching
//
// Operations collect in a 250-byte buffer that the adapter runs as one
// RUN_ISCP transaction. A full buffer is sent automatically. Reads can be
// queued and collected in one round trip:
//
//	for i := 0; i < 10; i++ {
//	    _ = port.Queue(ctx, icsp.DataFromProg, 0)
//	    _ = port.Queue(ctx, icsp.IncAddr, 0)
//	}
//	words, err := port.Execute(ctx)
//
// The adapter answers each transaction with the command byte, a status
// byte and a little-endian 16-bit value per read.
package icsp
