// Package protocol implements the STK500v2 framing used to talk to the ICSP
// adapter.
//
// # Frame Overview
//
// Requests and replies share one frame layout:
//
//	[START][SEQ][LEN_H][LEN_L][TOKEN][BODY...][CHECKSUM]
//
// Where:
//   - START = 0x1B
//   - SEQ = 8-bit sequence number, wrapping, echoed by the adapter
//   - LEN = 16-bit body length (big-endian)
//   - TOKEN = 0x0E
//   - CHECKSUM = XOR of every preceding byte
//
// A reply body starts with the command byte it answers and a status byte.
//
// # Receiving
//
// The receiver is a byte-at-a-time state machine. Any unexpected byte or a
// frame carrying another sequence number rewinds it to waiting for START,
// so it resynchronizes on its own after line noise. A frame that completes
// with a bad checksum is reported as a ChecksumError, and a receive that
// makes no progress for the timeout (two seconds by default) fails with a
// TimeoutError.
//
// # Commands
//
// Command sends a request and validates the reply:
//
//	f := protocol.NewFramer(ch)
//	if _, err := f.GetSync(ctx); err != nil {
//	    return err
//	}
//	reply, err := f.Command(ctx, []byte{protocol.CmdPrepareProgMode})
//
// Lost or garbled replies are retried after signing on again, up to five
// retries. The adapter's timeout statuses are retried with a warning. Other
// failures come back as a StatusError:
//
//	var se *protocol.StatusError
//	if errors.As(err, &se) {
//	    // se.Status holds the adapter status code
//	}
package protocol
