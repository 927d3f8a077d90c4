package protocol

import "time"

// Frame structure constants of the STK500v2 protocol.
const (
	// MessageStart is the frame start marker (0x1B)
	MessageStart = 0x1B

	// Token separates the frame header from the message body (0x0E)
	Token = 0x0E

	// HeaderSize is START(1) + SEQ(1) + LEN(2) + TOKEN(1)
	HeaderSize = 5

	// Overhead is the header plus the trailing checksum byte
	Overhead = HeaderSize + 1

	// MaxBodySize is the largest message body the adapter accepts
	MaxBodySize = 275
)

// Commands understood by the adapter firmware.
const (
	// CmdSignOn asks the adapter to identify itself
	CmdSignOn = 0x01

	// CmdPrepareProgMode powers the target and enters programming mode
	CmdPrepareProgMode = 0x50

	// CmdLeaveProgMode releases the target
	CmdLeaveProgMode = 0x51

	// CmdRunICSP executes a buffer of ICSP operations
	CmdRunICSP = 0x52
)

// Status codes carried in the second byte of every reply.
const (
	// StatusOK indicates the command was executed
	StatusOK = 0x00

	// StatusCmdTimeout indicates the command timed out on the adapter
	StatusCmdTimeout = 0x80

	// StatusBusyTimeout indicates sampling of the RDY/nBSY pin timed out
	StatusBusyTimeout = 0x81

	// StatusParamMissing indicates device parameters were not set first
	StatusParamMissing = 0x82

	// StatusFailed indicates the command failed
	StatusFailed = 0xC0

	// StatusUnknownCmd indicates the command is not implemented
	StatusUnknownCmd = 0xC9

	// AnswerChecksumError is sent in place of a reply when the adapter
	// received a frame with a bad checksum
	AnswerChecksumError = 0xB0
)

// Signature is the identifier returned by a genuine STK500v2 adapter.
const Signature = "STK500_2"

// Defaults used by NewFramer.
const (
	// DefaultTimeout bounds a receive that makes no forward progress
	DefaultTimeout = 2 * time.Second

	// DefaultRetries is the number of retries after the first attempt
	DefaultRetries = 5
)
