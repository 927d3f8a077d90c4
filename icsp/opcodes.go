package icsp

// Adapter operation codes. Each buffer of operations is sent to the adapter
// in one RUN_ISCP command and executed there in order.
const (
	opNop           = 0
	opPGDInput      = 10
	opPGDOutput     = 11
	opEnablePGCD    = 12
	opPGDLow        = 20
	opPGDHigh       = 21
	opPGCLow        = 22
	opPGCHigh       = 23
	opVDDOn         = 24
	opVDDOff        = 25
	opHVResetEnable = 30
	opHVResetOff    = 31
	opToReset       = 32
	opToHV          = 33
	opClockDelay    = 40
	opDelayMs       = 41 // +1 byte
	opDelayUs       = 42 // +1 byte, 5 µs ticks
	opSend          = 50 // +bit count, 1-4 data bytes LSB first
	opSendDSPIC24   = 51
	opRead          = 60
	opRead14        = 61
	opReadByte      = 62
	opRead16        = 63
	opSetParam      = 70 // +param, value
)

// Parameters for opSetParam.
const (
	paramClockDelay = 0
)

// BufferSize is the size of one adapter transaction including the RUN_ISCP
// command byte and the trailing nop.
const BufferSize = 250
