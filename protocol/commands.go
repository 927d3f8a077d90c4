package protocol

import (
	"fmt"

	"github.com/moffa90/go-picprog/picerr"
)

// EncodeFrame wraps body in an STK500v2 frame with the given sequence number.
//
// Frame structure:
//
//	[START][SEQ][LEN_H][LEN_L][TOKEN][BODY...][CHECKSUM]
//
// The length is big-endian and the checksum is the XOR of all preceding bytes.
func EncodeFrame(seq byte, body []byte) ([]byte, error) {
	if len(body) == 0 {
		return nil, picerr.Errorf(picerr.Internal, "frame body cannot be empty")
	}
	if len(body) > MaxBodySize {
		return nil, picerr.E(picerr.Internal, "encode frame",
			fmt.Errorf("body length %d exceeds maximum %d bytes", len(body), MaxBodySize))
	}

	frame := make([]byte, 0, Overhead+len(body))
	frame = append(frame, MessageStart, seq, byte(len(body)>>8), byte(len(body)), Token)
	frame = append(frame, body...)
	frame = append(frame, checksum(frame))
	return frame, nil
}

// SignOn builds the body of a sign-on request.
func SignOn() []byte {
	return []byte{CmdSignOn}
}

// ParseSignOn extracts the adapter signature from a sign-on reply:
//
//	[CMD_SIGN_ON][STATUS_OK][SIGLEN][SIGNATURE...]
func ParseSignOn(reply []byte) (string, error) {
	if len(reply) <= 3 || reply[0] != CmdSignOn || reply[1] != StatusOK {
		return "", picerr.Errorf(picerr.Protocol, "invalid sign-on reply % X", reply)
	}
	n := int(reply[2])
	if n > len(reply)-3 {
		n = len(reply) - 3
	}
	return string(reply[3 : 3+n]), nil
}
