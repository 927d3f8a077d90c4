package protocol

type rxState int

const (
	awaitStart rxState = iota
	awaitSeq
	awaitLenHi
	awaitLenLo
	awaitToken
	accumulate
	verifyChecksum
	done
)

func (s rxState) String() string {
	switch s {
	case awaitStart:
		return "await-start"
	case awaitSeq:
		return "await-sequence"
	case awaitLenHi:
		return "await-length-hi"
	case awaitLenLo:
		return "await-length-lo"
	case awaitToken:
		return "await-token"
	case accumulate:
		return "accumulate"
	case verifyChecksum:
		return "verify-checksum"
	default:
		return "done"
	}
}

// receiver frames one reply out of a byte stream. Unexpected bytes rewind
// it to awaitStart, so it resynchronizes on the next start marker without
// outside help.
type receiver struct {
	seq    byte
	state  rxState
	length int
	body   []byte
	sum    byte
}

func newReceiver(seq byte) *receiver {
	return &receiver{seq: seq, body: make([]byte, 0, MaxBodySize)}
}

func (r *receiver) rewind() {
	r.state = awaitStart
	r.length = 0
	r.body = r.body[:0]
	r.sum = 0
}

// feed consumes one byte. It reports whether the byte advanced a frame in
// progress. A completed frame leaves the receiver in state done.
func (r *receiver) feed(c byte) (bool, error) {
	switch r.state {
	case awaitStart:
		if c != MessageStart {
			return false, nil
		}
		r.sum = c
		r.state = awaitSeq
		return true, nil

	case awaitSeq:
		if c != r.seq {
			return r.restart(c), nil
		}
		r.state = awaitLenHi

	case awaitLenHi:
		r.length = int(c) << 8
		r.state = awaitLenLo

	case awaitLenLo:
		r.length |= int(c)
		if r.length == 0 || r.length > MaxBodySize {
			return r.restart(c), nil
		}
		r.state = awaitToken

	case awaitToken:
		if c != Token {
			return r.restart(c), nil
		}
		r.state = accumulate

	case accumulate:
		if len(r.body) == 0 && c == AnswerChecksumError {
			r.rewind()
			return true, &ChecksumError{Peer: true}
		}
		r.body = append(r.body, c)
		if len(r.body) == r.length {
			r.state = verifyChecksum
		}

	case verifyChecksum:
		if r.sum^c != 0 {
			r.rewind()
			return true, &ChecksumError{}
		}
		r.state = done
		return true, nil
	}

	r.sum ^= c
	return true, nil
}

// restart abandons the current frame. The offending byte may itself open
// the next frame.
func (r *receiver) restart(c byte) bool {
	r.rewind()
	progress, _ := r.feed(c)
	return progress
}
