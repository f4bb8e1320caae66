package wire

import (
	"encoding/binary"
	"fmt"
)

// setupHeaderSize is the fixed portion of the connection setup request:
// byte-order, unused, protocol major/minor, auth name/data lengths, unused.
const setupHeaderSize = 12

// requestHeaderSize is the fixed header every post-setup request carries:
// opcode(1), detail(1), length(u16, in 4-byte units).
const requestHeaderSize = 4

// Framer buffers inbound bytes for one connection and extracts complete
// frames: the single variable-length setup frame, then a stream of
// request frames once SetupDone has been called. It never blocks; callers
// feed it whatever bytes a Read returned and call Next until it reports
// no frame ready. Request-mode length words are always read per the
// ByteOrder the connection announced at setup (spec.md §4.A).
type Framer struct {
	buf       []byte
	order     binary.ByteOrder
	setupDone bool
}

// NewFramer returns a Framer ready to read the connection setup frame.
func NewFramer() *Framer {
	return &Framer{order: binary.LittleEndian}
}

// Feed appends newly read bytes to the internal buffer.
func (f *Framer) Feed(b []byte) {
	f.buf = append(f.buf, b...)
}

// SetupDone switches the framer from setup mode to request mode, fixing the
// byte order future request headers are read with.
func (f *Framer) SetupDone(order ByteOrder) {
	f.setupDone = true
	if order == MSBFirst {
		f.order = binary.BigEndian
	} else {
		f.order = binary.LittleEndian
	}
}

// Next attempts to extract one complete frame from the buffered bytes. It
// returns (frame, true, nil) when a frame is ready, (nil, false, nil) when
// more bytes are needed, and a non-nil error only for a fatal framing
// violation (bad byte-order byte in the setup frame).
func (f *Framer) Next() (frame []byte, ok bool, err error) {
	if !f.setupDone {
		return f.nextSetup()
	}
	return f.nextRequest()
}

func (f *Framer) nextSetup() ([]byte, bool, error) {
	if len(f.buf) < 1 {
		return nil, false, nil
	}
	switch ByteOrder(f.buf[0]) {
	case LSBFirst, MSBFirst:
	default:
		return nil, false, fmt.Errorf("wire: invalid byte-order byte %#x", f.buf[0])
	}
	if len(f.buf) < setupHeaderSize {
		return nil, false, nil
	}
	var bo binary.ByteOrder = binary.LittleEndian
	if ByteOrder(f.buf[0]) == MSBFirst {
		bo = binary.BigEndian
	}
	authNameLen := int(bo.Uint16(f.buf[8:10]))
	authDataLen := int(bo.Uint16(f.buf[10:12]))
	total := setupHeaderSize + Pad4(authNameLen) + Pad4(authDataLen)
	if len(f.buf) < total {
		return nil, false, nil
	}
	frame := f.buf[:total]
	f.buf = f.buf[total:]
	return frame, true, nil
}

func (f *Framer) nextRequest() ([]byte, bool, error) {
	if len(f.buf) < requestHeaderSize {
		return nil, false, nil
	}
	length := f.order.Uint16(f.buf[2:4])
	if length == 0 {
		length = 1
	}
	total := int(length) * 4
	if total < requestHeaderSize {
		total = requestHeaderSize
	}
	if len(f.buf) < total {
		return nil, false, nil
	}
	frame := f.buf[:total]
	f.buf = f.buf[total:]
	return frame, true, nil
}

// Pad4 rounds n up to the next multiple of 4.
func Pad4(n int) int {
	return n + Pad(n)
}
