package proto

import "github.com/rotkonetworks/x11q/internal/wire"

// NewReply starts a success reply: byte 0 = 1, byte 1 = discriminator,
// bytes 2..4 = seq, bytes 4..8 reserved for the length word (patched by
// FinishReply). Handlers then write exactly 24 more bytes of fixed payload
// before optionally appending padded variable-length data.
func NewReply(order wire.ByteOrder, discriminator uint8, seq uint16) *wire.Encoder {
	e := wire.NewEncoder(order)
	e.PutUint8(1)
	e.PutUint8(discriminator)
	e.PutUint16(seq)
	e.PutUint32(0) // length, patched by FinishReply
	return e
}

// FinishReply patches the length word (number of 4-byte units beyond the
// 32-byte fixed header) and returns the encoded reply. Callers must have
// written exactly 24 bytes of fixed payload (bytes 8..32) plus any
// variable data, already padded to a 4-byte boundary, before calling this.
func FinishReply(order wire.ByteOrder, e *wire.Encoder) []byte {
	buf := e.Bytes()
	extra := len(buf) - 32
	length := wire.RequestLength(extra)
	patchUint32(order, buf[4:8], uint32(length))
	return buf
}

func patchUint32(order wire.ByteOrder, b []byte, v uint32) {
	bo := byteOrder(order)
	bo.PutUint32(b, v)
}
