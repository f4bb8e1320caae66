package proto

import "github.com/rotkonetworks/x11q/internal/wire"

// EncodeError builds a 32-byte X11 error reply (spec.md §4.D, §7): byte 0
// is always 0, byte 1 is the error code, bytes 2..4 the sequence counter,
// bytes 4..8 the bad value, bytes 8..10 the minor opcode, byte 10 the
// major opcode.
func EncodeError(order wire.ByteOrder, code uint8, seq uint16, badValue uint32, minorOpcode uint16, majorOpcode uint8) []byte {
	e := wire.NewEncoder(order)
	e.PutUint8(0)
	e.PutUint8(code)
	e.PutUint16(seq)
	e.PutUint32(badValue)
	e.PutUint16(minorOpcode)
	e.PutUint8(majorOpcode)
	e.PutPadN(32 - e.Len())
	return e.Bytes()
}
