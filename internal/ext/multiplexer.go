// Package ext implements the extension multiplexer of spec.md §4.F: stub
// replies for RANDR, XInput2, XKB, and Generic Event, routed by major
// opcode then minor opcode. No pack or teacher analog speaks these
// extensions; the shape here follows spec.md's reply tables directly,
// reusing internal/wire.Encoder for every reply.
package ext

import "github.com/rotkonetworks/x11q/internal/wire"

// Request is one extension request frame handed to the Multiplexer by the
// dispatcher: major opcode at Frame[0], minor opcode (detail) at Frame[1].
type Request struct {
	Frame []byte
	Order wire.ByteOrder
	Seq   uint16
}

// Minor returns the request's minor opcode.
func (r Request) Minor() uint8 {
	if len(r.Frame) < 2 {
		return 0
	}
	return r.Frame[1]
}

// IsExtensionOpcode reports whether opcode is one of the four majors this
// server advertises via QueryExtension.
func IsExtensionOpcode(opcode uint8) bool {
	switch opcode {
	case wire.OpcodeRANDR, wire.OpcodeXInput, wire.OpcodeXKB, wire.OpcodeGenericEvent:
		return true
	}
	return false
}

// Multiplexer routes an extension request to its per-extension, per-minor
// handler. Minors not enumerated in spec.md §4.F absorb the frame and
// return empty bytes.
type Multiplexer struct {
	screenWidth, screenHeight uint16
}

// NewMultiplexer builds a Multiplexer for a width x height screen (RANDR's
// GetScreenResources/GetCrtcInfo report this geometry).
func NewMultiplexer(width, height uint16) *Multiplexer {
	return &Multiplexer{screenWidth: width, screenHeight: height}
}

// Dispatch routes req to the extension named by req.Frame[0].
func (m *Multiplexer) Dispatch(req Request) []byte {
	if len(req.Frame) == 0 {
		return nil
	}
	switch req.Frame[0] {
	case wire.OpcodeRANDR:
		return m.randr(req)
	case wire.OpcodeXInput:
		return m.xinput(req)
	case wire.OpcodeXKB:
		return m.xkb(req)
	case wire.OpcodeGenericEvent:
		return m.generic(req)
	}
	return nil
}
