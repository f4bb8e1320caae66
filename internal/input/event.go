// Package input implements the input event builder of spec.md §4.G: 32-byte
// event records pushed onto a per-connection FIFO for the dispatcher to
// drain between replies, plus the modifier bitmask state key events update.
//
// Grounded on internal/platform/x11's events.go: the field layout of
// KeyEvent/ButtonEvent/MotionNotifyEvent/MapNotifyEvent is reused byte for
// byte, reversed from parse (client reading a server's bytes) to encode
// (server producing them).
package input

import "github.com/rotkonetworks/x11q/internal/wire"

// ModifierKeycodes are the fixed Shift/Lock/Control/Mod1../Mod5 keycode
// pairs this server reports via GetModifierMapping and tracks in its
// internal modifier mask (spec.md §4.D's supplemented keycode table).
var ModifierKeycodes = [8][2]uint8{
	{50, 62},   // shift
	{0, 0},     // lock
	{37, 105},  // control
	{64, 108},  // mod1 (alt)
	{0, 0},     // mod2
	{0, 0},     // mod3
	{133, 134}, // mod4 (super)
	{0, 0},     // mod5
}

const (
	maskShift   = 1 << 0
	maskLock    = 1 << 1
	maskControl = 1 << 2
	maskMod1    = 1 << 3
	maskMod4    = 1 << 6
)

func modifierBitForKeycode(code uint8) uint16 {
	for i, pair := range ModifierKeycodes {
		if pair[0] == code || pair[1] == code {
			return 1 << uint(i)
		}
	}
	return 0
}

func encodeEventHeader(e *wire.Encoder, code uint8, detail uint8, seq uint16, t wire.Timestamp) {
	e.PutUint8(code)
	e.PutUint8(detail)
	e.PutUint16(seq)
	e.PutUint32(uint32(t))
}

func encodePointerFields(e *wire.Encoder, root, evWindow, child wire.ResourceID, rootX, rootY, eventX, eventY int16, state uint16, sameScreen bool) {
	e.PutUint32(uint32(root))
	e.PutUint32(uint32(evWindow))
	e.PutUint32(uint32(child))
	e.PutInt16(rootX)
	e.PutInt16(rootY)
	e.PutInt16(eventX)
	e.PutInt16(eventY)
	e.PutUint16(state)
	if sameScreen {
		e.PutUint8(1)
	} else {
		e.PutUint8(0)
	}
	e.PutPadN(1)
}
