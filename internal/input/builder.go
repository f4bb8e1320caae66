package input

import "github.com/rotkonetworks/x11q/internal/wire"

// Button state mask bits, ORed into the pointer state field alongside the
// modifier bits (X11 core protocol KeyButMask convention).
const (
	maskButton1 = 1 << 8
	maskButton2 = 1 << 9
	maskButton3 = 1 << 10
	maskButton4 = 1 << 11
	maskButton5 = 1 << 12
)

func buttonMask(btn uint8) uint16 {
	switch btn {
	case 1:
		return maskButton1
	case 2:
		return maskButton2
	case 3:
		return maskButton3
	case 4:
		return maskButton4
	case 5:
		return maskButton5
	default:
		return 0
	}
}

// Builder assembles 32-byte event records and enqueues them on a per-
// connection Queue, maintaining the running pointer position and modifier
// mask that X11 events carry in their state field. One Builder exists per
// connection (spec.md §4.G).
type Builder struct {
	Queue Queue

	order wire.ByteOrder
	root  wire.ResourceID

	pointerX, pointerY int16
	state              uint16 // modifier + button mask, carried between events
}

// NewBuilder returns a Builder that encodes events in order for a
// connection whose root window is root.
func NewBuilder(order wire.ByteOrder, root wire.ResourceID) *Builder {
	return &Builder{order: order, root: root}
}

// PushKey enqueues a KeyPress or KeyRelease event for window, updating the
// internal modifier mask from the modifier-to-keycode table (§4.D) after
// the event is encoded, so the encoded state reflects modifiers in effect
// before this key's own press/release.
func (b *Builder) PushKey(seq uint16, t wire.Timestamp, window wire.ResourceID, code uint8, pressed bool) {
	eventCode := uint8(wire.EventKeyRelease)
	if pressed {
		eventCode = wire.EventKeyPress
	}
	e := wire.NewEncoder(b.order)
	encodeEventHeader(e, eventCode, code, seq, t)
	encodePointerFields(e, b.root, window, 0, b.pointerX, b.pointerY, b.pointerX, b.pointerY, b.state, true)
	b.Queue.Push(e.Bytes())

	if bit := modifierBitForKeycode(code); bit != 0 {
		if pressed {
			b.state |= bit
		} else {
			b.state &^= bit
		}
	}
}

// PushButton enqueues a ButtonPress or ButtonRelease event at (x, y),
// updating the tracked pointer position and button mask.
func (b *Builder) PushButton(seq uint16, t wire.Timestamp, window wire.ResourceID, btn uint8, pressed bool, x, y int16) {
	b.pointerX, b.pointerY = x, y

	eventCode := uint8(wire.EventButtonRelease)
	if pressed {
		eventCode = wire.EventButtonPress
	}
	e := wire.NewEncoder(b.order)
	encodeEventHeader(e, eventCode, btn, seq, t)
	encodePointerFields(e, b.root, window, 0, x, y, x, y, b.state, true)
	b.Queue.Push(e.Bytes())

	if bit := buttonMask(btn); bit != 0 {
		if pressed {
			b.state |= bit
		} else {
			b.state &^= bit
		}
	}
}

// PushMotion enqueues a MotionNotify event at (x, y).
func (b *Builder) PushMotion(seq uint16, t wire.Timestamp, window wire.ResourceID, x, y int16) {
	b.pointerX, b.pointerY = x, y

	e := wire.NewEncoder(b.order)
	encodeEventHeader(e, wire.EventMotionNotify, 0, seq, t)
	encodePointerFields(e, b.root, window, 0, x, y, x, y, b.state, true)
	b.Queue.Push(e.Bytes())
}

// PushMapNotify enqueues a MapNotify event reporting that window was mapped
// under event (the window the receiving client selected StructureNotify or
// SubstructureNotify on).
func (b *Builder) PushMapNotify(seq uint16, event, window wire.ResourceID) {
	e := wire.NewEncoder(b.order)
	e.PutUint8(wire.EventMapNotify)
	e.PutPadN(1)
	e.PutUint16(seq)
	e.PutUint32(uint32(event))
	e.PutUint32(uint32(window))
	e.PutUint8(0) // override-redirect
	e.PutPadN(19)
	b.Queue.Push(e.Bytes())
}
