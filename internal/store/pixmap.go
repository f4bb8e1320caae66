package store

import "github.com/rotkonetworks/x11q/internal/wire"

// Pixmap is the server-side record for a pixmap resource (spec.md §3). It
// shares the BGRA representation with Window so the same blit routines in
// internal/draw apply to either.
type Pixmap struct {
	ID       wire.ResourceID
	Drawable wire.ResourceID // source drawable, for depth inheritance
	Width    uint16
	Height   uint16
	Depth    uint8
	Pixels   []byte
}

func newPixmap(id, drawable wire.ResourceID, w, h uint16, depth uint8) *Pixmap {
	w = floorTo1(w)
	h = floorTo1(h)
	return &Pixmap{
		ID:       id,
		Drawable: drawable,
		Width:    w,
		Height:   h,
		Depth:    depth,
		Pixels:   make([]byte, int(w)*int(h)*4),
	}
}
