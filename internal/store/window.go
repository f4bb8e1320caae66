package store

import "github.com/rotkonetworks/x11q/internal/wire"

// Window is the server-side record for a window resource (spec.md §3).
type Window struct {
	ID               wire.ResourceID
	Parent           wire.ResourceID
	X, Y             int16
	Width, Height    uint16
	BorderWidth      uint16
	Depth            uint8
	Class            uint8
	Visual           uint32
	Mapped           bool
	BackgroundPixel  uint32
	EventMask        uint32
	OverrideRedirect bool
	Colormap         uint32
	Children         []wire.ResourceID
	Pixels           []byte // BGRA, row-major, top-down
}

func newWindow(id, parent wire.ResourceID, x, y int16, w, h uint16, class uint8, visual uint32, depth uint8) *Window {
	w = floorTo1(w)
	h = floorTo1(h)
	return &Window{
		ID:     id,
		Parent: parent,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Class:  class,
		Visual: visual,
		Depth:  depth,
		Pixels: make([]byte, int(w)*int(h)*4),
	}
}

func floorTo1(v uint16) uint16 {
	if v < 1 {
		return 1
	}
	return v
}

// resize reallocates Pixels (zeroed) to match Width*Height, per the
// ConfigureWindow side effect in spec.md §4.D.
func (w *Window) resize(width, height uint16) {
	w.Width = floorTo1(width)
	w.Height = floorTo1(height)
	w.Pixels = make([]byte, int(w.Width)*int(w.Height)*4)
}

// removeChild deletes id from w.Children if present.
func (w *Window) removeChild(id wire.ResourceID) {
	for i, c := range w.Children {
		if c == id {
			w.Children = append(w.Children[:i], w.Children[i+1:]...)
			return
		}
	}
}
