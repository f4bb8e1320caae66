package store

import "github.com/rotkonetworks/x11q/internal/wire"

// GCFunctionCopy is the default drawing function (src replaces dst).
const GCFunctionCopy = 3

// GC is the server-side record for a graphics context (spec.md §3). A
// freshly created GC carries the X11-documented defaults; ChangeGC applies
// a bitmask-selected subset of fields.
type GC struct {
	ID          wire.ResourceID
	Drawable    wire.ResourceID
	Function    uint8
	PlaneMask   uint32
	Foreground  uint32
	Background  uint32
	LineWidth   uint16
	LineStyle   uint8
	FillStyle   uint8
	Tile        uint32
	Stipple     uint32
	ClipXOrigin int16
	ClipYOrigin int16
	Font        uint32
}

func newGC(id, drawable wire.ResourceID) *GC {
	return &GC{
		ID:         id,
		Drawable:   drawable,
		Function:   GCFunctionCopy,
		PlaneMask:  0xFFFFFFFF,
		Foreground: 0,
		Background: 1,
	}
}

// apply updates the fields selected by mask from values, consumed in
// mask-bit order (LSB first) as ChangeGC's request layout requires.
func (g *GC) apply(mask uint32, next func() (uint32, bool)) {
	bits := []struct {
		bit uint32
		set func(uint32)
	}{
		{wire.GCFunction, func(v uint32) { g.Function = uint8(v) }},
		{wire.GCPlaneMask, func(v uint32) { g.PlaneMask = v }},
		{wire.GCForeground, func(v uint32) { g.Foreground = v }},
		{wire.GCBackground, func(v uint32) { g.Background = v }},
		{wire.GCLineWidth, func(v uint32) { g.LineWidth = uint16(v) }},
		{wire.GCLineStyle, func(v uint32) { g.LineStyle = uint8(v) }},
		{wire.GCFillStyle, func(v uint32) { g.FillStyle = uint8(v) }},
		{wire.GCTile, func(v uint32) { g.Tile = v }},
		{wire.GCStipple, func(v uint32) { g.Stipple = v }},
		{wire.GCFont, func(v uint32) { g.Font = v }},
		{wire.GCClipXOrigin, func(v uint32) { g.ClipXOrigin = int16(v) }},
		{wire.GCClipYOrigin, func(v uint32) { g.ClipYOrigin = int16(v) }},
	}
	// one value per set bit, in ascending bit order, whether or not this
	// server stores the field that bit selects.
	for bit := uint32(1); bit != 0 && bit <= mask; bit <<= 1 {
		if mask&bit == 0 {
			continue
		}
		v, ok := next()
		if !ok {
			return
		}
		for _, b := range bits {
			if b.bit == bit {
				b.set(v)
			}
		}
	}
}
