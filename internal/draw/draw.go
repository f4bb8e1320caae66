// Package draw implements the pixel-level primitives of spec.md §4.E:
// rectangle fills, PutImage/GetImage, clear-area, and the depth-first
// compositor that assembles mapped windows into a screen framebuffer.
// Every buffer here is BGRA, row-major, top-down, matching internal/store's
// Window and Pixmap pixel representation.
//
// Grounded on other_examples' achrafsoltani-Glow draw.go (PutImage wire
// encoding, ZPixmap row padding), reversed from client-encode to
// server-decode-and-blit.
package draw

import "github.com/rotkonetworks/x11q/internal/store"

// Rectangle is an X11 rectangle request record: x, y (signed, relative to
// the drawable origin) and width, height (unsigned).
type Rectangle struct {
	X, Y          int16
	Width, Height uint16
}

// clip intersects r with the drawable's bounds, returning ok=false when the
// rectangle has no area left to draw.
func clip(r Rectangle, dw, dh uint16) (x0, y0, x1, y1 int, ok bool) {
	x0 = int(r.X)
	y0 = int(r.Y)
	x1 = x0 + int(r.Width)
	y1 = y0 + int(r.Height)
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > int(dw) {
		x1 = int(dw)
	}
	if y1 > int(dh) {
		y1 = int(dh)
	}
	return x0, y0, x1, y1, x1 > x0 && y1 > y0
}

// FillRectangle paints r with pixel (a 0xRRGGBB value, spec.md §4.E "GC's
// foreground colour"; pass 0xFFFFFF when the caller has no GC).
func FillRectangle(d *store.Drawable, r Rectangle, pixel uint32) {
	x0, y0, x1, y1, ok := clip(r, d.Width, d.Height)
	if !ok {
		return
	}
	b := byte(pixel)
	g := byte(pixel >> 8)
	red := byte(pixel >> 16)
	stride := int(d.Width) * 4
	for y := y0; y < y1; y++ {
		row := y * stride
		for x := x0; x < x1; x++ {
			o := row + x*4
			d.Pixels[o+0] = b
			d.Pixels[o+1] = g
			d.Pixels[o+2] = red
			d.Pixels[o+3] = 0xFF
		}
	}
}

// ClearArea fills r with background, or the remainder of the drawable from
// (r.X, r.Y) when r.Width and r.Height are both zero (spec.md §4.E).
func ClearArea(d *store.Drawable, r Rectangle, background uint32) {
	if r.Width == 0 && r.Height == 0 {
		if int(r.X) < int(d.Width) {
			r.Width = d.Width - uint16(r.X)
		}
		if int(r.Y) < int(d.Height) {
			r.Height = d.Height - uint16(r.Y)
		}
	}
	FillRectangle(d, r, background)
}

// PutImage copies a ZPixmap image (format must be wire.ImageFormatZPixmap;
// callers drop formats 0 and 1 before calling) into d at (x, y). depth 24
// sources are packed 4 bytes per pixel (BGR + unused byte, written with
// alpha=255); depth 32 sources carry BGRA directly. Row stride is
// pad(width*4, 4), i.e. already 4-byte aligned for 4-byte pixels.
func PutImage(d *store.Drawable, depth uint8, x, y int16, width, height uint16, data []byte) {
	stride := int(width) * 4
	x0, y0, x1, y1, ok := clip(Rectangle{X: x, Y: y, Width: width, Height: height}, d.Width, d.Height)
	if !ok {
		return
	}
	dstStride := int(d.Width) * 4
	for sy := y0; sy < y1; sy++ {
		srcRow := (sy - int(y)) * stride
		dstRow := sy * dstStride
		for sx := x0; sx < x1; sx++ {
			so := srcRow + (sx-int(x))*4
			if so+4 > len(data) {
				continue
			}
			do := dstRow + sx*4
			d.Pixels[do+0] = data[so+0]
			d.Pixels[do+1] = data[so+1]
			d.Pixels[do+2] = data[so+2]
			if depth == 32 {
				d.Pixels[do+3] = data[so+3]
			} else {
				d.Pixels[do+3] = 0xFF
			}
		}
	}
}

// GetImage returns the BGRA bytes of d within r, row-major with the same
// pad(width*4,4) stride PutImage expects, clipped to the drawable.
func GetImage(d *store.Drawable, r Rectangle) []byte {
	x0, y0, x1, y1, ok := clip(r, d.Width, d.Height)
	if !ok {
		return nil
	}
	w := x1 - x0
	h := y1 - y0
	out := make([]byte, w*h*4)
	srcStride := int(d.Width) * 4
	dstStride := w * 4
	for row := 0; row < h; row++ {
		srcOff := (y0+row)*srcStride + x0*4
		dstOff := row * dstStride
		copy(out[dstOff:dstOff+dstStride], d.Pixels[srcOff:srcOff+dstStride])
	}
	return out
}
