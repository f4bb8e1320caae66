package draw

import "github.com/rotkonetworks/x11q/internal/store"

// FramebufferClearColor is the color the screen framebuffer is cleared to
// before composition (spec.md §4.E).
const FramebufferClearColor = 0x202020

// Compositor assembles mapped windows into a single screen-sized 0RGB
// framebuffer for the presentation sink, per spec.md §4.E and §4.B's
// traversal order.
type Compositor struct {
	Width, Height uint16
	framebuffer   []uint32 // 0RGB packed words, row-major
}

// NewCompositor creates a Compositor for a width x height screen.
func NewCompositor(width, height uint16) *Compositor {
	return &Compositor{
		Width:       width,
		Height:      height,
		framebuffer: make([]uint32, int(width)*int(height)),
	}
}

// Framebuffer returns the current composited 0RGB framebuffer.
func (c *Compositor) Framebuffer() []uint32 {
	return c.framebuffer
}

// Composite clears the framebuffer and draws every mapped window in the
// store's traversal order: children overwrite parents, siblings composite
// in insertion order (last writer wins).
func (c *Compositor) Composite(s *store.Store) {
	for i := range c.framebuffer {
		c.framebuffer[i] = FramebufferClearColor
	}
	for _, mw := range s.CollectMapped() {
		c.blit(mw.Window.Pixels, mw.Window.Width, mw.Window.Height, mw.AbsX, mw.AbsY)
	}
}

func (c *Compositor) blit(pixels []byte, w, h uint16, absX, absY int) {
	stride := int(w) * 4
	for row := 0; row < int(h); row++ {
		dstY := absY + row
		if dstY < 0 || dstY >= int(c.Height) {
			continue
		}
		srcRow := row * stride
		for col := 0; col < int(w); col++ {
			dstX := absX + col
			if dstX < 0 || dstX >= int(c.Width) {
				continue
			}
			o := srcRow + col*4
			if o+4 > len(pixels) {
				continue
			}
			b := uint32(pixels[o+0])
			g := uint32(pixels[o+1])
			r := uint32(pixels[o+2])
			c.framebuffer[dstY*int(c.Width)+dstX] = r<<16 | g<<8 | b
		}
	}
}
