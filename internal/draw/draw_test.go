package draw

import (
	"bytes"
	"testing"

	"github.com/rotkonetworks/x11q/internal/store"
)

func newDrawable(w, h uint16) *store.Drawable {
	return &store.Drawable{Pixels: make([]byte, int(w)*int(h)*4), Width: w, Height: h}
}

func TestFillRectangle_WritesBGRA(t *testing.T) {
	d := newDrawable(20, 20)
	FillRectangle(d, Rectangle{X: 5, Y: 5, Width: 10, Height: 10}, 0x00FF0000)

	stride := 20 * 4
	for row := 5; row < 15; row++ {
		for col := 5; col < 15; col++ {
			o := row*stride + col*4
			got := d.Pixels[o : o+4]
			want := []byte{0x00, 0x00, 0xFF, 0xFF}
			if !bytes.Equal(got, want) {
				t.Fatalf("pixel (%d,%d): got %v, want %v", col, row, got, want)
			}
		}
	}
	// untouched pixel outside the rect stays zero.
	if d.Pixels[0] != 0 {
		t.Error("pixel (0,0) should remain untouched")
	}
}

func TestFillRectangle_ClipsToDrawable(t *testing.T) {
	d := newDrawable(10, 10)
	FillRectangle(d, Rectangle{X: 5, Y: 5, Width: 100, Height: 100}, 0x00FFFFFF)

	stride := 10 * 4
	o := 9*stride + 9*4
	if d.Pixels[o+3] != 0xFF {
		t.Error("corner pixel should have been filled (clipped in range)")
	}
	// buffer must not have grown past its original allocation.
	if len(d.Pixels) != 10*10*4 {
		t.Fatalf("Pixels grew: got len %d, want %d", len(d.Pixels), 10*10*4)
	}
}

func TestClearArea_ZeroSizeExpandsToRemainder(t *testing.T) {
	d := newDrawable(10, 10)
	for i := range d.Pixels {
		d.Pixels[i] = 0xAA
	}
	ClearArea(d, Rectangle{X: 5, Y: 5}, 0)

	stride := 10 * 4
	o := 9*stride + 9*4
	got := d.Pixels[o : o+4]
	want := []byte{0, 0, 0, 0xFF}
	if !bytes.Equal(got, want) {
		t.Errorf("corner after ClearArea: got %v, want %v", got, want)
	}
	// outside the cleared remainder stays untouched.
	if d.Pixels[0] != 0xAA {
		t.Error("pixel (0,0) should remain untouched by ClearArea(5,5,0,0)")
	}
}

func TestPutImage_Depth24_WritesAlpha255(t *testing.T) {
	d := newDrawable(4, 4)
	src := make([]byte, 2*2*4)
	for i := range src {
		src[i] = byte(i + 1)
	}
	PutImage(d, 24, 1, 1, 2, 2, src)

	got := GetImage(d, Rectangle{X: 1, Y: 1, Width: 2, Height: 2})
	for i := 0; i < len(got); i += 4 {
		if got[i+3] != 0xFF {
			t.Fatalf("alpha at pixel %d: got %#x, want 0xFF", i/4, got[i+3])
		}
	}
}

func TestPutImage_GetImage_RoundTrip(t *testing.T) {
	d := newDrawable(8, 8)
	src := []byte{
		0x01, 0x02, 0x03, 0xFF, 0x05, 0x06, 0x07, 0xFF,
		0x09, 0x0A, 0x0B, 0xFF, 0x0D, 0x0E, 0x0F, 0xFF,
	}
	PutImage(d, 32, 0, 0, 2, 2, src)

	got := GetImage(d, Rectangle{X: 0, Y: 0, Width: 2, Height: 2})
	if !bytes.Equal(got, src) {
		t.Errorf("round trip: got %v, want %v", got, src)
	}
}

func TestCompositor_PlacesWindowAtAbsoluteCoordinates(t *testing.T) {
	s := store.New(1, 200, 200)
	const wid = 2
	s.CreateWindow(wid, 1, 10, 20, 100, 50, 1, store.RootVisualID, store.RootDepth)
	s.MapWindow(wid)

	w, _ := s.Window(wid)
	for i := range w.Pixels {
		w.Pixels[i] = 0xFF // non-zero marker so we can distinguish from the framebuffer clear colour
	}

	c := NewCompositor(200, 200)
	c.Composite(s)

	fb := c.Framebuffer()
	inside := fb[20*200+10]
	outside := fb[0]
	if inside == outside {
		t.Error("composited pixel inside window should differ from background")
	}
}
