// Package store implements the server-side resource model of spec.md §4.B:
// windows, pixmaps, graphics contexts, and the atom table, plus the
// depth-first window-tree traversal the compositor consumes.
//
// Store embeds sync.Mutex rather than locking internally on every method,
// matching spec.md §5: the dispatcher acquires the lock once per request,
// calls into the store to mutate it, and releases before writing any reply
// bytes — the lock is never held across I/O.
package store

import (
	"errors"
	"sync"

	"github.com/rotkonetworks/x11q/internal/wire"
)

// RootBackgroundPixel is the fixed gray backing pattern painted on the root
// window at startup (spec.md §3; the exact shade is supplemented from
// original_source/, see SPEC_FULL.md SUPPLEMENTED FEATURES).
const RootBackgroundPixel = 0x2B2B2B

// RootVisualID is the TrueColor visual this server advertises in setup and
// assigns to every window created with visual CopyFromParent (0).
const RootVisualID = 0x21

// RootDepth is the bit depth of the root window and its default visual.
const RootDepth = 24

var (
	ErrNoSuchWindow   = errors.New("store: no such window")
	ErrNoSuchPixmap   = errors.New("store: no such pixmap")
	ErrNoSuchGC       = errors.New("store: no such gc")
	ErrNoSuchDrawable = errors.New("store: no such drawable")
	ErrBadParent      = errors.New("store: parent window does not exist")
)

// Store owns every server-side resource for one server instance. No
// process-wide singletons: callers hold an explicit *Store.
type Store struct {
	sync.Mutex

	RootID wire.ResourceID

	windows map[wire.ResourceID]*Window
	pixmaps map[wire.ResourceID]*Pixmap
	gcs     map[wire.ResourceID]*GC
	Atoms   *AtomTable

	dirty bool

	PointerX, PointerY int16
	Focus              wire.ResourceID
}

// New creates a Store with the root window already present, mapped, and
// painted with RootBackgroundPixel, sized screenW x screenH.
func New(rootID wire.ResourceID, screenW, screenH uint16) *Store {
	s := &Store{
		RootID:  rootID,
		windows: make(map[wire.ResourceID]*Window),
		pixmaps: make(map[wire.ResourceID]*Pixmap),
		gcs:     make(map[wire.ResourceID]*GC),
		Atoms:   newAtomTable(),
		Focus:   rootID,
	}
	root := newWindow(rootID, 0, 0, 0, screenW, screenH, wire.WindowClassInputOutput, RootVisualID, RootDepth)
	root.Mapped = true
	root.BackgroundPixel = RootBackgroundPixel
	fillBackground(root.Pixels, RootBackgroundPixel)
	s.windows[rootID] = root
	return s
}

func fillBackground(pixels []byte, pixel uint32) {
	b := byte(pixel)
	g := byte(pixel >> 8)
	r := byte(pixel >> 16)
	for i := 0; i+4 <= len(pixels); i += 4 {
		pixels[i+0] = b
		pixels[i+1] = g
		pixels[i+2] = r
		pixels[i+3] = 0xFF
	}
}

// Dirty reports whether any mutation has touched a mapped window since the
// last ClearDirty. The compositor may use this to early-out (spec.md §4.E
// says it should refresh every tick regardless, so this is advisory only).
func (s *Store) Dirty() bool { return s.dirty }

// ClearDirty resets the dirty flag.
func (s *Store) ClearDirty() { s.dirty = false }

func (s *Store) markDirty() { s.dirty = true }

// Window looks up a window by id.
func (s *Store) Window(id wire.ResourceID) (*Window, bool) {
	w, ok := s.windows[id]
	return w, ok
}

// Pixmap looks up a pixmap by id.
func (s *Store) Pixmap(id wire.ResourceID) (*Pixmap, bool) {
	p, ok := s.pixmaps[id]
	return p, ok
}

// GC looks up a graphics context by id.
func (s *Store) GC(id wire.ResourceID) (*GC, bool) {
	g, ok := s.gcs[id]
	return g, ok
}

// CreateWindow allocates a Window under parent and links it into the
// parent's child list. Width/height are floored to 1 per spec.md §4.D.
func (s *Store) CreateWindow(id, parent wire.ResourceID, x, y int16, w, h uint16, class uint8, visual uint32, depth uint8) error {
	p, ok := s.windows[parent]
	if !ok {
		return ErrBadParent
	}
	if visual == 0 {
		visual = RootVisualID
	}
	win := newWindow(id, parent, x, y, w, h, class, visual, depth)
	s.windows[id] = win
	p.Children = append(p.Children, id)
	return nil
}

// DestroyWindow removes w and every descendant from the store, unlinking w
// from its parent's child list first (spec.md §8 invariant 1).
func (s *Store) DestroyWindow(id wire.ResourceID) error {
	w, ok := s.windows[id]
	if !ok {
		return ErrNoSuchWindow
	}
	if p, ok := s.windows[w.Parent]; ok {
		p.removeChild(id)
	}
	s.destroySubtree(w)
	s.markDirty()
	return nil
}

func (s *Store) destroySubtree(w *Window) {
	for _, childID := range w.Children {
		if child, ok := s.windows[childID]; ok {
			s.destroySubtree(child)
		}
	}
	delete(s.windows, w.ID)
}

// MapWindow sets w's mapped flag.
func (s *Store) MapWindow(id wire.ResourceID) error {
	w, ok := s.windows[id]
	if !ok {
		return ErrNoSuchWindow
	}
	w.Mapped = true
	s.markDirty()
	return nil
}

// UnmapWindow clears w's mapped flag.
func (s *Store) UnmapWindow(id wire.ResourceID) error {
	w, ok := s.windows[id]
	if !ok {
		return ErrNoSuchWindow
	}
	w.Mapped = false
	s.markDirty()
	return nil
}

// ConfigureWindow applies the subset of x/y/width/height/border selected by
// mask (bits per wire.Config*). A width or height change reallocates the
// pixel buffer, zeroed, per spec.md §4.D.
func (s *Store) ConfigureWindow(id wire.ResourceID, mask uint16, x, y int16, width, height, border uint16) error {
	w, ok := s.windows[id]
	if !ok {
		return ErrNoSuchWindow
	}
	if mask&wire.ConfigX != 0 {
		w.X = x
	}
	if mask&wire.ConfigY != 0 {
		w.Y = y
	}
	resized := false
	newW, newH := w.Width, w.Height
	if mask&wire.ConfigWidth != 0 {
		newW = width
		resized = true
	}
	if mask&wire.ConfigHeight != 0 {
		newH = height
		resized = true
	}
	if resized {
		w.resize(newW, newH)
	}
	if mask&wire.ConfigBorder != 0 {
		w.BorderWidth = border
	}
	s.markDirty()
	return nil
}

// ChangeWindowAttributes applies the subset of attributes selected by mask.
// next yields one 32-bit value per set bit, called in mask-bit order (LSB
// first) as spec.md §4.D requires.
func (s *Store) ChangeWindowAttributes(id wire.ResourceID, mask uint32, next func() (uint32, bool)) error {
	w, ok := s.windows[id]
	if !ok {
		return ErrNoSuchWindow
	}
	// iterate every defined CW bit in ascending (LSB-first) order, consuming
	// one value per set bit whether or not this server stores it.
	ordered := []struct {
		bit   uint32
		apply func(uint32)
	}{
		{wire.CWBackPixmap, nil},
		{wire.CWBackPixel, func(v uint32) { w.BackgroundPixel = v }},
		{wire.CWBorderPixmap, nil},
		{wire.CWBorderPixel, nil},
		{wire.CWBitGravity, nil},
		{wire.CWWinGravity, nil},
		{wire.CWBackingStore, nil},
		{wire.CWBackingPlanes, nil},
		{wire.CWBackingPixel, nil},
		{wire.CWOverrideRedirect, func(v uint32) { w.OverrideRedirect = v != 0 }},
		{wire.CWSaveUnder, nil},
		{wire.CWEventMask, func(v uint32) { w.EventMask = v }},
		{wire.CWDontPropagate, nil},
		{wire.CWColormap, func(v uint32) { w.Colormap = v }},
		{wire.CWCursor, nil},
	}
	for _, o := range ordered {
		if mask&o.bit == 0 {
			continue
		}
		v, ok := next()
		if !ok {
			return nil
		}
		if o.apply != nil {
			o.apply(v)
		}
	}
	return nil
}

// CreatePixmap allocates a Pixmap sized w x h at depth, inheriting depth
// from drawable when depth is 0.
func (s *Store) CreatePixmap(id, drawable wire.ResourceID, w, h uint16, depth uint8) {
	if depth == 0 {
		if win, ok := s.windows[drawable]; ok {
			depth = win.Depth
		} else if p, ok := s.pixmaps[drawable]; ok {
			depth = p.Depth
		}
	}
	s.pixmaps[id] = newPixmap(id, drawable, w, h, depth)
}

// FreePixmap removes a pixmap.
func (s *Store) FreePixmap(id wire.ResourceID) error {
	if _, ok := s.pixmaps[id]; !ok {
		return ErrNoSuchPixmap
	}
	delete(s.pixmaps, id)
	return nil
}

// CreateGC allocates a GC bound to drawable with documented defaults.
func (s *Store) CreateGC(id, drawable wire.ResourceID) {
	s.gcs[id] = newGC(id, drawable)
}

// ChangeGC applies the subset of fields selected by mask, in mask-bit
// order (LSB first).
func (s *Store) ChangeGC(id wire.ResourceID, mask uint32, next func() (uint32, bool)) error {
	g, ok := s.gcs[id]
	if !ok {
		return ErrNoSuchGC
	}
	g.apply(mask, next)
	return nil
}

// FreeGC removes a graphics context.
func (s *Store) FreeGC(id wire.ResourceID) error {
	if _, ok := s.gcs[id]; !ok {
		return ErrNoSuchGC
	}
	delete(s.gcs, id)
	return nil
}

// Drawable is the (pixels, width, height) triple shared by windows and
// pixmaps, resolved by id for drawing and composition.
type Drawable struct {
	Pixels        []byte
	Width, Height uint16
}

// ResolveDrawable returns the pixel buffer backing id, whether it names a
// window, a pixmap, or the root.
func (s *Store) ResolveDrawable(id wire.ResourceID) (*Drawable, error) {
	if w, ok := s.windows[id]; ok {
		return &Drawable{Pixels: w.Pixels, Width: w.Width, Height: w.Height}, nil
	}
	if p, ok := s.pixmaps[id]; ok {
		return &Drawable{Pixels: p.Pixels, Width: p.Width, Height: p.Height}, nil
	}
	return nil, ErrNoSuchDrawable
}

// MarkDirty exposes markDirty to callers outside the package (drawing
// handlers touch pixel buffers directly via ResolveDrawable, so they must
// flag the compositor themselves).
func (s *Store) MarkDirty() { s.markDirty() }

// MappedWindow is one entry in the composition order: a mapped window
// together with its absolute screen coordinates.
type MappedWindow struct {
	Window *Window
	AbsX   int
	AbsY   int
}

// CollectMapped performs the depth-first traversal of spec.md §4.B,
// yielding every mapped descendant of root (excluding root itself) in
// stable stacking order (children iterated in insertion order), each
// annotated with absolute screen coordinates.
func (s *Store) CollectMapped() []MappedWindow {
	root, ok := s.windows[s.RootID]
	if !ok {
		return nil
	}
	var out []MappedWindow
	s.collect(root, 0, 0, &out)
	return out
}

func (s *Store) collect(w *Window, parentAbsX, parentAbsY int, out *[]MappedWindow) {
	for _, childID := range w.Children {
		child, ok := s.windows[childID]
		if !ok {
			continue
		}
		absX := parentAbsX + int(child.X)
		absY := parentAbsY + int(child.Y)
		if child.Mapped {
			*out = append(*out, MappedWindow{Window: child, AbsX: absX, AbsY: absY})
		}
		s.collect(child, absX, absY, out)
	}
}

// ReapClient removes every window, pixmap, and GC whose id falls in
// [base, base|mask], the resource-id range the server assigned to a
// disconnecting client. This is the supplemented cleanup of SPEC_FULL.md
// (spec.md §3 calls it required but unenumerated; §9 notes the source
// never implemented it).
func (s *Store) ReapClient(base, mask wire.ResourceID) {
	owned := func(id wire.ResourceID) bool {
		return id&^mask == base
	}
	for id, w := range s.windows {
		if id == s.RootID {
			continue
		}
		if owned(id) {
			if p, ok := s.windows[w.Parent]; ok {
				p.removeChild(id)
			}
			delete(s.windows, id)
		}
	}
	for id := range s.pixmaps {
		if owned(id) {
			delete(s.pixmaps, id)
		}
	}
	for id := range s.gcs {
		if owned(id) {
			delete(s.gcs, id)
		}
	}
	s.markDirty()
}
