package store

import (
	"testing"

	"github.com/rotkonetworks/x11q/internal/wire"
)

const testRoot wire.ResourceID = 1

func newTestStore() *Store {
	return New(testRoot, 1024, 768)
}

func TestCreateWindow_InsertsIntoParentChildren(t *testing.T) {
	s := newTestStore()
	const wid wire.ResourceID = 0x200001

	if err := s.CreateWindow(wid, testRoot, 10, 20, 100, 50, wire.WindowClassInputOutput, RootVisualID, RootDepth); err != nil {
		t.Fatalf("CreateWindow: unexpected error: %v", err)
	}

	root, _ := s.Window(testRoot)
	if len(root.Children) != 1 || root.Children[0] != wid {
		t.Fatalf("root.Children: got %v, want [%v]", root.Children, wid)
	}

	w, ok := s.Window(wid)
	if !ok {
		t.Fatal("Window: expected window to exist")
	}
	if w.Width != 100 || w.Height != 50 {
		t.Errorf("geometry: got %dx%d, want 100x50", w.Width, w.Height)
	}
}

func TestCreateWindow_FloorsWidthHeightTo1(t *testing.T) {
	s := newTestStore()
	const wid wire.ResourceID = 0x200001

	s.CreateWindow(wid, testRoot, 0, 0, 0, 0, wire.WindowClassInputOutput, RootVisualID, RootDepth)
	w, _ := s.Window(wid)
	if w.Width != 1 || w.Height != 1 {
		t.Errorf("got %dx%d, want 1x1", w.Width, w.Height)
	}
	if len(w.Pixels) != 4 {
		t.Errorf("Pixels len: got %d, want 4", len(w.Pixels))
	}
}

func TestDestroyWindow_RemovesFromParentAndDescendants(t *testing.T) {
	s := newTestStore()
	const parent wire.ResourceID = 0x200001
	const child wire.ResourceID = 0x200002

	s.CreateWindow(parent, testRoot, 0, 0, 10, 10, wire.WindowClassInputOutput, RootVisualID, RootDepth)
	s.CreateWindow(child, parent, 0, 0, 10, 10, wire.WindowClassInputOutput, RootVisualID, RootDepth)

	if err := s.DestroyWindow(parent); err != nil {
		t.Fatalf("DestroyWindow: unexpected error: %v", err)
	}

	if _, ok := s.Window(parent); ok {
		t.Error("parent should be gone")
	}
	if _, ok := s.Window(child); ok {
		t.Error("child should be gone (recursive destroy)")
	}
	root, _ := s.Window(testRoot)
	for _, c := range root.Children {
		if c == parent {
			t.Error("root.Children still references destroyed window")
		}
	}
}

func TestDestroyWindow_NoSuchWindow(t *testing.T) {
	s := newTestStore()
	if err := s.DestroyWindow(0xDEADBEEF); err != ErrNoSuchWindow {
		t.Errorf("got %v, want ErrNoSuchWindow", err)
	}
}

func TestConfigureWindow_ResizeReallocatesZeroed(t *testing.T) {
	s := newTestStore()
	const wid wire.ResourceID = 0x200001
	s.CreateWindow(wid, testRoot, 0, 0, 100, 50, wire.WindowClassInputOutput, RootVisualID, RootDepth)

	w, _ := s.Window(wid)
	w.Pixels[0] = 0xFF // dirty a pixel before resize

	err := s.ConfigureWindow(wid, wire.ConfigWidth|wire.ConfigHeight, 0, 0, 200, 80, 0)
	if err != nil {
		t.Fatalf("ConfigureWindow: unexpected error: %v", err)
	}

	w, _ = s.Window(wid)
	if w.Width != 200 || w.Height != 80 {
		t.Fatalf("geometry: got %dx%d, want 200x80", w.Width, w.Height)
	}
	wantLen := 200 * 80 * 4
	if len(w.Pixels) != wantLen {
		t.Fatalf("Pixels len: got %d, want %d", len(w.Pixels), wantLen)
	}
	for i, b := range w.Pixels {
		if b != 0 {
			t.Fatalf("Pixels[%d] = %#x, want zeroed after resize", i, b)
		}
	}
}

func TestCollectMapped_AbsoluteCoordinatesAndStacking(t *testing.T) {
	s := newTestStore()
	const a wire.ResourceID = 0x200001
	const b wire.ResourceID = 0x200002
	const c wire.ResourceID = 0x200003

	s.CreateWindow(a, testRoot, 10, 20, 100, 50, wire.WindowClassInputOutput, RootVisualID, RootDepth)
	s.CreateWindow(b, testRoot, 5, 5, 10, 10, wire.WindowClassInputOutput, RootVisualID, RootDepth)
	s.CreateWindow(c, a, 1, 2, 5, 5, wire.WindowClassInputOutput, RootVisualID, RootDepth)

	s.MapWindow(a)
	s.MapWindow(c)
	// b left unmapped deliberately

	mapped := s.CollectMapped()
	if len(mapped) != 2 {
		t.Fatalf("got %d mapped windows, want 2", len(mapped))
	}
	if mapped[0].Window.ID != a || mapped[0].AbsX != 10 || mapped[0].AbsY != 20 {
		t.Errorf("mapped[0]: got id=%v abs=(%d,%d)", mapped[0].Window.ID, mapped[0].AbsX, mapped[0].AbsY)
	}
	if mapped[1].Window.ID != c || mapped[1].AbsX != 11 || mapped[1].AbsY != 22 {
		t.Errorf("mapped[1]: got id=%v abs=(%d,%d), want id=%v abs=(11,22)", mapped[1].Window.ID, mapped[1].AbsX, mapped[1].AbsY, c)
	}
}

func TestAtomTable_PredefinedIDs(t *testing.T) {
	s := newTestStore()
	if id := s.Atoms.Intern("PRIMARY", true); id != wire.AtomPrimary {
		t.Errorf("PRIMARY: got %d, want %d", id, wire.AtomPrimary)
	}
	if id := s.Atoms.Intern("WM_TRANSIENT_FOR", true); id != wire.AtomWMTransientFor {
		t.Errorf("WM_TRANSIENT_FOR: got %d, want %d", id, wire.AtomWMTransientFor)
	}
}

func TestAtomTable_InternRoundTrip(t *testing.T) {
	s := newTestStore()
	id := s.Atoms.Intern("HELLO", false)
	if id < wire.FirstFreeAtom {
		t.Fatalf("got id %d, want >= %d", id, wire.FirstFreeAtom)
	}

	again := s.Atoms.Intern("HELLO", false)
	if again != id {
		t.Errorf("second Intern: got %d, want %d", again, id)
	}

	name, ok := s.Atoms.Name(id)
	if !ok || name != "HELLO" {
		t.Errorf("Name(%d): got (%q, %v), want (HELLO, true)", id, name, ok)
	}
}

func TestAtomTable_OnlyIfExistsUnknown(t *testing.T) {
	s := newTestStore()
	if id := s.Atoms.Intern("NOT_INTERNED_YET", true); id != wire.AtomNone {
		t.Errorf("got %d, want AtomNone", id)
	}
}

func TestReapClient_RemovesOwnedResourcesOnly(t *testing.T) {
	s := newTestStore()
	const base wire.ResourceID = 0x00200000
	const mask wire.ResourceID = 0x001fffff
	const owned wire.ResourceID = base + 1
	const otherClient wire.ResourceID = 0x00400001

	s.CreateWindow(owned, testRoot, 0, 0, 10, 10, wire.WindowClassInputOutput, RootVisualID, RootDepth)
	s.CreateWindow(otherClient, testRoot, 0, 0, 10, 10, wire.WindowClassInputOutput, RootVisualID, RootDepth)
	s.CreatePixmap(base+2, owned, 10, 10, RootDepth)
	s.CreateGC(base+3, owned)

	s.ReapClient(base, mask)

	if _, ok := s.Window(owned); ok {
		t.Error("owned window should be reaped")
	}
	if _, ok := s.Window(otherClient); !ok {
		t.Error("other client's window should survive")
	}
	if _, ok := s.Pixmap(base + 2); ok {
		t.Error("owned pixmap should be reaped")
	}
	if _, ok := s.GC(base + 3); ok {
		t.Error("owned GC should be reaped")
	}
	if _, ok := s.Window(testRoot); !ok {
		t.Error("root must never be reaped")
	}
}

func TestResolveDrawable(t *testing.T) {
	s := newTestStore()
	const wid wire.ResourceID = 0x200001
	s.CreateWindow(wid, testRoot, 0, 0, 10, 10, wire.WindowClassInputOutput, RootVisualID, RootDepth)

	d, err := s.ResolveDrawable(wid)
	if err != nil {
		t.Fatalf("ResolveDrawable: unexpected error: %v", err)
	}
	if d.Width != 10 || d.Height != 10 {
		t.Errorf("got %dx%d, want 10x10", d.Width, d.Height)
	}

	if _, err := s.ResolveDrawable(0xDEADBEEF); err != ErrNoSuchDrawable {
		t.Errorf("got %v, want ErrNoSuchDrawable", err)
	}
}
