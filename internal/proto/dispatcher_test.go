package proto

import (
	"testing"

	"github.com/rotkonetworks/x11q/internal/draw"
	"github.com/rotkonetworks/x11q/internal/ext"
	"github.com/rotkonetworks/x11q/internal/input"
	"github.com/rotkonetworks/x11q/internal/store"
	"github.com/rotkonetworks/x11q/internal/wire"
)

func newTestDispatcher() (*Dispatcher, *store.Store, *Client) {
	d := NewDispatcher(ScreenConfig{Width: 1024, Height: 768, RootID: 1, ColormapID: 2})
	s := store.New(1, 1024, 768)
	c := NewClient(1)
	c.ByteOrder = wire.LSBFirst
	c.Connected = true
	return d, s, c
}

func encodeFrame(opcode, detail uint8, body []byte) []byte {
	length := wire.RequestLength(4 + len(body))
	frame := []byte{opcode, detail, byte(length), byte(length >> 8)}
	return append(frame, body...)
}

// assertReplyFraming checks the length word against the reply's actual size
// (spec.md §8 property 3): length*4 bytes of payload must follow the
// mandatory 32-byte fixed header.
func assertReplyFraming(t *testing.T, reply []byte) {
	t.Helper()
	if len(reply) < 32 {
		t.Fatalf("reply shorter than the mandatory 32-byte header: %d bytes", len(reply))
	}
	dec := wire.NewDecoder(wire.LSBFirst, reply[4:8])
	n, _ := dec.Uint32()
	if int(n)*4+32 != len(reply) {
		t.Fatalf("length word mismatch: n=%d reply=%d bytes", n, len(reply))
	}
}

func TestDispatch_SetupHandshake(t *testing.T) {
	d, _, c := newTestDispatcher()
	c.Connected = false
	reply := d.HandleSetup(c)
	if reply[0] != 1 {
		t.Fatalf("expected success byte, got %d", reply[0])
	}
	if !c.Connected {
		t.Fatal("expected client marked connected")
	}
	additional := wire.NewDecoder(wire.LSBFirst, reply[4:6])
	n, _ := additional.Uint16()
	if int(n)*4+8 != len(reply) {
		t.Fatalf("additional_length mismatch: n=%d len=%d", n, len(reply))
	}
}

func TestDispatch_InternAtomRoundTrip(t *testing.T) {
	d, s, c := newTestDispatcher()
	name := "HELLO"
	body := make([]byte, 4+len(name))
	body[0] = byte(len(name))
	copy(body[4:], name)
	frame := encodeFrame(wire.OpcodeInternAtom, 0, body)

	reply := d.Dispatch(&Context{Frame: frame, Client: c, Store: s})
	assertReplyFraming(t, reply)
	dec := wire.NewDecoder(wire.LSBFirst, reply[8:])
	atomID, _ := dec.Uint32()
	if atomID < wire.FirstFreeAtom {
		t.Fatalf("expected atom id >= %d, got %d", wire.FirstFreeAtom, atomID)
	}

	reply2 := d.Dispatch(&Context{Frame: frame, Client: c, Store: s})
	assertReplyFraming(t, reply2)
	dec2 := wire.NewDecoder(wire.LSBFirst, reply2[8:])
	atomID2, _ := dec2.Uint32()
	if atomID2 != atomID {
		t.Fatalf("expected same atom id on re-intern, got %d vs %d", atomID2, atomID)
	}

	nameBody := wire.NewEncoder(wire.LSBFirst)
	nameBody.PutUint32(atomID)
	getNameFrame := encodeFrame(wire.OpcodeGetAtomName, 0, nameBody.Bytes())
	getNameReply := d.Dispatch(&Context{Frame: getNameFrame, Client: c, Store: s})
	assertReplyFraming(t, getNameReply)
	decName := wire.NewDecoder(wire.LSBFirst, getNameReply[8:])
	nameLen, _ := decName.Uint16()
	decName.Skip(22)
	got, _ := decName.String(int(nameLen))
	if got != name {
		t.Fatalf("GetAtomName = %q, want %q", got, name)
	}
}

func TestDispatch_CreateWindowMapWindowComposite(t *testing.T) {
	d, s, c := newTestDispatcher()
	const wid = 0x200001

	createBody := wire.NewEncoder(wire.LSBFirst)
	createBody.PutUint32(wid)
	createBody.PutUint32(uint32(s.RootID))
	createBody.PutInt16(10)
	createBody.PutInt16(20)
	createBody.PutUint16(100)
	createBody.PutUint16(50)
	createBody.PutUint16(0) // border-width
	createBody.PutUint16(wire.WindowClassInputOutput)
	createBody.PutUint32(0) // visual
	createBody.PutUint32(0) // value-mask
	createFrame := encodeFrame(wire.OpcodeCreateWindow, 24, createBody.Bytes())
	d.Dispatch(&Context{Frame: createFrame, Client: c, Store: s})

	mapBody := wire.NewEncoder(wire.LSBFirst)
	mapBody.PutUint32(wid)
	mapFrame := encodeFrame(wire.OpcodeMapWindow, 0, mapBody.Bytes())
	d.Dispatch(&Context{Frame: mapFrame, Client: c, Store: s})

	comp := draw.NewCompositor(1024, 768)
	comp.Composite(s)
	fb := comp.Framebuffer()

	// window pixels start zeroed: framebuffer at (10,20) should be black (0).
	idx := 20*1024 + 10
	if fb[idx] != 0 {
		t.Fatalf("expected black pixel at window origin, got %#x", fb[idx])
	}

	w, ok := s.Window(wid)
	if !ok || !w.Mapped {
		t.Fatal("expected window created and mapped")
	}
	if w.X != 10 || w.Y != 20 || w.Width != 100 || w.Height != 50 {
		t.Fatalf("unexpected geometry: %+v", w)
	}
}

func TestDispatch_PolyFillRectangle(t *testing.T) {
	d, s, c := newTestDispatcher()
	const wid = 0x200001
	const gcID = 0x200002
	s.CreateWindow(wid, s.RootID, 0, 0, 100, 100, wire.WindowClassInputOutput, 0, 24)

	gcBody := wire.NewEncoder(wire.LSBFirst)
	gcBody.PutUint32(gcID)
	gcBody.PutUint32(wid)
	gcBody.PutUint32(wire.GCForeground)
	gcBody.PutUint32(0x00FF0000)
	gcFrame := encodeFrame(wire.OpcodeCreateGC, 0, gcBody.Bytes())
	d.Dispatch(&Context{Frame: gcFrame, Client: c, Store: s})

	rectBody := wire.NewEncoder(wire.LSBFirst)
	rectBody.PutUint32(wid)
	rectBody.PutUint32(gcID)
	rectBody.PutInt16(5)
	rectBody.PutInt16(5)
	rectBody.PutUint16(10)
	rectBody.PutUint16(10)
	fillFrame := encodeFrame(wire.OpcodePolyFillRectangle, 0, rectBody.Bytes())
	d.Dispatch(&Context{Frame: fillFrame, Client: c, Store: s})

	w, _ := s.Window(wid)
	off := (5*100 + 5) * 4
	if w.Pixels[off] != 0x00 || w.Pixels[off+1] != 0x00 || w.Pixels[off+2] != 0xFF {
		t.Fatalf("expected BGRA red at (5,5), got %v", w.Pixels[off:off+4])
	}
}

func TestDispatch_ConfigureWindowResize(t *testing.T) {
	d, s, c := newTestDispatcher()
	const wid = 0x200001
	s.CreateWindow(wid, s.RootID, 0, 0, 10, 10, wire.WindowClassInputOutput, 0, 24)

	cfgBody := wire.NewEncoder(wire.LSBFirst)
	cfgBody.PutUint32(wid)
	cfgBody.PutUint16(wire.ConfigWidth | wire.ConfigHeight)
	cfgBody.PutPadN(2)
	cfgBody.PutUint32(200)
	cfgBody.PutUint32(80)
	cfgFrame := encodeFrame(wire.OpcodeConfigureWindow, 0, cfgBody.Bytes())
	d.Dispatch(&Context{Frame: cfgFrame, Client: c, Store: s})

	w, _ := s.Window(wid)
	if w.Width != 200 || w.Height != 80 {
		t.Fatalf("expected resize to 200x80, got %dx%d", w.Width, w.Height)
	}
	if len(w.Pixels) != 200*80*4 {
		t.Fatalf("expected pixel buffer len %d, got %d", 200*80*4, len(w.Pixels))
	}
	for _, b := range w.Pixels {
		if b != 0 {
			t.Fatal("expected zero-filled pixel buffer after resize")
		}
	}

	geomBody := wire.NewEncoder(wire.LSBFirst)
	geomBody.PutUint32(wid)
	geomFrame := encodeFrame(wire.OpcodeGetGeometry, 0, geomBody.Bytes())
	reply := d.Dispatch(&Context{Frame: geomFrame, Client: c, Store: s})
	assertReplyFraming(t, reply)
	if len(reply) != 32 {
		t.Fatalf("expected fixed 32-byte GetGeometry reply, got %d bytes", len(reply))
	}
	dec := wire.NewDecoder(wire.LSBFirst, reply[8:])
	dec.Skip(4) // root
	dec.Skip(4) // x, y
	width, _ := dec.Uint16()
	height, _ := dec.Uint16()
	if width != 200 || height != 80 {
		t.Fatalf("GetGeometry = %dx%d, want 200x80", width, height)
	}
}

func TestDispatch_QueryExtensionRANDR(t *testing.T) {
	d, s, c := newTestDispatcher()
	name := "RANDR"
	body := make([]byte, 4+wire.Pad(len(name))+len(name))
	body[0] = byte(len(name))
	copy(body[4:], name)
	frame := encodeFrame(wire.OpcodeQueryExtension, 0, body)

	reply := d.Dispatch(&Context{Frame: frame, Client: c, Store: s})
	assertReplyFraming(t, reply)
	dec := wire.NewDecoder(wire.LSBFirst, reply[8:])
	present, _ := dec.Uint8()
	major, _ := dec.Uint8()
	firstEvent, _ := dec.Uint8()
	firstError, _ := dec.Uint8()
	if present != 1 || major != wire.OpcodeRANDR || firstEvent != 89 || firstError != 147 {
		t.Fatalf("QueryExtension RANDR = present=%d major=%d event=%d error=%d",
			present, major, firstEvent, firstError)
	}
}

func TestDispatch_MapWindowPushesMapNotify(t *testing.T) {
	d, s, c := newTestDispatcher()
	b := input.NewBuilder(c.ByteOrder, s.RootID)
	const wid = 0x200001
	s.CreateWindow(wid, s.RootID, 0, 0, 10, 10, wire.WindowClassInputOutput, 0, 24)

	mapBody := wire.NewEncoder(wire.LSBFirst)
	mapBody.PutUint32(wid)
	mapFrame := encodeFrame(wire.OpcodeMapWindow, 0, mapBody.Bytes())
	d.Dispatch(&Context{Frame: mapFrame, Client: c, Store: s, Input: b})

	events := b.Queue.Drain()
	if len(events) != 1 {
		t.Fatalf("expected 1 queued event, got %d", len(events))
	}
	if events[0][0] != wire.EventMapNotify {
		t.Fatalf("expected MapNotify code, got %d", events[0][0])
	}
}

func TestDispatch_QueryPointerReplyFraming(t *testing.T) {
	d, s, c := newTestDispatcher()

	body := wire.NewEncoder(wire.LSBFirst)
	body.PutUint32(uint32(s.RootID))
	frame := encodeFrame(wire.OpcodeQueryPointer, 0, body.Bytes())

	reply := d.Dispatch(&Context{Frame: frame, Client: c, Store: s})
	assertReplyFraming(t, reply)
	if len(reply) != 32 {
		t.Fatalf("expected fixed 32-byte QueryPointer reply, got %d bytes", len(reply))
	}
}

func TestDispatch_QueryKeymapReplyFraming(t *testing.T) {
	d, s, c := newTestDispatcher()
	frame := encodeFrame(wire.OpcodeQueryKeymap, 0, nil)

	reply := d.Dispatch(&Context{Frame: frame, Client: c, Store: s})
	assertReplyFraming(t, reply)
	if len(reply) != 40 {
		t.Fatalf("expected 40-byte QueryKeymap reply (8-byte header + 32-byte key array), got %d bytes", len(reply))
	}
	keys := reply[8:40]
	for _, b := range keys {
		if b != 0 {
			t.Fatalf("expected no keys down, got %v", keys)
		}
	}
}

func TestDispatch_PutImagePreservesDepth32Alpha(t *testing.T) {
	d, s, c := newTestDispatcher()
	const wid = 0x200001
	const gcID = 0x200002
	s.CreateWindow(wid, s.RootID, 0, 0, 4, 4, wire.WindowClassInputOutput, 0, 32)

	gcBody := wire.NewEncoder(wire.LSBFirst)
	gcBody.PutUint32(gcID)
	gcBody.PutUint32(wid)
	gcBody.PutUint32(0)
	gcFrame := encodeFrame(wire.OpcodeCreateGC, 0, gcBody.Bytes())
	d.Dispatch(&Context{Frame: gcFrame, Client: c, Store: s})

	pixel := []byte{0x10, 0x20, 0x30, 0x80} // BGRA, alpha 0x80

	body := wire.NewEncoder(wire.LSBFirst)
	body.PutUint32(wid)
	body.PutUint32(gcID)
	body.PutUint16(1) // width
	body.PutUint16(1) // height
	body.PutInt16(0)  // dst-x
	body.PutInt16(0)  // dst-y
	body.PutUint8(0)  // left-pad
	body.PutUint8(32) // depth
	body.PutPadN(2)   // unused
	putFrame := encodeFrame(wire.OpcodePutImage, 2 /* ZPixmap */, append(body.Bytes(), pixel...))
	d.Dispatch(&Context{Frame: putFrame, Client: c, Store: s})

	w, _ := s.Window(wid)
	if w.Pixels[3] != 0x80 {
		t.Fatalf("expected alpha 0x80 preserved for depth-32 PutImage, got %#x", w.Pixels[3])
	}
}

func TestDispatch_ExtensionOpcodeRoutedToMultiplexer(t *testing.T) {
	d, s, c := newTestDispatcher()
	frame := []byte{wire.OpcodeRANDR, 0, 0, 0}
	reply := d.Dispatch(&Context{Frame: frame, Client: c, Store: s})
	if reply == nil {
		t.Fatal("expected a reply for RANDR QueryVersion")
	}
	if !ext.IsExtensionOpcode(wire.OpcodeRANDR) {
		t.Fatal("expected RANDR to be classified as an extension opcode")
	}
}
