package proto

import "github.com/rotkonetworks/x11q/internal/wire"

// registerWindowHandlers wires the window-tree opcodes of spec.md §4.D.
func (d *Dispatcher) registerWindowHandlers() {
	d.register(wire.OpcodeCreateWindow, handleCreateWindow)
	d.register(wire.OpcodeChangeWindowAttrs, handleChangeWindowAttributes)
	d.register(wire.OpcodeGetWindowAttrs, handleGetWindowAttributes)
	d.register(wire.OpcodeDestroyWindow, handleDestroyWindow)
	d.register(wire.OpcodeMapWindow, handleMapWindow)
	d.register(wire.OpcodeUnmapWindow, handleUnmapWindow)
	d.register(wire.OpcodeConfigureWindow, handleConfigureWindow)
	d.register(wire.OpcodeGetGeometry, handleGetGeometry)
	d.register(wire.OpcodeQueryTree, handleQueryTree)
}

func handleCreateWindow(ctx *Context) []byte {
	depth := ctx.Frame[1]
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	wid, err1 := dec.Uint32()
	parent, err2 := dec.Uint32()
	x, err3 := dec.Int16()
	y, err4 := dec.Int16()
	width, err5 := dec.Uint16()
	height, err6 := dec.Uint16()
	_, err7 := dec.Uint16() // border-width, unused here
	class, err8 := dec.Uint16()
	visual, err9 := dec.Uint32()
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil ||
		err6 != nil || err7 != nil || err8 != nil || err9 != nil {
		return nil
	}
	ctx.Store.CreateWindow(wire.ResourceID(wid), wire.ResourceID(parent), x, y, width, height, uint8(class), visual, depth)

	// value-mask and value-list carry the initial attributes; reuse the
	// same mask-bit-order consumption ChangeWindowAttributes uses.
	if mask, err := dec.Uint32(); err == nil {
		ctx.Store.ChangeWindowAttributes(wire.ResourceID(wid), mask, func() (uint32, bool) {
			v, err := dec.Uint32()
			return v, err == nil
		})
	}
	return nil
}

func handleChangeWindowAttributes(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	window, err := dec.Uint32()
	if err != nil {
		return nil
	}
	mask, err := dec.Uint32()
	if err != nil {
		return nil
	}
	ctx.Store.ChangeWindowAttributes(wire.ResourceID(window), mask, func() (uint32, bool) {
		v, err := dec.Uint32()
		return v, err == nil
	})
	return nil
}

func handleGetWindowAttributes(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	id, err := dec.Uint32()
	if err != nil {
		return nil
	}
	w, ok := ctx.Store.Window(wire.ResourceID(id))
	if !ok {
		return EncodeError(ctx.Client.ByteOrder, wire.ErrorWindow, ctx.Client.Seq, id, 0, wire.OpcodeGetWindowAttrs)
	}

	e := NewReply(ctx.Client.ByteOrder, 0, ctx.Client.Seq) // backing-store: never
	e.PutUint32(w.Visual)
	e.PutUint16(uint16(w.Class))
	e.PutUint8(0) // bit gravity
	e.PutUint8(0) // win gravity
	e.PutUint32(0xFFFFFFFF) // backing planes
	e.PutUint32(0)          // backing pixel
	e.PutUint8(0)           // save under
	e.PutUint8(1)           // map is installed
	mapState := uint8(0)
	if w.Mapped {
		mapState = 2
	}
	e.PutUint8(mapState)
	overrideRedirect := uint8(0)
	if w.OverrideRedirect {
		overrideRedirect = 1
	}
	e.PutUint8(overrideRedirect)
	e.PutUint32(w.Colormap)
	e.PutUint32(w.EventMask)
	e.PutUint32(w.EventMask)
	e.PutUint16(0) // do-not-propagate mask
	e.PutPadN(2)
	return FinishReply(ctx.Client.ByteOrder, e)
}

func handleDestroyWindow(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	id, err := dec.Uint32()
	if err != nil {
		return nil
	}
	if id == uint32(ctx.Store.RootID) {
		return nil
	}
	if err := ctx.Store.DestroyWindow(wire.ResourceID(id)); err != nil {
		return EncodeError(ctx.Client.ByteOrder, wire.ErrorWindow, ctx.Client.Seq, id, 0, wire.OpcodeDestroyWindow)
	}
	return nil
}

func handleMapWindow(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	id, err := dec.Uint32()
	if err != nil {
		return nil
	}
	if err := ctx.Store.MapWindow(wire.ResourceID(id)); err != nil {
		return EncodeError(ctx.Client.ByteOrder, wire.ErrorWindow, ctx.Client.Seq, id, 0, wire.OpcodeMapWindow)
	}
	if ctx.Input != nil {
		ctx.Input.PushMapNotify(ctx.Client.Seq, wire.ResourceID(id), wire.ResourceID(id))
	}
	return nil
}

func handleUnmapWindow(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	id, err := dec.Uint32()
	if err != nil {
		return nil
	}
	if err := ctx.Store.UnmapWindow(wire.ResourceID(id)); err != nil {
		return EncodeError(ctx.Client.ByteOrder, wire.ErrorWindow, ctx.Client.Seq, id, 0, wire.OpcodeUnmapWindow)
	}
	return nil
}

func handleConfigureWindow(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	id, err := dec.Uint32()
	if err != nil {
		return nil
	}
	mask, err := dec.Uint16()
	if err != nil {
		return nil
	}
	if err := dec.Skip(2); err != nil {
		return nil
	}

	var x, y int16
	var width, height, border uint16
	order := []struct {
		bit  uint16
		read func(uint32)
	}{
		{wire.ConfigX, func(v uint32) { x = int16(v) }},
		{wire.ConfigY, func(v uint32) { y = int16(v) }},
		{wire.ConfigWidth, func(v uint32) { width = uint16(v) }},
		{wire.ConfigHeight, func(v uint32) { height = uint16(v) }},
		{wire.ConfigBorder, func(v uint32) { border = uint16(v) }},
		{wire.ConfigSibling, func(v uint32) {}},
		{wire.ConfigStackMode, func(v uint32) {}},
	}
	for _, o := range order {
		if mask&o.bit == 0 {
			continue
		}
		v, err := dec.Uint32()
		if err != nil {
			break
		}
		o.read(v)
	}

	if err := ctx.Store.ConfigureWindow(wire.ResourceID(id), mask, x, y, width, height, border); err != nil {
		return EncodeError(ctx.Client.ByteOrder, wire.ErrorWindow, ctx.Client.Seq, id, 0, wire.OpcodeConfigureWindow)
	}
	return nil
}

func handleGetGeometry(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	id, err := dec.Uint32()
	if err != nil {
		return nil
	}
	w, ok := ctx.Store.Window(wire.ResourceID(id))
	if !ok {
		return EncodeError(ctx.Client.ByteOrder, wire.ErrorDrawable, ctx.Client.Seq, id, 0, wire.OpcodeGetGeometry)
	}

	e := NewReply(ctx.Client.ByteOrder, w.Depth, ctx.Client.Seq)
	e.PutUint32(uint32(ctx.Store.RootID))
	e.PutInt16(w.X)
	e.PutInt16(w.Y)
	e.PutUint16(w.Width)
	e.PutUint16(w.Height)
	e.PutUint16(w.BorderWidth)
	e.PutPadN(10)
	return FinishReply(ctx.Client.ByteOrder, e)
}

func handleQueryTree(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	id, err := dec.Uint32()
	if err != nil {
		return nil
	}
	w, ok := ctx.Store.Window(wire.ResourceID(id))
	if !ok {
		return EncodeError(ctx.Client.ByteOrder, wire.ErrorWindow, ctx.Client.Seq, id, 0, wire.OpcodeQueryTree)
	}

	e := NewReply(ctx.Client.ByteOrder, 0, ctx.Client.Seq)
	e.PutUint32(uint32(ctx.Store.RootID))
	if w.ID == ctx.Store.RootID {
		e.PutUint32(0)
	} else {
		e.PutUint32(uint32(w.Parent))
	}
	e.PutUint16(uint16(len(w.Children)))
	e.PutPadN(14)
	for _, c := range w.Children {
		e.PutUint32(uint32(c))
	}
	return FinishReply(ctx.Client.ByteOrder, e)
}
