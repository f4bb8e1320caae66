package proto

import (
	"github.com/rotkonetworks/x11q/internal/draw"
	"github.com/rotkonetworks/x11q/internal/wire"
)

// registerDrawHandlers wires pixmap/GC lifecycle and the drawing primitives
// of spec.md §4.D/§4.E.
func (d *Dispatcher) registerDrawHandlers() {
	d.register(wire.OpcodeCreatePixmap, handleCreatePixmap)
	d.register(wire.OpcodeFreePixmap, handleFreePixmap)
	d.register(wire.OpcodeCreateGC, handleCreateGC)
	d.register(wire.OpcodeChangeGC, handleChangeGC)
	d.register(wire.OpcodeFreeGC, handleFreeGC)
	d.register(wire.OpcodeClearArea, handleClearArea)
	d.register(wire.OpcodePolyFillRectangle, handlePolyFillRectangle)
	d.register(wire.OpcodePutImage, handlePutImage)
	d.register(wire.OpcodeGetImage, handleGetImage)
	d.register(wire.OpcodeCopyArea, handleCopyArea)
}

func handleCreatePixmap(ctx *Context) []byte {
	depth := ctx.Frame[1]
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	pid, err1 := dec.Uint32()
	drawable, err2 := dec.Uint32()
	width, err3 := dec.Uint16()
	height, err4 := dec.Uint16()
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return nil
	}
	ctx.Store.CreatePixmap(wire.ResourceID(pid), wire.ResourceID(drawable), width, height, depth)
	return nil
}

func handleFreePixmap(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	id, err := dec.Uint32()
	if err != nil {
		return nil
	}
	ctx.Store.FreePixmap(wire.ResourceID(id))
	return nil
}

func handleCreateGC(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	cid, err1 := dec.Uint32()
	drawable, err2 := dec.Uint32()
	if err1 != nil || err2 != nil {
		return nil
	}
	ctx.Store.CreateGC(wire.ResourceID(cid), wire.ResourceID(drawable))
	if mask, err := dec.Uint32(); err == nil {
		ctx.Store.ChangeGC(wire.ResourceID(cid), mask, func() (uint32, bool) {
			v, err := dec.Uint32()
			return v, err == nil
		})
	}
	return nil
}

func handleChangeGC(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	id, err := dec.Uint32()
	if err != nil {
		return nil
	}
	mask, err := dec.Uint32()
	if err != nil {
		return nil
	}
	ctx.Store.ChangeGC(wire.ResourceID(id), mask, func() (uint32, bool) {
		v, err := dec.Uint32()
		return v, err == nil
	})
	return nil
}

func handleFreeGC(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	id, err := dec.Uint32()
	if err != nil {
		return nil
	}
	ctx.Store.FreeGC(wire.ResourceID(id))
	return nil
}

func handleClearArea(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	window, err1 := dec.Uint32()
	x, err2 := dec.Int16()
	y, err3 := dec.Int16()
	width, err4 := dec.Uint16()
	height, err5 := dec.Uint16()
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return nil
	}
	d, err := ctx.Store.ResolveDrawable(wire.ResourceID(window))
	if err != nil {
		return EncodeError(ctx.Client.ByteOrder, wire.ErrorDrawable, ctx.Client.Seq, window, 0, wire.OpcodeClearArea)
	}
	background := uint32(0)
	if w, ok := ctx.Store.Window(wire.ResourceID(window)); ok {
		background = w.BackgroundPixel
	}
	draw.ClearArea(d, draw.Rectangle{X: x, Y: y, Width: width, Height: height}, background)
	ctx.Store.MarkDirty()
	return nil
}

func handlePolyFillRectangle(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	drawableID, err1 := dec.Uint32()
	gcID, err2 := dec.Uint32()
	if err1 != nil || err2 != nil {
		return nil
	}
	d, err := ctx.Store.ResolveDrawable(wire.ResourceID(drawableID))
	if err != nil {
		return EncodeError(ctx.Client.ByteOrder, wire.ErrorDrawable, ctx.Client.Seq, drawableID, 0, wire.OpcodePolyFillRectangle)
	}
	foreground := uint32(0xFFFFFF)
	if gc, ok := ctx.Store.GC(wire.ResourceID(gcID)); ok {
		foreground = gc.Foreground
	}
	for dec.Remaining() >= 8 {
		x, _ := dec.Int16()
		y, _ := dec.Int16()
		width, _ := dec.Uint16()
		height, _ := dec.Uint16()
		draw.FillRectangle(d, draw.Rectangle{X: x, Y: y, Width: width, Height: height}, foreground)
	}
	ctx.Store.MarkDirty()
	return nil
}

func handlePutImage(ctx *Context) []byte {
	// ctx.Frame[1] is the image format (XYBitmap/XYPixmap/ZPixmap), not depth.
	if format := ctx.Frame[1]; format != wire.ImageFormatZPixmap {
		ctx.Log.Warn().Uint8("format", format).Msg("PutImage format not supported, dropped")
		return nil
	}
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	drawableID, err1 := dec.Uint32()
	_, err2 := dec.Uint32() // gc, unused: this server draws image bytes directly
	width, err3 := dec.Uint16()
	height, err4 := dec.Uint16()
	dstX, err5 := dec.Int16()
	dstY, err6 := dec.Int16()
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil || err6 != nil {
		return nil
	}
	if _, err := dec.Uint8(); err != nil { // left-pad
		return nil
	}
	depth, err := dec.Uint8()
	if err != nil {
		return nil
	}
	if err := dec.Skip(2); err != nil { // unused
		return nil
	}
	data, err := dec.Bytes(int(width) * int(height) * 4)
	if err != nil {
		return nil
	}
	d, err := ctx.Store.ResolveDrawable(wire.ResourceID(drawableID))
	if err != nil {
		return EncodeError(ctx.Client.ByteOrder, wire.ErrorDrawable, ctx.Client.Seq, drawableID, 0, wire.OpcodePutImage)
	}
	draw.PutImage(d, depth, dstX, dstY, width, height, data)
	ctx.Store.MarkDirty()
	return nil
}

func handleGetImage(ctx *Context) []byte {
	depth := ctx.Frame[1]
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	drawableID, err1 := dec.Uint32()
	x, err2 := dec.Int16()
	y, err3 := dec.Int16()
	width, err4 := dec.Uint16()
	height, err5 := dec.Uint16()
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return nil
	}
	d, err := ctx.Store.ResolveDrawable(wire.ResourceID(drawableID))
	if err != nil {
		return EncodeError(ctx.Client.ByteOrder, wire.ErrorDrawable, ctx.Client.Seq, drawableID, 0, wire.OpcodeGetImage)
	}
	pixels := draw.GetImage(d, draw.Rectangle{X: x, Y: y, Width: width, Height: height})

	e := NewReply(ctx.Client.ByteOrder, depth, ctx.Client.Seq)
	e.PutUint32(0) // visual
	e.PutPadN(20)
	e.PutBytes(pixels)
	e.PutPad()
	return FinishReply(ctx.Client.ByteOrder, e)
}

func handleCopyArea(ctx *Context) []byte {
	return nil
}
