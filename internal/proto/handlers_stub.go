package proto

import "github.com/rotkonetworks/x11q/internal/wire"

// registerStubHandlers wires the colormap and font opcodes spec.md §4.D
// requires to exist but not to do anything beyond returning plausible
// constant answers (white colors, empty font metrics).
func (d *Dispatcher) registerStubHandlers() {
	d.register(wire.OpcodeCreateColormap, handleCreateColormap)
	d.register(wire.OpcodeAllocColor, handleAllocColor)
	d.register(wire.OpcodeQueryColors, handleQueryColors)
	d.register(wire.OpcodeOpenFont, handleOpenFont)
	d.register(wire.OpcodeQueryFont, handleQueryFont)
	d.register(wire.OpcodeQueryBestSize, handleQueryBestSize)
}

func handleCreateColormap(ctx *Context) []byte {
	return nil
}

func handleAllocColor(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	if err := dec.Skip(4); err != nil { // colormap
		return nil
	}
	red, err1 := dec.Uint16()
	green, err2 := dec.Uint16()
	blue, err3 := dec.Uint16()
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}

	e := NewReply(ctx.Client.ByteOrder, 0, ctx.Client.Seq)
	pixel := uint32(red)>>8<<16 | uint32(green)>>8<<8 | uint32(blue)>>8
	e.PutUint32(pixel)
	e.PutUint16(red)
	e.PutUint16(green)
	e.PutUint16(blue)
	e.PutPadN(2)
	e.PutPadN(12)
	return FinishReply(ctx.Client.ByteOrder, e)
}

func handleQueryColors(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	if err := dec.Skip(4); err != nil { // colormap
		return nil
	}
	count := dec.Remaining() / 4

	e := NewReply(ctx.Client.ByteOrder, 0, ctx.Client.Seq)
	e.PutUint16(uint16(count))
	e.PutPadN(22)
	for i := 0; i < count; i++ {
		e.PutUint16(0xFFFF)
		e.PutUint16(0xFFFF)
		e.PutUint16(0xFFFF)
		e.PutPadN(2)
	}
	return FinishReply(ctx.Client.ByteOrder, e)
}

func handleOpenFont(ctx *Context) []byte {
	return nil
}

func handleQueryFont(ctx *Context) []byte {
	e := NewReply(ctx.Client.ByteOrder, 0, ctx.Client.Seq)
	e.PutBytes(make([]byte, 12)) // min-bounds CHARINFO
	e.PutPadN(4)
	e.PutBytes(make([]byte, 12)) // max-bounds CHARINFO
	e.PutPadN(4)
	e.PutUint16(0) // min-char-or-byte2
	e.PutUint16(0) // max-char-or-byte2
	e.PutUint16(0) // default-char
	e.PutUint16(0) // num-font-props
	e.PutUint8(0)  // draw-direction
	e.PutUint8(0)  // min-byte1
	e.PutUint8(0)  // max-byte1
	e.PutUint8(1)  // all-chars-exist
	e.PutInt16(0)  // font-ascent
	e.PutInt16(0)  // font-descent
	e.PutUint32(0) // num-charinfos
	return FinishReply(ctx.Client.ByteOrder, e)
}

func handleQueryBestSize(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	if err := dec.Skip(4); err != nil { // drawable
		return nil
	}
	width, err1 := dec.Uint16()
	height, err2 := dec.Uint16()
	if err1 != nil || err2 != nil {
		width, height = 0, 0
	}

	e := NewReply(ctx.Client.ByteOrder, 0, ctx.Client.Seq)
	e.PutUint16(width)
	e.PutUint16(height)
	e.PutPadN(20)
	return FinishReply(ctx.Client.ByteOrder, e)
}
