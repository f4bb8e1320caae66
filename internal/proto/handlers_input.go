package proto

import "github.com/rotkonetworks/x11q/internal/wire"

// registerInputHandlers wires pointer and focus queries (spec.md §4.D).
func (d *Dispatcher) registerInputHandlers() {
	d.register(wire.OpcodeQueryPointer, handleQueryPointer)
	d.register(wire.OpcodeSetInputFocus, handleSetInputFocus)
	d.register(wire.OpcodeGetInputFocus, handleGetInputFocus)
}

func handleQueryPointer(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	if _, err := dec.Uint32(); err != nil { // window
		return nil
	}

	e := NewReply(ctx.Client.ByteOrder, 1, ctx.Client.Seq) // same-screen
	e.PutUint32(uint32(ctx.Store.RootID))
	e.PutUint32(0) // child
	e.PutInt16(ctx.Store.PointerX)
	e.PutInt16(ctx.Store.PointerY)
	e.PutInt16(ctx.Store.PointerX)
	e.PutInt16(ctx.Store.PointerY)
	e.PutUint16(0) // button/modifier mask
	e.PutPadN(6)
	return FinishReply(ctx.Client.ByteOrder, e)
}

func handleSetInputFocus(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	focus, err := dec.Uint32()
	if err != nil {
		return nil
	}
	ctx.Store.Focus = wire.ResourceID(focus)
	return nil
}

func handleGetInputFocus(ctx *Context) []byte {
	e := NewReply(ctx.Client.ByteOrder, 0, ctx.Client.Seq)
	e.PutUint32(uint32(ctx.Store.Focus))
	e.PutPadN(20)
	return FinishReply(ctx.Client.ByteOrder, e)
}
