package proto

import "github.com/rotkonetworks/x11q/internal/wire"

// registerPropertyHandlers wires ChangeProperty and GetProperty (spec.md
// §4.D): this core stores no property values, so GetProperty always
// answers empty — compliant clients tolerate it.
func (d *Dispatcher) registerPropertyHandlers() {
	d.register(wire.OpcodeChangeProperty, handleChangeProperty)
	d.register(wire.OpcodeGetProperty, handleGetProperty)
}

func handleChangeProperty(ctx *Context) []byte {
	return nil
}

func handleGetProperty(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	if err := dec.Skip(16); err != nil { // window, property, type, long-offset
		return nil
	}

	e := NewReply(ctx.Client.ByteOrder, 0, ctx.Client.Seq) // format: none
	e.PutUint32(uint32(wire.AtomNone))                     // type
	e.PutUint32(0)                                         // bytes-after
	e.PutUint32(0)                                         // value-len
	e.PutPadN(12)
	return FinishReply(ctx.Client.ByteOrder, e)
}
