package proto

import "github.com/rotkonetworks/x11q/internal/wire"

// registerAtomHandlers wires InternAtom and GetAtomName (spec.md §4.D).
func (d *Dispatcher) registerAtomHandlers() {
	d.register(wire.OpcodeInternAtom, handleInternAtom)
	d.register(wire.OpcodeGetAtomName, handleGetAtomName)
}

func handleInternAtom(ctx *Context) []byte {
	onlyIfExists := ctx.Frame[1] != 0
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	nameLen, err := dec.Uint16()
	if err != nil {
		return nil
	}
	if err := dec.Skip(2); err != nil {
		return nil
	}
	name, err := dec.String(int(nameLen))
	if err != nil {
		return nil
	}

	atom := ctx.Store.Atoms.Intern(name, onlyIfExists)

	e := NewReply(ctx.Client.ByteOrder, 0, ctx.Client.Seq)
	e.PutUint32(uint32(atom))
	e.PutPadN(20)
	return FinishReply(ctx.Client.ByteOrder, e)
}

func handleGetAtomName(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	atomID, err := dec.Uint32()
	if err != nil {
		return nil
	}
	name, ok := ctx.Store.Atoms.Name(wire.Atom(atomID))
	if !ok {
		return EncodeError(ctx.Client.ByteOrder, wire.ErrorAtom, ctx.Client.Seq, atomID, 0, wire.OpcodeGetAtomName)
	}

	e := NewReply(ctx.Client.ByteOrder, 0, ctx.Client.Seq)
	e.PutUint16(uint16(len(name)))
	e.PutPadN(22)
	e.PutString(name)
	return FinishReply(ctx.Client.ByteOrder, e)
}
