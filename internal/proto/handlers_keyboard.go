package proto

import (
	"github.com/rotkonetworks/x11q/internal/input"
	"github.com/rotkonetworks/x11q/internal/wire"
)

type knownExtension struct {
	majorOpcode uint8
	firstEvent  uint8
	firstError  uint8
}

var knownExtensions = map[string]knownExtension{
	"RANDR":                   {wire.OpcodeRANDR, 89, 147},
	"XInputExtension":         {wire.OpcodeXInput, 66, 129},
	"XKEYBOARD":               {wire.OpcodeXKB, 85, 137},
	"Generic Event Extension": {wire.OpcodeGenericEvent, 35, 0},
}

// registerKeyboardHandlers wires QueryExtension and keyboard/modifier state
// (spec.md §4.D).
func (d *Dispatcher) registerKeyboardHandlers() {
	d.register(wire.OpcodeQueryExtension, handleQueryExtension)
	d.register(wire.OpcodeQueryKeymap, handleQueryKeymap)
	d.register(wire.OpcodeGetKeyboardMapping, handleGetKeyboardMapping)
	d.register(wire.OpcodeGetModifierMapping, handleGetModifierMapping)
}

func handleQueryExtension(ctx *Context) []byte {
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

	ext, present := knownExtensions[name]

	e := NewReply(ctx.Client.ByteOrder, 0, ctx.Client.Seq)
	if present {
		e.PutUint8(1)
	} else {
		e.PutUint8(0)
	}
	e.PutUint8(ext.majorOpcode)
	e.PutUint8(ext.firstEvent)
	e.PutUint8(ext.firstError)
	e.PutPadN(20)
	return FinishReply(ctx.Client.ByteOrder, e)
}

func handleQueryKeymap(ctx *Context) []byte {
	e := NewReply(ctx.Client.ByteOrder, 0, ctx.Client.Seq)
	e.PutBytes(make([]byte, 32)) // no keys down; this array is the whole fixed payload
	return FinishReply(ctx.Client.ByteOrder, e)
}

// usAsciiKeysyms maps keycodes 10..58 (digit row and the three QWERTY letter rows) to
// one keysym per keycode; unmapped keycodes encode NoSymbol.
var usAsciiKeysyms = map[uint8]uint32{
	10: '1', 11: '2', 12: '3', 13: '4', 14: '5', 15: '6', 16: '7', 17: '8', 18: '9', 19: '0',
	24: 'q', 25: 'w', 26: 'e', 27: 'r', 28: 't', 29: 'y', 30: 'u', 31: 'i', 32: 'o', 33: 'p',
	38: 'a', 39: 's', 40: 'd', 41: 'f', 42: 'g', 43: 'h', 44: 'j', 45: 'k', 46: 'l',
	52: 'z', 53: 'x', 54: 'c', 55: 'v', 56: 'b', 57: 'n', 58: 'm',
}

const keysymsPerKeycode = 4

func handleGetKeyboardMapping(ctx *Context) []byte {
	dec := wire.NewDecoder(ctx.Client.ByteOrder, ctx.Frame[4:])
	firstKeycode, err := dec.Uint8()
	if err != nil {
		return nil
	}
	count, err := dec.Uint8()
	if err != nil {
		return nil
	}

	e := NewReply(ctx.Client.ByteOrder, keysymsPerKeycode, ctx.Client.Seq)
	e.PutPadN(24)
	for kc := int(firstKeycode); kc < int(firstKeycode)+int(count); kc++ {
		sym := usAsciiKeysyms[uint8(kc)]
		e.PutUint32(sym)
		for i := 1; i < keysymsPerKeycode; i++ {
			e.PutUint32(0) // NoSymbol
		}
	}
	return FinishReply(ctx.Client.ByteOrder, e)
}

const keycodesPerModifier = 2

func handleGetModifierMapping(ctx *Context) []byte {
	e := NewReply(ctx.Client.ByteOrder, keycodesPerModifier, ctx.Client.Seq)
	e.PutPadN(24)
	for _, pair := range input.ModifierKeycodes {
		e.PutUint8(pair[0])
		e.PutUint8(pair[1])
	}
	return FinishReply(ctx.Client.ByteOrder, e)
}
