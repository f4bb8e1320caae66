package proto

import (
	"github.com/rs/zerolog"

	"github.com/rotkonetworks/x11q/internal/ext"
	"github.com/rotkonetworks/x11q/internal/input"
	"github.com/rotkonetworks/x11q/internal/store"
	"github.com/rotkonetworks/x11q/internal/wire"
)

// Context is everything a handler needs: the raw request frame, the
// client's protocol state, and the shared resource store. The dispatcher
// holds the store's lock for the duration of Dispatch, so handlers never
// need to lock anything themselves (spec.md §5: acquire, mutate, release,
// never across I/O — the I/O happens after Dispatch returns). Input is nil
// in tests that don't exercise event delivery; handlers must check before
// pushing.
type Context struct {
	Frame  []byte
	Client *Client
	Store  *store.Store
	Input  *input.Builder
	Log    zerolog.Logger
}

// Handler processes one request frame and returns reply bytes to append to
// the outbound stream (nil/empty when the request produces no reply).
type Handler func(*Context) []byte

// Dispatcher routes frames to per-opcode handlers, a tagged table keyed by
// opcode byte per spec.md §9's design note ("prefer a direct jump table or
// switch"). Extension opcodes (major >= 128 in this server's registration)
// are routed to a second-level table via internal/ext.
type Dispatcher struct {
	handlers map[uint8]Handler
	ext      *ext.Multiplexer
	Screen   ScreenConfig
}

// ScreenConfig is the fixed screen geometry this server advertises.
type ScreenConfig struct {
	Width, Height uint16
	RootID        wire.ResourceID
	ColormapID    wire.ResourceID
}

// NewDispatcher builds the opcode table and wires the extension
// multiplexer for RANDR/XInput2/XKB/GenericEvent (spec.md §4.F).
func NewDispatcher(screen ScreenConfig) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[uint8]Handler),
		ext:      ext.NewMultiplexer(screen.Width, screen.Height),
		Screen:   screen,
	}
	d.registerWindowHandlers()
	d.registerAtomHandlers()
	d.registerPropertyHandlers()
	d.registerInputHandlers()
	d.registerDrawHandlers()
	d.registerStubHandlers()
	d.registerKeyboardHandlers()
	return d
}

func (d *Dispatcher) register(opcode int, h Handler) {
	d.handlers[uint8(opcode)] = h
}

// HandleSetup builds the connection setup reply for a not-yet-connected
// client and marks it connected.
func (d *Dispatcher) HandleSetup(c *Client) []byte {
	reply := BuildSetupReply(SetupParams{
		Order:          c.ByteOrder,
		RootID:         d.Screen.RootID,
		ColormapID:     d.Screen.ColormapID,
		ScreenWidth:    d.Screen.Width,
		ScreenHeight:   d.Screen.Height,
		ResourceIDBase: c.ResourceIDBase,
		ResourceIDMask: c.ResourceIDMask,
	})
	c.Connected = true
	return reply
}

// Dispatch increments the client's sequence counter, looks up the handler
// for frame[0], and invokes it. Unknown opcodes (core or extension) are
// logged and silently absorbed, per spec.md §4.C.
func (d *Dispatcher) Dispatch(ctx *Context) []byte {
	ctx.Client.NextSeq()
	if len(ctx.Frame) == 0 {
		return nil
	}
	opcode := ctx.Frame[0]

	if ext.IsExtensionOpcode(opcode) {
		return d.ext.Dispatch(ext.Request{
			Frame: ctx.Frame,
			Order: ctx.Client.ByteOrder,
			Seq:   ctx.Client.Seq,
		})
	}

	h, ok := d.handlers[opcode]
	if !ok {
		ctx.Log.Debug().Uint8("opcode", opcode).Msg("unknown opcode absorbed")
		return nil
	}
	return h(ctx)
}
