package x11q

import (
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rotkonetworks/x11q/internal/draw"
	"github.com/rotkonetworks/x11q/internal/input"
	"github.com/rotkonetworks/x11q/internal/proto"
	"github.com/rotkonetworks/x11q/internal/store"
	"github.com/rotkonetworks/x11q/internal/wire"
)

const (
	rootID     wire.ResourceID = 1
	colormapID wire.ResourceID = 2
)

// Server is one display-server core instance: a resource store and a
// dispatcher shared across every active connection, under the single
// coarse lock spec.md §5 requires. One Server serves one screen.
type Server struct {
	config     Config
	store      *store.Store
	dispatcher *proto.Dispatcher
	compositor *draw.Compositor
	log        zerolog.Logger

	mu        sync.Mutex // guards clients and nextIndex, distinct from store's lock
	clients   map[*connection]struct{}
	nextIndex int
}

// NewServer builds a Server for the given screen configuration.
func NewServer(cfg Config, log zerolog.Logger) *Server {
	return &Server{
		config: cfg,
		store:  store.New(rootID, cfg.Width, cfg.Height),
		dispatcher: proto.NewDispatcher(proto.ScreenConfig{
			Width:      cfg.Width,
			Height:     cfg.Height,
			RootID:     rootID,
			ColormapID: colormapID,
		}),
		compositor: draw.NewCompositor(cfg.Width, cfg.Height),
		log:        log,
		clients:    make(map[*connection]struct{}),
	}
}

// connection holds the per-connection state a Server tracks: the
// dispatcher's protocol state for this client and its outbound event
// queue.
type connection struct {
	client *proto.Client
	input  *input.Builder
}

// Serve drives one accepted connection to completion: the setup handshake,
// then the request/reply loop, until the read side errors or the peer
// closes. Blocks; callers run it in its own goroutine per connection
// (e.g. as the handler passed to internal/transport.Serve).
func (s *Server) Serve(conn io.ReadWriteCloser) {
	defer conn.Close()

	framer := wire.NewFramer()
	readBuf := make([]byte, 4096)
	client := proto.NewClient(s.allocIndex())
	var c *connection

	for {
		frame, ok, err := framer.Next()
		if err != nil {
			s.log.Debug().Err(err).Msg("framing error, closing connection")
			return
		}
		if !ok {
			n, err := conn.Read(readBuf)
			if err != nil {
				if !client.Connected {
					s.log.Debug().Err(ErrShortSetup).Send()
				}
				return
			}
			framer.Feed(readBuf[:n])
			continue
		}

		if !client.Connected {
			if len(frame) < 1 {
				s.log.Debug().Err(ErrShortSetup).Send()
				return
			}
			client.ByteOrder = wire.ByteOrder(frame[0])
			reply := s.dispatcher.HandleSetup(client)
			if _, err := conn.Write(reply); err != nil {
				return
			}
			framer.SetupDone(client.ByteOrder)

			c = &connection{client: client, input: input.NewBuilder(client.ByteOrder, rootID)}
			s.addClient(c)
			defer s.removeClient(c)
			continue
		}

		ctx := &proto.Context{Frame: frame, Client: client, Store: s.store, Input: c.input, Log: s.log}
		s.store.Lock()
		reply := s.dispatcher.Dispatch(ctx)
		s.store.Unlock()

		if len(reply) > 0 {
			if _, err := conn.Write(reply); err != nil {
				return
			}
		}
		for _, ev := range c.input.Queue.Drain() {
			if _, err := conn.Write(ev); err != nil {
				return
			}
		}
	}
}

func (s *Server) allocIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextIndex++
	return s.nextIndex
}

func (s *Server) addClient(c *connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = struct{}{}
}

func (s *Server) removeClient(c *connection) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()

	s.store.Lock()
	s.store.ReapClient(c.client.ResourceIDBase, c.client.ResourceIDMask)
	s.store.Unlock()
}

// Refresh runs one compositor pass under the shared lock and returns a copy
// of the resulting framebuffer, for the presentation sink to copy to its
// surface (spec.md §5's ~60 Hz refresh tick).
func (s *Server) Refresh() []uint32 {
	s.store.Lock()
	s.compositor.Composite(s.store)
	s.store.ClearDirty()
	fb := s.compositor.Framebuffer()
	out := make([]uint32, len(fb))
	copy(out, fb)
	s.store.Unlock()
	return out
}

// PushKey delivers a key event to every active connection, targeting the
// server's current input focus (spec.md §4.G). The presentation sink calls
// this.
func (s *Server) PushKey(code uint8, pressed bool, t wire.Timestamp) {
	s.forEachClient(func(c *connection, focus wire.ResourceID) {
		c.input.PushKey(c.client.Seq, t, focus, code, pressed)
	})
}

// PushButton delivers a button event at (x, y) to every active connection.
func (s *Server) PushButton(btn uint8, pressed bool, x, y int16, t wire.Timestamp) {
	s.forEachClient(func(c *connection, focus wire.ResourceID) {
		c.input.PushButton(c.client.Seq, t, focus, btn, pressed, x, y)
	})
}

// PushMotion delivers a pointer-motion event to every active connection.
func (s *Server) PushMotion(x, y int16, t wire.Timestamp) {
	s.forEachClient(func(c *connection, focus wire.ResourceID) {
		c.input.PushMotion(c.client.Seq, t, focus, x, y)
	})
}

func (s *Server) forEachClient(push func(c *connection, focus wire.ResourceID)) {
	// the store lock also covers each client's Seq, which Dispatch writes
	// while holding it.
	s.store.Lock()
	defer s.store.Unlock()
	focus := s.store.Focus

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		push(c, focus)
	}
}
