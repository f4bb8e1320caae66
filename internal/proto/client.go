// Package proto implements the dispatcher and request handlers of
// spec.md §4.C and §4.D: per-connection protocol state, the connection
// setup handshake, the opcode jump table, and the ~40 core request
// handlers that mutate internal/store and call into internal/draw.
package proto

import "github.com/rotkonetworks/x11q/internal/wire"

// ResourceIDMask is the per-client resource-id mask advertised in setup
// (spec.md §3, §6): every id a client allocates must satisfy
// id &^ mask == base. The server does not police this, per X11 convention.
const ResourceIDMask wire.ResourceID = 0x001fffff

// ResourceIDSpan is the size of the resource-id range handed to each
// client: the Nth client connected (counting from 1) gets
// base = N * ResourceIDSpan, so the first client's base is 0x00200000.
const ResourceIDSpan wire.ResourceID = 0x00200000

// Client holds per-connection protocol state: the byte order this client
// announced at setup, its sequence counter, and its resource-id range.
// Grounded on the teacher's Connection struct fields (byteOrder, nextSeq,
// resourceIDBase, resourceIDMask) — server-assigns-to-client instead of
// client-reads-from-server. A single goroutine drives one connection's
// read-dispatch-write loop (spec.md §5's cooperative-task model) and is the
// only writer of Seq, which it increments inside Dispatch while holding the
// store lock; the server's input pushes read Seq under that same lock, so
// the sequence counter needs no atomic.
type Client struct {
	ByteOrder      wire.ByteOrder
	Seq            uint16
	ResourceIDBase wire.ResourceID
	ResourceIDMask wire.ResourceID
	Connected      bool
	Focus          wire.ResourceID
}

// NewClient returns a Client with its resource-id range assigned, the Nth
// client connected since server startup getting the Nth span.
func NewClient(index int) *Client {
	return &Client{
		ResourceIDBase: wire.ResourceID(index) * ResourceIDSpan,
		ResourceIDMask: ResourceIDMask,
	}
}

// NextSeq increments and returns the sequence counter. Called exactly once
// per request received, per spec.md §4.C, regardless of whether a reply is
// produced.
func (c *Client) NextSeq() uint16 {
	c.Seq++
	return c.Seq
}
