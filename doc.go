// Package x11q implements an X11 display-server core: a process that
// terminates the X Window System wire protocol (version 11) from one or
// more client applications, maintains an in-memory scene graph of windows
// and pixmaps, executes drawing requests against those surfaces, composites
// them into a single framebuffer, and delivers input events back to
// clients.
//
// # Architecture
//
// x11q is split into a handful of internal packages, each owning one
// protocol concern:
//
//   - internal/wire: the byte-level codec (Encoder/Decoder/Framer)
//   - internal/store: the resource model (windows, pixmaps, GCs, atoms)
//   - internal/proto: the dispatcher and per-opcode request handlers
//   - internal/draw: drawing primitives and the compositor
//   - internal/ext: the RANDR/XInput2/XKB/GenericEvent extension stubs
//   - internal/input: the event builder the presentation sink drives
//
// Server wires these together and drives one goroutine per accepted
// connection, sharing one Store and one Dispatcher across them under a
// single coarse lock.
//
// # Quick start
//
//	srv := x11q.NewServer(x11q.DefaultConfig(), log)
//	ln, _ := transport.ListenUnix(0)
//	transport.Serve(ln, func(conn net.Conn) { srv.Serve(conn) })
//
// # Presentation sink
//
// x11q does not open a window or a GPU device itself; a collaborator (the
// presentation sink) calls Server.Refresh on a timer to read the composited
// framebuffer, and Server.PushKey/PushButton/PushMotion to inject input.
package x11q
