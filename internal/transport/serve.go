// Package transport implements the listener side of spec.md §6: a Unix
// domain socket under /tmp/.X11-unix and a TCP listener on 6000+N, plus the
// accept loop that hands each connection to a handler goroutine.
package transport

import "net"

// Serve accepts connections from ln until Accept errs (typically because ln
// was closed for shutdown), handing each accepted connection to handler on
// its own goroutine. Grounded on other_examples' rfb.go Serve/Accept loop.
func Serve(ln net.Listener, handler func(net.Conn)) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go handler(conn)
	}
}
