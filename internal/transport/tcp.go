package transport

import (
	"fmt"
	"net"
)

// ListenTCP binds a TCP listener for display number n on addr (empty binds
// all interfaces), port 6000+n per spec.md §6.
func ListenTCP(addr string, displayNum int) (net.Listener, error) {
	address := fmt.Sprintf("%s:%d", addr, 6000+displayNum)
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("transport: listening on %s: %w", address, err)
	}
	return ln, nil
}
