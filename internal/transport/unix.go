//go:build linux

package transport

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const x11UnixDir = "/tmp/.X11-unix"

// ListenUnix binds the Unix domain socket for display number n, creating
// /tmp/.X11-unix if missing and removing any stale socket at that path
// first (spec.md §6). The socket is left world-writable, the X11 server
// convention, using x/sys/unix for the exact mode os.Chmod's portable
// wrapper doesn't guarantee bit-for-bit on every platform.
func ListenUnix(displayNum int) (net.Listener, error) {
	if err := os.MkdirAll(x11UnixDir, 0777); err != nil {
		return nil, fmt.Errorf("transport: creating %s: %w", x11UnixDir, err)
	}
	path := filepath.Join(x11UnixDir, fmt.Sprintf("X%d", displayNum))
	if err := removeStale(path); err != nil {
		return nil, err
	}
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("transport: listening on %s: %w", path, err)
	}
	if err := unix.Chmod(path, 0777); err != nil {
		ln.Close()
		return nil, fmt.Errorf("transport: chmod %s: %w", path, err)
	}
	return ln, nil
}

func removeStale(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("transport: stat %s: %w", path, err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("transport: removing stale socket %s: %w", path, err)
	}
	return nil
}
