package x11q

import "errors"

// Common errors.
var (
	// ErrShortSetup is what Server.Serve logs when a connection closes
	// before sending a complete connection setup frame.
	ErrShortSetup = errors.New("x11q: connection closed during setup")
)
