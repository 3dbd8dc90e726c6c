package transport

import "errors"

var (
	// ErrClosed is returned when connecting to or publishing on a transport
	// that has been shut down.
	ErrClosed = errors.New("transport is closed")
)
