package config

import "errors"

var (
	// ErrNilPointer is returned when Load is called with a nil target.
	ErrNilPointer = errors.New("config target must not be nil")

	// ErrParsingConfig wraps env tag parsing failures.
	ErrParsingConfig = errors.New("failed to parse config from environment")
)
