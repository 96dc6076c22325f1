package config

import "errors"

var (
	// ErrParsingConfig wraps failures to parse environment variables into
	// the destination struct, typically a missing required variable.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrConfigNotLoaded is returned when an earlier Load for the same type
	// failed, so no cached value exists for it.
	ErrConfigNotLoaded = errors.New("configuration has not been loaded")

	// ErrNilPointer is returned when Load receives a nil destination.
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
