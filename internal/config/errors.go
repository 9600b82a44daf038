package config

import "errors"

// Sentinel errors for configuration failure modes.
// Callers should use errors.Is() to check for these.
var (
	// ErrInvalidConfig indicates the configuration is syntactically
	// or semantically invalid (bad YAML, out of range values, etc.).
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrInvalidTarget indicates a target could not be turned into a
	// URL with a host.
	ErrInvalidTarget = errors.New("config: invalid target")
)
