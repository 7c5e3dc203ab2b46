package config

import "errors"

// ErrMissingAddr indicates that ADDR was explicitly set to an empty value.
var ErrMissingAddr = errors.New("ADDR must not be empty")

// ErrInvalidFeeRate indicates that SWAP_FEE_RATE is outside [0, 1).
var ErrInvalidFeeRate = errors.New("SWAP_FEE_RATE must be in [0, 1)")

// ErrInvalidShutdownTimeout indicates a non-positive SHUTDOWN_TIMEOUT.
var ErrInvalidShutdownTimeout = errors.New("SHUTDOWN_TIMEOUT must be positive")
