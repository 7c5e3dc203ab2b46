package cpmm

import "errors"

var (
	// ErrInvalidAmount is returned when the input amount is negative, NaN or
	// infinite.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrUnknownToken is returned when the input token matches neither side of
	// the pool.
	ErrUnknownToken = errors.New("unknown token")

	// ErrNoLiquidity is returned when either reserve is not a strictly positive
	// finite number.
	ErrNoLiquidity = errors.New("no liquidity")

	// ErrSameToken is returned when both sides of a pool carry the same symbol.
	ErrSameToken = errors.New("pool tokens must be distinct")

	// ErrEmptySymbol is returned when a pool side has no symbol.
	ErrEmptySymbol = errors.New("empty token symbol")

	// ErrOutOfRange is returned when a trade would push a reserve or a derived
	// price beyond the float64 range.
	ErrOutOfRange = errors.New("swap result out of range")

	// ErrInvalidFeeRate is returned when a fee rate falls outside [0, 1).
	ErrInvalidFeeRate = errors.New("fee rate must be in [0, 1)")
)
