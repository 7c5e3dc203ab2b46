package service

import "errors"

var (
	// ErrSameToken is returned when an estimate is asked to swap a token for itself.
	ErrSameToken = errors.New("src and dst are equal")

	// ErrPairMismatch is returned when the pool does not trade both src and dst.
	ErrPairMismatch = errors.New("pair does not match src/dst")

	// ErrEmptyReserves is returned when either side of the on-chain pair holds nothing.
	ErrEmptyReserves = errors.New("empty reserves")
)
