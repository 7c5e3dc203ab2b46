package cpmm

import (
	"math"
	"math/big"
)

// Fee is a swap fee in hundredths of a basis point (pips), the unit Uniswap
// fee tiers use: Fee(3000) is 0.3%.
type Fee uint32

// FeeDenominator is the number of pips in a whole.
const FeeDenominator = 1_000_000

// DefaultFee is DefaultFeeRate expressed in pips.
const DefaultFee Fee = 3000

var feeDen = big.NewInt(FeeDenominator)

// FeeFromRate converts a fractional fee rate into pips, rounding to the
// nearest pip.
func FeeFromRate(rate float64) (Fee, error) {
	if !validFeeRate(rate) {
		return 0, ErrInvalidFeeRate
	}
	return Fee(math.Round(rate * FeeDenominator)), nil
}

// Rate returns the fee as a fraction.
func (f Fee) Rate() float64 {
	return float64(f) / FeeDenominator
}

// GetAmountOut is the integer form of QuoteSwap used by on-chain pairs:
//
//	amountOut = amountIn*(D-fee)*reserveOut / (reserveIn*D + amountIn*(D-fee))
//
// with D = FeeDenominator and truncating division. At DefaultFee it matches
// UniswapV2Library.getAmountOut exactly. dst, t1 and t2 are caller-owned
// temporaries so repeated quotes do not allocate; the result is written to
// and returned in dst.
//
// A fee of FeeDenominator or more keeps the whole input, and a zero
// denominator (empty reserveIn and no input) has nothing to price; both
// yield 0.
func GetAmountOut(dst, t1, t2 *big.Int, amountIn, reserveIn, reserveOut *big.Int, fee Fee) *big.Int {
	if fee >= FeeDenominator {
		return dst.SetInt64(0)
	}
	// t1 = amountIn * (D - fee)
	t2.SetUint64(uint64(FeeDenominator - fee))
	t1.Mul(amountIn, t2)
	// t2 = reserveIn * D + t1  (denominator)
	t2.Mul(reserveIn, feeDen)
	t2.Add(t2, t1)
	if t2.Sign() == 0 {
		return dst.SetInt64(0)
	}
	// dst = t1 * reserveOut (numerator)
	dst.Mul(t1, reserveOut)
	return dst.Div(dst, t2)
}
