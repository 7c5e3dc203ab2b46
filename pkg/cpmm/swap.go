// Package cpmm implements constant-product market maker swap math.
package cpmm

import "math"

// DefaultFeeRate is the 0.3% fee charged on the input side of a swap.
const DefaultFeeRate = 0.003

// SwapResult describes a computed trade and the pool state after it.
type SwapResult struct {
	InputToken  string
	OutputToken string
	AmountIn    float64
	AmountOut   float64
	// Fee is the part of AmountIn retained by the pool instead of priced.
	Fee         float64
	PriceImpact float64
	// SpotPriceBefore and SpotPriceAfter quote one unit of the input token in
	// the output token around the trade.
	SpotPriceBefore float64
	SpotPriceAfter  float64
	Pool            Pool
}

// QuoteSwap returns the amount of the output token released when amountIn of
// the input token is sold into a pool holding reserveIn and reserveOut.
//
// The fee-adjusted input amountIn*(1-feeRate) is priced against the
// invariant reserveIn*reserveOut:
//
//	amountOut = reserveOut - reserveIn*reserveOut / (reserveIn + amountIn*(1-feeRate))
//
// The result is always in [0, reserveOut).
func QuoteSwap(reserveIn, reserveOut, amountIn, feeRate float64) (float64, error) {
	if !validFeeRate(feeRate) {
		return 0, ErrInvalidFeeRate
	}
	if !positive(reserveIn) || !positive(reserveOut) {
		return 0, ErrNoLiquidity
	}
	if amountIn < 0 || math.IsNaN(amountIn) || math.IsInf(amountIn, 0) {
		return 0, ErrInvalidAmount
	}
	if amountIn == 0 {
		return 0, nil
	}

	effectiveIn := amountIn * (1 - feeRate)
	k := reserveIn * reserveOut
	denom := reserveIn + effectiveIn

	var amountOut float64
	if finiteNormal(k) && !math.IsInf(denom, 1) {
		amountOut = reserveOut - k/denom
	} else {
		// k or the denominator left the float range; reserveOut*effectiveIn/denom
		// rearranged so no intermediate over- or underflows
		amountOut = reserveOut / (1 + reserveIn/effectiveIn)
	}

	// rounding can push a near-zero trade below 0 or a huge one onto reserveOut
	switch {
	case amountOut < 0:
		return 0, nil
	case amountOut >= reserveOut:
		return math.Nextafter(reserveOut, 0), nil
	}
	return amountOut, nil
}

// PriceImpact returns how much worse the execution price of a trade is than
// the pool's pre-trade marginal price, as a fraction. A zero-input trade has
// no impact.
func PriceImpact(reserveIn, reserveOut, amountIn, amountOut float64) float64 {
	if amountIn <= 0 || reserveIn <= 0 || reserveOut <= 0 {
		return 0
	}
	spot := reserveOut / reserveIn
	return 1 - (amountOut/amountIn)/spot
}

// Engine applies swaps to pools at a fixed fee rate. The zero value charges
// no fee; use NewEngine for a validated rate.
type Engine struct {
	feeRate float64
}

// NewEngine returns an Engine charging feeRate on every swap input.
func NewEngine(feeRate float64) (Engine, error) {
	if !validFeeRate(feeRate) {
		return Engine{}, ErrInvalidFeeRate
	}
	return Engine{feeRate: feeRate}, nil
}

// FeeRate returns the fee fraction charged by the engine.
func (e Engine) FeeRate() float64 {
	return e.feeRate
}

// Quote is QuoteSwap at the engine's fee rate.
func (e Engine) Quote(reserveIn, reserveOut, amountIn float64) (float64, error) {
	return QuoteSwap(reserveIn, reserveOut, amountIn, e.feeRate)
}

// ApplySwap sells amountIn of inputToken into pool. The sold side is credited
// with the full nominal amountIn, so the fee stays in the pool, and the bought
// side is debited by the output amount. pool itself is left untouched; the
// post-trade state is returned in the result.
func (e Engine) ApplySwap(pool Pool, inputToken string, amountIn float64) (SwapResult, error) {
	in, out, err := pool.sides(inputToken)
	if err != nil {
		return SwapResult{}, err
	}

	amountOut, err := e.Quote(in.Balance, out.Balance, amountIn)
	if err != nil {
		return SwapResult{}, err
	}

	newIn := in.Balance + amountIn
	if math.IsInf(newIn, 1) {
		return SwapResult{}, ErrOutOfRange
	}
	updated := pool.
		with(in.Symbol, newIn).
		with(out.Symbol, out.Balance-amountOut)

	spotBefore, err := pool.SpotPrice(in.Symbol)
	if err != nil {
		return SwapResult{}, err
	}
	spotAfter, err := updated.SpotPrice(in.Symbol)
	if err != nil {
		return SwapResult{}, err
	}

	res := SwapResult{
		InputToken:      in.Symbol,
		OutputToken:     out.Symbol,
		AmountIn:        amountIn,
		AmountOut:       amountOut,
		Fee:             amountIn * e.feeRate,
		PriceImpact:     PriceImpact(in.Balance, out.Balance, amountIn, amountOut),
		SpotPriceBefore: spotBefore,
		SpotPriceAfter:  spotAfter,
		Pool:            updated,
	}
	if !finite(res.PriceImpact, res.SpotPriceBefore, res.SpotPriceAfter) {
		return SwapResult{}, ErrOutOfRange
	}
	return res, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// finiteNormal reports whether v is a positive finite float that has not
// underflowed into the subnormal range.
func finiteNormal(v float64) bool {
	return v >= 0x1p-1022 && !math.IsInf(v, 1)
}

func validFeeRate(r float64) bool {
	return r >= 0 && r < 1
}
