package cpmm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEngine(t *testing.T, feeRate float64) Engine {
	t.Helper()
	e, err := NewEngine(feeRate)
	require.NoError(t, err)
	return e
}

func product(p Pool) float64 {
	return p.A.Balance * p.B.Balance
}

func mustPool(t *testing.T, tokenA string, reserveA float64, tokenB string, reserveB float64) Pool {
	t.Helper()
	p, err := NewPool(tokenA, reserveA, tokenB, reserveB)
	require.NoError(t, err)
	return p
}

func TestQuoteSwap_Reference(t *testing.T) {
	t.Parallel()

	got, err := QuoteSwap(1000, 1000, 100, DefaultFeeRate)
	require.NoError(t, err)

	effectiveIn := 100 * (1 - DefaultFeeRate)
	want := 1000 - 1000*1000/(1000+effectiveIn)

	assert.Equal(t, want, got)
	assert.InDelta(t, 90.66, got, 0.01)
}

func TestQuoteSwap_Bounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                            string
		reserveIn, reserveOut, amountIn float64
	}{
		{"balanced", 1000, 1000, 100},
		{"dust", 1000, 1000, 1e-9},
		{"skewed_in", 1e9, 3, 12.5},
		{"skewed_out", 3, 1e9, 12.5},
		{"whale", 10, 10, 1e12},
		{"drain_attempt", 1, 1000, 1e20},
		{"zero", 500, 700, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := QuoteSwap(tc.reserveIn, tc.reserveOut, tc.amountIn, DefaultFeeRate)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, out, 0.0)
			assert.Less(t, out, tc.reserveOut)
		})
	}
}

func TestQuoteSwap_Monotonic(t *testing.T) {
	t.Parallel()

	prev := -1.0
	for _, in := range []float64{0, 0.5, 1, 10, 100, 1_000, 10_000, 1e6} {
		out, err := QuoteSwap(2_500, 4_000, in, DefaultFeeRate)
		require.NoError(t, err)
		assert.Greater(t, out, prev, "amountIn %v", in)
		prev = out
	}
}

func TestQuoteSwap_FeeReducesOutput(t *testing.T) {
	t.Parallel()

	noFee, err := QuoteSwap(1000, 1000, 100, 0)
	require.NoError(t, err)
	withFee, err := QuoteSwap(1000, 1000, 100, DefaultFeeRate)
	require.NoError(t, err)

	assert.Less(t, withFee, noFee)
}

func TestQuoteSwap_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                                     string
		reserveIn, reserveOut, amountIn, feeRate float64
		want                                     error
	}{
		{"zero_reserve_in", 0, 1000, 10, DefaultFeeRate, ErrNoLiquidity},
		{"zero_reserve_out", 1000, 0, 10, DefaultFeeRate, ErrNoLiquidity},
		{"negative_reserve", -5, 1000, 10, DefaultFeeRate, ErrNoLiquidity},
		{"nan_reserve", math.NaN(), 1000, 10, DefaultFeeRate, ErrNoLiquidity},
		{"inf_reserve", math.Inf(1), 1000, 10, DefaultFeeRate, ErrNoLiquidity},
		{"negative_amount", 1000, 1000, -1, DefaultFeeRate, ErrInvalidAmount},
		{"nan_amount", 1000, 1000, math.NaN(), DefaultFeeRate, ErrInvalidAmount},
		{"inf_amount", 1000, 1000, math.Inf(1), DefaultFeeRate, ErrInvalidAmount},
		{"fee_one", 1000, 1000, 10, 1, ErrInvalidFeeRate},
		{"fee_negative", 1000, 1000, 10, -0.01, ErrInvalidFeeRate},
		{"fee_nan", 1000, 1000, 10, math.NaN(), ErrInvalidFeeRate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := QuoteSwap(tc.reserveIn, tc.reserveOut, tc.amountIn, tc.feeRate)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestApplySwap_UpdatesReserves(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, DefaultFeeRate)
	pool := mustPool(t, "A", 1000, "B", 1000)

	res, err := engine.ApplySwap(pool, "A", 100)
	require.NoError(t, err)

	want, err := QuoteSwap(1000, 1000, 100, DefaultFeeRate)
	require.NoError(t, err)

	assert.Equal(t, want, res.AmountOut)
	assert.Equal(t, "A", res.InputToken)
	assert.Equal(t, "B", res.OutputToken)
	assert.Equal(t, 1100.0, res.Pool.A.Balance)
	assert.Equal(t, 1000-want, res.Pool.B.Balance)
	assert.InDelta(t, 0.3, res.Fee, 1e-12)

	// the caller's pool is unchanged
	assert.Equal(t, 1000.0, pool.A.Balance)
	assert.Equal(t, 1000.0, pool.B.Balance)
}

func TestApplySwap_SellsSideB(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, DefaultFeeRate)
	pool := mustPool(t, "ETH", 50, "USDC", 150_000)

	res, err := engine.ApplySwap(pool, "USDC", 3_000)
	require.NoError(t, err)

	want, err := QuoteSwap(150_000, 50, 3_000, DefaultFeeRate)
	require.NoError(t, err)

	assert.Equal(t, want, res.AmountOut)
	assert.Equal(t, "ETH", res.OutputToken)
	assert.Equal(t, 50-want, res.Pool.A.Balance)
	assert.Equal(t, 153_000.0, res.Pool.B.Balance)
	assert.Equal(t, "ETH", res.Pool.A.Symbol)
	assert.Equal(t, "USDC", res.Pool.B.Symbol)
}

func TestApplySwap_FeeGrowsInvariant(t *testing.T) {
	t.Parallel()

	pool := mustPool(t, "A", 1_234.5, "B", 9_876.5)
	for _, fee := range []float64{0.0005, DefaultFeeRate, 0.01} {
		engine := mustEngine(t, fee)
		for _, in := range []float64{1, 50, 2_000} {
			res, err := engine.ApplySwap(pool, "A", in)
			require.NoError(t, err)
			assert.Greater(t, product(res.Pool), product(pool), "fee %v amountIn %v", fee, in)
		}
	}
}

func TestApplySwap_ZeroInput(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, DefaultFeeRate)
	pool := mustPool(t, "A", 333.3, "B", 777.7)

	res, err := engine.ApplySwap(pool, "B", 0)
	require.NoError(t, err)

	assert.Zero(t, res.AmountOut)
	assert.Zero(t, res.PriceImpact)
	assert.Equal(t, pool, res.Pool)
}

func TestApplySwap_Errors(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, DefaultFeeRate)

	_, err := engine.ApplySwap(mustPool(t, "A", 1000, "B", 1000), "C", 10)
	assert.ErrorIs(t, err, ErrUnknownToken)

	_, err = engine.ApplySwap(mustPool(t, "A", 0, "B", 1000), "A", 10)
	assert.ErrorIs(t, err, ErrNoLiquidity)

	_, err = engine.ApplySwap(mustPool(t, "A", 1000, "B", 0), "A", 10)
	assert.ErrorIs(t, err, ErrNoLiquidity)

	_, err = engine.ApplySwap(mustPool(t, "A", 1000, "B", 1000), "A", -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestApplySwap_RoundTripLosesValue(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, DefaultFeeRate)
	pool := mustPool(t, "A", 1000, "B", 1000)

	first, err := engine.ApplySwap(pool, "A", 100)
	require.NoError(t, err)

	back, err := engine.ApplySwap(first.Pool, "B", first.AmountOut)
	require.NoError(t, err)

	assert.Equal(t, "A", back.OutputToken)
	assert.Less(t, back.AmountOut, 100.0)
}

func TestApplySwap_ZeroFeeRoundTripIsLossless(t *testing.T) {
	t.Parallel()

	var engine Engine
	pool := mustPool(t, "A", 1000, "B", 1000)

	first, err := engine.ApplySwap(pool, "A", 100)
	require.NoError(t, err)
	back, err := engine.ApplySwap(first.Pool, "B", first.AmountOut)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, back.AmountOut, 1e-9)
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(0.01)
	require.NoError(t, err)
	assert.Equal(t, 0.01, e.FeeRate())

	_, err = NewEngine(1.5)
	assert.ErrorIs(t, err, ErrInvalidFeeRate)
}

func TestPriceImpact(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, DefaultFeeRate)
	pool := mustPool(t, "A", 1000, "B", 1000)

	small, err := engine.ApplySwap(pool, "A", 1)
	require.NoError(t, err)
	large, err := engine.ApplySwap(pool, "A", 500)
	require.NoError(t, err)

	assert.Greater(t, small.PriceImpact, 0.0)
	assert.Greater(t, large.PriceImpact, small.PriceImpact)
	assert.Less(t, large.PriceImpact, 1.0)
	assert.Zero(t, PriceImpact(1000, 1000, 0, 0))
}

func TestQuoteSwap_ExtremeMagnitudes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                            string
		reserveIn, reserveOut, amountIn float64
		want                            float64
	}{
		// k = 1e400 overflows; out ≈ effectiveIn while amountIn << reserves
		{"huge_reserves_unit_input", 1e200, 1e200, 1, 0.997},
		{"huge_reserves_large_input", 1e200, 1e200, 1e190, 9.97e189},
		// denominator overflows
		{"huge_input", 1e308, 1000, 1e308, 1000 / (1 + 1e308/(1e308*0.997))},
		// k = 1e-400 underflows to 0
		{"tiny_reserves", 1e-200, 1e-200, 1e-200, 1e-200 * 0.997 / 1.997},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := QuoteSwap(tc.reserveIn, tc.reserveOut, tc.amountIn, DefaultFeeRate)
			require.NoError(t, err)
			assert.False(t, math.IsNaN(out))
			assert.Greater(t, out, 0.0)
			assert.Less(t, out, tc.reserveOut)
			assert.InEpsilon(t, tc.want, out, 1e-9)
		})
	}
}

func TestQuoteSwap_MonotonicAcrossOverflow(t *testing.T) {
	t.Parallel()

	prev := 0.0
	// past ~1e216 the output rounds onto the reserveOut clamp
	for _, in := range []float64{1, 10, 1e100, 1e190, 1e199, 1e210} {
		out, err := QuoteSwap(1e200, 1e200, in, DefaultFeeRate)
		require.NoError(t, err)
		assert.Greater(t, out, prev, "amountIn %v", in)
		assert.Less(t, out, 1e200, "amountIn %v", in)
		prev = out
	}
}

func TestApplySwap_ReserveOverflow(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, DefaultFeeRate)

	_, err := engine.ApplySwap(mustPool(t, "A", 1e308, "B", 1000), "A", 1e308)
	assert.ErrorIs(t, err, ErrOutOfRange)

	res, err := engine.ApplySwap(mustPool(t, "A", 1e200, "B", 1e200), "A", 1e190)
	require.NoError(t, err)
	assert.False(t, math.IsInf(res.Pool.A.Balance, 0))
	assert.Greater(t, res.Pool.B.Balance, 0.0)
	assert.Less(t, res.AmountOut, 1e200)
}

func TestApplySwap_SpotPrices(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, DefaultFeeRate)
	pool := mustPool(t, "X", 1_000, "Y", 4_000)

	res, err := engine.ApplySwap(pool, "X", 100)
	require.NoError(t, err)

	assert.Equal(t, 4.0, res.SpotPriceBefore)
	assert.Equal(t, res.Pool.B.Balance/res.Pool.A.Balance, res.SpotPriceAfter)
	// selling X makes X cheaper
	assert.Less(t, res.SpotPriceAfter, res.SpotPriceBefore)

	zero, err := engine.ApplySwap(pool, "Y", 0)
	require.NoError(t, err)
	assert.Equal(t, 0.25, zero.SpotPriceBefore)
	assert.Equal(t, zero.SpotPriceBefore, zero.SpotPriceAfter)
}
