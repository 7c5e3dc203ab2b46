package cpmm

import "math"

// Reserve is one side of a pool: a token symbol and the balance held for it.
type Reserve struct {
	Symbol  string
	Balance float64
}

// Pool is the liquidity state of a two-token constant-product pair. It is a
// plain value; swaps return an updated copy instead of modifying it.
type Pool struct {
	A Reserve
	B Reserve
}

// NewPool builds a pool from two (symbol, balance) pairs. Balances are not
// checked here: a pool with an empty side is representable, swapping against
// it fails with ErrNoLiquidity.
func NewPool(tokenA string, reserveA float64, tokenB string, reserveB float64) (Pool, error) {
	if tokenA == "" || tokenB == "" {
		return Pool{}, ErrEmptySymbol
	}
	if tokenA == tokenB {
		return Pool{}, ErrSameToken
	}

	return Pool{
		A: Reserve{Symbol: tokenA, Balance: reserveA},
		B: Reserve{Symbol: tokenB, Balance: reserveB},
	}, nil
}

// Reserves returns the balances keyed by symbol.
func (p Pool) Reserves() map[string]float64 {
	return map[string]float64{
		p.A.Symbol: p.A.Balance,
		p.B.Symbol: p.B.Balance,
	}
}

// SpotPrice returns the marginal price of one unit of base expressed in the
// other token of the pool, i.e. reserveOther / reserveBase. Reserves so far
// apart that the ratio leaves the float64 range report ErrOutOfRange.
func (p Pool) SpotPrice(base string) (float64, error) {
	in, out, err := p.sides(base)
	if err != nil {
		return 0, err
	}
	if !positive(in.Balance) || !positive(out.Balance) {
		return 0, ErrNoLiquidity
	}
	price := out.Balance / in.Balance
	if math.IsInf(price, 1) || price == 0 {
		return 0, ErrOutOfRange
	}
	return price, nil
}

// sides resolves which reserve is sold and which is bought when input is
// offered to the pool.
func (p Pool) sides(input string) (in, out Reserve, err error) {
	switch input {
	case p.A.Symbol:
		return p.A, p.B, nil
	case p.B.Symbol:
		return p.B, p.A, nil
	default:
		return Reserve{}, Reserve{}, ErrUnknownToken
	}
}

// with returns a copy of p where the reserve for symbol carries balance.
func (p Pool) with(symbol string, balance float64) Pool {
	if p.A.Symbol == symbol {
		p.A.Balance = balance
	} else {
		p.B.Balance = balance
	}
	return p
}
