package service

import (
	"context"
	"log/slog"

	"github.com/nmbroome/prediction-market-admin/pkg/cpmm"
)

// SwapRequest is a trader's intent against a pool described inline: the two
// pool tokens with their current balances, the token offered and how much of
// it.
type SwapRequest struct {
	TokenA     string
	ReserveA   float64
	TokenB     string
	ReserveB   float64
	InputToken string
	AmountIn   float64
}

// SwapService computes swaps against caller-supplied pools. It holds no pool
// state, so one instance can serve concurrent requests.
type SwapService struct {
	BaseService
	engine cpmm.Engine
}

// NewSwapService constructs a SwapService pricing swaps with engine.
func NewSwapService(logger *slog.Logger, engine cpmm.Engine) *SwapService {
	return &SwapService{
		BaseService: BaseService{logger: logger},
		engine:      engine,
	}
}

// FeeRate returns the fee fraction applied to swap inputs.
func (s *SwapService) FeeRate() float64 {
	return s.engine.FeeRate()
}

// Swap builds the pool described by req and applies the trade to it. Errors
// are the cpmm sentinels, returned as-is for the caller to classify.
func (s *SwapService) Swap(ctx context.Context, req SwapRequest) (cpmm.SwapResult, error) {
	pool, err := cpmm.NewPool(req.TokenA, req.ReserveA, req.TokenB, req.ReserveB)
	if err != nil {
		return cpmm.SwapResult{}, err
	}

	res, err := s.engine.ApplySwap(pool, req.InputToken, req.AmountIn)
	if err != nil {
		s.logger.DebugContext(ctx, "swap rejected", "input", req.InputToken, "in", req.AmountIn, "err", err)
		return cpmm.SwapResult{}, err
	}

	s.logger.DebugContext(ctx, "swap computed",
		"in_token", res.InputToken,
		"out_token", res.OutputToken,
		"in", res.AmountIn,
		"out", res.AmountOut,
		"fee", res.Fee,
		"price_impact", res.PriceImpact,
		"spot_before", res.SpotPriceBefore,
		"spot_after", res.SpotPriceAfter,
	)
	return res, nil
}
