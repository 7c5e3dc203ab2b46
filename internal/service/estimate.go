package service

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/nmbroome/prediction-market-admin/internal/eth"
	"github.com/nmbroome/prediction-market-admin/pkg/cpmm"
)

// EstimateService quotes swaps against live Uniswap V2 pairs by reading pair
// storage directly and applying the exact integer formula.
type EstimateService struct {
	BaseService
	chain eth.StorageReader
	fee   cpmm.Fee
}

// NewEstimateService constructs an EstimateService reading through chain and
// charging fee.
func NewEstimateService(logger *slog.Logger, chain eth.StorageReader, fee cpmm.Fee) *EstimateService {
	return &EstimateService{
		BaseService: BaseService{logger: logger},
		chain:       chain,
		fee:         fee,
	}
}

// Estimate computes the expected output amount for swapping amountIn of src to
// dst in the provided pool at the latest block.
func (e *EstimateService) Estimate(ctx context.Context, pool, src, dst common.Address, amountIn *big.Int) (*big.Int, error) {
	e.logger.DebugContext(ctx, "estimating swap", "pool", pool.Hex(), "src", src.Hex(), "dst", dst.Hex(), "in", amountIn.String())

	if src == dst {
		return nil, ErrSameToken
	}

	pair, err := eth.ReadPair(ctx, e.chain, pool)
	if err != nil {
		return nil, err
	}

	reserveIn, reserveOut, ok := pair.ReservesFor(src, dst)
	if !ok {
		return nil, ErrPairMismatch
	}
	if reserveIn.Sign() == 0 || reserveOut.Sign() == 0 {
		return nil, ErrEmptyReserves
	}

	var outAmt, tmp1, tmp2 big.Int
	out := cpmm.GetAmountOut(&outAmt, &tmp1, &tmp2, amountIn, reserveIn, reserveOut, e.fee)
	e.logger.DebugContext(ctx, "amount out computed", "block", pair.Block, "fee_rate", e.fee.Rate(), "out", out.String())
	return out, nil
}
