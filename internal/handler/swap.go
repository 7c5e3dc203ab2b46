package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/nmbroome/prediction-market-admin/internal/service"
	"github.com/nmbroome/prediction-market-admin/pkg/cpmm"
)

type SwapHandler struct {
	BaseHandler
	service *service.SwapService
}

func NewSwapHandler(logger *slog.Logger, svc *service.SwapService) *SwapHandler {
	return &SwapHandler{
		BaseHandler: BaseHandler{
			logger: logger,
		},
		service: svc,
	}
}

type SwapRequest struct {
	TokenA     string  `json:"token_a"`
	ReserveA   float64 `json:"reserve_a"`
	TokenB     string  `json:"token_b"`
	ReserveB   float64 `json:"reserve_b"`
	InputToken string  `json:"input_token"`
	AmountIn   float64 `json:"amount_in"`
}

type SwapResponse struct {
	AmountOut       float64            `json:"amount_out"`
	NewReserveA     float64            `json:"new_reserve_a"`
	NewReserveB     float64            `json:"new_reserve_b"`
	Reserves        map[string]float64 `json:"reserves"`
	Fee             float64            `json:"fee"`
	PriceImpact     float64            `json:"price_impact"`
	SpotPriceBefore float64            `json:"spot_price_before"`
	SpotPriceAfter  float64            `json:"spot_price_after"`
}

func (h *SwapHandler) Handle() fiber.Handler {
	return func(c fiber.Ctx) error {
		var req SwapRequest
		if err := c.Bind().JSON(&req); err != nil {
			h.logger.Debug("failed to decode swap body", "err", err)
			return ErrInvalidRequestBody
		}

		res, err := h.service.Swap(c.Context(), service.SwapRequest{
			TokenA:     req.TokenA,
			ReserveA:   req.ReserveA,
			TokenB:     req.TokenB,
			ReserveB:   req.ReserveB,
			InputToken: req.InputToken,
			AmountIn:   req.AmountIn,
		})
		if err != nil {
			return h.handleServiceError(err)
		}

		return c.JSON(SwapResponse{
			AmountOut:       res.AmountOut,
			NewReserveA:     res.Pool.A.Balance,
			NewReserveB:     res.Pool.B.Balance,
			Reserves:        res.Pool.Reserves(),
			Fee:             res.Fee,
			PriceImpact:     res.PriceImpact,
			SpotPriceBefore: res.SpotPriceBefore,
			SpotPriceAfter:  res.SpotPriceAfter,
		})
	}
}

func (h *SwapHandler) handleServiceError(err error) error {
	switch {
	case errors.Is(err, cpmm.ErrInvalidAmount):
		return ErrInvalidSwapAmount
	case errors.Is(err, cpmm.ErrUnknownToken):
		return ErrUnknownInputToken
	case errors.Is(err, cpmm.ErrNoLiquidity):
		return ErrNoLiquidity
	case errors.Is(err, cpmm.ErrSameToken):
		return ErrSamePoolTokens
	case errors.Is(err, cpmm.ErrEmptySymbol):
		return ErrTokenSymbolRequired
	case errors.Is(err, cpmm.ErrOutOfRange):
		return ErrSwapOutOfRange
	default:
		h.logger.Error("swap failed", "err", err)
		return ErrSwapFailedInternal
	}
}
