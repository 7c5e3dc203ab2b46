package handler

import "github.com/gofiber/fiber/v3"

// ErrInvalidRequestBody indicates that the swap request body is not the
// expected JSON object.
var ErrInvalidRequestBody = fiber.NewError(fiber.StatusBadRequest, "invalid request body")

// ErrInvalidSwapAmount maps cpmm.ErrInvalidAmount to a 400 error.
var ErrInvalidSwapAmount = fiber.NewError(fiber.StatusBadRequest, "amount_in must be a non-negative number")

// ErrUnknownInputToken maps cpmm.ErrUnknownToken to a 400 error.
var ErrUnknownInputToken = fiber.NewError(fiber.StatusBadRequest, "input_token must be token_a or token_b")

// ErrNoLiquidity maps cpmm.ErrNoLiquidity to a 400 error.
var ErrNoLiquidity = fiber.NewError(fiber.StatusBadRequest, "pool has no liquidity: reserves must be positive")

// ErrSamePoolTokens maps cpmm.ErrSameToken to a 400 error.
var ErrSamePoolTokens = fiber.NewError(fiber.StatusBadRequest, "token_a and token_b cannot be the same")

// ErrTokenSymbolRequired maps cpmm.ErrEmptySymbol to a 400 error.
var ErrTokenSymbolRequired = fiber.NewError(fiber.StatusBadRequest, "token_a and token_b are required")

// ErrSwapOutOfRange maps cpmm.ErrOutOfRange to a 400 error.
var ErrSwapOutOfRange = fiber.NewError(fiber.StatusBadRequest, "amounts out of range: resulting reserves and prices must be finite")

// ErrSwapFailedInternal signals a generic server-side swap error.
var ErrSwapFailedInternal = fiber.NewError(fiber.StatusInternalServerError, "swap failed")

// ErrInvalidQueryParameters indicates that the request query string could not
// be parsed into the expected structure.
var ErrInvalidQueryParameters = fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")

// ErrSameAddresses is returned when src and dst addresses are identical.
var ErrSameAddresses = fiber.NewError(fiber.StatusBadRequest, "src and dst addresses cannot be the same")

// ErrAmountRequired is returned when the amount parameter is missing.
var ErrAmountRequired = fiber.NewError(fiber.StatusBadRequest, "amount is required")

// ErrInvalidAmountFormat is returned when the amount cannot be parsed as a
// base-10 integer.
var ErrInvalidAmountFormat = fiber.NewError(fiber.StatusBadRequest, "invalid amount format")

// ErrAmountNonPositive is returned when the amount is zero or negative.
var ErrAmountNonPositive = fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")

// ErrSameTokenBadRequest maps a same-token validation failure to a 400 error.
var ErrSameTokenBadRequest = fiber.NewError(fiber.StatusBadRequest, "src and dst tokens cannot be the same")

// ErrPairMismatchBadRequest maps a src/dst pair not traded by the pool to a
// 400 error.
var ErrPairMismatchBadRequest = fiber.NewError(fiber.StatusBadRequest, "pool does not trade src/dst")

// ErrEmptyReservesBadRequest maps empty-reserve pool state to a 400 error.
var ErrEmptyReservesBadRequest = fiber.NewError(fiber.StatusBadRequest, "pool has insufficient reserves")

// ErrEstimationFailedInternal signals a generic server-side estimation error.
var ErrEstimationFailedInternal = fiber.NewError(fiber.StatusInternalServerError, "estimation failed")

// NewAddressRequired returns a 400 Bad Request for a missing address field.
func NewAddressRequired(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, field+" address is required")
}

// NewInvalidAddress returns a 400 Bad Request for an invalid address format.
func NewInvalidAddress(field string) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid "+field+" address")
}
