package types

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/temposwap/swapd/domain"
	quotetypes "github.com/temposwap/swapd/quote/types"
)

const accountParam = "account"

// AccountRequest is any request scoped to the :account path parameter.
type AccountRequest struct {
	Account string
}

// UnmarshalHTTPRequest implements RequestUnmarshaler.
// The account is normalized to its checksummed form.
func (r *AccountRequest) UnmarshalHTTPRequest(c echo.Context) error {
	account, err := domain.NormalizeAccount(c.Param(accountParam))
	if err != nil {
		return err
	}

	r.Account = account
	return nil
}

// GetAmountRequest represents the request for a percentage of a balance.
type GetAmountRequest struct {
	AccountRequest
	Symbol  string
	Percent int
}

// UnmarshalHTTPRequest implements RequestUnmarshaler.
func (r *GetAmountRequest) UnmarshalHTTPRequest(c echo.Context) error {
	if err := r.AccountRequest.UnmarshalHTTPRequest(c); err != nil {
		return err
	}

	r.Symbol = c.QueryParam("symbol")

	percentStr := c.QueryParam("percent")
	if percentStr == "" {
		// max
		r.Percent = 100
		return nil
	}

	percent, err := strconv.Atoi(percentStr)
	if err != nil {
		return domain.InvalidPercentageError{Percent: percentStr}
	}

	r.Percent = percent
	return nil
}

// Validate validates the GetAmountRequest
func (r *GetAmountRequest) Validate() error {
	if r.Symbol == "" {
		return ErrSymbolNotSpecified
	}

	if r.Percent < 1 || r.Percent > 100 {
		return domain.InvalidPercentageError{Percent: strconv.Itoa(r.Percent)}
	}

	return nil
}

// SwapRequest represents a swap preview or submission for an account.
type SwapRequest struct {
	AccountRequest
	quotetypes.GetQuoteRequest
	// Async returns as soon as the swap is submitted instead of waiting for settlement.
	Async bool
}

// UnmarshalHTTPRequest implements RequestUnmarshaler.
func (r *SwapRequest) UnmarshalHTTPRequest(c echo.Context) error {
	if err := r.AccountRequest.UnmarshalHTTPRequest(c); err != nil {
		return err
	}

	if err := r.GetQuoteRequest.UnmarshalHTTPRequest(c); err != nil {
		return err
	}

	async, err := domain.ParseBooleanQueryParam(c, "async")
	if err != nil {
		return ErrInvalidAsync
	}

	r.Async = async
	return nil
}

// Validate validates the SwapRequest
func (r *SwapRequest) Validate() error {
	return r.GetQuoteRequest.Validate()
}
