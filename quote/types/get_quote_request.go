package types

import (
	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/temposwap/swapd/domain"
)

// GetQuoteRequest represents swap quote request for the /quote endpoint.
type GetQuoteRequest struct {
	From   string
	To     string
	Amount osmomath.Dec
	// SlippagePercent is nil when not given, in which case the configured default applies.
	SlippagePercent *osmomath.Dec
}

// UnmarshalHTTPRequest implements RequestUnmarshaler.
func (r *GetQuoteRequest) UnmarshalHTTPRequest(c echo.Context) error {
	var err error

	r.From = c.QueryParam("from")
	r.To = c.QueryParam("to")

	r.Amount, err = domain.ParseDecimal("amount", c.QueryParam("amount"))
	if err != nil {
		return err
	}

	r.SlippagePercent, err = ParseSlippageQueryParam(c)
	if err != nil {
		return err
	}

	return nil
}

// Validate validates the GetQuoteRequest
func (r *GetQuoteRequest) Validate() error {
	return validateSymbols(r.From, r.To)
}

// QuoteOptions returns the options implied by the request.
func (r *GetQuoteRequest) QuoteOptions() []domain.QuoteOption {
	return slippageOptions(r.SlippagePercent)
}

// SwitchTokensRequest represents the /quote/switch request.
type SwitchTokensRequest struct {
	Form            domain.SwapForm
	SlippagePercent *osmomath.Dec
}

// UnmarshalHTTPRequest implements RequestUnmarshaler.
func (r *SwitchTokensRequest) UnmarshalHTTPRequest(c echo.Context) error {
	r.Form = domain.SwapForm{
		From:       c.QueryParam("from"),
		To:         c.QueryParam("to"),
		FromAmount: c.QueryParam("fromAmount"),
		ToAmount:   c.QueryParam("toAmount"),
	}

	var err error
	r.SlippagePercent, err = ParseSlippageQueryParam(c)
	return err
}

// Validate validates the SwitchTokensRequest
func (r *SwitchTokensRequest) Validate() error {
	return validateSymbols(r.Form.From, r.Form.To)
}

// QuoteOptions returns the options implied by the request.
func (r *SwitchTokensRequest) QuoteOptions() []domain.QuoteOption {
	return slippageOptions(r.SlippagePercent)
}

// ParseSlippageQueryParam parses the optional slippage percent query parameter.
// Returns nil if the parameter is not present.
func ParseSlippageQueryParam(c echo.Context) (*osmomath.Dec, error) {
	slippageStr := c.QueryParam("slippage")
	if slippageStr == "" {
		return nil, nil
	}

	slippage, err := domain.ParseDecimal("slippage", slippageStr)
	if err != nil {
		return nil, err
	}

	return &slippage, nil
}

func slippageOptions(slippagePercent *osmomath.Dec) []domain.QuoteOption {
	if slippagePercent == nil {
		return nil
	}
	return []domain.QuoteOption{domain.WithSlippagePercent(*slippagePercent)}
}

func validateSymbols(from, to string) error {
	if from == "" {
		return ErrFromNotSpecified
	}

	if to == "" {
		return ErrToNotSpecified
	}

	return domain.ValidateInputDenoms(from, to)
}
