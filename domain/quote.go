package domain

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// RateSourceType selects how exchange rates are derived.
type RateSourceType string

const (
	// PriceRatioRateSourceType derives the rate from the static USD prices.
	PriceRatioRateSourceType RateSourceType = "price"
	// PriceQuoteRateSourceType quotes price[to] / price[from] without conserving USD value.
	PriceQuoteRateSourceType RateSourceType = "price-quote"
	// PairTableRateSourceType reads the rate from the configured pair table.
	PairTableRateSourceType RateSourceType = "pair-table"
)

// RateSource returns the number of `to` units received per one `from` unit.
type RateSource interface {
	GetRate(ctx context.Context, from, to Token) (osmomath.Dec, error)
	Type() RateSourceType
}

// Quote is the result of pricing a swap. It carries no side effects.
type Quote struct {
	From string `json:"from"`
	To   string `json:"to"`
	// @Type string
	InputAmount osmomath.Dec `json:"input_amount"`
	// @Type string
	OutputAmount osmomath.Dec `json:"output_amount"`
	// @Type string
	FeeAmount osmomath.Dec `json:"fee_amount"`
	// @Type string
	MinimumReceived osmomath.Dec `json:"minimum_received"`
	// @Type string
	Rate osmomath.Dec `json:"rate"`
	// DisplayRate is "1 FROM = r TO" with r to 6 decimals.
	DisplayRate string `json:"display_rate"`
	// PriceImpact is a fraction in [0, 1]. Informational only.
	// @Type string
	PriceImpact osmomath.Dec `json:"price_impact"`
	// @Type string
	SlippagePercent osmomath.Dec `json:"slippage_percent"`
	// @Type string
	InputValueUSD osmomath.Dec `json:"input_value_usd"`
	// @Type string
	OutputValueUSD osmomath.Dec `json:"output_value_usd"`
	// IsEmpty is set for non-positive inputs. A swap must not be submitted with an empty quote.
	IsEmpty bool `json:"is_empty"`
}

// EmptyQuote returns the zeroed quote shown when there is nothing to price.
func EmptyQuote(from, to string) Quote {
	return Quote{
		From:            from,
		To:              to,
		InputAmount:     osmomath.ZeroDec(),
		OutputAmount:    osmomath.ZeroDec(),
		FeeAmount:       osmomath.ZeroDec(),
		MinimumReceived: osmomath.ZeroDec(),
		Rate:            osmomath.ZeroDec(),
		PriceImpact:     osmomath.ZeroDec(),
		SlippagePercent: osmomath.ZeroDec(),
		InputValueUSD:   osmomath.ZeroDec(),
		OutputValueUSD:  osmomath.ZeroDec(),
		IsEmpty:         true,
	}
}

// SwapForm is the user editable state of the swap card.
// Amounts are kept as entered so that switching never reformats them.
type SwapForm struct {
	From       string `json:"from"`
	To         string `json:"to"`
	FromAmount string `json:"from_amount"`
	ToAmount   string `json:"to_amount"`
}

// Switched returns the form with the two sides exchanged.
func (f SwapForm) Switched() SwapForm {
	return SwapForm{
		From:       f.To,
		To:         f.From,
		FromAmount: f.ToAmount,
		ToAmount:   f.FromAmount,
	}
}

// QuoteOptions configures a single quote.
type QuoteOptions struct {
	SlippagePercent osmomath.Dec
}

// QuoteOption configures QuoteOptions.
type QuoteOption func(*QuoteOptions)

// WithSlippagePercent overrides the default slippage tolerance.
// The value is a percentage, i.e. 1 means 1%.
func WithSlippagePercent(slippagePercent osmomath.Dec) QuoteOption {
	return func(o *QuoteOptions) {
		o.SlippagePercent = slippagePercent
	}
}
