package mvc

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/temposwap/swapd/domain"
)

// QuoteUsecase defines an interface for the quote calculator.
type QuoteUsecase interface {
	// GetQuote prices swapping inputAmount of from into to.
	// Non-positive amounts yield domain.EmptyQuote and no error.
	GetQuote(ctx context.Context, from, to string, inputAmount osmomath.Dec, opts ...domain.QuoteOption) (domain.Quote, error)

	// SwitchTokens exchanges the two sides of the form and re-quotes the new from amount.
	SwitchTokens(ctx context.Context, form domain.SwapForm, opts ...domain.QuoteOption) (domain.SwapForm, domain.Quote, error)
}
