package mvc

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/temposwap/swapd/domain"
)

// TokensUsecase defines an interface for the token registry.
type TokensUsecase interface {
	// GetToken returns the token for a given symbol.
	// The exact symbol is tried first, then a case-insensitive match.
	// Returns domain.TokenNotFoundError if the symbol is unknown.
	GetToken(ctx context.Context, symbol string) (domain.Token, error)

	// GetAllTokens returns all tokens in registry order.
	GetAllTokens(ctx context.Context) []domain.Token

	// SearchTokens returns the tokens whose symbol or name contains term, ignoring case.
	SearchTokens(ctx context.Context, term string) []domain.Token

	// GetPrice returns the USD price for a symbol.
	GetPrice(ctx context.Context, symbol string) (osmomath.Dec, error)

	// GetPrices returns USD prices keyed by symbol. All tokens are returned if symbols is empty.
	GetPrices(ctx context.Context, symbols []string) (map[string]osmomath.Dec, error)

	// GetSeedBalances returns the balances credited to a freshly connected account.
	GetSeedBalances(ctx context.Context) domain.Balances

	// GetPairRate returns the configured pair table rate for the from -> to direction.
	// The reverse direction is never derived.
	GetPairRate(ctx context.Context, from, to string) (osmomath.Dec, error)
}
