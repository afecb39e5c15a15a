package mvc

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/temposwap/swapd/domain"
)

// LedgerUsecase defines an interface for the mock ledger.
type LedgerUsecase interface {
	// OpenAccount seeds the account with the registry's initial balances.
	// Any previous state of the account is discarded.
	OpenAccount(ctx context.Context, account string) (domain.Balances, error)

	// CloseAccount drops all state held for the account.
	CloseAccount(ctx context.Context, account string) error

	// IsOpen returns true if the account has ledger state.
	IsOpen(ctx context.Context, account string) bool

	// GetBalances returns a snapshot of the account balances.
	GetBalances(ctx context.Context, account string) (domain.Balances, error)

	// GetPortfolio returns the USD valuation of the account.
	GetPortfolio(ctx context.Context, account string) (domain.Portfolio, error)

	// GetTransactions returns the settled swaps, most recent first.
	GetTransactions(ctx context.Context, account string) ([]domain.Transaction, error)

	// GetAmountForPercentage returns percent of the account's balance of symbol.
	// 100 is the max amount.
	GetAmountForPercentage(ctx context.Context, account, symbol string, percent int) (osmomath.Dec, error)

	// PreviewSwap quotes a swap and reports whether the account could submit it.
	PreviewSwap(ctx context.Context, account, from, to string, amount osmomath.Dec, opts ...domain.QuoteOption) (domain.SwapPreview, error)

	// ExecuteSwap submits a swap and blocks until it is settled or rejected.
	ExecuteSwap(ctx context.Context, account, from, to string, amount osmomath.Dec, opts ...domain.QuoteOption) (domain.SwapOrder, error)

	// SubmitSwap submits a swap and returns once it is accepted.
	// Settlement happens in the background; use GetOrder to follow it.
	SubmitSwap(ctx context.Context, account, from, to string, amount osmomath.Dec, opts ...domain.QuoteOption) (domain.SwapOrder, error)

	// GetOrder returns a submitted order by ID.
	GetOrder(ctx context.Context, orderID string) (domain.SwapOrder, error)

	// Shutdown rejects pending background settlements and waits for them to finish.
	Shutdown(ctx context.Context) error
}
