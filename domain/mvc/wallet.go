package mvc

import (
	"context"

	"github.com/temposwap/swapd/domain"
)

// WalletUsecase defines an interface for wallet sessions.
type WalletUsecase interface {
	// Connect requests account access from the provider and opens the first account.
	Connect(ctx context.Context, provider domain.WalletProvider) (domain.WalletSession, error)

	// Restore opens an already authorized account without prompting.
	// Returns domain.ErrNoAccounts if nothing is authorized.
	Restore(ctx context.Context, provider domain.WalletProvider) (domain.WalletSession, error)

	// Disconnect closes the session and resets its ledger state.
	Disconnect(ctx context.Context, account string) error

	// OnAccountsChanged reacts to the provider switching accounts.
	// An empty list disconnects previous. Otherwise the first account becomes active.
	OnAccountsChanged(ctx context.Context, previous string, accounts []string) (domain.WalletSession, error)

	// OnChainChanged reacts to the provider switching chains.
	// Ledger state for the account is reset as on a reload.
	OnChainChanged(ctx context.Context, account, chainID string) (domain.WalletSession, error)

	// GetSession returns the session for an account.
	GetSession(ctx context.Context, account string) (domain.WalletSession, error)
}
