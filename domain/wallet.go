package domain

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// WalletProvider is the injected wallet boundary.
// It only ever yields account addresses and the chain identifier.
type WalletProvider interface {
	// RequestAccounts prompts the user for access (eth_requestAccounts).
	RequestAccounts(ctx context.Context) ([]string, error)
	// Accounts returns the already authorized accounts without prompting (eth_accounts).
	Accounts(ctx context.Context) ([]string, error)
	// ChainID returns the currently selected chain.
	ChainID(ctx context.Context) (string, error)
}

// WalletSession is a connected account.
type WalletSession struct {
	Account     string    `json:"account"`
	ChainID     string    `json:"chain_id,omitempty"`
	ConnectedAt time.Time `json:"connected_at"`
}

// NormalizeAccount validates a hex account address and returns its EIP-55 checksummed form.
// Sessions and ledger state are keyed by the normalized address.
func NormalizeAccount(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", InvalidAddressError{Address: address}
	}

	return common.HexToAddress(address).Hex(), nil
}
