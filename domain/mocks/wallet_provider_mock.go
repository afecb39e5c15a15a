package mocks

import (
	"context"

	"github.com/temposwap/swapd/domain"
)

// WalletProviderMock is a mock implementation of the WalletProvider interface
type WalletProviderMock struct {
	RequestAccountsFunc func(ctx context.Context) ([]string, error)
	AccountsFunc        func(ctx context.Context) ([]string, error)
	ChainIDFunc         func(ctx context.Context) (string, error)
}

var _ domain.WalletProvider = &WalletProviderMock{}

func (m *WalletProviderMock) RequestAccounts(ctx context.Context) ([]string, error) {
	if m.RequestAccountsFunc != nil {
		return m.RequestAccountsFunc(ctx)
	}
	return nil, domain.ErrProviderUnavailable
}

func (m *WalletProviderMock) Accounts(ctx context.Context) ([]string, error) {
	if m.AccountsFunc != nil {
		return m.AccountsFunc(ctx)
	}
	return nil, nil
}

func (m *WalletProviderMock) ChainID(ctx context.Context) (string, error) {
	if m.ChainIDFunc != nil {
		return m.ChainIDFunc(ctx)
	}
	return "", nil
}
