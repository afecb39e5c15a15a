package mocks

import (
	"context"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mvc"
)

// WalletUsecaseMock is a mock implementation of the WalletUsecase interface
type WalletUsecaseMock struct {
	ConnectFunc           func(ctx context.Context, provider domain.WalletProvider) (domain.WalletSession, error)
	RestoreFunc           func(ctx context.Context, provider domain.WalletProvider) (domain.WalletSession, error)
	DisconnectFunc        func(ctx context.Context, account string) error
	OnAccountsChangedFunc func(ctx context.Context, previous string, accounts []string) (domain.WalletSession, error)
	OnChainChangedFunc    func(ctx context.Context, account, chainID string) (domain.WalletSession, error)
	GetSessionFunc        func(ctx context.Context, account string) (domain.WalletSession, error)
}

var _ mvc.WalletUsecase = &WalletUsecaseMock{}

func (m *WalletUsecaseMock) Connect(ctx context.Context, provider domain.WalletProvider) (domain.WalletSession, error) {
	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx, provider)
	}
	panic("unimplemented")
}

func (m *WalletUsecaseMock) Restore(ctx context.Context, provider domain.WalletProvider) (domain.WalletSession, error) {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, provider)
	}
	panic("unimplemented")
}

func (m *WalletUsecaseMock) Disconnect(ctx context.Context, account string) error {
	if m.DisconnectFunc != nil {
		return m.DisconnectFunc(ctx, account)
	}
	panic("unimplemented")
}

func (m *WalletUsecaseMock) OnAccountsChanged(ctx context.Context, previous string, accounts []string) (domain.WalletSession, error) {
	if m.OnAccountsChangedFunc != nil {
		return m.OnAccountsChangedFunc(ctx, previous, accounts)
	}
	panic("unimplemented")
}

func (m *WalletUsecaseMock) OnChainChanged(ctx context.Context, account, chainID string) (domain.WalletSession, error) {
	if m.OnChainChangedFunc != nil {
		return m.OnChainChangedFunc(ctx, account, chainID)
	}
	panic("unimplemented")
}

func (m *WalletUsecaseMock) GetSession(ctx context.Context, account string) (domain.WalletSession, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, account)
	}
	return domain.WalletSession{}, domain.ErrAccountNotConnected
}
