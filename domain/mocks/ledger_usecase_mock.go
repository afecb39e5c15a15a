package mocks

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mvc"
)

// LedgerUsecaseMock is a mock implementation of the LedgerUsecase interface
type LedgerUsecaseMock struct {
	OpenAccountFunc            func(ctx context.Context, account string) (domain.Balances, error)
	CloseAccountFunc           func(ctx context.Context, account string) error
	IsOpenFunc                 func(ctx context.Context, account string) bool
	GetBalancesFunc            func(ctx context.Context, account string) (domain.Balances, error)
	GetPortfolioFunc           func(ctx context.Context, account string) (domain.Portfolio, error)
	GetTransactionsFunc        func(ctx context.Context, account string) ([]domain.Transaction, error)
	GetAmountForPercentageFunc func(ctx context.Context, account, symbol string, percent int) (osmomath.Dec, error)
	PreviewSwapFunc            func(ctx context.Context, account, from, to string, amount osmomath.Dec, opts ...domain.QuoteOption) (domain.SwapPreview, error)
	ExecuteSwapFunc            func(ctx context.Context, account, from, to string, amount osmomath.Dec, opts ...domain.QuoteOption) (domain.SwapOrder, error)
	SubmitSwapFunc             func(ctx context.Context, account, from, to string, amount osmomath.Dec, opts ...domain.QuoteOption) (domain.SwapOrder, error)
	GetOrderFunc               func(ctx context.Context, orderID string) (domain.SwapOrder, error)
	ShutdownFunc               func(ctx context.Context) error
}

var _ mvc.LedgerUsecase = &LedgerUsecaseMock{}

func (m *LedgerUsecaseMock) OpenAccount(ctx context.Context, account string) (domain.Balances, error) {
	if m.OpenAccountFunc != nil {
		return m.OpenAccountFunc(ctx, account)
	}
	return domain.Balances{}, nil
}

func (m *LedgerUsecaseMock) CloseAccount(ctx context.Context, account string) error {
	if m.CloseAccountFunc != nil {
		return m.CloseAccountFunc(ctx, account)
	}
	return nil
}

func (m *LedgerUsecaseMock) IsOpen(ctx context.Context, account string) bool {
	if m.IsOpenFunc != nil {
		return m.IsOpenFunc(ctx, account)
	}
	return false
}

func (m *LedgerUsecaseMock) GetBalances(ctx context.Context, account string) (domain.Balances, error) {
	if m.GetBalancesFunc != nil {
		return m.GetBalancesFunc(ctx, account)
	}
	panic("unimplemented")
}

func (m *LedgerUsecaseMock) GetPortfolio(ctx context.Context, account string) (domain.Portfolio, error) {
	if m.GetPortfolioFunc != nil {
		return m.GetPortfolioFunc(ctx, account)
	}
	panic("unimplemented")
}

func (m *LedgerUsecaseMock) GetTransactions(ctx context.Context, account string) ([]domain.Transaction, error) {
	if m.GetTransactionsFunc != nil {
		return m.GetTransactionsFunc(ctx, account)
	}
	panic("unimplemented")
}

func (m *LedgerUsecaseMock) GetAmountForPercentage(ctx context.Context, account, symbol string, percent int) (osmomath.Dec, error) {
	if m.GetAmountForPercentageFunc != nil {
		return m.GetAmountForPercentageFunc(ctx, account, symbol, percent)
	}
	panic("unimplemented")
}

func (m *LedgerUsecaseMock) PreviewSwap(ctx context.Context, account, from, to string, amount osmomath.Dec, opts ...domain.QuoteOption) (domain.SwapPreview, error) {
	if m.PreviewSwapFunc != nil {
		return m.PreviewSwapFunc(ctx, account, from, to, amount, opts...)
	}
	panic("unimplemented")
}

func (m *LedgerUsecaseMock) ExecuteSwap(ctx context.Context, account, from, to string, amount osmomath.Dec, opts ...domain.QuoteOption) (domain.SwapOrder, error) {
	if m.ExecuteSwapFunc != nil {
		return m.ExecuteSwapFunc(ctx, account, from, to, amount, opts...)
	}
	panic("unimplemented")
}

func (m *LedgerUsecaseMock) SubmitSwap(ctx context.Context, account, from, to string, amount osmomath.Dec, opts ...domain.QuoteOption) (domain.SwapOrder, error) {
	if m.SubmitSwapFunc != nil {
		return m.SubmitSwapFunc(ctx, account, from, to, amount, opts...)
	}
	panic("unimplemented")
}

func (m *LedgerUsecaseMock) GetOrder(ctx context.Context, orderID string) (domain.SwapOrder, error) {
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, orderID)
	}
	return domain.SwapOrder{}, domain.ErrOrderNotFound
}

func (m *LedgerUsecaseMock) Shutdown(ctx context.Context) error {
	if m.ShutdownFunc != nil {
		return m.ShutdownFunc(ctx)
	}
	return nil
}
