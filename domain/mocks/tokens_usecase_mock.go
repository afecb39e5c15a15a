package mocks

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mvc"
)

// TokensUsecaseMock is a mock implementation of the TokensUsecase interface
type TokensUsecaseMock struct {
	GetTokenFunc        func(ctx context.Context, symbol string) (domain.Token, error)
	GetAllTokensFunc    func(ctx context.Context) []domain.Token
	SearchTokensFunc    func(ctx context.Context, term string) []domain.Token
	GetPriceFunc        func(ctx context.Context, symbol string) (osmomath.Dec, error)
	GetPricesFunc       func(ctx context.Context, symbols []string) (map[string]osmomath.Dec, error)
	GetSeedBalancesFunc func(ctx context.Context) domain.Balances
	GetPairRateFunc     func(ctx context.Context, from, to string) (osmomath.Dec, error)
}

var _ mvc.TokensUsecase = &TokensUsecaseMock{}

func (m *TokensUsecaseMock) GetToken(ctx context.Context, symbol string) (domain.Token, error) {
	if m.GetTokenFunc != nil {
		return m.GetTokenFunc(ctx, symbol)
	}
	return domain.Token{}, domain.TokenNotFoundError{Symbol: symbol}
}

func (m *TokensUsecaseMock) GetAllTokens(ctx context.Context) []domain.Token {
	if m.GetAllTokensFunc != nil {
		return m.GetAllTokensFunc(ctx)
	}
	return nil
}

func (m *TokensUsecaseMock) SearchTokens(ctx context.Context, term string) []domain.Token {
	if m.SearchTokensFunc != nil {
		return m.SearchTokensFunc(ctx, term)
	}
	return nil
}

func (m *TokensUsecaseMock) GetPrice(ctx context.Context, symbol string) (osmomath.Dec, error) {
	if m.GetPriceFunc != nil {
		return m.GetPriceFunc(ctx, symbol)
	}
	return osmomath.Dec{}, domain.TokenNotFoundError{Symbol: symbol}
}

func (m *TokensUsecaseMock) GetPrices(ctx context.Context, symbols []string) (map[string]osmomath.Dec, error) {
	if m.GetPricesFunc != nil {
		return m.GetPricesFunc(ctx, symbols)
	}
	return nil, nil
}

func (m *TokensUsecaseMock) GetSeedBalances(ctx context.Context) domain.Balances {
	if m.GetSeedBalancesFunc != nil {
		return m.GetSeedBalancesFunc(ctx)
	}
	return domain.Balances{}
}

func (m *TokensUsecaseMock) GetPairRate(ctx context.Context, from, to string) (osmomath.Dec, error) {
	if m.GetPairRateFunc != nil {
		return m.GetPairRateFunc(ctx, from, to)
	}
	return osmomath.Dec{}, domain.RateNotFoundError{From: from, To: to}
}
