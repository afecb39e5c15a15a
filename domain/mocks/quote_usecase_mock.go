package mocks

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mvc"
)

// QuoteUsecaseMock is a mock implementation of the QuoteUsecase interface
type QuoteUsecaseMock struct {
	GetQuoteFunc     func(ctx context.Context, from, to string, inputAmount osmomath.Dec, opts ...domain.QuoteOption) (domain.Quote, error)
	SwitchTokensFunc func(ctx context.Context, form domain.SwapForm, opts ...domain.QuoteOption) (domain.SwapForm, domain.Quote, error)
}

var _ mvc.QuoteUsecase = &QuoteUsecaseMock{}

func (m *QuoteUsecaseMock) GetQuote(ctx context.Context, from, to string, inputAmount osmomath.Dec, opts ...domain.QuoteOption) (domain.Quote, error) {
	if m.GetQuoteFunc != nil {
		return m.GetQuoteFunc(ctx, from, to, inputAmount, opts...)
	}
	panic("unimplemented")
}

func (m *QuoteUsecaseMock) SwitchTokens(ctx context.Context, form domain.SwapForm, opts ...domain.QuoteOption) (domain.SwapForm, domain.Quote, error) {
	if m.SwitchTokensFunc != nil {
		return m.SwitchTokensFunc(ctx, form, opts...)
	}
	panic("unimplemented")
}
