package usecase

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mvc"
)

// priceRatioRateSource values both sides at their USD price so that
// the USD value of the input equals the USD value of the output.
type priceRatioRateSource struct{}

var _ domain.RateSource = priceRatioRateSource{}

// NewPriceRatioRateSource returns a rate source of price[from] / price[to].
func NewPriceRatioRateSource() domain.RateSource {
	return priceRatioRateSource{}
}

// GetRate implements domain.RateSource.
func (priceRatioRateSource) GetRate(ctx context.Context, from, to domain.Token) (osmomath.Dec, error) {
	if !to.PriceUSD.IsPositive() {
		return osmomath.Dec{}, domain.RateNotFoundError{From: from.Symbol, To: to.Symbol}
	}

	return from.PriceUSD.Quo(to.PriceUSD), nil
}

// Type implements domain.RateSource.
func (priceRatioRateSource) Type() domain.RateSourceType {
	return domain.PriceRatioRateSourceType
}

// priceQuoteRateSource divides the destination price by the source price.
// Unlike priceRatioRateSource it does not conserve USD value across the swap.
type priceQuoteRateSource struct{}

var _ domain.RateSource = priceQuoteRateSource{}

// NewPriceQuoteRateSource returns a rate source of price[to] / price[from].
func NewPriceQuoteRateSource() domain.RateSource {
	return priceQuoteRateSource{}
}

// GetRate implements domain.RateSource.
func (priceQuoteRateSource) GetRate(ctx context.Context, from, to domain.Token) (osmomath.Dec, error) {
	if !from.PriceUSD.IsPositive() {
		return osmomath.Dec{}, domain.RateNotFoundError{From: from.Symbol, To: to.Symbol}
	}

	return to.PriceUSD.Quo(from.PriceUSD), nil
}

// Type implements domain.RateSource.
func (priceQuoteRateSource) Type() domain.RateSourceType {
	return domain.PriceQuoteRateSourceType
}

// pairTableRateSource reads rates from the registry's pair table.
// Each direction must be configured on its own.
type pairTableRateSource struct {
	tokensUsecase mvc.TokensUsecase
}

var _ domain.RateSource = &pairTableRateSource{}

// NewPairTableRateSource returns a rate source backed by the configured pair table.
func NewPairTableRateSource(tokensUsecase mvc.TokensUsecase) domain.RateSource {
	return &pairTableRateSource{
		tokensUsecase: tokensUsecase,
	}
}

// GetRate implements domain.RateSource.
func (p *pairTableRateSource) GetRate(ctx context.Context, from, to domain.Token) (osmomath.Dec, error) {
	return p.tokensUsecase.GetPairRate(ctx, from.Symbol, to.Symbol)
}

// Type implements domain.RateSource.
func (p *pairTableRateSource) Type() domain.RateSourceType {
	return domain.PairTableRateSourceType
}

// NewRateSource returns the rate source for the given type.
func NewRateSource(sourceType domain.RateSourceType, tokensUsecase mvc.TokensUsecase) (domain.RateSource, error) {
	switch sourceType {
	case domain.PriceRatioRateSourceType, "":
		return NewPriceRatioRateSource(), nil
	case domain.PriceQuoteRateSourceType:
		return NewPriceQuoteRateSource(), nil
	case domain.PairTableRateSourceType:
		return NewPairTableRateSource(tokensUsecase), nil
	default:
		return nil, UnsupportedRateSourceError{Source: string(sourceType)}
	}
}
