package usecase

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mvc"
	"github.com/temposwap/swapd/log"
)

type quoteUsecase struct {
	tokensUsecase mvc.TokensUsecase
	rateSource    domain.RateSource

	feeRate                    osmomath.Dec
	defaultSlippagePercent     osmomath.Dec
	minSlippagePercent         osmomath.Dec
	maxSlippagePercent         osmomath.Dec
	priceImpactReferenceAmount osmomath.Dec

	logger log.Logger
}

var _ mvc.QuoteUsecase = &quoteUsecase{}

var (
	oneHundredDec = osmomath.NewDec(100)

	// DefaultFeeRate is the flat 0.30% liquidity provider fee.
	DefaultFeeRate = osmomath.NewDecWithPrec(3, 3)
	// DefaultSlippagePercent is the 1% tolerance used for minimum received.
	DefaultSlippagePercent = osmomath.OneDec()
	// DefaultMinSlippagePercent is 0.1%.
	DefaultMinSlippagePercent = osmomath.NewDecWithPrec(1, 1)
	// DefaultMaxSlippagePercent is 50%.
	DefaultMaxSlippagePercent = osmomath.NewDec(50)
	// DefaultPriceImpactReferenceAmount is the input at which the reported price impact reaches 100%.
	DefaultPriceImpactReferenceAmount = osmomath.NewDec(100_000)
)

// NewQuoteUsecase will create a new quote calculator.
// Unset config values fall back to the package defaults.
func NewQuoteUsecase(tokensUsecase mvc.TokensUsecase, config domain.QuoteConfig, logger log.Logger) (mvc.QuoteUsecase, error) {
	rateSource, err := NewRateSource(config.RateSource, tokensUsecase)
	if err != nil {
		return nil, err
	}

	feeRate, err := parseConfigDec("fee-rate", config.FeeRate, DefaultFeeRate)
	if err != nil {
		return nil, err
	}
	if feeRate.IsNegative() || feeRate.GTE(osmomath.OneDec()) {
		return nil, InvalidQuoteConfigError{Field: "fee-rate", Value: config.FeeRate}
	}

	defaultSlippage, err := parseConfigDec("default-slippage-percent", config.DefaultSlippagePercent, DefaultSlippagePercent)
	if err != nil {
		return nil, err
	}

	minSlippage, err := parseConfigDec("min-slippage-percent", config.MinSlippagePercent, DefaultMinSlippagePercent)
	if err != nil {
		return nil, err
	}

	maxSlippage, err := parseConfigDec("max-slippage-percent", config.MaxSlippagePercent, DefaultMaxSlippagePercent)
	if err != nil {
		return nil, err
	}

	if minSlippage.IsNegative() || minSlippage.GT(maxSlippage) || maxSlippage.GTE(oneHundredDec) {
		return nil, InvalidQuoteConfigError{Field: "slippage bounds", Value: minSlippage.String() + "-" + maxSlippage.String()}
	}

	if defaultSlippage.LT(minSlippage) || defaultSlippage.GT(maxSlippage) {
		return nil, InvalidQuoteConfigError{Field: "default-slippage-percent", Value: config.DefaultSlippagePercent}
	}

	priceImpactReference, err := parseConfigDec("price-impact-reference-amount", config.PriceImpactReferenceAmount, DefaultPriceImpactReferenceAmount)
	if err != nil {
		return nil, err
	}
	if !priceImpactReference.IsPositive() {
		return nil, InvalidQuoteConfigError{Field: "price-impact-reference-amount", Value: config.PriceImpactReferenceAmount}
	}

	return &quoteUsecase{
		tokensUsecase: tokensUsecase,
		rateSource:    rateSource,

		feeRate:                    feeRate,
		defaultSlippagePercent:     defaultSlippage,
		minSlippagePercent:         minSlippage,
		maxSlippagePercent:         maxSlippage,
		priceImpactReferenceAmount: priceImpactReference,

		logger: logger,
	}, nil
}

// GetQuote implements mvc.QuoteUsecase.
func (q *quoteUsecase) GetQuote(ctx context.Context, from, to string, inputAmount osmomath.Dec, opts ...domain.QuoteOption) (domain.Quote, error) {
	quote, err := q.getQuote(ctx, from, to, inputAmount, opts...)
	if err != nil {
		domain.SwapdQuoteErrorsCounter.Inc()
		q.logger.Debug("failed to compute quote", zap.String("from", from), zap.String("to", to), zap.Error(err))
		return domain.Quote{}, err
	}

	if !quote.IsEmpty {
		domain.SwapdQuotesCounter.WithLabelValues(string(q.rateSource.Type())).Inc()
	}

	return quote, nil
}

func (q *quoteUsecase) getQuote(ctx context.Context, from, to string, inputAmount osmomath.Dec, opts ...domain.QuoteOption) (domain.Quote, error) {
	options := domain.QuoteOptions{
		SlippagePercent: q.defaultSlippagePercent,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if err := q.validateSlippage(options.SlippagePercent); err != nil {
		return domain.Quote{}, err
	}

	fromToken, err := q.tokensUsecase.GetToken(ctx, from)
	if err != nil {
		return domain.Quote{}, err
	}

	toToken, err := q.tokensUsecase.GetToken(ctx, to)
	if err != nil {
		return domain.Quote{}, err
	}

	if err := domain.ValidateInputDenoms(fromToken.Symbol, toToken.Symbol); err != nil {
		return domain.Quote{}, err
	}

	if inputAmount.IsNil() || !inputAmount.IsPositive() {
		return domain.EmptyQuote(fromToken.Symbol, toToken.Symbol), nil
	}

	rate, err := q.rateSource.GetRate(ctx, fromToken, toToken)
	if err != nil {
		return domain.Quote{}, err
	}

	outputAmount := inputAmount.Mul(rate)

	slippageFraction := options.SlippagePercent.Quo(oneHundredDec)

	return domain.Quote{
		From:            fromToken.Symbol,
		To:              toToken.Symbol,
		InputAmount:     inputAmount,
		OutputAmount:    outputAmount,
		FeeAmount:       outputAmount.Mul(q.feeRate),
		MinimumReceived: outputAmount.Mul(osmomath.OneDec().Sub(slippageFraction)),
		Rate:            rate,
		DisplayRate:     domain.FormatDisplayRate(fromToken.Symbol, toToken.Symbol, rate),
		PriceImpact:     q.priceImpact(inputAmount),
		SlippagePercent: options.SlippagePercent,
		InputValueUSD:   inputAmount.Mul(fromToken.PriceUSD),
		OutputValueUSD:  outputAmount.Mul(toToken.PriceUSD),
	}, nil
}

// SwitchTokens implements mvc.QuoteUsecase.
func (q *quoteUsecase) SwitchTokens(ctx context.Context, form domain.SwapForm, opts ...domain.QuoteOption) (domain.SwapForm, domain.Quote, error) {
	switched := form.Switched()

	fromAmount, err := domain.ParseDecimal("from amount", switched.FromAmount)
	if err != nil {
		return domain.SwapForm{}, domain.Quote{}, err
	}

	quote, err := q.GetQuote(ctx, switched.From, switched.To, fromAmount, opts...)
	if err != nil {
		return domain.SwapForm{}, domain.Quote{}, err
	}

	return switched, quote, nil
}

// priceImpact is a display heuristic that grows linearly with the input
// amount and saturates at 100%. It never changes the computed amounts.
func (q *quoteUsecase) priceImpact(inputAmount osmomath.Dec) osmomath.Dec {
	impact := inputAmount.Quo(q.priceImpactReferenceAmount)
	if impact.GT(osmomath.OneDec()) {
		return osmomath.OneDec()
	}
	return impact
}

func (q *quoteUsecase) validateSlippage(slippagePercent osmomath.Dec) error {
	if slippagePercent.IsNil() || slippagePercent.LT(q.minSlippagePercent) || slippagePercent.GT(q.maxSlippagePercent) {
		value := "nil"
		if !slippagePercent.IsNil() {
			value = slippagePercent.String()
		}
		return domain.SlippageOutOfRangeError{
			SlippagePercent: value,
			Min:             q.minSlippagePercent.String(),
			Max:             q.maxSlippagePercent.String(),
		}
	}
	return nil
}

func parseConfigDec(field, value string, defaultValue osmomath.Dec) (osmomath.Dec, error) {
	if value == "" {
		return defaultValue, nil
	}

	result, err := osmomath.NewDecFromStr(value)
	if err != nil {
		return osmomath.Dec{}, InvalidQuoteConfigError{Field: field, Value: value}
	}

	return result, nil
}
