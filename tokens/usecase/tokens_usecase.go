package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mvc"
)

type tokensUseCase struct {
	// Tokens are never added or removed after construction, the mutex
	// only guards against future reloads.
	tokensMu       sync.RWMutex
	tokens         []domain.Token
	tokensBySymbol map[string]domain.Token

	// lower case symbol -> symbol
	lowerCaseSymbols map[string]string

	// from -> to -> rate, taken literally from config.
	pairRates map[string]map[string]osmomath.Dec
}

var _ mvc.TokensUsecase = &tokensUseCase{}

// NewTokensUsecase will create a new tokens use case object.
// Tokens keep the given order. Prices must be positive and symbols unique.
// pairRates may be nil.
func NewTokensUsecase(tokenConfigs []domain.TokenConfig, pairRates map[string]map[string]string) (mvc.TokensUsecase, error) {
	tokens, err := ParseTokens(tokenConfigs)
	if err != nil {
		return nil, err
	}

	tokensBySymbol := make(map[string]domain.Token, len(tokens))
	lowerCaseSymbols := make(map[string]string, len(tokens))
	for _, token := range tokens {
		tokensBySymbol[token.Symbol] = token
		lowerCaseSymbols[strings.ToLower(token.Symbol)] = token.Symbol
	}

	rates, err := parsePairRates(pairRates, lowerCaseSymbols)
	if err != nil {
		return nil, err
	}

	return &tokensUseCase{
		tokens:           tokens,
		tokensBySymbol:   tokensBySymbol,
		lowerCaseSymbols: lowerCaseSymbols,
		pairRates:        rates,
	}, nil
}

// ParseTokens converts config entries into validated tokens.
func ParseTokens(tokenConfigs []domain.TokenConfig) ([]domain.Token, error) {
	seen := make(map[string]struct{}, len(tokenConfigs))
	tokens := make([]domain.Token, 0, len(tokenConfigs))

	for _, tokenConfig := range tokenConfigs {
		if tokenConfig.Symbol == "" {
			return nil, InvalidTokenConfigError{Field: "symbol", Err: errors.New("symbol is empty")}
		}

		if _, ok := seen[tokenConfig.Symbol]; ok {
			return nil, DuplicateSymbolError{Symbol: tokenConfig.Symbol}
		}
		seen[tokenConfig.Symbol] = struct{}{}

		price, err := osmomath.NewDecFromStr(tokenConfig.PriceUSD)
		if err != nil {
			return nil, InvalidTokenConfigError{Symbol: tokenConfig.Symbol, Field: "price", Err: err}
		}
		if !price.IsPositive() {
			return nil, NonPositivePriceError{Symbol: tokenConfig.Symbol, Price: tokenConfig.PriceUSD}
		}

		initialBalance := osmomath.ZeroDec()
		if tokenConfig.InitialBalance != "" {
			initialBalance, err = osmomath.NewDecFromStr(tokenConfig.InitialBalance)
			if err != nil {
				return nil, InvalidTokenConfigError{Symbol: tokenConfig.Symbol, Field: "initial balance", Err: err}
			}
			if initialBalance.IsNegative() {
				return nil, InvalidTokenConfigError{Symbol: tokenConfig.Symbol, Field: "initial balance", Err: errors.New("balance is negative")}
			}
		}

		tokens = append(tokens, domain.Token{
			Symbol:         tokenConfig.Symbol,
			Name:           tokenConfig.Name,
			PriceUSD:       price,
			Color:          tokenConfig.Color,
			InitialBalance: initialBalance,
		})
	}

	return tokens, nil
}

// parsePairRates resolves symbols ignoring case since config loaders may lower case map keys.
func parsePairRates(pairRates map[string]map[string]string, lowerCaseSymbols map[string]string) (map[string]map[string]osmomath.Dec, error) {
	result := make(map[string]map[string]osmomath.Dec, len(pairRates))

	for fromKey, toRates := range pairRates {
		from, ok := lowerCaseSymbols[strings.ToLower(fromKey)]
		if !ok {
			return nil, UnknownRateSymbolError{Symbol: fromKey}
		}

		if _, ok := result[from]; !ok {
			result[from] = make(map[string]osmomath.Dec, len(toRates))
		}

		for toKey, rateStr := range toRates {
			to, ok := lowerCaseSymbols[strings.ToLower(toKey)]
			if !ok {
				return nil, UnknownRateSymbolError{Symbol: toKey}
			}

			rate, err := osmomath.NewDecFromStr(rateStr)
			if err != nil {
				return nil, InvalidTokenConfigError{Symbol: from, Field: "rate to " + to, Err: err}
			}
			if !rate.IsPositive() {
				return nil, NonPositivePriceError{Symbol: from + "/" + to, Price: rateStr}
			}

			result[from][to] = rate
		}
	}

	return result, nil
}

// GetToken implements mvc.TokensUsecase.
func (t *tokensUseCase) GetToken(ctx context.Context, symbol string) (domain.Token, error) {
	t.tokensMu.RLock()
	defer t.tokensMu.RUnlock()

	if token, ok := t.tokensBySymbol[symbol]; ok {
		return token, nil
	}

	if exactSymbol, ok := t.lowerCaseSymbols[strings.ToLower(symbol)]; ok {
		return t.tokensBySymbol[exactSymbol], nil
	}

	return domain.Token{}, domain.TokenNotFoundError{Symbol: symbol}
}

// GetAllTokens implements mvc.TokensUsecase.
func (t *tokensUseCase) GetAllTokens(ctx context.Context) []domain.Token {
	t.tokensMu.RLock()
	defer t.tokensMu.RUnlock()

	result := make([]domain.Token, len(t.tokens))
	copy(result, t.tokens)
	return result
}

// SearchTokens implements mvc.TokensUsecase.
func (t *tokensUseCase) SearchTokens(ctx context.Context, term string) []domain.Token {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return t.GetAllTokens(ctx)
	}

	t.tokensMu.RLock()
	defer t.tokensMu.RUnlock()

	result := make([]domain.Token, 0)
	for _, token := range t.tokens {
		if strings.Contains(strings.ToLower(token.Symbol), term) || strings.Contains(strings.ToLower(token.Name), term) {
			result = append(result, token)
		}
	}

	return result
}

// GetPrice implements mvc.TokensUsecase.
func (t *tokensUseCase) GetPrice(ctx context.Context, symbol string) (osmomath.Dec, error) {
	token, err := t.GetToken(ctx, symbol)
	if err != nil {
		return osmomath.Dec{}, err
	}

	return token.PriceUSD, nil
}

// GetPrices implements mvc.TokensUsecase.
func (t *tokensUseCase) GetPrices(ctx context.Context, symbols []string) (map[string]osmomath.Dec, error) {
	if len(symbols) == 0 {
		tokens := t.GetAllTokens(ctx)
		prices := make(map[string]osmomath.Dec, len(tokens))
		for _, token := range tokens {
			prices[token.Symbol] = token.PriceUSD
		}
		return prices, nil
	}

	prices := make(map[string]osmomath.Dec, len(symbols))
	for _, symbol := range symbols {
		token, err := t.GetToken(ctx, symbol)
		if err != nil {
			return nil, err
		}
		prices[token.Symbol] = token.PriceUSD
	}

	return prices, nil
}

// GetSeedBalances implements mvc.TokensUsecase.
func (t *tokensUseCase) GetSeedBalances(ctx context.Context) domain.Balances {
	t.tokensMu.RLock()
	defer t.tokensMu.RUnlock()

	balances := make(domain.Balances, len(t.tokens))
	for _, token := range t.tokens {
		balances[token.Symbol] = token.InitialBalance.Clone()
	}

	return balances
}

// GetPairRate implements mvc.TokensUsecase.
func (t *tokensUseCase) GetPairRate(ctx context.Context, from, to string) (osmomath.Dec, error) {
	t.tokensMu.RLock()
	defer t.tokensMu.RUnlock()

	toRates, ok := t.pairRates[from]
	if !ok {
		return osmomath.Dec{}, domain.RateNotFoundError{From: from, To: to}
	}

	rate, ok := toRates[to]
	if !ok {
		return osmomath.Dec{}, domain.RateNotFoundError{From: from, To: to}
	}

	return rate, nil
}
