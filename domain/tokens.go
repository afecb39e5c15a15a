package domain

import (
	"sort"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// Token represents the token's domain model
type Token struct {
	// Symbol is the unique, case-sensitive ticker.
	Symbol string `json:"symbol"`
	// Name is the human readable name.
	Name string `json:"name"`
	// PriceUSD is the static USD price.
	// @Type string
	PriceUSD osmomath.Dec `json:"price_usd"`
	// Color is the display color in hex.
	Color string `json:"color"`
	// InitialBalance is the balance credited to a freshly connected account.
	// @Type string
	InitialBalance osmomath.Dec `json:"initial_balance"`
}

// Balances maps token symbol to the held amount.
type Balances map[string]osmomath.Dec

// Get returns the balance for symbol, zero if absent.
func (b Balances) Get(symbol string) osmomath.Dec {
	amount, ok := b[symbol]
	if !ok {
		return osmomath.ZeroDec()
	}
	return amount
}

// Clone returns a copy that can be mutated without affecting b.
func (b Balances) Clone() Balances {
	result := make(Balances, len(b))
	for symbol, amount := range b {
		result[symbol] = amount.Clone()
	}
	return result
}

// Symbols returns the symbols held, sorted.
func (b Balances) Symbols() []string {
	symbols := make([]string, 0, len(b))
	for symbol := range b {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// TokenValue is the USD valuation of a single holding.
type TokenValue struct {
	Symbol string `json:"symbol"`
	// @Type string
	Balance osmomath.Dec `json:"balance"`
	// @Type string
	PriceUSD osmomath.Dec `json:"price_usd"`
	// @Type string
	ValueUSD osmomath.Dec `json:"value_usd"`
}

// Portfolio is the USD valuation of an account's holdings.
type Portfolio struct {
	Account string       `json:"account"`
	Tokens  []TokenValue `json:"tokens"`
	// @Type string
	TotalValueUSD osmomath.Dec `json:"total_value_usd"`
}
