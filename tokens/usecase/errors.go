package usecase

import "fmt"

// DuplicateSymbolError represents error type for when the same symbol
// is configured more than once.
type DuplicateSymbolError struct {
	Symbol string
}

// Error implements the error interface.
func (e DuplicateSymbolError) Error() string {
	return fmt.Sprintf("token symbol (%s) is configured more than once", e.Symbol)
}

// NonPositivePriceError represents error type for when a token price is zero or negative.
type NonPositivePriceError struct {
	Symbol string
	Price  string
}

// Error implements the error interface.
func (e NonPositivePriceError) Error() string {
	return fmt.Sprintf("price (%s) for token (%s) must be positive", e.Price, e.Symbol)
}

// InvalidTokenConfigError represents error type for when a token entry cannot be parsed.
type InvalidTokenConfigError struct {
	Symbol string
	Field  string
	Err    error
}

// Error implements the error interface.
func (e InvalidTokenConfigError) Error() string {
	return fmt.Sprintf("token (%s) has invalid %s: %v", e.Symbol, e.Field, e.Err)
}

// Unwrap returns the parse error.
func (e InvalidTokenConfigError) Unwrap() error {
	return e.Err
}

// UnknownRateSymbolError represents error type for when the pair table
// references a symbol missing from the registry.
type UnknownRateSymbolError struct {
	Symbol string
}

// Error implements the error interface.
func (e UnknownRateSymbolError) Error() string {
	return fmt.Sprintf("rate table references unknown token (%s)", e.Symbol)
}
