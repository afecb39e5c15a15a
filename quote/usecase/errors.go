package usecase

import "fmt"

// UnsupportedRateSourceError is returned for an unknown rate source in config.
type UnsupportedRateSourceError struct {
	Source string
}

// Error implements the error interface.
func (e UnsupportedRateSourceError) Error() string {
	return fmt.Sprintf("rate source (%s) is not supported", e.Source)
}

// InvalidQuoteConfigError is returned when a quote config value cannot be parsed.
type InvalidQuoteConfigError struct {
	Field string
	Value string
}

// Error implements the error interface.
func (e InvalidQuoteConfigError) Error() string {
	return fmt.Sprintf("quote config %s (%s) is invalid", e.Field, e.Value)
}
