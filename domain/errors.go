package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")

	// ErrInvalidAmount is returned when a swap is attempted with a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrAccountNotConnected is returned when operating on an account with no ledger state.
	ErrAccountNotConnected = errors.New("account is not connected")
	// ErrSwapInFlight is returned when an account already has a pending swap.
	ErrSwapInFlight = errors.New("a swap is already in progress for this account")
	// ErrOrderNotFound is returned when looking up an unknown or evicted order.
	ErrOrderNotFound = errors.New("swap order not found")

	// ErrProviderUnavailable is returned when no wallet provider is injected.
	// This is a degraded state, the UI stays usable without a connection.
	ErrProviderUnavailable = errors.New("wallet provider is not available, please install a wallet extension")
	// ErrUserRejected is returned when the user declines the connection request.
	ErrUserRejected = errors.New("user rejected the request")
	// ErrNoAccounts is returned when the provider authorized zero accounts.
	ErrNoAccounts = errors.New("wallet returned no accounts")
)

// GetStatusCode returns status code given error
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		tokenNotFoundErr  TokenNotFoundError
		rateNotFoundErr   RateNotFoundError
		insufficientErr   InsufficientBalanceError
		sameDenomErr      SameDenomError
		slippageErr       SlippageOutOfRangeError
		invalidAddressErr InvalidAddressError
		invalidPercentErr InvalidPercentageError
		invalidDecimalErr InvalidDecimalError
	)

	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrOrderNotFound),
		errors.As(err, &tokenNotFoundErr),
		errors.As(err, &rateNotFoundErr):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrSwapInFlight):
		return http.StatusConflict
	case errors.Is(err, ErrBadParamInput),
		errors.Is(err, ErrInvalidAmount),
		errors.As(err, &sameDenomErr),
		errors.As(err, &slippageErr),
		errors.As(err, &invalidAddressErr),
		errors.As(err, &invalidPercentErr),
		errors.As(err, &invalidDecimalErr):
		return http.StatusBadRequest
	case errors.As(err, &insufficientErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrAccountNotConnected):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUserRejected):
		return http.StatusForbidden
	case errors.Is(err, ErrProviderUnavailable),
		errors.Is(err, ErrNoAccounts):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type SameDenomError struct {
	DenomA string
	DenomB string
}

func (e SameDenomError) Error() string {
	return fmt.Sprintf("Value (%s) cannot be the same as (%s)", e.DenomA, e.DenomB)
}

// TokenNotFoundError is returned for a symbol missing from the registry.
type TokenNotFoundError struct {
	Symbol string
}

func (e TokenNotFoundError) Error() string {
	return fmt.Sprintf("token (%s) is not found in the registry", e.Symbol)
}

// RateNotFoundError is returned when the pair table has no entry for the direction requested.
type RateNotFoundError struct {
	From string
	To   string
}

func (e RateNotFoundError) Error() string {
	return fmt.Sprintf("rate from (%s) to (%s) is not configured", e.From, e.To)
}

type InsufficientBalanceError struct {
	Symbol    string
	Requested string
	Available string
}

func (e InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: requested (%s), available (%s)", e.Symbol, e.Requested, e.Available)
}

type SlippageOutOfRangeError struct {
	SlippagePercent string
	Min             string
	Max             string
}

func (e SlippageOutOfRangeError) Error() string {
	return fmt.Sprintf("slippage (%s%%) must be between (%s%%) and (%s%%)", e.SlippagePercent, e.Min, e.Max)
}

type InvalidAddressError struct {
	Address string
}

func (e InvalidAddressError) Error() string {
	return fmt.Sprintf("address (%s) is not a valid hex account address", e.Address)
}

// InvalidPercentageError is returned for a percentage that is not an integer in [1, 100].
type InvalidPercentageError struct {
	Percent string
}

func (e InvalidPercentageError) Error() string {
	return fmt.Sprintf("percentage (%s) must be an integer between 1 and 100", e.Percent)
}

// InvalidDecimalError is returned when a request parameter is not a decimal number.
type InvalidDecimalError struct {
	Param string
	Value string
}

func (e InvalidDecimalError) Error() string {
	return fmt.Sprintf("%s (%s) is not a valid decimal", e.Param, e.Value)
}
