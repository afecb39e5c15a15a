package domain

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
)

// MaxInitRetries caps how many times a failing startup step is attempted.
const MaxInitRetries = 3

// ParseBooleanQueryParam parses a boolean query parameter.
// Returns false if the parameter is not present.
// Errors if the value is not a valid boolean.
func ParseBooleanQueryParam(c echo.Context, paramName string) (paramValue bool, err error) {
	paramValueStr := c.QueryParam(paramName)
	if paramValueStr != "" {
		paramValue, err = strconv.ParseBool(paramValueStr)
		if err != nil {
			return false, err
		}
	}

	return paramValue, nil
}

// ParseDecimal parses a decimal amount given by the user.
// Surrounding whitespace and thousands separators are ignored.
// An empty string parses as zero.
func ParseDecimal(paramName, value string) (osmomath.Dec, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if cleaned == "" {
		return osmomath.ZeroDec(), nil
	}

	result, err := osmomath.NewDecFromStr(cleaned)
	if err != nil {
		return osmomath.Dec{}, InvalidDecimalError{Param: paramName, Value: value}
	}

	return result, nil
}

// ValidateInputDenoms returns nil of two denoms are valid, otherwise an error.
// This is to be used as a parameter validation for queries.
// For example, token in denom must not equal token out denom for quotes.
func ValidateInputDenoms(denomA, denomB string) error {
	if denomA == denomB {
		return SameDenomError{
			DenomA: denomA,
			DenomB: denomB,
		}
	}

	return nil
}

// SplitAndTrim splits a string by a separator and trims the resulting strings.
// Empty entries are dropped.
func SplitAndTrim(s, sep string) []string {
	var result []string
	for _, val := range strings.Split(s, sep) {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
