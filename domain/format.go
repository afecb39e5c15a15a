package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/osmosis-labs/osmosis/osmomath"
)

var (
	oneMillion  = osmomath.NewDec(1_000_000)
	oneThousand = osmomath.NewDec(1_000)
)

// FormatNumber renders an amount the way the swap card displays balances:
// millions and thousands are abbreviated with two decimals, amounts of at least
// one use two decimals, and smaller amounts keep up to six decimals.
func FormatNumber(amount osmomath.Dec) string {
	if amount.IsNil() || amount.IsZero() {
		return "0.00"
	}

	switch {
	case amount.GTE(oneMillion):
		return formatFixed(amount.Quo(oneMillion), 2) + "M"
	case amount.GTE(oneThousand):
		return formatFixed(amount.Quo(oneThousand), 2) + "K"
	case amount.GTE(osmomath.OneDec()):
		return formatFixed(amount, 2)
	default:
		return trimFractionZeros(formatFixed(amount, 6), 2)
	}
}

// FormatRate renders a rate with six fixed decimals.
func FormatRate(rate osmomath.Dec) string {
	return formatFixed(rate, 6)
}

// FormatDisplayRate returns "1 FROM = r TO".
func FormatDisplayRate(from, to string, rate osmomath.Dec) string {
	return fmt.Sprintf("1 %s = %s %s", from, FormatRate(rate), to)
}

func formatFixed(amount osmomath.Dec, decimals int) string {
	return strconv.FormatFloat(amount.MustFloat64(), 'f', decimals, 64)
}

// trimFractionZeros drops trailing zeros while keeping at least minDecimals.
func trimFractionZeros(s string, minDecimals int) string {
	dot := strings.IndexByte(s, '.')
	if dot == -1 {
		return s
	}

	end := len(s)
	for end > dot+1+minDecimals && s[end-1] == '0' {
		end--
	}
	return s[:end]
}
