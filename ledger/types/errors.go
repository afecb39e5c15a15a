package types

import (
	"fmt"

	"github.com/temposwap/swapd/domain"
)

// Handler Errors
var (
	ErrSymbolNotSpecified = fmt.Errorf("%w: symbol is required", domain.ErrBadParamInput)
	ErrInvalidAsync       = fmt.Errorf("%w: async must be a boolean", domain.ErrBadParamInput)
)
