package types

import (
	"fmt"

	"github.com/temposwap/swapd/domain"
)

// Handler Errors
var (
	ErrFromNotSpecified = fmt.Errorf("%w: from is required", domain.ErrBadParamInput)
	ErrToNotSpecified   = fmt.Errorf("%w: to is required", domain.ErrBadParamInput)
)
