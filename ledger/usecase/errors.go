package usecase

import (
	"errors"
	"fmt"
)

// ErrSettlementAborted is the rejection reason for swaps pending at shutdown.
var ErrSettlementAborted = errors.New("settlement aborted: ledger is shutting down")

// InvalidSettlementDelayError is returned when the configured delay bounds are inconsistent.
type InvalidSettlementDelayError struct {
	MinMs int
	MaxMs int
}

// Error implements the error interface.
func (e InvalidSettlementDelayError) Error() string {
	return fmt.Sprintf("settlement delay bounds are invalid, min (%d ms), max (%d ms)", e.MinMs, e.MaxMs)
}
