package domain

import (
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// SwapStatus is the lifecycle state of a swap order.
//
// Quoted -> Submitted -> Settled
//
//	\-> Rejected
type SwapStatus string

const (
	SwapStatusQuoted    SwapStatus = "quoted"
	SwapStatusSubmitted SwapStatus = "submitted"
	SwapStatusSettled   SwapStatus = "settled"
	SwapStatusRejected  SwapStatus = "rejected"
)

// IsFinal returns true if no further transition is possible.
func (s SwapStatus) IsFinal() bool {
	return s == SwapStatusSettled || s == SwapStatusRejected
}

// SwapOrder tracks a single swap through its lifecycle.
type SwapOrder struct {
	ID      string     `json:"id"`
	Account string     `json:"account"`
	Status  SwapStatus `json:"status"`
	Quote   Quote      `json:"quote"`
	// Reason is set when the order is rejected.
	Reason      string    `json:"reason,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	SettledAt   time.Time `json:"settled_at,omitempty"`
}

// Transaction is a settled swap as recorded in the history.
type Transaction struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
	// @Type string
	FromAmount osmomath.Dec `json:"from_amount"`
	// @Type string
	ToAmount  osmomath.Dec `json:"to_amount"`
	Timestamp time.Time    `json:"timestamp"`
	Status    SwapStatus   `json:"status"`
}

// NewTransaction builds the history record for a settled order.
func NewTransaction(order SwapOrder) Transaction {
	return Transaction{
		ID:         order.ID,
		From:       order.Quote.From,
		To:         order.Quote.To,
		FromAmount: order.Quote.InputAmount,
		ToAmount:   order.Quote.OutputAmount,
		Timestamp:  order.SettledAt,
		Status:     SwapStatusSettled,
	}
}

// ApplySwap debits the input amount from the source token and credits the
// quoted output amount to the destination token.
// The given balances are not modified; a new map is returned.
// Returns InsufficientBalanceError if the source balance does not cover the input.
func ApplySwap(balances Balances, quote Quote) (Balances, error) {
	if quote.IsEmpty || !quote.InputAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if err := ValidateInputDenoms(quote.From, quote.To); err != nil {
		return nil, err
	}

	available := balances.Get(quote.From)
	if quote.InputAmount.GT(available) {
		return nil, InsufficientBalanceError{
			Symbol:    quote.From,
			Requested: quote.InputAmount.String(),
			Available: available.String(),
		}
	}

	result := balances.Clone()
	result[quote.From] = available.Sub(quote.InputAmount)
	result[quote.To] = result.Get(quote.To).Add(quote.OutputAmount)

	return result, nil
}

// SwapAction is the state of the primary swap button.
type SwapAction string

const (
	SwapActionConnectWallet       SwapAction = "connect_wallet"
	SwapActionEnterAmount         SwapAction = "enter_amount"
	SwapActionInsufficientBalance SwapAction = "insufficient_balance"
	SwapActionSwapNow             SwapAction = "swap_now"
	SwapActionProcessing          SwapAction = "processing"
)

// Label returns the button caption.
func (a SwapAction) Label() string {
	switch a {
	case SwapActionConnectWallet:
		return "Connect Wallet"
	case SwapActionEnterAmount:
		return "Enter Amount"
	case SwapActionInsufficientBalance:
		return "Insufficient Balance"
	case SwapActionProcessing:
		return "Processing..."
	default:
		return "Swap Now"
	}
}

// SwapPreview is a quote along with the resulting button state for an account.
type SwapPreview struct {
	Quote  Quote      `json:"quote"`
	Action SwapAction `json:"action"`
	Label  string     `json:"label"`
	// Enabled is true only when the swap can be submitted.
	Enabled bool `json:"enabled"`
}
