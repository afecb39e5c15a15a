package domain

import (
	"context"
	"time"
)

// EventType names a state change notification.
type EventType string

const (
	WalletConnectedEventType      EventType = "wallet.connected"
	WalletDisconnectedEventType   EventType = "wallet.disconnected"
	WalletAccountChangedEventType EventType = "wallet.account_changed"
	WalletChainChangedEventType   EventType = "wallet.chain_changed"
	SwapSubmittedEventType        EventType = "swap.submitted"
	SwapSettledEventType          EventType = "swap.settled"
	SwapRejectedEventType         EventType = "swap.rejected"
	BalancesUpdatedEventType      EventType = "balances.updated"
)

// Event is a state change notification for an account.
type Event struct {
	Type      EventType `json:"type"`
	Account   string    `json:"account"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(eventType EventType, account string, payload any) Event {
	return Event{
		Type:      eventType,
		Account:   account,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// EventPublisher delivers events to subscribers.
// Implementations must not block the caller on slow subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// EventSink is a single destination fanned out to by the event bus.
type EventSink interface {
	EventPublisher
	// Name identifies the sink in logs and metrics.
	Name() string
}
