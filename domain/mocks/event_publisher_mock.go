package mocks

import (
	"context"
	"sync"

	"github.com/temposwap/swapd/domain"
)

// EventPublisherMock records published events.
type EventPublisherMock struct {
	PublishFunc func(ctx context.Context, event domain.Event) error

	mu     sync.Mutex
	events []domain.Event
}

var _ domain.EventPublisher = &EventPublisherMock{}

func (m *EventPublisherMock) Publish(ctx context.Context, event domain.Event) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event)
	}
	return nil
}

// Events returns a copy of the events published so far.
func (m *EventPublisherMock) Events() []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]domain.Event, len(m.events))
	copy(result, m.events)
	return result
}

// EventTypes returns the types of the events published so far, in order.
func (m *EventPublisherMock) EventTypes() []domain.EventType {
	events := m.Events()
	result := make([]domain.EventType, 0, len(events))
	for _, event := range events {
		result = append(result, event.Type)
	}
	return result
}
