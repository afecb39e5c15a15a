package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/domain/mocks"
	"github.com/temposwap/swapd/events"
	"github.com/temposwap/swapd/log"
)

type sink struct {
	mocks.EventPublisherMock
	name string
}

func (s *sink) Name() string {
	return s.name
}

// stalledSink blocks every delivery until release is closed.
func stalledSink(release <-chan struct{}) *sink {
	s := &sink{name: "stalled"}
	s.PublishFunc = func(ctx context.Context, event domain.Event) error {
		<-release
		return nil
	}
	return s
}

func newEvent(eventType domain.EventType) domain.Event {
	return domain.NewEvent(eventType, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", nil)
}

func closeBus(t *testing.T, bus *events.Bus) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, bus.Close(ctx))
}

func TestBus_FansOutDespiteFailures(t *testing.T) {
	failing := &sink{name: "failing"}
	failing.PublishFunc = func(ctx context.Context, event domain.Event) error {
		return errors.New("sink down")
	}
	healthy := &sink{name: "healthy"}

	bus := events.NewBus(8, time.Second, log.NewNopLogger(), failing)
	bus.RegisterSink(healthy)

	event := newEvent(domain.SwapSettledEventType)
	require.NoError(t, bus.Publish(context.Background(), event))

	closeBus(t, bus)

	require.Equal(t, []domain.Event{event}, failing.Events())
	require.Equal(t, []domain.Event{event}, healthy.Events())
}

func TestBus_StalledSinkDoesNotBlockPublisher(t *testing.T) {
	release := make(chan struct{})
	stalled := stalledSink(release)
	healthy := &sink{name: "healthy"}

	bus := events.NewBus(8, time.Minute, log.NewNopLogger(), stalled, healthy)
	defer closeBus(t, bus)
	defer close(release)

	published := []domain.Event{
		newEvent(domain.SwapSubmittedEventType),
		newEvent(domain.SwapSettledEventType),
		newEvent(domain.BalancesUpdatedEventType),
	}

	start := time.Now()
	for _, event := range published {
		require.NoError(t, bus.Publish(context.Background(), event))
	}
	require.Less(t, time.Since(start), time.Second)

	// the healthy sink is not held up by the stalled one
	require.Eventually(t, func() bool {
		return len(healthy.Events()) == len(published)
	}, 5*time.Second, 5*time.Millisecond)
	require.Equal(t, published, healthy.Events())
}

func TestBus_DropsWhenQueueIsFull(t *testing.T) {
	release := make(chan struct{})
	stalled := stalledSink(release)

	bus := events.NewBus(1, time.Minute, log.NewNopLogger(), stalled)

	first := newEvent(domain.SwapSubmittedEventType)
	require.NoError(t, bus.Publish(context.Background(), first))

	// wait for the worker to pick up the first event and stall on it
	require.Eventually(t, func() bool {
		return len(stalled.Events()) == 1
	}, 5*time.Second, 5*time.Millisecond)

	queued := newEvent(domain.SwapSettledEventType)
	require.NoError(t, bus.Publish(context.Background(), queued))

	dropped := newEvent(domain.BalancesUpdatedEventType)
	require.NoError(t, bus.Publish(context.Background(), dropped))

	close(release)
	closeBus(t, bus)

	require.Equal(t, []domain.Event{first, queued}, stalled.Events())
}

func TestBus_DeliveryIsBounded(t *testing.T) {
	deliveryErrs := make(chan error, 1)

	hanging := &sink{name: "hanging"}
	hanging.PublishFunc = func(ctx context.Context, event domain.Event) error {
		<-ctx.Done()
		deliveryErrs <- ctx.Err()
		return ctx.Err()
	}

	bus := events.NewBus(8, 20*time.Millisecond, log.NewNopLogger(), hanging)
	require.NoError(t, bus.Publish(context.Background(), newEvent(domain.SwapSettledEventType)))

	closeBus(t, bus)

	require.ErrorIs(t, <-deliveryErrs, context.DeadlineExceeded)
}

func TestBus_Close(t *testing.T) {
	recorder := &sink{name: "recorder"}

	bus := events.NewBus(8, time.Second, log.NewNopLogger(), recorder)
	closeBus(t, bus)

	// publishing and registering after close are no-ops
	require.NoError(t, bus.Publish(context.Background(), newEvent(domain.SwapSettledEventType)))
	bus.RegisterSink(&sink{name: "late"})
	require.Empty(t, recorder.Events())

	// closing twice is fine
	closeBus(t, bus)
}

func TestBus_CloseHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	bus := events.NewBus(8, time.Minute, log.NewNopLogger(), stalledSink(release))
	require.NoError(t, bus.Publish(context.Background(), newEvent(domain.SwapSettledEventType)))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, bus.Close(ctx), context.DeadlineExceeded)
}

func TestBus_NoSinks(t *testing.T) {
	bus := events.NewBus(0, 0, log.NewNopLogger())
	require.NoError(t, bus.Publish(context.Background(), newEvent(domain.BalancesUpdatedEventType)))
	closeBus(t, bus)
}
