// Package events fans state change notifications out to the configured sinks.
package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/log"
)

const (
	defaultSinkBufferSize = 256
	defaultSinkTimeout    = time.Second
)

// Bus is an event publisher delivering every event to all registered sinks.
// Each sink is served by its own goroutine so that a slow sink never delays
// the publisher or the other sinks.
type Bus struct {
	workers []*sinkWorker
	closed  bool
	mu      sync.RWMutex
	wg      sync.WaitGroup

	bufferSize  int
	sinkTimeout time.Duration

	logger log.Logger
}

type sinkWorker struct {
	sink   domain.EventSink
	events chan domain.Event
}

var _ domain.EventPublisher = &Bus{}

// NewBus creates a bus over the given sinks.
// Up to bufferSize events are queued per sink, each delivery is bounded by sinkTimeout.
func NewBus(bufferSize int, sinkTimeout time.Duration, logger log.Logger, sinks ...domain.EventSink) *Bus {
	if bufferSize <= 0 {
		bufferSize = defaultSinkBufferSize
	}
	if sinkTimeout <= 0 {
		sinkTimeout = defaultSinkTimeout
	}

	b := &Bus{
		bufferSize:  bufferSize,
		sinkTimeout: sinkTimeout,
		logger:      logger,
	}

	for _, sink := range sinks {
		b.RegisterSink(sink)
	}

	return b
}

// RegisterSink adds a sink. Events published before registration are not replayed.
// Sinks registered after Close are ignored.
func (b *Bus) RegisterSink(sink domain.EventSink) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	worker := &sinkWorker{
		sink:   sink,
		events: make(chan domain.Event, b.bufferSize),
	}
	b.workers = append(b.workers, worker)

	b.wg.Add(1)
	go b.run(worker)
}

// Publish implements domain.EventPublisher.
// Events are queued and delivered in order per sink. When a sink's queue is full
// the event is dropped for that sink. Failures are logged and counted, never returned.
func (b *Bus) Publish(ctx context.Context, event domain.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}

	for _, worker := range b.workers {
		select {
		case worker.events <- event:
		default:
			domain.SwapdEventsDroppedCounter.WithLabelValues(worker.sink.Name()).Inc()
			b.logger.Warn("dropping event for slow sink", zap.String("sink", worker.sink.Name()), zap.String("type", string(event.Type)), zap.String("account", event.Account))
		}
	}

	return nil
}

// Close stops accepting events and waits until the queued ones are delivered
// or ctx is done.
func (b *Bus) Close(ctx context.Context) error {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		for _, worker := range b.workers {
			close(worker.events)
		}
	}
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bus) run(worker *sinkWorker) {
	defer b.wg.Done()

	for event := range worker.events {
		b.deliver(worker.sink, event)
	}
}

func (b *Bus) deliver(sink domain.EventSink, event domain.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), b.sinkTimeout)
	defer cancel()

	if err := sink.Publish(ctx, event); err != nil {
		domain.SwapdEventSinkErrorsCounter.WithLabelValues(sink.Name()).Inc()
		b.logger.Warn("failed to deliver event", zap.String("sink", sink.Name()), zap.String("type", string(event.Type)), zap.String("account", event.Account), zap.Error(err))
	}
}
