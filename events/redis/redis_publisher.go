package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/temposwap/swapd/domain"
	"github.com/temposwap/swapd/log"
)

const (
	sinkName = "redis"

	// broadcastChannelSuffix is used for events not tied to an account.
	broadcastChannelSuffix = "broadcast"
)

type redisPublisher struct {
	client        *redis.Client
	channelPrefix string
}

var _ domain.EventSink = &redisPublisher{}

// NewRedisPublisher creates an event sink publishing each event as JSON
// on the channel of its account.
func NewRedisPublisher(client *redis.Client, channelPrefix string) domain.EventSink {
	return &redisPublisher{
		client:        client,
		channelPrefix: channelPrefix,
	}
}

// Channel returns the pub/sub channel events of account are published on.
func Channel(channelPrefix, account string) string {
	if account == "" {
		account = broadcastChannelSuffix
	}
	return channelPrefix + "." + account
}

// Publish implements domain.EventPublisher.
func (r *redisPublisher) Publish(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return r.client.Publish(ctx, Channel(r.channelPrefix, event.Account), data).Err()
}

// Name implements domain.EventSink.
func (r *redisPublisher) Name() string {
	return sinkName
}

// Connect creates a client for addr and pings it, making at most maxRetries attempts
// spaced by backoff.
func Connect(ctx context.Context, addr string, maxRetries int, backoff time.Duration, logger log.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		// deliveries carry a deadline, honour it on the connection
		ContextTimeoutEnabled: true,
	})

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = client.Ping(ctx).Err(); err == nil {
			return client, nil
		}

		logger.Warn("failed to ping redis", zap.String("addr", addr), zap.Int("attempt", attempt), zap.Error(err))

		if attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			client.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	client.Close()
	return nil, fmt.Errorf("redis at %s unreachable after %d attempts: %w", addr, maxRetries, err)
}
