package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/temposwap/swapd/domain"
	eventsredis "github.com/temposwap/swapd/events/redis"
	"github.com/temposwap/swapd/log"
)

const (
	channelPrefix = "swapd.events"
	account       = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
)

func TestChannel(t *testing.T) {
	require.Equal(t, "swapd.events."+account, eventsredis.Channel(channelPrefix, account))
	require.Equal(t, "swapd.events.broadcast", eventsredis.Channel(channelPrefix, ""))
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	subscription := client.Subscribe(ctx, eventsredis.Channel(channelPrefix, account))
	defer subscription.Close()

	// wait for the subscription to be registered
	_, err := subscription.Receive(ctx)
	require.NoError(t, err)

	publisher := eventsredis.NewRedisPublisher(client, channelPrefix)
	require.Equal(t, "redis", publisher.Name())

	event := domain.NewEvent(domain.SwapSettledEventType, account, map[string]string{"id": "order-1"})
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case msg := <-subscription.Channel():
		var received domain.Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &received))
		require.Equal(t, domain.SwapSettledEventType, received.Type)
		require.Equal(t, account, received.Account)
		require.Equal(t, map[string]any{"id": "order-1"}, received.Payload)
	case <-time.After(5 * time.Second):
		t.Fatal("event was not received")
	}
}

func TestPublish_ServerDown(t *testing.T) {
	server := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	defer client.Close()

	server.Close()

	publisher := eventsredis.NewRedisPublisher(client, channelPrefix)
	require.Error(t, publisher.Publish(context.Background(), domain.NewEvent(domain.BalancesUpdatedEventType, account, nil)))
}

func TestConnect(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)

	client, err := eventsredis.Connect(ctx, server.Addr(), domain.MaxInitRetries, time.Millisecond, log.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, client.Close())

	addr := server.Addr()
	server.Close()

	_, err = eventsredis.Connect(ctx, addr, domain.MaxInitRetries, time.Millisecond, log.NewNopLogger())
	require.ErrorContains(t, err, "after 3 attempts")
}
