// Package redis relays job events between instances over Redis pub/sub.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/irishmetals/skipdispatch/internal/domain/model"
)

// DefaultChannel is the pub/sub channel used when none is configured.
const DefaultChannel = "skipdispatch:job-events"

// Broadcaster receives relayed events; events.Hub satisfies it.
type Broadcaster interface {
	BroadcastRaw(payload []byte)
}

// EventBus publishes job events to a Redis channel and relays the channel
// into a local Broadcaster, so every instance's websocket clients see every
// instance's events.
type EventBus struct {
	client  redis.UniversalClient
	channel string
	logger  *slog.Logger
}

// NewEventBus creates an EventBus. An empty channel uses DefaultChannel.
func NewEventBus(client redis.UniversalClient, channel string, logger *slog.Logger) *EventBus {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventBus{
		client:  client,
		channel: channel,
		logger:  logger.With("component", "event_bus", "channel", channel),
	}
}

// Publish implements core.JobEventPublisher.
func (b *EventBus) Publish(ctx context.Context, event model.JobEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal job event: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Relay subscribes to the channel and forwards each payload to dst until ctx
// is done. go-redis resubscribes on its own after connection loss.
func (b *EventBus) Relay(ctx context.Context, dst Broadcaster) error {
	if dst == nil {
		return errors.New("relay destination is required")
	}
	sub := b.client.Subscribe(ctx, b.channel)
	defer func() {
		if err := sub.Close(); err != nil {
			b.logger.Warn("close subscription", "error", err)
		}
	}()

	// Wait for the subscription confirmation so callers know events published
	// after Relay starts will be seen.
	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("redis subscribe: %w", err)
	}
	b.logger.Info("relaying job events")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			dst.BroadcastRaw([]byte(msg.Payload))
		}
	}
}
