// Package notifier carries the per-restaurant catalog invalidation signal
// between admin sessions. One channel per restaurant, one opaque payload:
// any catalog change invalidates the whole aggregation, so no entity-level
// granularity is transmitted. Delivery is best effort with no replay; a
// session that was not listening at publish time relies on its next reload.
package notifier

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const invalidatePayload = "invalidate"

// Publisher is the write side; entity services depend on it alone.
type Publisher interface {
	Publish(ctx context.Context, restaurantID string) error
}

type Notifier interface {
	Publisher
	Subscribe(ctx context.Context, restaurantID string) (Subscription, error)
}

type Subscription interface {
	// Invalidations signals each received invalidation. Signals may be
	// coalesced; subscribers rebuild the whole catalog either way.
	Invalidations() <-chan struct{}
	Close() error
}

type RedisNotifier struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

func NewRedisNotifier(client *redis.Client, logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		prefix: "catalog:invalidate:",
		logger: logger,
	}
}

func (n *RedisNotifier) channel(restaurantID string) string {
	return n.prefix + restaurantID
}

func (n *RedisNotifier) Publish(ctx context.Context, restaurantID string) error {
	if err := n.client.Publish(ctx, n.channel(restaurantID), invalidatePayload).Err(); err != nil {
		return fmt.Errorf("publish invalidation: %w", err)
	}
	return nil
}

func (n *RedisNotifier) Subscribe(ctx context.Context, restaurantID string) (Subscription, error) {
	pubsub := n.client.Subscribe(ctx, n.channel(restaurantID))
	// Force the SUBSCRIBE round-trip so a broken connection fails here,
	// not silently in the reader goroutine.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe to invalidations: %w", err)
	}

	sub := &redisSubscription{
		pubsub: pubsub,
		ch:     make(chan struct{}, 1),
	}
	go sub.forward(pubsub.Channel(), n.logger)
	return sub, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	ch     chan struct{}
}

func (s *redisSubscription) forward(msgs <-chan *redis.Message, logger *zap.Logger) {
	for range msgs {
		select {
		case s.ch <- struct{}{}:
		default:
			// A pending signal already invalidates everything.
		}
	}
	close(s.ch)
	logger.Debug("invalidation subscription closed")
}

func (s *redisSubscription) Invalidations() <-chan struct{} { return s.ch }

func (s *redisSubscription) Close() error { return s.pubsub.Close() }
