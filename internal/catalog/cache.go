package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache keeps one built catalog per restaurant in redis. Misses and decode
// failures are both treated as a miss; the aggregator is the source of truth.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{
		client: client,
		prefix: "catalog:",
		ttl:    ttl,
		logger: logger,
	}
}

func (c *Cache) key(restaurantID string) string {
	return c.prefix + restaurantID
}

func (c *Cache) Get(ctx context.Context, restaurantID string) (map[string]Entry, bool) {
	val, err := c.client.Get(ctx, c.key(restaurantID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("catalog cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var entries map[string]Entry
	if err := json.Unmarshal([]byte(val), &entries); err != nil {
		c.logger.Warn("catalog cache decode failed", zap.Error(err))
		return nil, false
	}
	return entries, true
}

func (c *Cache) Set(ctx context.Context, restaurantID string, entries map[string]Entry) {
	data, err := json.Marshal(entries)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(restaurantID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", zap.Error(err))
	}
}

func (c *Cache) Invalidate(ctx context.Context, restaurantID string) {
	if err := c.client.Del(ctx, c.key(restaurantID)).Err(); err != nil {
		c.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
