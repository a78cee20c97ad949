package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"consentd/internal/consent"
	"consentd/internal/consent/metrics"
	"consentd/pkg/platform/sentinel"
)

// RedisCache mirrors consent records in Redis under consent:{customer_id}.
// Entries are invalidated, never updated, after a write: the next read is
// forced to repopulate from the durable store.
type RedisCache struct {
	client  *redis.Client
	metrics *metrics.Metrics
}

// NewRedisCache constructs a Redis-backed consent cache.
func NewRedisCache(client *redis.Client, m *metrics.Metrics) *RedisCache {
	return &RedisCache{client: client, metrics: m}
}

// Get returns the cached record or sentinel.ErrNotFound on miss. A payload
// that fails to deserialize is dropped and reported as a miss; cached state is
// disposable, the store has the truth.
func (c *RedisCache) Get(ctx context.Context, customerID string) (*consent.Record, error) {
	payload, err := c.client.Get(ctx, consent.CacheKey(customerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.RecordCacheMiss()
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consent cache get: %w", err)
	}

	var record consent.Record
	if err := json.Unmarshal(payload, &record); err != nil {
		c.metrics.RecordCacheMiss()
		_ = c.client.Del(ctx, consent.CacheKey(customerID)).Err()
		return nil, sentinel.ErrNotFound
	}
	c.metrics.RecordCacheHit()
	return &record, nil
}

// Set stores the record with the given TTL.
func (c *RedisCache) Set(ctx context.Context, record *consent.Record, ttl time.Duration) error {
	if record == nil {
		return fmt.Errorf("consent record is required")
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("consent cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, consent.CacheKey(record.CustomerID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("consent cache set: %w", err)
	}
	return nil
}

// Invalidate deletes the customer's cache entry. Deleting an absent entry
// succeeds.
func (c *RedisCache) Invalidate(ctx context.Context, customerID string) error {
	if err := c.client.Del(ctx, consent.CacheKey(customerID)).Err(); err != nil {
		return fmt.Errorf("consent cache invalidate: %w", err)
	}
	return nil
}
