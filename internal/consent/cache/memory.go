package cache

import (
	"context"
	"sync"
	"time"

	"consentd/internal/consent"
	"consentd/pkg/platform/sentinel"
)

// MemoryCache is a TTL map for unit tests and cache-less local runs.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   func() time.Time
}

type memoryEntry struct {
	record    consent.Record
	expiresAt time.Time
}

// MemoryCacheOption configures a MemoryCache instance.
type MemoryCacheOption func(*MemoryCache)

// WithMemoryCacheClock sets the clock function for testability.
func WithMemoryCacheClock(clock func() time.Time) MemoryCacheOption {
	return func(c *MemoryCache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewMemoryCache constructs an in-memory consent cache.
func NewMemoryCache(opts ...MemoryCacheOption) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *MemoryCache) Get(ctx context.Context, customerID string) (*consent.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	entry, ok := c.entries[consent.CacheKey(customerID)]
	c.mu.RUnlock()
	if !ok || c.clock().After(entry.expiresAt) {
		return nil, sentinel.ErrNotFound
	}
	copied := entry.record
	return &copied, nil
}

func (c *MemoryCache) Set(ctx context.Context, record *consent.Record, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[consent.CacheKey(record.CustomerID)] = memoryEntry{
		record:    *record,
		expiresAt: c.clock().Add(ttl),
	}
	return nil
}

func (c *MemoryCache) Invalidate(ctx context.Context, customerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, consent.CacheKey(customerID))
	return nil
}
