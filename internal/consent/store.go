package consent

import (
	"context"
	"time"
)

// CacheKey returns the cache key for a customer's consent record.
func CacheKey(customerID string) string {
	return "consent:" + customerID
}

// Store is the durable source of truth for consent records, keyed uniquely by
// customer ID. Absence is reported as sentinel.ErrNotFound, never as a nil
// record.
type Store interface {
	// GetByCustomer returns the customer's record or sentinel.ErrNotFound.
	GetByCustomer(ctx context.Context, customerID string) (*Record, error)
	// Upsert creates the record or mutates it in place, bumping Version and
	// UpdatedAt on update. It returns the committed row.
	Upsert(ctx context.Context, record *Record) (*Record, error)
}

// Cache is a best-effort TTL projection of the store. It is an optimization,
// never a correctness dependency: every method may fail without affecting the
// outcome of a consent decision.
type Cache interface {
	// Get returns the cached record or sentinel.ErrNotFound on miss.
	// A corrupt entry is reported as a miss.
	Get(ctx context.Context, customerID string) (*Record, error)
	// Set stores the record under CacheKey(customerID) for ttl.
	Set(ctx context.Context, record *Record, ttl time.Duration) error
	// Invalidate deletes the entry so the next read repopulates from the
	// store. Deleting an absent entry succeeds.
	Invalidate(ctx context.Context, customerID string) error
}
