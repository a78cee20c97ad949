package store

import (
	"context"
	"sync"
	"time"

	"consentd/internal/consent"
	"consentd/pkg/platform/sentinel"
)

// MemoryStore keeps consent records in memory for unit tests and local
// development. Semantics mirror PostgresStore: upsert preserves granted_at
// and bumps version.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]consent.Record
	clock   Clock
}

// MemoryOption configures a MemoryStore instance.
type MemoryOption func(*MemoryStore)

// WithMemoryClock sets the clock function for testability.
func WithMemoryClock(clock Clock) MemoryOption {
	return func(s *MemoryStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewMemoryStore constructs an in-memory consent store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		records: make(map[string]consent.Record),
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *MemoryStore) GetByCustomer(ctx context.Context, customerID string) (*consent.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[customerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := record
	return &copied, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, record *consent.Record) (*consent.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := s.clock().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	committed := *record
	committed.UpdatedAt = now
	if existing, ok := s.records[record.CustomerID]; ok {
		committed.GrantedAt = existing.GrantedAt
		committed.Version = existing.Version + 1
	} else {
		if committed.GrantedAt.IsZero() {
			committed.GrantedAt = now
		} else {
			committed.GrantedAt = committed.GrantedAt.UTC()
		}
		committed.Version = 1
	}
	s.records[record.CustomerID] = committed

	copied := committed
	return &copied, nil
}
