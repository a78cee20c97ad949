package store

import (
	"context"
	"sync"

	"consentd/internal/audit"
)

// MemoryStore keeps audit events in memory for tests and local development.
type MemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
}

// NewMemoryStore constructs an in-memory audit store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(ctx context.Context, event audit.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByCustomer returns the recorded events for one customer, oldest first.
func (s *MemoryStore) ListByCustomer(ctx context.Context, customerID string) ([]audit.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.CustomerID == customerID {
			out = append(out, e)
		}
	}
	return out, nil
}
