package audit

import (
	"context"
	"time"
)

// Actions recorded by the consent engine. Reads are never audited; only
// mutations of consent state are compliance-relevant.
const (
	ActionConsentUpdated = "consent_updated"
	ActionConsentRevoked = "consent_revoked"
)

// Event is emitted from the consent service to capture a consent mutation.
// Keep it transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	CustomerID string    `json:"customer_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	Action     string    `json:"action"`
	Tier       string    `json:"tier"`
	Version    int64     `json:"version"`
	RequestID  string    `json:"request_id,omitempty"`
}

// Store is an append-only audit sink. The postgres implementation is an
// outbox: rows are drained to Kafka by the worker.
type Store interface {
	Append(ctx context.Context, event Event) error
}
