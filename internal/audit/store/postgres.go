package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"consentd/internal/audit"
)

// PostgresStore implements audit.Store using the transactional outbox pattern.
// Events are written to the outbox table and published to Kafka by the outbox
// worker; Kafka is the long-term home of audit events.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL audit store that writes to the outbox.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append writes an audit event to the outbox table.
func (s *PostgresStore) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	query := `
		INSERT INTO audit_outbox (event_id, customer_id, action, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.db.ExecContext(ctx, query,
		event.ID, event.CustomerID, event.Action, payload, event.Timestamp)
	if err != nil {
		return fmt.Errorf("append audit outbox: %w", err)
	}
	return nil
}

// NextUnpublished returns up to limit undelivered events, oldest first.
func (s *PostgresStore) NextUnpublished(ctx context.Context, limit int) ([]audit.OutboxRow, error) {
	query := `
		SELECT event_id, customer_id, payload
		FROM audit_outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch audit outbox: %w", err)
	}
	defer rows.Close()

	var out []audit.OutboxRow
	for rows.Next() {
		var row audit.OutboxRow
		if err := rows.Scan(&row.EventID, &row.CustomerID, &row.Payload); err != nil {
			return nil, fmt.Errorf("scan audit outbox: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// MarkPublished stamps the given events as delivered.
func (s *PostgresStore) MarkPublished(ctx context.Context, eventIDs []string) error {
	if len(eventIDs) == 0 {
		return nil
	}
	query := `UPDATE audit_outbox SET published_at = now() WHERE event_id = ANY($1)`
	if _, err := s.db.ExecContext(ctx, query, pq.Array(eventIDs)); err != nil {
		return fmt.Errorf("mark audit outbox published: %w", err)
	}
	return nil
}
