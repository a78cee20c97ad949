package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"consentd/internal/consent"
	"consentd/pkg/platform/sentinel"
)

// PostgresStore persists consent records in PostgreSQL. It is the source of
// truth; the cache layer in internal/consent/cache only mirrors it.
type PostgresStore struct {
	db    *sql.DB
	clock Clock
}

// Clock abstracts time.Now for testability.
type Clock func() time.Time

// PostgresOption configures a PostgresStore instance.
type PostgresOption func(*PostgresStore)

// WithClock sets the clock function for testability.
func WithClock(clock Clock) PostgresOption {
	return func(s *PostgresStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewPostgresStore constructs a PostgreSQL-backed consent store.
func NewPostgresStore(db *sql.DB, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{
		db:    db,
		clock: time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

const consentColumns = `customer_id, tier, can_store_images, can_store_embeddings,
	can_use_for_training, anonymization_level, granted_at, updated_at, expires_at, version`

// GetByCustomer returns the customer's consent record or sentinel.ErrNotFound.
func (s *PostgresStore) GetByCustomer(ctx context.Context, customerID string) (*consent.Record, error) {
	query := `SELECT ` + consentColumns + ` FROM consent_records WHERE customer_id = $1`
	record, err := scanRecord(s.db.QueryRowContext(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get consent record: %w", err)
	}
	return record, nil
}

// Upsert creates the record or mutates the existing row atomically. On insert
// the caller-supplied grant instant is honored (the store clock is only a
// fallback); on update the stored grant instant is preserved. Version and
// updated_at are bumped inside the statement so two racing writers cannot
// produce a torn row.
func (s *PostgresStore) Upsert(ctx context.Context, record *consent.Record) (*consent.Record, error) {
	if record == nil {
		return nil, fmt.Errorf("consent record is required")
	}
	now := s.clock().UTC()
	grantedAt := record.GrantedAt.UTC()
	if record.GrantedAt.IsZero() {
		grantedAt = now
	}

	query := `
		INSERT INTO consent_records (` + consentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1)
		ON CONFLICT (customer_id) DO UPDATE SET
			tier = EXCLUDED.tier,
			can_store_images = EXCLUDED.can_store_images,
			can_store_embeddings = EXCLUDED.can_store_embeddings,
			can_use_for_training = EXCLUDED.can_use_for_training,
			anonymization_level = EXCLUDED.anonymization_level,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at,
			version = consent_records.version + 1
		RETURNING ` + consentColumns
	row := s.db.QueryRowContext(ctx, query,
		record.CustomerID,
		record.Tier.String(),
		record.Permissions.StoreImages,
		record.Permissions.StoreEmbeddings,
		record.Permissions.UseForTraining,
		record.AnonymizationLevel.String(),
		grantedAt,
		now,
		nullableTime(record.ExpiresAt),
	)
	committed, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("upsert consent record: %w", err)
	}
	return committed, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*consent.Record, error) {
	var (
		record    consent.Record
		tier      string
		anon      string
		expiresAt sql.NullTime
	)
	err := row.Scan(
		&record.CustomerID,
		&tier,
		&record.Permissions.StoreImages,
		&record.Permissions.StoreEmbeddings,
		&record.Permissions.UseForTraining,
		&anon,
		&record.GrantedAt,
		&record.UpdatedAt,
		&expiresAt,
		&record.Version,
	)
	if err != nil {
		return nil, err
	}
	record.Tier = consent.Tier(tier)
	record.AnonymizationLevel = consent.AnonymizationLevel(anon)
	if expiresAt.Valid {
		t := expiresAt.Time
		record.ExpiresAt = &t
	}
	return &record, nil
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
