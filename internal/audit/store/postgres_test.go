package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consentd/internal/audit"
)

// The postgres store must satisfy both sides of the outbox pipeline.
var (
	_ audit.Store  = (*PostgresStore)(nil)
	_ audit.Outbox = (*PostgresStore)(nil)
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db), mock
}

func TestPostgresStore_AppendWritesOutboxRow(t *testing.T) {
	store, mock := newMockStore(t)
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO audit_outbox`).
		WithArgs("evt-1", "cust-1", audit.ActionConsentUpdated, sqlmock.AnyArg(), ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Append(context.Background(), audit.Event{
		ID:         "evt-1",
		Timestamp:  ts,
		CustomerID: "cust-1",
		Action:     audit.ActionConsentUpdated,
		Tier:       "metadata",
		Version:    1,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_NextUnpublished(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`FROM audit_outbox`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "customer_id", "payload"}).
			AddRow("evt-1", "cust-1", []byte(`{"action":"consent_updated"}`)).
			AddRow("evt-2", "cust-2", []byte(`{"action":"consent_revoked"}`)))

	rows, err := store.NextUnpublished(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "evt-1", rows[0].EventID)
	assert.Equal(t, "cust-2", rows[1].CustomerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_MarkPublished(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE audit_outbox SET published_at`).
		WithArgs(pq.Array([]string{"evt-1", "evt-2"})).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, store.MarkPublished(context.Background(), []string{"evt-1", "evt-2"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_MarkPublishedEmptySkipsQuery(t *testing.T) {
	store, mock := newMockStore(t)

	require.NoError(t, store.MarkPublished(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}
