package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consentd/internal/consent"
	"consentd/pkg/platform/sentinel"
)

func TestMemoryStore_UpsertMatchesPostgresSemantics(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(WithMemoryClock(func() time.Time { return now }))
	ctx := context.Background()

	first, err := store.Upsert(ctx, &consent.Record{
		CustomerID:         "cust-1",
		Tier:               consent.TierMetadata,
		Permissions:        consent.Permissions{StoreEmbeddings: true, UseForTraining: true},
		AnonymizationLevel: consent.AnonymizationNone,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Version)
	assert.Equal(t, now, first.GrantedAt)

	now = now.Add(time.Hour)
	second, err := store.Upsert(ctx, &consent.Record{
		CustomerID:         "cust-1",
		Tier:               consent.TierFull,
		Permissions:        consent.Permissions{StoreImages: true, StoreEmbeddings: true, UseForTraining: true},
		AnonymizationLevel: consent.AnonymizationFull,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Version)
	assert.Equal(t, first.GrantedAt, second.GrantedAt)
	assert.Equal(t, now, second.UpdatedAt)
}

func TestMemoryStore_InsertHonorsCallerGrantInstant(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(WithMemoryClock(func() time.Time { return now }))
	grantedAt := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	committed, err := store.Upsert(context.Background(), &consent.Record{
		CustomerID:         "cust-1",
		Tier:               consent.TierFull,
		Permissions:        consent.Permissions{StoreImages: true, StoreEmbeddings: true, UseForTraining: true},
		AnonymizationLevel: consent.AnonymizationFull,
		GrantedAt:          grantedAt,
	})
	require.NoError(t, err)
	assert.Equal(t, grantedAt, committed.GrantedAt)
	assert.Equal(t, now, committed.UpdatedAt)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Upsert(ctx, &consent.Record{
		CustomerID:         "cust-1",
		Tier:               consent.TierMetadata,
		AnonymizationLevel: consent.AnonymizationNone,
	})
	require.NoError(t, err)

	got, err := store.GetByCustomer(ctx, "cust-1")
	require.NoError(t, err)
	got.Tier = consent.TierFull

	again, err := store.GetByCustomer(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, consent.TierMetadata, again.Tier, "mutating a returned record must not touch stored state")
}

func TestMemoryStore_MissingCustomer(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.GetByCustomer(context.Background(), "nobody")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
