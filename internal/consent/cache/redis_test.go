package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consentd/internal/consent"
	"consentd/pkg/platform/sentinel"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	// nil metrics: promauto registration is process-global and the nil-safe
	// methods make it unnecessary here.
	return NewRedisCache(client, nil), mr
}

func sampleRecord() *consent.Record {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &consent.Record{
		CustomerID:         "cust-1",
		Tier:               consent.TierMetadata,
		Permissions:        consent.Permissions{StoreEmbeddings: true, UseForTraining: true},
		AnonymizationLevel: consent.AnonymizationPartial,
		GrantedAt:          now,
		UpdatedAt:          now,
		Version:            2,
	}
}

func TestRedisCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	record := sampleRecord()
	require.NoError(t, cache.Set(ctx, record, time.Minute))

	got, err := cache.Get(ctx, record.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, record.CustomerID, got.CustomerID)
	assert.Equal(t, record.Tier, got.Tier)
	assert.Equal(t, record.Permissions, got.Permissions)
	assert.Equal(t, record.AnonymizationLevel, got.AnonymizationLevel)
	assert.Equal(t, record.Version, got.Version)
	assert.True(t, record.GrantedAt.Equal(got.GrantedAt))
	assert.Nil(t, got.ExpiresAt)
}

func TestRedisCache_MissIsNotFound(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestRedisCache_EntryExpiresWithTTL(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	record := sampleRecord()
	require.NoError(t, cache.Set(ctx, record, time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, record.CustomerID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestRedisCache_CorruptPayloadDroppedAsMiss(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(consent.CacheKey("cust-1"), "{not json"))

	_, err := cache.Get(ctx, "cust-1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.False(t, mr.Exists(consent.CacheKey("cust-1")), "corrupt entry must be deleted")
}

func TestRedisCache_InvalidateIsIdempotent(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	record := sampleRecord()
	require.NoError(t, cache.Set(ctx, record, time.Minute))
	require.NoError(t, cache.Invalidate(ctx, record.CustomerID))
	assert.False(t, mr.Exists(consent.CacheKey(record.CustomerID)))

	// Deleting an absent entry is still a success.
	require.NoError(t, cache.Invalidate(ctx, record.CustomerID))
}

func TestRedisCache_GetSurfacesInfrastructureErrors(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	_, err := cache.Get(context.Background(), "cust-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, sentinel.ErrNotFound, "infrastructure errors must stay distinguishable from misses")
}
