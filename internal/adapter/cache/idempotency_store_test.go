package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelordialeseya/fruit-pos/internal/usecase"
)

func idempotencyContract(t *testing.T, s usecase.IdempotencyStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Recall(ctx, "checkout", "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	locked, err := s.TryLock(ctx, "checkout", "k1")
	require.NoError(t, err)
	assert.True(t, locked)

	locked, err = s.TryLock(ctx, "checkout", "k1")
	require.NoError(t, err)
	assert.False(t, locked, "second lock on the same key must fail")

	locked, err = s.TryLock(ctx, "checkout", "k2")
	require.NoError(t, err)
	assert.True(t, locked)

	require.NoError(t, s.Release(ctx, "checkout", "k2"))
	locked, err = s.TryLock(ctx, "checkout", "k2")
	require.NoError(t, err)
	assert.True(t, locked, "released key can be locked again")
	require.NoError(t, s.Release(ctx, "checkout", "missing"))

	require.NoError(t, s.Remember(ctx, "checkout", "k1", "order-1"))
	v, ok, err := s.Recall(ctx, "checkout", "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "order-1", v)
}

func TestRedisIdempotencyStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := NewRedisIdempotencyStore(rdb, "pos:", time.Hour)
	idempotencyContract(t, s)

	assert.True(t, mr.Exists("pos:idemp:checkout:k1"))
	assert.Equal(t, time.Hour, mr.TTL("pos:idemp:map:checkout:k1"))

	mr.FastForward(2 * time.Hour)
	_, ok, err := s.Recall(context.Background(), "checkout", "k1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryIdempotencyStore(t *testing.T) {
	s := NewMemoryIdempotencyStore(time.Minute)
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	idempotencyContract(t, s)

	now = now.Add(2 * time.Minute)
	_, ok, err := s.Recall(context.Background(), "checkout", "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	locked, err := s.TryLock(context.Background(), "checkout", "k1")
	require.NoError(t, err)
	assert.True(t, locked, "expired lock is released")
}
