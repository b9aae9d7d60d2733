package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagekeep/digest-api/internal/domain/model"
)

// The guard paths below never reach Redis, so a nil client is fine.

func TestRedisJobStoreValidation(t *testing.T) {
	ctx := context.Background()
	store := NewRedisJobStore(nil, 0)

	t.Run("get with empty user id is not found", func(t *testing.T) {
		_, err := store.Get(ctx, "")
		assert.ErrorIs(t, err, ErrJobNotFound)
	})

	t.Run("put rejects empty user id", func(t *testing.T) {
		err := store.Put(ctx, "", &model.DigestJob{ID: "job-1"})
		require.Error(t, err)
	})

	t.Run("put rejects a job without an id", func(t *testing.T) {
		err := store.Put(ctx, "user-1", &model.DigestJob{})
		require.Error(t, err)
	})

	t.Run("put if absent rejects a nil job", func(t *testing.T) {
		_, err := store.PutIfAbsent(ctx, "user-1", nil)
		require.Error(t, err)
	})

	t.Run("delete with empty user id is a no-op", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, ""))
	})
}

func TestNewRedisJobStoreDefaults(t *testing.T) {
	store := NewRedisJobStore(nil, 0)
	assert.Equal(t, 168*time.Hour, store.retention)

	store = NewRedisJobStore(nil, 24*time.Hour)
	assert.Equal(t, 24*time.Hour, store.retention)
}

func TestRedisUsageLedgerKeying(t *testing.T) {
	clock := NewFixedTimeProvider(time.Date(2025, 6, 2, 23, 30, 0, 0, time.UTC))
	ledger := NewRedisUsageLedger(nil, clock)

	assert.Equal(t, "usage:user-1:digest-submit:2025-06-02", ledger.key("user-1", "digest-submit"))

	// Crossing midnight moves counting to a fresh bucket.
	clock.AddTime(time.Hour)
	assert.Equal(t, "usage:user-1:digest-submit:2025-06-03", ledger.key("user-1", "digest-submit"))
}

func TestRedisUsageLedgerDisabledLimit(t *testing.T) {
	ledger := NewRedisUsageLedger(nil, nil)

	under, err := ledger.CheckQuota(context.Background(), "user-1", "digest-submit", 0)
	require.NoError(t, err)
	assert.True(t, under)
}
