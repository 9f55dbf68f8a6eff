package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Take(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to the limit", func(t *testing.T) {
		store := NewMemoryStore(3, time.Minute)
		now := time.Now()

		for i := 0; i < 3; i++ {
			result, err := store.Take(ctx, "k", now.Add(time.Duration(i)*time.Second))
			require.NoError(t, err)
			assert.True(t, result.Allowed)
			assert.Equal(t, 2-i, result.Remaining)
		}

		result, err := store.Take(ctx, "k", now.Add(3*time.Second))
		require.NoError(t, err)
		assert.False(t, result.Allowed)
	})

	t.Run("retry-after derives from the oldest in-window timestamp", func(t *testing.T) {
		store := NewMemoryStore(2, time.Minute)
		now := time.Now()

		_, err := store.Take(ctx, "k", now)
		require.NoError(t, err)
		_, err = store.Take(ctx, "k", now.Add(10*time.Second))
		require.NoError(t, err)

		result, err := store.Take(ctx, "k", now.Add(20*time.Second))
		require.NoError(t, err)
		require.False(t, result.Allowed)
		assert.Equal(t, 40*time.Second, result.RetryAfter)
	})

	t.Run("window slides", func(t *testing.T) {
		store := NewMemoryStore(1, time.Minute)
		now := time.Now()

		first, err := store.Take(ctx, "k", now)
		require.NoError(t, err)
		assert.True(t, first.Allowed)

		denied, err := store.Take(ctx, "k", now.Add(30*time.Second))
		require.NoError(t, err)
		assert.False(t, denied.Allowed)

		allowed, err := store.Take(ctx, "k", now.Add(61*time.Second))
		require.NoError(t, err)
		assert.True(t, allowed.Allowed)
	})

	t.Run("keys are independent", func(t *testing.T) {
		store := NewMemoryStore(1, time.Minute)
		now := time.Now()

		_, err := store.Take(ctx, "a", now)
		require.NoError(t, err)

		result, err := store.Take(ctx, "b", now)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	})

	t.Run("idle keys are pruned", func(t *testing.T) {
		store := NewMemoryStore(1, time.Minute)
		now := time.Now()

		_, err := store.Take(ctx, "a", now)
		require.NoError(t, err)
		_, err = store.Take(ctx, "b", now.Add(2*time.Minute))
		require.NoError(t, err)

		store.mu.Lock()
		_, stale := store.requests["a"]
		store.mu.Unlock()
		assert.False(t, stale)
	})
}
