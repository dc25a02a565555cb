package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stats struct {
	Total     int64 `json:"total"`
	LastMonth int64 `json:"lastMonth"`
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache().(*MemoryCache)
	now := time.Now()
	c.now = func() time.Time { return now }

	t.Run("miss", func(t *testing.T) {
		var s stats
		assert.ErrorIs(t, c.Get(ctx, "posts:stats", &s), ErrCacheMiss)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "posts:stats", stats{Total: 12, LastMonth: 3}, time.Minute))

		var s stats
		require.NoError(t, c.Get(ctx, "posts:stats", &s))
		assert.Equal(t, stats{Total: 12, LastMonth: 3}, s)
	})

	t.Run("expiry", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "short", stats{Total: 1}, time.Second))
		now = now.Add(2 * time.Second)

		var s stats
		assert.ErrorIs(t, c.Get(ctx, "short", &s), ErrCacheMiss)
	})

	t.Run("delete several", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "posts:stats", stats{Total: 1}, time.Minute))
		require.NoError(t, c.Set(ctx, "users:stats", stats{Total: 2}, time.Minute))
		require.NoError(t, c.Set(ctx, "comments:stats", stats{Total: 3}, time.Minute))
		require.NoError(t, c.Delete(ctx, "posts:stats", "users:stats"))

		var s stats
		assert.ErrorIs(t, c.Get(ctx, "posts:stats", &s), ErrCacheMiss)
		assert.ErrorIs(t, c.Get(ctx, "users:stats", &s), ErrCacheMiss)
		require.NoError(t, c.Get(ctx, "comments:stats", &s))
		assert.Equal(t, int64(3), s.Total)
	})

	t.Run("expired entry is dropped on read", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "gone", stats{}, time.Second))
		now = now.Add(time.Second)

		var s stats
		assert.ErrorIs(t, c.Get(ctx, "gone", &s), ErrCacheMiss)
		assert.NotContains(t, c.items, "gone")
	})
}
