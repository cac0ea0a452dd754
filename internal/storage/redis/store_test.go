package redis

import (
	"context"
	"os"
	"testing"

	"github.com/Rrens/content-creator-bot/internal/storage/storetest"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `chat:a\*b\?c\[d\]\\`, escapeGlob(`chat:a*b?c[d]\`))
	assert.Equal(t, "chat:123:", escapeGlob("chat:123:"))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, dedupe([]string{"a", "b", "a", "c", "b"}))
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("Requires Redis - set REDIS_TEST_ADDR to run")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, rdb.FlushDB(context.Background()).Err())
	t.Cleanup(func() {
		rdb.FlushDB(context.Background())
		rdb.Close()
	})

	return NewClientFromRDB(rdb)
}

func TestStore_Integration(t *testing.T) {
	storetest.Run(t, NewStore(newTestClient(t)))
}

func TestRateLimiter_Integration(t *testing.T) {
	client := newTestClient(t)
	limiter := NewRateLimiter(client, 2, 1)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, _, err := limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should pass", i)
	}

	allowed, remaining, _, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	require.NoError(t, limiter.Reset(ctx, "user-1"))
	allowed, _, _, err = limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, allowed)
}
