package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache("not-a-redis-url")
	assert.Error(t, err)
}

type doc struct {
	Players []string `json:"players"`
}

func TestRedisCache_RoundTrip(t *testing.T) {
	url := os.Getenv("ARGUS_TEST_REDIS_URL")
	if url == "" {
		t.Skip("ARGUS_TEST_REDIS_URL not set")
	}

	rc, err := NewRedisCache(url)
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	defer rc.Close()

	ctx := context.Background()
	key := "test:roster"
	t.Cleanup(func() { rc.Delete(ctx, key) })

	require.NoError(t, rc.SetJSON(ctx, key, doc{Players: []string{"LeBron James"}}, time.Minute))

	var got doc
	require.NoError(t, rc.GetJSON(ctx, key, &got))
	assert.Equal(t, []string{"LeBron James"}, got.Players)

	raw, err := rc.Client().Get(ctx, DefaultNamespace+key).Result()
	require.NoError(t, err)
	assert.Contains(t, raw, "LeBron James")

	require.NoError(t, rc.Delete(ctx, key))
	assert.ErrorIs(t, rc.GetJSON(ctx, key, &got), ErrMiss)
	assert.NoError(t, rc.HealthCheck(ctx))
}
