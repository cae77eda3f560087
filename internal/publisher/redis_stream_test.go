package publisher

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/argus/internal/pbp"
	"github.com/fortuna/argus/internal/tracker"
)

// redisClient connects to ARGUS_TEST_REDIS_URL or skips the test.
func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("ARGUS_TEST_REDIS_URL")
	if url == "" {
		t.Skip("ARGUS_TEST_REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisStreamPublisher_Publish(t *testing.T) {
	client := redisClient(t)
	ctx := context.Background()

	pub := NewRedisStreamPublisher(client)
	pub.stream = "test." + TrackerStream
	t.Cleanup(func() { client.Del(ctx, pub.stream) })

	update := tracker.Update{
		SessionID: "s1",
		GameID:    "0022400001",
		Player:    "Stephen Curry",
		ShortName: "S. Curry",
		PassResult: pbp.PassResult{
			Outcome:    pbp.OutcomeUpdated,
			NewEntries: []pbp.LogEntry{{ActionID: 4, Text: "S. Curry 3PT (3 PTS)", Category: pbp.CategoryScore}},
			Stats:      pbp.PlayerStats{Points: 3},
			Deltas:     pbp.Deltas{Points: pbp.Delta{Value: 3, Valid: true}},
		},
	}
	require.NoError(t, pub.Publish(ctx, update))

	// Idle passes are not written.
	require.NoError(t, pub.Publish(ctx, tracker.Update{GameID: "0022400001"}))

	msgs, err := client.XRange(ctx, pub.stream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "0022400001", msgs[0].Values["game_id"])
	assert.Equal(t, "updated", msgs[0].Values["outcome"])

	var decoded map[string]interface{}
	require.NoError(t, sonic.UnmarshalString(msgs[0].Values["data"].(string), &decoded))
	assert.Equal(t, "S. Curry", decoded["short_name"])
	assert.EqualValues(t, 3, decoded["deltas"].(map[string]interface{})["points"])
	assert.Nil(t, decoded["deltas"].(map[string]interface{})["rebounds"])
}
