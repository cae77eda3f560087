package publisher

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/fortuna/argus/internal/tracker"
)

// TrackerStream is the stream every pass update is appended to.
const TrackerStream = "tracker.updates.basketball_nba"

// defaultMaxLen caps the stream length (approximate trimming).
const defaultMaxLen = 10000

// RedisStreamPublisher publishes tracker updates to a Redis stream
type RedisStreamPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewRedisStreamPublisher creates a new Redis stream publisher from existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
		stream: TrackerStream,
		maxLen: defaultMaxLen,
	}
}

// Publish appends one pass update to the stream. Idle passes are skipped.
func (rsp *RedisStreamPublisher) Publish(ctx context.Context, update tracker.Update) error {
	if len(update.NewEntries) == 0 && !update.Deltas.Points.Valid &&
		!update.Deltas.Rebounds.Valid && !update.Deltas.Assists.Valid {
		return nil
	}

	data, err := sonic.Marshal(update)
	if err != nil {
		return fmt.Errorf("encoding tracker update: %w", err)
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: rsp.stream,
		MaxLen: rsp.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"game_id":    update.GameID,
			"session_id": update.SessionID,
			"outcome":    string(update.Outcome),
			"new":        strconv.Itoa(len(update.NewEntries)),
			"data":       string(data),
			"timestamp":  time.Now().Unix(),
		},
	}).Err()
}
