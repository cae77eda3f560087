package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/fortuna/argus/internal/cache"
	"github.com/fortuna/argus/internal/ingest/nba"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRosterSource struct {
	roster *nba.Roster
	err    error
	calls  int
}

func (f *fakeRosterSource) FetchRoster(ctx context.Context, gameID string) (*nba.Roster, error) {
	f.calls++
	return f.roster, f.err
}

type memoryCache struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) GetJSON(ctx context.Context, key string, dst interface{}) error {
	v, ok := m.values[key]
	if !ok {
		return cache.ErrMiss
	}
	return sonic.UnmarshalString(v, dst)
}

func (m *memoryCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := sonic.MarshalString(value)
	if err != nil {
		return err
	}
	m.values[key] = payload
	m.ttls[key] = ttl
	return nil
}

type fakeGames struct {
	games []nba.GameOption
	err   error
}

func (f fakeGames) FetchGames(ctx context.Context) ([]nba.GameOption, error) {
	return f.games, f.err
}

func sampleRoster() *nba.Roster {
	return &nba.Roster{
		Players:    []string{"Jayson Tatum", "LeBron James"},
		ShortNames: map[string]string{"Jayson Tatum": "J. Tatum", "LeBron James": "L. James"},
	}
}

func TestRosterServiceCaches(t *testing.T) {
	src := &fakeRosterSource{roster: sampleRoster()}
	mem := newMemoryCache()
	svc := NewRosterService(src, mem, 10*time.Minute)

	first, err := svc.Lookup(context.Background(), "g1")
	require.NoError(t, err)
	second, err := svc.Lookup(context.Background(), "g1")
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls, "second lookup served from cache")
	assert.Equal(t, first.Players, second.Players)
	assert.Equal(t, "L. James", second.ShortNameFor("LeBron James"))
	assert.Equal(t, 10*time.Minute, mem.ttls[rosterKeyPrefix+"g1"])
}

func TestRosterServiceFailure(t *testing.T) {
	src := &fakeRosterSource{err: errors.New("403")}
	svc := NewRosterService(src, nil, time.Minute)

	_, err := svc.Lookup(context.Background(), "g1")
	assert.Error(t, err, "lookup keeps the cause")

	roster := svc.GetRoster(context.Background(), "g1")
	assert.Empty(t, roster.Players)
	assert.Empty(t, roster.ShortNames)
	short, ok := svc.ShortNameFor(context.Background(), "g1", "Free Text")
	assert.Equal(t, "Free Text", short)
	assert.False(t, ok)
}

func TestRosterServiceSkipsCachingEmptyRoster(t *testing.T) {
	src := &fakeRosterSource{roster: nba.EmptyRoster()}
	mem := newMemoryCache()
	svc := NewRosterService(src, mem, time.Minute)

	_, err := svc.Lookup(context.Background(), "g1")
	require.NoError(t, err)
	assert.Empty(t, mem.values)
}

func TestGameService(t *testing.T) {
	svc := NewGameService(fakeGames{games: []nba.GameOption{
		{Label: "LAL vs BOS", Value: "0022400123"},
	}})

	game, err := svc.FindGame(context.Background(), "LAL vs BOS")
	require.NoError(t, err)
	assert.Equal(t, "0022400123", game.Value)

	game, err = svc.FindGame(context.Background(), "0022400123")
	require.NoError(t, err)
	assert.Equal(t, "LAL vs BOS", game.Label)

	_, err = svc.FindGame(context.Background(), "nope")
	assert.Error(t, err)

	failing := NewGameService(fakeGames{err: errors.New("down")})
	_, err = failing.TodaysGames(context.Background())
	assert.Error(t, err)
}
