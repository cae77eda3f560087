package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/argus/internal/ingest/nba"
	"github.com/fortuna/argus/internal/metrics"
	"github.com/fortuna/argus/internal/pbp"
	"github.com/fortuna/argus/internal/scheduler"
	"github.com/fortuna/argus/internal/store"
	"github.com/fortuna/argus/internal/tracker"
)

type stubGames struct {
	games []nba.GameOption
	err   error
}

func (s stubGames) TodaysGames(context.Context) ([]nba.GameOption, error) {
	return s.games, s.err
}

type stubRosters map[string]*nba.Roster

func (s stubRosters) GetRoster(_ context.Context, gameID string) *nba.Roster {
	if r, ok := s[gameID]; ok {
		return r
	}
	return nba.EmptyRoster()
}

func (s stubRosters) ShortNameFor(ctx context.Context, gameID, player string) (string, bool) {
	return s.GetRoster(ctx, gameID).LookupShortName(player)
}

type stubSource struct{ actions []pbp.Action }

func (s stubSource) FetchActions(context.Context, string) ([]pbp.Action, error) {
	return s.actions, nil
}

type stubPlayLog struct{ entries []*store.PlayLogEntry }

func (s stubPlayLog) Recent(_ context.Context, gameID string, limit int) ([]*store.PlayLogEntry, error) {
	var out []*store.PlayLogEntry
	for _, e := range s.entries {
		if e.GameID == gameID && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s stubPlayLog) Count(_ context.Context, gameID string) (int, error) {
	n := 0
	for _, e := range s.entries {
		if e.GameID == gameID {
			n++
		}
	}
	return n, nil
}

type stubScheduler struct{ status scheduler.Status }

func (s stubScheduler) GetStatus() scheduler.Status { return s.status }

type testEnv struct {
	server  *httptest.Server
	metrics *metrics.Manager
}

func newTestEnv(t *testing.T, playLog PlayLogReader, checks map[string]HealthCheck) *testEnv {
	t.Helper()

	rosters := stubRosters{"0022400001": {
		Players:    []string{"LeBron James", "Stephen Curry"},
		ShortNames: map[string]string{"LeBron James": "L. James", "Stephen Curry": "S. Curry"},
	}}
	source := stubSource{actions: []pbp.Action{
		{ID: 4, Period: 1, Clock: "PT11M40.00S", Description: "S. Curry 26' 3PT Jump Shot (3 PTS)", ScoreAway: "3", ScoreHome: "0"},
		{ID: 7, Period: 1, Clock: "PT11M20.00S", Description: "MISS L. James 14' Jump Shot", ScoreAway: "3", ScoreHome: "0"},
	}}
	m := metrics.NewManager()

	h := NewHandler(HandlerConfig{
		Games:           stubGames{games: []nba.GameOption{{Label: "GSW vs LAL", Value: "0022400001"}}},
		Rosters:         rosters,
		Tracker:         tracker.NewService(source, rosters, tracker.Options{Metrics: m}),
		PlayLog:         playLog,
		Checks:          checks,
		GlobalFeedLimit: 100,
		PlayerFeedLimit: 50,
	})

	ts := httptest.NewServer(NewServer("0", h, m).Handler())
	t.Cleanup(ts.Close)
	return &testEnv{server: ts, metrics: m}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, e.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	if strings.HasPrefix(strings.TrimSpace(string(raw)), "{") {
		require.NoError(t, sonic.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (e *testEnv) doList(t *testing.T, path string) (int, []interface{}) {
	t.Helper()
	resp, err := e.server.Client().Get(e.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out []interface{}
	require.NoError(t, sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil, map[string]HealthCheck{
		"redis": func(context.Context) error { return nil },
	})

	status, body := env.do(t, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ok", body["dependencies"].(map[string]interface{})["redis"])
}

func TestHealth_Degraded(t *testing.T) {
	env := newTestEnv(t, nil, map[string]HealthCheck{
		"database": func(context.Context) error { return errors.New("connection refused") },
	})

	status, body := env.do(t, "GET", "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", body["status"])
}

func TestGamesAndRoster(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	status, games := env.doList(t, "/api/v1/games")
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, games, 1)
	assert.Equal(t, "GSW vs LAL", games[0].(map[string]interface{})["label"])

	status, roster := env.do(t, "GET", "/api/v1/games/0022400001/roster", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, roster["players"], 2)

	status, empty := env.do(t, "GET", "/api/v1/games/unknown/roster", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, empty["players"])
}

func TestTrackerFlow(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	status, _ := env.do(t, "GET", "/api/v1/tracker", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(t, "POST", "/api/v1/tracker/refresh", "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = env.do(t, "PUT", "/api/v1/tracker", `{"game_id":"0022400001"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, "PUT", "/api/v1/tracker", `not json`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, sel := env.do(t, "PUT", "/api/v1/tracker", `{"game_id":"0022400001","player":"Stephen Curry"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "S. Curry", sel["short_name"])
	assert.NotEmpty(t, sel["session_id"])

	status, pass := env.do(t, "POST", "/api/v1/tracker/refresh", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "updated", pass["outcome"])
	assert.Len(t, pass["new_entries"], 2)

	status, view := env.do(t, "GET", "/api/v1/tracker?global_limit=1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, view["global_feed"], 1)
	assert.EqualValues(t, 2, view["global_total"])
	assert.Len(t, view["player_feed"], 1)

	stats := view["stats"].(map[string]interface{})
	assert.EqualValues(t, 3, stats["points"])
	deltas := view["deltas"].(map[string]interface{})
	assert.EqualValues(t, 3, deltas["points"])
	assert.Nil(t, deltas["rebounds"])

	entry := view["player_feed"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "success", entry["tone"])
	assert.Equal(t, "score", entry["category"])
}

func TestGameLog(t *testing.T) {
	disabled := newTestEnv(t, nil, nil)
	status, _ := disabled.do(t, "GET", "/api/v1/games/0022400001/log", "")
	assert.Equal(t, http.StatusNotFound, status)

	env := newTestEnv(t, stubPlayLog{entries: []*store.PlayLogEntry{
		{GameID: "0022400001", ActionID: 7, Text: "b"},
		{GameID: "0022400001", ActionID: 4, Text: "a"},
		{GameID: "other", ActionID: 1, Text: "c"},
	}}, nil)

	status, entries := env.doList(t, "/api/v1/games/0022400001/log?limit=1")
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, entries, 1)
	assert.EqualValues(t, 7, entries[0].(map[string]interface{})["action_id"])

	resp, err := env.server.Client().Get(env.server.URL + "/api/v1/games/0022400001/log?limit=1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "2", resp.Header.Get("X-Total-Count"))

	status, _ = env.do(t, "GET", "/api/v1/games/0022400001/log?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, none := env.doList(t, "/api/v1/games/nothing/log")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, none)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	env.do(t, "GET", "/api/v1/tracker", "")

	resp, err := env.server.Client().Get(env.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `argus_http_requests_total{endpoint="/api/v1/tracker",method="GET",status="404"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	status, _ := env.do(t, "OPTIONS", "/api/v1/tracker", "")
	assert.Equal(t, http.StatusNoContent, status)
}

func TestSchedulerStatus(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	status, _ := env.do(t, "GET", "/api/v1/tracker/scheduler", "")
	assert.Equal(t, http.StatusNotFound, status)

	h := NewHandler(HandlerConfig{
		Scheduler: stubScheduler{status: scheduler.Status{
			Running:           true,
			PollInterval:      "2s",
			Passes:            7,
			ConsecutiveErrors: 1,
			LastOutcome:       pbp.OutcomeFetchFailed,
		}},
	})
	ts := httptest.NewServer(NewServer("0", h, nil).Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/v1/tracker/scheduler")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["running"])
	assert.Equal(t, "2s", body["poll_interval"])
	assert.EqualValues(t, 7, body["passes"])
	assert.EqualValues(t, 1, body["consecutive_errors"])
	assert.Equal(t, "fetch_failed", body["last_outcome"])
}
