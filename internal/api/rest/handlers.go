package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gorilla/mux"

	"github.com/fortuna/argus/internal/ingest/nba"
	"github.com/fortuna/argus/internal/pbp"
	"github.com/fortuna/argus/internal/scheduler"
	"github.com/fortuna/argus/internal/store"
	"github.com/fortuna/argus/internal/tracker"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 1000
)

// GameLister lists today's games.
type GameLister interface {
	TodaysGames(ctx context.Context) ([]nba.GameOption, error)
}

// RosterProvider returns the roster of a game, empty when unavailable.
type RosterProvider interface {
	GetRoster(ctx context.Context, gameID string) *nba.Roster
}

// Tracker is the session surface the API drives.
type Tracker interface {
	Select(ctx context.Context, gameID, player string) (pbp.TrackerState, error)
	RunPass(ctx context.Context) (pbp.PassResult, error)
	View(globalLimit, playerLimit int) (tracker.View, error)
}

// PlayLogReader reads the archived play log.
type PlayLogReader interface {
	Recent(ctx context.Context, gameID string, limit int) ([]*store.PlayLogEntry, error)
	Count(ctx context.Context, gameID string) (int, error)
}

// SchedulerStatus reports the poll loop.
type SchedulerStatus interface {
	GetStatus() scheduler.Status
}

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// Handler contains dependencies for HTTP handlers
type Handler struct {
	games   GameLister
	rosters RosterProvider
	tracker Tracker
	playLog PlayLogReader
	sched   SchedulerStatus
	checks  map[string]HealthCheck

	globalLimit int
	playerLimit int
}

// HandlerConfig wires a Handler. PlayLog, Scheduler and Checks are optional.
type HandlerConfig struct {
	Games     GameLister
	Rosters   RosterProvider
	Tracker   Tracker
	PlayLog   PlayLogReader
	Scheduler SchedulerStatus
	Checks    map[string]HealthCheck

	GlobalFeedLimit int
	PlayerFeedLimit int
}

// NewHandler creates a new handler
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		games:       cfg.Games,
		rosters:     cfg.Rosters,
		tracker:     cfg.Tracker,
		playLog:     cfg.PlayLog,
		sched:       cfg.Scheduler,
		checks:      cfg.Checks,
		globalLimit: cfg.GlobalFeedLimit,
		playerLimit: cfg.PlayerFeedLimit,
	}
}

// HealthCheck reports service health and the state of each dependency
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(r.Context()); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "degraded"
	}

	respondJSON(w, status, map[string]interface{}{
		"status":       overall,
		"service":      "argus",
		"dependencies": deps,
	})
}

// GetTodaysGames returns today's games as selectable options
func (h *Handler) GetTodaysGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.TodaysGames(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to fetch today's games", err)
		return
	}

	respondJSON(w, http.StatusOK, games)
}

// GetGameRoster returns both teams' players for a game
func (h *Handler) GetGameRoster(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameID"]
	respondJSON(w, http.StatusOK, h.rosters.GetRoster(r.Context(), gameID))
}

// GetGameLog returns archived play-log entries, newest first
func (h *Handler) GetGameLog(w http.ResponseWriter, r *http.Request) {
	if h.playLog == nil {
		respondError(w, http.StatusNotFound, "Play-log archive is not enabled", nil)
		return
	}

	gameID := mux.Vars(r)["gameID"]
	limit := defaultLogLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 || l > maxLogLimit {
			respondError(w, http.StatusBadRequest, "Invalid limit (1-1000)", err)
			return
		}
		limit = l
	}

	entries, err := h.playLog.Recent(r.Context(), gameID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch play log", err)
		return
	}
	if entries == nil {
		entries = []*store.PlayLogEntry{}
	}

	total, err := h.playLog.Count(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to count play log", err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))

	respondJSON(w, http.StatusOK, entries)
}

// GetSchedulerStatus reports the poll loop's counters
func (h *Handler) GetSchedulerStatus(w http.ResponseWriter, r *http.Request) {
	if h.sched == nil {
		respondError(w, http.StatusNotFound, "Scheduler is not running", nil)
		return
	}

	respondJSON(w, http.StatusOK, h.sched.GetStatus())
}

// GetTracker returns the truncated feeds, stat line and deltas
func (h *Handler) GetTracker(w http.ResponseWriter, r *http.Request) {
	globalLimit, playerLimit := h.globalLimit, h.playerLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("global_limit")); err == nil && v > 0 {
		globalLimit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("player_limit")); err == nil && v > 0 {
		playerLimit = v
	}

	view, err := h.tracker.View(globalLimit, playerLimit)
	if errors.Is(err, tracker.ErrNoSelection) {
		respondError(w, http.StatusNotFound, "No game and player selected", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build tracker view", err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

type selectRequest struct {
	GameID string `json:"game_id"`
	Player string `json:"player"`
}

// SelectTracker changes the tracked game and player
func (h *Handler) SelectTracker(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req.GameID = strings.TrimSpace(req.GameID)
	req.Player = strings.TrimSpace(req.Player)
	if req.GameID == "" || req.Player == "" {
		respondError(w, http.StatusBadRequest, "game_id and player are required", nil)
		return
	}

	state, err := h.tracker.Select(r.Context(), req.GameID, req.Player)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to select player", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": state.SessionID,
		"game_id":    state.GameID,
		"player":     state.Player,
		"short_name": state.ShortName,
	})
}

// RefreshTracker runs one pass immediately
func (h *Handler) RefreshTracker(w http.ResponseWriter, r *http.Request) {
	result, err := h.tracker.RunPass(r.Context())
	if errors.Is(err, tracker.ErrNoSelection) {
		respondError(w, http.StatusConflict, "No game and player selected", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Refresh failed", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
