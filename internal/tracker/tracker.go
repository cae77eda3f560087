// Package tracker owns the active tracking session. It serializes passes,
// replaces the session state when the selection changes and fans every
// pass out to the configured sinks.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fortuna/argus/internal/pbp"
)

var ErrNoSelection = errors.New("no game and player selected")

// Reset reasons.
const (
	ReasonInitial = "initial"
	ReasonGame    = "game"
	ReasonPlayer  = "player"
	ReasonRoster  = "roster"
)

// ActionSource fetches the full action list of a game.
type ActionSource interface {
	FetchActions(ctx context.Context, gameID string) ([]pbp.Action, error)
}

// ShortNamer resolves the short name a player appears under in descriptions.
// ok is false when the typed name is passed through because the roster does
// not list the player.
type ShortNamer interface {
	ShortNameFor(ctx context.Context, gameID, player string) (short string, ok bool)
}

// Sink receives every finished pass.
type Sink interface {
	Publish(ctx context.Context, update Update) error
}

// Archive stores new global-feed entries.
type Archive interface {
	SaveEntries(ctx context.Context, gameID, sessionID string, entries []pbp.LogEntry) error
}

// Recorder is the metrics surface the service reports to.
type Recorder interface {
	ObservePass(outcome string, newActions int, duration time.Duration)
	SetFeedSizes(global, player int)
	RecordReset(reason string)
}

// Update is what a pass publishes.
type Update struct {
	SessionID string    `json:"session_id"`
	GameID    string    `json:"game_id"`
	Player    string    `json:"player"`
	ShortName string    `json:"short_name"`
	Timestamp time.Time `json:"timestamp"`

	pbp.PassResult
}

// Options configures optional collaborators.
type Options struct {
	Extractor *pbp.Extractor
	Sinks     []Sink
	Archive   Archive
	Metrics   Recorder
}

// Service holds one TrackerState at a time.
type Service struct {
	source    ActionSource
	names     ShortNamer
	extractor *pbp.Extractor
	sinks     []Sink
	archive   Archive
	metrics   Recorder

	passMu sync.Mutex // one pass at a time

	mu         sync.RWMutex
	state      *pbp.TrackerState
	resolved   bool // state.ShortName came from the roster
	lastResult *pbp.PassResult
	lastPassAt time.Time
}

// NewService creates a tracker with no selection.
func NewService(source ActionSource, names ShortNamer, opts Options) *Service {
	extractor := opts.Extractor
	if extractor == nil {
		extractor = pbp.NewExtractor()
	}

	return &Service{
		source:    source,
		names:     names,
		extractor: extractor,
		sinks:     opts.Sinks,
		archive:   opts.Archive,
		metrics:   opts.Metrics,
	}
}

// AddSink registers another pass consumer.
func (s *Service) AddSink(sink Sink) {
	s.passMu.Lock()
	defer s.passMu.Unlock()
	s.sinks = append(s.sinks, sink)
}

// Select tracks player in game. Changing either one discards the whole
// session: both feeds, the last seen id and the previous stat line. The
// next pass replays the current snapshot into the fresh state. Selecting
// the current pair again keeps the session unless its short name can now
// be resolved from the roster.
func (s *Service) Select(ctx context.Context, gameID, player string) (pbp.TrackerState, error) {
	gameID = strings.TrimSpace(gameID)
	player = strings.TrimSpace(player)
	if gameID == "" || player == "" {
		return pbp.TrackerState{}, ErrNoSelection
	}

	s.mu.RLock()
	current := s.state
	s.mu.RUnlock()

	reason := ReasonInitial
	if current != nil {
		if current.GameID == gameID && current.Player == player {
			return s.resolveShortName(ctx, *current), nil
		}
		reason = ReasonPlayer
		if current.GameID != gameID {
			reason = ReasonGame
		}
	}

	shortName, resolved := s.names.ShortNameFor(ctx, gameID, player)
	next := pbp.NewTrackerState(uuid.NewString(), gameID, player, shortName)

	s.mu.Lock()
	s.install(&next, resolved)
	s.mu.Unlock()

	s.recordReset(next, reason)
	return next, nil
}

// resolveShortName retries the roster for a session whose short name is
// the typed name. When the roster now lists the player under a different
// short name the session restarts, so the next pass replays the snapshot
// against the roster name.
func (s *Service) resolveShortName(ctx context.Context, state pbp.TrackerState) pbp.TrackerState {
	s.mu.RLock()
	resolved := s.resolved
	s.mu.RUnlock()
	if resolved {
		return state
	}

	shortName, ok := s.names.ShortNameFor(ctx, state.GameID, state.Player)
	if !ok {
		return state
	}

	s.mu.Lock()
	if s.state == nil || s.state.SessionID != state.SessionID {
		// Replaced by a concurrent Select.
		s.mu.Unlock()
		return state
	}
	if shortName == state.ShortName {
		s.resolved = true
		s.mu.Unlock()
		return state
	}
	next := pbp.NewTrackerState(uuid.NewString(), state.GameID, state.Player, shortName)
	s.install(&next, true)
	s.mu.Unlock()

	s.recordReset(next, ReasonRoster)
	return next
}

// install replaces the session. Callers hold mu.
func (s *Service) install(state *pbp.TrackerState, resolved bool) {
	s.state = state
	s.resolved = resolved
	s.lastResult = nil
	s.lastPassAt = time.Time{}
}

func (s *Service) recordReset(state pbp.TrackerState, reason string) {
	if s.metrics != nil {
		s.metrics.RecordReset(reason)
		s.metrics.SetFeedSizes(0, 0)
	}

	log.Printf("[tracker] Tracking %s (%q) in game %s (reset: %s, session %s)",
		state.Player, state.ShortName, state.GameID, reason, state.SessionID)
}

// RunPass fetches the current snapshot and applies it to the session.
// A failed fetch still completes the pass with no new actions.
func (s *Service) RunPass(ctx context.Context) (pbp.PassResult, error) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	s.mu.RLock()
	if s.state == nil {
		s.mu.RUnlock()
		return pbp.PassResult{}, ErrNoSelection
	}
	state := *s.state
	s.mu.RUnlock()

	state = s.resolveShortName(ctx, state)

	start := time.Now()
	actions, err := s.source.FetchActions(ctx, state.GameID)
	snap := pbp.Snapshot{Actions: actions, Err: err}

	next, result := s.extractor.Apply(state, snap)
	duration := time.Since(start)

	if snap.Status() == pbp.SnapshotFailed {
		log.Printf("[tracker] ⚠️  Fetch failed for game %s: %v", state.GameID, snap.Err)
	}

	s.mu.Lock()
	if s.state == nil || s.state.SessionID != state.SessionID {
		// The selection changed while the fetch was in flight.
		s.mu.Unlock()
		return result, nil
	}
	s.state = &next
	s.lastResult = &result
	s.lastPassAt = time.Now()
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ObservePass(string(result.Outcome), len(result.NewEntries), duration)
		s.metrics.SetFeedSizes(len(next.GlobalFeed), len(next.PlayerFeed))
	}

	if len(result.NewEntries) > 0 {
		log.Printf("[tracker] ✓ %d new actions (%d for %s), last id %d",
			len(result.NewEntries), len(result.NewPlayerEntries), next.ShortName, next.LastSeenID)
	}

	s.fanOut(ctx, next, result)
	return result, nil
}

func (s *Service) fanOut(ctx context.Context, state pbp.TrackerState, result pbp.PassResult) {
	if s.archive != nil && len(result.NewEntries) > 0 {
		if err := s.archive.SaveEntries(ctx, state.GameID, state.SessionID, result.NewEntries); err != nil {
			log.Printf("[tracker] ⚠️  Failed to archive %d entries: %v", len(result.NewEntries), err)
		}
	}

	if len(s.sinks) == 0 {
		return
	}

	update := Update{
		SessionID:  state.SessionID,
		GameID:     state.GameID,
		Player:     state.Player,
		ShortName:  state.ShortName,
		Timestamp:  time.Now().UTC(),
		PassResult: result,
	}
	for _, sink := range s.sinks {
		if err := sink.Publish(ctx, update); err != nil {
			log.Printf("[tracker] ⚠️  Failed to publish update: %v", err)
		}
	}
}

// Selection reports the current game and player, if any.
func (s *Service) Selection() (gameID, player string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return "", "", false
	}
	return s.state.GameID, s.state.Player, true
}

// State returns a copy of the full session state.
func (s *Service) State() (pbp.TrackerState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return pbp.TrackerState{}, ErrNoSelection
	}
	return *s.state, nil
}

// String describes the current selection for logs.
func (s *Service) String() string {
	gameID, player, ok := s.Selection()
	if !ok {
		return "tracker(idle)"
	}
	return fmt.Sprintf("tracker(%s in %s)", player, gameID)
}
