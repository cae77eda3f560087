package pbp

// SnapshotStatus tells apart the three ways a fetch can end.
type SnapshotStatus int

const (
	SnapshotOK SnapshotStatus = iota
	SnapshotEmpty
	SnapshotFailed
)

func (s SnapshotStatus) String() string {
	switch s {
	case SnapshotOK:
		return "ok"
	case SnapshotEmpty:
		return "empty"
	case SnapshotFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is the outcome of one fetch: the full action list or the error
// that prevented getting it.
type Snapshot struct {
	Actions []Action
	Err     error
}

// Status classifies the snapshot.
func (s Snapshot) Status() SnapshotStatus {
	switch {
	case s.Err != nil:
		return SnapshotFailed
	case len(s.Actions) == 0:
		return SnapshotEmpty
	default:
		return SnapshotOK
	}
}

// TrackerState is everything one (game, player) selection accumulates.
// It is a value: Apply returns a new state and never mutates its input, so
// a state handed to readers stays consistent.
type TrackerState struct {
	SessionID     string      `json:"session_id"`
	GameID        string      `json:"game_id"`
	Player        string      `json:"player"`
	ShortName     string      `json:"short_name"`
	LastSeenID    int         `json:"last_seen_id"`
	GlobalFeed    Feed        `json:"global_feed"`
	PlayerFeed    Feed        `json:"player_feed"`
	PreviousStats PlayerStats `json:"previous_stats"`
}

// NewTrackerState returns an empty state for a selection.
func NewTrackerState(sessionID, gameID, player, shortName string) TrackerState {
	return TrackerState{
		SessionID: sessionID,
		GameID:    gameID,
		Player:    player,
		ShortName: shortName,
	}
}

// Outcome summarizes a pass.
type Outcome string

const (
	OutcomeUpdated     Outcome = "updated"
	OutcomeIdle        Outcome = "idle"
	OutcomeFetchFailed Outcome = "fetch_failed"
)

// PassResult describes what one pass changed.
type PassResult struct {
	Outcome  Outcome `json:"outcome"`
	FetchErr error   `json:"-"`

	// New entries in snapshot order (oldest first).
	NewEntries       []LogEntry `json:"new_entries"`
	NewPlayerEntries []LogEntry `json:"new_player_entries"`

	Stats  PlayerStats `json:"stats"`
	Deltas Deltas      `json:"deltas"`
}

var defaultExtractor = NewExtractor()

// Apply runs one pass over snap with the default extractor.
func Apply(state TrackerState, snap Snapshot) (TrackerState, PassResult) {
	return defaultExtractor.Apply(state, snap)
}

// Apply runs one pass: dedup, classify, prepend to the feeds, re-extract the
// stat line and derive deltas. A failed snapshot counts as no new actions;
// the stat line and deltas are still recomputed.
func (x *Extractor) Apply(state TrackerState, snap Snapshot) (TrackerState, PassResult) {
	result := PassResult{Outcome: OutcomeIdle}

	actions := snap.Actions
	if snap.Err != nil {
		actions = nil
		result.Outcome = OutcomeFetchFailed
		result.FetchErr = snap.Err
	}

	fresh, lastSeen := Ingest(actions, state.LastSeenID)
	for _, action := range fresh {
		entry := Classify(action)
		result.NewEntries = append(result.NewEntries, entry)
		if MentionsPlayer(action.Description, state.ShortName) {
			result.NewPlayerEntries = append(result.NewPlayerEntries, entry)
		}
	}
	if len(fresh) > 0 {
		result.Outcome = OutcomeUpdated
	}

	next := state
	next.LastSeenID = lastSeen
	next.GlobalFeed = state.GlobalFeed.Prepend(result.NewEntries...)
	next.PlayerFeed = state.PlayerFeed.Prepend(result.NewPlayerEntries...)

	result.Stats = x.Extract(next.PlayerFeed, next.ShortName)
	result.Deltas, next.PreviousStats = ComputeDeltas(result.Stats, state.PreviousStats)

	return next, result
}
