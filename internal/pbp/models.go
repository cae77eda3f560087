// Package pbp turns periodically re-fetched play-by-play snapshots into a
// deduplicated event feed and a heuristic stat line for one tracked player.
//
// Everything in this package is pure: no I/O, no logging, no clocks.
package pbp

// Action is one play-by-play record as delivered by the live feed.
// Action ids increase per event, but a snapshot may repeat ids already seen.
type Action struct {
	ID          int    `json:"id"`
	Period      int    `json:"period"`
	Clock       string `json:"clock"`
	Description string `json:"description"`
	ScoreAway   string `json:"score_away"`
	ScoreHome   string `json:"score_home"`
}

// Category classifies a rendered event.
type Category string

const (
	CategoryScore  Category = "score"
	CategoryMiss   Category = "miss"
	CategoryNormal Category = "normal"
)

// LogEntry is a rendered, classified action. Entries are never mutated once built.
type LogEntry struct {
	ActionID int      `json:"action_id"`
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// Feed is a front-inserted log: index 0 is the newest entry.
type Feed []LogEntry

// Prepend returns a new feed with entries placed in front of f.
// entries must be given oldest first; the last of them ends up at index 0.
func (f Feed) Prepend(entries ...LogEntry) Feed {
	if len(entries) == 0 {
		return f
	}

	out := make(Feed, 0, len(entries)+len(f))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
	}
	return append(out, f...)
}

// Head returns at most the n newest entries. A negative n returns the whole feed.
func (f Feed) Head(n int) Feed {
	if n < 0 || n >= len(f) {
		return f
	}
	return f[:n]
}

// PlayerStats is the stat line recovered from a player feed.
type PlayerStats struct {
	Points   int `json:"points"`
	Rebounds int `json:"rebounds"`
	Assists  int `json:"assists"`
}
