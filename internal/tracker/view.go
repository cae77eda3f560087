package tracker

import (
	"time"

	"github.com/fortuna/argus/internal/pbp"
)

// ViewEntry is a feed entry with its presentation tone.
type ViewEntry struct {
	pbp.LogEntry
	Tone pbp.Tone `json:"tone"`
}

// View is a truncated, read-only copy of the session for presentation.
type View struct {
	SessionID  string          `json:"session_id"`
	GameID     string          `json:"game_id"`
	Player     string          `json:"player"`
	ShortName  string          `json:"short_name"`
	LastSeenID int             `json:"last_seen_id"`
	GlobalFeed []ViewEntry     `json:"global_feed"`
	PlayerFeed []ViewEntry     `json:"player_feed"`
	Stats      pbp.PlayerStats `json:"stats"`
	Deltas     pbp.Deltas      `json:"deltas"`
	Outcome    pbp.Outcome     `json:"outcome,omitempty"`
	LastPassAt *time.Time      `json:"last_pass_at,omitempty"`

	GlobalTotal int `json:"global_total"`
	PlayerTotal int `json:"player_total"`
}

// View returns the newest globalLimit and playerLimit entries of the two
// feeds with the latest stat line. Limits of zero or less mean no limit.
func (s *Service) View(globalLimit, playerLimit int) (View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return View{}, ErrNoSelection
	}
	state := s.state

	v := View{
		SessionID:   state.SessionID,
		GameID:      state.GameID,
		Player:      state.Player,
		ShortName:   state.ShortName,
		LastSeenID:  state.LastSeenID,
		GlobalFeed:  toneFeed(limitFeed(state.GlobalFeed, globalLimit), pbp.TonePlain, state.ShortName),
		PlayerFeed:  toneFeed(limitFeed(state.PlayerFeed, playerLimit), "", state.ShortName),
		Stats:       state.PreviousStats,
		GlobalTotal: len(state.GlobalFeed),
		PlayerTotal: len(state.PlayerFeed),
	}

	if s.lastResult != nil {
		v.Deltas = s.lastResult.Deltas
		v.Outcome = s.lastResult.Outcome
		at := s.lastPassAt
		v.LastPassAt = &at
	}

	return v, nil
}

func limitFeed(feed pbp.Feed, limit int) pbp.Feed {
	if limit <= 0 {
		return feed
	}
	return feed.Head(limit)
}

// toneFeed copies feed with tones. A fixed tone applies to every entry;
// the empty tone derives one per entry.
func toneFeed(feed pbp.Feed, fixed pbp.Tone, shortName string) []ViewEntry {
	out := make([]ViewEntry, 0, len(feed))
	for _, entry := range feed {
		tone := fixed
		if tone == "" {
			tone = pbp.ToneOf(entry, shortName)
		}
		out = append(out, ViewEntry{LogEntry: entry, Tone: tone})
	}
	return out
}
