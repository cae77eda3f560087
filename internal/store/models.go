package store

import "time"

// PlayLogEntry is an archived global-feed entry
type PlayLogEntry struct {
	GameID     string    `json:"game_id" db:"game_id"`
	ActionID   int       `json:"action_id" db:"action_id"`
	SessionID  string    `json:"session_id" db:"session_id"`
	Category   string    `json:"category" db:"category"`
	Text       string    `json:"text" db:"entry_text"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}
