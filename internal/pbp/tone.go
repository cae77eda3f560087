package pbp

import "strings"

// Tone is a presentation hint for a player-feed entry.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	TonePlain   Tone = "plain"
)

// ToneOf picks the highlight for an entry in the tracked player's feed:
// made shots credited to the player, misses, and substitutions in or out.
func ToneOf(entry LogEntry, shortName string) Tone {
	lower := strings.ToLower(entry.Text)

	switch entry.Category {
	case CategoryScore:
		if _, ok := creditedPoints(entry.Text, shortName); ok {
			return ToneSuccess
		}
		return TonePlain
	case CategoryMiss:
		return ToneError
	}

	switch {
	case strings.Contains(lower, "sub in"):
		return ToneInfo
	case strings.Contains(lower, "sub out"):
		return ToneWarning
	default:
		return TonePlain
	}
}
