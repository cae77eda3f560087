package pbp

import (
	"fmt"
	"strings"
)

// Substrings that mark a made shot in a play description.
var scoringKeywords = []string{
	"3pt",
	"layup",
	"dunk",
	"jump",
	"hook",
	"floater",
	"tip",
	"runner",
	"fadeaway",
	"free throw",
	"scores",
	"makes",
}

// IsScoringKeyword reports whether description mentions any shot keyword.
func IsScoringKeyword(description string) bool {
	lower := strings.ToLower(description)
	for _, kw := range scoringKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsMiss reports whether description records a missed attempt.
func IsMiss(description string) bool {
	return strings.Contains(strings.ToLower(description), "miss")
}

// Categorize assigns a category. A miss wins over any shot keyword.
func Categorize(description string) Category {
	switch {
	case IsMiss(description):
		return CategoryMiss
	case IsScoringKeyword(description):
		return CategoryScore
	default:
		return CategoryNormal
	}
}

// RenderText builds the display line for an action.
func RenderText(action Action) string {
	return fmt.Sprintf("[Q%d] %s - %s | Score: %s - %s",
		action.Period,
		FormatClock(action.Clock),
		action.Description,
		action.ScoreAway,
		action.ScoreHome,
	)
}

// Classify renders and categorizes a single action.
func Classify(action Action) LogEntry {
	return LogEntry{
		ActionID: action.ID,
		Text:     RenderText(action),
		Category: Categorize(action.Description),
	}
}

// MentionsPlayer reports whether description references the short name,
// ignoring case. An empty name matches nothing.
func MentionsPlayer(description, shortName string) bool {
	if shortName == "" {
		return false
	}
	return strings.Contains(strings.ToLower(description), strings.ToLower(shortName))
}

// ShortName abbreviates a full name the way play descriptions do:
// "LeBron James" -> "L. James". Single-token names are returned unchanged.
func ShortName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) < 2 {
		return fullName
	}

	first := []rune(parts[0])
	return string(first[0]) + ". " + parts[len(parts)-1]
}
