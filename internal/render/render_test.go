package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fortuna/argus/internal/pbp"
	"github.com/fortuna/argus/internal/tracker"
)

func entry(id int, text string, tone pbp.Tone) tracker.ViewEntry {
	return tracker.ViewEntry{LogEntry: pbp.LogEntry{ActionID: id, Text: text}, Tone: tone}
}

func TestEntry_Markers(t *testing.T) {
	tests := []struct {
		name   string
		tone   pbp.Tone
		prefix string
		suffix string
	}{
		{"made shot", pbp.ToneSuccess, "🏀 ", ""},
		{"sub in", pbp.ToneInfo, "", " 🔺"},
		{"sub out", pbp.ToneWarning, "", " 🔻"},
		{"miss", pbp.ToneError, "", ""},
		{"plain", pbp.TonePlain, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Entry(entry(1, "S. Curry play", tt.tone))
			assert.Contains(t, out, tt.prefix+"S. Curry play"+tt.suffix)
		})
	}
}

func TestStats_ShowsOnlyRealDeltas(t *testing.T) {
	out := Stats(
		pbp.PlayerStats{Points: 27, Rebounds: 6, Assists: 4},
		pbp.Deltas{Points: pbp.Delta{Value: 3, Valid: true}},
	)

	assert.Contains(t, out, "Points")
	assert.Contains(t, out, "27")
	assert.Contains(t, out, "+3")
	assert.Equal(t, 1, strings.Count(out, "+"))
}

func TestView(t *testing.T) {
	at := time.Date(2026, 1, 10, 20, 15, 0, 0, time.UTC)
	v := tracker.View{
		GameID:    "0022400001",
		Player:    "Stephen Curry",
		ShortName: "S. Curry",
		PlayerFeed: []tracker.ViewEntry{
			entry(4, "[Q1] 11:40 - S. Curry 3PT (3 PTS) | Score: 3 - 0", pbp.ToneSuccess),
		},
		GlobalFeed: []tracker.ViewEntry{
			entry(7, "[Q1] 11:20 - MISS L. James Jump Shot | Score: 3 - 0", pbp.TonePlain),
			entry(4, "[Q1] 11:40 - S. Curry 3PT (3 PTS) | Score: 3 - 0", pbp.TonePlain),
		},
		GlobalTotal: 120,
		PlayerTotal: 1,
		Stats:       pbp.PlayerStats{Points: 3},
		Outcome:     pbp.OutcomeUpdated,
		LastPassAt:  &at,
	}

	out := View(v)
	assert.Contains(t, out, "Stephen Curry (S. Curry)")
	assert.Contains(t, out, "Full Play-by-Play (2 of 120)")
	assert.Contains(t, out, "Player Tracker (1 of 1)")
	assert.Less(t, strings.Index(out, "MISS L. James"), strings.LastIndex(out, "S. Curry 3PT"))
	assert.Contains(t, out, "updated")
}

func TestIdle(t *testing.T) {
	assert.Contains(t, Idle(), "No game and player selected")
}
