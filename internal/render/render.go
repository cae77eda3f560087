// Package render draws a tracker view for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fortuna/argus/internal/pbp"
	"github.com/fortuna/argus/internal/tracker"
)

// Markers decorating toned player-feed entries.
const (
	markScore   = "🏀 "
	markSubIn   = " 🔺"
	markSubOut  = " 🔻"
	noSelection = "No game and player selected."
)

// View renders the stat tiles, the player feed and the global feed.
// The view is expected to be truncated already.
func View(v tracker.View) string {
	var b strings.Builder

	b.WriteString(Header.Render(fmt.Sprintf("%s (%s) · game %s", v.Player, v.ShortName, v.GameID)))
	b.WriteString("\n")
	b.WriteString(Stats(v.Stats, v.Deltas))
	b.WriteString("\n")

	b.WriteString(SectionTitle.Render(fmt.Sprintf("Player Tracker (%d of %d)", len(v.PlayerFeed), v.PlayerTotal)))
	b.WriteString("\n")
	for _, entry := range v.PlayerFeed {
		b.WriteString(Entry(entry))
		b.WriteString("\n")
	}

	b.WriteString(SectionTitle.Render(fmt.Sprintf("Full Play-by-Play (%d of %d)", len(v.GlobalFeed), v.GlobalTotal)))
	b.WriteString("\n")
	for _, entry := range v.GlobalFeed {
		b.WriteString(EventBox.Render(entry.Text))
		b.WriteString("\n")
	}

	if v.LastPassAt != nil {
		b.WriteString(MutedText.Render(fmt.Sprintf("last pass %s · %s", v.LastPassAt.Local().Format("15:04:05"), v.Outcome)))
		b.WriteString("\n")
	}

	return b.String()
}

// Stats renders the three metric tiles side by side.
func Stats(stats pbp.PlayerStats, deltas pbp.Deltas) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Points", stats.Points, deltas.Points),
		tile("Rebounds", stats.Rebounds, deltas.Rebounds),
		tile("Assists", stats.Assists, deltas.Assists),
	)
}

func tile(label string, value int, delta pbp.Delta) string {
	line := fmt.Sprintf("%s\n%d", label, value)
	if delta.Valid {
		line += " " + DeltaStyle.Render(delta.String())
	}
	return StatBox.Render(line)
}

// Entry renders one player-feed entry by its tone.
func Entry(entry tracker.ViewEntry) string {
	text := entry.Text
	switch entry.Tone {
	case pbp.ToneSuccess:
		text = markScore + text
	case pbp.ToneInfo:
		text += markSubIn
	case pbp.ToneWarning:
		text += markSubOut
	}
	return styleFor(entry.Tone).Render(text)
}

// Idle is shown while nothing is tracked.
func Idle() string {
	return MutedText.Render(noSelection)
}
