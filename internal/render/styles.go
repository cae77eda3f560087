package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fortuna/argus/internal/pbp"
)

// Colors used in the terminal view.
var (
	colorPrimary = lipgloss.Color("62")  // Purple
	colorMuted   = lipgloss.Color("241") // Gray
	colorSuccess = lipgloss.Color("78")  // Green
	colorError   = lipgloss.Color("196") // Red
	colorInfo    = lipgloss.Color("39")  // Blue
	colorWarning = lipgloss.Color("214") // Orange
)

// Header style for the selection banner.
var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// SectionTitle style for feed headings.
var SectionTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorPrimary).
	MarginTop(1)

// StatBox style for one metric tile.
var StatBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(0, 2).
	MarginRight(1)

// DeltaStyle for the "+N" badge next to a metric.
var DeltaStyle = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Bold(true)

// EventBox style for plain global-feed entries.
var EventBox = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252"))

// MutedText for footers and hints.
var MutedText = lipgloss.NewStyle().
	Foreground(colorMuted)

var toneStyles = map[pbp.Tone]lipgloss.Style{
	pbp.ToneSuccess: lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
	pbp.ToneError:   lipgloss.NewStyle().Foreground(colorError),
	pbp.ToneInfo:    lipgloss.NewStyle().Foreground(colorInfo),
	pbp.ToneWarning: lipgloss.NewStyle().Foreground(colorWarning),
	pbp.TonePlain:   EventBox,
}

// styleFor returns the style of a tone, plain for unknown tones.
func styleFor(tone pbp.Tone) lipgloss.Style {
	if s, ok := toneStyles[tone]; ok {
		return s
	}
	return EventBox
}
