package pbp

import (
	"regexp"
	"strings"
)

// Period clocks arrive as ISO-8601-ish durations, e.g. "PT11M42.00S".
var clockPattern = regexp.MustCompile(`^PT(\d+)M(\d+)\.(\d+)S`)

// FormatClock renders a period clock for display.
//
//	PT0M5.30S  -> 00:05:30  (under a minute: seconds and hundredths)
//	PT12M0.00S -> 12:00
//
// Anything that does not look like a period clock is returned unchanged.
func FormatClock(clock string) string {
	m := clockPattern.FindStringSubmatch(clock)
	if m == nil {
		return clock
	}

	minutes, seconds, hundredths := m[1], m[2], m[3]
	if strings.TrimLeft(minutes, "0") == "" {
		return "00:" + padLeft(seconds, 2) + ":" + padRight(hundredths, 2)
	}
	return padLeft(minutes, 2) + ":" + padLeft(seconds, 2)
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat("0", width-len(s))
}
