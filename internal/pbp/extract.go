package pbp

import (
	"regexp"
	"strconv"
	"strings"
)

// Patterns are applied to lowercased entry text.
var (
	pointsPattern    = regexp.MustCompile(`\((\d+)\s*pts?\)`)
	offensivePattern = regexp.MustCompile(`off:(\d+)`)
	defensivePattern = regexp.MustCompile(`def:(\d+)`)
	assistsPattern   = regexp.MustCompile(`(\d+)\s*ast`)
)

// StatRule recovers one statistic from a player feed.
type StatRule interface {
	Extract(feed Feed, shortName string) int
}

// PointsRule reports the highest running point total credited to the player.
//
// Only score entries count, and only when the player's name appears before
// the "(N pts)" token; a later token belongs to someone else in the same
// description (usually the assisting player). Taking the maximum keeps
// replayed or reordered entries from double counting.
type PointsRule struct{}

func (PointsRule) Extract(feed Feed, shortName string) int {
	best := 0
	for _, entry := range feed {
		if entry.Category != CategoryScore {
			continue
		}
		if n, ok := creditedPoints(entry.Text, shortName); ok && n > best {
			best = n
		}
	}
	return best
}

// creditedPoints returns the "(N pts)" value in text when shortName precedes it.
func creditedPoints(text, shortName string) (int, bool) {
	if shortName == "" {
		return 0, false
	}

	lower := strings.ToLower(text)
	namePos := strings.Index(lower, strings.ToLower(shortName))
	if namePos < 0 {
		return 0, false
	}

	loc := pointsPattern.FindStringSubmatchIndex(lower)
	if loc == nil || namePos >= loc[0] {
		return 0, false
	}

	n, err := strconv.Atoi(lower[loc[2]:loc[3]])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ReboundsRule reports off+def from the newest rebound entry carrying both
// counters. Scanning stops at the first non-zero total.
type ReboundsRule struct{}

func (ReboundsRule) Extract(feed Feed, _ string) int {
	for _, entry := range feed {
		lower := strings.ToLower(entry.Text)
		if !strings.Contains(lower, "rebound") ||
			!strings.Contains(lower, "off:") ||
			!strings.Contains(lower, "def:") {
			continue
		}

		off := offensivePattern.FindStringSubmatch(lower)
		def := defensivePattern.FindStringSubmatch(lower)
		if off == nil || def == nil {
			continue
		}

		if total := atoi(off[1]) + atoi(def[1]); total != 0 {
			return total
		}
	}
	return 0
}

// AssistsRule reports the "N ast" value of the newest entry carrying one.
// Scanning stops at the first non-zero value. The name position is not
// checked, so an assist credited to another player in a shared description
// is picked up as well.
type AssistsRule struct{}

func (AssistsRule) Extract(feed Feed, _ string) int {
	for _, entry := range feed {
		lower := strings.ToLower(entry.Text)
		if !strings.Contains(lower, "ast") {
			continue
		}

		m := assistsPattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}

		if n := atoi(m[1]); n != 0 {
			return n
		}
	}
	return 0
}

// Extractor recomputes a full stat line from scratch on every call.
type Extractor struct {
	Points   StatRule
	Rebounds StatRule
	Assists  StatRule
}

// NewExtractor returns an Extractor wired with the default rules.
func NewExtractor() *Extractor {
	return &Extractor{
		Points:   PointsRule{},
		Rebounds: ReboundsRule{},
		Assists:  AssistsRule{},
	}
}

// Extract runs every rule over feed.
func (x *Extractor) Extract(feed Feed, shortName string) PlayerStats {
	return PlayerStats{
		Points:   x.Points.Extract(feed, shortName),
		Rebounds: x.Rebounds.Extract(feed, shortName),
		Assists:  x.Assists.Extract(feed, shortName),
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
