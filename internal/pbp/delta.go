package pbp

import (
	"strconv"
)

// Delta is the per-pass change of one statistic. Only increases are
// reported; a flat or falling value has no delta at all (Valid is false),
// which is different from a delta of zero.
type Delta struct {
	Value int
	Valid bool
}

// MarshalJSON encodes a missing delta as null.
func (d Delta) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(d.Value), 10), nil
}

// String renders the delta as "+N", or "" when there is none.
func (d Delta) String() string {
	if !d.Valid {
		return ""
	}
	return "+" + strconv.Itoa(d.Value)
}

// Deltas groups the deltas of a stat line.
type Deltas struct {
	Points   Delta `json:"points"`
	Rebounds Delta `json:"rebounds"`
	Assists  Delta `json:"assists"`
}

// ComputeDeltas compares current against previous and returns the deltas
// plus the value to retain as previous for the next pass, which is always
// current.
func ComputeDeltas(current, previous PlayerStats) (Deltas, PlayerStats) {
	return Deltas{
		Points:   deltaOf(current.Points, previous.Points),
		Rebounds: deltaOf(current.Rebounds, previous.Rebounds),
		Assists:  deltaOf(current.Assists, previous.Assists),
	}, current
}

func deltaOf(current, previous int) Delta {
	if current > previous {
		return Delta{Value: current - previous, Valid: true}
	}
	return Delta{}
}
