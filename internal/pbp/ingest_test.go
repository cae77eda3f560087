package pbp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func actionIDs(actions []Action) []int {
	ids := make([]int, 0, len(actions))
	for _, a := range actions {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestIngest(t *testing.T) {
	tests := []struct {
		name       string
		snapshot   []Action
		lastSeen   int
		expectIDs  []int
		expectLast int
	}{
		{
			name:       "empty snapshot",
			snapshot:   nil,
			lastSeen:   7,
			expectIDs:  []int{},
			expectLast: 7,
		},
		{
			name:       "first pass takes everything",
			snapshot:   []Action{{ID: 1}, {ID: 2}, {ID: 4}},
			lastSeen:   0,
			expectIDs:  []int{1, 2, 4},
			expectLast: 4,
		},
		{
			name:       "already seen ids are skipped",
			snapshot:   []Action{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 5}},
			lastSeen:   2,
			expectIDs:  []int{3, 5},
			expectLast: 5,
		},
		{
			name:       "replayed snapshot yields nothing",
			snapshot:   []Action{{ID: 1}, {ID: 2}},
			lastSeen:   2,
			expectIDs:  []int{},
			expectLast: 2,
		},
		{
			name:       "out of order id below running max is dropped",
			snapshot:   []Action{{ID: 5}, {ID: 3}, {ID: 6}},
			lastSeen:   0,
			expectIDs:  []int{5, 6},
			expectLast: 6,
		},
		{
			name:       "duplicate id within a snapshot is kept once",
			snapshot:   []Action{{ID: 8}, {ID: 8}},
			lastSeen:   0,
			expectIDs:  []int{8},
			expectLast: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fresh, last := Ingest(tt.snapshot, tt.lastSeen)
			assert.Equal(t, tt.expectIDs, actionIDs(fresh))
			assert.Equal(t, tt.expectLast, last)
		})
	}
}

func TestIngestIsIdempotent(t *testing.T) {
	snapshot := []Action{{ID: 10}, {ID: 11}, {ID: 12}}

	first, last := Ingest(snapshot, 0)
	assert.Len(t, first, 3)

	second, again := Ingest(snapshot, last)
	assert.Empty(t, second)
	assert.Equal(t, last, again)
}
