package pbp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "under a minute keeps hundredths", input: "PT0M5.30S", expected: "00:05:30"},
		{name: "full minutes drop hundredths", input: "PT12M0.00S", expected: "12:00"},
		{name: "single digit minutes padded", input: "PT3M7.00S", expected: "03:07"},
		{name: "padded minutes field still zero", input: "PT00M42.10S", expected: "00:42:10"},
		{name: "single digit hundredths left justified", input: "PT0M9.5S", expected: "00:09:50"},
		{name: "trailing garbage after a valid prefix", input: "PT1M2.00Sxyz", expected: "01:02"},
		{name: "garbage passes through", input: "garbage", expected: "garbage"},
		{name: "empty passes through", input: "", expected: ""},
		{name: "missing fraction passes through", input: "PT5M30S", expected: "PT5M30S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatClock(tt.input))
		})
	}
}
