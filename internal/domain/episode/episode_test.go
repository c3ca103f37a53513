package episode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int64
		expected string
	}{
		{name: "zero", seconds: 0, expected: "00:00:00"},
		{name: "seconds only", seconds: 59, expected: "00:00:59"},
		{name: "minutes and seconds", seconds: 125, expected: "00:02:05"},
		{name: "hours", seconds: 3725, expected: "01:02:05"},
		{name: "more than a day", seconds: 90061, expected: "25:01:01"},
		{name: "negative", seconds: -5, expected: "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.seconds))
		})
	}
}

func TestEpisode_Slug(t *testing.T) {
	e := Episode{ID: "channel-7", Index: 7}
	assert.Equal(t, "7", e.Slug())
}

func TestFormatPublished(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "single digit day",
			date:     time.Date(2026, time.October, 9, 12, 0, 0, 0, time.UTC),
			expected: "9 out 26",
		},
		{
			name:     "january",
			date:     time.Date(2021, time.January, 31, 23, 59, 0, 0, time.UTC),
			expected: "31 jan 21",
		},
		{
			name:     "year padding",
			date:     time.Date(2005, time.December, 1, 0, 0, 0, 0, time.UTC),
			expected: "1 dez 05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPublished(tt.date))
		})
	}
}

func TestFormatHeaderDate(t *testing.T) {
	// 2026-10-19 is a Monday
	date := time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "seg, 19 outubro", FormatHeaderDate(date))

	sunday := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "dom, 1 março", FormatHeaderDate(sunday))
}
