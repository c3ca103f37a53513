// Package episode provides the Episode domain entity.
package episode

import "fmt"

// Episode represents a single playable station or episode entry.
// Episodes are value objects: once loaded from the catalogue they are never mutated.
type Episode struct {
	ID               string // Channel ID
	Index            int    // 1-based position in the catalogue (page slug)
	Title            string // Station title
	Members          string // Artist / contributor string
	Thumbnail        string // Cover image URL
	Duration         int64  // Duration in seconds (0 for live streams)
	DurationAsString string // Duration formatted as HH:MM:SS
	URL              string // Stream URL
	PublishedAt      string // Formatted publish date
	Description      string // Free-form description
}

// Slug returns the page slug addressing this episode.
func (e Episode) Slug() string {
	return fmt.Sprintf("%d", e.Index)
}

// FormatDuration converts a duration in seconds to HH:MM:SS.
// Negative durations are treated as zero.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
