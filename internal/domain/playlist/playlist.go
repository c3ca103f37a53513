// Package playlist provides the Playlist domain entity.
package playlist

import "github.com/osa030/radio247/internal/domain/episode"

// Playlist is an ordered, immutable sequence of episodes.
// Insertion order is playback order.
type Playlist struct {
	episodes []episode.Episode
}

// New creates a playlist holding a copy of the given episodes.
func New(episodes []episode.Episode) Playlist {
	copied := make([]episode.Episode, len(episodes))
	copy(copied, episodes)
	return Playlist{episodes: copied}
}

// Single creates a playlist containing exactly one episode.
func Single(e episode.Episode) Playlist {
	return Playlist{episodes: []episode.Episode{e}}
}

// Len returns the number of episodes.
func (p Playlist) Len() int {
	return len(p.episodes)
}

// IsEmpty reports whether the playlist holds no episodes.
func (p Playlist) IsEmpty() bool {
	return len(p.episodes) == 0
}

// At returns the episode at index i.
func (p Playlist) At(i int) (episode.Episode, bool) {
	if i < 0 || i >= len(p.episodes) {
		return episode.Episode{}, false
	}
	return p.episodes[i], true
}

// Episodes returns a copy of the episodes in playback order.
func (p Playlist) Episodes() []episode.Episode {
	result := make([]episode.Episode, len(p.episodes))
	copy(result, p.episodes)
	return result
}

// EpisodeIDs returns all episode IDs in the playlist.
func (p Playlist) EpisodeIDs() []string {
	ids := make([]string, len(p.episodes))
	for i, e := range p.episodes {
		ids[i] = e.ID
	}
	return ids
}

// TotalDuration returns the total duration of all episodes in seconds.
func (p Playlist) TotalDuration() int64 {
	var total int64
	for _, e := range p.episodes {
		total += e.Duration
	}
	return total
}
