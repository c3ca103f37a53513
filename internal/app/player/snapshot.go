package player

import (
	"github.com/osa030/radio247/internal/domain/episode"
	"github.com/osa030/radio247/internal/domain/playlist"
)

// Snapshot is a read-only copy of a store's state.
// Derived values are computed on every call.
type Snapshot struct {
	Version      uint64 // Incremented on every state change
	Playlist     playlist.Playlist
	CurrentIndex int
	IsPlaying    bool
	IsLooping    bool
	IsShuffling  bool
	Volume       float64
	Muted        bool
}

// EffectiveVolume returns 0 when muted, volume squared otherwise.
func (s Snapshot) EffectiveVolume() float64 {
	return effectiveVolume(s.Volume, s.Muted)
}

// HasNext reports whether PlayNext would move. Always true while shuffling.
func (s Snapshot) HasNext() bool {
	return s.IsShuffling || s.CurrentIndex+1 < s.Playlist.Len()
}

// HasPrevious reports whether PlayPrevious would move.
func (s Snapshot) HasPrevious() bool {
	return s.CurrentIndex > 0
}

// CurrentEpisode returns the episode at the current index.
func (s Snapshot) CurrentEpisode() (episode.Episode, bool) {
	return s.Playlist.At(s.CurrentIndex)
}

// State returns the transport state derived from the snapshot.
func (s Snapshot) State() State {
	if s.Playlist.IsEmpty() {
		return StateIdle
	}
	if s.IsPlaying {
		return StatePlaying
	}
	return StatePaused
}
