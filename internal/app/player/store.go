// Package player provides the playback state store shared by the UI of one listener.
package player

import (
	"math/rand"
	"sync"

	"github.com/osa030/radio247/internal/domain/episode"
	"github.com/osa030/radio247/internal/domain/playlist"
)

// DefaultVolume is the volume of a freshly created store.
const DefaultVolume = 0.25

// Option configures a Store.
type Option func(*Store)

// WithRand sets the source used by shuffle. fn must return a value in [0, n).
func WithRand(fn func(n int) int) Option {
	return func(s *Store) {
		s.randIntN = fn
	}
}

// WithOnChange registers a hook called with the new snapshot after every state change.
// The hook runs outside the store lock.
func WithOnChange(fn func(Snapshot)) Option {
	return func(s *Store) {
		s.onChange = fn
	}
}

// Store is the single source of truth for what is playing and how.
//
// The store never fails: out-of-range indexes and volumes are the caller's
// responsibility and are stored as given.
type Store struct {
	mu sync.RWMutex

	playlist     playlist.Playlist
	currentIndex int

	isPlaying   bool
	isLooping   bool
	isShuffling bool

	volume float64
	muted  bool

	version uint64

	randIntN func(n int) int
	onChange func(Snapshot)
}

// New creates a store with an empty playlist and default volume.
func New(opts ...Option) *Store {
	s := &Store{
		playlist: playlist.Playlist{},
		volume:   DefaultVolume,
		randIntN: rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaySingle replaces the playlist with the given episode and starts playing it.
func (s *Store) PlaySingle(e episode.Episode) {
	s.mutate(func() bool {
		s.playlist = playlist.Single(e)
		s.currentIndex = 0
		s.isPlaying = true
		return true
	})
}

// PlayList replaces the playlist and starts playing at startIndex.
// startIndex must address an element of episodes.
func (s *Store) PlayList(episodes []episode.Episode, startIndex int) {
	s.mutate(func() bool {
		s.playlist = playlist.New(episodes)
		s.currentIndex = startIndex
		s.isPlaying = true
		return true
	})
}

// TogglePlay flips the playing flag.
func (s *Store) TogglePlay() {
	s.mutate(func() bool {
		s.isPlaying = !s.isPlaying
		return true
	})
}

// ToggleLoop flips the loop flag.
func (s *Store) ToggleLoop() {
	s.mutate(func() bool {
		s.isLooping = !s.isLooping
		return true
	})
}

// ToggleShuffle flips the shuffle flag.
func (s *Store) ToggleShuffle() {
	s.mutate(func() bool {
		s.isShuffling = !s.isShuffling
		return true
	})
}

// SetPlayingState sets the playing flag, typically from the audio element's own signals.
func (s *Store) SetPlayingState(playing bool) {
	s.mutate(func() bool {
		if s.isPlaying == playing {
			return false
		}
		s.isPlaying = playing
		return true
	})
}

// SetVolume stores the baseline volume. The level is not clamped.
func (s *Store) SetVolume(level float64) {
	s.mutate(func() bool {
		if s.volume == level {
			return false
		}
		s.volume = level
		return true
	})
}

// ToggleMute flips the muted flag without touching the volume.
func (s *Store) ToggleMute() {
	s.mutate(func() bool {
		s.muted = !s.muted
		return true
	})
}

// PlayNext advances the playlist.
// In shuffle mode a uniformly random index is drawn, possibly the current one.
// Otherwise the index moves forward by one, or stays put at the end of the list.
func (s *Store) PlayNext() {
	s.mutate(func() bool {
		if s.isShuffling {
			next := 0
			if n := s.playlist.Len(); n > 0 {
				next = s.randIntN(n)
			}
			changed := next != s.currentIndex
			s.currentIndex = next
			return changed
		}
		if s.hasNextLocked() {
			s.currentIndex++
			return true
		}
		return false
	})
}

// PlayPrevious moves back one episode, or does nothing at the start of the list.
func (s *Store) PlayPrevious() {
	s.mutate(func() bool {
		if !s.hasPreviousLocked() {
			return false
		}
		s.currentIndex--
		return true
	})
}

// Clear empties the playlist. Transport flags and volume are kept.
func (s *Store) Clear() {
	s.mutate(func() bool {
		if s.playlist.IsEmpty() && s.currentIndex == 0 {
			return false
		}
		s.playlist = playlist.Playlist{}
		s.currentIndex = 0
		return true
	})
}

// HasNext reports whether PlayNext can move. Always true while shuffling.
func (s *Store) HasNext() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasNextLocked()
}

// HasPrevious reports whether PlayPrevious can move.
func (s *Store) HasPrevious() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasPreviousLocked()
}

// EffectiveVolume returns the volume to apply to the audio element.
func (s *Store) EffectiveVolume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return effectiveVolume(s.volume, s.muted)
}

// CurrentIndex returns the index of the current episode.
func (s *Store) CurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentIndex
}

// IsPlaying returns the playing flag.
func (s *Store) IsPlaying() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isPlaying
}

// Snapshot returns a consistent copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// mutate applies fn under the write lock and publishes the new snapshot when fn
// reports a change.
func (s *Store) mutate(fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	s.version++
	snap := s.snapshotLocked()
	hook := s.onChange
	s.mu.Unlock()

	if hook != nil {
		hook(snap)
	}
}

func (s *Store) hasNextLocked() bool {
	return s.isShuffling || s.currentIndex+1 < s.playlist.Len()
}

func (s *Store) hasPreviousLocked() bool {
	return s.currentIndex > 0
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Version:      s.version,
		Playlist:     s.playlist,
		CurrentIndex: s.currentIndex,
		IsPlaying:    s.isPlaying,
		IsLooping:    s.isLooping,
		IsShuffling:  s.isShuffling,
		Volume:       s.volume,
		Muted:        s.muted,
	}
}

// effectiveVolume applies a perceptual curve to the baseline volume.
func effectiveVolume(volume float64, muted bool) float64 {
	if muted {
		return 0
	}
	return volume * volume
}
