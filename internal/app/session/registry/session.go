package registry

import (
	"sync"
	"time"

	"github.com/osa030/radio247/internal/app/player"
	"github.com/osa030/radio247/internal/domain/listener"
)

// Session pairs a listener session with its playback store.
type Session struct {
	mu   sync.Mutex
	info *listener.Session
	pins int // open subscriptions; a pinned session never expires

	// Player is the session's playback state store.
	Player *player.Store

	done      chan struct{}
	closeOnce sync.Once
}

func newSession(id string, now time.Time, store *player.Store) *Session {
	return &Session{
		info:   listener.NewSession(id, now),
		Player: store,
		done:   make(chan struct{}),
	}
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.info.ID
}

// Info returns a copy of the listener session.
func (s *Session) Info() listener.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.info
}

// Done returns a channel closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info.Touch(now)
}

// Pinned reports whether the session is held open by a subscription.
func (s *Session) Pinned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pins > 0
}

func (s *Session) pin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pins++
}

// unpin releases one pin and counts the release as activity,
// so the idle timeout starts when the last subscriber leaves.
func (s *Session) unpin(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pins > 0 {
		s.pins--
	}
	s.info.Touch(now)
}

func (s *Session) isExpired(now time.Time, timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pins > 0 {
		return false
	}
	return s.info.IsExpired(now, timeout)
}

func (s *Session) end() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
