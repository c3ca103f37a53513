// Package listener provides the listener Session domain entity.
package listener

import "time"

// Session represents one listener's visit to the site.
type Session struct {
	ID         string    // UUID
	CreatedAt  time.Time // Creation time
	LastSeenAt time.Time // Last time the listener touched the session
}

// NewSession creates a new listener session.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  now,
		LastSeenAt: now,
	}
}

// Touch records activity at the given time.
// Times earlier than the last recorded activity are ignored.
func (s *Session) Touch(now time.Time) {
	if now.After(s.LastSeenAt) {
		s.LastSeenAt = now
	}
}

// IdleFor returns how long the session has been inactive at now.
func (s *Session) IdleFor(now time.Time) time.Duration {
	idle := now.Sub(s.LastSeenAt)
	if idle < 0 {
		return 0
	}
	return idle
}

// IsExpired reports whether the session has been idle for longer than timeout.
// A zero timeout disables expiry.
func (s *Session) IsExpired(now time.Time, timeout time.Duration) bool {
	if timeout <= 0 {
		return false
	}
	return s.IdleFor(now) > timeout
}
