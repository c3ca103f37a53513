// Package registry keeps one playback store per listener session.
package registry

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radio247/internal/app/player"
	"github.com/osa030/radio247/internal/infra/logger"
)

var (
	ErrInvalidSession  = errors.New("invalid session")
	ErrTooManySessions = errors.New("too many sessions")
)

// Publisher receives the snapshot of a session's store after every change.
type Publisher interface {
	Publish(sessionID string, snap player.Snapshot)
}

// Config holds registry limits.
type Config struct {
	IdleTimeout   time.Duration // 0 disables expiry
	SweepInterval time.Duration
	MaxSessions   int // 0 means unlimited
}

// Registry manages listener sessions with thread-safe access.
type Registry struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	config    Config
	publisher Publisher
	storeOpts []player.Option
	now       func() time.Time
}

// NewRegistry creates a new session registry.
// publisher may be nil; storeOpts are applied to every new store.
func NewRegistry(cfg Config, publisher Publisher, storeOpts ...player.Option) *Registry {
	return &Registry{
		sessions:  make(map[string]*Session),
		config:    cfg,
		publisher: publisher,
		storeOpts: storeOpts,
		now:       time.Now,
	}
}

// Create starts a new session with a fresh playback store.
func (r *Registry) Create() (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.config.MaxSessions > 0 && len(r.sessions) >= r.config.MaxSessions {
		return nil, errors.Wrapf(ErrTooManySessions, "limit %d", r.config.MaxSessions)
	}

	id := uuid.New().String()
	opts := append([]player.Option{}, r.storeOpts...)
	if r.publisher != nil {
		publisher := r.publisher
		opts = append(opts, player.WithOnChange(func(snap player.Snapshot) {
			publisher.Publish(id, snap)
		}))
	}

	session := newSession(id, r.now(), player.New(opts...))
	r.sessions[id] = session

	zlog.Debug().Str("session", id).Msg("session created")
	return session, nil
}

// Get retrieves a session by ID and records activity on it.
func (r *Registry) Get(sessionID string) (*Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}
	session.touch(r.now())
	return session, nil
}

// Pin keeps a session from expiring until the returned release func is called.
// The release func is safe to call more than once.
func (r *Registry) Pin(sessionID string) (func(), error) {
	session, err := r.Get(sessionID)
	if err != nil {
		return nil, err
	}
	session.pin()

	var once sync.Once
	return func() {
		once.Do(func() {
			session.unpin(r.now())
		})
	}, nil
}

// End removes a session and closes its Done channel.
func (r *Registry) End(sessionID string) error {
	r.mu.Lock()
	session, ok := r.sessions[sessionID]
	if ok {
		delete(r.sessions, sessionID)
	}
	r.mu.Unlock()

	if !ok {
		return ErrInvalidSession
	}
	session.end()
	zlog.Debug().Str("session", sessionID).Msg("session ended")
	return nil
}

// All returns all sessions ordered by creation time.
func (r *Registry) All() []*Session {
	r.mu.RLock()
	result := make([]*Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		result = append(result, session)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Info(), result[j].Info()
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return result
}

// Count returns the number of sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// SweepIdle ends sessions idle for longer than the idle timeout and returns their IDs.
func (r *Registry) SweepIdle(now time.Time) []string {
	if r.config.IdleTimeout <= 0 {
		return nil
	}

	r.mu.Lock()
	var expired []*Session
	for id, session := range r.sessions {
		if session.isExpired(now, r.config.IdleTimeout) {
			expired = append(expired, session)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	ids := make([]string, 0, len(expired))
	for _, session := range expired {
		session.end()
		ids = append(ids, session.ID())
	}
	sort.Strings(ids)
	return ids
}

// Run sweeps idle sessions periodically until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	interval := r.config.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log := logger.Component("sessions")
	log.Debug().Msgf("idle sweeper started: interval=%s timeout=%s", interval, r.config.IdleTimeout)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ids := r.SweepIdle(r.now()); len(ids) > 0 {
				log.Info().Int("count", len(ids)).Msg("expired idle sessions")
			}
		}
	}
}

// EndAll ends every session.
func (r *Registry) EndAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, session := range sessions {
		session.end()
	}
}
