package registry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/radio247/internal/app/player"
	"github.com/osa030/radio247/internal/domain/episode"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
	snaps  []player.Snapshot
}

func (p *recordingPublisher) Publish(sessionID string, snap player.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, sessionID)
	p.snaps = append(p.snaps, snap)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestRegistry(cfg Config, publisher Publisher) (*Registry, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(cfg, publisher)
	r.now = clock.Now
	return r, clock
}

func TestRegistry_CreateAndGet(t *testing.T) {
	r, _ := newTestRegistry(Config{}, nil)

	session, err := r.Create()
	require.NoError(t, err)

	_, err = uuid.Parse(session.ID())
	assert.NoError(t, err)

	got, err := r.Get(session.ID())
	require.NoError(t, err)
	assert.Same(t, session, got)

	snap := got.Player.Snapshot()
	assert.Equal(t, player.DefaultVolume, snap.Volume)
	assert.False(t, snap.IsPlaying)
	assert.Equal(t, 0, snap.Playlist.Len())
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r, _ := newTestRegistry(Config{}, nil)

	_, err := r.Get("missing")
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.ErrorIs(t, r.End("missing"), ErrInvalidSession)
}

func TestRegistry_SessionsAreIndependent(t *testing.T) {
	r, _ := newTestRegistry(Config{}, nil)

	a, err := r.Create()
	require.NoError(t, err)
	b, err := r.Create()
	require.NoError(t, err)

	a.Player.PlaySingle(episode.Episode{ID: "ep-1"})
	a.Player.SetVolume(0.9)

	assert.True(t, a.Player.IsPlaying())
	assert.False(t, b.Player.IsPlaying())
	assert.Equal(t, player.DefaultVolume, b.Player.Snapshot().Volume)
}

func TestRegistry_PublishesChanges(t *testing.T) {
	pub := &recordingPublisher{}
	r, _ := newTestRegistry(Config{}, pub)

	session, err := r.Create()
	require.NoError(t, err)

	session.Player.TogglePlay()
	session.Player.ToggleMute()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	assert.Equal(t, []string{session.ID(), session.ID()}, pub.events)
	assert.Equal(t, uint64(1), pub.snaps[0].Version)
	assert.Equal(t, uint64(2), pub.snaps[1].Version)
	assert.True(t, pub.snaps[1].Muted)
}

func TestRegistry_End(t *testing.T) {
	r, _ := newTestRegistry(Config{}, nil)

	session, err := r.Create()
	require.NoError(t, err)

	require.NoError(t, r.End(session.ID()))

	select {
	case <-session.Done():
	default:
		t.Fatal("done channel not closed")
	}

	_, err = r.Get(session.ID())
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_MaxSessions(t *testing.T) {
	r, _ := newTestRegistry(Config{MaxSessions: 2}, nil)

	_, err := r.Create()
	require.NoError(t, err)
	second, err := r.Create()
	require.NoError(t, err)

	_, err = r.Create()
	assert.ErrorIs(t, err, ErrTooManySessions)

	require.NoError(t, r.End(second.ID()))
	_, err = r.Create()
	assert.NoError(t, err)
}

func TestRegistry_SweepIdle(t *testing.T) {
	r, clock := newTestRegistry(Config{IdleTimeout: 30 * time.Minute}, nil)

	stale, err := r.Create()
	require.NoError(t, err)
	active, err := r.Create()
	require.NoError(t, err)

	clock.Advance(20 * time.Minute)
	_, err = r.Get(active.ID())
	require.NoError(t, err)

	clock.Advance(15 * time.Minute)
	removed := r.SweepIdle(clock.Now())

	assert.Equal(t, []string{stale.ID()}, removed)
	assert.Equal(t, 1, r.Count())

	_, err = r.Get(active.ID())
	assert.NoError(t, err)

	select {
	case <-stale.Done():
	default:
		t.Fatal("expired session not ended")
	}
}

func TestRegistry_SweepIdleDisabled(t *testing.T) {
	r, clock := newTestRegistry(Config{}, nil)

	_, err := r.Create()
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	assert.Empty(t, r.SweepIdle(clock.Now()))
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_AllOrderedByCreation(t *testing.T) {
	r, clock := newTestRegistry(Config{}, nil)

	first, err := r.Create()
	require.NoError(t, err)
	clock.Advance(time.Second)
	second, err := r.Create()
	require.NoError(t, err)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, first.ID(), all[0].ID())
	assert.Equal(t, second.ID(), all[1].ID())
}

func TestRegistry_RunStopsOnCancel(t *testing.T) {
	r, _ := newTestRegistry(Config{IdleTimeout: time.Minute, SweepInterval: time.Millisecond}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRegistry_EndAll(t *testing.T) {
	r, _ := newTestRegistry(Config{}, nil)

	a, err := r.Create()
	require.NoError(t, err)
	_, err = r.Create()
	require.NoError(t, err)

	r.EndAll()
	assert.Equal(t, 0, r.Count())
	select {
	case <-a.Done():
	default:
		t.Fatal("session not ended")
	}
}

func TestRegistry_PinnedSessionSurvivesSweep(t *testing.T) {
	r, clock := newTestRegistry(Config{IdleTimeout: 30 * time.Minute}, nil)

	session, err := r.Create()
	require.NoError(t, err)
	session.Player.PlaySingle(episode.Episode{ID: "live"})

	release, err := r.Pin(session.ID())
	require.NoError(t, err)
	assert.True(t, session.Pinned())

	clock.Advance(31 * time.Minute)
	assert.Empty(t, r.SweepIdle(clock.Now()))

	_, err = r.Get(session.ID())
	require.NoError(t, err)
	select {
	case <-session.Done():
		t.Fatal("pinned session ended")
	default:
	}

	// The idle timeout restarts when the pin is released.
	clock.Advance(2 * time.Hour)
	release()
	release()
	assert.False(t, session.Pinned())

	clock.Advance(29 * time.Minute)
	assert.Empty(t, r.SweepIdle(clock.Now()))

	clock.Advance(2 * time.Minute)
	assert.Equal(t, []string{session.ID()}, r.SweepIdle(clock.Now()))
}

func TestRegistry_PinUnknown(t *testing.T) {
	r, _ := newTestRegistry(Config{}, nil)

	_, err := r.Pin("missing")
	assert.ErrorIs(t, err, ErrInvalidSession)
}
