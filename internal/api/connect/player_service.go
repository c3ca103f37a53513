package connect

import (
	"context"
	"sync"

	"connectrpc.com/connect"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	radiov1 "github.com/osa030/radio247/internal/api/radiov1"
	"github.com/osa030/radio247/internal/api/radiov1/radiov1connect"
	"github.com/osa030/radio247/internal/app/catalog"
	"github.com/osa030/radio247/internal/app/notification"
	"github.com/osa030/radio247/internal/app/player"
	"github.com/osa030/radio247/internal/app/session/registry"
	"github.com/osa030/radio247/internal/domain/episode"
)

// PlayerService implements the PlayerService RPC.
type PlayerService struct {
	registry      *registry.Registry
	catalog       *catalog.Catalog
	notifications *notification.Manager
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(reg *registry.Registry, c *catalog.Catalog, notifications *notification.Manager) *PlayerService {
	return &PlayerService{
		registry:      reg,
		catalog:       c,
		notifications: notifications,
	}
}

// Ensure PlayerService implements the interface.
var _ radiov1connect.PlayerServiceHandler = (*PlayerService)(nil)

// CreateSession starts a new listener session.
func (s *PlayerService) CreateSession(
	ctx context.Context,
	req *connect.Request[radiov1.CreateSessionRequest],
) (*connect.Response[radiov1.CreateSessionResponse], error) {
	session, err := s.registry.Create()
	if err != nil {
		return nil, toConnectError(err)
	}

	zlog.Info().Str("session", session.ID()).Msg("listener session created")
	return connect.NewResponse(&radiov1.CreateSessionResponse{
		SessionID: session.ID(),
		State:     toPlayerState(session.ID(), session.Player.Snapshot()),
	}), nil
}

// EndSession ends a listener session.
func (s *PlayerService) EndSession(
	ctx context.Context,
	req *connect.Request[radiov1.SessionRequest],
) (*connect.Response[radiov1.EndSessionResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.registry.End(req.Msg.SessionID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&radiov1.EndSessionResponse{}), nil
}

// GetState returns the session's player state.
func (s *PlayerService) GetState(
	ctx context.Context,
	req *connect.Request[radiov1.SessionRequest],
) (*connect.Response[radiov1.StateResponse], error) {
	return s.apply(req.Msg, req.Msg.SessionID, func(*player.Store) error { return nil })
}

// PlaySingle plays one catalogue episode.
func (s *PlayerService) PlaySingle(
	ctx context.Context,
	req *connect.Request[radiov1.PlaySingleRequest],
) (*connect.Response[radiov1.StateResponse], error) {
	return s.apply(req.Msg, req.Msg.SessionID, func(store *player.Store) error {
		e, err := s.catalog.ByID(req.Msg.EpisodeID)
		if err != nil {
			return err
		}
		store.PlaySingle(e)
		return nil
	})
}

// PlayList plays a list of catalogue episodes from a start index.
func (s *PlayerService) PlayList(
	ctx context.Context,
	req *connect.Request[radiov1.PlayListRequest],
) (*connect.Response[radiov1.StateResponse], error) {
	return s.apply(req.Msg, req.Msg.SessionID, func(store *player.Store) error {
		var episodes []episode.Episode
		if len(req.Msg.EpisodeIDs) == 0 {
			episodes = s.catalog.Episodes()
		} else {
			resolved, err := s.catalog.Resolve(req.Msg.EpisodeIDs)
			if err != nil {
				return err
			}
			episodes = resolved
		}

		if len(episodes) == 0 {
			return connect.NewError(connect.CodeInvalidArgument, errors.New("playlist is empty"))
		}
		if req.Msg.StartIndex >= len(episodes) {
			return connect.NewError(connect.CodeInvalidArgument,
				errors.Newf("start_index %d out of range for %d episodes", req.Msg.StartIndex, len(episodes)))
		}

		store.PlayList(episodes, req.Msg.StartIndex)
		return nil
	})
}

// TogglePlay flips between playing and paused.
func (s *PlayerService) TogglePlay(
	ctx context.Context,
	req *connect.Request[radiov1.SessionRequest],
) (*connect.Response[radiov1.StateResponse], error) {
	return s.apply(req.Msg, req.Msg.SessionID, run((*player.Store).TogglePlay))
}

// ToggleLoop flips looping.
func (s *PlayerService) ToggleLoop(
	ctx context.Context,
	req *connect.Request[radiov1.SessionRequest],
) (*connect.Response[radiov1.StateResponse], error) {
	return s.apply(req.Msg, req.Msg.SessionID, run((*player.Store).ToggleLoop))
}

// ToggleShuffle flips shuffle mode.
func (s *PlayerService) ToggleShuffle(
	ctx context.Context,
	req *connect.Request[radiov1.SessionRequest],
) (*connect.Response[radiov1.StateResponse], error) {
	return s.apply(req.Msg, req.Msg.SessionID, run((*player.Store).ToggleShuffle))
}

// SetVolume sets the baseline volume.
func (s *PlayerService) SetVolume(
	ctx context.Context,
	req *connect.Request[radiov1.SetVolumeRequest],
) (*connect.Response[radiov1.StateResponse], error) {
	return s.apply(req.Msg, req.Msg.SessionID, func(store *player.Store) error {
		store.SetVolume(*req.Msg.Level)
		return nil
	})
}

// ToggleMute flips mute without touching the volume.
func (s *PlayerService) ToggleMute(
	ctx context.Context,
	req *connect.Request[radiov1.SessionRequest],
) (*connect.Response[radiov1.StateResponse], error) {
	return s.apply(req.Msg, req.Msg.SessionID, run((*player.Store).ToggleMute))
}

// PlayNext advances to the next episode.
func (s *PlayerService) PlayNext(
	ctx context.Context,
	req *connect.Request[radiov1.SessionRequest],
) (*connect.Response[radiov1.StateResponse], error) {
	return s.apply(req.Msg, req.Msg.SessionID, run((*player.Store).PlayNext))
}

// PlayPrevious goes back one episode.
func (s *PlayerService) PlayPrevious(
	ctx context.Context,
	req *connect.Request[radiov1.SessionRequest],
) (*connect.Response[radiov1.StateResponse], error) {
	return s.apply(req.Msg, req.Msg.SessionID, run((*player.Store).PlayPrevious))
}

// Clear empties the playlist.
func (s *PlayerService) Clear(
	ctx context.Context,
	req *connect.Request[radiov1.SessionRequest],
) (*connect.Response[radiov1.StateResponse], error) {
	return s.apply(req.Msg, req.Msg.SessionID, run((*player.Store).Clear))
}

// SetPlayingState mirrors the audio element's actual state.
func (s *PlayerService) SetPlayingState(
	ctx context.Context,
	req *connect.Request[radiov1.SetPlayingStateRequest],
) (*connect.Response[radiov1.StateResponse], error) {
	return s.apply(req.Msg, req.Msg.SessionID, func(store *player.Store) error {
		store.SetPlayingState(req.Msg.Playing)
		return nil
	})
}

// Subscribe streams the session's state: the current state first, then every change.
func (s *PlayerService) Subscribe(
	ctx context.Context,
	req *connect.Request[radiov1.SubscribeRequest],
	stream *connect.ServerStream[radiov1.StateNotification],
) error {
	if err := validateRequest(req.Msg); err != nil {
		return err
	}
	session, err := s.registry.Get(req.Msg.SessionID)
	if err != nil {
		return toConnectError(err)
	}

	// An open stream counts as activity for the whole time it is open.
	release, err := s.registry.Pin(session.ID())
	if err != nil {
		return toConnectError(err)
	}
	defer release()

	adapter := &notificationStreamAdapter{stream: stream}

	// Hold the adapter until the initial state is sent so changes cannot overtake it.
	adapter.mu.Lock()
	subscriptionID := s.notifications.Subscribe(session.ID(), adapter)
	defer s.notifications.Unsubscribe(subscriptionID)
	defer adapter.close()

	snap := session.Player.Snapshot()
	adapter.lastVersion = snap.Version
	err = stream.Send(&radiov1.StateNotification{
		Type:       radiov1.NotificationTypeInitialState,
		SequenceNo: s.notifications.NextSequenceNo(),
		State:      toPlayerState(session.ID(), snap),
	})
	adapter.mu.Unlock()
	if err != nil {
		return err
	}

	// Wait for context cancellation or session end
	select {
	case <-ctx.Done():
	case <-session.Done():
	}
	return nil
}

// apply validates msg, runs fn against the session's store and returns the resulting state.
func (s *PlayerService) apply(msg any, sessionID string, fn func(*player.Store) error) (*connect.Response[radiov1.StateResponse], error) {
	if err := validateRequest(msg); err != nil {
		return nil, err
	}
	session, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := fn(session.Player); err != nil {
		var connectErr *connect.Error
		if errors.As(err, &connectErr) {
			return nil, connectErr
		}
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&radiov1.StateResponse{
		State: toPlayerState(session.ID(), session.Player.Snapshot()),
	}), nil
}

func run(op func(*player.Store)) func(*player.Store) error {
	return func(store *player.Store) error {
		op(store)
		return nil
	}
}

// notificationStreamAdapter adapts connect.ServerStream to notification.Stream.
// Sends are serialized and snapshots not newer than the last sent one are dropped.
type notificationStreamAdapter struct {
	mu          sync.Mutex
	stream      *connect.ServerStream[radiov1.StateNotification]
	lastVersion uint64
	closed      bool
}

// close stops further sends once the handler has returned.
func (a *notificationStreamAdapter) close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
}

func (a *notificationStreamAdapter) Send(n notification.Notification) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || n.Snapshot.Version <= a.lastVersion {
		return nil
	}
	a.lastVersion = n.Snapshot.Version

	return a.stream.Send(&radiov1.StateNotification{
		Type:       n.Type.String(),
		SequenceNo: n.SequenceNo,
		State:      toPlayerState(n.SessionID, n.Snapshot),
	})
}
