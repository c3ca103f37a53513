package connect

import (
	"context"

	"connectrpc.com/connect"
	zlog "github.com/rs/zerolog/log"

	radiov1 "github.com/osa030/radio247/internal/api/radiov1"
	"github.com/osa030/radio247/internal/api/radiov1/radiov1connect"
	"github.com/osa030/radio247/internal/app/catalog"
	"github.com/osa030/radio247/internal/app/notification"
	"github.com/osa030/radio247/internal/app/session/registry"
)

// AdminService implements the AdminService RPC.
type AdminService struct {
	registry      *registry.Registry
	catalog       *catalog.Catalog
	notifications *notification.Manager
}

// NewAdminService creates a new AdminService.
func NewAdminService(reg *registry.Registry, c *catalog.Catalog, notifications *notification.Manager) *AdminService {
	return &AdminService{
		registry:      reg,
		catalog:       c,
		notifications: notifications,
	}
}

// Ensure AdminService implements the interface.
var _ radiov1connect.AdminServiceHandler = (*AdminService)(nil)

// ListSessions returns every active listener session.
func (s *AdminService) ListSessions(
	ctx context.Context,
	req *connect.Request[radiov1.ListSessionsRequest],
) (*connect.Response[radiov1.ListSessionsResponse], error) {
	sessions := s.registry.All()

	infos := make([]radiov1.SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		info := session.Info()
		snap := session.Player.Snapshot()

		item := radiov1.SessionInfo{
			SessionID:    info.ID,
			CreatedAt:    formatTime(info.CreatedAt),
			LastSeenAt:   formatTime(info.LastSeenAt),
			State:        snap.State().String(),
			PlaylistSize: snap.Playlist.Len(),
			Subscribers:  s.notifications.SessionSubscriberCount(info.ID),
		}
		if current, ok := snap.CurrentEpisode(); ok {
			item.CurrentEpisodeID = current.ID
		}
		infos = append(infos, item)
	}

	return connect.NewResponse(&radiov1.ListSessionsResponse{
		Sessions: infos,
		Count:    len(infos),
	}), nil
}

// EndSession ends a listener session.
func (s *AdminService) EndSession(
	ctx context.Context,
	req *connect.Request[radiov1.AdminEndSessionRequest],
) (*connect.Response[radiov1.AdminEndSessionResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if err := s.registry.End(req.Msg.SessionID); err != nil {
		return connect.NewResponse(&radiov1.AdminEndSessionResponse{
			Success: false,
			Message: err.Error(),
		}), nil
	}

	zlog.Info().Str("session", req.Msg.SessionID).Msg("session ended by admin")
	return connect.NewResponse(&radiov1.AdminEndSessionResponse{
		Success: true,
		Message: "Session ended",
	}), nil
}

// ReloadCatalog reloads every catalogue source.
func (s *AdminService) ReloadCatalog(
	ctx context.Context,
	req *connect.Request[radiov1.ReloadCatalogRequest],
) (*connect.Response[radiov1.ReloadCatalogResponse], error) {
	if err := s.catalog.Reload(ctx); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&radiov1.ReloadCatalogResponse{
		EpisodeCount: s.catalog.Len(),
		LoadedAt:     formatTime(s.catalog.LoadedAt()),
	}), nil
}
