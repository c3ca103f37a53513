package connect

import (
	"context"
	"time"

	"connectrpc.com/connect"

	radiov1 "github.com/osa030/radio247/internal/api/radiov1"
	"github.com/osa030/radio247/internal/api/radiov1/radiov1connect"
	"github.com/osa030/radio247/internal/app/catalog"
)

// CatalogService implements the CatalogService RPC.
type CatalogService struct {
	catalog *catalog.Catalog
	now     func() time.Time
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(c *catalog.Catalog) *CatalogService {
	return &CatalogService{
		catalog: c,
		now:     time.Now,
	}
}

// Ensure CatalogService implements the interface.
var _ radiov1connect.CatalogServiceHandler = (*CatalogService)(nil)

// Home returns the homepage split and the header date.
func (s *CatalogService) Home(
	ctx context.Context,
	req *connect.Request[radiov1.HomeRequest],
) (*connect.Response[radiov1.HomeResponse], error) {
	home := s.catalog.Home()
	return connect.NewResponse(&radiov1.HomeResponse{
		HeaderDate: s.catalog.HeaderDate(s.now()),
		Latest:     toEpisodes(home.Latest),
		All:        toEpisodes(home.All),
	}), nil
}

// ListEpisodes returns the whole catalogue.
func (s *CatalogService) ListEpisodes(
	ctx context.Context,
	req *connect.Request[radiov1.ListEpisodesRequest],
) (*connect.Response[radiov1.ListEpisodesResponse], error) {
	return connect.NewResponse(&radiov1.ListEpisodesResponse{
		Episodes: toEpisodes(s.catalog.Episodes()),
		LoadedAt: formatTime(s.catalog.LoadedAt()),
	}), nil
}

// GetEpisode returns the episode addressed by a page slug.
func (s *CatalogService) GetEpisode(
	ctx context.Context,
	req *connect.Request[radiov1.GetEpisodeRequest],
) (*connect.Response[radiov1.GetEpisodeResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	e, err := s.catalog.BySlug(req.Msg.Slug)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&radiov1.GetEpisodeResponse{
		Episode: toEpisode(e),
	}), nil
}
