package radiov1connect

import (
	"context"

	"connectrpc.com/connect"

	radiov1 "github.com/osa030/radio247/internal/api/radiov1"
)

// CatalogServiceClient calls the catalogue service.
type CatalogServiceClient struct {
	home         *connect.Client[radiov1.HomeRequest, radiov1.HomeResponse]
	listEpisodes *connect.Client[radiov1.ListEpisodesRequest, radiov1.ListEpisodesResponse]
	getEpisode   *connect.Client[radiov1.GetEpisodeRequest, radiov1.GetEpisodeResponse]
}

// NewCatalogServiceClient creates a client for the service at baseURL.
func NewCatalogServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CatalogServiceClient {
	opts = clientOptions(opts)
	return &CatalogServiceClient{
		home:         connect.NewClient[radiov1.HomeRequest, radiov1.HomeResponse](httpClient, procedureURL(baseURL, CatalogServiceHomeProcedure), opts...),
		listEpisodes: connect.NewClient[radiov1.ListEpisodesRequest, radiov1.ListEpisodesResponse](httpClient, procedureURL(baseURL, CatalogServiceListEpisodesProcedure), opts...),
		getEpisode:   connect.NewClient[radiov1.GetEpisodeRequest, radiov1.GetEpisodeResponse](httpClient, procedureURL(baseURL, CatalogServiceGetEpisodeProcedure), opts...),
	}
}

func (c *CatalogServiceClient) Home(ctx context.Context, req *connect.Request[radiov1.HomeRequest]) (*connect.Response[radiov1.HomeResponse], error) {
	return c.home.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) ListEpisodes(ctx context.Context, req *connect.Request[radiov1.ListEpisodesRequest]) (*connect.Response[radiov1.ListEpisodesResponse], error) {
	return c.listEpisodes.CallUnary(ctx, req)
}

func (c *CatalogServiceClient) GetEpisode(ctx context.Context, req *connect.Request[radiov1.GetEpisodeRequest]) (*connect.Response[radiov1.GetEpisodeResponse], error) {
	return c.getEpisode.CallUnary(ctx, req)
}

// PlayerServiceClient calls the player service.
type PlayerServiceClient struct {
	createSession   *connect.Client[radiov1.CreateSessionRequest, radiov1.CreateSessionResponse]
	endSession      *connect.Client[radiov1.SessionRequest, radiov1.EndSessionResponse]
	getState        *connect.Client[radiov1.SessionRequest, radiov1.StateResponse]
	playSingle      *connect.Client[radiov1.PlaySingleRequest, radiov1.StateResponse]
	playList        *connect.Client[radiov1.PlayListRequest, radiov1.StateResponse]
	togglePlay      *connect.Client[radiov1.SessionRequest, radiov1.StateResponse]
	toggleLoop      *connect.Client[radiov1.SessionRequest, radiov1.StateResponse]
	toggleShuffle   *connect.Client[radiov1.SessionRequest, radiov1.StateResponse]
	setVolume       *connect.Client[radiov1.SetVolumeRequest, radiov1.StateResponse]
	toggleMute      *connect.Client[radiov1.SessionRequest, radiov1.StateResponse]
	playNext        *connect.Client[radiov1.SessionRequest, radiov1.StateResponse]
	playPrevious    *connect.Client[radiov1.SessionRequest, radiov1.StateResponse]
	clear           *connect.Client[radiov1.SessionRequest, radiov1.StateResponse]
	setPlayingState *connect.Client[radiov1.SetPlayingStateRequest, radiov1.StateResponse]
	subscribe       *connect.Client[radiov1.SubscribeRequest, radiov1.StateNotification]
}

// NewPlayerServiceClient creates a client for the service at baseURL.
func NewPlayerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PlayerServiceClient {
	opts = clientOptions(opts)
	state := func(procedure string) *connect.Client[radiov1.SessionRequest, radiov1.StateResponse] {
		return connect.NewClient[radiov1.SessionRequest, radiov1.StateResponse](httpClient, procedureURL(baseURL, procedure), opts...)
	}
	return &PlayerServiceClient{
		createSession:   connect.NewClient[radiov1.CreateSessionRequest, radiov1.CreateSessionResponse](httpClient, procedureURL(baseURL, PlayerServiceCreateSessionProcedure), opts...),
		endSession:      connect.NewClient[radiov1.SessionRequest, radiov1.EndSessionResponse](httpClient, procedureURL(baseURL, PlayerServiceEndSessionProcedure), opts...),
		getState:        state(PlayerServiceGetStateProcedure),
		playSingle:      connect.NewClient[radiov1.PlaySingleRequest, radiov1.StateResponse](httpClient, procedureURL(baseURL, PlayerServicePlaySingleProcedure), opts...),
		playList:        connect.NewClient[radiov1.PlayListRequest, radiov1.StateResponse](httpClient, procedureURL(baseURL, PlayerServicePlayListProcedure), opts...),
		togglePlay:      state(PlayerServiceTogglePlayProcedure),
		toggleLoop:      state(PlayerServiceToggleLoopProcedure),
		toggleShuffle:   state(PlayerServiceToggleShuffleProcedure),
		setVolume:       connect.NewClient[radiov1.SetVolumeRequest, radiov1.StateResponse](httpClient, procedureURL(baseURL, PlayerServiceSetVolumeProcedure), opts...),
		toggleMute:      state(PlayerServiceToggleMuteProcedure),
		playNext:        state(PlayerServicePlayNextProcedure),
		playPrevious:    state(PlayerServicePlayPreviousProcedure),
		clear:           state(PlayerServiceClearProcedure),
		setPlayingState: connect.NewClient[radiov1.SetPlayingStateRequest, radiov1.StateResponse](httpClient, procedureURL(baseURL, PlayerServiceSetPlayingStateProcedure), opts...),
		subscribe:       connect.NewClient[radiov1.SubscribeRequest, radiov1.StateNotification](httpClient, procedureURL(baseURL, PlayerServiceSubscribeProcedure), opts...),
	}
}

func (c *PlayerServiceClient) CreateSession(ctx context.Context, req *connect.Request[radiov1.CreateSessionRequest]) (*connect.Response[radiov1.CreateSessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *PlayerServiceClient) EndSession(ctx context.Context, req *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.EndSessionResponse], error) {
	return c.endSession.CallUnary(ctx, req)
}

func (c *PlayerServiceClient) GetState(ctx context.Context, req *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error) {
	return c.getState.CallUnary(ctx, req)
}

func (c *PlayerServiceClient) PlaySingle(ctx context.Context, req *connect.Request[radiov1.PlaySingleRequest]) (*connect.Response[radiov1.StateResponse], error) {
	return c.playSingle.CallUnary(ctx, req)
}

func (c *PlayerServiceClient) PlayList(ctx context.Context, req *connect.Request[radiov1.PlayListRequest]) (*connect.Response[radiov1.StateResponse], error) {
	return c.playList.CallUnary(ctx, req)
}

func (c *PlayerServiceClient) TogglePlay(ctx context.Context, req *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error) {
	return c.togglePlay.CallUnary(ctx, req)
}

func (c *PlayerServiceClient) ToggleLoop(ctx context.Context, req *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error) {
	return c.toggleLoop.CallUnary(ctx, req)
}

func (c *PlayerServiceClient) ToggleShuffle(ctx context.Context, req *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error) {
	return c.toggleShuffle.CallUnary(ctx, req)
}

func (c *PlayerServiceClient) SetVolume(ctx context.Context, req *connect.Request[radiov1.SetVolumeRequest]) (*connect.Response[radiov1.StateResponse], error) {
	return c.setVolume.CallUnary(ctx, req)
}

func (c *PlayerServiceClient) ToggleMute(ctx context.Context, req *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error) {
	return c.toggleMute.CallUnary(ctx, req)
}

func (c *PlayerServiceClient) PlayNext(ctx context.Context, req *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error) {
	return c.playNext.CallUnary(ctx, req)
}

func (c *PlayerServiceClient) PlayPrevious(ctx context.Context, req *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error) {
	return c.playPrevious.CallUnary(ctx, req)
}

func (c *PlayerServiceClient) Clear(ctx context.Context, req *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error) {
	return c.clear.CallUnary(ctx, req)
}

func (c *PlayerServiceClient) SetPlayingState(ctx context.Context, req *connect.Request[radiov1.SetPlayingStateRequest]) (*connect.Response[radiov1.StateResponse], error) {
	return c.setPlayingState.CallUnary(ctx, req)
}

func (c *PlayerServiceClient) Subscribe(ctx context.Context, req *connect.Request[radiov1.SubscribeRequest]) (*connect.ServerStreamForClient[radiov1.StateNotification], error) {
	return c.subscribe.CallServerStream(ctx, req)
}

// AdminServiceClient calls the admin service.
type AdminServiceClient struct {
	listSessions  *connect.Client[radiov1.ListSessionsRequest, radiov1.ListSessionsResponse]
	endSession    *connect.Client[radiov1.AdminEndSessionRequest, radiov1.AdminEndSessionResponse]
	reloadCatalog *connect.Client[radiov1.ReloadCatalogRequest, radiov1.ReloadCatalogResponse]
}

// NewAdminServiceClient creates a client for the service at baseURL.
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AdminServiceClient {
	opts = clientOptions(opts)
	return &AdminServiceClient{
		listSessions:  connect.NewClient[radiov1.ListSessionsRequest, radiov1.ListSessionsResponse](httpClient, procedureURL(baseURL, AdminServiceListSessionsProcedure), opts...),
		endSession:    connect.NewClient[radiov1.AdminEndSessionRequest, radiov1.AdminEndSessionResponse](httpClient, procedureURL(baseURL, AdminServiceEndSessionProcedure), opts...),
		reloadCatalog: connect.NewClient[radiov1.ReloadCatalogRequest, radiov1.ReloadCatalogResponse](httpClient, procedureURL(baseURL, AdminServiceReloadCatalogProcedure), opts...),
	}
}

func (c *AdminServiceClient) ListSessions(ctx context.Context, req *connect.Request[radiov1.ListSessionsRequest]) (*connect.Response[radiov1.ListSessionsResponse], error) {
	return c.listSessions.CallUnary(ctx, req)
}

func (c *AdminServiceClient) EndSession(ctx context.Context, req *connect.Request[radiov1.AdminEndSessionRequest]) (*connect.Response[radiov1.AdminEndSessionResponse], error) {
	return c.endSession.CallUnary(ctx, req)
}

func (c *AdminServiceClient) ReloadCatalog(ctx context.Context, req *connect.Request[radiov1.ReloadCatalogRequest]) (*connect.Response[radiov1.ReloadCatalogResponse], error) {
	return c.reloadCatalog.CallUnary(ctx, req)
}
