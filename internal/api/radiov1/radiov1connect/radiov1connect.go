// Package radiov1connect wires the radio247.v1 services to connect handlers and clients.
package radiov1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	radiov1 "github.com/osa030/radio247/internal/api/radiov1"
)

const (
	CatalogServiceName = "radio247.v1.CatalogService"
	PlayerServiceName  = "radio247.v1.PlayerService"
	AdminServiceName   = "radio247.v1.AdminService"
)

const (
	CatalogServiceHomeProcedure         = "/radio247.v1.CatalogService/Home"
	CatalogServiceListEpisodesProcedure = "/radio247.v1.CatalogService/ListEpisodes"
	CatalogServiceGetEpisodeProcedure   = "/radio247.v1.CatalogService/GetEpisode"

	PlayerServiceCreateSessionProcedure   = "/radio247.v1.PlayerService/CreateSession"
	PlayerServiceEndSessionProcedure      = "/radio247.v1.PlayerService/EndSession"
	PlayerServiceGetStateProcedure        = "/radio247.v1.PlayerService/GetState"
	PlayerServicePlaySingleProcedure      = "/radio247.v1.PlayerService/PlaySingle"
	PlayerServicePlayListProcedure        = "/radio247.v1.PlayerService/PlayList"
	PlayerServiceTogglePlayProcedure      = "/radio247.v1.PlayerService/TogglePlay"
	PlayerServiceToggleLoopProcedure      = "/radio247.v1.PlayerService/ToggleLoop"
	PlayerServiceToggleShuffleProcedure   = "/radio247.v1.PlayerService/ToggleShuffle"
	PlayerServiceSetVolumeProcedure       = "/radio247.v1.PlayerService/SetVolume"
	PlayerServiceToggleMuteProcedure      = "/radio247.v1.PlayerService/ToggleMute"
	PlayerServicePlayNextProcedure        = "/radio247.v1.PlayerService/PlayNext"
	PlayerServicePlayPreviousProcedure    = "/radio247.v1.PlayerService/PlayPrevious"
	PlayerServiceClearProcedure           = "/radio247.v1.PlayerService/Clear"
	PlayerServiceSetPlayingStateProcedure = "/radio247.v1.PlayerService/SetPlayingState"
	PlayerServiceSubscribeProcedure       = "/radio247.v1.PlayerService/Subscribe"

	AdminServiceListSessionsProcedure  = "/radio247.v1.AdminService/ListSessions"
	AdminServiceEndSessionProcedure    = "/radio247.v1.AdminService/EndSession"
	AdminServiceReloadCatalogProcedure = "/radio247.v1.AdminService/ReloadCatalog"
)

// CatalogServiceHandler is implemented by the catalogue service.
type CatalogServiceHandler interface {
	Home(context.Context, *connect.Request[radiov1.HomeRequest]) (*connect.Response[radiov1.HomeResponse], error)
	ListEpisodes(context.Context, *connect.Request[radiov1.ListEpisodesRequest]) (*connect.Response[radiov1.ListEpisodesResponse], error)
	GetEpisode(context.Context, *connect.Request[radiov1.GetEpisodeRequest]) (*connect.Response[radiov1.GetEpisodeResponse], error)
}

// PlayerServiceHandler is implemented by the player service.
type PlayerServiceHandler interface {
	CreateSession(context.Context, *connect.Request[radiov1.CreateSessionRequest]) (*connect.Response[radiov1.CreateSessionResponse], error)
	EndSession(context.Context, *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.EndSessionResponse], error)
	GetState(context.Context, *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error)
	PlaySingle(context.Context, *connect.Request[radiov1.PlaySingleRequest]) (*connect.Response[radiov1.StateResponse], error)
	PlayList(context.Context, *connect.Request[radiov1.PlayListRequest]) (*connect.Response[radiov1.StateResponse], error)
	TogglePlay(context.Context, *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error)
	ToggleLoop(context.Context, *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error)
	ToggleShuffle(context.Context, *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error)
	SetVolume(context.Context, *connect.Request[radiov1.SetVolumeRequest]) (*connect.Response[radiov1.StateResponse], error)
	ToggleMute(context.Context, *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error)
	PlayNext(context.Context, *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error)
	PlayPrevious(context.Context, *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error)
	Clear(context.Context, *connect.Request[radiov1.SessionRequest]) (*connect.Response[radiov1.StateResponse], error)
	SetPlayingState(context.Context, *connect.Request[radiov1.SetPlayingStateRequest]) (*connect.Response[radiov1.StateResponse], error)
	Subscribe(context.Context, *connect.Request[radiov1.SubscribeRequest], *connect.ServerStream[radiov1.StateNotification]) error
}

// AdminServiceHandler is implemented by the admin service.
type AdminServiceHandler interface {
	ListSessions(context.Context, *connect.Request[radiov1.ListSessionsRequest]) (*connect.Response[radiov1.ListSessionsResponse], error)
	EndSession(context.Context, *connect.Request[radiov1.AdminEndSessionRequest]) (*connect.Response[radiov1.AdminEndSessionResponse], error)
	ReloadCatalog(context.Context, *connect.Request[radiov1.ReloadCatalogRequest]) (*connect.Response[radiov1.ReloadCatalogResponse], error)
}

// withCodec makes the JSON codec the last option so it takes precedence.
func withCodec[T any](opts []T, codec T) []T {
	result := make([]T, 0, len(opts)+1)
	result = append(result, opts...)
	return append(result, codec)
}

// NewCatalogServiceHandler builds an HTTP handler for the catalogue service.
// It returns the path on which to mount the handler.
func NewCatalogServiceHandler(svc CatalogServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts, connect.HandlerOption(connect.WithCodec(radiov1.Codec{})))

	mux := http.NewServeMux()
	mux.Handle(CatalogServiceHomeProcedure, connect.NewUnaryHandler(CatalogServiceHomeProcedure, svc.Home, opts...))
	mux.Handle(CatalogServiceListEpisodesProcedure, connect.NewUnaryHandler(CatalogServiceListEpisodesProcedure, svc.ListEpisodes, opts...))
	mux.Handle(CatalogServiceGetEpisodeProcedure, connect.NewUnaryHandler(CatalogServiceGetEpisodeProcedure, svc.GetEpisode, opts...))
	return servicePath(CatalogServiceName), mux
}

// NewPlayerServiceHandler builds an HTTP handler for the player service.
func NewPlayerServiceHandler(svc PlayerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts, connect.HandlerOption(connect.WithCodec(radiov1.Codec{})))

	mux := http.NewServeMux()
	mux.Handle(PlayerServiceCreateSessionProcedure, connect.NewUnaryHandler(PlayerServiceCreateSessionProcedure, svc.CreateSession, opts...))
	mux.Handle(PlayerServiceEndSessionProcedure, connect.NewUnaryHandler(PlayerServiceEndSessionProcedure, svc.EndSession, opts...))
	mux.Handle(PlayerServiceGetStateProcedure, connect.NewUnaryHandler(PlayerServiceGetStateProcedure, svc.GetState, opts...))
	mux.Handle(PlayerServicePlaySingleProcedure, connect.NewUnaryHandler(PlayerServicePlaySingleProcedure, svc.PlaySingle, opts...))
	mux.Handle(PlayerServicePlayListProcedure, connect.NewUnaryHandler(PlayerServicePlayListProcedure, svc.PlayList, opts...))
	mux.Handle(PlayerServiceTogglePlayProcedure, connect.NewUnaryHandler(PlayerServiceTogglePlayProcedure, svc.TogglePlay, opts...))
	mux.Handle(PlayerServiceToggleLoopProcedure, connect.NewUnaryHandler(PlayerServiceToggleLoopProcedure, svc.ToggleLoop, opts...))
	mux.Handle(PlayerServiceToggleShuffleProcedure, connect.NewUnaryHandler(PlayerServiceToggleShuffleProcedure, svc.ToggleShuffle, opts...))
	mux.Handle(PlayerServiceSetVolumeProcedure, connect.NewUnaryHandler(PlayerServiceSetVolumeProcedure, svc.SetVolume, opts...))
	mux.Handle(PlayerServiceToggleMuteProcedure, connect.NewUnaryHandler(PlayerServiceToggleMuteProcedure, svc.ToggleMute, opts...))
	mux.Handle(PlayerServicePlayNextProcedure, connect.NewUnaryHandler(PlayerServicePlayNextProcedure, svc.PlayNext, opts...))
	mux.Handle(PlayerServicePlayPreviousProcedure, connect.NewUnaryHandler(PlayerServicePlayPreviousProcedure, svc.PlayPrevious, opts...))
	mux.Handle(PlayerServiceClearProcedure, connect.NewUnaryHandler(PlayerServiceClearProcedure, svc.Clear, opts...))
	mux.Handle(PlayerServiceSetPlayingStateProcedure, connect.NewUnaryHandler(PlayerServiceSetPlayingStateProcedure, svc.SetPlayingState, opts...))
	mux.Handle(PlayerServiceSubscribeProcedure, connect.NewServerStreamHandler(PlayerServiceSubscribeProcedure, svc.Subscribe, opts...))
	return servicePath(PlayerServiceName), mux
}

// NewAdminServiceHandler builds an HTTP handler for the admin service.
func NewAdminServiceHandler(svc AdminServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts, connect.HandlerOption(connect.WithCodec(radiov1.Codec{})))

	mux := http.NewServeMux()
	mux.Handle(AdminServiceListSessionsProcedure, connect.NewUnaryHandler(AdminServiceListSessionsProcedure, svc.ListSessions, opts...))
	mux.Handle(AdminServiceEndSessionProcedure, connect.NewUnaryHandler(AdminServiceEndSessionProcedure, svc.EndSession, opts...))
	mux.Handle(AdminServiceReloadCatalogProcedure, connect.NewUnaryHandler(AdminServiceReloadCatalogProcedure, svc.ReloadCatalog, opts...))
	return servicePath(AdminServiceName), mux
}

func servicePath(service string) string {
	return "/" + service + "/"
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return withCodec(opts, connect.ClientOption(connect.WithCodec(radiov1.Codec{})))
}

func procedureURL(baseURL, procedure string) string {
	return strings.TrimRight(baseURL, "/") + procedure
}
