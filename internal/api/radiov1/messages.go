// Package radiov1 defines the messages of the radio247.v1 RPC API.
package radiov1

// Episode is a catalogue entry.
type Episode struct {
	ID              string `json:"id"`
	Slug            string `json:"slug"`
	Index           int    `json:"index"`
	Title           string `json:"title"`
	Members         string `json:"members"`
	Thumbnail       string `json:"thumbnail"`
	DurationSeconds int64  `json:"duration_seconds"`
	Duration        string `json:"duration"` // HH:MM:SS
	URL             string `json:"url"`
	PublishedAt     string `json:"published_at"`
	Description     string `json:"description"`
}

// PlayerState is the state of one session's player.
type PlayerState struct {
	SessionID            string    `json:"session_id"`
	Version              uint64    `json:"version"`
	State                string    `json:"state"`
	Episodes             []Episode `json:"episodes"`
	CurrentIndex         int       `json:"current_index"`
	CurrentEpisode       *Episode  `json:"current_episode,omitempty"`
	IsPlaying            bool      `json:"is_playing"`
	IsLooping            bool      `json:"is_looping"`
	IsShuffling          bool      `json:"is_shuffling"`
	Volume               float64   `json:"volume"`
	Muted                bool      `json:"muted"`
	EffectiveVolume      float64   `json:"effective_volume"`
	HasNext              bool      `json:"has_next"`
	HasPrevious          bool      `json:"has_previous"`
	TotalDurationSeconds int64     `json:"total_duration_seconds"`
	TotalDuration        string    `json:"total_duration"`
}

// CatalogService

type HomeRequest struct{}

type HomeResponse struct {
	HeaderDate string    `json:"header_date"`
	Latest     []Episode `json:"latest"`
	All        []Episode `json:"all"`
}

type ListEpisodesRequest struct{}

type ListEpisodesResponse struct {
	Episodes []Episode `json:"episodes"`
	LoadedAt string    `json:"loaded_at"`
}

type GetEpisodeRequest struct {
	Slug string `json:"slug" validate:"required"`
}

type GetEpisodeResponse struct {
	Episode Episode `json:"episode"`
}

// PlayerService

type CreateSessionRequest struct{}

type CreateSessionResponse struct {
	SessionID string      `json:"session_id"`
	State     PlayerState `json:"state"`
}

// SessionRequest addresses a session without further arguments.
type SessionRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

type EndSessionResponse struct{}

// StateResponse carries the player state after an operation.
type StateResponse struct {
	State PlayerState `json:"state"`
}

type PlaySingleRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	EpisodeID string `json:"episode_id" validate:"required"`
}

// PlayListRequest plays episode_ids from start_index.
// An empty episode_ids plays the whole catalogue.
type PlayListRequest struct {
	SessionID  string   `json:"session_id" validate:"required,uuid"`
	EpisodeIDs []string `json:"episode_ids" validate:"dive,required"`
	StartIndex int      `json:"start_index" validate:"gte=0"`
}

type SetVolumeRequest struct {
	SessionID string   `json:"session_id" validate:"required,uuid"`
	Level     *float64 `json:"level" validate:"required,gte=0,lte=1"`
}

type SetPlayingStateRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	Playing   bool   `json:"playing"`
}

// Notification types.
const (
	NotificationTypeInitialState = "initial_state"
	NotificationTypeChangeState  = "change_state"
)

type SubscribeRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

type StateNotification struct {
	Type       string      `json:"type"`
	SequenceNo uint64      `json:"sequence_no"`
	State      PlayerState `json:"state"`
}

// AdminService

type ListSessionsRequest struct{}

type SessionInfo struct {
	SessionID        string `json:"session_id"`
	CreatedAt        string `json:"created_at"`
	LastSeenAt       string `json:"last_seen_at"`
	State            string `json:"state"`
	CurrentEpisodeID string `json:"current_episode_id,omitempty"`
	PlaylistSize     int    `json:"playlist_size"`
	Subscribers      int    `json:"subscribers"`
}

type ListSessionsResponse struct {
	Sessions []SessionInfo `json:"sessions"`
	Count    int           `json:"count"`
}

type AdminEndSessionRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type AdminEndSessionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ReloadCatalogRequest struct{}

type ReloadCatalogResponse struct {
	EpisodeCount int    `json:"episode_count"`
	LoadedAt     string `json:"loaded_at"`
}
