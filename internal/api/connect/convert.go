package connect

import (
	"time"

	radiov1 "github.com/osa030/radio247/internal/api/radiov1"
	"github.com/osa030/radio247/internal/app/player"
	"github.com/osa030/radio247/internal/domain/episode"
)

func toEpisode(e episode.Episode) radiov1.Episode {
	return radiov1.Episode{
		ID:              e.ID,
		Slug:            e.Slug(),
		Index:           e.Index,
		Title:           e.Title,
		Members:         e.Members,
		Thumbnail:       e.Thumbnail,
		DurationSeconds: e.Duration,
		Duration:        e.DurationAsString,
		URL:             e.URL,
		PublishedAt:     e.PublishedAt,
		Description:     e.Description,
	}
}

func toEpisodes(episodes []episode.Episode) []radiov1.Episode {
	result := make([]radiov1.Episode, len(episodes))
	for i, e := range episodes {
		result[i] = toEpisode(e)
	}
	return result
}

func toPlayerState(sessionID string, snap player.Snapshot) radiov1.PlayerState {
	state := radiov1.PlayerState{
		SessionID:            sessionID,
		Version:              snap.Version,
		State:                snap.State().String(),
		Episodes:             toEpisodes(snap.Playlist.Episodes()),
		CurrentIndex:         snap.CurrentIndex,
		IsPlaying:            snap.IsPlaying,
		IsLooping:            snap.IsLooping,
		IsShuffling:          snap.IsShuffling,
		Volume:               snap.Volume,
		Muted:                snap.Muted,
		EffectiveVolume:      snap.EffectiveVolume(),
		HasNext:              snap.HasNext(),
		HasPrevious:          snap.HasPrevious(),
		TotalDurationSeconds: snap.Playlist.TotalDuration(),
		TotalDuration:        episode.FormatDuration(snap.Playlist.TotalDuration()),
	}
	if current, ok := snap.CurrentEpisode(); ok {
		msg := toEpisode(current)
		state.CurrentEpisode = &msg
	}
	return state
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
