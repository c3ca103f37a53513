// Package catalog provides the ordered station/episode list shown on the site.
package catalog

import (
	"context"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radio247/internal/domain/episode"
	"github.com/osa030/radio247/internal/infra/channels"
	"github.com/osa030/radio247/internal/infra/logger"
)

// Errors
var (
	ErrEpisodeNotFound = errors.New("episode not found")
	ErrNoSources       = errors.New("no catalog sources")
)

// Config holds catalogue configuration.
type Config struct {
	Limit       int            // Maximum number of episodes (0 = unlimited)
	LatestCount int            // Episodes shown as latest releases on the homepage
	Location    *time.Location // Time zone used for formatted dates
}

// Home is the homepage split of the catalogue.
type Home struct {
	Latest []episode.Episode
	All    []episode.Episode
}

// Catalog holds the merged episode list of all sources.
type Catalog struct {
	mu       sync.RWMutex
	episodes []episode.Episode
	byID     map[string]int
	loadedAt time.Time

	reloadMu sync.Mutex
	sources  []Source
	watchers []io.Closer
	config   Config
	validate *validator.Validate
	now      func() time.Time
}

// New creates a catalogue and performs the initial load.
func New(ctx context.Context, cfg Config, sources []Source) (*Catalog, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	c := &Catalog{
		byID:     make(map[string]int),
		sources:  sources,
		config:   cfg,
		validate: validator.New(),
		now:      time.Now,
	}

	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Watch starts change notifications for every watchable source.
// Each change reloads the whole catalogue.
func (c *Catalog) Watch() error {
	log := logger.Component("catalog")
	for _, s := range c.sources {
		w, ok := s.(Watchable)
		if !ok {
			continue
		}
		name := s.Name()
		closer, err := w.Watch(func() {
			log.Info().Msgf("source changed, reloading: source=%s", name)
			if err := c.Reload(context.Background()); err != nil {
				log.Error().Err(err).Msg("reload failed")
			}
		})
		if err != nil {
			return errors.Wrapf(err, "failed to watch source %s", name)
		}
		c.reloadMu.Lock()
		c.watchers = append(c.watchers, closer)
		c.reloadMu.Unlock()
	}
	return nil
}

// Close stops all watchers.
func (c *Catalog) Close() error {
	c.reloadMu.Lock()
	watchers := c.watchers
	c.watchers = nil
	c.reloadMu.Unlock()

	var errs error
	for _, w := range watchers {
		if err := w.Close(); err != nil {
			errs = errors.CombineErrors(errs, err)
		}
	}
	return errs
}

// Reload reads every source and replaces the episode list.
// A failing source is skipped; if every source fails the previous list is kept.
func (c *Catalog) Reload(ctx context.Context) error {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	var records []channels.Record
	failed := 0
	for i, s := range c.sources {
		loaded, err := s.Load(ctx)
		if err != nil {
			failed++
			zlog.Warn().Msgf("catalog source failed, trying next: index=%d type=%s error=%v", i+1, s.Name(), err)
			continue
		}
		zlog.Debug().Msgf("catalog source loaded: index=%d type=%s count=%d", i+1, s.Name(), len(loaded))
		records = append(records, loaded...)
	}
	if failed == len(c.sources) {
		return errors.New("all catalog sources failed to load")
	}

	now := c.now().In(c.config.Location)
	episodes, byID := c.build(records, now)

	c.mu.Lock()
	c.episodes = episodes
	c.byID = byID
	c.loadedAt = now
	c.mu.Unlock()

	zlog.Info().Msgf("catalog loaded: episodes=%d", len(episodes))
	return nil
}

func (c *Catalog) build(records []channels.Record, now time.Time) ([]episode.Episode, map[string]int) {
	episodes := make([]episode.Episode, 0, len(records))
	byID := make(map[string]int, len(records))

	for _, r := range records {
		if c.config.Limit > 0 && len(episodes) >= c.config.Limit {
			break
		}
		if err := c.validate.Struct(r); err != nil {
			zlog.Warn().Msgf("skipping invalid channel record: title=%q error=%v", r.Title, err)
			continue
		}
		if _, dup := byID[r.ChannelID]; dup {
			zlog.Debug().Msgf("skipping duplicate channel: id=%s", r.ChannelID)
			continue
		}

		e := c.toEpisode(r, len(episodes)+1, now)
		byID[e.ID] = len(episodes)
		episodes = append(episodes, e)
	}
	return episodes, byID
}

func (c *Catalog) toEpisode(r channels.Record, index int, now time.Time) episode.Episode {
	published := now
	if r.PublishedAt != "" {
		if t, err := time.Parse(time.RFC3339, r.PublishedAt); err == nil {
			published = t.In(c.config.Location)
		} else {
			zlog.Debug().Msgf("invalid published_at, using load time: id=%s value=%q", r.ChannelID, r.PublishedAt)
		}
	}

	return episode.Episode{
		ID:               r.ChannelID,
		Index:            index,
		Title:            r.Title,
		Members:          r.Artist,
		Thumbnail:        r.Cover,
		Duration:         r.Duration,
		DurationAsString: episode.FormatDuration(r.Duration),
		URL:              r.StreamURL,
		PublishedAt:      episode.FormatPublished(published),
		Description:      r.Name,
	}
}

// Episodes returns every episode in catalogue order.
func (c *Catalog) Episodes() []episode.Episode {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]episode.Episode, len(c.episodes))
	copy(result, c.episodes)
	return result
}

// Len returns the number of episodes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.episodes)
}

// LoadedAt returns the time of the last successful load.
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// Home splits the catalogue into latest releases and the rest.
// Concatenating Latest and All yields the catalogue order.
func (c *Catalog) Home() Home {
	episodes := c.Episodes()
	split := c.config.LatestCount
	if split > len(episodes) {
		split = len(episodes)
	}
	return Home{
		Latest: episodes[:split:split],
		All:    episodes[split:],
	}
}

// BySlug returns the episode addressed by a 1-based page slug.
func (c *Catalog) BySlug(slug string) (episode.Episode, error) {
	n, err := strconv.Atoi(slug)
	if err != nil {
		return episode.Episode{}, errors.Wrapf(ErrEpisodeNotFound, "invalid slug %q", slug)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if n < 1 || n > len(c.episodes) {
		return episode.Episode{}, errors.Wrapf(ErrEpisodeNotFound, "slug %d", n)
	}
	return c.episodes[n-1], nil
}

// ByID returns the episode with the given channel ID.
func (c *Catalog) ByID(id string) (episode.Episode, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byID[id]
	if !ok {
		return episode.Episode{}, errors.Wrapf(ErrEpisodeNotFound, "id %q", id)
	}
	return c.episodes[i], nil
}

// Resolve looks up episodes by ID, keeping the requested order.
func (c *Catalog) Resolve(ids []string) ([]episode.Episode, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]episode.Episode, 0, len(ids))
	for _, id := range ids {
		i, ok := c.byID[id]
		if !ok {
			return nil, errors.Wrapf(ErrEpisodeNotFound, "id %q", id)
		}
		result = append(result, c.episodes[i])
	}
	return result, nil
}

// HeaderDate returns the site header date for now.
func (c *Catalog) HeaderDate(now time.Time) string {
	return episode.FormatHeaderDate(now.In(c.config.Location))
}
