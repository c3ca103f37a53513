package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/radio247/internal/domain/episode"
	"github.com/osa030/radio247/internal/infra/channels"
)

type fakeSource struct {
	records []channels.Record
	err     error
}

func (f *fakeSource) Load(ctx context.Context) ([]channels.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeSource) Name() string {
	return "fake"
}

func records(ids ...string) []channels.Record {
	result := make([]channels.Record, len(ids))
	for i, id := range ids {
		result[i] = channels.Record{
			ChannelID: id,
			Title:     "Station " + id,
			Artist:    "Artist " + id,
			Cover:     "https://example.com/" + id + ".png",
			StreamURL: "https://example.com/" + id + ".mp3",
			Name:      "<p>About " + id + "</p>",
		}
	}
	return result
}

func newTestCatalog(t *testing.T, cfg Config, sources ...Source) *Catalog {
	t.Helper()
	c, err := New(context.Background(), cfg, sources)
	require.NoError(t, err)
	return c
}

func TestNew_NoSources(t *testing.T) {
	_, err := New(context.Background(), Config{}, nil)
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestCatalog_Episodes(t *testing.T) {
	c := newTestCatalog(t, Config{LatestCount: 2}, &fakeSource{records: records("a", "b", "c")})

	episodes := c.Episodes()
	require.Len(t, episodes, 3)

	first := episodes[0]
	assert.Equal(t, "a", first.ID)
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, "Station a", first.Title)
	assert.Equal(t, "Artist a", first.Members)
	assert.Equal(t, "https://example.com/a.png", first.Thumbnail)
	assert.Equal(t, "https://example.com/a.mp3", first.URL)
	assert.Equal(t, "<p>About a</p>", first.Description)
	assert.Equal(t, int64(0), first.Duration)
	assert.Equal(t, "00:00:00", first.DurationAsString)
	assert.NotEmpty(t, first.PublishedAt)

	assert.Equal(t, 3, episodes[2].Index)
}

func TestCatalog_PublishedAt(t *testing.T) {
	recs := []channels.Record{
		{ChannelID: "dated", PublishedAt: "2026-10-01T12:00:00Z", Duration: 3725},
		{ChannelID: "undated"},
		{ChannelID: "garbage", PublishedAt: "yesterday"},
	}
	c := newTestCatalog(t, Config{}, &fakeSource{records: recs})
	c.now = func() time.Time { return time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC) }
	require.NoError(t, c.Reload(context.Background()))

	episodes := c.Episodes()
	require.Len(t, episodes, 3)
	assert.Equal(t, "1 out 26", episodes[0].PublishedAt)
	assert.Equal(t, "01:02:05", episodes[0].DurationAsString)
	assert.Equal(t, "19 out 26", episodes[1].PublishedAt)
	assert.Equal(t, "19 out 26", episodes[2].PublishedAt)
}

func TestCatalog_Home(t *testing.T) {
	tests := []struct {
		name        string
		ids         []string
		latestCount int
		wantLatest  []string
		wantAll     []string
	}{
		{
			name:        "standard split",
			ids:         []string{"a", "b", "c", "d"},
			latestCount: 2,
			wantLatest:  []string{"a", "b"},
			wantAll:     []string{"c", "d"},
		},
		{
			name:        "fewer episodes than latest count",
			ids:         []string{"a"},
			latestCount: 2,
			wantLatest:  []string{"a"},
			wantAll:     []string{},
		},
		{
			name:        "no latest section",
			ids:         []string{"a", "b"},
			latestCount: 0,
			wantLatest:  []string{},
			wantAll:     []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCatalog(t, Config{LatestCount: tt.latestCount}, &fakeSource{records: records(tt.ids...)})
			home := c.Home()
			assert.Equal(t, tt.wantLatest, ids(home.Latest))
			assert.Equal(t, tt.wantAll, ids(home.All))
		})
	}
}

func TestCatalog_BySlug(t *testing.T) {
	c := newTestCatalog(t, Config{}, &fakeSource{records: records("a", "b", "c")})

	e, err := c.BySlug("2")
	require.NoError(t, err)
	assert.Equal(t, "b", e.ID)
	assert.Equal(t, "2", e.Slug())

	for _, slug := range []string{"0", "-1", "4", "abc", ""} {
		_, err := c.BySlug(slug)
		assert.ErrorIs(t, err, ErrEpisodeNotFound, "slug %q", slug)
	}
}

func TestCatalog_ByIDAndResolve(t *testing.T) {
	c := newTestCatalog(t, Config{}, &fakeSource{records: records("a", "b", "c")})

	e, err := c.ByID("c")
	require.NoError(t, err)
	assert.Equal(t, 3, e.Index)

	_, err = c.ByID("missing")
	assert.ErrorIs(t, err, ErrEpisodeNotFound)

	resolved, err := c.Resolve([]string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, ids(resolved))

	_, err = c.Resolve([]string{"a", "missing"})
	assert.ErrorIs(t, err, ErrEpisodeNotFound)
}

func TestCatalog_LimitDedupAndInvalid(t *testing.T) {
	first := &fakeSource{records: append(records("a", "b"), channels.Record{Title: "no id"})}
	second := &fakeSource{records: records("b", "c", "d", "e")}

	c := newTestCatalog(t, Config{Limit: 3}, first, second)
	assert.Equal(t, []string{"a", "b", "c"}, ids(c.Episodes()))
	assert.Equal(t, 3, c.Len())
}

func TestCatalog_FailingSources(t *testing.T) {
	broken := &fakeSource{err: errors.New("boom")}
	working := &fakeSource{records: records("a")}

	c := newTestCatalog(t, Config{}, broken, working)
	assert.Equal(t, []string{"a"}, ids(c.Episodes()))

	working.err = errors.New("down")
	err := c.Reload(context.Background())
	assert.Error(t, err)
	assert.Equal(t, []string{"a"}, ids(c.Episodes()), "previous list is kept when every source fails")

	_, err = New(context.Background(), Config{}, []Source{broken})
	assert.Error(t, err)
}

func TestCatalog_FileSourceReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "traffic.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"channels":[{"channel_id":"a"}]}`), 0o644))

	source, err := NewFileSource(map[string]any{"path": path, "debounce_ms": 10})
	require.NoError(t, err)

	c := newTestCatalog(t, Config{}, source)
	require.NoError(t, c.Watch())
	defer c.Close()

	assert.Equal(t, []string{"a"}, ids(c.Episodes()))

	require.NoError(t, os.WriteFile(path, []byte(`{"channels":[{"channel_id":"a"},{"channel_id":"b"}]}`), 0o644))

	require.Eventually(t, func() bool {
		return c.Len() == 2
	}, 5*time.Second, 10*time.Millisecond)
}

func TestCatalog_HeaderDate(t *testing.T) {
	c := newTestCatalog(t, Config{}, &fakeSource{records: records("a")})
	assert.Equal(t, "seg, 19 outubro", c.HeaderDate(time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)))
}

func ids(episodes []episode.Episode) []string {
	result := make([]string, len(episodes))
	for i, e := range episodes {
		result[i] = e.ID
	}
	return result
}
