package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/radio247/internal/infra/config"
)

func TestNewFileSource(t *testing.T) {
	tests := []struct {
		name         string
		settings     map[string]any
		wantErr      bool
		wantWatch    bool
		wantDebounce int
	}{
		{
			name:         "defaults",
			settings:     map[string]any{"path": "traffic.json"},
			wantWatch:    true,
			wantDebounce: 500,
		},
		{
			name:         "explicit",
			settings:     map[string]any{"path": "traffic.yaml", "watch": false, "debounce_ms": 50},
			wantWatch:    false,
			wantDebounce: 50,
		},
		{
			name:     "missing path",
			settings: map[string]any{"watch": true},
			wantErr:  true,
		},
		{
			name:     "debounce too large",
			settings: map[string]any{"path": "traffic.json", "debounce_ms": 120000},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewFileSource(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "file", s.Name())
			assert.Equal(t, tt.wantWatch, *s.config.Watch)
			assert.Equal(t, tt.wantDebounce, s.config.DebounceMs)
		})
	}
}

func TestFileSource_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "traffic.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"channels":[{"channel_id":"x","title":"X"}]}`), 0o644))

	s, err := NewFileSource(map[string]any{"path": path, "watch": false})
	require.NoError(t, err)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].ChannelID)

	closer, err := s.Watch(func() {})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())

	missing, err := NewFileSource(map[string]any{"path": filepath.Join(dir, "missing.json")})
	require.NoError(t, err)
	_, err = missing.Load(context.Background())
	assert.Error(t, err)
}

func TestNewInlineSource(t *testing.T) {
	s, err := NewInlineSource(map[string]any{
		"channels": []map[string]any{
			{"channel_id": "a", "title": "A", "duration": 30},
			{"channel_id": "b", "title": "B"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "inline", s.Name())

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(30), got[0].Duration)

	// Load returns a copy
	got[0].Title = "changed"
	again, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", again[0].Title)
}

func TestNewInlineSource_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
	}{
		{"no channels", map[string]any{}},
		{"empty channels", map[string]any{"channels": []map[string]any{}}},
		{"missing channel id", map[string]any{"channels": []map[string]any{{"title": "A"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInlineSource(tt.settings)
			assert.Error(t, err)
		})
	}
}

func TestNewSourcesFromConfig(t *testing.T) {
	cfg := &config.Config{
		Catalog: config.CatalogConfig{
			Sources: []config.SourceConfig{
				{Type: "file", Settings: map[string]any{"path": "traffic.json"}},
				{Type: "inline", Settings: map[string]any{"channels": []map[string]any{{"channel_id": "a"}}}},
			},
		},
	}

	sources, err := NewSourcesFromConfig(cfg)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "file", sources[0].Name())
	assert.Equal(t, "inline", sources[1].Name())
}

func TestNewSourcesFromConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		sources []config.SourceConfig
	}{
		{"none", nil},
		{"unknown type", []config.SourceConfig{{Type: "http", Settings: map[string]any{"url": "x"}}}},
		{"bad settings", []config.SourceConfig{{Type: "file", Settings: map[string]any{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Catalog: config.CatalogConfig{Sources: tt.sources}}
			_, err := NewSourcesFromConfig(cfg)
			assert.Error(t, err)
		})
	}
}

func TestSupportedSourceTypes(t *testing.T) {
	types := SupportedSourceTypes()
	require.Len(t, types, 2)
	assert.Equal(t, "file", types[0].Name)
	assert.Equal(t, "inline", types[1].Name)
}
