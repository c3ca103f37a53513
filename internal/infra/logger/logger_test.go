package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{input: "debug", expected: zerolog.DebugLevel},
		{input: "INFO", expected: zerolog.InfoLevel},
		{input: "", expected: zerolog.InfoLevel},
		{input: "warning", expected: zerolog.WarnLevel},
		{input: "error", expected: zerolog.ErrorLevel},
		{input: "verbose", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestFromFlags(t *testing.T) {
	cfg := FromFlags(false, "")
	assert.Equal(t, Config{Output: "stdout", Level: "info"}, cfg)

	cfg = FromFlags(true, "/var/log/radio247.log")
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "/var/log/radio247.log", cfg.Output)
	assert.Equal(t, "/var/log/radio247.log", cfg.File)
}

func TestInit_FileOutputIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	require.NoError(t, Init(FromFlags(false, path)))
	t.Cleanup(func() {
		_ = Init(FromFlags(false, ""))
	})

	l := Component("catalog")
	l.Info().Msg("catalog loaded")
	zlog.Debug().Msg("hidden at info level")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"component":"catalog"`)
	assert.Contains(t, lines[0], `"message":"catalog loaded"`)
}

func TestShortCaller(t *testing.T) {
	file := filepath.Join("home", "dev", "radio247", "internal", "app", "catalog", "catalog.go")
	assert.Equal(t, filepath.Join("catalog", "catalog.go")+":42", shortCaller(0, file, 42))
	assert.Equal(t, "main.go:7", shortCaller(0, "main.go", 7))
}

func TestInit_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "server.log")
	assert.Error(t, Init(FromFlags(false, path)))
}
