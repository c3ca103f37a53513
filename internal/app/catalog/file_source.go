package catalog

import (
	"context"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radio247/internal/infra/channels"
)

// FileSourceConfig holds the settings of a file source.
type FileSourceConfig struct {
	Path       string `yaml:"path" mapstructure:"path" validate:"required"`
	Watch      *bool  `yaml:"watch" mapstructure:"watch" default:"true"`
	DebounceMs int    `yaml:"debounce_ms" mapstructure:"debounce_ms" default:"500" validate:"gte=0,lte=60000"`
}

// FileSource reads channels from a station list file.
type FileSource struct {
	config FileSourceConfig
}

// NewFileSource creates a file source from raw settings.
func NewFileSource(settings map[string]any) (*FileSource, error) {
	var config FileSourceConfig
	if err := mapstructure.Decode(settings, &config); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	zlog.Debug().Msgf("file source config: path=%s watch=%t debounce_ms=%d", config.Path, *config.Watch, config.DebounceMs)
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(err, "invalid file source settings")
	}
	return &FileSource{config: config}, nil
}

// Name returns the source type.
func (s *FileSource) Name() string {
	return "file"
}

// Path returns the watched file path.
func (s *FileSource) Path() string {
	return s.config.Path
}

// Load reads the file.
func (s *FileSource) Load(ctx context.Context) ([]channels.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := channels.ReadFile(s.config.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "file source %s", s.config.Path)
	}
	return records, nil
}

// Watch reports file changes. It returns a no-op closer when watching is disabled.
func (s *FileSource) Watch(onChange func()) (io.Closer, error) {
	if !*s.config.Watch {
		return nopCloser{}, nil
	}
	debounce := time.Duration(s.config.DebounceMs) * time.Millisecond
	return channels.Watch(s.config.Path, debounce, onChange)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
