package catalog

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/osa030/radio247/internal/infra/channels"
)

// InlineSourceConfig holds the settings of an inline source.
type InlineSourceConfig struct {
	Channels []channels.Record `yaml:"channels" mapstructure:"channels" validate:"required,min=1,dive"`
}

// InlineSource serves channels written in the configuration file.
type InlineSource struct {
	records []channels.Record
}

// NewInlineSource creates an inline source from raw settings.
func NewInlineSource(settings map[string]any) (*InlineSource, error) {
	var config InlineSourceConfig
	if err := mapstructure.Decode(settings, &config); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(err, "invalid inline source settings")
	}
	return &InlineSource{records: config.Channels}, nil
}

// Name returns the source type.
func (s *InlineSource) Name() string {
	return "inline"
}

// Load returns a copy of the configured channels.
func (s *InlineSource) Load(ctx context.Context) ([]channels.Record, error) {
	result := make([]channels.Record, len(s.records))
	copy(result, s.records)
	return result, nil
}
