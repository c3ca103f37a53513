package catalog

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radio247/internal/infra/config"
)

// NewSourcesFromConfig creates the configured sources in order.
func NewSourcesFromConfig(cfg *config.Config) ([]Source, error) {
	if len(cfg.Catalog.Sources) == 0 {
		return nil, errors.New("no catalog sources configured")
	}

	sources := make([]Source, 0, len(cfg.Catalog.Sources))
	for i, scfg := range cfg.Catalog.Sources {
		var source Source
		var err error
		zlog.Debug().Msgf("creating catalog source: index=%d type=%s", i+1, scfg.Type)
		switch scfg.Type {
		case "file":
			source, err = NewFileSource(scfg.Settings)
		case "inline":
			source, err = NewInlineSource(scfg.Settings)
		default:
			return nil, errors.Newf("unsupported source type: %s (source index %d)", scfg.Type, i)
		}

		if err != nil {
			return nil, errors.Wrapf(err, "failed to create source (index %d, type %s)", i, scfg.Type)
		}

		sources = append(sources, source)
		zlog.Info().Msgf("registered catalog source: index=%d type=%s", i+1, scfg.Type)
	}

	return sources, nil
}
