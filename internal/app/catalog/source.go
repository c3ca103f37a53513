package catalog

import (
	"context"
	"io"
	"sort"

	"github.com/osa030/radio247/internal/infra/channels"
)

// Source supplies channel records to the catalogue.
// Different implementations read channels from different places
// (e.g., a dump of the station API on disk, inline configuration).
type Source interface {
	// Load returns the source's channel records in display order.
	Load(ctx context.Context) ([]channels.Record, error)

	// Name returns the source type (used in config).
	Name() string
}

// Watchable is implemented by sources that can report changes.
type Watchable interface {
	// Watch calls onChange whenever the source content changes.
	Watch(onChange func()) (io.Closer, error)
}

// sourceTypes describes the source types understood by NewSourcesFromConfig.
var sourceTypes = map[string]string{
	"file":   "Channel list read from a JSON or YAML dump of the station API, reloaded on change",
	"inline": "Channel list written directly in the configuration file",
}

// SourceType describes a supported source type.
type SourceType struct {
	Name        string
	Description string
}

// SupportedSourceTypes returns the supported source types sorted by name.
func SupportedSourceTypes() []SourceType {
	result := make([]SourceType, 0, len(sourceTypes))
	for name, desc := range sourceTypes {
		result = append(result, SourceType{Name: name, Description: desc})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}
