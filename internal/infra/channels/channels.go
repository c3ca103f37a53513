// Package channels reads station lists in the station API's "traffic" format.
package channels

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Record is a single channel as published by the station API.
type Record struct {
	ChannelID   string `json:"channel_id" yaml:"channel_id" mapstructure:"channel_id" validate:"required"`
	Title       string `json:"title" yaml:"title" mapstructure:"title"`
	Cover       string `json:"cover" yaml:"cover" mapstructure:"cover"`
	Artist      string `json:"artist" yaml:"artist" mapstructure:"artist"`
	StreamURL   string `json:"stream_url" yaml:"stream_url" mapstructure:"stream_url"`
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Duration    int64  `json:"duration,omitempty" yaml:"duration,omitempty" mapstructure:"duration"`
	PublishedAt string `json:"published_at,omitempty" yaml:"published_at,omitempty" mapstructure:"published_at"`
}

// Document is the top-level shape of a station list.
type Document struct {
	Channels []Record `json:"channels" yaml:"channels"`
}

// ReadFile reads a station list from a JSON or YAML file.
// The format is chosen by extension; anything but .yaml/.yml is parsed as JSON.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read channel file")
	}
	return Parse(data, formatFor(path))
}

// Format identifies a station list encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Parse decodes a station list.
func Parse(data []byte, format Format) ([]Record, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "failed to parse YAML channel list")
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "failed to parse JSON channel list")
		}
	default:
		return nil, errors.Newf("unsupported channel list format: %s", format)
	}
	return doc.Channels, nil
}

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
