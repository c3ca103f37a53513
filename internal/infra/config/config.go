// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Admin        AdminConfig        `yaml:"admin"`
	Session      SessionConfig      `yaml:"session"`
	Catalog      CatalogConfig      `yaml:"catalog"`
	Notification NotificationConfig `yaml:"notification"`
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Addr               string      `yaml:"addr" default:":8080"`
	ShutdownTimeoutSec int         `yaml:"shutdown_timeout_sec" default:"10" validate:"gte=1,lte=300"`
	Hooks              HooksConfig `yaml:"hooks"`
}

// HooksConfig represents lifecycle hooks configuration.
type HooksConfig struct {
	OnStarted []string `yaml:"on_started"`
	OnStopped []string `yaml:"on_stopped"`
}

// AdminConfig represents admin-related configuration.
type AdminConfig struct {
	Token string `yaml:"token" validate:"required"`
}

// SessionConfig represents listener session configuration.
type SessionConfig struct {
	IdleTimeoutSec   *int `yaml:"idle_timeout_sec" default:"1800" validate:"required,gte=0"` // 0 disables expiry
	SweepIntervalSec int  `yaml:"sweep_interval_sec" default:"60" validate:"gte=1"`
	MaxSessions      *int `yaml:"max_sessions" default:"1000" validate:"required,gte=0"` // 0 means unlimited
}

// CatalogConfig represents catalogue configuration.
type CatalogConfig struct {
	Limit       *int           `yaml:"limit" default:"12" validate:"required,gte=0"`
	LatestCount *int           `yaml:"latest_count" default:"2" validate:"required,gte=0"`
	Timezone    string         `yaml:"timezone" default:"UTC"`
	Sources     []SourceConfig `yaml:"sources" validate:"required,min=1,dive"`
}

// SourceConfig represents a single catalogue source.
type SourceConfig struct {
	Type     string         `yaml:"type" validate:"required,oneof=file inline"`
	Settings map[string]any `yaml:"settings" validate:"required"`
}

// NotificationConfig represents subscriber notification configuration.
type NotificationConfig struct {
	SendTimeoutMs int `yaml:"send_timeout_ms" default:"500" validate:"gte=1,lte=30000"`
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("RADIO247_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		c.Admin.Token = v
	}
	if v := os.Getenv("RADIO247_CATALOG_FILE"); v != "" {
		for i := range c.Catalog.Sources {
			if c.Catalog.Sources[i].Type == "file" {
				if c.Catalog.Sources[i].Settings == nil {
					c.Catalog.Sources[i].Settings = map[string]any{}
				}
				c.Catalog.Sources[i].Settings["path"] = v
				return
			}
		}
		c.Catalog.Sources = append(c.Catalog.Sources, SourceConfig{
			Type:     "file",
			Settings: map[string]any{"path": v},
		})
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Location returns the catalogue time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Catalog.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Catalog.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid catalog timezone %q", c.Catalog.Timezone)
	}
	return loc, nil
}

// ShutdownTimeout returns the graceful shutdown timeout.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSec) * time.Second
}

// IdleTimeout returns how long an unused session is kept. Zero disables expiry.
func (c *Config) IdleTimeout() time.Duration {
	if c.Session.IdleTimeoutSec == nil {
		return 0
	}
	return time.Duration(*c.Session.IdleTimeoutSec) * time.Second
}

// MaxSessions returns the session limit. Zero means unlimited.
func (c *Config) MaxSessions() int {
	if c.Session.MaxSessions == nil {
		return 0
	}
	return *c.Session.MaxSessions
}

// SweepInterval returns how often idle sessions are collected.
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Session.SweepIntervalSec) * time.Second
}

// SendTimeout returns how long a notification send may take before it is logged as slow.
func (c *Config) SendTimeout() time.Duration {
	return time.Duration(c.Notification.SendTimeoutMs) * time.Millisecond
}

// CatalogLimit returns the maximum number of episodes (0 = unlimited).
func (c *Config) CatalogLimit() int {
	if c.Catalog.Limit == nil {
		return 0
	}
	return *c.Catalog.Limit
}

// LatestCount returns the number of homepage latest releases.
func (c *Config) LatestCount() int {
	if c.Catalog.LatestCount == nil {
		return 0
	}
	return *c.Catalog.LatestCount
}
