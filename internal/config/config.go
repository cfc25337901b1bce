// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Layer file and env on top with Load(ctx).
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/okian/traineval/pkg/logger"
)

// Storage backends.
const (
	StorageFile   = "file"
	StorageMemory = "memory"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StorageBackend is file or memory.
	StorageBackend string `koanf:"storage_backend"`

	// StoragePath is the directory used by the file backend.
	StoragePath string `koanf:"storage_path"`

	// KeyNamespace prefixes every persisted record key.
	KeyNamespace string `koanf:"key_namespace"`

	// ShareOrigin is the scheme and host that share links point at.
	ShareOrigin string `koanf:"share_origin"`

	// MaxDays caps the training day count.
	MaxDays int `koanf:"max_days"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      logger.FormatText,
		Addr:           ":8080",
		StorageBackend: StorageFile,
		StoragePath:    "data",
		KeyNamespace:   "traineval",
		ShareOrigin:    "http://localhost:8080",
		MaxDays:        30,
	}
}

// Validate checks field values and normalises case.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("%w: log_format %q must be text or json", ErrInvalidConfig, c.LogFormat)
	}

	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	switch c.StorageBackend {
	case StorageMemory:
	case StorageFile:
		if strings.TrimSpace(c.StoragePath) == "" {
			return fmt.Errorf("%w: storage_path is required for the file backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: storage_backend %q must be file or memory", ErrInvalidConfig, c.StorageBackend)
	}

	if strings.TrimSpace(c.KeyNamespace) == "" {
		return fmt.Errorf("%w: key_namespace must not be empty", ErrInvalidConfig)
	}
	if c.MaxDays < 1 {
		return fmt.Errorf("%w: max_days must be positive, got %d", ErrInvalidConfig, c.MaxDays)
	}

	u, err := url.Parse(c.ShareOrigin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: share_origin %q must be an http(s) origin", ErrInvalidConfig, c.ShareOrigin)
	}
	c.ShareOrigin = strings.TrimRight(c.ShareOrigin, "/")
	return nil
}
