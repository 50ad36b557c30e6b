package internal

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/proverb/internal/searchpath"
)

// Config represents the application configuration.
type Config struct {
	LogLevel slog.Level   `yaml:"log_level"`
	Search   SearchConfig `yaml:"search"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return c.Search.Validate()
}

// SearchConfig holds additions to the standard search directories.
type SearchConfig struct {
	// ExtraDirs are searched after the standard directories.
	ExtraDirs []string `yaml:"extra_dirs"`
}

// Validate validates the search configuration.
func (c *SearchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ExtraDirs, validation.Each(validation.Required, validation.By(absolutePath))),
	)
}

func absolutePath(value any) error {
	s, _ := value.(string)
	if !filepath.IsAbs(s) {
		return errors.New("must be an absolute path")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: slog.LevelWarn,
	}
}

// DefaultConfigPath returns <user-config-dir>/proverb/config.yaml, or "" if
// the user config directory is unknown.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, searchpath.AppName, "config.yaml")
}
