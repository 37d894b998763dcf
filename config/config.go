// Package config loads member-admin settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/deathrjj/member-admin-tui/source"
)

// Config is the merged runtime configuration.
type Config struct {
	Source Source `yaml:"source"`
	Log    Log    `yaml:"log"`
	Export Export `yaml:"export"`
	// Demo masks emails in the table.
	Demo bool `yaml:"demo"`
}

// Source configures the members endpoint.
type Source struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Log configures the diagnostic log file.
type Log struct {
	File  string `yaml:"file"`
	Debug bool   `yaml:"debug"`
}

// Export lists age or SSH recipients for encrypted exports.
type Export struct {
	Recipients []string `yaml:"recipients"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source: Source{
			URL:     source.DefaultURL,
			Timeout: source.DefaultTimeout,
		},
		Log: Log{
			File: filepath.Join(os.TempDir(), "member-admin.log"),
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping values the document does not set.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.Source.URL == "" {
		return errors.New("source.url must not be empty")
	}
	if c.Source.Timeout < 0 {
		return fmt.Errorf("source.timeout must not be negative, got %s", c.Source.Timeout)
	}
	return nil
}
