package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/marcelocantos/redirect/internal/logging"
)

// Config holds the redirect configuration.
type Config struct {
	Log   logging.Config `yaml:"log"`
	Audit AuditConfig    `yaml:"audit"`
}

// AuditConfig controls the invocation audit log. An empty Path disables it.
type AuditConfig struct {
	Path string `yaml:"path"`
}

// DefaultConfig returns the default configuration: warn-level console
// logging and no audit log.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Log.ApplyDefaults()
	return cfg
}

// LoadFrom reads the config from the given path. An empty path yields the
// default config; a named file that does not exist is an error.
func LoadFrom(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Log.ApplyDefaults()
	if err := cfg.Log.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	// Expand ~ in audit path.
	if cfg.Audit.Path != "" && cfg.Audit.Path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("expand audit path: %w", err)
		}
		cfg.Audit.Path = filepath.Join(home, cfg.Audit.Path[1:])
	}

	return cfg, nil
}
