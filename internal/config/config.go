// Package config holds sweatlog configuration. Everything here is
// deployment-time: defaults, then an optional YAML file, then environment
// variables, then flags at the composition root. Nothing is re-read after
// startup.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the full client configuration.
type Config struct {
	// APIBaseURL is the base path all REST endpoints hang off.
	APIBaseURL string `yaml:"api_url"`

	// LoginURL is the hosted login page the client redirects to when the
	// identity check is rejected.
	LoginURL string `yaml:"login_url"`

	// Theme selects the TUI color scheme: "light", "dark" or "auto".
	Theme string `yaml:"theme"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBaseURL: "http://localhost:3000/api",
		LoginURL:   "http://localhost:3000/login",
		Theme:      "auto",
	}
}

// DefaultPath is the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sweatlog.yaml"
	}
	return filepath.Join(home, ".sweatlog.yaml")
}

// Load builds the configuration: defaults, overlaid with the YAML file at
// path when it exists, overlaid with environment variables. A missing file
// is not an error; an unreadable or malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SWEATLOG_API_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("SWEATLOG_LOGIN_URL"); v != "" {
		c.LoginURL = v
	}
	if v := os.Getenv("SWEATLOG_THEME"); v != "" {
		c.Theme = v
	}
}
