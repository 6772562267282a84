// Package config builds the immutable runtime configuration. It is
// resolved exactly once at startup — defaults, then an optional YAML file,
// then environment overrides — and passed explicitly into every adapter;
// nothing in the core reads the environment after that.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultMLBBaseURL = "https://statsapi.mlb.com/api/v1"
	defaultNBABaseURL = "https://api.balldontlie.io/v1"
	defaultTimeout    = 10 * time.Second
)

// Config holds everything the adapters need. NBAAPIKey may be empty; the
// basketball adapter fails fast with a config error when it is required.
type Config struct {
	MLBBaseURL  string
	NBABaseURL  string
	NBAAPIKey   string
	HTTPTimeout time.Duration
}

// fileConfig is the optional YAML file shape.
type fileConfig struct {
	MLB struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"mlb"`
	NBA struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"nba"`
	HTTPTimeout string `yaml:"http_timeout"`
}

// Load resolves the configuration. path names an optional YAML file; an
// empty path skips the file layer entirely.
func Load(path string) (Config, error) {
	cfg := Config{
		MLBBaseURL:  defaultMLBBaseURL,
		NBABaseURL:  defaultNBABaseURL,
		HTTPTimeout: defaultTimeout,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
		if fc.MLB.BaseURL != "" {
			cfg.MLBBaseURL = fc.MLB.BaseURL
		}
		if fc.NBA.BaseURL != "" {
			cfg.NBABaseURL = fc.NBA.BaseURL
		}
		if fc.NBA.APIKey != "" {
			cfg.NBAAPIKey = fc.NBA.APIKey
		}
		if fc.HTTPTimeout != "" {
			parsed, err := time.ParseDuration(fc.HTTPTimeout)
			if err != nil {
				return Config{}, fmt.Errorf("invalid http_timeout %q: %w", fc.HTTPTimeout, err)
			}
			cfg.HTTPTimeout = parsed
		}
	}

	if v := os.Getenv("MLB_API_BASE_URL"); v != "" {
		cfg.MLBBaseURL = v
	}
	if v := os.Getenv("NBA_API_BASE_URL"); v != "" {
		cfg.NBABaseURL = v
	}
	if v := os.Getenv("NBA_API_KEY"); v != "" {
		cfg.NBAAPIKey = v
	}
	if v := os.Getenv("SCORELINE_HTTP_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SCORELINE_HTTP_TIMEOUT %q: %w", v, err)
		}
		cfg.HTTPTimeout = parsed
	}

	return cfg, nil
}
