package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Defaults holds the filter selections the UI starts with.
type Defaults struct {
	Language      string `yaml:"language"`
	SourceCountry string `yaml:"source_country"`
	Sentiment     string `yaml:"sentiment"`
	Sort          string `yaml:"sort"`
}

type Config struct {
	Endpoint     string   `yaml:"endpoint"`
	Relay        string   `yaml:"relay,omitempty"`
	Defaults     Defaults `yaml:"defaults"`
	SavedQueries []string `yaml:"saved_queries"`
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsdesk", "config.yaml")
}

func StorePath() string {
	return filepath.Join(xdg.CacheHome, "newsdesk", "newsdesk.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	fillMissing(&cfg, defaults)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// fillMissing backfills fields a hand-edited config left out.
func fillMissing(cfg, defaults *Config) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaults.Endpoint
	}
	if cfg.Defaults.Language == "" {
		cfg.Defaults.Language = defaults.Defaults.Language
	}
	if cfg.Defaults.Sort == "" {
		cfg.Defaults.Sort = defaults.Defaults.Sort
	}
	if len(cfg.SavedQueries) == 0 {
		cfg.SavedQueries = defaults.SavedQueries
	}
}

func validate(cfg *Config) error {
	endpoints := []struct {
		name string
		raw  string
	}{
		{"endpoint", cfg.Endpoint},
		{"relay", cfg.Relay},
	}
	for _, e := range endpoints {
		if e.name == "relay" && e.raw == "" {
			continue
		}
		u, err := url.Parse(e.raw)
		if err != nil {
			return fmt.Errorf("%s: invalid url: %w", e.name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s: url scheme must be http or https, got %q", e.name, u.Scheme)
		}
	}

	validSort := map[string]bool{"publish-time": true, "relevance": true}
	if !validSort[cfg.Defaults.Sort] {
		return fmt.Errorf("defaults.sort: unknown value %q (valid: publish-time, relevance)", cfg.Defaults.Sort)
	}

	validSentiment := map[string]bool{"": true, "positive": true, "neutral": true, "negative": true}
	if !validSentiment[cfg.Defaults.Sentiment] {
		return fmt.Errorf("defaults.sentiment: unknown value %q (valid: positive, neutral, negative or empty)", cfg.Defaults.Sentiment)
	}

	return nil
}
