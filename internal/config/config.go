package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the file the commands look for when --config is not given.
const DefaultPath = "crdeck.toml"

// Config represents the application configuration.
type Config struct {
	// Card and deck data files
	Data DataConfig `toml:"data"`

	// Fuzzy matcher settings
	Matcher MatcherConfig `toml:"matcher"`

	// TCP and HTTP server settings
	Server ServerConfig `toml:"server"`

	// Request throttling
	Limits LimitsConfig `toml:"limits"`
}

// DataConfig points at the catalog and library YAML files. Empty paths use
// the embedded defaults.
type DataConfig struct {
	Cards string `toml:"cards"`
	Decks string `toml:"decks"`
	Watch bool   `toml:"watch"` // servers reload the files when they change
}

// MatcherConfig contains fuzzy matching settings.
type MatcherConfig struct {
	Ratio float64 `toml:"ratio"` // max edit distance per rune, 0.25..0.30
}

// ServerConfig contains listener settings.
type ServerConfig struct {
	TCPPort   string `toml:"tcp_port"`
	HTTPPort  string `toml:"http_port"`
	StaticDir string `toml:"static_dir"` // serve from disk instead of the embedded page
}

// LimitsConfig throttles build and analyze requests per client.
type LimitsConfig struct {
	RequestsPerSecond float64 `toml:"rps"`
	Burst             int     `toml:"burst"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Matcher: MatcherConfig{
			Ratio: 0.3,
		},
		Server: ServerConfig{
			TCPPort:  "7777",
			HTTPPort: "8080",
		},
		Limits: LimitsConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
	}
}

// Load reads the configuration at path on top of the defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	var errs []error
	if c.Matcher.Ratio < 0.25 || c.Matcher.Ratio > 0.30 {
		errs = append(errs, fmt.Errorf("matcher ratio %v outside [0.25, 0.30]", c.Matcher.Ratio))
	}
	if c.Server.TCPPort == "" {
		errs = append(errs, errors.New("server tcp_port is empty"))
	}
	if c.Server.HTTPPort == "" {
		errs = append(errs, errors.New("server http_port is empty"))
	}
	if c.Limits.RequestsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("limits rps must be positive: %v", c.Limits.RequestsPerSecond))
	}
	if c.Limits.Burst < 1 {
		errs = append(errs, fmt.Errorf("limits burst must be at least 1: %d", c.Limits.Burst))
	}
	return errors.Join(errs...)
}
