// Package config loads reach settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/xonecas/reach/internal/constants"
)

// Config is the root configuration structure.
type Config struct {
	Slice  SliceConfig  `toml:"slice"`
	Store  StoreConfig  `toml:"store"`
	Search SearchConfig `toml:"search"`
	UI     UIConfig     `toml:"ui"`
}

// SliceConfig controls slice collection and hydration.
type SliceConfig struct {
	MaxDepth  int    `toml:"max_depth"`
	Strategy  string `toml:"strategy"`  // "pattern" or "direct"
	Direction string `toml:"direction"` // "auto", "forward" or "backward"
}

// StoreConfig locates the query database.
type StoreConfig struct {
	Path     string `toml:"path"`
	TTLHours int    `toml:"ttl_hours"`
}

// TTL returns the retention period for recorded queries.
func (s StoreConfig) TTL() time.Duration {
	return time.Duration(s.TTLHours) * time.Hour
}

// SearchConfig selects search contributors.
type SearchConfig struct {
	Contributors []string `toml:"contributors"`
	MaxResults   int      `toml:"max_results"`
}

// UIConfig holds output settings.
type UIConfig struct {
	SyntaxTheme string `toml:"syntax_theme"`
	Color       bool   `toml:"color"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Slice: SliceConfig{
			MaxDepth:  10,
			Strategy:  "pattern",
			Direction: "auto",
		},
		Store: StoreConfig{TTLHours: 720},
		Search: SearchConfig{
			Contributors: []string{"symbols", "text"},
			MaxResults:   50,
		},
		UI: UIConfig{SyntaxTheme: constants.SyntaxTheme},
	}
}

// Load reads configuration from path on top of Default and applies
// environment overrides. An empty path loads the default config file if
// it exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		dir, err := DataDir()
		if err == nil {
			path = filepath.Join(dir, constants.ConfigFileName)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if explicit {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
		} else if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalises the slice strategy and direction names and returns
// an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Slice.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("slice.max_depth=%d must not be negative", c.Slice.MaxDepth))
	}
	c.Slice.Strategy = strings.ToLower(strings.TrimSpace(c.Slice.Strategy))
	c.Slice.Direction = strings.ToLower(strings.TrimSpace(c.Slice.Direction))
	switch c.Slice.Strategy {
	case "pattern", "direct":
	default:
		errs = append(errs, fmt.Errorf("slice.strategy=%q must be \"pattern\" or \"direct\"", c.Slice.Strategy))
	}
	switch c.Slice.Direction {
	case "auto", "forward", "backward":
	default:
		errs = append(errs, fmt.Errorf("slice.direction=%q must be \"auto\", \"forward\" or \"backward\"", c.Slice.Direction))
	}

	if c.Store.TTLHours < 0 {
		errs = append(errs, fmt.Errorf("store.ttl_hours=%d must not be negative", c.Store.TTLHours))
	}

	if len(c.Search.Contributors) == 0 {
		errs = append(errs, errors.New("search.contributors: at least one contributor must be configured"))
	}
	if c.Search.MaxResults < 0 {
		errs = append(errs, fmt.Errorf("search.max_results=%d must not be negative", c.Search.MaxResults))
	}

	return errors.Join(errs...)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) error {
	var errs []error
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"REACH_STRATEGY", func(v string) { cfg.Slice.Strategy = v }},
		{"REACH_DB", func(v string) { cfg.Store.Path = v }},
		{"REACH_MAX_DEPTH", func(v string) {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("REACH_MAX_DEPTH=%q: %w", v, err))
				return
			}
			cfg.Slice.MaxDepth = n
		}},
	} {
		if v := os.Getenv(setter.env); v != "" {
			setter.apply(v)
		}
	}
	return errors.Join(errs...)
}

// DBPath returns the configured database path or the default one in the
// data directory.
func (c *Config) DBPath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	dir, err := EnsureDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.DBFileName), nil
}

// DataDir returns the path to the reach data directory (~/.config/reach).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", constants.AppName), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", err
	}
	return dir, nil
}
