// Package config loads nibble's client settings (TOML file, environment,
// flags) and nibbled's server settings (environment).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// EnvAPIURL overrides the api_url setting.
const EnvAPIURL = "NIBBLE_API_URL"

// Config is the persistent client configuration.
type Config struct {
	APIURL string `toml:"api_url"`

	// Debounce settings
	DebounceMs    int `toml:"debounce_ms"`
	InstantMaxLen int `toml:"instant_max_len"`

	ErrorTimeoutMs int `toml:"error_timeout_ms"`

	// Examples are bound to f1..f9 in the picker.
	Examples []string `toml:"examples"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		APIURL:         "http://localhost:3000",
		DebounceMs:     150,
		InstantMaxLen:  2,
		ErrorTimeoutMs: 3000,
		Examples: []string{
			`"150g chicken breast"`,
			`"pizza slice"`,
			`"1 cup rice"`,
			`"2 boiled eggs"`,
		},
	}
}

// DataDir is where nibble keeps its config, logs and event log.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nibble"
	}
	return filepath.Join(home, ".nibble")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// Load reads the config at path, or returns defaults if it does not exist.
// Keys missing from the file keep their default values. The environment is
// applied on top.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes the config to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// ApplyEnv fills in settings from environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
}

// BindFlags registers flags that override the loaded values. Call it before
// the flag set is parsed. The file can be loaded afterwards with Merge.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.APIURL, "api-url", c.APIURL, "suggestion service URL (env "+EnvAPIURL+")")
	fs.IntVar(&c.DebounceMs, "debounce", c.DebounceMs, "debounce delay in milliseconds")
}

// Merge replaces c with loaded, keeping any value set by a flag in fs that
// the command line changed.
func (c *Config) Merge(loaded *Config, fs *pflag.FlagSet) {
	flagged := *c
	*c = *loaded
	if fs.Changed("api-url") {
		c.APIURL = flagged.APIURL
	}
	if fs.Changed("debounce") {
		c.DebounceMs = flagged.DebounceMs
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		result = multierror.Append(result, fmt.Errorf("api_url %q is not an absolute URL", c.APIURL))
	}
	if c.DebounceMs <= 0 {
		result = multierror.Append(result, fmt.Errorf("debounce_ms must be > 0, got %d", c.DebounceMs))
	}
	if c.InstantMaxLen <= 0 {
		result = multierror.Append(result, fmt.Errorf("instant_max_len must be > 0, got %d", c.InstantMaxLen))
	}
	if c.ErrorTimeoutMs <= 0 {
		result = multierror.Append(result, fmt.Errorf("error_timeout_ms must be > 0, got %d", c.ErrorTimeoutMs))
	}
	if len(c.Examples) > 9 {
		result = multierror.Append(result, fmt.Errorf("at most 9 examples are supported, got %d", len(c.Examples)))
	}

	return result.ErrorOrNil()
}

// Debounce returns the debounce delay.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// ErrorTimeout returns how long error rows stay visible.
func (c *Config) ErrorTimeout() time.Duration {
	return time.Duration(c.ErrorTimeoutMs) * time.Millisecond
}
