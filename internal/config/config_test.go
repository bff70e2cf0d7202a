package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 3*time.Second, cfg.ErrorTimeout())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_url = "http://nibble.internal:8080"
debounce_ms = 300
examples = ["toast"]
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://nibble.internal:8080", cfg.APIURL)
	assert.Equal(t, 300, cfg.DebounceMs)
	assert.Equal(t, []string{"toast"}, cfg.Examples)
	// Untouched keys keep defaults.
	assert.Equal(t, 2, cfg.InstantMaxLen)
	assert.Equal(t, 3000, cfg.ErrorTimeoutMs)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("api_url = "), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`api_url = "http://from-file:1"`), 0644))
	t.Setenv(EnvAPIURL, "http://from-env:2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:2", cfg.APIURL)
}

func TestBindFlags_OverrideEverything(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://from-env:2")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--api-url", "http://from-flag:3", "--debounce", "75"}))

	assert.Equal(t, "http://from-flag:3", cfg.APIURL)
	assert.Equal(t, 75*time.Millisecond, cfg.Debounce())
}

func TestBindFlags_DefaultsComeFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIURL = "http://configured:9"

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, "http://configured:9", cfg.APIURL)
	assert.Equal(t, 150, cfg.DebounceMs)
}

func TestMerge_FlagsBeatFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("api_url = \"http://from-file:1\"\ndebounce_ms = 300\n"), 0644))

	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--debounce", "75"}))

	loaded, err := Load(path)
	require.NoError(t, err)
	cfg.Merge(loaded, fs)

	assert.Equal(t, "http://from-file:1", cfg.APIURL)
	assert.Equal(t, 75, cfg.DebounceMs)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.DebounceMs = 200

	require.NoError(t, cfg.Save(path))

	t.Setenv(EnvAPIURL, "")
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := &Config{
		APIURL:         "localhost",
		DebounceMs:     -1,
		InstantMaxLen:  -1,
		ErrorTimeoutMs: 0,
		Examples:       make([]string, 10),
	}
	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "5 errors occurred")
	assert.Contains(t, msg, "api_url")
	assert.Contains(t, msg, "debounce_ms")
	assert.Contains(t, msg, "instant_max_len")
	assert.Contains(t, msg, "error_timeout_ms")
	assert.Contains(t, msg, "at most 9 examples")
}

func TestValidateRejectsZeroTimings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DebounceMs = 0
	cfg.InstantMaxLen = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
	assert.Contains(t, err.Error(), "debounce_ms must be > 0")
	assert.Contains(t, err.Error(), "instant_max_len must be > 0")
}

func TestConfigPathUnderDataDir(t *testing.T) {
	assert.Equal(t, filepath.Join(DataDir(), "config.toml"), ConfigPath())
}
