package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearServerEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DEBUG", "ENVIRONMENT",
		"AZURE_OPENAI_ENDPOINT", "AZURE_OPENAI_API_KEY", "AZURE_OPENAI_API_VERSION", "AZURE_OPENAI_DEPLOYMENT_NAME",
		"OPENAI_API_KEY", "OPENAI_MODEL", "LLM_RATE_PER_MINUTE", "SENTRY_DSN",
	} {
		// Setenv registers the restore; envconfig treats "" as set.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadServer_Defaults(t *testing.T) {
	clearServerEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "2025-01-01-preview", cfg.AzureAPIVersion)
	assert.Equal(t, "gpt-4.1-nano", cfg.AzureDeployment)
	assert.Equal(t, 120, cfg.LLMRatePerMinute)
	assert.False(t, cfg.HasAzure())
	assert.False(t, cfg.HasOpenAI())
}

func TestLoadServer_WithEnvVars(t *testing.T) {
	clearServerEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("AZURE_OPENAI_API_KEY", "azure-key")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT_NAME", "nano-prod")
	t.Setenv("LLM_RATE_PER_MINUTE", "30")

	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "nano-prod", cfg.AzureDeployment)
	assert.Equal(t, 30, cfg.LLMRatePerMinute)
	assert.True(t, cfg.HasAzure())
}

func TestLoadServer_InvalidNumber(t *testing.T) {
	clearServerEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("LLM_RATE_PER_MINUTE", "lots")

	_, err := LoadServer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_RATE_PER_MINUTE")
}

func TestHasOpenAI(t *testing.T) {
	cfg := &Server{OpenAIAPIKey: "sk-test"}
	assert.True(t, cfg.HasOpenAI())

	cfg.OpenAIAPIKey = ""
	assert.False(t, cfg.HasOpenAI())
}
