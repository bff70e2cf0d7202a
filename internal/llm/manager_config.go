package llm

import (
	"github.com/abelbrown/nibble/internal/config"
)

// NewManagerFromConfig registers Azure OpenAI, then OpenAI, then any
// fallbacks, and prefers whichever credentials are present.
func NewManagerFromConfig(cfg *config.Server, fallbacks ...Provider) *Manager {
	m := NewManager()

	azure := NewOpenAIProvider(OpenAIConfig{
		APIKey:        cfg.AzureAPIKey,
		BaseURL:       cfg.AzureEndpoint,
		Azure:         true,
		APIVersion:    cfg.AzureAPIVersion,
		Model:         cfg.AzureDeployment,
		RatePerMinute: cfg.LLMRatePerMinute,
	})
	m.Add(azure)

	public := NewOpenAIProvider(OpenAIConfig{
		APIKey:        cfg.OpenAIAPIKey,
		Model:         cfg.OpenAIModel,
		RatePerMinute: cfg.LLMRatePerMinute,
	})
	m.Add(public)

	for _, p := range fallbacks {
		m.Add(p)
	}

	if cfg.HasAzure() {
		m.SetPreferred(azure.Name())
	}
	return m
}
