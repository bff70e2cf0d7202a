package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Server is nibbled's configuration, read from the environment.
type Server struct {
	Port        string `envconfig:"PORT" default:"3000"`
	Debug       bool   `envconfig:"DEBUG" default:"false"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	AzureEndpoint   string `envconfig:"AZURE_OPENAI_ENDPOINT"`
	AzureAPIKey     string `envconfig:"AZURE_OPENAI_API_KEY"`
	AzureAPIVersion string `envconfig:"AZURE_OPENAI_API_VERSION" default:"2025-01-01-preview"`
	AzureDeployment string `envconfig:"AZURE_OPENAI_DEPLOYMENT_NAME" default:"gpt-4.1-nano"`

	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4.1-nano"`

	// Upstream completions per minute. 0 disables the limit.
	LLMRatePerMinute int `envconfig:"LLM_RATE_PER_MINUTE" default:"120"`

	SentryDSN string `envconfig:"SENTRY_DSN"`
}

// LoadServer reads .env (if present) and then the environment.
func LoadServer() (*Server, error) {
	_ = godotenv.Load()

	var cfg Server
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}

// HasAzure reports whether Azure OpenAI credentials are set.
func (s *Server) HasAzure() bool {
	return s.AzureEndpoint != "" && s.AzureAPIKey != ""
}

// HasOpenAI reports whether a plain OpenAI key is set.
func (s *Server) HasOpenAI() bool {
	return s.OpenAIAPIKey != ""
}

// Addr is the listen address for Port.
func (s *Server) Addr() string {
	return ":" + s.Port
}
