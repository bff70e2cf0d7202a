package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/abelbrown/nibble/internal/logging"
)

// ChatAPI is the subset of the go-openai client we call.
type ChatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIConfig configures an OpenAI or Azure OpenAI provider.
type OpenAIConfig struct {
	APIKey string
	// BaseURL is the Azure resource endpoint when Azure is set, otherwise an
	// optional override of the public API root.
	BaseURL    string
	Azure      bool
	APIVersion string
	// Model is the model name, or the deployment name on Azure.
	Model string
	// RatePerMinute caps upstream calls. 0 means unlimited.
	RatePerMinute int
	HTTPClient    *http.Client
}

// OpenAIProvider implements Provider over chat completions.
type OpenAIProvider struct {
	api     ChatAPI
	name    string
	model   string
	hasKey  bool
	limiter *rate.Limiter
}

// NewOpenAIProvider creates a provider from cfg.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
	}

	var clientCfg openai.ClientConfig
	name := "OpenAI"
	if cfg.Azure {
		name = "Azure OpenAI"
		clientCfg = openai.DefaultAzureConfig(cfg.APIKey, cfg.BaseURL)
		if cfg.APIVersion != "" {
			clientCfg.APIVersion = cfg.APIVersion
		}
		deployment := cfg.Model
		clientCfg.AzureModelMapperFunc = func(string) string { return deployment }
	} else {
		clientCfg = openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
	}
	clientCfg.HTTPClient = httpClient

	return &OpenAIProvider{
		api:     openai.NewClientWithConfig(clientCfg),
		name:    name,
		model:   cfg.Model,
		hasKey:  cfg.APIKey != "" && (!cfg.Azure || cfg.BaseURL != ""),
		limiter: newLimiter(cfg.RatePerMinute),
	}
}

func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), max(1, perMinute/10))
}

func (o *OpenAIProvider) Name() string {
	return o.name
}

func (o *OpenAIProvider) Model() string {
	return o.model
}

func (o *OpenAIProvider) Available() bool {
	return o.hasKey
}

// Generate sends one chat completion.
func (o *OpenAIProvider) Generate(ctx context.Context, req Request) (Response, error) {
	if !o.Available() {
		logging.Warn("LLM provider not configured", "provider", o.name)
		return Response{}, ErrNotConfigured
	}

	if err := o.limiter.Wait(ctx); err != nil {
		return Response{}, fmt.Errorf("llm: rate limiter wait failed: %w", err)
	}

	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt})

	start := time.Now()
	resp, err := o.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
	})
	if err != nil {
		logging.Error("LLM request failed", "provider", o.name, "model", o.model, "error", err)
		return Response{}, fmt.Errorf("llm: %s completion: %w", o.name, err)
	}

	var content string
	if len(resp.Choices) > 0 {
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	logging.Debug("LLM request complete", "provider", o.name, "model", resp.Model, "duration", time.Since(start), "chars", len(content))

	return Response{Content: content, Model: resp.Model}, nil
}

// Suggest asks the model for dishes matching input.
func (o *OpenAIProvider) Suggest(ctx context.Context, input string) ([]string, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}
	resp, err := o.Generate(ctx, SuggestRequest(input))
	if err != nil {
		return nil, err
	}
	return ParseSuggestions(resp.Content), nil
}

// Probe checks the connection with a tiny completion.
func (o *OpenAIProvider) Probe(ctx context.Context) (string, error) {
	resp, err := o.Generate(ctx, Request{UserPrompt: probePrompt, MaxTokens: probeMaxTokens})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
