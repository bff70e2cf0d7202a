// Package llm produces dish suggestions from a language model.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned by a provider without credentials.
	ErrNotConfigured = errors.New("llm: provider not configured")
	// ErrEmptyInput is returned when there is nothing to suggest from.
	ErrEmptyInput = errors.New("llm: input is empty")
	// ErrNoProvider is returned by the Manager when nothing is available.
	ErrNoProvider = errors.New("llm: no provider available")
)

// Provider turns partial input into suggestions.
type Provider interface {
	// Name is the display name, e.g. "Azure OpenAI".
	Name() string
	// Model is the model or deployment that answers.
	Model() string
	// Available returns true if the provider is configured and ready.
	Available() bool
	// Suggest returns at most MaxSuggestions entries for input.
	Suggest(ctx context.Context, input string) ([]string, error)
	// Probe sends a trivial request and returns the raw reply.
	Probe(ctx context.Context) (string, error)
}

// Request is a prompt request to a chat model.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float32
	TopP         float32
}

// Response is the model's reply.
type Response struct {
	Content string
	Model   string
}

// Manager picks a provider, preferring one by name.
type Manager struct {
	providers []Provider
	preferred string
}

// NewManager creates a Manager over providers, in fallback order.
func NewManager(providers ...Provider) *Manager {
	return &Manager{providers: providers}
}

// Add appends a provider to the fallback order.
func (m *Manager) Add(p Provider) {
	m.providers = append(m.providers, p)
}

// SetPreferred sets the preferred provider by name
func (m *Manager) SetPreferred(name string) {
	m.preferred = name
}

// Active returns the first available provider, preferring the preferred one.
// Nil when none is available.
func (m *Manager) Active() Provider {
	if m.preferred != "" {
		if p := m.ByName(m.preferred); p != nil {
			return p
		}
	}
	for _, p := range m.providers {
		if p.Available() {
			return p
		}
	}
	return nil
}

// ByName returns an available provider by name
func (m *Manager) ByName(name string) Provider {
	for _, p := range m.providers {
		if p.Name() == name && p.Available() {
			return p
		}
	}
	return nil
}

// ListAvailable returns names of all available providers
func (m *Manager) ListAvailable() []string {
	var names []string
	for _, p := range m.providers {
		if p.Available() {
			names = append(names, p.Name())
		}
	}
	return names
}

// Suggest asks the active provider.
func (m *Manager) Suggest(ctx context.Context, input string) ([]string, error) {
	p := m.Active()
	if p == nil {
		return nil, ErrNoProvider
	}
	return p.Suggest(ctx, input)
}

// Probe pings the active provider.
func (m *Manager) Probe(ctx context.Context) (string, error) {
	p := m.Active()
	if p == nil {
		return "", ErrNoProvider
	}
	return p.Probe(ctx)
}
