package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/abelbrown/nibble/internal/config"
)

// MockProvider is a testify mock for Provider.
type MockProvider struct {
	mock.Mock
	name      string
	available bool
}

func (m *MockProvider) Name() string    { return m.name }
func (m *MockProvider) Model() string   { return m.name + "-model" }
func (m *MockProvider) Available() bool { return m.available }

func (m *MockProvider) Suggest(ctx context.Context, input string) ([]string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProvider) Probe(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func TestManager_Active(t *testing.T) {
	a := &MockProvider{name: "a", available: false}
	b := &MockProvider{name: "b", available: true}
	c := &MockProvider{name: "c", available: true}
	m := NewManager(a, b, c)

	assert.Equal(t, "b", m.Active().Name())

	m.SetPreferred("c")
	assert.Equal(t, "c", m.Active().Name())

	m.SetPreferred("a") // unavailable preference falls back
	assert.Equal(t, "b", m.Active().Name())

	assert.Equal(t, []string{"b", "c"}, m.ListAvailable())
	assert.Nil(t, m.ByName("a"))
}

func TestManager_NoProvider(t *testing.T) {
	m := NewManager(&MockProvider{name: "off"})

	assert.Nil(t, m.Active())

	_, err := m.Suggest(context.Background(), "egg")
	assert.ErrorIs(t, err, ErrNoProvider)

	_, err = m.Probe(context.Background())
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestManager_SuggestDelegates(t *testing.T) {
	p := &MockProvider{name: "p", available: true}
	ctx := context.Background()
	p.On("Suggest", ctx, "egg").Return([]string{"Egg curry"}, nil)

	m := NewManager()
	m.Add(p)

	got, err := m.Suggest(ctx, "egg")
	require.NoError(t, err)
	assert.Equal(t, []string{"Egg curry"}, got)
	p.AssertExpectations(t)
}

func TestNewManagerFromConfig(t *testing.T) {
	fallback := &MockProvider{name: "Catalog", available: true}

	t.Run("azure preferred", func(t *testing.T) {
		m := NewManagerFromConfig(&config.Server{
			AzureEndpoint:   "https://example.openai.azure.com",
			AzureAPIKey:     "k",
			AzureDeployment: "gpt-4.1-nano",
			OpenAIAPIKey:    "sk",
		}, fallback)
		require.NotNil(t, m.Active())
		assert.Equal(t, "Azure OpenAI", m.Active().Name())
		assert.Equal(t, "gpt-4.1-nano", m.Active().Model())
	})

	t.Run("openai only", func(t *testing.T) {
		m := NewManagerFromConfig(&config.Server{OpenAIAPIKey: "sk", OpenAIModel: "gpt-4.1-nano"}, fallback)
		assert.Equal(t, "OpenAI", m.Active().Name())
	})

	t.Run("no credentials uses fallback", func(t *testing.T) {
		m := NewManagerFromConfig(&config.Server{}, fallback)
		assert.Equal(t, "Catalog", m.Active().Name())
	})

	t.Run("azure key without endpoint is unavailable", func(t *testing.T) {
		m := NewManagerFromConfig(&config.Server{AzureAPIKey: "k"})
		assert.Nil(t, m.Active())
	})
}
