package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/abelbrown/nibble/internal/api/middleware"
	"github.com/abelbrown/nibble/internal/llm"
)

type MockSuggestService struct {
	mock.Mock
}

func (m *MockSuggestService) Suggest(ctx context.Context, input string) ([]string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSuggestService) Probe(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSuggestService) Active() llm.Provider {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(llm.Provider)
}

type stubProvider struct{ name, model string }

func (p stubProvider) Name() string                                      { return p.name }
func (p stubProvider) Model() string                                     { return p.model }
func (p stubProvider) Available() bool                                   { return true }
func (p stubProvider) Suggest(context.Context, string) ([]string, error) { return nil, nil }
func (p stubProvider) Probe(context.Context) (string, error)             { return "", nil }

func postSuggest(h *SuggestHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/suggest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Suggest(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSuggestHandler_Success(t *testing.T) {
	svc := new(MockSuggestService)
	svc.On("Suggest", mock.Anything, "egg").
		Return([]string{"Boiled egg (1 large)", "Scrambled eggs (2 eggs)"}, nil)

	w := postSuggest(NewSuggestHandler(svc), `{"inputText":"egg"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	resp := decode(t, w)
	assert.Equal(t, []interface{}{"Boiled egg (1 large)", "Scrambled eggs (2 eggs)"}, resp["suggestions"])
	svc.AssertExpectations(t)
}

func TestSuggestHandler_MissingInputText(t *testing.T) {
	for name, body := range map[string]string{
		"empty object": `{}`,
		"wrong field":  `{"text":"egg"}`,
		"not a string": `{"inputText":42}`,
		"null":         `{"inputText":null}`,
		"bad json":     `{"inputText":`,
		"no body":      ``,
	} {
		t.Run(name, func(t *testing.T) {
			svc := new(MockSuggestService)
			w := postSuggest(NewSuggestHandler(svc), body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "inputText is required", decode(t, w)["error"])
			svc.AssertNotCalled(t, "Suggest", mock.Anything, mock.Anything)
		})
	}
}

func TestSuggestHandler_OversizedBodyOfUnknownLength(t *testing.T) {
	svc := new(MockSuggestService)
	h := middleware.MaxBodyBytes(16)(http.HandlerFunc(NewSuggestHandler(svc).Suggest))

	req := httptest.NewRequest(http.MethodPost, "/suggest",
		io.NopCloser(strings.NewReader(`{"inputText":"a very long description of lunch"}`)))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "request body exceeds 16 bytes", decode(t, w)["error"])
	svc.AssertNotCalled(t, "Suggest", mock.Anything, mock.Anything)
}

func TestSuggestHandler_ShortInputSkipsProvider(t *testing.T) {
	for _, input := range []string{"", "a", "é"} {
		svc := new(MockSuggestService)
		w := postSuggest(NewSuggestHandler(svc), `{"inputText":"`+input+`"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"suggestions":[]}`, w.Body.String())
		svc.AssertNotCalled(t, "Suggest", mock.Anything, mock.Anything)
	}
}

func TestSuggestHandler_CapsAtFive(t *testing.T) {
	svc := new(MockSuggestService)
	svc.On("Suggest", mock.Anything, "rice").
		Return([]string{"1", "2", "3", "4", "5", "6", "7"}, nil)

	w := postSuggest(NewSuggestHandler(svc), `{"inputText":"rice"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["suggestions"], llm.MaxSuggestions)
}

func TestSuggestHandler_NilSuggestionsEncodeAsEmptyList(t *testing.T) {
	svc := new(MockSuggestService)
	svc.On("Suggest", mock.Anything, "zzz").Return(nil, nil)

	w := postSuggest(NewSuggestHandler(svc), `{"inputText":"zzz"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"suggestions":[]}`, w.Body.String())
}

func TestSuggestHandler_ProviderError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"generic", errors.New("boom"), llm.DefaultUserMessage},
		{"quota", &openai.APIError{Code: "insufficient_quota"}, "API quota exceeded. Please try again later."},
		{"wrapped key", wrapErr(&openai.APIError{Code: "invalid_api_key"}), "Invalid API credentials."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockSuggestService)
			svc.On("Suggest", mock.Anything, "pizza").Return(nil, tc.err)

			w := postSuggest(NewSuggestHandler(svc), `{"inputText":"pizza"}`)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, tc.want, decode(t, w)["error"])
		})
	}
}

func wrapErr(err error) error {
	return errors.Join(errors.New("llm: completion"), err)
}

func TestSuggestHandler_Health(t *testing.T) {
	svc := new(MockSuggestService)
	svc.On("Active").Return(stubProvider{name: "Azure OpenAI", model: "gpt-4.1-nano"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	NewSuggestHandler(svc).Health(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","message":"Server is running","aiProvider":"Azure OpenAI","model":"gpt-4.1-nano"}`, w.Body.String())
}

func TestSuggestHandler_HealthWithoutProvider(t *testing.T) {
	svc := new(MockSuggestService)
	svc.On("Active").Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	NewSuggestHandler(svc).Health(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "OK", resp["status"])
	assert.Equal(t, "none", resp["aiProvider"])
}

func TestSuggestHandler_TestAI(t *testing.T) {
	svc := new(MockSuggestService)
	svc.On("Probe", mock.Anything).Return("  connection successful\n", nil)

	req := httptest.NewRequest(http.MethodGet, "/test-ai", nil)
	w := httptest.NewRecorder()
	NewSuggestHandler(svc).TestAI(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"SUCCESS","response":"connection successful"}`, w.Body.String())
}

func TestSuggestHandler_TestAIFailure(t *testing.T) {
	svc := new(MockSuggestService)
	svc.On("Probe", mock.Anything).Return("", llm.ErrNoProvider)

	req := httptest.NewRequest(http.MethodGet, "/test-ai", nil)
	w := httptest.NewRecorder()
	NewSuggestHandler(svc).TestAI(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "ERROR", resp["status"])
	assert.Equal(t, llm.ErrNoProvider.Error(), resp["error"])
}
