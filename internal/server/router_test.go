package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelbrown/nibble/internal/api/handlers"
	"github.com/abelbrown/nibble/internal/catalog"
	"github.com/abelbrown/nibble/internal/llm"
	"github.com/abelbrown/nibble/internal/suggest"
)

type failingProvider struct{}

func (failingProvider) Name() string    { return "broken" }
func (failingProvider) Model() string   { return "none" }
func (failingProvider) Available() bool { return true }
func (failingProvider) Suggest(context.Context, string) ([]string, error) {
	return nil, errors.New("upstream down")
}
func (failingProvider) Probe(context.Context) (string, error) {
	return "", errors.New("upstream down")
}

func newTestServer(t *testing.T, providers ...llm.Provider) *httptest.Server {
	t.Helper()
	mgr := llm.NewManager(providers...)
	srv := httptest.NewServer(NewRouter(RouterConfig{
		SuggestHandler: handlers.NewSuggestHandler(mgr),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Open(catalog.DefaultDishes)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRouter_SuggestThroughClient(t *testing.T) {
	srv := newTestServer(t, newCatalog(t))
	client := suggest.New(srv.URL)

	got, err := client.Suggest(context.Background(), "chick")
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), llm.MaxSuggestions)
	for _, s := range got {
		assert.Contains(t, strings.ToLower(s), "chick")
	}

	got, err = client.Suggest(context.Background(), "c")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRouter_HealthThroughClient(t *testing.T) {
	srv := newTestServer(t, newCatalog(t))

	h, err := suggest.New(srv.URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OK", h.Status)
	assert.Equal(t, "Built-in catalog", h.AIProvider)
	assert.Equal(t, "sqlite-fts5", h.Model)
}

func TestRouter_ProviderErrorReachesClient(t *testing.T) {
	srv := newTestServer(t, failingProvider{})

	_, err := suggest.New(srv.URL).Suggest(context.Background(), "pizza")
	require.Error(t, err)

	var se *suggest.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, llm.DefaultUserMessage, se.Message)
}

func TestRouter_BadRequest(t *testing.T) {
	srv := newTestServer(t, newCatalog(t))

	for _, payload := range []string{`{"text":"egg"}`, `{"inputText":null}`} {
		resp, err := http.Post(srv.URL+"/suggest", "application/json", strings.NewReader(payload))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, payload)
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.Equal(t, "inputText is required", body["error"], payload)
	}
}

func TestRouter_Preflight(t *testing.T) {
	srv := newTestServer(t, newCatalog(t))

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/suggest", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:8080")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Content-Type")
}

func TestRouter_CORSOnSuggest(t *testing.T) {
	srv := newTestServer(t, newCatalog(t))

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/suggest", strings.NewReader(`{"inputText":"rice"}`))
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:8080")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	// Header names come back canonicalised.
	assert.Contains(t, strings.ToLower(resp.Header.Get("Access-Control-Expose-Headers")), "x-request-id")
}

func TestRouter_TestAI(t *testing.T) {
	srv := newTestServer(t, newCatalog(t))

	resp, err := http.Get(srv.URL + "/test-ai")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "SUCCESS", body["status"])
}

func TestRouter_TestAIWithoutProvider(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/test-ai")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ERROR", body["status"])
}

func TestRouter_UnknownRoute(t *testing.T) {
	srv := newTestServer(t, newCatalog(t))

	resp, err := http.Get(srv.URL + "/suggest")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
