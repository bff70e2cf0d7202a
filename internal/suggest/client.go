// Package suggest is the HTTP client for the nibbled suggestion service.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
)

// DefaultBaseURL is where nibbled listens out of the box.
const DefaultBaseURL = "http://localhost:3000"

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 512

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("suggest: HTTP error! status: %d", e.StatusCode)
	}
	return fmt.Sprintf("suggest: HTTP error! status: %d: %s", e.StatusCode, e.Message)
}

type requestIDKey struct{}

// WithRequestID attaches id to ctx; the client forwards it as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type suggestRequest struct {
	InputText string `json:"inputText"`
}

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Health is the document served by GET /health.
type Health struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	AIProvider string `json:"aiProvider,omitempty"`
	Model      string `json:"model,omitempty"`
}

// Client talks to one nibbled instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a Client for baseURL. The underlying client has no overall
// timeout; callers bound requests through the context.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: cleanhttp.DefaultPooledClient(),
	}
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Suggest posts text to /suggest. A response without a suggestions field
// yields an empty, non-nil slice.
func (c *Client) Suggest(ctx context.Context, text string) ([]string, error) {
	body, err := json.Marshal(suggestRequest{InputText: text})
	if err != nil {
		return nil, fmt.Errorf("suggest: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/suggest", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("suggest: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out suggestResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	if out.Suggestions == nil {
		return []string{}, nil
	}
	return out.Suggestions, nil
}

// Health fetches GET /health.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("suggest: create request: %w", err)
	}

	var h Health
	if err := c.do(req, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if id := RequestID(req.Context()); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("suggest: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("suggest: decode response: %w", err)
	}
	return nil
}

// errorMessage pulls {"error": "..."} out of a failed response, falling back
// to the raw (truncated) body.
func errorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}
