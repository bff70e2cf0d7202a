package catalog

import (
	"context"
	"fmt"
	"strings"
)

// maxSuggestions matches what the model-backed providers return.
const maxSuggestions = 5

// Name identifies the catalog in /health.
func (c *Catalog) Name() string {
	return "Built-in catalog"
}

// Model describes the search backend.
func (c *Catalog) Model() string {
	return "sqlite-fts5"
}

// Available is always true once Open succeeds.
func (c *Catalog) Available() bool {
	return c != nil && c.count > 0
}

// Suggest searches the catalog for input.
func (c *Catalog) Suggest(ctx context.Context, input string) ([]string, error) {
	if strings.TrimSpace(input) == "" {
		return []string{}, nil
	}
	return c.Search(ctx, input, maxSuggestions)
}

// Probe runs a query to prove the index answers.
func (c *Catalog) Probe(ctx context.Context) (string, error) {
	if _, err := c.Search(ctx, "rice", 1); err != nil {
		return "", err
	}
	return fmt.Sprintf("Catalog ready with %d dishes", c.count), nil
}
