// Package catalog is a built-in dish index searched with SQLite FTS5.
// nibbled falls back to it when no language model is configured.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"unicode"

	_ "modernc.org/sqlite"
)

// Catalog is an in-memory full-text index of dish names.
// Safe for concurrent use.
type Catalog struct {
	db    *sql.DB
	mu    sync.RWMutex
	count int
}

// Open builds a catalog over dishes. Nil dishes means DefaultDishes.
func Open(dishes []string) (*Catalog, error) {
	if dishes == nil {
		dishes = DefaultDishes
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("catalog: open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	c := &Catalog{db: db}
	if err := c.load(dishes); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Catalog) load(dishes []string) error {
	if _, err := c.db.Exec(`CREATE VIRTUAL TABLE dishes USING fts5(name, tokenize = 'unicode61 remove_diacritics 2')`); err != nil {
		return fmt.Errorf("catalog: create index: %w", err)
	}

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("catalog: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO dishes (name) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("catalog: prepare insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, d := range dishes {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if _, err := stmt.Exec(d); err != nil {
			return fmt.Errorf("catalog: insert %q: %w", d, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("catalog: commit: %w", err)
	}
	c.count = n
	return nil
}

// Search returns up to limit dishes whose words start with every token of
// query. When no dish has all of them, dishes matching any token are
// returned instead.
func (c *Catalog) Search(ctx context.Context, query string, limit int) ([]string, error) {
	tokens := tokenize(query)
	if len(tokens) == 0 || limit <= 0 {
		return []string{}, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out, err := c.match(ctx, matchExpr(tokens, " "), limit)
	if err != nil || len(out) > 0 || len(tokens) == 1 {
		return out, err
	}
	return c.match(ctx, matchExpr(tokens, " OR "), limit)
}

func (c *Catalog) match(ctx context.Context, expr string, limit int) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT name FROM dishes WHERE dishes MATCH ? ORDER BY rank, length(name) LIMIT ?`,
		expr, limit)
	if err != nil {
		return nil, fmt.Errorf("catalog: search: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("catalog: scan: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// tokenize splits on anything that is not a letter or digit, lowercased.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// matchExpr quotes each token as an FTS5 prefix query so user input can
// never be parsed as query syntax.
func matchExpr(tokens []string, sep string) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = `"` + t + `"*`
	}
	return strings.Join(parts, sep)
}

// Len returns the number of indexed dishes.
func (c *Catalog) Len() int {
	return c.count
}

// Close releases the database.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Close()
}
