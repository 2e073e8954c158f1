package search

import (
	"context"
	"strings"
)

// Result represents a single search hit from any provider. It is immutable
// once produced; the scan stage copies it before attaching contact signals.
type Result struct {
	Title   string
	URL     string
	Snippet string
	Source  string // provider label for provenance, e.g. "Google Search"
}

// Provider is a minimal interface for search providers.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
	Name() string
}

// BuildQuery joins free-form keywords with optional category tags into one
// provider query string.
func BuildQuery(keywords string, categories []string) string {
	q := strings.TrimSpace(keywords)
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if q == "" {
			q = c
			continue
		}
		q += " " + c
	}
	return q
}
