package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// FileProvider serves candidates from a local JSON array of
// {"title", "url", "snippet"} objects, for offline runs and tests. Queries
// are matched token-wise: every whitespace-separated query token must appear
// somewhere in a candidate's title or snippet, which mirrors how keyword and
// category terms are joined into one query string upstream.
type FileProvider struct {
	Path string
}

func (f *FileProvider) Name() string { return "file" }

type fileCandidate struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

func (f *FileProvider) Search(_ context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(f.Path) == "" {
		return nil, errors.New("file provider path is empty")
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	var candidates []fileCandidate
	if err := json.Unmarshal(b, &candidates); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}

	tokens := strings.Fields(strings.ToLower(query))
	out := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		if c.Title == "" || c.URL == "" {
			continue
		}
		if !matchesTokens(c, tokens) {
			continue
		}
		out = append(out, Result{
			Title:   c.Title,
			URL:     c.URL,
			Snippet: c.Snippet,
			Source:  f.Name(),
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// matchesTokens requires every query token to appear in the candidate's title
// or snippet. An empty token list matches everything.
func matchesTokens(c fileCandidate, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	haystack := strings.ToLower(c.Title + " " + c.Snippet)
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}
