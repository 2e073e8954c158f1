package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const cseEndpoint = "https://www.googleapis.com/customsearch/v1"

// The API returns at most this many items per request; deeper results need
// the start parameter.
const csePageSize = 10

// GoogleCSE implements Provider against the Google Custom Search JSON API.
// Results beyond the first page are fetched with start-offset paging, pacing
// page requests through a rate limiter so a large request does not burn quota
// in a burst.
type GoogleCSE struct {
	APIKey     string
	CX         string
	HTTPClient *http.Client
	// BaseURL overrides the production endpoint, used in tests.
	BaseURL string
	// PageLimiter spaces out successive page requests. Nil means a default of
	// two pages per second, matching the API's informal pacing guidance.
	PageLimiter *rate.Limiter
}

func (g *GoogleCSE) Name() string { return "Google Search" }

func (g *GoogleCSE) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if g.APIKey == "" || g.CX == "" {
		return nil, fmt.Errorf("google cse: missing api key or engine id")
	}
	if limit <= 0 {
		limit = csePageSize
	}
	limiter := g.PageLimiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(500*time.Millisecond), 1)
	}

	pages := (limit + csePageSize - 1) / csePageSize
	out := make([]Result, 0, limit)
	for page := 0; page < pages; page++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		items, err := g.fetchPage(ctx, query, page*csePageSize+1)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			break
		}
		for _, it := range items {
			if it.Link == "" || it.Title == "" {
				continue
			}
			out = append(out, Result{
				Title:   strings.TrimSpace(it.Title),
				URL:     strings.TrimSpace(it.Link),
				Snippet: strings.TrimSpace(it.Snippet),
				Source:  g.Name(),
			})
			if len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func (g *GoogleCSE) fetchPage(ctx context.Context, query string, start int) ([]cseItem, error) {
	base := g.BaseURL
	if base == "" {
		base = cseEndpoint
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("key", g.APIKey)
	q.Set("cx", g.CX)
	q.Set("q", query)
	q.Set("start", strconv.Itoa(start))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	hc := g.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("google cse status: %d", resp.StatusCode)
	}
	var cr cseResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, err
	}
	return cr.Items, nil
}

type cseItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type cseResponse struct {
	Items []cseItem `json:"items"`
}
