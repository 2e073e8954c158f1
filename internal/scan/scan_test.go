package scan

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/goprospect/internal/fetch"
	"github.com/hyperifyio/goprospect/internal/pattern"
	"github.com/hyperifyio/goprospect/internal/search"
)

// fakeFetcher serves canned pages keyed by URL and records every request.
type fakeFetcher struct {
	pages map[string]string
	fails map[string]error
	calls []string
}

func (f *fakeFetcher) Get(_ context.Context, url string) (fetch.Page, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.fails[url]; ok {
		return fetch.Page{}, err
	}
	return fetch.Page{HTML: f.pages[url]}, nil
}

func fastDelay() Interval { return Interval{Min: time.Millisecond, Max: time.Millisecond} }

func TestRun_ExtractsSignals(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"https://acme.example.com": `<html><body>
			<p>mail: info@acme.com</p>
			<a href="https://instagram.com/acme">ig</a>
		</body></html>`,
	}}
	r := &Runner{Fetcher: f, Delay: fastDelay()}
	out := r.Run(context.Background(), []search.Result{
		{Title: "Acme Corp | Home Page", URL: "https://acme.example.com", Snippet: "s", Source: "Google Search"},
	}, 10)
	if len(out) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(out))
	}
	c := out[0]
	if c.DisplayName != "Acme Corp" {
		t.Fatalf("expected display name 'Acme Corp', got %q", c.DisplayName)
	}
	if c.Email != "info@acme.com" {
		t.Fatalf("expected email, got %q", c.Email)
	}
	if c.Profiles[pattern.Instagram] != "https://instagram.com/acme" {
		t.Fatalf("expected instagram profile, got %q", c.Profiles[pattern.Instagram])
	}
	if c.Title != "Acme Corp | Home Page" || c.URL != "https://acme.example.com" || c.Snippet != "s" {
		t.Fatalf("display fields must be unchanged: %+v", c)
	}
}

func TestRun_LimitBudget(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{}}
	cands := []search.Result{
		{Title: "One", URL: "https://one.example.com"},
		{Title: "Two", URL: "https://two.example.com"},
		{Title: "Three", URL: "https://three.example.com"},
	}
	r := &Runner{Fetcher: f, Delay: fastDelay()}
	out := r.Run(context.Background(), cands, 2)
	if len(out) != 3 {
		t.Fatalf("output length must equal input length, got %d", len(out))
	}
	if len(f.calls) != 2 {
		t.Fatalf("expected exactly 2 fetches, got %d (%v)", len(f.calls), f.calls)
	}
	// The third candidate passes through untouched.
	c := out[2]
	if c.Title != "Three" || c.URL != "https://three.example.com" {
		t.Fatalf("pass-through fields must be intact: %+v", c)
	}
	if c.Email != "" || len(c.Profiles) != 0 {
		t.Fatalf("pass-through candidate must have empty signals: %+v", c)
	}
}

func TestRun_FetchFailureIsIsolated(t *testing.T) {
	f := &fakeFetcher{
		pages: map[string]string{
			"https://good.example.com": `<p>hello@good.example.com</p>`,
		},
		fails: map[string]error{
			"https://bad.example.com": &fetch.Error{URL: "https://bad.example.com", Err: errors.New("timeout")},
		},
	}
	cands := []search.Result{
		{Title: "Bad", URL: "https://bad.example.com"},
		{Title: "Good", URL: "https://good.example.com"},
	}
	r := &Runner{Fetcher: f, Delay: fastDelay()}
	out := r.Run(context.Background(), cands, 10)
	if len(out) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(out))
	}
	if out[0].Email != "" || len(out[0].Profiles) != 0 {
		t.Fatalf("failed fetch must yield empty signals: %+v", out[0])
	}
	if out[0].Title != "Bad" {
		t.Fatalf("failed candidate keeps its fields: %+v", out[0])
	}
	if out[1].Email != "hello@good.example.com" {
		t.Fatalf("later candidate must still be processed, got %+v", out[1])
	}
}

func TestRun_EmptyURLSkipsFetch(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{}}
	r := &Runner{Fetcher: f, Delay: fastDelay()}
	out := r.Run(context.Background(), []search.Result{{Title: "No site"}}, 5)
	if len(f.calls) != 0 {
		t.Fatalf("expected no fetches, got %v", f.calls)
	}
	if len(out) != 1 || out[0].Title != "No site" {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestRun_ProgressReporting(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{}}
	var fractions []float64
	var statuses []string
	r := &Runner{Fetcher: f, Delay: fastDelay(), Progress: func(fr float64, st string) {
		fractions = append(fractions, fr)
		statuses = append(statuses, st)
	}}
	cands := []search.Result{
		{Title: "One", URL: "https://one.example.com"},
		{Title: "Two", URL: "https://two.example.com"},
	}
	r.Run(context.Background(), cands, 2)
	if len(fractions) != 3 {
		t.Fatalf("expected 2 step reports plus done, got %d", len(fractions))
	}
	if fractions[0] != 0.5 || fractions[1] != 1 {
		t.Fatalf("unexpected fractions: %v", fractions)
	}
	if !strings.Contains(statuses[0], "processing candidate 1 of 2: One") {
		t.Fatalf("unexpected status: %q", statuses[0])
	}
	if statuses[2] != "done" {
		t.Fatalf("expected terminal done signal, got %q", statuses[2])
	}
}

func TestRun_CancelStopsFurtherProcessing(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cands := []search.Result{
		{Title: "One", URL: "https://one.example.com"},
		{Title: "Two", URL: "https://two.example.com"},
	}
	r := &Runner{Fetcher: f, Delay: fastDelay()}
	out := r.Run(ctx, cands, 2)
	if len(f.calls) != 0 {
		t.Fatalf("expected no fetches after cancel, got %v", f.calls)
	}
	if len(out) != 2 {
		t.Fatalf("output still mirrors input, got %d", len(out))
	}
}
