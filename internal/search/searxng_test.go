package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hyperifyio/goprospect/internal/fetch"
)

func searxServer(t *testing.T, results []map[string]any, capture func(*http.Request)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			capture(r)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"results": results})
	}))
}

func TestSearxNG_LabelsAndSkipsInvalid(t *testing.T) {
	srv := searxServer(t, []map[string]any{
		{"title": "Acme Bakery", "url": "https://acme.example", "content": " fresh bread "},
		{"title": "No URL", "url": "", "content": "dropped"},
		{"title": "", "url": "https://untitled.example", "content": "dropped"},
	}, nil)
	defer srv.Close()

	s := &SearxNG{BaseURL: srv.URL, HTTPClient: srv.Client()}
	got, err := s.Search(context.Background(), "acme bakery", 5)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 valid result, got %d", len(got))
	}
	if got[0].URL != "https://acme.example" || got[0].Snippet != "fresh bread" {
		t.Fatalf("unexpected result: %+v", got[0])
	}
	if got[0].Source != "searxng" {
		t.Fatalf("expected provenance label, got %q", got[0].Source)
	}
}

func TestSearxNG_TruncatesToLimit(t *testing.T) {
	results := make([]map[string]any, 0, 8)
	for i := 0; i < 8; i++ {
		results = append(results, map[string]any{
			"title":   "Result",
			"url":     "https://example.com/" + string(rune('a'+i)),
			"content": "s",
		})
	}
	srv := searxServer(t, results, nil)
	defer srv.Close()

	s := &SearxNG{BaseURL: srv.URL, HTTPClient: srv.Client()}
	got, err := s.Search(context.Background(), "query", 3)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected limit truncation to 3, got %d", len(got))
	}
}

func TestSearxNG_SendsIdentityAndLanguage(t *testing.T) {
	var gotUA, gotAcceptLang, gotLangParam string
	srv := searxServer(t, nil, func(r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAcceptLang = r.Header.Get("Accept-Language")
		gotLangParam = r.URL.Query().Get("language")
	})
	defer srv.Close()

	s := &SearxNG{BaseURL: srv.URL, HTTPClient: srv.Client(), Language: "ja"}
	if _, err := s.Search(context.Background(), "query", 5); err != nil {
		t.Fatalf("search error: %v", err)
	}
	if gotUA != fetch.DefaultUserAgent {
		t.Fatalf("expected shared browser identity, got %q", gotUA)
	}
	if gotAcceptLang != fetch.DefaultAcceptLanguage {
		t.Fatalf("unexpected accept-language: %q", gotAcceptLang)
	}
	if gotLangParam != "ja" {
		t.Fatalf("expected language passthrough, got %q", gotLangParam)
	}
}

func TestSearxNG_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	s := &SearxNG{BaseURL: srv.URL, HTTPClient: srv.Client()}
	if _, err := s.Search(context.Background(), "query", 5); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestSearxNG_MissingBaseURL(t *testing.T) {
	s := &SearxNG{}
	if _, err := s.Search(context.Background(), "query", 5); err == nil {
		t.Fatal("expected error for missing base url")
	}
}
