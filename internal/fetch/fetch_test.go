package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/japanese"
)

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	c := &Client{Timeout: 2 * time.Second}
	page, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(page.HTML, "ok") {
		t.Fatalf("expected body, got %q", page.HTML)
	}
}

func TestGet_SendsIdentityHeaders(t *testing.T) {
	var ua, lang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		lang = r.Header.Get("Accept-Language")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	c := &Client{}
	if _, err := c.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ua != DefaultUserAgent {
		t.Fatalf("expected default user agent, got %q", ua)
	}
	if lang != DefaultAcceptLanguage {
		t.Fatalf("expected default accept-language, got %q", lang)
	}
}

func TestGet_NonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := &Client{}
	_, err := c.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fetch.Error, got %T", err)
	}
	if fe.URL != srv.URL {
		t.Fatalf("expected error to carry URL %q, got %q", srv.URL, fe.URL)
	}
}

func TestGet_TimeoutIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := &Client{Timeout: 50 * time.Millisecond}
	_, err := c.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fetch.Error, got %T", err)
	}
}

func TestGet_RejectsNonHTTPScheme(t *testing.T) {
	c := &Client{}
	if _, err := c.Get(context.Background(), "ftp://example.com/"); err == nil {
		t.Fatal("expected scheme error")
	}
}

func TestGet_DecodesDeclaredCharset(t *testing.T) {
	// Serve Shift_JIS bytes with the charset declared in the header.
	const wantText = "お問い合わせ"
	raw, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte("<html><body>" + wantText + "</body></html>"))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=Shift_JIS")
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	c := &Client{}
	page, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(page.HTML, wantText) {
		t.Fatalf("expected decoded text %q in body", wantText)
	}
	if page.Encoding != "shift_jis" {
		t.Fatalf("expected encoding shift_jis, got %q", page.Encoding)
	}
}

func TestDeclaredCharset(t *testing.T) {
	if got := declaredCharset("text/html; charset=EUC-JP"); got != "euc-jp" {
		t.Fatalf("expected euc-jp, got %q", got)
	}
	if got := declaredCharset("text/html"); got != "" {
		t.Fatalf("expected empty charset, got %q", got)
	}
	if got := declaredCharset(""); got != "" {
		t.Fatalf("expected empty charset, got %q", got)
	}
}
