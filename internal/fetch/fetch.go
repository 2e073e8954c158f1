package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"
)

// DefaultUserAgent mirrors a mainstream desktop browser. Many small business
// sites refuse requests with an empty or default library agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultAcceptLanguage prefers Japanese with an English fallback, matching
// the audience of the sites this tool inspects.
const DefaultAcceptLanguage = "ja,en-US;q=0.9,en;q=0.8"

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 10 * time.Second

// Page is the decoded result of one fetch.
type Page struct {
	HTML string
	// Encoding is the charset declared in the Content-Type header, or empty
	// when the body was used as transported.
	Encoding string
}

// Error wraps a failed fetch with the URL that caused it. Fetch failures are
// expected during a batch run and are never fatal to callers.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Client performs single bounded GETs with a fixed browser-like identity.
// There are no retries: one failed fetch means an empty extraction for that
// candidate, not a second request.
type Client struct {
	HTTPClient     *http.Client
	UserAgent      string
	AcceptLanguage string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
	// RedirectMaxHops caps redirect following to avoid loops. Zero means 5.
	RedirectMaxHops int
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating caller's client
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	return &http.Client{CheckRedirect: c.checkRedirectFunc()}
}

// Get issues one GET with the client's identity headers and returns the page
// body decoded per the response's declared charset. All failures come back as
// *Error.
func (c *Client) Get(ctx context.Context, rawurl string) (Page, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return Page{}, &Error{URL: rawurl, Err: fmt.Errorf("new request: %w", err)}
	}
	if req.URL == nil || !isHTTPScheme(req.URL) {
		return Page{}, &Error{URL: rawurl, Err: fmt.Errorf("unsupported URL scheme: %q", rawurl)}
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	lang := c.AcceptLanguage
	if lang == "" {
		lang = DefaultAcceptLanguage
	}
	req.Header.Set("Accept-Language", lang)

	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		return Page{}, &Error{URL: rawurl, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Page{}, &Error{URL: rawurl, Err: fmt.Errorf("unexpected status: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Page{}, &Error{URL: rawurl, Err: fmt.Errorf("read body: %w", err)}
	}

	charset := declaredCharset(resp.Header.Get("Content-Type"))
	html, used := decodeBody(body, charset)
	return Page{HTML: html, Encoding: used}, nil
}

// declaredCharset returns the charset parameter from a Content-Type header,
// or empty when absent or unparseable.
func declaredCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(params["charset"]))
}

// decodeBody re-decodes body using the declared charset when one is known to
// the IANA index. Unknown or absent charsets fall back to passing the bytes
// through unchanged.
func decodeBody(body []byte, charset string) (string, string) {
	if charset == "" || charset == "utf-8" || charset == "utf8" {
		return string(body), charset
	}
	enc, err := htmlindex.Get(charset)
	if err != nil || enc == nil {
		return string(body), ""
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return string(body), ""
	}
	return string(decoded), charset
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		// Only allow http/https during redirects
		if req.URL == nil || !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
