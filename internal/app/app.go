package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/goprospect/internal/aggregate"
	"github.com/hyperifyio/goprospect/internal/export"
	"github.com/hyperifyio/goprospect/internal/fetch"
	"github.com/hyperifyio/goprospect/internal/llm"
	"github.com/hyperifyio/goprospect/internal/planner"
	"github.com/hyperifyio/goprospect/internal/scan"
	"github.com/hyperifyio/goprospect/internal/search"
	"github.com/hyperifyio/goprospect/internal/session"
)

// ErrNoResults is returned when no provider produced any candidates. Per the
// error policy, provider failures surface as zero results and the run never
// reaches the scan stage.
var ErrNoResults = errors.New("no search results")

// App wires the search, scan, and export stages for one discovery run.
type App struct {
	cfg Config
}

func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// Run executes the full discovery pipeline and returns the filtered contact
// list. Export sink failures are reported in the returned error but never
// discard the collected results; callers get both.
func (a *App) Run(ctx context.Context) ([]scan.Contact, error) {
	queries := a.planQueries(ctx)

	provider, err := a.provider()
	if err != nil {
		return nil, err
	}

	groups := make([][]search.Result, 0, len(queries))
	for _, q := range queries {
		results, err := provider.Search(ctx, q, a.maxResults())
		if err != nil {
			log.Warn().Err(err).Str("query", q).Str("provider", provider.Name()).Msg("search error")
			continue
		}
		groups = append(groups, results)
	}
	candidates := aggregate.Merge(groups)
	if len(candidates) > a.maxResults() {
		candidates = candidates[:a.maxResults()]
	}
	if len(candidates) == 0 {
		log.Warn().Msg("no candidates from any query")
		return nil, ErrNoResults
	}
	log.Info().Int("candidates", len(candidates)).Msg("search complete; scanning websites")

	runner := &scan.Runner{
		Fetcher: &fetch.Client{HTTPClient: newPooledHTTPClient()},
		Delay:   scan.Interval{Min: a.cfg.DelayMin, Max: a.cfg.DelayMax},
		Progress: func(fraction float64, status string) {
			log.Info().Int("percent", int(fraction*100)).Msg(status)
		},
	}
	contacts := runner.Run(ctx, candidates, a.scanLimit())

	var sess session.Session
	sess.SetResults(contacts)
	sess.SetFilter(session.Filter{
		HasInstagram: a.cfg.FilterInstagram,
		HasTikTok:    a.cfg.FilterTikTok,
		HasYouTube:   a.cfg.FilterYouTube,
		HasEmail:     a.cfg.FilterEmail,
	})
	filtered := sess.Filtered()
	log.Info().Int("total", len(contacts)).Int("after_filter", len(filtered)).Msg("scan complete")

	return filtered, a.export(ctx, filtered)
}

// planQueries expands the search intent into provider queries, preferring the
// LLM planner when one is configured and falling back deterministically.
func (a *App) planQueries(ctx context.Context) []string {
	req := planner.Request{
		Keywords:     a.cfg.Keywords,
		Categories:   a.cfg.Categories,
		LanguageHint: a.cfg.LanguageHint,
	}
	if a.cfg.LLMModel != "" {
		transportCfg := openai.DefaultConfig(a.cfg.LLMAPIKey)
		if a.cfg.LLMBaseURL != "" {
			transportCfg.BaseURL = a.cfg.LLMBaseURL
		}
		transportCfg.HTTPClient = newPooledHTTPClient()
		p := &planner.LLMPlanner{
			Client: &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)},
			Model:  a.cfg.LLMModel,
		}
		if plan, err := p.Plan(ctx, req); err == nil {
			return plan.Queries
		} else {
			log.Warn().Err(err).Msg("query planner failed, using fallback")
		}
	}
	plan, err := planner.FallbackPlanner{}.Plan(ctx, req)
	if err != nil {
		return nil
	}
	return plan.Queries
}

// provider picks the first configured search backend: Google CSE, then
// SearxNG, then the offline file provider.
func (a *App) provider() (search.Provider, error) {
	switch {
	case a.cfg.GoogleAPIKey != "" && a.cfg.GoogleCX != "":
		return &search.GoogleCSE{
			APIKey:     a.cfg.GoogleAPIKey,
			CX:         a.cfg.GoogleCX,
			HTTPClient: newPooledHTTPClient(),
		}, nil
	case a.cfg.SearxURL != "":
		return &search.SearxNG{
			BaseURL:    a.cfg.SearxURL,
			APIKey:     a.cfg.SearxKey,
			UserAgent:  a.cfg.SearxUA,
			Language:   a.cfg.LanguageHint,
			HTTPClient: newPooledHTTPClient(),
		}, nil
	case a.cfg.FileSearchPath != "":
		return &search.FileProvider{Path: a.cfg.FileSearchPath}, nil
	}
	return nil, errors.New("no search provider configured")
}

// export writes the contact list to every configured sink. Failures are
// joined and reported together; a broken sink never unwinds the run.
func (a *App) export(ctx context.Context, contacts []scan.Contact) error {
	var errs []error
	if a.cfg.CSVPath != "" {
		if err := export.WriteCSVFile(a.cfg.CSVPath, contacts); err != nil {
			log.Error().Err(err).Str("path", a.cfg.CSVPath).Msg("csv export failed")
			errs = append(errs, err)
		} else {
			log.Info().Str("path", a.cfg.CSVPath).Msg("wrote csv")
		}
	}
	if a.cfg.PDFPath != "" {
		if err := writePDFFile(a.cfg.PDFPath, contacts); err != nil {
			log.Error().Err(err).Str("path", a.cfg.PDFPath).Msg("pdf export failed")
			errs = append(errs, err)
		} else {
			log.Info().Str("path", a.cfg.PDFPath).Msg("wrote pdf")
		}
	}
	if a.cfg.SheetsID != "" {
		if err := a.exportSheets(ctx, contacts); err != nil {
			log.Error().Err(err).Str("spreadsheet", a.cfg.SheetsID).Msg("sheets export failed")
			errs = append(errs, err)
		} else {
			log.Info().Str("spreadsheet", a.cfg.SheetsID).Str("tab", a.sheetsTab()).Msg("wrote spreadsheet")
		}
	}
	return errors.Join(errs...)
}

func (a *App) exportSheets(ctx context.Context, contacts []scan.Contact) error {
	creds, err := os.ReadFile(a.cfg.SheetsCredsFile)
	if err != nil {
		return fmt.Errorf("read service account credentials: %w", err)
	}
	sink := &export.SheetsSink{
		CredentialsJSON: creds,
		SpreadsheetID:   a.cfg.SheetsID,
		SheetName:       a.sheetsTab(),
	}
	return sink.Write(ctx, contacts)
}

func (a *App) sheetsTab() string {
	if a.cfg.SheetsTab != "" {
		return a.cfg.SheetsTab
	}
	return "contacts_" + time.Now().Format("20060102")
}

func (a *App) maxResults() int {
	if a.cfg.MaxResults > 0 {
		return a.cfg.MaxResults
	}
	return 20
}

func (a *App) scanLimit() int {
	if a.cfg.ScanLimit > 0 {
		return a.cfg.ScanLimit
	}
	return a.maxResults()
}

func writePDFFile(path string, contacts []scan.Contact) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := export.WritePDF(f, contacts); err != nil {
		return err
	}
	return f.Close()
}

// newPooledHTTPClient returns a client that reuses connections across
// sequential requests. The scan stage keeps at most one request in flight,
// so the pool stays small.
func newPooledHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        16,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     60 * time.Second,
	}
	return &http.Client{Transport: transport}
}
