package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goprospect/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Local .env, if present, before flags read the environment.
	_ = godotenv.Load()

	var (
		configPath string
		keywords   string
		categories string
		maxResults int
		scanLimit  int
		delayMin   time.Duration
		delayMax   time.Duration

		googleKey  string
		googleCX   string
		searxURL   string
		searxKey   string
		searxUA    string
		searchFile string

		llmBaseURL string
		llmModel   string
		llmKey     string

		filterInstagram bool
		filterTikTok    bool
		filterYouTube   bool
		filterEmail     bool

		csvPath    string
		pdfPath    string
		sheetsCred string
		sheetsID   string
		sheetsTab  string

		language string
		verbose  bool
	)

	flag.StringVar(&configPath, "config", "", "Path to YAML/JSON config file")
	flag.StringVar(&keywords, "q", "", "Search keywords (space separated)")
	flag.StringVar(&categories, "categories", "", "Comma-separated category tags appended to the query")
	flag.IntVar(&maxResults, "max.results", 0, "Maximum number of search results to collect (0 = 20)")
	flag.IntVar(&scanLimit, "max.scan", 0, "Maximum number of result websites to fetch and extract (0 = same as max.results)")
	flag.DurationVar(&delayMin, "delay.min", 0, "Minimum pause between scanned websites (0 = 500ms)")
	flag.DurationVar(&delayMax, "delay.max", 0, "Maximum pause between scanned websites (0 = 1.5s)")
	flag.StringVar(&googleKey, "google.key", os.Getenv("GOOGLE_API_KEY"), "Google API key for Custom Search")
	flag.StringVar(&googleCX, "google.cx", os.Getenv("GOOGLE_CX"), "Google Custom Search engine ID")
	flag.StringVar(&searxURL, "searx.url", os.Getenv("SEARX_URL"), "SearxNG base URL (alternative provider)")
	flag.StringVar(&searxKey, "searx.key", os.Getenv("SEARX_KEY"), "SearxNG API key (optional)")
	flag.StringVar(&searxUA, "searx.ua", "goprospect/1.0 (+https://github.com/hyperifyio/goprospect)", "Custom User-Agent for SearxNG requests")
	flag.StringVar(&searchFile, "search.file", os.Getenv("SEARCH_FILE"), "Path to JSON file for offline file-based search provider")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL for query expansion (optional)")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name for query expansion (optional)")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
	flag.BoolVar(&filterInstagram, "filter.instagram", false, "Keep only contacts with an Instagram profile")
	flag.BoolVar(&filterTikTok, "filter.tiktok", false, "Keep only contacts with a TikTok profile")
	flag.BoolVar(&filterYouTube, "filter.youtube", false, "Keep only contacts with a YouTube channel")
	flag.BoolVar(&filterEmail, "filter.email", false, "Keep only contacts with an email address")
	flag.StringVar(&csvPath, "out.csv", "influencer_contacts.csv", "Path for the CSV export (empty disables)")
	flag.StringVar(&pdfPath, "out.pdf", "", "Path for the PDF contact sheet (empty disables)")
	flag.StringVar(&sheetsCred, "sheets.credentials", os.Getenv("SHEETS_CREDENTIALS_FILE"), "Path to service-account JSON for the spreadsheet export")
	flag.StringVar(&sheetsID, "sheets.id", os.Getenv("SPREADSHEET_ID"), "Target spreadsheet ID (empty disables the export)")
	flag.StringVar(&sheetsTab, "sheets.tab", "", "Target tab name (default contacts_<date>)")
	flag.StringVar(&language, "lang", "", "Optional language hint, e.g. 'ja' or 'en'")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		Keywords:        keywords,
		Categories:      splitList(categories),
		MaxResults:      maxResults,
		ScanLimit:       scanLimit,
		GoogleAPIKey:    googleKey,
		GoogleCX:        googleCX,
		SearxURL:        searxURL,
		SearxKey:        searxKey,
		SearxUA:         searxUA,
		FileSearchPath:  searchFile,
		LLMBaseURL:      llmBaseURL,
		LLMModel:        llmModel,
		LLMAPIKey:       llmKey,
		DelayMin:        delayMin,
		DelayMax:        delayMax,
		FilterInstagram: filterInstagram,
		FilterTikTok:    filterTikTok,
		FilterYouTube:   filterYouTube,
		FilterEmail:     filterEmail,
		CSVPath:         csvPath,
		PDFPath:         pdfPath,
		SheetsCredsFile: sheetsCred,
		SheetsID:        sheetsID,
		SheetsTab:       sheetsTab,
		LanguageHint:    language,
		Verbose:         verbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("failed to load config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)
	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	contacts, err := app.New(cfg).Run(ctx)
	switch {
	case errors.Is(err, app.ErrNoResults):
		log.Error().Msg("no results found; try different keywords")
		os.Exit(2)
	case err != nil:
		// Export failures land here with the collected contacts intact.
		log.Error().Err(err).Int("contacts", len(contacts)).Msg("run finished with errors")
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "collected %d contacts\n", len(contacts))
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
