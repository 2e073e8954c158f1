package app

import "time"

// Config holds runtime configuration for one discovery run.
type Config struct {
	// Search intent
	Keywords   string
	Categories []string
	// MaxResults caps how many candidates the provider returns.
	MaxResults int
	// ScanLimit caps how many candidates are fetched and extracted; the rest
	// pass through with empty signal fields.
	ScanLimit int

	// Search providers, first configured wins: Google CSE, SearxNG, file.
	GoogleAPIKey   string
	GoogleCX       string
	SearxURL       string
	SearxKey       string
	SearxUA        string
	FileSearchPath string

	// Optional LLM query expansion
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Pacing between scanned candidates
	DelayMin time.Duration
	DelayMax time.Duration

	// Result filters applied before export
	FilterInstagram bool
	FilterTikTok    bool
	FilterYouTube   bool
	FilterEmail     bool

	// Export sinks; empty values disable a sink.
	CSVPath         string
	PDFPath         string
	SheetsCredsFile string
	SheetsID        string
	SheetsTab       string

	LanguageHint string
	Verbose      bool
}
