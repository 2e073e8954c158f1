package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.GoogleAPIKey == "" {
		cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if cfg.GoogleCX == "" {
		cfg.GoogleCX = os.Getenv("GOOGLE_CX")
	}

	if cfg.SearxURL == "" {
		// Support both SEARX_URL and SEARXNG_URL; prefer SEARX_URL if set
		v := os.Getenv("SEARX_URL")
		if v == "" {
			v = os.Getenv("SEARXNG_URL")
		}
		cfg.SearxURL = v
	}
	if cfg.SearxKey == "" {
		v := os.Getenv("SEARX_KEY")
		if v == "" {
			v = os.Getenv("SEARXNG_KEY")
		}
		cfg.SearxKey = v
	}

	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	}

	if cfg.SheetsCredsFile == "" {
		cfg.SheetsCredsFile = os.Getenv("SHEETS_CREDENTIALS_FILE")
	}
	if cfg.SheetsID == "" {
		cfg.SheetsID = os.Getenv("SPREADSHEET_ID")
	}
	if cfg.SheetsTab == "" {
		cfg.SheetsTab = os.Getenv("SHEET_NAME")
	}

	if cfg.LanguageHint == "" {
		cfg.LanguageHint = os.Getenv("LANGUAGE")
	}

	if cfg.MaxResults == 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("MAX_RESULTS"))); err == nil && n > 0 {
			cfg.MaxResults = n
		}
	}
	if cfg.ScanLimit == 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("SCAN_LIMIT"))); err == nil && n > 0 {
			cfg.ScanLimit = n
		}
	}

	if cfg.DelayMin == 0 {
		if d, err := time.ParseDuration(os.Getenv("SCAN_DELAY_MIN")); err == nil && d > 0 {
			cfg.DelayMin = d
		}
	}
	if cfg.DelayMax == 0 {
		if d, err := time.ParseDuration(os.Getenv("SCAN_DELAY_MAX")); err == nil && d > 0 {
			cfg.DelayMax = d
		}
	}

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			if s == "1" || s == "true" || s == "yes" || s == "on" {
				*dst = true
			}
		}
	}
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.FilterInstagram, "FILTER_INSTAGRAM")
	setBool(&cfg.FilterTikTok, "FILTER_TIKTOK")
	setBool(&cfg.FilterYouTube, "FILTER_YOUTUBE")
	setBool(&cfg.FilterEmail, "FILTER_EMAIL")
}
