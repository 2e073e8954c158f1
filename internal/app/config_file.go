package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested sections
// map naturally to flags and env.
type FileConfig struct {
	Keywords   string   `yaml:"keywords" json:"keywords"`
	Categories []string `yaml:"categories" json:"categories"`

	Max struct {
		Results int `yaml:"results" json:"results"`
		Scan    int `yaml:"scan" json:"scan"`
	} `yaml:"max" json:"max"`

	Google struct {
		APIKey string `yaml:"apiKey" json:"apiKey"`
		CX     string `yaml:"cx" json:"cx"`
	} `yaml:"google" json:"google"`

	Searx struct {
		URL string `yaml:"url" json:"url"`
		Key string `yaml:"key" json:"key"`
		UA  string `yaml:"ua" json:"ua"`
	} `yaml:"searx" json:"searx"`

	Search struct {
		File string `yaml:"file" json:"file"`
	} `yaml:"search" json:"search"`

	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Delay struct {
		Min time.Duration `yaml:"min" json:"min"`
		Max time.Duration `yaml:"max" json:"max"`
	} `yaml:"delay" json:"delay"`

	Filter struct {
		Instagram bool `yaml:"instagram" json:"instagram"`
		TikTok    bool `yaml:"tiktok" json:"tiktok"`
		YouTube   bool `yaml:"youtube" json:"youtube"`
		Email     bool `yaml:"email" json:"email"`
	} `yaml:"filter" json:"filter"`

	Export struct {
		CSV    string `yaml:"csv" json:"csv"`
		PDF    string `yaml:"pdf" json:"pdf"`
		Sheets struct {
			CredentialsFile string `yaml:"credentialsFile" json:"credentialsFile"`
			SpreadsheetID   string `yaml:"spreadsheetId" json:"spreadsheetId"`
			Tab             string `yaml:"tab" json:"tab"`
		} `yaml:"sheets" json:"sheets"`
	} `yaml:"export" json:"export"`

	Language string `yaml:"language" json:"language"`
	Verbose  bool   `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset/zero in cfg. Flags should already have been parsed; this
// lets file config supply defaults while preserving explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.Keywords == "" && fc.Keywords != "" {
		cfg.Keywords = fc.Keywords
	}
	if len(cfg.Categories) == 0 && len(fc.Categories) > 0 {
		cfg.Categories = append([]string{}, fc.Categories...)
	}
	if cfg.MaxResults == 0 && fc.Max.Results > 0 {
		cfg.MaxResults = fc.Max.Results
	}
	if cfg.ScanLimit == 0 && fc.Max.Scan > 0 {
		cfg.ScanLimit = fc.Max.Scan
	}
	if cfg.GoogleAPIKey == "" && fc.Google.APIKey != "" {
		cfg.GoogleAPIKey = fc.Google.APIKey
	}
	if cfg.GoogleCX == "" && fc.Google.CX != "" {
		cfg.GoogleCX = fc.Google.CX
	}
	if cfg.SearxURL == "" && fc.Searx.URL != "" {
		cfg.SearxURL = fc.Searx.URL
	}
	if cfg.SearxKey == "" && fc.Searx.Key != "" {
		cfg.SearxKey = fc.Searx.Key
	}
	if cfg.SearxUA == "" && fc.Searx.UA != "" {
		cfg.SearxUA = fc.Searx.UA
	}
	if cfg.FileSearchPath == "" && fc.Search.File != "" {
		cfg.FileSearchPath = fc.Search.File
	}
	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.DelayMin == 0 && fc.Delay.Min > 0 {
		cfg.DelayMin = fc.Delay.Min
	}
	if cfg.DelayMax == 0 && fc.Delay.Max > 0 {
		cfg.DelayMax = fc.Delay.Max
	}
	if !cfg.FilterInstagram && fc.Filter.Instagram {
		cfg.FilterInstagram = true
	}
	if !cfg.FilterTikTok && fc.Filter.TikTok {
		cfg.FilterTikTok = true
	}
	if !cfg.FilterYouTube && fc.Filter.YouTube {
		cfg.FilterYouTube = true
	}
	if !cfg.FilterEmail && fc.Filter.Email {
		cfg.FilterEmail = true
	}
	if cfg.CSVPath == "" && fc.Export.CSV != "" {
		cfg.CSVPath = fc.Export.CSV
	}
	if cfg.PDFPath == "" && fc.Export.PDF != "" {
		cfg.PDFPath = fc.Export.PDF
	}
	if cfg.SheetsCredsFile == "" && fc.Export.Sheets.CredentialsFile != "" {
		cfg.SheetsCredsFile = fc.Export.Sheets.CredentialsFile
	}
	if cfg.SheetsID == "" && fc.Export.Sheets.SpreadsheetID != "" {
		cfg.SheetsID = fc.Export.Sheets.SpreadsheetID
	}
	if cfg.SheetsTab == "" && fc.Export.Sheets.Tab != "" {
		cfg.SheetsTab = fc.Export.Sheets.Tab
	}
	if cfg.LanguageHint == "" && fc.Language != "" {
		cfg.LanguageHint = fc.Language
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Keywords) == "" && len(cfg.Categories) == 0 {
		return errors.New("config: keywords are required")
	}
	if cfg.GoogleAPIKey == "" && cfg.SearxURL == "" && cfg.FileSearchPath == "" {
		return errors.New("config: a search provider is required (google.apiKey+cx, searx.url, or search.file)")
	}
	if cfg.GoogleAPIKey != "" && cfg.GoogleCX == "" {
		return errors.New("config: google.cx is required with google.apiKey")
	}
	if cfg.MaxResults < 0 || cfg.ScanLimit < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if cfg.DelayMax != 0 && cfg.DelayMax < cfg.DelayMin {
		return errors.New("config: delay.max must not be below delay.min")
	}
	return nil
}
