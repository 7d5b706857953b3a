package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	// Keywords to analyze, in order. KeywordsFile adds one keyword per line.
	Keywords     []string
	KeywordsFile string

	// Outputs. OutputPDF is optional.
	OutputJSON string
	OutputXLSX string
	OutputPDF  string
	// FromJSON re-exports a saved report instead of running the pipeline.
	FromJSON string

	// Search
	SearchProvider string // serpapi, searxng or file
	SearchURL      string
	SearchKey      string
	SearchLocation string
	SearchLanguage string
	SearchNum      int
	SearchFile     string
	SearchTimeout  time.Duration

	// Fetch
	UserAgent    string
	FetchTimeout time.Duration
	Robots       bool

	// Cache
	CacheDir    string
	CacheMaxAge time.Duration
	CacheClear  bool

	// Analysis
	Language          string
	ReferencePatterns []string

	MetricsTextfile string
	Verbose         bool
}

// Defaults applied by the CLI and by ApplyDefaults.
const (
	DefaultOutputJSON     = "seo_analysis.json"
	DefaultOutputXLSX     = "seo_analysis.xlsx"
	DefaultSearchProvider = "serpapi"
	DefaultSerpAPIURL     = "https://serpapi.com/search.json"
	DefaultUserAgent      = "goseo/1.0 (+https://github.com/hyperifyio/goseo)"
	DefaultSearchTimeout  = 15 * time.Second
	DefaultFetchTimeout   = 20 * time.Second
)

// ApplyDefaults fills zero-valued fields with the defaults above.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.OutputJSON == "" {
		cfg.OutputJSON = DefaultOutputJSON
	}
	if cfg.OutputXLSX == "" {
		cfg.OutputXLSX = DefaultOutputXLSX
	}
	if cfg.SearchProvider == "" {
		cfg.SearchProvider = DefaultSearchProvider
	}
	if cfg.SearchProvider == "serpapi" && cfg.SearchURL == "" {
		cfg.SearchURL = DefaultSerpAPIURL
	}
	if cfg.SearchNum <= 0 {
		cfg.SearchNum = 6
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = DefaultSearchTimeout
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
}
