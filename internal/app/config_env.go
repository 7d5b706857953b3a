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

	if len(cfg.Keywords) == 0 {
		cfg.Keywords = splitList(os.Getenv("KEYWORDS"))
	}
	if cfg.KeywordsFile == "" {
		cfg.KeywordsFile = os.Getenv("KEYWORDS_FILE")
	}
	if cfg.SearchProvider == "" {
		cfg.SearchProvider = os.Getenv("SEARCH_PROVIDER")
	}
	if cfg.SearchURL == "" {
		cfg.SearchURL = SearchURLFromEnv(cfg.SearchProvider)
	}
	if cfg.SearchKey == "" {
		cfg.SearchKey = SearchKeyFromEnv(cfg.SearchProvider)
	}
	if cfg.SearchFile == "" {
		cfg.SearchFile = os.Getenv("SEARCH_FILE")
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = os.Getenv("CACHE_DIR")
	}
	if cfg.Language == "" {
		cfg.Language = os.Getenv("LANGUAGE")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("USER_AGENT")
	}
	if cfg.MetricsTextfile == "" {
		cfg.MetricsTextfile = os.Getenv("METRICS_TEXTFILE")
	}
	if cfg.SearchNum == 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("SEARCH_NUM"))); err == nil && n > 0 {
			cfg.SearchNum = n
		}
	}
	if cfg.CacheMaxAge == 0 {
		if d, ok := envDuration("CACHE_MAX_AGE"); ok {
			cfg.CacheMaxAge = d
		}
	}
	if cfg.FetchTimeout == 0 {
		if d, ok := envDuration("FETCH_TIMEOUT"); ok {
			cfg.FetchTimeout = d
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
	setBool(&cfg.Robots, "ROBOTS")
	setBool(&cfg.CacheClear, "CACHE_CLEAR")
	setBool(&cfg.Verbose, "VERBOSE")
}

// ApplyEnvOverrides forcefully overrides cfg fields with environment variables
// when they are set. The CLI calls it after ApplyFileConfig so env beats the
// config file, then re-applies explicit flags on top.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := splitList(os.Getenv("KEYWORDS")); len(v) > 0 {
		cfg.Keywords = v
	}
	if v := os.Getenv("KEYWORDS_FILE"); v != "" {
		cfg.KeywordsFile = v
	}
	if v := os.Getenv("SEARCH_PROVIDER"); v != "" {
		cfg.SearchProvider = v
	}
	if v := SearchURLFromEnv(cfg.SearchProvider); v != "" {
		cfg.SearchURL = v
	}
	if v := SearchKeyFromEnv(cfg.SearchProvider); v != "" {
		cfg.SearchKey = v
	}
	if v := os.Getenv("SEARCH_FILE"); v != "" {
		cfg.SearchFile = v
	}
	if v := os.Getenv("CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("METRICS_TEXTFILE"); v != "" {
		cfg.MetricsTextfile = v
	}
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("SEARCH_NUM"))); err == nil && n > 0 {
		cfg.SearchNum = n
	}
	if d, ok := envDuration("CACHE_MAX_AGE"); ok {
		cfg.CacheMaxAge = d
	}
	if d, ok := envDuration("FETCH_TIMEOUT"); ok {
		cfg.FetchTimeout = d
	}

	setBool := func(dst *bool, envKey string) {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			switch s {
			case "1", "true", "yes", "on":
				*dst = true
			case "0", "false", "no", "off":
				*dst = false
			}
		}
	}
	setBool(&cfg.Robots, "ROBOTS")
	setBool(&cfg.CacheClear, "CACHE_CLEAR")
	setBool(&cfg.Verbose, "VERBOSE")
}

// SearchURLFromEnv picks API_URL for SerpAPI and SEARX_URL (or SEARXNG_URL)
// for SearxNG. An unset provider means SerpAPI.
func SearchURLFromEnv(provider string) string {
	switch provider {
	case "searxng":
		return firstEnv("SEARX_URL", "SEARXNG_URL")
	case "file":
		return ""
	}
	return os.Getenv("API_URL")
}

// SearchKeyFromEnv reads API_KEY for SerpAPI and SEARX_KEY (or SEARXNG_KEY)
// for SearxNG.
func SearchKeyFromEnv(provider string) string {
	switch provider {
	case "searxng":
		return firstEnv("SEARX_KEY", "SEARXNG_KEY")
	case "file":
		return ""
	}
	return os.Getenv("API_KEY")
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func envDuration(key string) (time.Duration, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, false
	}
	return d, true
}

// splitList splits a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
