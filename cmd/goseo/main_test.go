package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	apppkg "github.com/hyperifyio/goseo/internal/app"
)

// An empty keyword list surfaces ErrNoKeywords so main can exit with code 2.
func TestRun_NoKeywords_Error(t *testing.T) {
	dir := t.TempDir()
	fixture := filepath.Join(dir, "results.json")
	if err := os.WriteFile(fixture, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cfg := apppkg.Config{
		OutputJSON:     filepath.Join(dir, "seo.json"),
		OutputXLSX:     filepath.Join(dir, "seo.xlsx"),
		SearchProvider: "file",
		SearchFile:     fixture,
	}
	if err := run(cfg); !errors.Is(err, apppkg.ErrNoKeywords) {
		t.Fatalf("expected ErrNoKeywords, got %v", err)
	}
}

// Smoke test: a keyword with no fixture results still writes both outputs.
func TestRun_WritesOutputs(t *testing.T) {
	dir := t.TempDir()
	fixture := filepath.Join(dir, "results.json")
	if err := os.WriteFile(fixture, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cfg := apppkg.Config{
		Keywords:       []string{"tips seo"},
		OutputJSON:     filepath.Join(dir, "seo.json"),
		OutputXLSX:     filepath.Join(dir, "seo.xlsx"),
		SearchProvider: "file",
		SearchFile:     fixture,
		CacheDir:       filepath.Join(dir, "cache"),
	}
	if err := run(cfg); err != nil {
		t.Fatalf("run error: %v", err)
	}
	for _, p := range []string{cfg.OutputJSON, cfg.OutputXLSX} {
		if fi, err := os.Stat(p); err != nil || fi.Size() == 0 {
			t.Fatalf("expected %s, err=%v", p, err)
		}
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %q", got)
	}
}

// clearConfigEnv blanks every variable ApplyEnvOverrides reads so the host
// environment cannot leak into precedence tests.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"KEYWORDS", "KEYWORDS_FILE", "SEARCH_PROVIDER",
		"API_URL", "SEARX_URL", "SEARXNG_URL",
		"API_KEY", "SEARX_KEY", "SEARXNG_KEY",
		"SEARCH_FILE", "CACHE_DIR", "LANGUAGE", "USER_AGENT", "METRICS_TEXTFILE",
		"SEARCH_NUM", "CACHE_MAX_AGE", "FETCH_TIMEOUT", "ROBOTS", "CACHE_CLEAR", "VERBOSE",
	} {
		t.Setenv(k, "")
	}
}

func parseConfig(t *testing.T, args ...string) apppkg.Config {
	t.Helper()
	fs, f := newFlagSet("goseo")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := buildConfig(fs, f)
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	return cfg
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "goseo.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestBuildConfig_ProviderFlagPicksMatchingEnvURL(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("API_URL", "https://serp.example/search.json")
	t.Setenv("API_KEY", "serp-key")
	t.Setenv("SEARX_URL", "https://searx.example/search")
	t.Setenv("SEARX_KEY", "searx-key")

	cfg := parseConfig(t, "-search.provider", "searxng")
	if cfg.SearchProvider != "searxng" {
		t.Fatalf("provider: %q", cfg.SearchProvider)
	}
	if cfg.SearchURL != "https://searx.example/search" {
		t.Fatalf("url: %q", cfg.SearchURL)
	}
	if cfg.SearchKey != "searx-key" {
		t.Fatalf("key: %q", cfg.SearchKey)
	}

	cfg = parseConfig(t)
	if cfg.SearchURL != "https://serp.example/search.json" || cfg.SearchKey != "serp-key" {
		t.Fatalf("default provider: url=%q key=%q", cfg.SearchURL, cfg.SearchKey)
	}
}

func TestBuildConfig_ExplicitSearchURLWins(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SEARX_URL", "https://searx.example/search")
	t.Setenv("SEARX_KEY", "searx-key")

	cfg := parseConfig(t, "-search.provider", "searxng",
		"-search.url", "http://localhost:8888/search", "-search.key", "flag-key")
	if cfg.SearchURL != "http://localhost:8888/search" || cfg.SearchKey != "flag-key" {
		t.Fatalf("url=%q key=%q", cfg.SearchURL, cfg.SearchKey)
	}
}

func TestBuildConfig_FileURLAndEnvPrecedence(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, "search:\n  provider: searxng\n  url: https://file.example/search\n  key: file-key\n")

	cfg := parseConfig(t, "-config", path)
	if cfg.SearchProvider != "searxng" || cfg.SearchURL != "https://file.example/search" || cfg.SearchKey != "file-key" {
		t.Fatalf("file only: %+v", cfg)
	}

	t.Setenv("SEARX_URL", "https://env.example/search")
	cfg = parseConfig(t, "-config", path)
	if cfg.SearchURL != "https://env.example/search" {
		t.Fatalf("env should beat file, got %q", cfg.SearchURL)
	}
	if cfg.SearchKey != "file-key" {
		t.Fatalf("key: %q", cfg.SearchKey)
	}
}

func TestBuildConfig_ProviderFlagDropsOtherProviderFileURL(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, "search:\n  provider: searxng\n  url: https://file.example/search\n  key: file-key\n")

	cfg := parseConfig(t, "-config", path, "-search.provider", "serpapi")
	if cfg.SearchProvider != "serpapi" {
		t.Fatalf("provider: %q", cfg.SearchProvider)
	}
	if cfg.SearchURL != "" || cfg.SearchKey != "" {
		t.Fatalf("searxng endpoint leaked into serpapi: url=%q key=%q", cfg.SearchURL, cfg.SearchKey)
	}
}

func TestBuildConfig_FlagsOverrideEnvAndFile(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, "keywords: [from file]\nsearch:\n  num: 3\nfetch:\n  timeout: 5s\n")
	t.Setenv("KEYWORDS", "from env")
	t.Setenv("SEARCH_NUM", "4")

	cfg := parseConfig(t, "-config", path)
	if len(cfg.Keywords) != 1 || cfg.Keywords[0] != "from env" || cfg.SearchNum != 4 {
		t.Fatalf("env over file: keywords=%q num=%d", cfg.Keywords, cfg.SearchNum)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Fatalf("file timeout: %v", cfg.FetchTimeout)
	}

	cfg = parseConfig(t, "-config", path, "-keywords", "a, b", "-search.num", "9", "-fetch.timeout", "2s", "c")
	want := []string{"a", "b", "c"}
	if len(cfg.Keywords) != len(want) {
		t.Fatalf("keywords: %q", cfg.Keywords)
	}
	for i := range want {
		if cfg.Keywords[i] != want[i] {
			t.Fatalf("keywords: %q", cfg.Keywords)
		}
	}
	if cfg.SearchNum != 9 || cfg.FetchTimeout != 2*time.Second {
		t.Fatalf("flags: num=%d timeout=%v", cfg.SearchNum, cfg.FetchTimeout)
	}
}

// Flag defaults stay out of cfg; app.New applies defaults after every layer.
func TestBuildConfig_DefaultsNotApplied(t *testing.T) {
	clearConfigEnv(t)
	cfg := parseConfig(t)
	if cfg.SearchProvider != "" || cfg.SearchNum != 0 || cfg.OutputJSON != "" {
		t.Fatalf("unexpected values: %+v", cfg)
	}
}
