package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goseo.yaml")
	content := `keywords:
  - cara membuat website
  - tips seo
output:
  xlsx: out/seo.xlsx
  pdf: out/seo.pdf
search:
  provider: searxng
  url: http://searx.local
  num: 10
fetch:
  timeout: 5s
  robots: true
cache:
  dir: .cache
  maxAge: 24h
references:
  - 'menurut laporan'
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cfg := Config{OutputJSON: DefaultOutputJSON, OutputXLSX: DefaultOutputXLSX, SearchProvider: DefaultSearchProvider, SearchNum: 6}
	ApplyFileConfig(&cfg, fc)
	if len(cfg.Keywords) != 2 {
		t.Fatalf("Keywords=%q", cfg.Keywords)
	}
	if cfg.OutputXLSX != "out/seo.xlsx" || cfg.OutputPDF != "out/seo.pdf" || cfg.OutputJSON != DefaultOutputJSON {
		t.Fatalf("outputs: %q %q %q", cfg.OutputJSON, cfg.OutputXLSX, cfg.OutputPDF)
	}
	if cfg.SearchProvider != "searxng" || cfg.SearchURL != "http://searx.local" || cfg.SearchNum != 10 {
		t.Fatalf("search: %q %q %d", cfg.SearchProvider, cfg.SearchURL, cfg.SearchNum)
	}
	if cfg.FetchTimeout != 5*time.Second || !cfg.Robots {
		t.Fatalf("fetch: %v %v", cfg.FetchTimeout, cfg.Robots)
	}
	if cfg.CacheDir != ".cache" || cfg.CacheMaxAge != 24*time.Hour {
		t.Fatalf("cache: %q %v", cfg.CacheDir, cfg.CacheMaxAge)
	}
	if len(cfg.ReferencePatterns) != 1 {
		t.Fatalf("references: %q", cfg.ReferencePatterns)
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	var fc FileConfig
	fc.Search.Provider = "file"
	fc.Output.JSON = "file.json"
	fc.Keywords = []string{"dari file"}

	cfg := Config{Keywords: []string{"dari flag"}, OutputJSON: "flag.json", SearchProvider: "searxng"}
	ApplyFileConfig(&cfg, fc)
	if cfg.Keywords[0] != "dari flag" || cfg.OutputJSON != "flag.json" || cfg.SearchProvider != "searxng" {
		t.Fatalf("explicit values were overwritten: %+v", cfg)
	}
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goseo.json")
	if err := os.WriteFile(path, []byte(`{"language":"en","search":{"hl":"en","location":"United States"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fc.Language != "en" || fc.Search.HL != "en" || fc.Search.Location != "United States" {
		t.Fatalf("unexpected file config: %+v", fc)
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"serpapi ok", Config{OutputJSON: "a", OutputXLSX: "b", SearchProvider: "serpapi", SearchURL: "u", SearchKey: "k"}, ""},
		{"serpapi missing key", Config{OutputJSON: "a", OutputXLSX: "b", SearchProvider: "serpapi", SearchURL: "u"}, "search.key"},
		{"searxng missing url", Config{OutputJSON: "a", OutputXLSX: "b", SearchProvider: "searxng"}, "search.url"},
		{"file missing path", Config{OutputJSON: "a", OutputXLSX: "b", SearchProvider: "file"}, "search.file"},
		{"unknown provider", Config{OutputJSON: "a", OutputXLSX: "b", SearchProvider: "bing"}, "unknown"},
		{"missing xlsx", Config{OutputJSON: "a", SearchProvider: "file", SearchFile: "f"}, "output.xlsx"},
		{"re-export skips search", Config{OutputJSON: "a", OutputXLSX: "b", FromJSON: "r.json"}, ""},
	}
	for _, tc := range cases {
		err := ValidateConfig(tc.cfg)
		if tc.wantErr == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Fatalf("%s: got %v, want error containing %q", tc.name, err, tc.wantErr)
		}
	}
}

func TestLoadKeywords_FlagsThenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.txt")
	if err := os.WriteFile(path, []byte("# daftar\ntips seo\n\n  jasa website  \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadKeywords(Config{Keywords: []string{"cara membuat website", " "}, KeywordsFile: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"cara membuat website", "tips seo", "jasa website"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q want %q", got, want)
	}
}
