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

// FileConfig represents the single-file configuration schema.
// Nested sections map naturally to flags and env.
type FileConfig struct {
	Keywords     []string `yaml:"keywords" json:"keywords"`
	KeywordsFile string   `yaml:"keywordsFile" json:"keywordsFile"`

	Output struct {
		JSON string `yaml:"json" json:"json"`
		XLSX string `yaml:"xlsx" json:"xlsx"`
		PDF  string `yaml:"pdf" json:"pdf"`
	} `yaml:"output" json:"output"`

	Search struct {
		Provider string        `yaml:"provider" json:"provider"`
		URL      string        `yaml:"url" json:"url"`
		Key      string        `yaml:"key" json:"key"`
		Location string        `yaml:"location" json:"location"`
		HL       string        `yaml:"hl" json:"hl"`
		Num      int           `yaml:"num" json:"num"`
		File     string        `yaml:"file" json:"file"`
		Timeout  time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"search" json:"search"`

	Fetch struct {
		UA      string        `yaml:"ua" json:"ua"`
		Timeout time.Duration `yaml:"timeout" json:"timeout"`
		Robots  bool          `yaml:"robots" json:"robots"`
	} `yaml:"fetch" json:"fetch"`

	Cache struct {
		Dir    string        `yaml:"dir" json:"dir"`
		MaxAge time.Duration `yaml:"maxAge" json:"maxAge"`
		Clear  bool          `yaml:"clear" json:"clear"`
	} `yaml:"cache" json:"cache"`

	Language string `yaml:"language" json:"language"`
	// References lists extra attribution regular expressions.
	References []string `yaml:"references" json:"references"`

	Metrics struct {
		Textfile string `yaml:"textfile" json:"textfile"`
	} `yaml:"metrics" json:"metrics"`

	Verbose bool `yaml:"verbose" json:"verbose"`
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
// are currently unset or still at their flag defaults.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}

	if len(cfg.Keywords) == 0 && len(fc.Keywords) > 0 {
		cfg.Keywords = append([]string{}, fc.Keywords...)
	}
	if cfg.KeywordsFile == "" && fc.KeywordsFile != "" {
		cfg.KeywordsFile = fc.KeywordsFile
	}

	if (cfg.OutputJSON == "" || cfg.OutputJSON == DefaultOutputJSON) && fc.Output.JSON != "" {
		cfg.OutputJSON = fc.Output.JSON
	}
	if (cfg.OutputXLSX == "" || cfg.OutputXLSX == DefaultOutputXLSX) && fc.Output.XLSX != "" {
		cfg.OutputXLSX = fc.Output.XLSX
	}
	if cfg.OutputPDF == "" && fc.Output.PDF != "" {
		cfg.OutputPDF = fc.Output.PDF
	}

	if (cfg.SearchProvider == "" || cfg.SearchProvider == DefaultSearchProvider) && fc.Search.Provider != "" {
		cfg.SearchProvider = fc.Search.Provider
	}
	if cfg.SearchURL == "" && fc.Search.URL != "" {
		cfg.SearchURL = fc.Search.URL
	}
	if cfg.SearchKey == "" && fc.Search.Key != "" {
		cfg.SearchKey = fc.Search.Key
	}
	if cfg.SearchLocation == "" && fc.Search.Location != "" {
		cfg.SearchLocation = fc.Search.Location
	}
	if cfg.SearchLanguage == "" && fc.Search.HL != "" {
		cfg.SearchLanguage = fc.Search.HL
	}
	if (cfg.SearchNum == 0 || cfg.SearchNum == 6) && fc.Search.Num > 0 {
		cfg.SearchNum = fc.Search.Num
	}
	if cfg.SearchFile == "" && fc.Search.File != "" {
		cfg.SearchFile = fc.Search.File
	}
	if (cfg.SearchTimeout == 0 || cfg.SearchTimeout == DefaultSearchTimeout) && fc.Search.Timeout > 0 {
		cfg.SearchTimeout = fc.Search.Timeout
	}

	if (cfg.UserAgent == "" || cfg.UserAgent == DefaultUserAgent) && fc.Fetch.UA != "" {
		cfg.UserAgent = fc.Fetch.UA
	}
	if (cfg.FetchTimeout == 0 || cfg.FetchTimeout == DefaultFetchTimeout) && fc.Fetch.Timeout > 0 {
		cfg.FetchTimeout = fc.Fetch.Timeout
	}
	if !cfg.Robots && fc.Fetch.Robots {
		cfg.Robots = true
	}

	if cfg.CacheDir == "" && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = fc.Cache.MaxAge
	}
	if !cfg.CacheClear && fc.Cache.Clear {
		cfg.CacheClear = true
	}

	if cfg.Language == "" && fc.Language != "" {
		cfg.Language = fc.Language
	}
	if len(cfg.ReferencePatterns) == 0 && len(fc.References) > 0 {
		cfg.ReferencePatterns = append([]string{}, fc.References...)
	}
	if cfg.MetricsTextfile == "" && fc.Metrics.Textfile != "" {
		cfg.MetricsTextfile = fc.Metrics.Textfile
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal validation of required settings. Keywords
// are checked separately by Run so an empty list maps to ErrNoKeywords.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.OutputJSON) == "" {
		return errors.New("config: output.json path is required")
	}
	if strings.TrimSpace(cfg.OutputXLSX) == "" {
		return errors.New("config: output.xlsx path is required")
	}
	if cfg.FromJSON != "" {
		return nil
	}
	switch cfg.SearchProvider {
	case "serpapi":
		if strings.TrimSpace(cfg.SearchURL) == "" {
			return errors.New("config: search.url is required for serpapi (or set API_URL)")
		}
		if strings.TrimSpace(cfg.SearchKey) == "" {
			return errors.New("config: search.key is required for serpapi (or set API_KEY)")
		}
	case "searxng":
		if strings.TrimSpace(cfg.SearchURL) == "" {
			return errors.New("config: search.url is required for searxng (or set SEARX_URL)")
		}
	case "file":
		if strings.TrimSpace(cfg.SearchFile) == "" {
			return errors.New("config: search.file is required for the file provider")
		}
	default:
		return fmt.Errorf("config: unknown search provider %q", cfg.SearchProvider)
	}
	if cfg.SearchNum < 0 || cfg.FetchTimeout < 0 || cfg.CacheMaxAge < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	return nil
}
