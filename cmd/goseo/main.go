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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goseo/internal/app"
)

// cliFlags holds parsed flag values. cfg only carries values; which of them
// the user actually passed is read back from the FlagSet.
type cliFlags struct {
	keywords    string
	configPath  string
	envFiles    string
	showVersion bool
	cfg         app.Config
}

func newFlagSet(name string) (*flag.FlagSet, *cliFlags) {
	f := &cliFlags{}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&f.keywords, "keywords", "", "Comma-separated keywords to analyze")
	fs.StringVar(&f.cfg.KeywordsFile, "keywords.file", "", "File with one keyword per line")
	fs.StringVar(&f.configPath, "config", "", "Path to YAML or JSON config file")
	fs.StringVar(&f.envFiles, "env", ".env", "Comma-separated dotenv files; later files override earlier ones")
	fs.StringVar(&f.cfg.OutputJSON, "output.json", app.DefaultOutputJSON, "Path to write the JSON report")
	fs.StringVar(&f.cfg.OutputXLSX, "output.xlsx", app.DefaultOutputXLSX, "Path to write the spreadsheet")
	fs.StringVar(&f.cfg.OutputPDF, "output.pdf", "", "Optional path to write a PDF summary")
	fs.StringVar(&f.cfg.FromJSON, "from-json", "", "Re-export a saved JSON report without searching")
	fs.StringVar(&f.cfg.SearchProvider, "search.provider", app.DefaultSearchProvider, "Search backend: serpapi, searxng or file")
	fs.StringVar(&f.cfg.SearchURL, "search.url", "", "Search endpoint URL (API_URL or SEARX_URL)")
	fs.StringVar(&f.cfg.SearchKey, "search.key", "", "Search API key (API_KEY or SEARX_KEY)")
	fs.StringVar(&f.cfg.SearchLocation, "search.location", "", "SerpAPI location (default Indonesia)")
	fs.StringVar(&f.cfg.SearchLanguage, "search.hl", "", "Search interface language (default id)")
	fs.IntVar(&f.cfg.SearchNum, "search.num", 6, "Results per keyword")
	fs.StringVar(&f.cfg.SearchFile, "search.file", "", "JSON fixture for the file provider")
	fs.DurationVar(&f.cfg.FetchTimeout, "fetch.timeout", app.DefaultFetchTimeout, "Per-article fetch timeout")
	fs.StringVar(&f.cfg.UserAgent, "ua", app.DefaultUserAgent, "User-Agent for outgoing requests")
	fs.BoolVar(&f.cfg.Robots, "robots", false, "Honor robots.txt when fetching articles")
	fs.StringVar(&f.cfg.CacheDir, "cache.dir", "", "HTTP cache directory; empty disables caching")
	fs.DurationVar(&f.cfg.CacheMaxAge, "cache.maxAge", 0, "Purge cache entries older than this before the run; 0 disables")
	fs.BoolVar(&f.cfg.CacheClear, "cache.clear", false, "Clear cache directory before run")
	fs.StringVar(&f.cfg.Language, "lang", "", "Language for lower-casing, e.g. 'id' or 'en'")
	fs.StringVar(&f.cfg.MetricsTextfile, "metrics.textfile", "", "Write run metrics to this node-exporter textfile")
	fs.BoolVar(&f.cfg.Verbose, "v", false, "Verbose logging")
	fs.BoolVar(&f.showVersion, "version", false, "Print version and exit")
	return fs, f
}

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	fs, f := newFlagSet(os.Args[0])
	_ = fs.Parse(os.Args[1:])

	if f.showVersion {
		fmt.Printf("goseo %s (%s, %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		return
	}
	if err := app.LoadEnvFiles(splitCSV(f.envFiles)...); err != nil {
		log.Fatal().Err(err).Msg("load env files")
	}
	cfg, err := buildConfig(fs, f)
	if err != nil {
		log.Fatal().Err(err).Str("path", f.configPath).Msg("load config")
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		if errors.Is(err, app.ErrNoKeywords) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// buildConfig layers flags over env over the config file. Defaults are
// applied later by app.New.
func buildConfig(fs *flag.FlagSet, f *cliFlags) (app.Config, error) {
	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	var cfg app.Config
	var fc app.FileConfig
	if f.configPath != "" {
		loaded, err := app.LoadConfigFile(f.configPath)
		if err != nil {
			return cfg, err
		}
		fc = loaded
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)

	fromFlags := f.cfg
	fromFlags.Keywords = append(splitCSV(f.keywords), fs.Args()...)
	applyExplicitFlags(&cfg, fromFlags, set, fs.NArg() > 0)
	resolveSearchEndpoint(&cfg, fc, set)
	return cfg, nil
}

// applyExplicitFlags copies the flags the user actually passed onto cfg.
// Positional arguments count as keywords.
func applyExplicitFlags(cfg *app.Config, f app.Config, set map[string]bool, positional bool) {
	if set["keywords"] || positional {
		cfg.Keywords = f.Keywords
	}
	str := func(name string, dst *string, v string) {
		if set[name] {
			*dst = v
		}
	}
	str("keywords.file", &cfg.KeywordsFile, f.KeywordsFile)
	str("output.json", &cfg.OutputJSON, f.OutputJSON)
	str("output.xlsx", &cfg.OutputXLSX, f.OutputXLSX)
	str("output.pdf", &cfg.OutputPDF, f.OutputPDF)
	str("from-json", &cfg.FromJSON, f.FromJSON)
	str("search.provider", &cfg.SearchProvider, f.SearchProvider)
	str("search.url", &cfg.SearchURL, f.SearchURL)
	str("search.key", &cfg.SearchKey, f.SearchKey)
	str("search.location", &cfg.SearchLocation, f.SearchLocation)
	str("search.hl", &cfg.SearchLanguage, f.SearchLanguage)
	str("search.file", &cfg.SearchFile, f.SearchFile)
	str("ua", &cfg.UserAgent, f.UserAgent)
	str("cache.dir", &cfg.CacheDir, f.CacheDir)
	str("lang", &cfg.Language, f.Language)
	str("metrics.textfile", &cfg.MetricsTextfile, f.MetricsTextfile)
	if set["search.num"] {
		cfg.SearchNum = f.SearchNum
	}
	if set["fetch.timeout"] {
		cfg.FetchTimeout = f.FetchTimeout
	}
	if set["cache.maxAge"] {
		cfg.CacheMaxAge = f.CacheMaxAge
	}
	if set["robots"] {
		cfg.Robots = f.Robots
	}
	if set["cache.clear"] {
		cfg.CacheClear = f.CacheClear
	}
	if set["v"] {
		cfg.Verbose = f.Verbose
	}
}

// resolveSearchEndpoint re-reads the search URL and key for the final
// provider, which a flag may have changed after env and file were applied.
// Explicit -search.url and -search.key are kept. A config file value only
// applies when the file names the same provider or none.
func resolveSearchEndpoint(cfg *app.Config, fc app.FileConfig, set map[string]bool) {
	provider := cfg.SearchProvider
	if provider == "" {
		provider = app.DefaultSearchProvider
	}
	fileMatches := fc.Search.Provider == "" || fc.Search.Provider == provider
	if !set["search.url"] {
		cfg.SearchURL = ""
		if fileMatches {
			cfg.SearchURL = fc.Search.URL
		}
		if v := app.SearchURLFromEnv(provider); v != "" {
			cfg.SearchURL = v
		}
	}
	if !set["search.key"] {
		cfg.SearchKey = ""
		if fileMatches {
			cfg.SearchKey = fc.Search.Key
		}
		if v := app.SearchKeyFromEnv(provider); v != "" {
			cfg.SearchKey = v
		}
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func run(cfg app.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()
	return a.Run(ctx)
}
