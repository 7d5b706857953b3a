package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goseo/internal/aggregate"
	"github.com/hyperifyio/goseo/internal/analysis"
	"github.com/hyperifyio/goseo/internal/cache"
	"github.com/hyperifyio/goseo/internal/export"
	"github.com/hyperifyio/goseo/internal/extract"
	"github.com/hyperifyio/goseo/internal/fetch"
	"github.com/hyperifyio/goseo/internal/metrics"
	"github.com/hyperifyio/goseo/internal/robots"
	"github.com/hyperifyio/goseo/internal/search"
	"github.com/hyperifyio/goseo/internal/seo"
)

// ErrNoKeywords is returned when there is nothing to analyze. The CLI maps it
// to exit code 2.
var ErrNoKeywords = errors.New("no keywords to analyze")

// Analyzer is the per-article step of the pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, url, keyword string) seo.Analysis
}

type App struct {
	cfg       Config
	provider  search.Provider
	analyzer  Analyzer
	metrics   *metrics.Metrics
	httpCache *cache.HTTPCache
	now       func() time.Time
}

func New(ctx context.Context, cfg Config) (*App, error) {
	ApplyDefaults(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, metrics: metrics.New(), now: time.Now}
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			_ = cache.ClearDir(cfg.CacheDir)
		}
		if cfg.CacheMaxAge > 0 {
			if n, err := cache.PurgeHTTPCacheByAge(cfg.CacheDir, cfg.CacheMaxAge); err != nil {
				log.Warn().Err(err).Msg("cache purge failed")
			} else if n > 0 {
				log.Info().Int("removed", n).Msg("purged stale cache entries")
			}
		}
		a.httpCache = &cache.HTTPCache{Dir: cfg.CacheDir}
	}
	if cfg.FromJSON != "" {
		return a, nil
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}
	a.provider = provider

	patterns := analysis.DefaultReferencePatterns
	if len(cfg.ReferencePatterns) > 0 {
		extra, err := analysis.CompilePatterns(cfg.ReferencePatterns)
		if err != nil {
			return nil, fmt.Errorf("config: reference pattern: %w", err)
		}
		patterns = append(append([]*regexp.Regexp{}, patterns...), extra...)
	}

	client := newHTTPClient(0)
	fetcher := &fetch.Client{
		HTTPClient:        client,
		UserAgent:         cfg.UserAgent,
		PerRequestTimeout: cfg.FetchTimeout,
		Cache:             a.httpCache,
		OnFetched:         a.metrics.ObserveFetch,
	}
	if cfg.Robots {
		fetcher.Robots = &robots.Manager{HTTPClient: client, UserAgent: cfg.UserAgent}
	}
	a.analyzer = &seo.Analyzer{
		Fetcher:           fetcher,
		Extractor:         extract.ArticleExtractor{},
		Normalizer:        analysis.NewNormalizer(cfg.Language),
		ReferencePatterns: patterns,
	}
	log.Debug().Str("provider", provider.Name()).Bool("cache", a.httpCache != nil).Bool("robots", cfg.Robots).Msg("app initialized")
	return a, nil
}

func newProvider(cfg Config) (search.Provider, error) {
	switch cfg.SearchProvider {
	case "serpapi":
		return &search.SerpAPI{
			BaseURL:    cfg.SearchURL,
			APIKey:     cfg.SearchKey,
			Location:   cfg.SearchLocation,
			Language:   cfg.SearchLanguage,
			HTTPClient: newHTTPClient(cfg.SearchTimeout),
			UserAgent:  cfg.UserAgent,
		}, nil
	case "searxng":
		return &search.SearxNG{
			BaseURL:    cfg.SearchURL,
			APIKey:     cfg.SearchKey,
			Language:   cfg.SearchLanguage,
			HTTPClient: newHTTPClient(cfg.SearchTimeout),
			UserAgent:  cfg.UserAgent,
		}, nil
	case "file":
		return &search.FileProvider{Path: cfg.SearchFile}, nil
	}
	return nil, fmt.Errorf("config: unknown search provider %q", cfg.SearchProvider)
}

func (a *App) Close() {
	// nothing yet
}

// Run executes the pipeline, or only the export step when FromJSON is set.
func (a *App) Run(ctx context.Context) error {
	var rep *aggregate.Report
	if a.cfg.FromJSON != "" {
		loaded, err := aggregate.ReadFile(a.cfg.FromJSON)
		if err != nil {
			return fmt.Errorf("read report: %w", err)
		}
		log.Info().Str("in", a.cfg.FromJSON).Int("keywords", len(loaded.Results)).Msg("loaded saved report")
		rep = loaded
	} else {
		keywords, err := LoadKeywords(a.cfg)
		if err != nil {
			return err
		}
		if len(keywords) == 0 {
			return ErrNoKeywords
		}
		rep, err = a.Analyze(ctx, keywords)
		if err != nil {
			return err
		}
		if err := rep.WriteFile(a.cfg.OutputJSON); err != nil {
			return err
		}
		log.Info().Str("out", a.cfg.OutputJSON).Msg("wrote json report")
	}

	if err := a.export(rep); err != nil {
		return err
	}
	log.Info().Str("summary", rep.Summary().String()).Msg("done")

	if a.cfg.MetricsTextfile != "" {
		if err := a.metrics.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
			log.Warn().Err(err).Str("path", a.cfg.MetricsTextfile).Msg("metrics textfile write failed")
		}
	}
	return nil
}

// Analyze runs search and per-article analysis for every keyword in order.
// A failing search or article never stops the run; only cancellation does.
func (a *App) Analyze(ctx context.Context, keywords []string) (*aggregate.Report, error) {
	rep := aggregate.New(a.now(), len(keywords))
	for i, kw := range keywords {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run canceled: %w", err)
		}
		log.Info().Str("keyword", kw).Int("index", i+1).Int("total", len(keywords)).Msg("searching")

		results, err := a.provider.Search(ctx, kw, a.cfg.SearchNum)
		if err != nil {
			log.Warn().Err(err).Str("keyword", kw).Msg("search failed")
			rep.AddError(kw, err)
			a.metrics.ObserveSearch(aggregate.StatusError)
			continue
		}
		results = search.NormalizeResults(results)
		if len(results) == 0 {
			log.Warn().Str("keyword", kw).Msg("no search results")
			rep.Add(kw, nil)
			a.metrics.ObserveSearch(aggregate.StatusNotFound)
			continue
		}
		a.metrics.ObserveSearch(aggregate.StatusSuccess)

		articles := make([]aggregate.RankedArticle, 0, len(results))
		for j, r := range results {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("run canceled: %w", err)
			}
			rank := j + 1
			res := a.analyzer.Analyze(ctx, r.URL, kw)
			a.metrics.ObserveArticle(res.Failed())
			if res.Failed() {
				log.Warn().Str("keyword", kw).Int("rank", rank).Str("url", r.URL).Str("error", res.Error).Msg("article failed")
			} else {
				log.Info().Str("keyword", kw).Int("rank", rank).Str("url", r.URL).
					Int("words", res.TextWordCount).Float64("density", res.KeywordDensity).
					Int("h2", res.H2Count).Int("images", res.ImageCount).Msg("article analyzed")
			}
			articles = append(articles, aggregate.RankedArticle{Rank: rank, SearchTitle: r.Title, Analysis: res})
		}
		rep.Add(kw, articles)
	}
	return rep, nil
}

func (a *App) export(rep *aggregate.Report) error {
	rows := export.Rows(rep)
	if err := export.WriteXLSX(a.cfg.OutputXLSX, rows); err != nil {
		return err
	}
	log.Info().Str("out", a.cfg.OutputXLSX).Int("rows", len(rows)).Msg("wrote spreadsheet")
	if a.cfg.OutputPDF != "" {
		if err := export.WritePDF(a.cfg.OutputPDF, rep, rows); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("out", a.cfg.OutputPDF).Msg("wrote pdf summary")
	}
	return nil
}

// LoadKeywords returns cfg.Keywords followed by the lines of cfg.KeywordsFile.
// Blank lines and lines starting with '#' are skipped.
func LoadKeywords(cfg Config) ([]string, error) {
	out := make([]string, 0, len(cfg.Keywords))
	for _, k := range cfg.Keywords {
		if s := strings.TrimSpace(k); s != "" {
			out = append(out, s)
		}
	}
	if cfg.KeywordsFile == "" {
		return out, nil
	}
	f, err := os.Open(cfg.KeywordsFile)
	if err != nil {
		return nil, fmt.Errorf("open keywords file: %w", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read keywords file: %w", err)
	}
	return out, nil
}
