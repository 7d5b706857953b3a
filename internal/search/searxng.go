package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// SearxNG is the self-hosted alternative to SerpAPI. It queries the
// instance's /search endpoint in JSON format, general category only.
// Positions are the order SearxNG merged its engines' results in.
type SearxNG struct {
	BaseURL    string
	APIKey     string
	Language   string // SearxNG language code; empty means the "hl" default
	HTTPClient *http.Client
	UserAgent  string
}

func (s *SearxNG) Name() string { return "searxng" }

func (s *SearxNG) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if s.BaseURL == "" {
		return nil, fmt.Errorf("missing searxng url")
	}
	if limit <= 0 {
		limit = DefaultSerpNum
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse searxng url: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/search") {
		u.Path = strings.TrimRight(u.Path, "/") + "/search"
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("categories", "general")
	q.Set("language", pick(s.Language, DefaultSerpLanguage))
	q.Set("pageno", "1")
	if s.APIKey != "" {
		q.Set("apikey", s.APIKey)
	}
	u.RawQuery = q.Encode()

	var sr searxResponse
	if err := getJSON(ctx, s.HTTPClient, s.Name(), u.String(), s.UserAgent, &sr); err != nil {
		return nil, err
	}
	// SearxNG has no result count parameter; the bound is applied here.
	hits := make([]hit, 0, len(sr.Results))
	for _, r := range sr.Results {
		hits = append(hits, hit{Title: r.Title, URL: r.URL, Snippet: r.Content})
	}
	out := collect(hits, limit, s.Name())
	if len(out) == 0 && len(sr.UnresponsiveEngines) > 0 {
		return nil, fmt.Errorf("searxng: no results, %d engines unresponsive", len(sr.UnresponsiveEngines))
	}
	return out, nil
}

type searxResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
	// Each entry is [engine, reason].
	UnresponsiveEngines [][]string `json:"unresponsive_engines"`
}
