package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Defaults mirror the Indonesian Google market the tool was built for.
const (
	DefaultSerpLocation = "Indonesia"
	DefaultSerpLanguage = "id"
	DefaultSerpNum      = 6
)

// SerpAPI implements Provider against a SerpAPI-compatible JSON endpoint
// (engine=google). BaseURL is the full search endpoint, e.g.
// https://serpapi.com/search.json.
type SerpAPI struct {
	BaseURL    string
	APIKey     string
	Location   string
	Language   string // hl parameter
	HTTPClient *http.Client
	UserAgent  string // optional custom UA
}

func (s *SerpAPI) Name() string { return "serpapi" }

// Search issues exactly one request for query and returns at most limit
// organic results in the order the API ranked them.
func (s *SerpAPI) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if s.BaseURL == "" {
		return nil, fmt.Errorf("missing serpapi url")
	}
	if limit <= 0 {
		limit = DefaultSerpNum
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse serpapi url: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("location", pick(s.Location, DefaultSerpLocation))
	q.Set("hl", pick(s.Language, DefaultSerpLanguage))
	q.Set("engine", "google")
	q.Set("num", strconv.Itoa(limit))
	if s.APIKey != "" {
		q.Set("api_key", s.APIKey)
	}
	u.RawQuery = q.Encode()

	var sr serpResponse
	if err := getJSON(ctx, s.HTTPClient, s.Name(), u.String(), s.UserAgent, &sr); err != nil {
		return nil, err
	}
	hits := make([]hit, 0, len(sr.OrganicResults))
	for _, r := range sr.OrganicResults {
		hits = append(hits, hit{Title: r.Title, URL: r.Link, Snippet: r.Snippet, Position: r.Position})
	}
	return collect(hits, limit, s.Name()), nil
}

// serpResponse keeps only organic results; an "error" body such as "no
// results" decodes to an empty list.
type serpResponse struct {
	OrganicResults []struct {
		Position int    `json:"position"`
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
	} `json:"organic_results"`
}
