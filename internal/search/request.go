package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// hit is one provider result before trimming and bounding.
type hit struct {
	Title    string
	URL      string
	Snippet  string
	Position int
}

// getJSON issues one GET to rawURL and decodes a 2xx JSON body into v.
// name prefixes errors so a keyword's failure names its backend.
func getJSON(ctx context.Context, hc *http.Client, name, rawURL, userAgent string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%s request: %w", name, err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "application/json")
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s status: %d", name, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s response: %w", name, err)
	}
	return nil
}

// collect trims hits, drops the ones without a URL and stops at limit.
// A zero Position becomes the 1-based index among kept hits.
func collect(hits []hit, limit int, source string) []Result {
	out := make([]Result, 0, len(hits))
	for _, h := range hits {
		link := strings.TrimSpace(h.URL)
		if link == "" {
			continue
		}
		pos := h.Position
		if pos == 0 {
			pos = len(out) + 1
		}
		out = append(out, Result{
			Title:    strings.TrimSpace(h.Title),
			URL:      link,
			Snippet:  strings.TrimSpace(h.Snippet),
			Position: pos,
			Source:   source,
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func pick(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}
