package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// FileProvider loads search results from a local JSON file for offline runs
// and tests. Two layouts are accepted: an array of results served for every
// query, or an object keyed by query whose values are result arrays.
// Result objects use {"title": "...", "url": "...", "snippet": "..."}.
type FileProvider struct {
	Path string
}

func (f *FileProvider) Name() string { return "file" }

func (f *FileProvider) Search(_ context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(f.Path) == "" {
		return nil, errors.New("file provider path is empty")
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	raw, err := decodeFixture(b, query)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	out := make([]Result, 0, len(raw))
	for _, r := range raw {
		if r.URL == "" {
			continue
		}
		r.Source = f.Name()
		if r.Position == 0 {
			r.Position = len(out) + 1
		}
		out = append(out, r)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func decodeFixture(b []byte, query string) ([]Result, error) {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "[") {
		var list []Result
		if err := json.Unmarshal(b, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var byQuery map[string][]Result
	if err := json.Unmarshal(b, &byQuery); err != nil {
		return nil, err
	}
	if list, ok := byQuery[query]; ok {
		return list, nil
	}
	// Fall back to a case-insensitive key match.
	q := strings.ToLower(strings.TrimSpace(query))
	for k, list := range byQuery {
		if strings.ToLower(strings.TrimSpace(k)) == q {
			return list, nil
		}
	}
	return nil, nil
}
