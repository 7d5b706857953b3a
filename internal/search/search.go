package search

import (
	"context"
)

// Result represents a single organic search hit from any provider.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
	// Position is the provider-reported rank, 0 when the provider has none.
	Position int    `json:"position,omitempty"`
	Source   string `json:"-"` // provider name for observability
}

// Provider is a minimal interface for search providers.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
	Name() string
}
