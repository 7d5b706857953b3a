// Package aggregate collects per-keyword analysis results into a report and
// serializes it.
package aggregate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hyperifyio/goseo/internal/seo"
)

// Keyword outcome statuses.
const (
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// RankedArticle is one search result together with its analysis.
type RankedArticle struct {
	Rank        int          `json:"search_rank"`
	SearchTitle string       `json:"search_title"`
	Analysis    seo.Analysis `json:"analysis"`
}

// KeywordResult is the outcome for a single keyword.
type KeywordResult struct {
	Keyword  string          `json:"keyword"`
	Status   string          `json:"status"`
	Error    string          `json:"error,omitempty"`
	Articles []RankedArticle `json:"articles"`
}

// Report is the top-level output document.
type Report struct {
	AnalyzedAt    time.Time       `json:"analyzed_at"`
	TotalKeywords int             `json:"total_keywords"`
	Results       []KeywordResult `json:"results"`
}

// New starts an empty report stamped with now.
func New(now time.Time, totalKeywords int) *Report {
	return &Report{AnalyzedAt: now, TotalKeywords: totalKeywords, Results: []KeywordResult{}}
}

// AddError records a keyword whose search failed.
func (r *Report) AddError(keyword string, err error) {
	r.Results = append(r.Results, KeywordResult{
		Keyword:  keyword,
		Status:   StatusError,
		Error:    err.Error(),
		Articles: []RankedArticle{},
	})
}

// Add records a keyword and its analyzed articles. An empty article list is
// stored as not_found.
func (r *Report) Add(keyword string, articles []RankedArticle) {
	status := StatusSuccess
	if len(articles) == 0 {
		status = StatusNotFound
		articles = []RankedArticle{}
	}
	r.Results = append(r.Results, KeywordResult{Keyword: keyword, Status: status, Articles: articles})
}

// Summary counts outcomes across the report.
type Summary struct {
	Keywords         int
	KeywordsWithHits int
	Articles         int
	FailedArticles   int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d keywords, %d with results, %d articles (%d failed)",
		s.Keywords, s.KeywordsWithHits, s.Articles, s.FailedArticles)
}

// Summary tallies the report.
func (r *Report) Summary() Summary {
	s := Summary{Keywords: len(r.Results)}
	for _, kr := range r.Results {
		if kr.Status == StatusSuccess {
			s.KeywordsWithHits++
		}
		for _, a := range kr.Articles {
			s.Articles++
			if a.Analysis.Failed() {
				s.FailedArticles++
			}
		}
	}
	return s
}

// Encode writes the report as indented JSON without HTML escaping so
// non-ASCII and markup characters survive verbatim.
func (r *Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

// Decode reads a report previously written by Encode.
func Decode(rd io.Reader) (*Report, error) {
	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}

// WriteFile writes the report to path, creating parent directories.
func (r *Report) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := r.Encode(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

// ReadFile loads a report from path.
func ReadFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
