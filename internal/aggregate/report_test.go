package aggregate

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/goseo/internal/seo"
)

func sampleReport() *Report {
	r := New(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), 3)
	r.Add("cara membuat website", []RankedArticle{
		{Rank: 1, SearchTitle: "Cara Membuat Website", Analysis: seo.Analysis{URL: "https://a.example/", Title: "Cara & Tips <2024>"}},
		{Rank: 2, SearchTitle: "Gagal", Analysis: seo.Analysis{URL: "https://b.example/", Error: "failed to analyze article: timeout"}},
	})
	r.Add("kata kunci langka", nil)
	r.AddError("rusak", errors.New("search: unexpected status 500"))
	return r
}

func TestAddStatuses(t *testing.T) {
	r := sampleReport()
	got := []string{r.Results[0].Status, r.Results[1].Status, r.Results[2].Status}
	want := []string{StatusSuccess, StatusNotFound, StatusError}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("status %d: got %s want %s", i, got[i], want[i])
		}
	}
	if r.Results[1].Articles == nil {
		t.Fatalf("not_found keyword must carry an empty article list")
	}
	if r.Results[2].Error == "" {
		t.Fatalf("error keyword must carry the message")
	}
}

func TestSummary(t *testing.T) {
	s := sampleReport().Summary()
	if s.Keywords != 3 || s.KeywordsWithHits != 1 || s.Articles != 2 || s.FailedArticles != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if !strings.Contains(s.String(), "2 articles (1 failed)") {
		t.Fatalf("unexpected summary string: %s", s)
	}
}

func TestEncodeKeepsMarkupAndIndent(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Cara & Tips <2024>") {
		t.Fatalf("expected unescaped title in output")
	}
	if !strings.Contains(out, "\n  \"total_keywords\": 3") {
		t.Fatalf("expected two-space indentation:\n%s", out)
	}
	if !strings.Contains(out, `"search_rank": 1`) {
		t.Fatalf("expected search_rank field")
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")
	r := sampleReport()
	if err := r.WriteFile(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !back.AnalyzedAt.Equal(r.AnalyzedAt) || back.TotalKeywords != 3 || len(back.Results) != 3 {
		t.Fatalf("round trip mismatch: %+v", back)
	}
	if back.Results[0].Articles[1].Analysis.Error == "" {
		t.Fatalf("expected article error to survive")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error")
	}
}
