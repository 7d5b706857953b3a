package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()
	m.ObserveFetch("https://a.example/", 1200)
	m.ObserveFetch("https://b.example/", 300)
	m.ObserveSearch("success")
	m.ObserveArticle(false)
	m.ObserveArticle(true)
	m.ObserveArticle(true)

	if got := testutil.ToFloat64(m.BytesFetched); got != 1500 {
		t.Fatalf("bytes=%v", got)
	}
	if got := testutil.ToFloat64(m.PagesFetched); got != 2 {
		t.Fatalf("pages=%v", got)
	}
	if got := testutil.ToFloat64(m.ArticlesAnalyzed.WithLabelValues(OutcomeError)); got != 2 {
		t.Fatalf("errors=%v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveSearch("not_found")
	path := filepath.Join(t.TempDir(), "goseo.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), `goseo_searches_total{status="not_found"} 1`) {
		t.Fatalf("unexpected textfile:\n%s", b)
	}
}
