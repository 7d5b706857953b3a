package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for ArticlesAnalyzed.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the run counters on a private registry so a run can be
// written out as a node-exporter textfile.
type Metrics struct {
	Registry         *prometheus.Registry
	Searches         *prometheus.CounterVec
	ArticlesAnalyzed *prometheus.CounterVec
	PagesFetched     prometheus.Counter
	BytesFetched     prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "goseo_searches_total",
			Help: "Keyword searches by status",
		}, []string{"status"}),
		ArticlesAnalyzed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "goseo_articles_analyzed_total",
			Help: "Analyzed articles by outcome",
		}, []string{"outcome"}),
		PagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goseo_pages_fetched_total",
			Help: "Total number of pages successfully fetched",
		}),
		BytesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goseo_bytes_fetched_total",
			Help: "Total bytes downloaded",
		}),
	}
	m.Registry.MustRegister(m.Searches, m.ArticlesAnalyzed, m.PagesFetched, m.BytesFetched)
	return m
}

// ObserveFetch matches fetch.Observer.
func (m *Metrics) ObserveFetch(_ string, bytes int) {
	m.PagesFetched.Inc()
	m.BytesFetched.Add(float64(bytes))
}

// ObserveSearch counts one keyword search outcome.
func (m *Metrics) ObserveSearch(status string) {
	m.Searches.WithLabelValues(status).Inc()
}

// ObserveArticle counts one analyzed article.
func (m *Metrics) ObserveArticle(failed bool) {
	outcome := OutcomeOK
	if failed {
		outcome = OutcomeError
	}
	m.ArticlesAnalyzed.WithLabelValues(outcome).Inc()
}

// WriteTextfile writes every registered metric to path in the text
// exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
