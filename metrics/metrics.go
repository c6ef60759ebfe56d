// Package metrics defines the Prometheus counters moodshelf services
// report to. All methods are safe to call on a nil *Metrics.
package metrics

import (
	"time"

	"github.com/poiesic/moodshelf/core"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "moodshelf"

// Metrics holds the service collectors.
type Metrics struct {
	KeywordsTotal            *prometheus.CounterVec
	VotesTotal               *prometheus.CounterVec
	EmbeddingRequestsTotal   *prometheus.CounterVec
	EmbeddingRequestDuration prometheus.Histogram
	EmbeddingCacheTotal      *prometheus.CounterVec
	ClusterRunsTotal         *prometheus.CounterVec
	SearchesTotal            *prometheus.CounterVec
}

// New creates unregistered collectors.
func New() *Metrics {
	return &Metrics{
		KeywordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "keywords_total",
				Help:      "Keyword submissions by outcome",
			},
			[]string{"outcome"}, // "created" / "endorsed"
		),
		VotesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "votes_total",
				Help:      "Votes by type and outcome",
			},
			[]string{"type", "outcome"},
		),
		EmbeddingRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "embedding_requests_total",
				Help:      "Total number of embedding requests",
			},
			[]string{"status"}, // "ok" / "loading" / "error"
		),
		EmbeddingRequestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "embedding_request_duration_seconds",
				Help:      "Embedding request duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		EmbeddingCacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "embedding_cache_total",
				Help:      "Embedding cache hits and misses",
			},
			[]string{"result"}, // "hit" / "miss"
		),
		ClusterRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cluster_runs_total",
				Help:      "Clustering runs by status",
			},
			[]string{"status"},
		),
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Searches by match mode",
			},
			[]string{"mode"},
		),
	}
}

// Register registers every collector with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.KeywordsTotal,
		m.VotesTotal,
		m.EmbeddingRequestsTotal,
		m.EmbeddingRequestDuration,
		m.EmbeddingCacheTotal,
		m.ClusterRunsTotal,
		m.SearchesTotal,
	}
}

// CacheCounter returns the cache hit/miss counter, or nil.
func (m *Metrics) CacheCounter() *prometheus.CounterVec {
	if m == nil {
		return nil
	}
	return m.EmbeddingCacheTotal
}

// KeywordAdded counts a keyword submission.
func (m *Metrics) KeywordAdded(outcome core.Outcome) {
	if m == nil {
		return
	}
	m.KeywordsTotal.WithLabelValues(outcome.String()).Inc()
}

// VoteCast counts a vote. Rejected votes are reported with the error code.
func (m *Metrics) VoteCast(voteType core.VoteType, outcome string) {
	if m == nil {
		return
	}
	m.VotesTotal.WithLabelValues(string(voteType), outcome).Inc()
}

// EmbeddingRequest records one provider call.
func (m *Metrics) EmbeddingRequest(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.EmbeddingRequestsTotal.WithLabelValues(status).Inc()
	m.EmbeddingRequestDuration.Observe(elapsed.Seconds())
}

// ClusterRun counts a clustering run by status.
func (m *Metrics) ClusterRun(status string) {
	if m == nil {
		return
	}
	m.ClusterRunsTotal.WithLabelValues(status).Inc()
}

// Search counts a search by mode.
func (m *Metrics) Search(mode core.SearchMode) {
	if m == nil {
		return
	}
	m.SearchesTotal.WithLabelValues(string(mode)).Inc()
}
