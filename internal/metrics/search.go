package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/cinedex/internal/domain/search/source"
)

// Ranking Prometheus metrics.
var (
	GeneratorRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinedex",
			Name:      "search_generator_runs_total",
			Help:      "Candidate generator invocations",
		},
		[]string{"source"},
	)

	GeneratorCandidates = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cinedex",
			Name:      "search_generator_candidates",
			Help:      "Candidates produced per generator invocation",
			Buckets:   []float64{0, 1, 5, 10, 20, 35, 50},
		},
		[]string{"source"},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cinedex",
			Name:      "search_results",
			Help:      "Results returned per search after fusion",
			Buckets:   []float64{0, 1, 5, 10, 20, 40, 54},
		},
	)

	DiscoveryPoolSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cinedex",
			Name:      "discovery_pool_size",
			Help:      "Candidate pool size fed to feed diversification",
			Buckets:   []float64{0, 10, 50, 100, 200, 300, 500},
		},
		[]string{"feed"},
	)

	PoolCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinedex",
			Name:      "trending_pool_cache_total",
			Help:      "Trending pool cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers ranking metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(GeneratorRunsTotal)
	prometheus.MustRegister(GeneratorCandidates)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(DiscoveryPoolSize)
	prometheus.MustRegister(PoolCacheTotal)
	searchMetricsRegistered = true
}

// RankingRecorder feeds search and discovery observations into the ranking metrics.
type RankingRecorder struct{}

// ObserveGenerator records one generator invocation.
func (RankingRecorder) ObserveGenerator(src source.Source, candidates int) {
	GeneratorRunsTotal.WithLabelValues(string(src)).Inc()
	GeneratorCandidates.WithLabelValues(string(src)).Observe(float64(candidates))
}

// ObserveResults records the fused result size.
func (RankingRecorder) ObserveResults(n int) {
	SearchResults.Observe(float64(n))
}

// ObservePool records a discovery candidate pool size.
func (RankingRecorder) ObservePool(feed string, n int) {
	DiscoveryPoolSize.WithLabelValues(feed).Observe(float64(n))
}
