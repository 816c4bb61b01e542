package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval pipeline Prometheus metrics.
var (
	ChannelSearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "furnish",
			Name:      "channel_search_duration_seconds",
			Help:      "Per-channel retrieval duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"channel"},
	)

	ChannelSearchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "furnish",
			Name:      "channel_search_total",
			Help:      "Per-channel retrieval outcomes",
		},
		[]string{"channel", "status"}, // "success" / "error"
	)

	QueryCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "furnish",
			Name:      "query_cache_total",
			Help:      "Recommendation query cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	FusedCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "furnish",
			Name:      "fused_candidates",
			Help:      "Number of candidates after rank fusion",
			Buckets:   []float64{1, 5, 10, 25, 50, 100},
		},
	)

	DiversifiedCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "furnish",
			Name:      "diversified_candidates",
			Help:      "Number of candidates after diversity reranking",
			Buckets:   []float64{1, 5, 10, 25, 50, 100},
		},
	)

	CatalogProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "furnish",
			Name:      "catalog_products",
			Help:      "Products in the current catalog snapshot",
		},
	)
)

var retrievalMetricsRegistered bool

// RegisterRetrievalMetrics registers pipeline metrics. Must be called once from main.
func RegisterRetrievalMetrics() {
	if retrievalMetricsRegistered {
		return
	}
	prometheus.MustRegister(ChannelSearchDuration)
	prometheus.MustRegister(ChannelSearchTotal)
	prometheus.MustRegister(QueryCacheTotal)
	prometheus.MustRegister(FusedCandidates)
	prometheus.MustRegister(DiversifiedCandidates)
	prometheus.MustRegister(CatalogProducts)
	retrievalMetricsRegistered = true
}
