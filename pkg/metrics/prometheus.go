package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for an ingestion run
type Metrics struct {
	RequestsTotal  *prometheus.CounterVec
	RowsLoaded     *prometheus.CounterVec
	RateLimitWaits prometheus.Counter
	TokenRefreshes prometheus.Counter
	ErrorsCount    *prometheus.CounterVec
	FetchDuration  *prometheus.HistogramVec
}

// NewMetrics creates new prometheus metrics under the given namespace
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "The total number of outbound provider requests",
		}, []string{"provider"}),
		RowsLoaded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_loaded_total",
			Help:      "The total number of rows loaded into warehouse tables",
		}, []string{"table"}),
		RateLimitWaits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_waits_total",
			Help:      "The total number of 429 backoff sleeps",
		}),
		TokenRefreshes: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_refreshes_total",
			Help:      "The total number of bearer token mints",
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
		FetchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time taken to fetch one provider window",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
	}
}
