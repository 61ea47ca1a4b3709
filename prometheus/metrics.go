package prometheus

import (
	"catalog-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Catalog query metrics, labeled by retrieval strategy (filter/search)
	CatalogQueriesTotal prometheus.CounterVec

	// Point lookup metrics, labeled by result (found/not_found)
	ProductLookupsTotal prometheus.CounterVec

	// Suggestion metrics
	SuggestionRequestsTotal prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	// Use metric prefix from configuration
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	CatalogQueriesTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_queries_total",
			Help: "Total number of catalog queries by retrieval strategy",
		},
		[]string{"strategy"},
	)

	ProductLookupsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_lookups_total",
			Help: "Total number of product point lookups by result",
		},
		[]string{"result"},
	)

	SuggestionRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_suggestion_requests_total",
			Help: "Total number of suggestion requests",
		},
	)
}
