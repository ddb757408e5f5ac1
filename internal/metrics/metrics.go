// Package metrics holds the Prometheus collectors for the suggestion path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SuggestionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stylematch",
		Name:      "suggestion_requests_total",
		Help:      "Suggestion requests by outcome (ok, empty, invalid, not_found, upstream).",
	}, []string{"outcome"})

	SuggestionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "stylematch",
		Name:      "suggestion_duration_seconds",
		Help:      "End-to-end suggestion latency including catalog reads.",
		Buckets:   prometheus.DefBuckets,
	})

	CandidatesFetched = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "stylematch",
		Name:      "catalog_candidates",
		Help:      "Garments returned by the catalog store per request.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})

	CatalogBreakerOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "stylematch",
		Name:      "catalog_breaker_open",
		Help:      "1 while the catalog circuit breaker is open.",
	})

	ViewsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stylematch",
		Name:      "garment_views_total",
		Help:      "Garment view writes by result.",
	}, []string{"result"})
)
