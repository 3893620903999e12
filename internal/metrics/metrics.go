// Package metrics registers the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationLatency observes end-to-end recommendation serving time
	// per endpoint.
	RecommendationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "shoprec",
		Name:      "recommendation_duration_seconds",
		Help:      "Time spent producing a recommendation list.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	// RecommendationsServed counts produced recommendation lists per endpoint
	// and serving path.
	RecommendationsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shoprec",
		Name:      "recommendations_served_total",
		Help:      "Recommendation lists served, labeled by path taken.",
	}, []string{"endpoint", "path"})

	// ColdStartCacheHits counts cold-start requests answered from the cache.
	ColdStartCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shoprec",
		Name:      "cold_start_cache_hits_total",
		Help:      "Cold-start requests served from the cache.",
	})

	// ColdStartCacheMisses counts cold-start requests that recomputed from
	// the popularity table (miss, expiry or read error).
	ColdStartCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shoprec",
		Name:      "cold_start_cache_misses_total",
		Help:      "Cold-start requests recomputed from the popularity table.",
	})
)
