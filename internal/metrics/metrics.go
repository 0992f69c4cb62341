// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by mode",
		},
		[]string{"mode"}, // "similar", "personalized"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent ranking a recommendation request",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"mode"},
	)

	RecommendCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates",
			Help:    "Number of catalog items scored per request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 .. 16384
		},
		[]string{"mode"},
	)

	RecommendResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_results",
			Help:    "Number of items returned per request",
			Buckets: []float64{0, 1, 3, 5, 10, 12, 20, 50},
		},
		[]string{"mode"},
	)

	RecommendEmptyResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_empty_results_total",
			Help: "Requests that produced no recommendations",
		},
		[]string{"mode"},
	)

	// Catalog Metrics
	CatalogFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_fetch_duration_seconds",
			Help:    "Duration of upstream catalog fetches",
			Buckets: prometheus.DefBuckets,
		},
	)

	CatalogFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_fetch_errors_total",
			Help: "Failed upstream catalog fetches",
		},
		[]string{"reason"}, // "transport", "status", "decode", "breaker_open", "rate_limited"
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_items",
			Help: "Number of normalized items in the last fetched catalog",
		},
	)

	CatalogSkippedItems = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_skipped_items_total",
			Help: "Upstream products dropped during normalization",
		},
	)

	CatalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Catalog reads served from cache",
		},
	)

	CatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Catalog reads that required an upstream fetch",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Signal Store Metrics
	SignalStoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signal_store_operations_total",
			Help: "Shopper signal store operations",
		},
		[]string{"backend", "operation", "result"}, // result: "success", "error"
	)

	SignalStoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "signal_store_operation_duration_seconds",
			Help:    "Shopper signal store operation latency",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"backend", "operation"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one ranking request.
func RecordRecommendation(mode string, candidates, returned int, duration time.Duration) {
	RecommendRequestsTotal.WithLabelValues(mode).Inc()
	RecommendDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RecommendCandidates.WithLabelValues(mode).Observe(float64(candidates))
	RecommendResults.WithLabelValues(mode).Observe(float64(returned))
	if returned == 0 {
		RecommendEmptyResults.WithLabelValues(mode).Inc()
	}
}

// RecordCatalogFetch records an upstream fetch. reason is ignored on success.
func RecordCatalogFetch(duration time.Duration, items, skipped int, reason string, err error) {
	CatalogFetchDuration.Observe(duration.Seconds())
	if err != nil {
		if reason == "" {
			reason = "transport"
		}
		CatalogFetchErrors.WithLabelValues(reason).Inc()
		return
	}
	CatalogItems.Set(float64(items))
	CatalogSkippedItems.Add(float64(skipped))
}

// RecordCatalogCache records a catalog cache lookup.
func RecordCatalogCache(hit bool) {
	if hit {
		CatalogCacheHits.Inc()
	} else {
		CatalogCacheMisses.Inc()
	}
}

// RecordSignalStoreOp records one signal store operation.
func RecordSignalStoreOp(backend, operation string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	SignalStoreOperations.WithLabelValues(backend, operation, result).Inc()
	SignalStoreDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
}
