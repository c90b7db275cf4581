// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staygraph_recommendation_requests_total",
			Help: "Total recommendation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "not_found", "invalid", "no_graph", "timeout", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "staygraph_recommendation_duration_seconds",
			Help:    "Time spent ranking hotels for one request",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "staygraph_recommendation_candidates",
			Help:    "Number of candidate hotels scored per request",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	UnknownUsers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "staygraph_unknown_users_total",
			Help: "Requests whose user email did not resolve and were served anonymously",
		},
	)

	UnknownLocations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "staygraph_unknown_locations_total",
			Help: "Requests whose location id did not resolve",
		},
	)

	// PageRank Metrics
	PageRankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "staygraph_pagerank_duration_seconds",
			Help:    "Duration of weighted PageRank computations",
			Buckets: prometheus.DefBuckets,
		},
	)

	PageRankIterations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "staygraph_pagerank_iterations",
			Help:    "Power iterations used per PageRank computation",
			Buckets: []float64{5, 10, 20, 50, 100, 250, 500, 1000},
		},
	)

	PageRankFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staygraph_pagerank_fallbacks_total",
			Help: "PageRank computations that fell back to the personalization vector",
		},
		[]string{"reason"}, // "no_convergence", "non_finite", "empty_graph", "zero_personalization"
	)

	PageRankCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "staygraph_pagerank_cache_hits_total",
			Help: "PageRank lookups served from the per-version cache",
		},
	)

	PageRankCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "staygraph_pagerank_cache_misses_total",
			Help: "PageRank lookups that required a computation",
		},
	)

	// Graph Metrics
	GraphNodes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "staygraph_graph_nodes",
			Help: "Nodes in the published graph by type",
		},
		[]string{"type"},
	)

	GraphEdges = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "staygraph_graph_edges",
			Help: "Edges in the published graph by relation kind",
		},
		[]string{"kind"},
	)

	GraphVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "staygraph_graph_version",
			Help: "Version of the published graph snapshot",
		},
	)

	GraphLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "staygraph_graph_load_duration_seconds",
			Help:    "Time to load and validate a graph snapshot",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	GraphReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staygraph_graph_reloads_total",
			Help: "Graph reload attempts by result",
		},
		[]string{"result"}, // "success", "failure", "rejected"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
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

// RecordRecommendation records the outcome and latency of a ranking request.
func RecordRecommendation(outcome string, candidates int, duration time.Duration) {
	RecommendationRequests.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
	if candidates > 0 {
		RecommendationCandidates.Observe(float64(candidates))
	}
}

// RecordPageRank records one PageRank computation. An empty fallback means
// the iteration converged normally.
func RecordPageRank(duration time.Duration, iterations int, fallback string) {
	PageRankDuration.Observe(duration.Seconds())
	PageRankIterations.Observe(float64(iterations))
	if fallback != "" {
		PageRankFallbacks.WithLabelValues(fallback).Inc()
	}
}

// RecordPageRankCache records a cache lookup.
func RecordPageRankCache(hit bool) {
	if hit {
		PageRankCacheHits.Inc()
	} else {
		PageRankCacheMisses.Inc()
	}
}

// RecordGraphReload records a reload attempt.
func RecordGraphReload(result string, duration time.Duration) {
	GraphReloads.WithLabelValues(result).Inc()
	if duration > 0 {
		GraphLoadDuration.Observe(duration.Seconds())
	}
}

// UpdateGraphGauges publishes the size of the current graph snapshot.
func UpdateGraphGauges(version uint64, nodes map[string]int, edges map[string]int) {
	GraphVersion.Set(float64(version))
	for t, n := range nodes {
		GraphNodes.WithLabelValues(t).Set(float64(n))
	}
	for k, n := range edges {
		GraphEdges.WithLabelValues(k).Set(float64(n))
	}
}

// RecordCircuitBreakerTransition records a breaker state change. States use
// gobreaker's string names.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
