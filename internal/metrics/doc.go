// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are exposed at /metrics:

	curl http://localhost:8000/metrics

# Available Metrics

API Metrics:
  - api_requests_total: requests by method, endpoint and status code
  - api_request_duration_seconds: request latency
  - api_active_requests: in-flight requests
  - api_rate_limit_hits_total: rate limit rejections

Recommendation Metrics:
  - staygraph_recommendation_requests_total: ranking requests by outcome
  - staygraph_recommendation_duration_seconds: ranking latency
  - staygraph_recommendation_candidates: candidate hotels per request
  - staygraph_unknown_users_total: requests served anonymously after a failed user lookup
  - staygraph_unknown_locations_total: requests with an unresolved location id

PageRank Metrics:
  - staygraph_pagerank_duration_seconds, staygraph_pagerank_iterations
  - staygraph_pagerank_fallbacks_total: fallbacks to the personalization vector by reason
  - staygraph_pagerank_cache_hits_total, staygraph_pagerank_cache_misses_total

Graph Metrics:
  - staygraph_graph_nodes, staygraph_graph_edges, staygraph_graph_version
  - staygraph_graph_load_duration_seconds, staygraph_graph_reloads_total

# Usage

	metrics.RecordRecommendation("ok", len(candidates), time.Since(start))
	metrics.RecordPageRank(elapsed, iterations, "")
*/
package metrics
