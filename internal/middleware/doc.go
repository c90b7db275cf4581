// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

/*
Package middleware provides HTTP middleware for the StayGraph API.

Key Components:

  - RequestID: UUID request tracking, shared with the logging context
  - PrometheusMetrics: Request counts, latency and in-flight gauge per route
  - AccessLog: One structured log line per request
  - Timeout: Per-request deadline consumed by the ranking engine

All middleware use the chi signature func(http.Handler) http.Handler:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.With(middleware.Timeout(10 * time.Second)).Post("/recommendations", h.Recommend)
	})

PrometheusMetrics labels requests by chi route pattern, not raw path, so
/api/v1/hotels/{hotelID} is one series regardless of the id.
*/
package middleware
