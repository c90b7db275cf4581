// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

/*
Package api provides the HTTP interface of StayGraph.

# Endpoints

	GET  /                                  service info with graph size
	POST /api/v1/recommendations            rank hotels for experience preferences
	POST /api/v1/recommendations/explain    same, with the score breakdown per hotel
	GET  /api/v1/experiences                all experiences ordered by id
	GET  /api/v1/hotels/{hotelID}           one hotel with its experience ratings
	GET  /api/v1/graph/status               snapshot version, source and counts
	POST /api/v1/graph/reload               queue a reload (202), or ?wait=true to reload inline
	GET  /api/v1/health/live                process is up
	GET  /api/v1/health/ready               a graph snapshot is published
	GET  /metrics                           Prometheus exposition

Every JSON response uses the models.APIResponse envelope. Engine errors are
mapped to status codes and error codes in one place (writeError).

# Middleware

Global: RequestID, RealIP, AccessLog, Recoverer, CORS. The /api/v1 group adds
rate limiting (go-chi/httprate), Prometheus instrumentation and a body size
limit; ranking routes also run under the configured request timeout.
*/
package api
