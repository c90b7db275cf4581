// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/staygraph/internal/config"
	"github.com/tomtom215/staygraph/internal/middleware"
)

// Router wires the handlers to a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	cfg           *config.Config
}

// NewRouter creates a router. A nil cfg uses config.Default().
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFrom(cfg.Security)),
		cfg:           cfg,
	}
}

// SetupChi builds the route tree.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Get("/", router.handler.Root)

	// ========================
	// Health Endpoints
	// ========================
	// Not rate limited so probes never see 429.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Get("/live", router.handler.Live)
		r.Get("/ready", router.handler.Ready)
	})

	// ========================
	// API v1
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(bodyLimit(router.cfg.Security.MaxBodyBytes))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(router.cfg.Server.RequestTimeout))
			r.Post("/recommendations", router.handler.Recommend)
			r.Post("/recommendations/explain", router.handler.Explain)
		})

		r.Get("/experiences", router.handler.Experiences)
		r.Get("/hotels/{hotelID}", router.handler.Hotel)

		r.Route("/graph", func(r chi.Router) {
			r.Get("/status", router.handler.GraphStatus)
			r.Post("/reload", router.handler.Reload)
		})
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// bodyLimit caps request bodies at n bytes. Reads past the limit fail with
// *http.MaxBytesError, which decodeRequest turns into a 413.
func bodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if n <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
