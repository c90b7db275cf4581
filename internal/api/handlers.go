// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/staygraph/internal/graph"
	"github.com/tomtom215/staygraph/internal/logging"
	"github.com/tomtom215/staygraph/internal/models"
	"github.com/tomtom215/staygraph/internal/recommend"
	"github.com/tomtom215/staygraph/internal/reload"
)

// Recommender is the engine surface the handlers use. *recommend.Engine
// implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Experiences(ctx context.Context) ([]recommend.ExperienceInfo, error)
	HotelDetails(ctx context.Context, hotelID int64) (*recommend.HotelDetails, error)
	Status() (*recommend.GraphStatus, error)
	Stats() recommend.EngineStats
}

// GraphReloader reloads the graph synchronously. *reload.Reloader
// implements it.
type GraphReloader interface {
	Reload(ctx context.Context, reason string) (*graph.Snapshot, error)
	BreakerState() string
}

// Handler serves the StayGraph endpoints.
type Handler struct {
	engine    Recommender
	requester reload.Requester
	reloader  GraphReloader
	startTime time.Time
	version   string
}

// HandlerOption configures optional Handler dependencies.
type HandlerOption func(*Handler)

// WithReloadRequester enables queued reloads through POST /graph/reload.
func WithReloadRequester(r reload.Requester) HandlerOption {
	return func(h *Handler) { h.requester = r }
}

// WithReloader enables inline reloads (?wait=true) and reports breaker state.
func WithReloader(r GraphReloader) HandlerOption {
	return func(h *Handler) { h.reloader = r }
}

// WithVersion sets the version reported by the root endpoint.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) { h.version = v }
}

// NewHandler creates the endpoint handlers.
func NewHandler(engine Recommender, opts ...HandlerOption) *Handler {
	h := &Handler{engine: engine, startTime: time.Now(), version: "dev"}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RootInfo is the body of GET /.
type RootInfo struct {
	Message      string  `json:"message"`
	Status       string  `json:"status"`
	Version      string  `json:"version"`
	NodesCount   int     `json:"nodes_count"`
	EdgesCount   int     `json:"edges_count"`
	GraphVersion uint64  `json:"graph_version"`
	Uptime       float64 `json:"uptime_seconds"`
}

// Root handles GET /. It answers even before a graph is loaded.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	info := RootInfo{
		Message: "StayGraph hotel recommendation API",
		Status:  "loading",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}
	if st, err := h.engine.Status(); err == nil {
		info.Status = "active"
		info.NodesCount = st.Nodes
		info.EdgesCount = st.Edges
		info.GraphVersion = st.Version
	}
	respondJSON(w, http.StatusOK, models.NewSuccess(info, models.Metadata{}))
}

// Recommend handles POST /api/v1/recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.rank(w, r)
	if !ok {
		return
	}
	items := make([]models.HotelRecommendation, len(resp.Items))
	for i := range resp.Items {
		items[i] = models.NewHotelRecommendation(resp.Items[i])
	}
	respondJSON(w, http.StatusOK, models.NewSuccess(items, rankMetadata(resp)))
}

// Explain handles POST /api/v1/recommendations/explain. The ranking is the
// same as Recommend; each hotel also carries its score breakdown.
func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.rank(w, r)
	if !ok {
		return
	}
	items := make([]models.ExplainedRecommendation, len(resp.Items))
	for i := range resp.Items {
		items[i] = models.NewExplainedRecommendation(resp.Items[i])
	}
	respondJSON(w, http.StatusOK, models.NewSuccess(items, rankMetadata(resp)))
}

func (h *Handler) rank(w http.ResponseWriter, r *http.Request) (*recommend.Response, bool) {
	var req recommend.Request
	if !decodeRequest(w, r, &req) {
		return nil, false
	}
	req.RequestID = logging.RequestIDFromContext(r.Context())

	resp, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return resp, true
}

func rankMetadata(resp *recommend.Response) models.Metadata {
	m := resp.Metadata
	return models.Metadata{
		RequestID:    m.RequestID,
		GraphVersion: m.GraphVersion,
		QueryTimeMS:  m.LatencyMS,
		Candidates:   m.Candidates,
		UserResolved: m.UserResolved,
		Cached:       m.PageRankCached,
	}
}

// Experiences handles GET /api/v1/experiences.
func (h *Handler) Experiences(w http.ResponseWriter, r *http.Request) {
	exps, err := h.engine.Experiences(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccess(exps, models.Metadata{
		RequestID: logging.RequestIDFromContext(r.Context()),
	}))
}

// Hotel handles GET /api/v1/hotels/{hotelID}.
func (h *Handler) Hotel(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "hotelID")
	hotelID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "hotelID must be an integer", map[string]any{"field": "hotelID"})
		return
	}

	details, err := h.engine.HotelDetails(r.Context(), hotelID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if details.Rating != nil {
		rounded := models.Round2(*details.Rating)
		details.Rating = &rounded
	}
	for i := range details.Experiences {
		details.Experiences[i].Rating = models.Round2(details.Experiences[i].Rating)
	}
	respondJSON(w, http.StatusOK, models.NewSuccess(details, models.Metadata{
		RequestID: logging.RequestIDFromContext(r.Context()),
	}))
}

// StatusInfo is the body of GET /api/v1/graph/status.
type StatusInfo struct {
	*recommend.GraphStatus
	Engine        recommend.EngineStats `json:"engine"`
	SourceBreaker string                `json:"source_breaker,omitempty"`
}

// GraphStatus handles GET /api/v1/graph/status.
func (h *Handler) GraphStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.engine.Status()
	if err != nil {
		writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccess(h.statusInfo(st), models.Metadata{GraphVersion: st.Version}))
}

func (h *Handler) statusInfo(st *recommend.GraphStatus) StatusInfo {
	info := StatusInfo{GraphStatus: st, Engine: h.engine.Stats()}
	if h.reloader != nil {
		info.SourceBreaker = h.reloader.BreakerState()
	}
	return info
}

// Reload handles POST /api/v1/graph/reload. By default the request is queued
// and answered with 202; with ?wait=true the reload runs inline and the new
// status is returned.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))

	if !wait {
		if h.requester == nil {
			writeError(w, r, errReloadUnavailable)
			return
		}
		if err := h.requester.RequestReload(r.Context(), "api"); err != nil {
			writeError(w, r, err)
			return
		}
		respondJSON(w, http.StatusAccepted, models.NewSuccess(map[string]any{"queued": true}, models.Metadata{
			RequestID: logging.RequestIDFromContext(r.Context()),
		}))
		return
	}

	if h.reloader == nil {
		writeError(w, r, errReloadUnavailable)
		return
	}
	if _, err := h.reloader.Reload(r.Context(), "api"); err != nil {
		status, code := classifyError(err)
		if status == http.StatusInternalServerError {
			// The current graph stays published; report the load failure.
			respondError(w, r, http.StatusBadGateway, CodeReloadFailed, err.Error(), nil)
			return
		}
		respondError(w, r, status, code, err.Error(), nil)
		return
	}
	h.GraphStatus(w, r)
}

// Live handles GET /api/v1/health/live.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.NewSuccess(map[string]any{
		"status": "alive",
		"uptime": time.Since(h.startTime).Seconds(),
	}, models.Metadata{}))
}

// Ready handles GET /api/v1/health/ready. Ready means a graph is published.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	st, err := h.engine.Status()
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeGraphNotLoaded, "No graph snapshot published yet", nil)
		return
	}
	respondJSON(w, http.StatusOK, models.NewSuccess(map[string]any{
		"status":        "ready",
		"graph_version": st.Version,
	}, models.Metadata{GraphVersion: st.Version}))
}
