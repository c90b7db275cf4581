// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/staygraph/internal/graph"
	"github.com/tomtom215/staygraph/internal/metrics"
)

// Engine ranks hotels against experience preferences using the graph
// snapshot published in a graph.Holder. It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	holder   *graph.Holder
	pagerank *pageRankCache
	collab   CollaborativeScorer

	requestCount atomic.Int64
	errorCount   atomic.Int64
	unknownUsers atomic.Int64
}

// EngineStats are cumulative request counters.
type EngineStats struct {
	Requests     int64 `json:"requests"`
	Errors       int64 `json:"errors"`
	UnknownUsers int64 `json:"unknown_users"`
}

// resolvedPreference is a requested experience resolved to its node.
type resolvedPreference struct {
	node       graph.NodeID
	importance int
}

// NewEngine creates a recommendation engine reading snapshots from holder.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(holder *graph.Holder, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if holder == nil {
		return nil, errors.New("graph holder is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger = logger.With().Str("component", "recommend").Logger()
	cache, err := newPageRankCache(cfg.PageRank, cfg.Cache.PageRankEntries, logger)
	if err != nil {
		return nil, fmt.Errorf("create pagerank cache: %w", err)
	}

	return &Engine{
		config:   cfg.Clone(),
		logger:   logger,
		holder:   holder,
		pagerank: cache,
		collab:   NewCollaborativeScorer(cfg.Collaborative),
	}, nil
}

// Recommend ranks the hotels offering the requested experiences and returns
// the top K.
//
// Every requested experience id must resolve, otherwise the request fails
// with an error matching ErrExperienceNotFound. An unknown user email is
// served as an anonymous request; an unknown location grants no bonus.
func (e *Engine) Recommend(ctx context.Context, req Request) (resp *Response, err error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req)
	logger.Debug().Int("preferences", len(req.Preferences)).Msg("processing recommendation request")

	candidates := 0
	defer func() {
		if err != nil {
			e.errorCount.Add(1)
		}
		metrics.RecordRecommendation(outcome(err), candidates, time.Since(start))
	}()

	snap := e.holder.Current()
	if snap == nil {
		return nil, ErrNoGraph
	}
	g := snap.Graph

	prefs, err := e.validatePreferences(req.Preferences)
	if err != nil {
		return nil, err
	}

	// resolve
	resolved, err := resolvePreferences(g, prefs)
	if err != nil {
		return nil, err
	}
	hist := e.resolveUser(g, req.UserEmail, logger)
	if err := checkpoint(ctx, "resolve"); err != nil {
		return nil, err
	}

	// filter
	hotels := candidateHotels(g, resolved)
	candidates = len(hotels)
	if err := checkpoint(ctx, "filter"); err != nil {
		return nil, err
	}

	// pagerank
	pr, cached := e.pagerank.get(snap)
	inLocation, locationResolved := e.resolveLocation(g, req.LocationID, logger)
	if err := checkpoint(ctx, "pagerank"); err != nil {
		return nil, err
	}

	// score
	sc := &scoringContext{
		g:          g,
		weights:    e.config.Weights,
		prefs:      resolved,
		pagerank:   pr,
		hist:       hist,
		collab:     e.collab.prepare(g, hist),
		sets:       newExperienceSets(g),
		inLocation: inLocation,
	}
	items := make([]Recommendation, 0, len(hotels))
	for _, h := range hotels {
		items = append(items, sc.score(h))
	}
	if err := checkpoint(ctx, "score"); err != nil {
		return nil, err
	}

	// sort
	rankRecommendations(items)
	if len(items) > e.config.Limits.TopK {
		items = items[:e.config.Limits.TopK]
	}

	resp = &Response{
		Items: items,
		Metadata: ResponseMetadata{
			RequestID:        req.RequestID,
			GraphVersion:     snap.Version,
			Candidates:       candidates,
			UserResolved:     hist != nil,
			LocationResolved: locationResolved,
			PageRankCached:   cached,
			PageRankFallback: pr.Fallback != "",
			LatencyMS:        time.Since(start).Milliseconds(),
		},
	}

	logger.Debug().
		Int("candidates", candidates).
		Int("returned", len(items)).
		Uint64("graph_version", snap.Version).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest fills in defaults.
//
//nolint:gocritic // Request passed by value is intentional
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // Request passed by value is intentional
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Logger()
}

// validatePreferences checks importance bounds and drops repeated experience
// ids, keeping the first occurrence.
func (e *Engine) validatePreferences(prefs []Preference) ([]Preference, error) {
	if len(prefs) == 0 {
		return nil, invalidRequest("at least one experience preference is required")
	}
	if len(prefs) > e.config.Limits.MaxPreferences {
		return nil, invalidRequest("at most %d experience preferences are allowed, got %d",
			e.config.Limits.MaxPreferences, len(prefs))
	}

	seen := make(map[int64]struct{}, len(prefs))
	out := make([]Preference, 0, len(prefs))
	for _, p := range prefs {
		if p.Importance < 1 || p.Importance > 5 {
			return nil, invalidRequest("importance for experience %d must be between 1 and 5, got %d",
				p.ExperienceID, p.Importance)
		}
		if _, dup := seen[p.ExperienceID]; dup {
			continue
		}
		seen[p.ExperienceID] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

// resolvePreferences maps experience ids to nodes. Any unresolved id fails
// the request.
func resolvePreferences(g *graph.Graph, prefs []Preference) ([]resolvedPreference, error) {
	out := make([]resolvedPreference, 0, len(prefs))
	var missing []int64
	for _, p := range prefs {
		n, ok := g.ExperienceByExternalID(p.ExperienceID)
		if !ok {
			missing = append(missing, p.ExperienceID)
			continue
		}
		out = append(out, resolvedPreference{node: n.ID, importance: p.Importance})
	}
	if len(missing) > 0 {
		return nil, &MissingExperiencesError{IDs: missing}
	}
	return out, nil
}

// resolveUser loads the history of the guest identified by email. Unknown
// guests are served anonymously.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) resolveUser(g *graph.Graph, email string, logger zerolog.Logger) *UserHistory {
	if email == "" {
		return nil
	}
	n, ok := g.UserByEmail(email)
	if !ok {
		e.unknownUsers.Add(1)
		metrics.UnknownUsers.Inc()
		logger.Debug().Err(&UnknownUserError{Email: email}).Msg("serving request anonymously")
		return nil
	}
	return LoadUserHistory(g, n.ID)
}

// resolveLocation returns the hotels in the requested location. The second
// result is false when a location was requested but does not exist.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) resolveLocation(g *graph.Graph, locationID *int64, logger zerolog.Logger) (map[graph.NodeID]struct{}, bool) {
	if locationID == nil {
		return nil, true
	}
	loc, ok := g.LocationByExternalID(*locationID)
	if !ok {
		metrics.UnknownLocations.Inc()
		logger.Warn().Int64("location_id", *locationID).Msg("unknown location, no location bonus applied")
		return nil, false
	}
	hotels := g.NeighborsOfKind(loc.ID, graph.LocatedIn)
	set := make(map[graph.NodeID]struct{}, len(hotels))
	for _, h := range hotels {
		set[h] = struct{}{}
	}
	return set, true
}

// candidateHotels returns the hotels offering at least one requested
// experience, in ascending id order.
func candidateHotels(g *graph.Graph, prefs []resolvedPreference) []graph.NodeID {
	seen := make(map[graph.NodeID]struct{})
	var out []graph.NodeID
	for _, p := range prefs {
		for _, h := range g.NeighborsOfKind(p.node, graph.HasExperience) {
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// scoringContext holds everything needed to score candidates of one request.
type scoringContext struct {
	g          *graph.Graph
	weights    FusionWeights
	prefs      []resolvedPreference
	pagerank   *PageRankResult
	hist       *UserHistory
	collab     *collaborativeState
	sets       *experienceSets
	inLocation map[graph.NodeID]struct{}
}

// score computes the recommendation for one candidate hotel.
func (sc *scoringContext) score(hotel graph.NodeID) Recommendation {
	node, _ := sc.g.Node(hotel)
	attrs, _ := node.Hotel()

	rec := Recommendation{
		NodeID:      hotel,
		HotelID:     attrs.HotelID,
		Name:        attrs.Name,
		HotelRating: attrs.RatingOr(0),
	}
	if loc, ok := sc.g.LocationOf(hotel); ok {
		rec.Location = loc.Attrs.DisplayName()
	}

	requested := make(map[graph.NodeID]struct{}, len(sc.prefs))
	ratings := make([]float64, 0, len(sc.prefs))
	weighted := make([]float64, 0, len(sc.prefs))
	for _, p := range sc.prefs {
		requested[p.node] = struct{}{}
		e, ok := sc.g.EdgeData(hotel, p.node)
		if !ok || e.Kind != graph.HasExperience {
			continue
		}
		rec.SelectedRatings = append(rec.SelectedRatings, SelectedRating{Rating: e.Rating, Importance: p.importance})
		ratings = append(ratings, e.Rating)
		weighted = append(weighted, e.Rating*float64(p.importance)/5)
	}
	for _, exp := range sc.g.NeighborsOfKind(hotel, graph.HasExperience) {
		if _, ok := requested[exp]; ok {
			continue
		}
		n, _ := sc.g.Node(exp)
		e, _ := sc.g.EdgeData(hotel, exp)
		rec.OtherExperiences = append(rec.OtherExperiences, ExperienceRating{Name: n.Attrs.DisplayName(), Rating: e.Rating})
	}

	s := &rec.Scores
	rec.ExperienceCount = len(ratings)
	if len(ratings) > 0 {
		s.AvgExperience = stat.Mean(ratings, nil)
		s.SelectedExperience = stat.Mean(weighted, nil)
	}
	s.PageRank = sc.pagerank.Score(hotel)
	s.NormalizedPageRank = sc.pagerank.Normalized(hotel)
	s.HotelRating = rec.HotelRating
	s.Collaborative = sc.collab.score(hotel)
	if _, ok := sc.inLocation[hotel]; ok {
		rec.IsInLocation = true
		s.LocationBonus = sc.weights.LocationBonus
	}

	w := sc.weights
	s.Base = w.AvgExperience*s.AvgExperience +
		w.SelectedExperience*s.SelectedExperience +
		w.PageRank*s.NormalizedPageRank +
		w.HotelRating*s.HotelRating +
		w.Collaborative*s.Collaborative

	if sc.hist != nil {
		s.History = historyScore(sc.sets, hotel, sc.hist)
		s.Final = s.Base*w.Base + s.History*w.History + s.LocationBonus
	} else {
		s.Final = s.Base + s.LocationBonus
	}

	rec.AvgExperienceRating = s.AvgExperience
	rec.FinalScore = s.Final
	return rec
}

// rankRecommendations sorts by final score descending, ties by ascending
// hotel node id.
func rankRecommendations(items []Recommendation) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].FinalScore != items[j].FinalScore {
			return items[i].FinalScore > items[j].FinalScore
		}
		return items[i].NodeID < items[j].NodeID
	})
}

// checkpoint reports an expired or cancelled context between phases.
func checkpoint(ctx context.Context, phase string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("recommendation %s phase: %w", phase, err)
	}
	return nil
}

// outcome classifies a request error for metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, graph.ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid"
	case errors.Is(err, ErrNoGraph):
		return "no_graph"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "error"
	}
}

// Experiences lists every experience ordered by experience id.
func (e *Engine) Experiences(_ context.Context) ([]ExperienceInfo, error) {
	snap := e.holder.Current()
	if snap == nil {
		return nil, ErrNoGraph
	}
	g := snap.Graph

	ids := g.NodesOfType(graph.NodeExperience)
	out := make([]ExperienceInfo, 0, len(ids))
	for _, id := range ids {
		n, _ := g.Node(id)
		exp, _ := n.Experience()
		out = append(out, ExperienceInfo{ID: exp.ExperienceID, Name: exp.Name, Description: exp.Description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// HotelDetails describes the hotel with the given external id.
func (e *Engine) HotelDetails(_ context.Context, hotelID int64) (*HotelDetails, error) {
	snap := e.holder.Current()
	if snap == nil {
		return nil, ErrNoGraph
	}
	g := snap.Graph

	n, ok := g.HotelByExternalID(hotelID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrHotelNotFound, hotelID)
	}
	h, _ := n.Hotel()

	details := &HotelDetails{
		ID:          h.HotelID,
		Name:        h.Name,
		Rating:      h.Rating,
		Experiences: []ExperienceRating{},
	}
	if loc, ok := g.LocationOf(n.ID); ok {
		details.Location = loc.Attrs.DisplayName()
	}
	for _, exp := range g.NeighborsOfKind(n.ID, graph.HasExperience) {
		en, _ := g.Node(exp)
		edge, _ := g.EdgeData(n.ID, exp)
		details.Experiences = append(details.Experiences, ExperienceRating{Name: en.Attrs.DisplayName(), Rating: edge.Rating})
	}
	return details, nil
}

// Status summarizes the published graph snapshot.
func (e *Engine) Status() (*GraphStatus, error) {
	snap := e.holder.Current()
	if snap == nil {
		return nil, ErrNoGraph
	}
	stats := snap.Graph.Stats()

	status := &GraphStatus{
		Version:  snap.Version,
		LoadedAt: snap.LoadedAt.UTC().Format(time.RFC3339),
		Source:   snap.Source,
		Nodes:    stats.Nodes,
		Edges:    stats.Edges,
		ByType:   make(map[string]int, len(stats.NodeCounts)),
		ByKind:   make(map[string]int, len(stats.EdgeCounts)),
	}
	for t, n := range stats.NodeCounts {
		status.ByType[t.String()] = n
	}
	for k, n := range stats.EdgeCounts {
		status.ByKind[string(k)] = n
	}
	return status, nil
}

// Warm computes PageRank for the current snapshot so the first request after
// a reload does not pay for it.
func (e *Engine) Warm(ctx context.Context) error {
	snap := e.holder.Current()
	if snap == nil {
		return ErrNoGraph
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e.pagerank.get(snap)
	return nil
}

// Stats returns cumulative request counters.
func (e *Engine) Stats() EngineStats {
	return EngineStats{
		Requests:     e.requestCount.Load(),
		Errors:       e.errorCount.Load(),
		UnknownUsers: e.unknownUsers.Load(),
	}
}

// GetConfig returns a copy of the engine configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}
