// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package recommend

import (
	"errors"
	"math"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/staygraph/internal/graph"
	"github.com/tomtom215/staygraph/internal/metrics"
)

// Fallback reasons reported by ComputePageRank.
const (
	fallbackEmptyGraph          = "empty_graph"
	fallbackZeroPersonalization = "zero_personalization"
	fallbackNonFinite           = "non_finite"
	fallbackNoConvergence       = "no_convergence"
)

// PageRankResult holds PageRank scores for one graph.
type PageRankResult struct {
	Scores map[graph.NodeID]float64
	// Max is the largest score across all nodes.
	Max        float64
	Iterations int
	// Fallback is empty when the iteration converged; otherwise Scores holds
	// the raw personalization vector and Fallback names the reason.
	Fallback string
	Duration time.Duration
}

// Score returns the PageRank score of id, 0 if unknown.
func (r *PageRankResult) Score(id graph.NodeID) float64 {
	return r.Scores[id]
}

// Normalized scales the score of id to 0-10 relative to the maximum score.
func (r *PageRankResult) Normalized(id graph.NodeID) float64 {
	if r.Max <= 0 {
		return 0
	}
	return r.Scores[id] / r.Max * 10
}

// Personalization returns the personalization weight of every node, keyed by
// node id. Hotels weigh their own rating, experiences the mean weight of
// their hotels, everything else defaultWeight.
func Personalization(g *graph.Graph, defaultWeight float64) map[graph.NodeID]float64 {
	hotelWeight := func(id graph.NodeID) float64 {
		n, _ := g.Node(id)
		h, _ := n.Hotel()
		return h.RatingOr(defaultWeight)
	}

	out := make(map[graph.NodeID]float64, g.Len())
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		switch n.Type() {
		case graph.NodeHotel:
			out[id] = hotelWeight(id)
		case graph.NodeExperience:
			hotels := g.NeighborsOfKind(id, graph.HasExperience)
			if len(hotels) == 0 {
				out[id] = defaultWeight
				continue
			}
			w := make([]float64, len(hotels))
			for i, h := range hotels {
				w[i] = hotelWeight(h)
			}
			out[id] = floats.Sum(w) / float64(len(w))
		default:
			out[id] = defaultWeight
		}
	}
	return out
}

// ComputePageRank runs personalized weighted PageRank by power iteration.
//
// Each undirected edge is walked in both directions with its rating as the
// transition weight (1.0 when unrated). Mass on nodes without outgoing weight
// is redistributed by the personalization vector.
//
// When the iteration cannot produce a valid distribution, the returned result
// carries the raw personalization vector and the error is a
// *ComputationError. The result is never nil.
func ComputePageRank(g *graph.Graph, cfg PageRankConfig) (*PageRankResult, error) {
	start := time.Now()
	ids := g.NodeIDs()
	n := len(ids)

	pers := Personalization(g, cfg.DefaultWeight)
	raw := make([]float64, n)
	for i, id := range ids {
		raw[i] = pers[id]
	}

	fallback := func(reason string, iterations int) (*PageRankResult, error) {
		res := newResult(ids, raw)
		res.Iterations = iterations
		res.Fallback = reason
		res.Duration = time.Since(start)
		return res, &ComputationError{Reason: reason, Iterations: iterations}
	}

	if n == 0 {
		return fallback(fallbackEmptyGraph, 0)
	}
	total := floats.Sum(raw)
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return fallback(fallbackZeroPersonalization, 0)
	}
	p := make([]float64, n)
	floats.ScaleTo(p, 1/total, raw)

	index := make(map[graph.NodeID]int, n)
	for i, id := range ids {
		index[id] = i
	}
	targets, probs, dangling := transitions(g, ids, index)

	alpha := cfg.Damping
	x := make([]float64, n)
	for i := range x {
		x[i] = 1 / float64(n)
	}
	next := make([]float64, n)

	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		danglingMass := 0.0
		for _, i := range dangling {
			danglingMass += x[i]
		}

		for i := range next {
			next[i] = 0
		}
		for i := range x {
			xi := alpha * x[i]
			for k, j := range targets[i] {
				next[j] += xi * probs[i][k]
			}
		}
		floats.AddScaled(next, alpha*danglingMass+(1-alpha), p)

		if !allFinite(next) {
			return fallback(fallbackNonFinite, iter)
		}

		change := floats.Distance(next, x, 1)
		x, next = next, x
		if change < cfg.Tolerance {
			res := newResult(ids, x)
			res.Iterations = iter
			res.Duration = time.Since(start)
			return res, nil
		}
	}

	return fallback(fallbackNoConvergence, cfg.MaxIterations)
}

// transitions builds row-normalized adjacency lists in ascending id order.
func transitions(g *graph.Graph, ids []graph.NodeID, index map[graph.NodeID]int) ([][]int, [][]float64, []int) {
	targets := make([][]int, len(ids))
	probs := make([][]float64, len(ids))
	var dangling []int

	for i, id := range ids {
		neighbors := g.Neighbors(id)
		weights := make([]float64, len(neighbors))
		for k, nb := range neighbors {
			e, _ := g.EdgeData(id, nb)
			weights[k] = e.Weight()
		}
		out := floats.Sum(weights)
		if out <= 0 {
			dangling = append(dangling, i)
			continue
		}
		targets[i] = make([]int, 0, len(neighbors))
		probs[i] = make([]float64, 0, len(neighbors))
		for k, nb := range neighbors {
			if weights[k] == 0 {
				continue
			}
			targets[i] = append(targets[i], index[nb])
			probs[i] = append(probs[i], weights[k]/out)
		}
	}
	return targets, probs, dangling
}

func newResult(ids []graph.NodeID, values []float64) *PageRankResult {
	res := &PageRankResult{Scores: make(map[graph.NodeID]float64, len(ids))}
	for i, id := range ids {
		res.Scores[id] = values[i]
	}
	if len(values) > 0 {
		res.Max = floats.Max(values)
	}
	return res
}

func allFinite(v []float64) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// pageRankCache keeps PageRank results per graph version. Concurrent misses
// for one version share a single computation.
type pageRankCache struct {
	cfg     PageRankConfig
	entries *lru.Cache[uint64, *PageRankResult]
	group   singleflight.Group
	logger  zerolog.Logger
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newPageRankCache(cfg PageRankConfig, size int, logger zerolog.Logger) (*pageRankCache, error) {
	entries, err := lru.New[uint64, *PageRankResult](size)
	if err != nil {
		return nil, err
	}
	return &pageRankCache{cfg: cfg, entries: entries, logger: logger}, nil
}

// get returns the PageRank result for snap and whether it came from cache.
func (c *pageRankCache) get(snap *graph.Snapshot) (*PageRankResult, bool) {
	if res, ok := c.entries.Get(snap.Version); ok {
		metrics.RecordPageRankCache(true)
		return res, true
	}
	metrics.RecordPageRankCache(false)

	v, _, _ := c.group.Do(strconv.FormatUint(snap.Version, 10), func() (any, error) {
		if res, ok := c.entries.Peek(snap.Version); ok {
			return res, nil
		}
		res, err := ComputePageRank(snap.Graph, c.cfg)
		metrics.RecordPageRank(res.Duration, res.Iterations, res.Fallback)

		var compErr *ComputationError
		if errors.As(err, &compErr) {
			c.logger.Warn().
				Err(err).
				Uint64("graph_version", snap.Version).
				Str("reason", compErr.Reason).
				Msg("pagerank fell back to personalization vector")
		} else {
			c.logger.Debug().
				Uint64("graph_version", snap.Version).
				Int("iterations", res.Iterations).
				Dur("duration", res.Duration).
				Msg("pagerank computed")
		}

		c.entries.Add(snap.Version, res)
		return res, nil
	})
	return v.(*PageRankResult), false
}
