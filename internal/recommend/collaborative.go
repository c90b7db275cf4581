// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package recommend

import (
	"math"
	"sort"

	"github.com/tomtom215/staygraph/internal/graph"
)

// CollaborativeScorer estimates a guest's rating of a hotel from other
// guests' ratings.
type CollaborativeScorer struct {
	cfg CollaborativeConfig
}

// NewCollaborativeScorer creates a scorer for the configured mode.
//
//nolint:gocritic // config passed by value for immutability
func NewCollaborativeScorer(cfg CollaborativeConfig) CollaborativeScorer {
	return CollaborativeScorer{cfg: cfg}
}

// similarUser is a neighbor in similar_users mode.
type similarUser struct {
	id         graph.NodeID
	similarity float64
}

// collaborativeState is the per-request state of a scorer. In similar_users
// mode the neighborhood depends only on the requester and is built once.
type collaborativeState struct {
	scorer    CollaborativeScorer
	g         *graph.Graph
	hist      *UserHistory
	neighbors []similarUser
}

// prepare binds the scorer to a graph and an optional requester history.
// A nil history scores every hotel 0.
func (s CollaborativeScorer) prepare(g *graph.Graph, hist *UserHistory) *collaborativeState {
	st := &collaborativeState{scorer: s, g: g, hist: hist}
	if hist != nil && s.cfg.Mode == ModeSimilarUsers && hist.HasStays() {
		st.neighbors = s.similarUsers(g, hist)
	}
	return st
}

// Score returns the collaborative signal for hotel given the requester.
func (s CollaborativeScorer) Score(g *graph.Graph, hotel graph.NodeID, hist *UserHistory) float64 {
	return s.prepare(g, hist).score(hotel)
}

func (st *collaborativeState) score(hotel graph.NodeID) float64 {
	if st.hist == nil {
		return 0
	}
	if st.scorer.cfg.Mode == ModeSimilarUsers {
		return st.neighborhoodScore(hotel)
	}
	return st.cooccurrenceScore(hotel)
}

// cooccurrenceScore is the mean rating other guests gave hotel, damped by how
// many guests contributed. Without any other guest it falls back to the
// hotel's own rating times FallbackFactor.
func (st *collaborativeState) cooccurrenceScore(hotel graph.NodeID) float64 {
	cfg := st.scorer.cfg

	var sum float64
	var count int
	for _, guest := range st.g.NeighborsOfKind(hotel, graph.StayedAt) {
		if guest == st.hist.User {
			continue
		}
		e, _ := st.g.EdgeData(guest, hotel)
		sum += e.Rating
		count++
	}

	if count == 0 {
		n, _ := st.g.Node(hotel)
		h, _ := n.Hotel()
		return h.RatingOr(0) * cfg.FallbackFactor
	}

	mean := sum / float64(count)
	confidence := math.Min(float64(count)/float64(cfg.SaturationCount), 1.0)*0.5 + 0.5
	return mean * confidence
}

// neighborhoodScore is the similarity-weighted mean rating of hotel among the
// requester's most similar guests that stayed there.
func (st *collaborativeState) neighborhoodScore(hotel graph.NodeID) float64 {
	var weighted, weight float64
	for _, u := range st.neighbors {
		e, ok := st.g.EdgeData(u.id, hotel)
		if !ok || e.Kind != graph.StayedAt {
			continue
		}
		weighted += e.Rating * u.similarity
		weight += u.similarity
	}
	if weight <= 0 {
		return 0
	}
	return weighted / weight
}

// similarUsers ranks every other guest by mean absolute rating difference on
// co-stayed hotels plus SharedLikeWeight per shared liked experience, keeping
// the TopUsers guests with positive similarity.
func (s CollaborativeScorer) similarUsers(g *graph.Graph, hist *UserHistory) []similarUser {
	var out []similarUser
	for _, id := range g.NodesOfType(graph.NodeUser) {
		if id == hist.User {
			continue
		}
		other := LoadUserHistory(g, id)

		var similarity, diff float64
		var common int
		for _, h := range other.Hotels {
			if mine, ok := hist.HotelRatings[h]; ok {
				diff += math.Abs(other.HotelRatings[h] - mine)
				common++
			}
		}
		if common > 0 {
			similarity += diff / float64(common)
		}
		similarity += float64(intersection(other.Liked, hist.Liked)) * s.cfg.SharedLikeWeight

		if similarity > 0 {
			out = append(out, similarUser{id: id, similarity: similarity})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].similarity != out[j].similarity {
			return out[i].similarity > out[j].similarity
		}
		return out[i].id < out[j].id
	})
	if len(out) > s.cfg.TopUsers {
		out = out[:s.cfg.TopUsers]
	}
	return out
}
