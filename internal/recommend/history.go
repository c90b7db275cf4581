// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package recommend

import (
	"github.com/tomtom215/staygraph/internal/graph"
)

// UserHistory is a guest's past stays and liked experiences.
type UserHistory struct {
	User graph.NodeID
	// HotelRatings maps stayed-at hotels to the guest's rating (0 if unrated).
	HotelRatings map[graph.NodeID]float64
	// Hotels lists the stayed-at hotels in ascending id order.
	Hotels []graph.NodeID
	// Liked is the set of experiences the guest likes.
	Liked map[graph.NodeID]struct{}
}

// HasStays reports whether the guest stayed at any hotel. Liked experiences
// alone do not count.
func (h *UserHistory) HasStays() bool {
	return h != nil && len(h.HotelRatings) > 0
}

// LoadUserHistory collects the STAYED_AT and LIKES edges of user.
func LoadUserHistory(g *graph.Graph, user graph.NodeID) *UserHistory {
	h := &UserHistory{
		User:         user,
		HotelRatings: make(map[graph.NodeID]float64),
		Liked:        make(map[graph.NodeID]struct{}),
	}
	for _, nb := range g.Neighbors(user) {
		e, _ := g.EdgeData(user, nb)
		switch e.Kind {
		case graph.StayedAt:
			h.HotelRatings[nb] = e.Rating
			h.Hotels = append(h.Hotels, nb)
		case graph.Likes:
			h.Liked[nb] = struct{}{}
		}
	}
	return h
}

// experienceSets memoizes the experience set of each hotel for one request.
type experienceSets struct {
	g    *graph.Graph
	sets map[graph.NodeID]map[graph.NodeID]struct{}
}

func newExperienceSets(g *graph.Graph) *experienceSets {
	return &experienceSets{g: g, sets: make(map[graph.NodeID]map[graph.NodeID]struct{})}
}

func (s *experienceSets) of(hotel graph.NodeID) map[graph.NodeID]struct{} {
	if set, ok := s.sets[hotel]; ok {
		return set
	}
	set := make(map[graph.NodeID]struct{})
	for _, e := range s.g.NeighborsOfKind(hotel, graph.HasExperience) {
		set[e] = struct{}{}
	}
	s.sets[hotel] = set
	return set
}

// HistoryScore estimates how well hotel matches the guest's history.
//
// The rating source averages, over every stayed-at hotel, the Jaccard
// similarity of the two hotels' experience sets scaled by rating/5. The like
// source is the share of liked experiences the hotel offers. The result is
// the mean of the sources that are present, 0 when neither is.
func HistoryScore(g *graph.Graph, hotel graph.NodeID, hist *UserHistory) float64 {
	return historyScore(newExperienceSets(g), hotel, hist)
}

func historyScore(sets *experienceSets, hotel graph.NodeID, hist *UserHistory) float64 {
	if hist == nil {
		return 0
	}
	target := sets.of(hotel)

	var total float64
	var sources int

	if len(hist.Hotels) > 0 {
		var sum float64
		for _, prior := range hist.Hotels {
			sum += jaccard(target, sets.of(prior)) * hist.HotelRatings[prior] / 5
		}
		total += sum / float64(len(hist.Hotels))
		sources++
	}

	if len(hist.Liked) > 0 {
		total += float64(intersection(target, hist.Liked)) / float64(len(hist.Liked))
		sources++
	}

	if sources == 0 {
		return 0
	}
	return total / float64(sources)
}

func intersection(a, b map[graph.NodeID]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

func jaccard(a, b map[graph.NodeID]struct{}) float64 {
	inter := intersection(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
