// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package recommend

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/staygraph/internal/graph"
)

func ptr(f float64) *float64 { return &f }

func i64(v int64) *int64 { return &v }

// builder wraps graph construction with fatal-on-error helpers.
type builder struct {
	t *testing.T
	g *graph.Graph
}

func newBuilder(t *testing.T) *builder {
	t.Helper()
	return &builder{t: t, g: graph.New()}
}

func (b *builder) hotel(id graph.NodeID, name string, rating *float64) *builder {
	b.t.Helper()
	b.node(id, graph.Hotel{Name: name, Rating: rating, HotelID: int64(id)})
	return b
}

func (b *builder) experience(id graph.NodeID, name string, expID int64) *builder {
	b.t.Helper()
	b.node(id, graph.Experience{Name: name, ExperienceID: expID})
	return b
}

func (b *builder) location(id graph.NodeID, name string, locID int64) *builder {
	b.t.Helper()
	b.node(id, graph.Location{Name: name, LocationID: locID})
	return b
}

func (b *builder) user(id graph.NodeID, email string) *builder {
	b.t.Helper()
	b.node(id, graph.User{Name: email, Email: email})
	return b
}

func (b *builder) node(id graph.NodeID, a graph.Attributes) {
	b.t.Helper()
	if err := b.g.AddNode(id, a); err != nil {
		b.t.Fatalf("AddNode(%d) error = %v", id, err)
	}
}

func (b *builder) edge(u, v graph.NodeID, kind graph.RelationKind, rating *float64) *builder {
	b.t.Helper()
	if err := b.g.AddEdge(u, v, kind, rating); err != nil {
		b.t.Fatalf("AddEdge(%d, %d) error = %v", u, v, err)
	}
	return b
}

func (b *builder) offers(hotel, exp graph.NodeID, rating float64) *builder {
	b.t.Helper()
	return b.edge(hotel, exp, graph.HasExperience, ptr(rating))
}

func (b *builder) stayed(user, hotel graph.NodeID, rating float64) *builder {
	b.t.Helper()
	return b.edge(user, hotel, graph.StayedAt, ptr(rating))
}

func (b *builder) likes(user, exp graph.NodeID) *builder {
	b.t.Helper()
	return b.edge(user, exp, graph.Likes, nil)
}

func (b *builder) locatedIn(hotel, loc graph.NodeID) *builder {
	b.t.Helper()
	return b.edge(hotel, loc, graph.LocatedIn, nil)
}

// engine publishes the graph and returns an engine with cfg (defaults if nil).
func (b *builder) engine(cfg *Config) (*Engine, *graph.Holder) {
	b.t.Helper()
	holder := graph.NewHolder()
	holder.Swap(b.g, "test")
	e, err := NewEngine(holder, cfg, zerolog.Nop())
	if err != nil {
		b.t.Fatalf("NewEngine() error = %v", err)
	}
	return e, holder
}

// scenarioGraph is the two-hotel scenario: H1 (8.0) and H2 (6.0) both offer
// experience 1, rated 9.0 and 5.0.
func scenarioGraph(t *testing.T) *builder {
	t.Helper()
	return newBuilder(t).
		hotel(1, "H1", ptr(8)).
		hotel(2, "H2", ptr(6)).
		experience(10, "E1", 1).
		offers(1, 10, 9).
		offers(2, 10, 5)
}

// resortGraph is a richer graph with locations, guests and several
// experiences.
//
//	hotels:      1 Sea (9), 2 Pine (7), 3 Dune (unrated), 4 Peak (6), 5 Bay (8), 6 Cove (5)
//	experiences: 10 Spa (id 1), 11 Beach (id 2), 12 Hiking (id 3), 13 Golf (id 4)
//	locations:   20 Antalya (id 100), 21 Bodrum (id 200)
//	users:       30 ada, 31 bob, 32 cem, 33 deniz
func resortGraph(t *testing.T) *builder {
	t.Helper()
	b := newBuilder(t).
		hotel(1, "Sea", ptr(9)).
		hotel(2, "Pine", ptr(7)).
		hotel(3, "Dune", nil).
		hotel(4, "Peak", ptr(6)).
		hotel(5, "Bay", ptr(8)).
		hotel(6, "Cove", ptr(5)).
		experience(10, "Spa", 1).
		experience(11, "Beach", 2).
		experience(12, "Hiking", 3).
		experience(13, "Golf", 4).
		location(20, "Antalya", 100).
		location(21, "Bodrum", 200).
		user(30, "ada@example.com").
		user(31, "bob@example.com").
		user(32, "cem@example.com").
		user(33, "deniz@example.com")

	b.offers(1, 10, 8).offers(1, 11, 9).
		offers(2, 10, 6).offers(2, 12, 8).
		offers(3, 11, 7).offers(3, 13, 6).
		offers(4, 12, 9).offers(4, 10, 4).
		offers(5, 10, 7).offers(5, 11, 7).offers(5, 13, 8).
		offers(6, 11, 5)

	b.locatedIn(1, 20).locatedIn(2, 20).locatedIn(3, 21).locatedIn(5, 21)

	b.stayed(30, 1, 5).stayed(30, 2, 3).likes(30, 11).
		stayed(31, 1, 4).stayed(31, 5, 5).likes(31, 11).likes(31, 13).
		stayed(32, 2, 2).stayed(32, 4, 5).likes(32, 12).
		stayed(33, 5, 4).stayed(33, 3, 3)
	return b
}
