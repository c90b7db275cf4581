// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package graph

import (
	"math"
	"slices"
)

// Graph is an undirected typed graph with at most one edge per node pair.
//
// A Graph is not safe for concurrent mutation. After Freeze it is read-only
// and safe for concurrent readers.
type Graph struct {
	nodes map[NodeID]Node
	adj   map[NodeID]map[NodeID]Edge

	byType map[NodeType][]NodeID
	// sorted neighbor lists, built by Freeze
	sortedAdj map[NodeID][]NodeID

	experienceIdx map[int64]NodeID
	emailIdx      map[string]NodeID
	hotelIdx      map[int64]NodeID
	locationIdx   map[int64]NodeID
	hotelLocation map[NodeID]NodeID

	edgeCounts map[RelationKind]int
	edgeTotal  int
	frozen     bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:         make(map[NodeID]Node),
		adj:           make(map[NodeID]map[NodeID]Edge),
		byType:        make(map[NodeType][]NodeID),
		experienceIdx: make(map[int64]NodeID),
		emailIdx:      make(map[string]NodeID),
		hotelIdx:      make(map[int64]NodeID),
		locationIdx:   make(map[int64]NodeID),
		hotelLocation: make(map[NodeID]NodeID),
		edgeCounts:    make(map[RelationKind]int),
	}
}

// AddNode inserts a node. Duplicate node ids and duplicate external keys
// (experience id, email, hotel id, location id) are rejected.
func (g *Graph) AddNode(id NodeID, attrs Attributes) error {
	if g.frozen {
		return ErrFrozen
	}
	if attrs == nil {
		return invalid("add_node", "node %d has no attributes", id)
	}
	if _, exists := g.nodes[id]; exists {
		return invalid("add_node", "duplicate node id %d", id)
	}

	switch a := attrs.(type) {
	case Hotel:
		if a.Rating != nil {
			r := *a.Rating
			if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 || r > 10 {
				return invalid("add_node", "hotel %d rating %v outside [0, 10]", id, r)
			}
		}
		if prev, dup := g.hotelIdx[a.HotelID]; dup {
			return invalid("add_node", "hotel id %d already used by node %d", a.HotelID, prev)
		}
		g.hotelIdx[a.HotelID] = id
	case Experience:
		if prev, dup := g.experienceIdx[a.ExperienceID]; dup {
			return invalid("add_node", "experience id %d already used by node %d", a.ExperienceID, prev)
		}
		g.experienceIdx[a.ExperienceID] = id
	case Location:
		if prev, dup := g.locationIdx[a.LocationID]; dup {
			return invalid("add_node", "location id %d already used by node %d", a.LocationID, prev)
		}
		g.locationIdx[a.LocationID] = id
	case User:
		key := NormalizeEmail(a.Email)
		if key == "" {
			return invalid("add_node", "user %d has empty email", id)
		}
		if prev, dup := g.emailIdx[key]; dup {
			return invalid("add_node", "email %q already used by node %d", a.Email, prev)
		}
		g.emailIdx[key] = id
	default:
		return invalid("add_node", "node %d has unsupported attributes %T", id, attrs)
	}

	g.nodes[id] = Node{ID: id, Attrs: attrs}
	g.byType[attrs.Type()] = append(g.byType[attrs.Type()], id)
	return nil
}

// AddEdge inserts an undirected edge between u and v. The rating must be nil
// for LIKES and LOCATED_IN.
func (g *Graph) AddEdge(u, v NodeID, kind RelationKind, rating *float64) error {
	if g.frozen {
		return ErrFrozen
	}
	want1, want2, ok := kind.endpoints()
	if !ok {
		return invalid("add_edge", "unknown relation kind %q", kind)
	}
	nu, ok := g.nodes[u]
	if !ok {
		return invalid("add_edge", "%s edge references missing node %d", kind, u)
	}
	nv, ok := g.nodes[v]
	if !ok {
		return invalid("add_edge", "%s edge references missing node %d", kind, v)
	}
	tu, tv := nu.Type(), nv.Type()
	if !(tu == want1 && tv == want2) && !(tu == want2 && tv == want1) {
		return invalid("add_edge", "%s cannot join %s %d and %s %d", kind, tu, u, tv, v)
	}
	if _, exists := g.adj[u][v]; exists {
		return invalid("add_edge", "duplicate edge between %d and %d", u, v)
	}

	e := Edge{Kind: kind}
	if rating != nil {
		if !kind.Rated() {
			return invalid("add_edge", "%s edge %d-%d must not carry a rating", kind, u, v)
		}
		r := *rating
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
			return invalid("add_edge", "%s edge %d-%d has invalid rating %v", kind, u, v, r)
		}
		e.Rating, e.HasRating = r, true
	}

	if kind == LocatedIn {
		hotel := u
		if tu != NodeHotel {
			hotel = v
		}
		if prev, dup := g.hotelLocation[hotel]; dup {
			return invalid("add_edge", "hotel %d already located in %d", hotel, prev)
		}
		g.hotelLocation[hotel] = u + v - hotel
	}

	g.link(u, v, e)
	g.link(v, u, e)
	g.edgeCounts[kind]++
	g.edgeTotal++
	return nil
}

func (g *Graph) link(from, to NodeID, e Edge) {
	m, ok := g.adj[from]
	if !ok {
		m = make(map[NodeID]Edge)
		g.adj[from] = m
	}
	m[to] = e
}

// Freeze makes the graph read-only and precomputes sorted indexes.
// Calling Freeze more than once is a no-op.
func (g *Graph) Freeze() {
	if g.frozen {
		return
	}
	for t := range g.byType {
		slices.Sort(g.byType[t])
	}
	g.sortedAdj = make(map[NodeID][]NodeID, len(g.adj))
	for id, m := range g.adj {
		g.sortedAdj[id] = sortedKeys(m)
	}
	g.frozen = true
}

// Frozen reports whether Freeze has been called.
func (g *Graph) Frozen() bool { return g.frozen }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return g.edgeTotal }

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Neighbors returns the ids adjacent to id in ascending order.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	if g.frozen {
		return g.sortedAdj[id]
	}
	return sortedKeys(g.adj[id])
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v NodeID) bool {
	_, ok := g.adj[u][v]
	return ok
}

// EdgeData returns the edge between u and v.
func (g *Graph) EdgeData(u, v NodeID) (Edge, bool) {
	e, ok := g.adj[u][v]
	return e, ok
}

// NodesOfType returns the ids of all nodes of type t in ascending order.
// The returned slice must not be modified.
func (g *Graph) NodesOfType(t NodeType) []NodeID {
	if g.frozen {
		return g.byType[t]
	}
	ids := slices.Clone(g.byType[t])
	slices.Sort(ids)
	return ids
}

// NodeIDs returns every node id in ascending order.
func (g *Graph) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// FindNode returns the first node of type t, in ascending id order, that
// satisfies match.
func (g *Graph) FindNode(t NodeType, match func(Node) bool) (Node, bool) {
	for _, id := range g.NodesOfType(t) {
		n := g.nodes[id]
		if match(n) {
			return n, true
		}
	}
	return Node{}, false
}

// NeighborsOfKind returns the neighbors of id joined by an edge of kind,
// in ascending order.
func (g *Graph) NeighborsOfKind(id NodeID, kind RelationKind) []NodeID {
	var out []NodeID
	for _, n := range g.Neighbors(id) {
		if g.adj[id][n].Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// ExperienceByExternalID resolves an experience by its external id.
func (g *Graph) ExperienceByExternalID(experienceID int64) (Node, bool) {
	return g.lookup(g.experienceIdx, experienceID)
}

// HotelByExternalID resolves a hotel by its external id.
func (g *Graph) HotelByExternalID(hotelID int64) (Node, bool) {
	return g.lookup(g.hotelIdx, hotelID)
}

// LocationByExternalID resolves a location by its external id.
func (g *Graph) LocationByExternalID(locationID int64) (Node, bool) {
	return g.lookup(g.locationIdx, locationID)
}

// UserByEmail resolves a user by email, ignoring case and surrounding space.
func (g *Graph) UserByEmail(email string) (Node, bool) {
	id, ok := g.emailIdx[NormalizeEmail(email)]
	if !ok {
		return Node{}, false
	}
	return g.nodes[id], true
}

// LocationOf returns the location a hotel is located in.
func (g *Graph) LocationOf(hotel NodeID) (Node, bool) {
	id, ok := g.hotelLocation[hotel]
	if !ok {
		return Node{}, false
	}
	return g.nodes[id], true
}

func (g *Graph) lookup(idx map[int64]NodeID, key int64) (Node, bool) {
	id, ok := idx[key]
	if !ok {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Edges returns every edge once, ordered by (U, V) with U < V.
func (g *Graph) Edges() []EdgeRecord {
	out := make([]EdgeRecord, 0, g.edgeTotal)
	for _, u := range g.NodeIDs() {
		for _, v := range g.Neighbors(u) {
			if u < v {
				out = append(out, EdgeRecord{U: u, V: v, Edge: g.adj[u][v]})
			}
		}
	}
	return out
}

// Stats returns node counts per type and edge counts per kind.
func (g *Graph) Stats() Stats {
	s := Stats{
		Nodes:      len(g.nodes),
		Edges:      g.edgeTotal,
		NodeCounts: make(map[NodeType]int, len(NodeTypes)),
		EdgeCounts: make(map[RelationKind]int, len(RelationKinds)),
	}
	for _, t := range NodeTypes {
		s.NodeCounts[t] = len(g.byType[t])
	}
	for _, k := range RelationKinds {
		s.EdgeCounts[k] = g.edgeCounts[k]
	}
	return s
}

func sortedKeys(m map[NodeID]Edge) []NodeID {
	keys := make([]NodeID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
