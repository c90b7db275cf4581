// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package graph

import "strings"

// NodeID is the unique integer identifier of a node across all node types.
type NodeID int64

// NodeType classifies nodes.
type NodeType uint8

const (
	// NodeUnknown is the zero value and never stored.
	NodeUnknown NodeType = iota
	// NodeHotel is a bookable hotel.
	NodeHotel
	// NodeExperience is an experience a hotel offers (spa, beach, ...).
	NodeExperience
	// NodeLocation is a geographic location hotels are located in.
	NodeLocation
	// NodeUser is a guest with stay and like history.
	NodeUser
)

// String returns the label used in logs and metrics.
func (t NodeType) String() string {
	switch t {
	case NodeHotel:
		return "hotel"
	case NodeExperience:
		return "experience"
	case NodeLocation:
		return "location"
	case NodeUser:
		return "user"
	default:
		return "unknown"
	}
}

// NodeTypes lists every storable node type in a fixed order.
var NodeTypes = []NodeType{NodeHotel, NodeExperience, NodeLocation, NodeUser}

// RelationKind is the kind of an edge.
type RelationKind string

const (
	HasExperience RelationKind = "HAS_EXPERIENCE"
	StayedAt      RelationKind = "STAYED_AT"
	Likes         RelationKind = "LIKES"
	LocatedIn     RelationKind = "LOCATED_IN"
)

// RelationKinds lists every relation kind in a fixed order.
var RelationKinds = []RelationKind{HasExperience, StayedAt, Likes, LocatedIn}

// endpoints returns the node type pair a kind may join, in canonical order.
func (k RelationKind) endpoints() (NodeType, NodeType, bool) {
	switch k {
	case HasExperience:
		return NodeHotel, NodeExperience, true
	case StayedAt:
		return NodeUser, NodeHotel, true
	case Likes:
		return NodeUser, NodeExperience, true
	case LocatedIn:
		return NodeHotel, NodeLocation, true
	default:
		return NodeUnknown, NodeUnknown, false
	}
}

// Rated reports whether edges of this kind may carry a rating.
func (k RelationKind) Rated() bool {
	return k == HasExperience || k == StayedAt
}

// Attributes is the closed set of node attribute variants.
// Implementations are Hotel, Experience, Location and User.
type Attributes interface {
	Type() NodeType
	DisplayName() string
}

// Hotel attributes.
type Hotel struct {
	Name string `json:"name"`
	// Rating is the hotel's own rating on a 0-10 scale; nil when unrated.
	Rating *float64 `json:"rating,omitempty"`
	// HotelID is the external hotel key.
	HotelID int64 `json:"hotel_id"`
}

// Type implements Attributes.
func (Hotel) Type() NodeType { return NodeHotel }

// DisplayName implements Attributes.
func (h Hotel) DisplayName() string { return h.Name }

// RatingOr returns the hotel rating, or def when the hotel is unrated.
func (h Hotel) RatingOr(def float64) float64 {
	if h.Rating == nil {
		return def
	}
	return *h.Rating
}

// Experience attributes.
type Experience struct {
	Name         string `json:"name"`
	ExperienceID int64  `json:"experience_id"`
	Description  string `json:"description,omitempty"`
}

// Type implements Attributes.
func (Experience) Type() NodeType { return NodeExperience }

// DisplayName implements Attributes.
func (e Experience) DisplayName() string { return e.Name }

// Location attributes.
type Location struct {
	Name       string `json:"name"`
	LocationID int64  `json:"location_id"`
}

// Type implements Attributes.
func (Location) Type() NodeType { return NodeLocation }

// DisplayName implements Attributes.
func (l Location) DisplayName() string { return l.Name }

// User attributes.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Type implements Attributes.
func (User) Type() NodeType { return NodeUser }

// DisplayName implements Attributes.
func (u User) DisplayName() string { return u.Name }

// NormalizeEmail returns the lookup key for an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Node is a graph vertex with its attributes.
type Node struct {
	ID    NodeID
	Attrs Attributes
}

// Type returns the node's type.
func (n Node) Type() NodeType {
	if n.Attrs == nil {
		return NodeUnknown
	}
	return n.Attrs.Type()
}

// Hotel returns the hotel attributes if n is a hotel.
func (n Node) Hotel() (Hotel, bool) {
	h, ok := n.Attrs.(Hotel)
	return h, ok
}

// Experience returns the experience attributes if n is an experience.
func (n Node) Experience() (Experience, bool) {
	e, ok := n.Attrs.(Experience)
	return e, ok
}

// Location returns the location attributes if n is a location.
func (n Node) Location() (Location, bool) {
	l, ok := n.Attrs.(Location)
	return l, ok
}

// User returns the user attributes if n is a user.
func (n Node) User() (User, bool) {
	u, ok := n.Attrs.(User)
	return u, ok
}

// Edge is the payload stored for an undirected edge.
type Edge struct {
	Kind      RelationKind
	Rating    float64
	HasRating bool
}

// Weight is the transition weight used by link analysis: the rating when
// present, 1.0 otherwise.
func (e Edge) Weight() float64 {
	if e.HasRating {
		return e.Rating
	}
	return 1.0
}

// EdgeRecord is an edge with its endpoints, U < V.
type EdgeRecord struct {
	U, V NodeID
	Edge
}

// Stats summarizes graph size.
type Stats struct {
	Nodes      int                  `json:"nodes"`
	Edges      int                  `json:"edges"`
	NodeCounts map[NodeType]int     `json:"-"`
	EdgeCounts map[RelationKind]int `json:"-"`
}
