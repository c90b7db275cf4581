// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package recommend

import (
	"strings"

	"github.com/tomtom215/staygraph/internal/graph"
)

// Preference is one requested experience with its importance (1-5).
type Preference struct {
	ExperienceID int64 `json:"experience_id"`
	Importance   int   `json:"importance" validate:"gte=1,lte=5"`
}

// Request is a recommendation request.
type Request struct {
	// Preferences are the requested experiences in request order.
	Preferences []Preference `json:"experience_preferences" validate:"required,min=1,dive"`

	// LocationID optionally restricts the location bonus to one location
	// (external location id).
	LocationID *int64 `json:"location_id,omitempty"`

	// UserEmail optionally identifies the guest for personalization.
	UserEmail string `json:"user_email,omitempty" validate:"omitempty,email"`

	// RequestID is propagated for tracing. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Normalize trims surrounding whitespace from UserEmail. Decoders run it
// before validation.
func (r *Request) Normalize() {
	r.UserEmail = strings.TrimSpace(r.UserEmail)
}

// SelectedRating is the hotel's rating of a requested experience paired with
// the requested importance.
type SelectedRating struct {
	Rating     float64
	Importance int
}

// ExperienceRating is an experience name with the hotel's rating of it.
type ExperienceRating struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// Scores breaks down a hotel's final score.
type Scores struct {
	AvgExperience      float64 `json:"avg_experience_rating"`
	SelectedExperience float64 `json:"selected_experience_score"`
	PageRank           float64 `json:"pagerank"`
	NormalizedPageRank float64 `json:"normalized_pagerank"`
	HotelRating        float64 `json:"hotel_rating"`
	Collaborative      float64 `json:"collaborative_score"`
	History            float64 `json:"history_score"`
	LocationBonus      float64 `json:"location_bonus"`
	Base               float64 `json:"base_score"`
	Final              float64 `json:"final_score"`
}

// Recommendation is one ranked hotel.
type Recommendation struct {
	NodeID   graph.NodeID
	HotelID  int64
	Name     string
	Location string

	// HotelRating is 0 for unrated hotels.
	HotelRating float64

	// SelectedRatings are the requested experiences this hotel offers, in
	// request order.
	SelectedRatings []SelectedRating

	// OtherExperiences are the hotel's remaining experiences ordered by
	// experience node id.
	OtherExperiences []ExperienceRating

	ExperienceCount     int
	AvgExperienceRating float64
	IsInLocation        bool
	FinalScore          float64

	// Scores is the full breakdown; populated for every recommendation.
	Scores Scores
}

// ResponseMetadata describes how a response was computed.
type ResponseMetadata struct {
	RequestID    string `json:"request_id"`
	GraphVersion uint64 `json:"graph_version"`
	Candidates   int    `json:"candidates"`
	UserResolved bool   `json:"user_resolved"`
	// LocationResolved is false when a location id was requested but unknown.
	LocationResolved bool  `json:"location_resolved"`
	PageRankCached   bool  `json:"pagerank_cached"`
	PageRankFallback bool  `json:"pagerank_fallback"`
	LatencyMS        int64 `json:"latency_ms"`
}

// Response is a ranked list of hotels.
type Response struct {
	Items    []Recommendation
	Metadata ResponseMetadata
}

// ExperienceInfo describes an experience for listing.
type ExperienceInfo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HotelDetails describes a hotel and the experiences it offers.
type HotelDetails struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Rating      *float64           `json:"rating"`
	Location    string             `json:"location"`
	Experiences []ExperienceRating `json:"experiences"`
}

// GraphStatus summarizes the published graph.
type GraphStatus struct {
	Version  uint64         `json:"version"`
	LoadedAt string         `json:"loaded_at"`
	Source   string         `json:"source"`
	Nodes    int            `json:"nodes_count"`
	Edges    int            `json:"edges_count"`
	ByType   map[string]int `json:"nodes_by_type"`
	ByKind   map[string]int `json:"edges_by_kind"`
}
