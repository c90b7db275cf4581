// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package recommend

import (
	"fmt"
	"math"
)

// CollaborativeMode selects how the collaborative signal is computed.
type CollaborativeMode string

const (
	// ModeCooccurrence averages other guests' ratings of the target hotel.
	ModeCooccurrence CollaborativeMode = "cooccurrence"
	// ModeSimilarUsers averages the target ratings of the most similar guests.
	ModeSimilarUsers CollaborativeMode = "similar_users"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights holds the score fusion weights.
	Weights FusionWeights `json:"weights" koanf:"weights"`

	// PageRank contains parameters for the weighted PageRank computation.
	PageRank PageRankConfig `json:"pagerank" koanf:"pagerank"`

	// Collaborative contains parameters for the collaborative signal.
	Collaborative CollaborativeConfig `json:"collaborative" koanf:"collaborative"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Cache contains caching parameters.
	Cache CacheConfig `json:"cache" koanf:"cache"`
}

// FusionWeights are the blending weights of the final score.
//
//	base  = AvgExperience·avgExpRating + SelectedExperience·selectedExpScore +
//	        PageRank·normalizedPageRank + HotelRating·hotelRating +
//	        Collaborative·collaborativeScore
//	final = Base·base + History·historyScore + locationBonus   (resolved user)
//	final = base + locationBonus                               (anonymous)
type FusionWeights struct {
	AvgExperience      float64 `json:"avg_experience" koanf:"avg_experience"`
	SelectedExperience float64 `json:"selected_experience" koanf:"selected_experience"`
	PageRank           float64 `json:"pagerank" koanf:"pagerank"`
	HotelRating        float64 `json:"hotel_rating" koanf:"hotel_rating"`
	Collaborative      float64 `json:"collaborative" koanf:"collaborative"`

	// Base and History blend the base score with the history signal when a
	// user was resolved.
	Base    float64 `json:"base" koanf:"base"`
	History float64 `json:"history" koanf:"history"`

	// LocationBonus is added to hotels in the requested location.
	LocationBonus float64 `json:"location_bonus" koanf:"location_bonus"`
}

// PageRankConfig contains parameters for weighted PageRank.
type PageRankConfig struct {
	// Damping is the probability of following an edge.
	// Default: 0.85.
	Damping float64 `json:"damping" koanf:"damping"`

	// MaxIterations bounds the power iteration.
	// Default: 1000.
	MaxIterations int `json:"max_iterations" koanf:"max_iterations"`

	// Tolerance is the L1 change below which iteration stops.
	// Default: 1e-6.
	Tolerance float64 `json:"tolerance" koanf:"tolerance"`

	// DefaultWeight is the personalization weight of unrated hotels,
	// experiences without hotels, and all other node types.
	// Default: 0.5.
	DefaultWeight float64 `json:"default_weight" koanf:"default_weight"`
}

// CollaborativeConfig contains parameters for the collaborative signal.
type CollaborativeConfig struct {
	// Mode selects the algorithm.
	// Default: cooccurrence.
	Mode CollaborativeMode `json:"mode" koanf:"mode"`

	// SaturationCount is the number of co-rating guests at which the
	// cooccurrence confidence weight reaches 1.0.
	// Default: 10.
	SaturationCount int `json:"saturation_count" koanf:"saturation_count"`

	// FallbackFactor damps the hotel's own rating when nobody else stayed there.
	// Default: 0.5.
	FallbackFactor float64 `json:"fallback_factor" koanf:"fallback_factor"`

	// TopUsers is the neighborhood size in similar_users mode.
	// Default: 5.
	TopUsers int `json:"top_users" koanf:"top_users"`

	// SharedLikeWeight is the similarity contributed per shared liked experience.
	// Default: 0.5.
	SharedLikeWeight float64 `json:"shared_like_weight" koanf:"shared_like_weight"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// TopK is the number of hotels returned.
	// Default: 5.
	TopK int `json:"top_k" koanf:"top_k"`

	// MaxPreferences bounds the experience preferences per request.
	// Default: 50.
	MaxPreferences int `json:"max_preferences" koanf:"max_preferences"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// PageRankEntries is the number of graph versions whose PageRank scores
	// are kept.
	// Default: 4.
	PageRankEntries int `json:"pagerank_entries" koanf:"pagerank_entries"`
}

// DefaultConfig returns a Config with the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: FusionWeights{
			AvgExperience:      0.25,
			SelectedExperience: 0.35,
			PageRank:           0.15,
			HotelRating:        0.10,
			Collaborative:      0.15,
			Base:               0.7,
			History:            0.3,
			LocationBonus:      2.0,
		},
		PageRank: PageRankConfig{
			Damping:       0.85,
			MaxIterations: 1000,
			Tolerance:     1e-6,
			DefaultWeight: 0.5,
		},
		Collaborative: CollaborativeConfig{
			Mode:             ModeCooccurrence,
			SaturationCount:  10,
			FallbackFactor:   0.5,
			TopUsers:         5,
			SharedLikeWeight: 0.5,
		},
		Limits: LimitsConfig{
			TopK:           5,
			MaxPreferences: 50,
		},
		Cache: CacheConfig{
			PageRankEntries: 4,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	w := c.Weights
	for name, v := range map[string]float64{
		"avg_experience":      w.AvgExperience,
		"selected_experience": w.SelectedExperience,
		"pagerank":            w.PageRank,
		"hotel_rating":        w.HotelRating,
		"collaborative":       w.Collaborative,
		"base":                w.Base,
		"history":             w.History,
		"location_bonus":      w.LocationBonus,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weights.%s must be a non-negative number, got %f", name, v)
		}
	}

	if c.PageRank.Damping <= 0 || c.PageRank.Damping >= 1 {
		return fmt.Errorf("pagerank.damping must be in (0, 1), got %f", c.PageRank.Damping)
	}
	if c.PageRank.MaxIterations < 1 {
		return fmt.Errorf("pagerank.max_iterations must be positive, got %d", c.PageRank.MaxIterations)
	}
	if c.PageRank.Tolerance <= 0 {
		return fmt.Errorf("pagerank.tolerance must be positive, got %g", c.PageRank.Tolerance)
	}
	if c.PageRank.DefaultWeight < 0 {
		return fmt.Errorf("pagerank.default_weight must be non-negative, got %f", c.PageRank.DefaultWeight)
	}

	switch c.Collaborative.Mode {
	case ModeCooccurrence, ModeSimilarUsers:
	default:
		return fmt.Errorf("collaborative.mode must be %q or %q, got %q",
			ModeCooccurrence, ModeSimilarUsers, c.Collaborative.Mode)
	}
	if c.Collaborative.SaturationCount < 1 {
		return fmt.Errorf("collaborative.saturation_count must be positive, got %d", c.Collaborative.SaturationCount)
	}
	if c.Collaborative.TopUsers < 1 {
		return fmt.Errorf("collaborative.top_users must be positive, got %d", c.Collaborative.TopUsers)
	}
	if c.Collaborative.FallbackFactor < 0 || c.Collaborative.SharedLikeWeight < 0 {
		return fmt.Errorf("collaborative factors must be non-negative")
	}

	if c.Limits.TopK < 1 {
		return fmt.Errorf("limits.top_k must be positive, got %d", c.Limits.TopK)
	}
	if c.Limits.MaxPreferences < 1 {
		return fmt.Errorf("limits.max_preferences must be positive, got %d", c.Limits.MaxPreferences)
	}

	if c.Cache.PageRankEntries < 1 {
		return fmt.Errorf("cache.pagerank_entries must be positive, got %d", c.Cache.PageRankEntries)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	cp := *c
	return &cp
}
