// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package recommend

import (
	"math"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("base weights sum to 1", func(t *testing.T) {
		w := cfg.Weights
		sum := w.AvgExperience + w.SelectedExperience + w.PageRank + w.HotelRating + w.Collaborative
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("base weights sum = %v, want 1", sum)
		}
		if math.Abs(w.Base+w.History-1) > 1e-12 {
			t.Errorf("history blend sums to %v, want 1", w.Base+w.History)
		}
	})

	t.Run("pagerank defaults", func(t *testing.T) {
		p := cfg.PageRank
		if p.Damping != 0.85 || p.MaxIterations != 1000 || p.Tolerance != 1e-6 || p.DefaultWeight != 0.5 {
			t.Errorf("PageRank = %+v", p)
		}
	})

	t.Run("validates", func(t *testing.T) {
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{"valid default", func(*Config) {}, false},
		{"similar users mode", func(c *Config) { c.Collaborative.Mode = ModeSimilarUsers }, false},
		{"negative weight", func(c *Config) { c.Weights.PageRank = -0.1 }, true},
		{"NaN weight", func(c *Config) { c.Weights.LocationBonus = math.NaN() }, true},
		{"damping zero", func(c *Config) { c.PageRank.Damping = 0 }, true},
		{"damping one", func(c *Config) { c.PageRank.Damping = 1 }, true},
		{"no iterations", func(c *Config) { c.PageRank.MaxIterations = 0 }, true},
		{"zero tolerance", func(c *Config) { c.PageRank.Tolerance = 0 }, true},
		{"unknown mode", func(c *Config) { c.Collaborative.Mode = "matrix" }, true},
		{"zero saturation", func(c *Config) { c.Collaborative.SaturationCount = 0 }, true},
		{"zero top users", func(c *Config) { c.Collaborative.TopUsers = 0 }, true},
		{"zero top k", func(c *Config) { c.Limits.TopK = 0 }, true},
		{"zero max preferences", func(c *Config) { c.Limits.MaxPreferences = 0 }, true},
		{"zero cache entries", func(c *Config) { c.Cache.PageRankEntries = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Weights.LocationBonus = 99
	clone.Limits.TopK = 1

	if cfg.Weights.LocationBonus != 2.0 || cfg.Limits.TopK != 5 {
		t.Error("modifying the clone changed the original")
	}
}
