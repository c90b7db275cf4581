// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/staygraph/internal/recommend"
)

// TestDefault verifies that Default() returns a valid configuration.
func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 10*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want 10s", cfg.Server.RequestTimeout)
	}
	if cfg.Data.Source != SourceCSV || cfg.Data.Encoding != "iso-8859-9" {
		t.Errorf("Data = %+v, want csv with iso-8859-9", cfg.Data)
	}
	if cfg.Data.Files.Hotels != "hotel_nodes.csv" {
		t.Errorf("Data.Files.Hotels = %q", cfg.Data.Files.Hotels)
	}
	if !cfg.HasWildcardCORS() {
		t.Error("default CORS should allow every origin")
	}
	if cfg.Recommend.Limits.TopK != 5 || cfg.Recommend.Weights.LocationBonus != 2.0 {
		t.Errorf("Recommend defaults not applied: %+v", cfg.Recommend)
	}
	if cfg.IsProduction() {
		t.Error("default environment should be development")
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"REQUEST_TIMEOUT", "server.request_timeout"},
		{"STAYGRAPH_DATA_DIR", "data.dir"},
		{"STAYGRAPH_HOTELS_FILE", "data.files.hotels"},
		{"STAYGRAPH_WATCH", "data.watch"},
		{"STAYGRAPH_REFRESH_INTERVAL", "data.refresh_interval"},
		{"RELOAD_BREAKER_FAILURES", "data.breaker.max_failures"},
		{"RECOMMEND_TOP_K", "recommend.limits.top_k"},
		{"RECOMMEND_COLLABORATIVE_MODE", "recommend.collaborative.mode"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"LOG_LEVEL", "logging.level"},
		{"SUPERVISOR_FAILURE_BACKOFF", "supervisor.failure_backoff"},

		// Unmapped variables are dropped
		{"PATH", ""},
		{"HOME", ""},
		{"STAYGRAPH_UNKNOWN", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestLoadFrom_Layers checks that the file overrides defaults and env
// overrides the file. Not parallel: uses t.Setenv.
func TestLoadFrom_Layers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "staygraph.yaml")
	yaml := `
server:
  port: 9000
data:
  dir: /srv/hotels
  encoding: utf-8
  files:
    hotels: hotel_nodes_2.csv
recommend:
  collaborative:
    mode: similar_users
  weights:
    location_bonus: 3.5
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RECOMMEND_TOP_K", "3")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want env value 9100", cfg.Server.Port)
	}
	if cfg.Data.Dir != "/srv/hotels" || cfg.Data.Encoding != "utf-8" {
		t.Errorf("Data = %+v, want file values", cfg.Data)
	}
	if cfg.Data.Files.Hotels != "hotel_nodes_2.csv" || cfg.Data.Files.Users != "user_nodes.csv" {
		t.Errorf("Files = %+v, want hotels overridden and users defaulted", cfg.Data.Files)
	}
	if cfg.Recommend.Collaborative.Mode != recommend.ModeSimilarUsers {
		t.Errorf("Collaborative.Mode = %q", cfg.Recommend.Collaborative.Mode)
	}
	if cfg.Recommend.Weights.LocationBonus != 3.5 || cfg.Recommend.Weights.PageRank != 0.15 {
		t.Errorf("Weights = %+v", cfg.Recommend.Weights)
	}
	if cfg.Recommend.Limits.TopK != 3 {
		t.Errorf("TopK = %d, want 3", cfg.Recommend.Limits.TopK)
	}
	if got := cfg.Security.CORSOrigins; len(got) != 2 || got[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", got)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if opts := cfg.LoggingOptions(); opts.Level != "debug" || opts.Output == nil {
		t.Errorf("LoggingOptions() = %+v", opts)
	}
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() with malformed YAML should fail")
	}
}

func TestLoadFrom_ValidationFailure(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "staygraph.yaml")
	if err := os.WriteFile(path, []byte("recommend:\n  pagerank:\n    damping: 1.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFrom(path)
	if err == nil || !strings.Contains(err.Error(), "damping") {
		t.Errorf("LoadFrom() error = %v, want damping validation failure", err)
	}
}

func TestFindConfigFile_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}
}

// TestValidate covers the rejection paths of each section.
func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"no request timeout", func(c *Config) { c.Server.RequestTimeout = 0 }, "REQUEST_TIMEOUT"},
		{"unknown environment", func(c *Config) { c.Server.Environment = "staging" }, "ENVIRONMENT"},
		{"unknown source", func(c *Config) { c.Data.Source = "s3" }, "STAYGRAPH_DATA_SOURCE"},
		{"csv without dir", func(c *Config) { c.Data.Dir = "" }, "STAYGRAPH_DATA_DIR"},
		{"unknown encoding", func(c *Config) { c.Data.Encoding = "ebcdic" }, "STAYGRAPH_DATA_ENCODING"},
		{"badger without path", func(c *Config) { c.Data.Source = SourceBadger }, "STAYGRAPH_SNAPSHOT_PATH"},
		{"badger with watch", func(c *Config) {
			c.Data.Source = SourceBadger
			c.Data.SnapshotPath = "/tmp/snap"
			c.Data.Watch = true
		}, "STAYGRAPH_WATCH"},
		{"badger valid", func(c *Config) {
			c.Data.Source = SourceBadger
			c.Data.SnapshotPath = "/tmp/snap"
		}, ""},
		{"retain zero", func(c *Config) { c.Data.SnapshotRetain = 0 }, "STAYGRAPH_SNAPSHOT_RETAIN"},
		{"tiny debounce", func(c *Config) {
			c.Data.Watch = true
			c.Data.WatchDebounce = time.Millisecond
		}, "STAYGRAPH_WATCH_DEBOUNCE"},
		{"refresh too short", func(c *Config) { c.Data.RefreshInterval = 100 * time.Millisecond }, "STAYGRAPH_REFRESH_INTERVAL"},
		{"badger with refresh", func(c *Config) {
			c.Data.Source = SourceBadger
			c.Data.SnapshotPath = "/tmp/snap"
			c.Data.RefreshInterval = time.Minute
		}, ""},
		{"bad recommend", func(c *Config) { c.Recommend.Limits.TopK = 0 }, "recommend"},
		{"no cors origins", func(c *Config) { c.Security.CORSOrigins = nil }, "CORS_ORIGINS"},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitReqs = 0
			c.Security.RateLimitDisabled = true
		}, ""},
		{"window too long", func(c *Config) { c.Security.RateLimitWindow = 2 * time.Hour }, "RATE_LIMIT_WINDOW"},
		{"no body limit", func(c *Config) { c.Security.MaxBodyBytes = 0 }, "MAX_BODY_BYTES"},
		{"supervisor threshold", func(c *Config) { c.Supervisor.FailureThreshold = 0 }, "SUPERVISOR_FAILURE_THRESHOLD"},
		{"supervisor backoff", func(c *Config) { c.Supervisor.FailureBackoff = 0 }, "SUPERVISOR_FAILURE_BACKOFF"},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewSource(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Data.Dir = t.TempDir()
	src, closeFn, err := cfg.NewSource()
	if err != nil {
		t.Fatalf("NewSource() csv error = %v", err)
	}
	if !strings.HasPrefix(src.String(), "csv:") {
		t.Errorf("csv source = %s", src)
	}
	if err := closeFn(); err != nil {
		t.Error(err)
	}

	cfg.Data.Source = SourceBadger
	cfg.Data.SnapshotPath = filepath.Join(t.TempDir(), "snap")
	src, closeFn, err = cfg.NewSource()
	if err != nil {
		t.Fatalf("NewSource() badger error = %v", err)
	}
	defer func() { _ = closeFn() }()
	if !strings.HasPrefix(src.String(), "badger:") {
		t.Errorf("badger source = %s", src)
	}
}
