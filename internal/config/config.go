// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package config

import (
	"os"
	"time"

	"github.com/tomtom215/staygraph/internal/dataset"
	"github.com/tomtom215/staygraph/internal/logging"
	"github.com/tomtom215/staygraph/internal/recommend"
	"github.com/tomtom215/staygraph/internal/reload"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Data       DataConfig       `koanf:"data"`
	Recommend  recommend.Config `koanf:"recommend"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	RequestTimeout  time.Duration `koanf:"request_timeout"` // Per-request ranking budget
	Environment     string        `koanf:"environment"`     // development or production
}

// Data source kinds.
const (
	SourceCSV    = "csv"
	SourceBadger = "badger"
)

// DataConfig selects where the graph is loaded from and how it is kept fresh.
type DataConfig struct {
	// Source is csv (read Dir on every load) or badger (latest snapshot in
	// SnapshotPath, written by `staygraph import`).
	Source   string        `koanf:"source"`
	Dir      string        `koanf:"dir"`
	Encoding string        `koanf:"encoding"`
	Files    dataset.Files `koanf:"files"`

	SnapshotPath   string `koanf:"snapshot_path"`
	SnapshotRetain int    `koanf:"snapshot_retain"`

	// Watch reloads the graph when files in Dir change (csv source only).
	Watch         bool          `koanf:"watch"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`

	// RefreshInterval requests a reload on a timer; 0 disables it.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	Breaker reload.BreakerConfig `koanf:"breaker"`
}

// SecurityConfig holds HTTP hardening settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level     string `koanf:"level"`
	Format    string `koanf:"format"`
	Caller    bool   `koanf:"caller"`
	Timestamp bool   `koanf:"timestamp"`
}

// SupervisorConfig mirrors suture's failure handling knobs.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// LoggingOptions converts the section into logging.Config.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		Caller:    c.Logging.Caller,
		Timestamp: c.Logging.Timestamp,
		Output:    os.Stderr,
	}
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// NewSource builds the configured graph source. The caller closes the
// returned closer (a no-op for CSV).
func (c *Config) NewSource() (dataset.Source, func() error, error) {
	if c.Data.Source == SourceBadger {
		store, err := dataset.OpenSnapshotStore(c.Data.SnapshotPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	src, err := dataset.NewCSVSource(c.Data.Dir, c.Data.Encoding, c.Data.Files)
	if err != nil {
		return nil, nil, err
	}
	return src, func() error { return nil }, nil
}
