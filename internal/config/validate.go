// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/staygraph/internal/dataset"
	"github.com/tomtom215/staygraph/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateSupervisor(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be one of: development, production")
	}
}

// validateData checks the graph source settings.
func (c *Config) validateData() error {
	switch c.Data.Source {
	case SourceCSV:
		if c.Data.Dir == "" {
			return fmt.Errorf("STAYGRAPH_DATA_DIR is required for the csv source")
		}
		if _, err := dataset.LookupEncoding(c.Data.Encoding); err != nil {
			return fmt.Errorf("STAYGRAPH_DATA_ENCODING must be one of %v: %w", dataset.Encodings, err)
		}
	case SourceBadger:
		if c.Data.SnapshotPath == "" {
			return fmt.Errorf("STAYGRAPH_SNAPSHOT_PATH is required for the badger source")
		}
		if c.Data.Watch {
			return fmt.Errorf("STAYGRAPH_WATCH only applies to the csv source")
		}
	default:
		return fmt.Errorf("STAYGRAPH_DATA_SOURCE must be one of: %s, %s", SourceCSV, SourceBadger)
	}
	if c.Data.SnapshotRetain < 1 {
		return fmt.Errorf("STAYGRAPH_SNAPSHOT_RETAIN must be at least 1")
	}
	if c.Data.Watch && c.Data.WatchDebounce < 10*time.Millisecond {
		return fmt.Errorf("STAYGRAPH_WATCH_DEBOUNCE must be at least 10ms")
	}
	if c.Data.RefreshInterval < 0 || (c.Data.RefreshInterval > 0 && c.Data.RefreshInterval < time.Second) {
		return fmt.Errorf("STAYGRAPH_REFRESH_INTERVAL must be 0 (disabled) or at least 1s")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin (use * for any)")
	}
	if c.Security.MaxBodyBytes < 1 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed. Logged as a warning
// in production.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validateSupervisor() error {
	s := c.Supervisor
	if s.FailureThreshold <= 0 || s.FailureDecay <= 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_THRESHOLD and SUPERVISOR_FAILURE_DECAY must be positive")
	}
	if s.FailureBackoff <= 0 || s.ShutdownTimeout <= 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_BACKOFF and SUPERVISOR_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
