// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/staygraph/internal/dataset"
	"github.com/tomtom215/staygraph/internal/recommend"
	"github.com/tomtom215/staygraph/internal/reload"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"staygraph.yaml",
	"staygraph.yml",
	"config.yaml",
	"/etc/staygraph/config.yaml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Default returns a Config with all default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  10 * time.Second,
			Environment:     "development",
		},
		Data: DataConfig{
			Source:         SourceCSV,
			Dir:            "data",
			Encoding:       dataset.EncodingISO88599,
			Files:          dataset.DefaultFiles(),
			SnapshotPath:   "",
			SnapshotRetain: 5,
			Watch:          false,
			WatchDebounce:  reload.DefaultDebounce,
			Breaker:        reload.DefaultBreakerConfig(),
		},
		Recommend: *recommend.DefaultConfig(),
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"}, // the public demo API allows every origin
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			MaxBodyBytes:      1 << 20,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "json",
			Caller:    false,
			Timestamp: true,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5.0,
			FailureDecay:     30.0,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

// Load loads configuration with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment Variables: Override any mapped setting
//
// Precedence is ENV > File > Defaults. The result is validated.
func Load() (*Config, error) {
	return LoadFrom(findConfigFile())
}

// LoadFrom is Load with an explicit config file path. An empty path skips
// the file layer.
func LoadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	// STAYGRAPH_DATA_DIR -> data.dir, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when they arrive as strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices.
// Env vars arrive as strings; YAML lists are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"request_timeout":       "server.request_timeout",
	"environment":           "server.environment",

	// Data
	"staygraph_data_source":      "data.source",
	"staygraph_data_dir":         "data.dir",
	"staygraph_data_encoding":    "data.encoding",
	"staygraph_hotels_file":      "data.files.hotels",
	"staygraph_experiences_file": "data.files.experiences",
	"staygraph_locations_file":   "data.files.locations",
	"staygraph_users_file":       "data.files.users",
	"staygraph_snapshot_path":    "data.snapshot_path",
	"staygraph_snapshot_retain":  "data.snapshot_retain",
	"staygraph_watch":            "data.watch",
	"staygraph_watch_debounce":   "data.watch_debounce",
	"staygraph_refresh_interval": "data.refresh_interval",
	"reload_breaker_failures":    "data.breaker.max_failures",
	"reload_breaker_timeout":     "data.breaker.open_timeout",

	// Recommendation engine
	"recommend_top_k":              "recommend.limits.top_k",
	"recommend_max_preferences":    "recommend.limits.max_preferences",
	"recommend_collaborative_mode": "recommend.collaborative.mode",
	"recommend_location_bonus":     "recommend.weights.location_bonus",
	"recommend_pagerank_damping":   "recommend.pagerank.damping",
	"recommend_pagerank_max_iter":  "recommend.pagerank.max_iterations",
	"recommend_pagerank_tolerance": "recommend.pagerank.tolerance",
	"recommend_pagerank_cache":     "recommend.cache.pagerank_entries",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"max_body_bytes":      "security.max_body_bytes",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Supervisor
	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - STAYGRAPH_DATA_DIR -> data.dir
//   - RECOMMEND_TOP_K -> recommend.limits.top_k
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	// Unmapped variables are skipped so unrelated environment does not leak in.
	return ""
}
