// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

// Tests in this file touch the global logger and level, so none run in
// parallel.

func captureGlobal(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: level, Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })
	return &buf
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "json" || !cfg.Timestamp || cfg.Caller {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestInit(t *testing.T) {
	buf := captureGlobal(t, "info")

	Debug().Msg("hidden")
	Info().Str("source", "csv:/data").Msg("Graph loaded")
	Err(errors.New("boom")).Msg("Reload failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry emitted at info level: %s", out)
	}
	for _, want := range []string{`"level":"info"`, `"source":"csv:/data"`, `"message":"Graph loaded"`, `"error":"boom"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestInit_Console(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Msg("console entry")
	if !strings.Contains(buf.String(), "console entry") || strings.HasPrefix(buf.String(), "{") {
		t.Errorf("console output = %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"WARNING", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if !ValidLevel("debug") || ValidLevel("chatty") || ValidLevel("") {
		t.Error("ValidLevel() disagrees with ParseLevel")
	}
}

// --- Test: context ---

func TestCtx_RequestID(t *testing.T) {
	buf := captureGlobal(t, "debug")

	ctx := ContextWithRequestID(context.Background(), "req-42")
	if got := RequestIDFromContext(ctx); got != "req-42" {
		t.Errorf("RequestIDFromContext() = %q", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("empty context request id = %q", got)
	}

	Ctx(ctx).Info().Msg("served")
	if !strings.Contains(buf.String(), `"request_id":"req-42"`) {
		t.Errorf("request id not logged: %s", buf.String())
	}
}

func TestCtx_StoredLogger(t *testing.T) {
	captureGlobal(t, "debug")

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), zerolog.New(&buf).With().Str("component", "api").Logger())
	Ctx(ctx).Info().Msg("via context")

	if !strings.Contains(buf.String(), `"component":"api"`) {
		t.Errorf("stored logger not used: %s", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	buf := captureGlobal(t, "debug")

	l := WithComponent("recommend")
	l.Info().Msg("ranked")
	if !strings.Contains(buf.String(), `"component":"recommend"`) {
		t.Errorf("component missing: %s", buf.String())
	}
	if len(GenerateRequestID()) != 36 {
		t.Error("GenerateRequestID() should return a UUID")
	}
}

// --- Test: adapters ---

func TestSlogHandler(t *testing.T) {
	captureGlobal(t, "debug")

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))

	logger.With("service", "http").WithGroup("supervisor").Warn("service restarted",
		"attempt", 3,
		"backoff", slog.GroupValue(slog.String("unit", "s")),
		"err", errors.New("listener closed"),
	)

	out := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"service":"http"`,
		`"supervisor.attempt":3`,
		`"supervisor.backoff.unit":"s"`,
		`"supervisor.err":"listener closed"`,
		`"message":"service restarted"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	captureGlobal(t, "warn")

	h := NewSlogHandler()
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
	if NewSlogLogger() == nil {
		t.Error("NewSlogLogger() = nil")
	}
}

func TestWatermillLogger(t *testing.T) {
	captureGlobal(t, "trace")

	var buf bytes.Buffer
	var adapter watermill.LoggerAdapter = NewWatermillLogger(zerolog.New(&buf))

	adapter = adapter.With(watermill.LogFields{"topic": "graph.reload"})
	adapter.Info("Subscribed", watermill.LogFields{"subscriber": 1})
	adapter.Error("Publish failed", errors.New("closed"), nil)
	adapter.Trace("tick", nil)

	out := buf.String()
	for _, want := range []string{
		`"component":"pubsub"`,
		`"topic":"graph.reload"`,
		`"subscriber":1`,
		`"error":"closed"`,
		`"level":"trace"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}
