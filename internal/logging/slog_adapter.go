// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// SlogHandler implements slog.Handler on top of zerolog. Libraries that
// only accept a *slog.Logger (sutureslog in the supervisor tree) end up in the
// same JSON or console stream as the rest of the service.
//
// Attributes added with WithAttrs keep the groups that were open when they
// were added, so a grouped attribute renders as "group.key".
//
// Usage:
//
//	handler := logging.NewSlogHandlerWithLogger(logging.WithComponent("supervisor"))
//	slogger := slog.New(handler)
//	slogger.Info("service started", "service", "http-server")
type SlogHandler struct {
	logger zerolog.Logger
	attrs  []groupedAttr
	groups []string
}

// groupedAttr remembers the groups that were open when the attr was added.
type groupedAttr struct {
	groups []string
	attr   slog.Attr
}

// NewSlogHandler wraps the global logger.
func NewSlogHandler() *SlogHandler {
	return &SlogHandler{logger: Logger()}
}

// NewSlogHandlerWithLogger wraps a specific logger. Tests pass zerolog.Nop()
// to keep supervisor events out of the output.
//
//nolint:gocritic // zerolog.Logger is passed by value by design
func NewSlogHandlerWithLogger(logger zerolog.Logger) *SlogHandler {
	return &SlogHandler{logger: logger}
}

// NewSlogLogger returns a *slog.Logger backed by the global logger. Call it
// after Init so the configured level and format apply.
func NewSlogLogger() *slog.Logger {
	return slog.New(NewSlogHandler())
}

// Enabled implements slog.Handler. A record passes only when both the
// wrapped logger's level and zerolog's global level allow it.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	zl := zerologLevel(level)
	return zl >= h.logger.GetLevel() && zl >= zerolog.GlobalLevel()
}

// Handle implements slog.Handler.
//
//nolint:gocritic // slog.Record is passed by value per the interface
func (h *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	event := h.logger.WithLevel(zerologLevel(record.Level))
	for _, ga := range h.attrs {
		event = appendAttr(event, ga.groups, ga.attr)
	}
	record.Attrs(func(a slog.Attr) bool {
		event = appendAttr(event, h.groups, a)
		return true
	})
	event.Msg(record.Message)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]groupedAttr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	for _, a := range attrs {
		merged = append(merged, groupedAttr{groups: h.groups, attr: a})
	}
	return &SlogHandler{logger: h.logger, attrs: merged, groups: h.groups}
}

// WithGroup implements slog.Handler.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)
	return &SlogHandler{logger: h.logger, attrs: h.attrs, groups: groups}
}

func appendAttr(event *zerolog.Event, groups []string, a slog.Attr) *zerolog.Event {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return event
	}

	key := a.Key
	for i := len(groups) - 1; i >= 0; i-- {
		key = groups[i] + "." + key
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return event.Str(key, a.Value.String())
	case slog.KindInt64:
		return event.Int64(key, a.Value.Int64())
	case slog.KindUint64:
		return event.Uint64(key, a.Value.Uint64())
	case slog.KindFloat64:
		return event.Float64(key, a.Value.Float64())
	case slog.KindBool:
		return event.Bool(key, a.Value.Bool())
	case slog.KindDuration:
		return event.Dur(key, a.Value.Duration())
	case slog.KindTime:
		return event.Time(key, a.Value.Time())
	case slog.KindGroup:
		nested := append(append([]string(nil), groups...), a.Key)
		for _, ga := range a.Value.Group() {
			event = appendAttr(event, nested, ga)
		}
		return event
	default:
		if err, ok := a.Value.Any().(error); ok {
			return event.AnErr(key, err)
		}
		return event.Interface(key, a.Value.Any())
	}
}

func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level < slog.LevelDebug:
		return zerolog.TraceLevel
	case level < slog.LevelInfo:
		return zerolog.DebugLevel
	case level < slog.LevelWarn:
		return zerolog.InfoLevel
	case level < slog.LevelError:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
