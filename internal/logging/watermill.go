// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package logging

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

// WatermillLogger adapts zerolog to watermill.LoggerAdapter so the reload
// pub/sub logs alongside everything else.
type WatermillLogger struct {
	logger zerolog.Logger
}

var _ watermill.LoggerAdapter = (*WatermillLogger)(nil)

// NewWatermillLogger wraps logger, tagging entries with component=pubsub.
//
//nolint:gocritic // zerolog.Logger is passed by value by design
func NewWatermillLogger(logger zerolog.Logger) *WatermillLogger {
	return &WatermillLogger{logger: logger.With().Str("component", "pubsub").Logger()}
}

// Error implements watermill.LoggerAdapter.
func (w *WatermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	withFields(w.logger.Error().Err(err), fields).Msg(msg)
}

// Info implements watermill.LoggerAdapter.
func (w *WatermillLogger) Info(msg string, fields watermill.LogFields) {
	withFields(w.logger.Info(), fields).Msg(msg)
}

// Debug implements watermill.LoggerAdapter.
func (w *WatermillLogger) Debug(msg string, fields watermill.LogFields) {
	withFields(w.logger.Debug(), fields).Msg(msg)
}

// Trace implements watermill.LoggerAdapter.
func (w *WatermillLogger) Trace(msg string, fields watermill.LogFields) {
	withFields(w.logger.Trace(), fields).Msg(msg)
}

// With implements watermill.LoggerAdapter.
func (w *WatermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	ctx := w.logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &WatermillLogger{logger: ctx.Logger()}
}

func withFields(event *zerolog.Event, fields watermill.LogFields) *zerolog.Event {
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	return event
}
