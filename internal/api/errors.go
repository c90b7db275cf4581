// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/staygraph/internal/recommend"
	"github.com/tomtom215/staygraph/internal/reload"
)

// Error codes returned in the envelope.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeExperienceNotFound = "EXPERIENCE_NOT_FOUND"
	CodeHotelNotFound      = "HOTEL_NOT_FOUND"
	CodeGraphNotLoaded     = "GRAPH_NOT_LOADED"
	CodeSourceUnavailable  = "SOURCE_UNAVAILABLE"
	CodeReloadFailed       = "RELOAD_FAILED"
	CodeTimeout            = "TIMEOUT"
	CodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeInternal           = "INTERNAL_ERROR"
)

// errReloadUnavailable is returned when the server runs without a reload path.
var errReloadUnavailable = errors.New("graph reload is not configured")

// classifyError maps an error to an HTTP status and error code.
func classifyError(err error) (status int, code string) {
	var missing *recommend.MissingExperiencesError
	switch {
	case errors.As(err, &missing), errors.Is(err, recommend.ErrExperienceNotFound):
		return http.StatusNotFound, CodeExperienceNotFound
	case errors.Is(err, recommend.ErrHotelNotFound):
		return http.StatusNotFound, CodeHotelNotFound
	case errors.Is(err, recommend.ErrInvalidRequest):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, recommend.ErrNoGraph):
		return http.StatusServiceUnavailable, CodeGraphNotLoaded
	case errors.Is(err, reload.ErrSourceUnavailable), errors.Is(err, errReloadUnavailable):
		return http.StatusServiceUnavailable, CodeSourceUnavailable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, CodeTimeout
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// errorDetails exposes structured data for known error types.
func errorDetails(err error) map[string]any {
	var missing *recommend.MissingExperiencesError
	if errors.As(err, &missing) {
		return map[string]any{"experience_ids": missing.IDs}
	}
	return nil
}
