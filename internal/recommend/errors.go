// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package recommend

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tomtom215/staygraph/internal/graph"
)

var (
	// ErrInvalidRequest is returned for malformed requests.
	ErrInvalidRequest = errors.New("invalid recommendation request")

	// ErrNoGraph is returned before the first graph snapshot is published.
	ErrNoGraph = errors.New("graph not loaded")

	// ErrExperienceNotFound is returned when a requested experience id does
	// not resolve. It wraps graph.ErrNotFound.
	ErrExperienceNotFound = fmt.Errorf("experience %w", graph.ErrNotFound)

	// ErrHotelNotFound is returned when a hotel id does not resolve.
	// It wraps graph.ErrNotFound.
	ErrHotelNotFound = fmt.Errorf("hotel %w", graph.ErrNotFound)
)

// MissingExperiencesError lists the experience ids that did not resolve.
// It matches ErrExperienceNotFound with errors.Is.
type MissingExperiencesError struct {
	IDs []int64
}

// Error implements error.
func (e *MissingExperiencesError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return "experiences not found: " + strings.Join(ids, ", ")
}

// Unwrap returns ErrExperienceNotFound.
func (e *MissingExperiencesError) Unwrap() error { return ErrExperienceNotFound }

// ComputationError reports a PageRank computation that could not produce a
// valid stationary distribution. The engine recovers from it locally.
type ComputationError struct {
	// Reason is a metric-friendly label.
	Reason     string
	Iterations int
}

// Error implements error.
func (e *ComputationError) Error() string {
	return fmt.Sprintf("pagerank computation failed after %d iterations: %s", e.Iterations, e.Reason)
}

// UnknownUserError reports a user email without a matching User node.
// The engine recovers from it by serving the request anonymously.
type UnknownUserError struct {
	Email string
}

// Error implements error.
func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("unknown user %q", e.Email)
}

func invalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
