// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the sentinel for entities that cannot be resolved.
	// Callers wrap it with their own context.
	ErrNotFound = errors.New("not found")

	// ErrFrozen is returned when mutating a graph after Freeze.
	ErrFrozen = errors.New("graph is frozen")
)

// ValidationError reports a graph invariant violated while building a graph.
type ValidationError struct {
	// Op is the mutation that failed (add_node, add_edge, parse, ...).
	Op string
	// Reason describes the violated invariant.
	Reason string
	// File and Line locate the offending record when loaded from a file.
	File string
	Line int
}

// Error implements error.
func (e *ValidationError) Error() string {
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("graph validation: %s:%d: %s: %s", e.File, e.Line, e.Op, e.Reason)
	case e.File != "":
		return fmt.Sprintf("graph validation: %s: %s: %s", e.File, e.Op, e.Reason)
	default:
		return fmt.Sprintf("graph validation: %s: %s", e.Op, e.Reason)
	}
}

// At returns a copy of the error annotated with a file position.
func (e *ValidationError) At(file string, line int) *ValidationError {
	c := *e
	c.File = file
	c.Line = line
	return &c
}

func invalid(op, format string, args ...any) *ValidationError {
	return &ValidationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
