// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope of every API response.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"hotel_id": 12, "name": "Lagoon", "final_score": 7.41, ...}],
//	  "metadata": {
//	    "timestamp": "2026-03-01T12:00:00Z",
//	    "request_id": "5f0c...",
//	    "graph_version": 3,
//	    "query_time_ms": 4
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {"code": "EXPERIENCE_NOT_FOUND", "message": "experiences not found: 99"},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp    time.Time `json:"timestamp"`
	RequestID    string    `json:"request_id,omitempty"`
	GraphVersion uint64    `json:"graph_version,omitempty"`
	QueryTimeMS  int64     `json:"query_time_ms,omitempty"`
	Candidates   int       `json:"candidates,omitempty"`
	UserResolved bool      `json:"user_resolved,omitempty"`
	Cached       bool      `json:"cached,omitempty"`
}

// APIError is the error body of a failed request.
//
// Error codes:
//   - VALIDATION_ERROR: Malformed body or rule violation (400)
//   - EXPERIENCE_NOT_FOUND: A requested experience id is unknown (404)
//   - HOTEL_NOT_FOUND: The hotel id is unknown (404)
//   - GRAPH_NOT_LOADED: No graph has been published yet (503)
//   - SOURCE_UNAVAILABLE: Reloads are paused by the circuit breaker (503)
//   - TIMEOUT: The request ran past its deadline (504)
//   - RATE_LIMIT_EXCEEDED: Too many requests (429)
//   - INTERNAL_ERROR: Anything else (500)
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewSuccess wraps data in a success envelope.
func NewSuccess(data any, meta Metadata) *APIResponse {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now().UTC()
	}
	return &APIResponse{Status: StatusSuccess, Data: data, Metadata: meta}
}

// NewError builds an error envelope.
func NewError(code, message string, details map[string]any) *APIResponse {
	return &APIResponse{
		Status:   StatusError,
		Metadata: Metadata{Timestamp: time.Now().UTC()},
		Error:    &APIError{Code: code, Message: message, Details: details},
	}
}
