// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package api

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/staygraph/internal/logging"
	"github.com/tomtom215/staygraph/internal/models"
	"github.com/tomtom215/staygraph/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("ETag", generateETag(data))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag hashes the body with FNV-1a.
func generateETag(data []byte) string {
	h := fnv.New32a()
	_, _ = h.Write(data)
	return strconv.Quote(strconv.FormatUint(uint64(h.Sum32()), 16))
}

// respondError sends an error response. Server-side failures are logged.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	event := logging.Ctx(r.Context()).Debug()
	if status >= http.StatusInternalServerError {
		event = logging.Ctx(r.Context()).Error()
	}
	event.Str("code", code).Int("status", status).Str("message", sanitizeLogValue(message)).Msg("API error")

	respondJSON(w, status, models.NewError(code, message, details))
}

// writeError maps an engine or reload error onto the envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classifyError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
		logging.Ctx(r.Context()).Error().Err(err).Msg("Unhandled error")
	}
	respondError(w, r, status, code, message, errorDetails(err))
}

// decodeRequest reads a JSON body into v and validates it. On failure the
// error response has already been written.
func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, r, http.StatusRequestEntityTooLarge, CodeValidation,
				fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit), nil)
			return false
		}
		respondError(w, r, http.StatusBadRequest, CodeValidation, "Could not read request body", nil)
		return false
	}
	if len(body) == 0 {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "Request body is empty", nil)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "Invalid JSON body: "+err.Error(), nil)
		return false
	}

	if n, ok := v.(normalizer); ok {
		n.Normalize()
	}
	if verr := validation.ValidateStruct(v); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

// normalizer is implemented by request bodies that clean up their fields
// before validation.
type normalizer interface {
	Normalize()
}
