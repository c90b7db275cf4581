// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/staygraph/internal/metrics"
)

// --- Test: RequestID ---

func TestRequestID_GeneratesNewID(t *testing.T) {
	t.Parallel()

	var capturedID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	responseID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("response X-Request-ID %q is not a UUID: %v", responseID, err)
	}
	if capturedID != responseID {
		t.Errorf("context ID %q doesn't match response header ID %q", capturedID, responseID)
	}
}

func TestRequestID_UpstreamIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"proxy id", "existing-request-id-12345", true},
		{"control characters", "bad\nid", false},
		{"spaces", "has space", false},
		{"too long", strings.Repeat("a", maxRequestIDLength+1), false},
		{"max length", strings.Repeat("a", maxRequestIDLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var capturedID string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedID = GetRequestID(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(RequestIDHeader, tt.incoming)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if tt.keep && got != tt.incoming {
				t.Errorf("X-Request-ID = %q, want upstream %q", got, tt.incoming)
			}
			if !tt.keep && got == tt.incoming {
				t.Errorf("upstream ID %q should have been replaced", tt.incoming)
			}
			if capturedID != got {
				t.Errorf("context ID %q != header %q", capturedID, got)
			}
		})
	}
}

// --- Test: PrometheusMetrics ---

func TestPrometheusMetrics_RouteLabel(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/metrics-test/hotels/{hotelID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/metrics-test/implicit", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	pattern := "/metrics-test/hotels/{hotelID}"
	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, pattern, "404"))
	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test/hotels/"+id, nil))
	}
	after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, pattern, "404"))
	if after-before != 3 {
		t.Errorf("route-labelled counter grew by %v, want 3", after-before)
	}

	before = testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/implicit", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test/implicit", nil))
	after = testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/implicit", "200"))
	if after-before != 1 {
		t.Error("implicit 200 was not recorded")
	}
}

func TestRouteLabel_Unmatched(t *testing.T) {
	t.Parallel()

	if got := routeLabel(httptest.NewRequest(http.MethodGet, "/anything", nil)); got != "unmatched" {
		t.Errorf("routeLabel() = %q, want unmatched", got)
	}
}

// --- Test: Timeout ---

func TestTimeout(t *testing.T) {
	t.Parallel()

	var deadline time.Time
	var ok bool
	handler := Timeout(50 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
		<-r.Context().Done()
		if r.Context().Err() != context.DeadlineExceeded {
			t.Errorf("ctx.Err() = %v", r.Context().Err())
		}
		w.WriteHeader(http.StatusGatewayTimeout)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if !ok || deadline.IsZero() {
		t.Error("request context has no deadline")
	}
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, handler's own response should be kept", rec.Code)
	}
}

func TestTimeout_Disabled(t *testing.T) {
	t.Parallel()

	handler := Timeout(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Deadline(); ok {
			t.Error("zero timeout should not set a deadline")
		}
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

// --- Test: AccessLog ---

func TestAccessLog_PassesThrough(t *testing.T) {
	t.Parallel()

	handler := RequestID(AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tea", nil))
	if rec.Code != http.StatusTeapot || rec.Body.String() != "short and stout" {
		t.Errorf("response = %d %q", rec.Code, rec.Body.String())
	}
}
