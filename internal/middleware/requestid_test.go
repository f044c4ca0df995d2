// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/coomono/internal/logging"
)

func TestRequestID_GeneratesNewID(t *testing.T) {
	t.Parallel()

	var capturedID, correlationID string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		capturedID = logging.RequestIDFromContext(r.Context())
		correlationID = logging.CorrelationIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/creators", nil))

	responseID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("response X-Request-ID %q is not a UUID: %v", responseID, err)
	}
	if capturedID != responseID {
		t.Errorf("context request ID = %q, want %q", capturedID, responseID)
	}
	if correlationID == "" {
		t.Error("expected correlation ID in context")
	}
}

func TestRequestID_ReusesIncomingID(t *testing.T) {
	t.Parallel()

	var capturedID string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		capturedID = logging.RequestIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "proxy-id-42")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if capturedID != "proxy-id-42" {
		t.Errorf("context request ID = %q, want proxy-id-42", capturedID)
	}
	if got := rec.Header().Get(RequestIDHeader); got != "proxy-id-42" {
		t.Errorf("response header = %q, want proxy-id-42", got)
	}
}

func TestRequestID_RejectsOversizedID(t *testing.T) {
	t.Parallel()

	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if got := rec.Header().Get(RequestIDHeader); len(got) > maxRequestIDLen {
		t.Errorf("oversized request ID was echoed back (%d bytes)", len(got))
	}
}
