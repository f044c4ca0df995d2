// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/coomono/internal/instance"
)

// HealthLive reports that the process is alive, regardless of instances.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady reports whether the current instance can be served. It is not
// ready when the instance's directory fetch failed or its breaker is open.
// A directory that was never requested does not block readiness.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	current := h.svc.Registry().Current().URL

	resp := ReadinessResponse{
		Ready:    true,
		Instance: current,
		Breakers: h.breakerStates(),
	}
	for _, e := range h.svc.Registry().Snapshot() {
		if e.Domain != current {
			continue
		}
		resp.Directory = e.State
		if e.State == instance.StateFailed {
			resp.Ready = false
			resp.Reason = e.Error
		}
	}
	for _, b := range resp.Breakers {
		if b.Domain == current && b.State == "open" {
			resp.Ready = false
			resp.Reason = "circuit breaker open"
		}
	}

	if !resp.Ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Current instance is unavailable", resp)
		return
	}
	rw.Success(resp)
}
