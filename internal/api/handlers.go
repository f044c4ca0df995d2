// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package api

import (
	"time"

	"github.com/tomtom215/coomono/internal/gallery"
	"github.com/tomtom215/coomono/internal/upstream"
)

// BreakerReporter reports per-instance circuit breaker states.
// *upstream.CircuitBreakerClient implements it.
type BreakerReporter interface {
	States() []upstream.BreakerState
}

// HandlerConfig holds API paging limits.
type HandlerConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Handler serves the API endpoints.
type Handler struct {
	svc       *gallery.Service
	breakers  BreakerReporter
	cfg       HandlerConfig
	startTime time.Time
}

// NewHandler creates the API handler. breakers may be nil when circuit
// breaking is disabled.
func NewHandler(svc *gallery.Service, breakers BreakerReporter, cfg HandlerConfig) *Handler {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 50
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		cfg.MaxPageSize = cfg.DefaultPageSize
	}
	return &Handler{
		svc:       svc,
		breakers:  breakers,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

func (h *Handler) breakerStates() []upstream.BreakerState {
	if h.breakers == nil {
		return []upstream.BreakerState{}
	}
	return h.breakers.States()
}
