// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/coomono/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router wires the handler into a chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil chiMW uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: chiMW}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(chiMiddleware(middleware.RequestID)) // X-Request-ID plus logging context
	r.Use(chimiddleware.RealIP)                // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)             // Recover from panics
	r.Use(router.chiMiddleware.CORS())         // CORS must be global to handle OPTIONS preflight
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, r, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).MethodNotAllowed()
	})

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Gateway Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(chiMiddleware(middleware.Compression))

		r.Route("/instances", func(r chi.Router) {
			r.Get("/", router.handler.ListInstances)
			r.Get("/current", router.handler.CurrentInstance)

			// Each write can download a full creator directory.
			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitCustom(RateLimitWrite))
				r.Post("/", router.handler.AddInstance)
				r.Post("/validate", router.handler.ValidateInstance)
				r.Put("/current", router.handler.SwitchInstance)
			})
		})

		r.Route("/creators", func(r chi.Router) {
			r.Get("/", router.handler.ListCreators)
			r.With(router.chiMiddleware.RateLimitCustom(RateLimitWrite)).Post("/refresh", router.handler.RefreshCreators)
			r.Get("/{service}/{id}", router.handler.Creator)
			r.Get("/{service}/{id}/posts", router.handler.CreatorPosts)
			r.Get("/{service}/{id}/posts/{postID}", router.handler.CreatorPost)
		})

		r.Get("/cache", router.handler.CacheStatus)
		r.With(router.chiMiddleware.RateLimitCustom(RateLimitWrite)).Delete("/cache", router.handler.ClearCache)

		r.Get("/media/url", router.handler.MediaURL)
	})

	// ========================
	// Prometheus Metrics
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}
