// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

/*
Package middleware provides HTTP middleware for the Coomono API.

Components:

  - RequestID: reuses or generates X-Request-ID and seeds the logging context
  - Compression: gzip for clients that accept it (creator listings are large)
  - PrometheusMetrics: request count, latency and in-flight instrumentation

Every middleware here has the http.HandlerFunc signature; the api package
adapts them to chi with its chiMiddleware helper:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(chiMiddleware(middleware.Compression))

PrometheusMetrics labels requests by chi route pattern, falling back to the
raw path when no route matched, so path parameters such as creator IDs do
not explode label cardinality.
*/
package middleware
