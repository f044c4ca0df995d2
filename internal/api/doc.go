// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

/*
Package api serves the gateway's HTTP API with the chi router.

Every response uses the envelope written by ResponseWriter:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "Creator not found"}, "meta": {...}}

# Endpoints

Health:
  - GET /api/v1/health/live
  - GET /api/v1/health/ready

Instances:
  - GET /api/v1/instances
  - POST /api/v1/instances
  - POST /api/v1/instances/validate
  - GET /api/v1/instances/current
  - PUT /api/v1/instances/current

Creators:
  - GET /api/v1/creators?q=&service=&sort=&order=&limit=&offset=
  - POST /api/v1/creators/refresh
  - GET /api/v1/creators/{service}/{id}
  - GET /api/v1/creators/{service}/{id}/posts?o=&legacy=&media=&order=
  - GET /api/v1/creators/{service}/{id}/posts/{postID}

Cache and media:
  - GET /api/v1/cache
  - DELETE /api/v1/cache?domain= or ?all=true
  - GET /api/v1/media/url?path=&server=&kind=

Prometheus metrics are served at GET /metrics.

A creator list whose directory cannot be loaded is still a 200 response: the
list is empty and data.error carries the reason.
*/
package api
