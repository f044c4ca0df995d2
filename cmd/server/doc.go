// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

/*
Package main is the entry point for the Coomono gateway.

Coomono fronts a set of creator gallery instances (coomer.su and kemono.su
by default, plus any the user adds). It caches each instance's creator
directory, serves filtered and sorted creator listings, proxies creator
profiles and posts, and derives media URLs for the current instance.

# Application Architecture

	RootSupervisor ("coomono")
	├── CacheSupervisor ("cache-layer")
	│   └── Directory refresh (warm on start, periodic reload)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router, /api/v1)

Initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog, JSON or console
 3. Instance store: BadgerDB holding added instances and the current selection
 4. Upstream client: HTTP with per-instance gobreaker circuit breakers
 5. Registry and directory: directory cache with request coalescing
 6. Restore: re-add saved instances and re-select the saved current one
 7. Supervisor tree: directory refresh and HTTP server

# Configuration

Highest priority wins:
  - Environment variables (HTTP_PORT, UPSTREAM_SCHEME, STORE_PATH, ...)
  - Config file (config.yaml, or the path in CONFIG_PATH)
  - Built-in defaults

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains for up
to SHUTDOWN_TIMEOUT, then the instance store is closed.

# Example Usage

	export STORE_PATH=/var/lib/coomono
	export DIRECTORY_WARM_ON_START=true
	./coomono

	docker run -d -p 8085:8085 -v coomono:/data ghcr.io/tomtom215/coomono
*/
package main
