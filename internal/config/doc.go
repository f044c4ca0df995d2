// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

/*
Package config provides configuration loading and validation for Coomono.

Configuration is layered with koanf: built-in defaults, then an optional YAML
file, then environment variables. The first existing file among
DefaultConfigPaths is used unless CONFIG_PATH names another one.

# Sections

  - server: listen address, timeouts, environment
  - upstream: scheme, request timeout, user agent, directory wait ceiling
    and fetch timeout, circuit breaker tuning
  - instances: extra instances offered next to the built-in ones (YAML only)
  - directory: warm-up, periodic refresh, collation language
  - store: badger path or in-memory mode
  - api: default and maximum page sizes
  - security: CORS origins and rate limiting
  - logging: level, format, caller

# Environment Variables

Only mapped variables are read; see envMappings. Common ones:

  - HTTP_PORT, HTTP_HOST, ENVIRONMENT
  - UPSTREAM_SCHEME, UPSTREAM_TIMEOUT, DIRECTORY_WAIT_CEILING
  - STORE_PATH, STORE_IN_MEMORY
  - CORS_ORIGINS (comma-separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Example

	instances:
	  - name: Mirror
	    url: mirror.example
	directory:
	  refresh_interval: 30m
	  language: sv
*/
package config
