// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Creator Directory Metrics:
  - directory_cache_lookups_total: Registry lookups by outcome (counter)
    Labels: result (hit, miss, coalesced, wait_timeout)
  - directory_fetch_total: Upstream directory fetches (counter)
    Labels: instance, result (success, failure)
  - directory_fetch_duration_seconds: Directory fetch latency (histogram)
    Labels: instance
  - directory_cache_entries: Cache entries by state (gauge)
    Labels: state (pending, ready, failed)
  - directory_creators: Creators in the last loaded directory (gauge)
    Labels: instance

Upstream Metrics:
  - upstream_requests_total: Requests to creator archives (counter)
    Labels: instance, endpoint, status
  - upstream_request_duration_seconds: Upstream latency (histogram)
    Labels: endpoint

Instance Metrics:
  - instance_switches_total: Current-instance changes (counter)
    Labels: result (success, fallback, rejected)
  - instance_current: 1 for the active instance domain (gauge)
    Labels: instance

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
    Labels: name
  - circuit_breaker_requests_total: Requests through a breaker (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_consecutive_failures: Current failure streak (gauge)
    Labels: name
  - circuit_breaker_state_transitions_total: State changes (counter)
    Labels: name, from_state, to_state

# Example Queries

	# Directory cache hit ratio
	sum(rate(directory_cache_lookups_total{result="hit"}[5m]))
	  / sum(rate(directory_cache_lookups_total[5m]))

	# Upstream error rate per instance
	sum by (instance) (rate(upstream_requests_total{status!~"2.."}[5m]))
*/
package metrics
