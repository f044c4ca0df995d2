// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Creator Directory Metrics
	DirectoryCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_cache_lookups_total",
			Help: "Creator directory registry lookups by outcome",
		},
		[]string{"result"}, // hit, miss, coalesced, wait_timeout
	)

	DirectoryFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_fetch_total",
			Help: "Total number of upstream creator directory fetches",
		},
		[]string{"instance", "result"},
	)

	DirectoryFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "directory_fetch_duration_seconds",
			Help:    "Duration of creator directory fetches in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"instance"},
	)

	DirectoryCacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "directory_cache_entries",
			Help: "Creator directory cache entries by state",
		},
		[]string{"state"},
	)

	DirectoryCreators = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "directory_creators",
			Help: "Number of creators in the last loaded directory",
		},
		[]string{"instance"},
	)

	// Upstream Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of requests to creator archive instances",
		},
		[]string{"instance", "endpoint", "status"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Instance Metrics
	InstanceSwitches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instance_switches_total",
			Help: "Total number of current instance changes",
		},
		[]string{"result"}, // success, fallback, rejected
	)

	InstanceCurrent = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "instance_current",
			Help: "Set to 1 for the active instance domain",
		},
		[]string{"instance"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup counts a registry lookup outcome.
func RecordCacheLookup(result string) {
	DirectoryCacheLookups.WithLabelValues(result).Inc()
}

// RecordDirectoryFetch records one upstream directory fetch. creators is
// only applied on success.
func RecordDirectoryFetch(instance string, duration time.Duration, creators int, err error) {
	DirectoryFetchDuration.WithLabelValues(instance).Observe(duration.Seconds())
	if err != nil {
		DirectoryFetchTotal.WithLabelValues(instance, "failure").Inc()
		return
	}
	DirectoryFetchTotal.WithLabelValues(instance, "success").Inc()
	DirectoryCreators.WithLabelValues(instance).Set(float64(creators))
}

// SetCacheEntries publishes the registry entry count per state.
func SetCacheEntries(pending, ready, failed int) {
	DirectoryCacheEntries.WithLabelValues("pending").Set(float64(pending))
	DirectoryCacheEntries.WithLabelValues("ready").Set(float64(ready))
	DirectoryCacheEntries.WithLabelValues("failed").Set(float64(failed))
}

// RecordUpstreamRequest records a request to an archive instance. A zero
// status means the request never produced a response.
func RecordUpstreamRequest(instance, endpoint string, status int, duration time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequestsTotal.WithLabelValues(instance, endpoint, label).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordInstanceSwitch counts a current-instance change and, unless it was
// rejected, moves the instance_current marker to domain.
func RecordInstanceSwitch(result, domain string) {
	InstanceSwitches.WithLabelValues(result).Inc()
	if result == "rejected" || domain == "" {
		return
	}
	InstanceCurrent.Reset()
	InstanceCurrent.WithLabelValues(domain).Set(1)
}
