// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package upstream

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/coomono/internal/logging"
	"github.com/tomtom215/coomono/internal/metrics"
	"github.com/tomtom215/coomono/internal/models"
)

// Ensure CircuitBreakerClient implements Client
var _ Client = (*CircuitBreakerClient)(nil)

// BreakerConfig tunes the per-domain breakers.
type BreakerConfig struct {
	// MaxRequests allowed through in half-open state.
	MaxRequests uint32

	// Interval after which closed-state counts reset.
	Interval time.Duration

	// Timeout spent open before probing again.
	Timeout time.Duration

	// MinRequests before the failure ratio is considered.
	MinRequests uint32

	// FailureRatio at or above which the breaker opens.
	FailureRatio float64
}

// DefaultBreakerConfig mirrors the settings used for every upstream breaker:
// 3 half-open probes, 1 minute window, 2 minute open timeout, opening at a
// 60% failure rate over at least 10 requests.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// CircuitBreakerClient wraps a Client with one circuit breaker per domain.
//
// DETERMINISM NOTE: gobreaker uses wall-clock time for its interval and
// timeout calculations.
type CircuitBreakerClient struct {
	client Client
	cfg    BreakerConfig

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[interface{}]
}

// NewCircuitBreakerClient wraps client. Breakers are created lazily on the
// first request to each domain.
func NewCircuitBreakerClient(client Client, cfg BreakerConfig) *CircuitBreakerClient {
	return &CircuitBreakerClient{
		client:   client,
		cfg:      cfg,
		breakers: make(map[string]*gobreaker.CircuitBreaker[interface{}]),
	}
}

// breakerName is the metric label for a domain's breaker.
func breakerName(domain string) string {
	return "upstream:" + domain
}

// breaker returns the breaker for domain, creating it on first use.
func (cbc *CircuitBreakerClient) breaker(domain string) *gobreaker.CircuitBreaker[interface{}] {
	cbc.mu.Lock()
	defer cbc.mu.Unlock()

	if cb, ok := cbc.breakers[domain]; ok {
		return cb
	}

	name := breakerName(domain)
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cfg := cbc.cfg
	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				logging.Warn().Str("instance", domain).Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening upstream circuit")
			}
			return shouldTrip
		},

		// A 404 proves the instance is alive; it must not count toward tripping.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("instance", domain).Str("from", fromStr).Str("to", toStr).
				Msg("[CIRCUIT BREAKER] Upstream state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	cbc.breakers[domain] = cb
	return cb
}

// execute wraps an upstream call with the domain's circuit breaker.
func (cbc *CircuitBreakerClient) execute(domain string, fn func() (interface{}, error)) (interface{}, error) {
	cb := cbc.breaker(domain)
	name := breakerName(domain)

	result, err := cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(name, "rejected").Inc()
			logging.Warn().Err(err).Str("instance", domain).Msg("[CIRCUIT BREAKER] Upstream request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(name, "failure").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(float64(cb.Counts().ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
	return result, nil
}

// call runs fn through execute and restores the concrete result type.
func call[T any](cbc *CircuitBreakerClient, domain string, fn func() (T, error)) (T, error) {
	var zero T
	result, err := cbc.execute(domain, func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, errors.New("circuit breaker: unexpected result type")
	}
	return typed, nil
}

// FetchCreators retrieves the creator directory with circuit breaker protection.
func (cbc *CircuitBreakerClient) FetchCreators(ctx context.Context, domain string) ([]models.Creator, error) {
	return call(cbc, domain, func() ([]models.Creator, error) {
		return cbc.client.FetchCreators(ctx, domain)
	})
}

// FetchProfile retrieves a creator profile with circuit breaker protection.
func (cbc *CircuitBreakerClient) FetchProfile(ctx context.Context, domain, service, id string) (*models.CreatorProfile, error) {
	return call(cbc, domain, func() (*models.CreatorProfile, error) {
		return cbc.client.FetchProfile(ctx, domain, service, id)
	})
}

// FetchPosts retrieves a posts page with circuit breaker protection.
func (cbc *CircuitBreakerClient) FetchPosts(ctx context.Context, domain, service, id string, offset int) ([]models.Post, error) {
	return call(cbc, domain, func() ([]models.Post, error) {
		return cbc.client.FetchPosts(ctx, domain, service, id, offset)
	})
}

// FetchLegacyPosts retrieves a legacy posts page with circuit breaker protection.
func (cbc *CircuitBreakerClient) FetchLegacyPosts(ctx context.Context, domain, service, id string, offset int) (*models.LegacyPostsResponse, error) {
	return call(cbc, domain, func() (*models.LegacyPostsResponse, error) {
		return cbc.client.FetchLegacyPosts(ctx, domain, service, id, offset)
	})
}

// FetchPost retrieves a single post with circuit breaker protection.
func (cbc *CircuitBreakerClient) FetchPost(ctx context.Context, domain, service, id, postID string) (*models.PostResponse, error) {
	return call(cbc, domain, func() (*models.PostResponse, error) {
		return cbc.client.FetchPost(ctx, domain, service, id, postID)
	})
}

// BreakerState is the public view of one domain's breaker.
type BreakerState struct {
	Domain              string `json:"domain"`
	State               string `json:"state"`
	ConsecutiveFailures uint32 `json:"consecutive_failures"`
}

// States returns the breakers created so far, sorted by domain.
func (cbc *CircuitBreakerClient) States() []BreakerState {
	cbc.mu.Lock()
	defer cbc.mu.Unlock()

	states := make([]BreakerState, 0, len(cbc.breakers))
	for domain, cb := range cbc.breakers {
		states = append(states, BreakerState{
			Domain:              domain,
			State:               stateToString(cb.State()),
			ConsecutiveFailures: cb.Counts().ConsecutiveFailures,
		})
	}
	sort.Slice(states, func(i, j int) bool { return states[i].Domain < states[j].Domain })
	return states
}

// stateToFloat converts circuit breaker state to a gauge value.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
