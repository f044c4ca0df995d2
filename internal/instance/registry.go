// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package instance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/coomono/internal/logging"
	"github.com/tomtom215/coomono/internal/metrics"
	"github.com/tomtom215/coomono/internal/models"
)

// ErrWaitTimeout is returned to a caller that waited on another caller's
// in-flight fetch for longer than the wait ceiling.
var ErrWaitTimeout = errors.New("timed out waiting for in-flight creator directory fetch")

// State is the lifecycle state of a cache entry.
type State string

const (
	StatePending State = "pending"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Fetcher retrieves the creator directory of one domain.
// upstream.Client satisfies it.
type Fetcher interface {
	FetchCreators(ctx context.Context, domain string) ([]models.Creator, error)
}

// Config tunes the registry.
type Config struct {
	// WaitCeiling bounds how long a caller waits on another caller's fetch.
	WaitCeiling time.Duration

	// FetchTimeout bounds a single upstream fetch. Zero leaves it to the
	// fetcher's own timeout.
	FetchTimeout time.Duration
}

// DefaultConfig returns the default registry settings.
func DefaultConfig() Config {
	return Config{
		WaitCeiling:  10 * time.Second,
		FetchTimeout: 60 * time.Second,
	}
}

// entry is one domain's cache slot.
type entry struct {
	state     State
	data      []models.Creator
	err       error
	timestamp time.Time
}

// EntryStatus is a read-only view of a cache entry.
type EntryStatus struct {
	Domain    string    `json:"domain"`
	State     State     `json:"state"`
	Creators  int       `json:"creators"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidationResult reports the outcome of Validate.
type ValidationResult struct {
	IsValid bool   `json:"is_valid"`
	Error   string `json:"error,omitempty"`
}

// Registry is the instance list, current selection and directory cache.
// Construct one per process and pass it to its consumers.
type Registry struct {
	fetcher Fetcher
	cfg     Config
	now     func() time.Time

	mu        sync.RWMutex
	instances []models.Instance
	current   models.Instance
	cache     map[string]*entry

	group singleflight.Group
}

// New creates a registry seeded with the built-in instances; the first one
// is current.
func New(fetcher Fetcher, cfg Config) *Registry {
	if cfg.WaitCeiling <= 0 {
		cfg.WaitCeiling = DefaultConfig().WaitCeiling
	}
	defaults := models.DefaultInstances()
	return &Registry{
		fetcher:   fetcher,
		cfg:       cfg,
		now:       time.Now,
		instances: defaults,
		current:   defaults[0],
		cache:     make(map[string]*entry),
	}
}

// Current returns the active instance.
func (r *Registry) Current() models.Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// SetCurrent normalizes inst and makes it the active instance. The cache is
// left untouched so returning to a visited instance is free.
func (r *Registry) SetCurrent(inst models.Instance) {
	inst = inst.Normalized()
	r.mu.Lock()
	r.current = inst
	r.mu.Unlock()

	logging.Info().Str("instance", inst.URL).Str("name", inst.Name).Msg("Current instance changed")
}

// List returns the known instances, built-ins first, in insertion order.
func (r *Registry) List() []models.Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Instance, len(r.instances))
	copy(out, r.instances)
	return out
}

// Find returns the known instance whose URL equals the normalized url.
func (r *Registry) Find(url string) (models.Instance, bool) {
	url = models.NormalizeInstanceURL(url)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, inst := range r.instances {
		if inst.URL == url {
			return inst, true
		}
	}
	return models.Instance{}, false
}

// Add normalizes inst and appends it unless an instance with the same URL is
// already known. It returns the normalized instance and whether it was added.
func (r *Registry) Add(inst models.Instance) (models.Instance, bool) {
	inst = inst.Normalized()
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, known := range r.instances {
		if known.URL == inst.URL {
			return inst, false
		}
	}
	r.instances = append(r.instances, inst)
	return inst, true
}

// Validate reports whether inst serves a creator directory. The current
// instance is never modified. A previously cached failure for the domain is
// dropped first so a fixed instance can be re-validated.
func (r *Registry) Validate(ctx context.Context, inst models.Instance) ValidationResult {
	domain := models.NormalizeInstanceURL(inst.URL)
	if domain == "" {
		return ValidationResult{Error: "instance URL is empty"}
	}

	r.mu.Lock()
	if e, ok := r.cache[domain]; ok && e.state == StateFailed {
		delete(r.cache, domain)
		r.publishLocked()
	}
	r.mu.Unlock()

	if _, err := r.FetchDirectory(ctx, domain); err != nil {
		logging.Warn().Err(err).Str("instance", domain).Msg("Instance validation failed")
		return ValidationResult{Error: err.Error()}
	}
	return ValidationResult{IsValid: true}
}

// FetchCreatorDirectory returns the creator directory of the current instance.
func (r *Registry) FetchCreatorDirectory(ctx context.Context) ([]models.Creator, error) {
	return r.FetchDirectory(ctx, r.Current().URL)
}

// FetchDirectory returns the creator directory of domain, coalescing
// concurrent callers onto a single upstream fetch. The returned slice is
// shared between callers and must not be modified.
func (r *Registry) FetchDirectory(ctx context.Context, domain string) ([]models.Creator, error) {
	domain = models.NormalizeInstanceURL(domain)
	if domain == "" {
		return nil, errors.New("instance domain is empty")
	}

	r.mu.RLock()
	e, found := r.cache[domain]
	var state State
	var data []models.Creator
	var cachedErr error
	if found {
		state, data, cachedErr = e.state, e.data, e.err
	}
	r.mu.RUnlock()

	switch {
	case found && state == StateReady:
		metrics.RecordCacheLookup("hit")
		return data, nil
	case found && state == StateFailed:
		metrics.RecordCacheLookup("hit")
		return nil, cachedErr
	}

	waiter := found && state == StatePending
	if waiter {
		metrics.RecordCacheLookup("coalesced")
	} else {
		metrics.RecordCacheLookup("miss")
	}

	ch := r.group.DoChan(domain, func() (interface{}, error) {
		return r.load(domain)
	})

	var ceiling <-chan time.Time
	if waiter {
		timer := time.NewTimer(r.cfg.WaitCeiling)
		defer timer.Stop()
		ceiling = timer.C
	}

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		creators, _ := res.Val.([]models.Creator)
		return creators, nil
	case <-ceiling:
		metrics.RecordCacheLookup("wait_timeout")
		logging.Warn().Str("instance", domain).Dur("ceiling", r.cfg.WaitCeiling).
			Msg("Gave up waiting for in-flight creator directory fetch")
		return nil, fmt.Errorf("%s: %w", domain, ErrWaitTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// load performs the single fetch for domain. It runs inside the singleflight
// call, so at most one load per domain is active.
func (r *Registry) load(domain string) ([]models.Creator, error) {
	r.mu.Lock()
	if e, ok := r.cache[domain]; ok && e.state != StatePending {
		// Settled by a flight that finished before this one started.
		r.mu.Unlock()
		return e.data, e.err
	}
	r.cache[domain] = &entry{state: StatePending, timestamp: r.now()}
	r.publishLocked()
	r.mu.Unlock()

	ctx := context.Background()
	if r.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.FetchTimeout)
		defer cancel()
	}

	start := time.Now()
	creators, err := r.fetcher.FetchCreators(ctx, domain)
	metrics.RecordDirectoryFetch(domain, time.Since(start), len(creators), err)

	settled := &entry{timestamp: r.now()}
	if err != nil {
		creators = nil
		settled.state, settled.err = StateFailed, err
		logging.Error().Err(err).Str("instance", domain).Msg("Creator directory fetch failed")
	} else {
		if creators == nil {
			creators = []models.Creator{}
		}
		settled.state, settled.data = StateReady, creators
		logging.Info().Str("instance", domain).Int("creators", len(creators)).
			Dur("duration", time.Since(start)).Msg("Creator directory loaded")
	}

	// Written even if the slot was cleared meanwhile: the result belongs to
	// this domain no matter what the caller has moved on to.
	r.mu.Lock()
	r.cache[domain] = settled
	r.publishLocked()
	r.mu.Unlock()

	return creators, err
}

// ClearCache removes the cache entry for domain.
func (r *Registry) ClearCache(domain string) {
	domain = models.NormalizeInstanceURL(domain)
	r.mu.Lock()
	delete(r.cache, domain)
	r.publishLocked()
	r.mu.Unlock()

	logging.Info().Str("instance", domain).Msg("Creator directory cache cleared")
}

// ClearAllCaches removes every cache entry.
func (r *Registry) ClearAllCaches() {
	r.mu.Lock()
	r.cache = make(map[string]*entry)
	r.publishLocked()
	r.mu.Unlock()

	logging.Info().Msg("All creator directory caches cleared")
}

// Snapshot returns the state of every cache entry, sorted by domain.
func (r *Registry) Snapshot() []EntryStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]EntryStatus, 0, len(r.cache))
	for domain, e := range r.cache {
		s := EntryStatus{
			Domain:    domain,
			State:     e.state,
			Creators:  len(e.data),
			Timestamp: e.timestamp,
		}
		if e.err != nil {
			s.Error = e.err.Error()
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Domain < out[j].Domain })
	return out
}

// publishLocked updates the cache gauges. Callers hold r.mu.
func (r *Registry) publishLocked() {
	var pending, ready, failed int
	for _, e := range r.cache {
		switch e.state {
		case StatePending:
			pending++
		case StateReady:
			ready++
		case StateFailed:
			failed++
		}
	}
	metrics.SetCacheEntries(pending, ready, failed)
}
