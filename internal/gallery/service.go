// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

// Package gallery composes the instance registry, creator directory and
// upstream client into the operations the API serves: listing creators,
// switching and adding instances, and creator, posts and post lookups with
// derived media files.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/tomtom215/coomono/internal/directory"
	"github.com/tomtom215/coomono/internal/instance"
	"github.com/tomtom215/coomono/internal/logging"
	"github.com/tomtom215/coomono/internal/media"
	"github.com/tomtom215/coomono/internal/metrics"
	"github.com/tomtom215/coomono/internal/models"
	"github.com/tomtom215/coomono/internal/store"
	"github.com/tomtom215/coomono/internal/upstream"
)

var (
	// ErrCreatorNotFound is returned when neither the directory nor the
	// profile endpoint knows a creator.
	ErrCreatorNotFound = errors.New("creator not found")

	// ErrPostNotFound is returned when the instance has no such post.
	ErrPostNotFound = errors.New("post not found")

	// ErrInvalidInstance is returned when an instance fails its trial fetch.
	ErrInvalidInstance = errors.New("invalid instance")

	// ErrUnknownInstance is returned when switching to an instance that was
	// never added.
	ErrUnknownInstance = errors.New("unknown instance")
)

// InstanceStore persists instance settings. *store.InstanceStore implements it.
type InstanceStore interface {
	SaveInstance(inst models.Instance) (bool, error)
	Instances() ([]models.Instance, error)
	SaveCurrent(url string) error
	Current() (string, error)
}

// Service implements the gallery operations.
type Service struct {
	registry *instance.Registry
	dir      *directory.Directory
	client   upstream.Client
	store    InstanceStore
	policy   *bluemonday.Policy
	classify media.Classifier
	now      func() time.Time
}

// New creates the service. st may be nil, in which case nothing is persisted.
func New(registry *instance.Registry, dir *directory.Directory, client upstream.Client, st InstanceStore) *Service {
	policy := bluemonday.UGCPolicy()
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Service{
		registry: registry,
		dir:      dir,
		client:   client,
		store:    st,
		policy:   policy,
		classify: media.ClassifyByExtension,
		now:      time.Now,
	}
}

// Registry exposes the instance registry.
func (s *Service) Registry() *instance.Registry {
	return s.registry
}

// LookupStats reports the directory's profile and posts caches.
func (s *Service) LookupStats() directory.LookupStats {
	return s.dir.LookupStats()
}

// URLs returns a media URL builder for the current instance.
func (s *Service) URLs() media.URLBuilder {
	return media.NewURLBuilder(s.registry.Current().URL).WithClassifier(s.classify)
}

// Restore re-adds persisted instances and re-selects the persisted current
// instance when it is known. It does not fetch anything.
func (s *Service) Restore() error {
	if s.store == nil {
		return nil
	}

	saved, err := s.store.Instances()
	if err != nil {
		return fmt.Errorf("load saved instances: %w", err)
	}
	for _, inst := range saved {
		s.registry.Add(inst)
	}

	url, err := s.store.Current()
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("load current instance: %w", err)
	}

	if inst, ok := s.registry.Find(url); ok {
		s.registry.SetCurrent(inst)
	} else {
		logging.Warn().Str("instance", url).Msg("Saved current instance is no longer known, keeping default")
	}

	logging.Info().Int("instances", len(saved)).Str("current", s.registry.Current().URL).Msg("Instance settings restored")
	return nil
}

// EnsureCreatorsLoaded loads the current instance's directory into the
// creator directory when the held list belongs to another instance.
func (s *Service) EnsureCreatorsLoaded(ctx context.Context) error {
	domain := s.registry.Current().URL
	if !s.dir.IsStale(domain) {
		return nil
	}
	return s.loadInto(ctx, domain)
}

// RefreshCreators drops the current instance's cached directory and reloads it.
func (s *Service) RefreshCreators(ctx context.Context) error {
	domain := s.registry.Current().URL
	s.registry.ClearCache(domain)
	return s.loadInto(ctx, domain)
}

func (s *Service) loadInto(ctx context.Context, domain string) error {
	creators, err := s.registry.FetchDirectory(ctx, domain)
	if err != nil {
		return err
	}
	if s.dir.CurrentDomain() != domain {
		s.dir.ClearCreatorData()
	}
	s.dir.Replace(domain, creators)
	return nil
}

// SwitchInstance makes the known instance at url current and loads its
// directory. When loading fails the first default instance becomes current
// instead and the returned error wraps ErrInvalidInstance; the returned
// instance is then the fallback.
func (s *Service) SwitchInstance(ctx context.Context, url string) (models.Instance, error) {
	target, ok := s.registry.Find(url)
	if !ok {
		metrics.RecordInstanceSwitch("rejected", "")
		return models.Instance{}, fmt.Errorf("%w: %s", ErrUnknownInstance, models.NormalizeInstanceURL(url))
	}

	previous := s.registry.Current()
	s.registry.SetCurrent(target)

	err := s.EnsureCreatorsLoaded(ctx)
	if err == nil {
		s.persistCurrent(target.URL)
		metrics.RecordInstanceSwitch("success", target.URL)
		return target, nil
	}

	if ctx.Err() != nil {
		// The caller went away; that says nothing about the instance.
		s.registry.SetCurrent(previous)
		return previous, err
	}

	fallback := s.fallbackFor(target)
	s.registry.SetCurrent(fallback)
	s.persistCurrent(fallback.URL)
	metrics.RecordInstanceSwitch("fallback", fallback.URL)

	logging.Ctx(ctx).Warn().Err(err).Str("instance", target.URL).Str("fallback", fallback.URL).
		Msg("Instance switch failed, falling back to default instance")

	if loadErr := s.EnsureCreatorsLoaded(ctx); loadErr != nil {
		logging.Ctx(ctx).Error().Err(loadErr).Str("instance", fallback.URL).Msg("Fallback instance directory unavailable")
	}
	return fallback, fmt.Errorf("%w: %s: %v", ErrInvalidInstance, target.URL, err)
}

// fallbackFor returns the first default instance other than failed, or the
// first default when failed is the only one.
func (s *Service) fallbackFor(failed models.Instance) models.Instance {
	var first *models.Instance
	for _, inst := range s.registry.List() {
		if !inst.IsDefault {
			continue
		}
		if first == nil {
			inst := inst
			first = &inst
		}
		if inst.URL != failed.URL {
			return inst
		}
	}
	if first != nil {
		return *first
	}
	return models.DefaultInstances()[0]
}

// AddInstance validates inst with a trial directory fetch and, if it
// answers, adds and persists it. With activate the instance also becomes
// current. Adding an already known URL skips validation.
func (s *Service) AddInstance(ctx context.Context, inst models.Instance, activate bool) (models.Instance, error) {
	inst = inst.Normalized()
	inst.IsDefault = false
	if inst.URL == "" {
		return models.Instance{}, fmt.Errorf("%w: empty URL", ErrInvalidInstance)
	}
	if inst.Name == "" {
		inst.Name = inst.URL
	}

	if known, ok := s.registry.Find(inst.URL); ok {
		if activate {
			return s.SwitchInstance(ctx, known.URL)
		}
		return known, nil
	}

	if res := s.registry.Validate(ctx, inst); !res.IsValid {
		metrics.RecordInstanceSwitch("rejected", inst.URL)
		return models.Instance{}, fmt.Errorf("%w: %s: %s", ErrInvalidInstance, inst.URL, res.Error)
	}

	s.registry.Add(inst)
	if s.store != nil {
		if _, err := s.store.SaveInstance(inst); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("instance", inst.URL).Msg("Failed to persist added instance")
		}
	}
	logging.Ctx(ctx).Info().Str("instance", inst.URL).Str("name", inst.Name).Msg("Instance added")

	if activate {
		return s.SwitchInstance(ctx, inst.URL)
	}
	return inst, nil
}

func (s *Service) persistCurrent(url string) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveCurrent(url); err != nil {
		logging.Warn().Err(err).Str("instance", url).Msg("Failed to persist current instance")
	}
}

// sanitize strips unsafe markup from post HTML.
func (s *Service) sanitize(html string) string {
	if html == "" {
		return ""
	}
	return s.policy.Sanitize(html)
}
