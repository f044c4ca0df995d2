// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package services

import (
	"context"
	"time"

	"github.com/tomtom215/coomono/internal/logging"
)

// DirectoryLoader loads the current instance's creator directory.
// *gallery.Service implements it.
type DirectoryLoader interface {
	EnsureCreatorsLoaded(ctx context.Context) error
	RefreshCreators(ctx context.Context) error
}

// DirectoryRefreshService warms the creator directory at startup and
// reloads it on an interval.
type DirectoryRefreshService struct {
	loader      DirectoryLoader
	warmOnStart bool
	interval    time.Duration
	name        string
}

// NewDirectoryRefreshService creates the service. A zero interval disables
// periodic refreshes; the service then only warms (if asked) and idles.
func NewDirectoryRefreshService(loader DirectoryLoader, warmOnStart bool, interval time.Duration) *DirectoryRefreshService {
	return &DirectoryRefreshService{
		loader:      loader,
		warmOnStart: warmOnStart,
		interval:    interval,
		name:        "directory-refresh",
	}
}

// Serve implements suture.Service. Load failures are logged, not returned:
// the directory cache already records them and a restart would not help.
func (s *DirectoryRefreshService) Serve(ctx context.Context) error {
	log := logging.WithComponent(s.name)

	if s.warmOnStart {
		start := time.Now()
		if err := s.loader.EnsureCreatorsLoaded(ctx); err != nil {
			log.Warn().Err(err).Msg("Initial creator directory load failed")
		} else {
			log.Info().Dur("duration", time.Since(start)).Msg("Creator directory warmed")
		}
	}

	if s.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.loader.RefreshCreators(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Warn().Err(err).Msg("Creator directory refresh failed")
				continue
			}
			log.Debug().Msg("Creator directory refreshed")
		}
	}
}

// String implements fmt.Stringer.
func (s *DirectoryRefreshService) String() string {
	return s.name
}
