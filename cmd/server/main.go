// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/coomono/internal/api"
	"github.com/tomtom215/coomono/internal/config"
	"github.com/tomtom215/coomono/internal/directory"
	"github.com/tomtom215/coomono/internal/gallery"
	"github.com/tomtom215/coomono/internal/instance"
	"github.com/tomtom215/coomono/internal/logging"
	"github.com/tomtom215/coomono/internal/models"
	"github.com/tomtom215/coomono/internal/store"
	"github.com/tomtom215/coomono/internal/supervisor"
	"github.com/tomtom215/coomono/internal/supervisor/services"
	"github.com/tomtom215/coomono/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().Str("config", cfg.String()).Msg("Starting Coomono")

	st, err := store.Open(store.Config{
		Path:       cfg.Store.Path,
		InMemory:   cfg.Store.InMemory,
		SyncWrites: cfg.Store.SyncWrites,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open instance store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing instance store")
		}
	}()

	svc, breakers := buildGallery(cfg, st)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	handler := api.NewHandler(svc, breakers, api.HandlerConfig{
		DefaultPageSize: cfg.API.DefaultPageSize,
		MaxPageSize:     cfg.API.MaxPageSize,
	})
	chiMW := api.NewChiMiddlewareFromConfig(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	if cfg.HasWildcardCORS() && cfg.IsProduction() {
		logging.Warn().Msg("CORS allows any origin")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, chiMW).SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// Creator pages may wait on a directory download.
		WriteTimeout: cfg.Server.Timeout + cfg.Upstream.FetchTimeout,
		IdleTimeout:  60 * time.Second,
	}

	tree.AddCacheService(services.NewDirectoryRefreshService(svc, cfg.Directory.WarmOnStart, cfg.Directory.RefreshInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, s := range unstopped {
		logging.Warn().Str("service", s.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Coomono stopped")
}

// buildGallery wires the upstream client, directory cache and instance
// registry into a gallery service and restores the saved instances. The
// returned BreakerReporter is nil when circuit breaking is disabled.
func buildGallery(cfg *config.Config, st *store.InstanceStore) (*gallery.Service, api.BreakerReporter) {
	httpClient := upstream.NewHTTPClient(upstream.Config{
		Scheme:    cfg.Upstream.Scheme,
		Timeout:   cfg.Upstream.Timeout,
		UserAgent: cfg.Upstream.UserAgent,
	})

	var client upstream.Client = httpClient
	var breakers api.BreakerReporter
	if b := cfg.Upstream.Breaker; b.Enabled {
		cb := upstream.NewCircuitBreakerClient(httpClient, upstream.BreakerConfig{
			MaxRequests:  b.MaxRequests,
			Interval:     b.Interval,
			Timeout:      b.Timeout,
			MinRequests:  b.MinRequests,
			FailureRatio: b.FailureThreshold,
		})
		client, breakers = cb, cb
	} else {
		logging.Warn().Msg("Upstream circuit breaker disabled")
	}

	reg := instance.New(client, instance.Config{
		WaitCeiling:  cfg.Upstream.WaitCeiling,
		FetchTimeout: cfg.Upstream.FetchTimeout,
	})
	svc := gallery.New(reg, directory.NewWithLanguage(cfg.LanguageTag()), client, st)

	for _, ic := range cfg.Instances {
		inst := models.Instance{Name: ic.Name, URL: ic.URL}.Normalized()
		if inst.Name == "" {
			inst.Name = inst.URL
		}
		if _, added := reg.Add(inst); added {
			logging.Info().Str("instance", inst.URL).Msg("Configured instance registered")
		}
	}

	if err := svc.Restore(); err != nil {
		logging.Warn().Err(err).Msg("Failed to restore saved instances, starting from defaults")
	}
	logging.Info().Str("instance", reg.Current().URL).Int("instances", len(reg.List())).Msg("Instance registry ready")

	return svc, breakers
}
