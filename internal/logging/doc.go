// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

// Package logging provides centralized zerolog-based structured logging for Coomono.
//
// The package keeps one global zerolog logger behind a small facade so every
// component logs the same way:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("instance", domain).Msg("Creator directory loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Upstream request failed")
//
// Ctx adds request_id and correlation_id from the request context, which the
// API layer populates for every request. WithComponent and WithInstance build
// child loggers carrying a fixed field.
//
// # Configuration
//
// Environment Variables (via internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller info (default: false)
//
// # Suture Integration
//
// NewSlogLogger returns an *slog.Logger backed by zerolog, used for the
// sutureslog event hook in internal/supervisor.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
