// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/tomtom215/coomono/internal/models"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateUpstream(); err != nil {
		return err
	}

	if err := c.validateInstances(); err != nil {
		return err
	}

	if err := c.validateDirectory(); err != nil {
		return err
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validEnvironments defines the allowed server environments
var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

func (c *Config) validateUpstream() error {
	if c.Upstream.Scheme != "http" && c.Upstream.Scheme != "https" {
		return fmt.Errorf("UPSTREAM_SCHEME must be http or https, got: %s", c.Upstream.Scheme)
	}
	if c.Upstream.Scheme == "http" && c.IsProduction() {
		return fmt.Errorf("UPSTREAM_SCHEME=http is not allowed in production")
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if c.Upstream.WaitCeiling <= 0 {
		return fmt.Errorf("DIRECTORY_WAIT_CEILING must be positive")
	}
	if c.Upstream.FetchTimeout < 0 {
		return fmt.Errorf("DIRECTORY_FETCH_TIMEOUT must not be negative")
	}
	return c.validateBreaker()
}

func (c *Config) validateBreaker() error {
	b := c.Upstream.Breaker
	if !b.Enabled {
		return nil
	}
	if b.FailureThreshold <= 0 || b.FailureThreshold > 1 {
		return fmt.Errorf("CIRCUIT_BREAKER_FAILURE_THRESHOLD must be in (0, 1]")
	}
	if b.MinRequests == 0 {
		return fmt.Errorf("CIRCUIT_BREAKER_MIN_REQUESTS must be at least 1")
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("CIRCUIT_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

// validateInstances rejects extra instances that are not bare domains once
// normalized, and duplicates.
func (c *Config) validateInstances() error {
	seen := make(map[string]bool)
	for _, inst := range models.DefaultInstances() {
		seen[inst.URL] = true
	}
	for i, inst := range c.Instances {
		domain := models.NormalizeInstanceURL(inst.URL)
		if domain == "" {
			return fmt.Errorf("instances[%d]: url is required", i)
		}
		if strings.ContainsAny(domain, "/?#@ ") {
			return fmt.Errorf("instances[%d]: url must be a domain, got: %s", i, inst.URL)
		}
		if seen[domain] {
			return fmt.Errorf("instances[%d]: duplicate instance %s", i, domain)
		}
		seen[domain] = true
	}
	return nil
}

func (c *Config) validateDirectory() error {
	if c.Directory.RefreshInterval < 0 {
		return fmt.Errorf("DIRECTORY_REFRESH_INTERVAL must not be negative")
	}
	if c.Directory.RefreshInterval > 0 && c.Directory.RefreshInterval < time.Minute {
		return fmt.Errorf("DIRECTORY_REFRESH_INTERVAL must be at least 1m when set")
	}
	if _, err := language.Parse(c.Directory.Language); err != nil {
		return fmt.Errorf("DIRECTORY_LANGUAGE is not a valid language tag: %w", err)
	}
	return nil
}

// LanguageTag returns the parsed collation language, English when invalid.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Directory.Language)
	if err != nil {
		return language.English
	}
	return tag
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required unless STORE_IN_MEMORY=true")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be at least API_DEFAULT_PAGE_SIZE")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
