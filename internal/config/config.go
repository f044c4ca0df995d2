// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Upstream  UpstreamConfig   `koanf:"upstream"`
	Instances []InstanceConfig `koanf:"instances"` // Extra instances offered next to the built-in ones
	Directory DirectoryConfig  `koanf:"directory"`
	Store     StoreConfig      `koanf:"store"`
	API       APIConfig        `koanf:"api"`
	Security  SecurityConfig   `koanf:"security"`
	Logging   LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging or production
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// UpstreamConfig holds settings for the archive instances' API.
type UpstreamConfig struct {
	// Scheme is http or https. Only tests and local mirrors use http.
	Scheme    string        `koanf:"scheme"`
	Timeout   time.Duration `koanf:"timeout"`
	UserAgent string        `koanf:"user_agent"`

	// WaitCeiling bounds how long a request waits on another request's
	// in-flight directory fetch.
	WaitCeiling time.Duration `koanf:"wait_ceiling"`

	// FetchTimeout bounds a single creator directory download. The
	// directory is large, so this is longer than Timeout.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the per-instance circuit breakers.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	MinRequests      uint32        `koanf:"min_requests"`
	FailureThreshold float64       `koanf:"failure_threshold"`
}

// InstanceConfig is an extra instance offered at startup.
type InstanceConfig struct {
	Name string `koanf:"name"`
	URL  string `koanf:"url"`
}

// DirectoryConfig controls creator directory loading.
type DirectoryConfig struct {
	// WarmOnStart loads the current instance's directory before serving.
	WarmOnStart bool `koanf:"warm_on_start"`

	// RefreshInterval reloads the current directory periodically.
	// Zero disables refreshing.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// Language is the BCP 47 tag used to collate creator names.
	Language string `koanf:"language"`
}

// StoreConfig holds instance settings persistence.
type StoreConfig struct {
	Path       string `koanf:"path"`
	InMemory   bool   `koanf:"in_memory"`
	SyncWrites bool   `koanf:"sync_writes"`
}

// APIConfig holds API pagination settings.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// String summarizes the configuration for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("addr=%s scheme=%s instances=%d store=%s", c.Server.Addr(), c.Upstream.Scheme, len(c.Instances), c.storeDescription())
}

func (c *Config) storeDescription() string {
	if c.Store.InMemory {
		return "memory"
	}
	return c.Store.Path
}
