// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/coomono/internal/metrics"
	"github.com/tomtom215/coomono/internal/models"
)

// Client defines the archive API operations. Both HTTPClient and
// CircuitBreakerClient implement it.
type Client interface {
	FetchCreators(ctx context.Context, domain string) ([]models.Creator, error)
	FetchProfile(ctx context.Context, domain, service, id string) (*models.CreatorProfile, error)
	FetchPosts(ctx context.Context, domain, service, id string, offset int) ([]models.Post, error)
	FetchLegacyPosts(ctx context.Context, domain, service, id string, offset int) (*models.LegacyPostsResponse, error)
	FetchPost(ctx context.Context, domain, service, id, postID string) (*models.PostResponse, error)
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

// maxErrorBody bounds how much of an error response is kept in StatusError.
const maxErrorBody = 512

// Config holds HTTP client settings.
type Config struct {
	// Scheme used to reach instances, "https" in production.
	Scheme string

	// Timeout per request.
	Timeout time.Duration

	// UserAgent sent with every request.
	UserAgent string
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Scheme:    "https",
		Timeout:   30 * time.Second,
		UserAgent: "Coomono/1.0",
	}
}

// HTTPClient is a plain net/http client for archive instances.
type HTTPClient struct {
	scheme     string
	userAgent  string
	httpClient *http.Client
}

// NewHTTPClient creates a client. Zero fields in cfg fall back to DefaultConfig.
func NewHTTPClient(cfg Config) *HTTPClient {
	def := DefaultConfig()
	if cfg.Scheme == "" {
		cfg.Scheme = def.Scheme
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}

	return &HTTPClient{
		scheme:    cfg.Scheme,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// FetchCreators retrieves the full creator directory of an instance.
// The endpoint is named .txt but serves a JSON array.
func (c *HTTPClient) FetchCreators(ctx context.Context, domain string) ([]models.Creator, error) {
	var creators []models.Creator
	if err := c.getJSON(ctx, domain, "creators", "/creators.txt", nil, &creators); err != nil {
		return nil, err
	}
	if creators == nil {
		creators = []models.Creator{}
	}
	return creators, nil
}

// FetchProfile retrieves a creator profile.
func (c *HTTPClient) FetchProfile(ctx context.Context, domain, service, id string) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	if err := c.getJSON(ctx, domain, "profile", userPath(service, id, "profile"), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// FetchPosts retrieves one page of posts starting at offset.
func (c *HTTPClient) FetchPosts(ctx context.Context, domain, service, id string, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := c.getJSON(ctx, domain, "posts", userPath(service, id, "posts"), offsetQuery(offset), &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// FetchLegacyPosts retrieves one page from the posts-legacy endpoint, which
// carries previews and attachments alongside the posts.
func (c *HTTPClient) FetchLegacyPosts(ctx context.Context, domain, service, id string, offset int) (*models.LegacyPostsResponse, error) {
	var resp models.LegacyPostsResponse
	if err := c.getJSON(ctx, domain, "posts-legacy", userPath(service, id, "posts-legacy"), offsetQuery(offset), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchPost retrieves a single post with its attachments, previews and videos.
func (c *HTTPClient) FetchPost(ctx context.Context, domain, service, id, postID string) (*models.PostResponse, error) {
	var resp models.PostResponse
	path := userPath(service, id, "post") + "/" + url.PathEscape(postID)
	if err := c.getJSON(ctx, domain, "post", path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BaseURL returns the API root for domain.
func (c *HTTPClient) BaseURL(domain string) string {
	return c.scheme + "://" + domain + "/api/v1"
}

// getJSON performs a GET and decodes a 2xx body into out. endpoint is the
// short name used in errors and metric labels.
func (c *HTTPClient) getJSON(ctx context.Context, domain, endpoint, path string, query url.Values, out interface{}) error {
	if domain == "" || strings.ContainsAny(domain, "/?#@ ") {
		return fmt.Errorf("invalid instance domain %q", domain)
	}

	fullURL := c.BaseURL(domain) + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, fullURL)
	if err != nil {
		metrics.RecordUpstreamRequest(domain, endpoint, 0, time.Since(start))
		return fmt.Errorf("%s %s request failed: %w", domain, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordUpstreamRequest(domain, endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Domain:     domain,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response from %s: %w", endpoint, domain, err)
	}
	return nil
}

// doRequest performs an HTTP GET request against an instance.
func (c *HTTPClient) doRequest(ctx context.Context, fullURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Archive instances serve text/html without an explicit JSON Accept.
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	return c.httpClient.Do(req)
}

// userPath builds /{service}/user/{id}/{suffix} with escaped segments.
func userPath(service, id, suffix string) string {
	return "/" + url.PathEscape(service) + "/user/" + url.PathEscape(id) + "/" + suffix
}

func offsetQuery(offset int) url.Values {
	if offset <= 0 {
		return nil
	}
	return url.Values{"o": []string{strconv.Itoa(offset)}}
}
