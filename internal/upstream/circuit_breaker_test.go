// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package upstream

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/coomono/internal/models"
)

// fakeClient fails every call for domains listed in failing.
type fakeClient struct {
	mu      sync.Mutex
	calls   map[string]int
	failing map[string]error
}

func newFakeClient(failing map[string]error) *fakeClient {
	return &fakeClient{calls: make(map[string]int), failing: failing}
}

func (f *fakeClient) record(domain string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[domain]++
	return f.failing[domain]
}

func (f *fakeClient) count(domain string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[domain]
}

func (f *fakeClient) FetchCreators(_ context.Context, domain string) ([]models.Creator, error) {
	if err := f.record(domain); err != nil {
		return nil, err
	}
	return []models.Creator{{ID: "a", Service: "patreon"}}, nil
}

func (f *fakeClient) FetchProfile(_ context.Context, domain, service, id string) (*models.CreatorProfile, error) {
	if err := f.record(domain); err != nil {
		return nil, err
	}
	return &models.CreatorProfile{ID: id, Service: service}, nil
}

func (f *fakeClient) FetchPosts(_ context.Context, domain, _, _ string, _ int) ([]models.Post, error) {
	return nil, f.record(domain)
}

func (f *fakeClient) FetchLegacyPosts(_ context.Context, domain, _, _ string, _ int) (*models.LegacyPostsResponse, error) {
	return &models.LegacyPostsResponse{}, f.record(domain)
}

func (f *fakeClient) FetchPost(_ context.Context, domain, _, _, postID string) (*models.PostResponse, error) {
	return &models.PostResponse{Post: models.Post{ID: postID}}, f.record(domain)
}

func testBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Hour,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestCircuitBreakerClient_PassesThroughResults(t *testing.T) {
	t.Parallel()

	cbc := NewCircuitBreakerClient(newFakeClient(nil), testBreakerConfig())

	creators, err := cbc.FetchCreators(context.Background(), "ok.example")
	checkNoError(t, err)
	if len(creators) != 1 || creators[0].ID != "a" {
		t.Errorf("creators = %+v", creators)
	}

	profile, err := cbc.FetchProfile(context.Background(), "ok.example", "patreon", "42")
	checkNoError(t, err)
	checkStringEqual(t, "profile.ID", profile.ID, "42")

	post, err := cbc.FetchPost(context.Background(), "ok.example", "patreon", "42", "p1")
	checkNoError(t, err)
	checkStringEqual(t, "post.ID", post.Post.ID, "p1")
}

func TestCircuitBreakerClient_OpensPerDomain(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	fake := newFakeClient(map[string]error{"dead.example": boom})
	cbc := NewCircuitBreakerClient(fake, testBreakerConfig())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := cbc.FetchCreators(ctx, "dead.example"); !errors.Is(err, boom) {
			t.Fatalf("call %d: err = %v, want %v", i, err, boom)
		}
	}

	_, err := cbc.FetchCreators(ctx, "dead.example")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("err = %v, want ErrOpenState after tripping", err)
	}
	if got := fake.count("dead.example"); got != 3 {
		t.Errorf("dead.example reached %d times, want 3", got)
	}

	// A healthy domain is unaffected by the open breaker.
	if _, err := cbc.FetchCreators(ctx, "alive.example"); err != nil {
		t.Errorf("alive.example: %v", err)
	}

	states := cbc.States()
	if len(states) != 2 {
		t.Fatalf("len(States()) = %d, want 2", len(states))
	}
	checkStringEqual(t, "states[0].Domain", states[0].Domain, "alive.example")
	checkStringEqual(t, "states[0].State", states[0].State, "closed")
	checkStringEqual(t, "states[1].State", states[1].State, "open")
}

func TestCircuitBreakerClient_NotFoundDoesNotTrip(t *testing.T) {
	t.Parallel()

	notFound := &StatusError{Domain: "gone.example", Endpoint: "profile", StatusCode: http.StatusNotFound}
	fake := newFakeClient(map[string]error{"gone.example": notFound})
	cbc := NewCircuitBreakerClient(fake, testBreakerConfig())

	for i := 0; i < 6; i++ {
		_, err := cbc.FetchProfile(context.Background(), "gone.example", "patreon", "x")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("call %d: err = %v, want ErrNotFound", i, err)
		}
	}
	if got := fake.count("gone.example"); got != 6 {
		t.Errorf("calls = %d, want 6 (breaker must stay closed)", got)
	}
}

func TestStateConversions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		str   string
		val   float64
	}{
		{gobreaker.StateClosed, "closed", 0},
		{gobreaker.StateHalfOpen, "half-open", 1},
		{gobreaker.StateOpen, "open", 2},
	}
	for _, tt := range tests {
		checkStringEqual(t, "stateToString", stateToString(tt.state), tt.str)
		if got := stateToFloat(tt.state); got != tt.val {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.val)
		}
	}
}
