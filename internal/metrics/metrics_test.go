// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/creators", "200"))

	RecordAPIRequest("GET", "/api/v1/creators", "200", 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/creators", "200"))
	if after != before+1 {
		t.Errorf("api_requests_total = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("api_active_requests after inc = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("api_active_requests after dec = %v, want %v", got, before)
	}
}

func TestRecordDirectoryFetch(t *testing.T) {
	tests := []struct {
		name     string
		instance string
		creators int
		err      error
		result   string
	}{
		{"success", "metrics-ok.test", 42, nil, "success"},
		{"failure", "metrics-fail.test", 0, errors.New("status 503"), "failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := DirectoryFetchTotal.WithLabelValues(tt.instance, tt.result)
			before := testutil.ToFloat64(counter)

			RecordDirectoryFetch(tt.instance, 200*time.Millisecond, tt.creators, tt.err)

			if got := testutil.ToFloat64(counter); got != before+1 {
				t.Errorf("directory_fetch_total{%s} = %v, want %v", tt.result, got, before+1)
			}
			if tt.err == nil {
				if got := testutil.ToFloat64(DirectoryCreators.WithLabelValues(tt.instance)); got != float64(tt.creators) {
					t.Errorf("directory_creators = %v, want %d", got, tt.creators)
				}
			}
		})
	}
}

func TestSetCacheEntries(t *testing.T) {
	SetCacheEntries(1, 2, 3)

	checks := map[string]float64{"pending": 1, "ready": 2, "failed": 3}
	for state, want := range checks {
		if got := testutil.ToFloat64(DirectoryCacheEntries.WithLabelValues(state)); got != want {
			t.Errorf("directory_cache_entries{state=%q} = %v, want %v", state, got, want)
		}
	}
}

func TestRecordUpstreamRequest(t *testing.T) {
	ok := UpstreamRequestsTotal.WithLabelValues("metrics-up.test", "creators", "200")
	failed := UpstreamRequestsTotal.WithLabelValues("metrics-up.test", "creators", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordUpstreamRequest("metrics-up.test", "creators", 200, time.Second)
	RecordUpstreamRequest("metrics-up.test", "creators", 0, time.Second)

	if got := testutil.ToFloat64(ok); got != okBefore+1 {
		t.Errorf("status=200 counter = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(failed); got != failedBefore+1 {
		t.Errorf("status=error counter = %v, want %v", got, failedBefore+1)
	}
}

func TestRecordInstanceSwitch(t *testing.T) {
	RecordInstanceSwitch("success", "coomer.su")
	RecordInstanceSwitch("success", "kemono.su")

	if got := testutil.ToFloat64(InstanceCurrent.WithLabelValues("kemono.su")); got != 1 {
		t.Errorf("instance_current{kemono.su} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(InstanceCurrent); got != 1 {
		t.Errorf("instance_current series = %d, want 1", got)
	}

	RecordInstanceSwitch("rejected", "bad.example")
	if got := testutil.ToFloat64(InstanceCurrent.WithLabelValues("kemono.su")); got != 1 {
		t.Errorf("rejected switch moved the marker, got %v", got)
	}
}
