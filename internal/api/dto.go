// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package api

import (
	"github.com/tomtom215/coomono/internal/directory"
	"github.com/tomtom215/coomono/internal/instance"
	"github.com/tomtom215/coomono/internal/models"
	"github.com/tomtom215/coomono/internal/upstream"
)

// InstancesResponse lists the known instances.
type InstancesResponse struct {
	Instances []models.Instance `json:"instances"`
	Current   models.Instance   `json:"current"`
}

// SwitchResponse reports the instance that became current. Fallback is set
// when the requested instance failed and a default instance was chosen.
type SwitchResponse struct {
	Instance models.Instance `json:"instance"`
	Fallback bool            `json:"fallback"`
	Warning  string          `json:"warning,omitempty"`
}

// CreatorListResponse is one page of the creator directory.
type CreatorListResponse struct {
	Creators []models.Creator `json:"creators"`
	Total    int              `json:"total"`
	Instance models.Instance  `json:"instance"`
	Error    string           `json:"error,omitempty"`
}

// CreatorResponse is a creator page header.
type CreatorResponse struct {
	Creator           models.Creator         `json:"creator"`
	Profile           *models.CreatorProfile `json:"profile,omitempty"`
	ProfilePictureURL string                 `json:"profile_picture_url"`
	BannerURL         string                 `json:"banner_url"`
	Favorited         int64                  `json:"favorited"`
	Instance          models.Instance        `json:"instance"`
}

// PostsResponse is a page of posts with derived media files.
type PostsResponse struct {
	Posts      []models.Post      `json:"posts"`
	Files      []models.MediaFile `json:"files"`
	Offset     int                `json:"offset"`
	NextOffset int                `json:"next_offset,omitempty"`
	HasMore    bool               `json:"has_more"`
	Count      int                `json:"count,omitempty"`
	Instance   models.Instance    `json:"instance"`
}

// PostResponse is a single post with navigation ids.
type PostResponse struct {
	Post     models.Post        `json:"post"`
	Files    []models.MediaFile `json:"files"`
	Next     string             `json:"next,omitempty"`
	Prev     string             `json:"prev,omitempty"`
	Instance models.Instance    `json:"instance"`
}

// CacheResponse describes directory cache entries, per-creator lookup
// caches and breaker states.
type CacheResponse struct {
	Current  string                  `json:"current"`
	Entries  []instance.EntryStatus  `json:"entries"`
	Lookups  directory.LookupStats   `json:"lookups"`
	Breakers []upstream.BreakerState `json:"breakers"`
}

// MediaURLResponse is a resolved media URL.
type MediaURLResponse struct {
	URL          string           `json:"url"`
	ThumbnailURL string           `json:"thumbnail_url"`
	Type         models.MediaType `json:"type"`
}

// ReadinessResponse is the readiness probe body.
type ReadinessResponse struct {
	Ready     bool                    `json:"ready"`
	Instance  string                  `json:"instance"`
	Directory instance.State          `json:"directory,omitempty"`
	Reason    string                  `json:"reason,omitempty"`
	Breakers  []upstream.BreakerState `json:"breakers"`
}
