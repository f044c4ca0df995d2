// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package models

// MediaType is the image/video classification of a file.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// MediaKind is the path segment used on the image origin.
type MediaKind string

const (
	MediaKindThumbnail  MediaKind = "thumbnail"
	MediaKindAttachment MediaKind = "attachment"
	MediaKindFile       MediaKind = "file"
)

// MediaFile is a renderable file derived from a post.
type MediaFile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Server       string    `json:"server,omitempty"`
	Kind         MediaKind `json:"kind"`
	Type         MediaType `json:"type"`
	Added        int64     `json:"added"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
}
