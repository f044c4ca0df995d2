// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package models

import "github.com/goccy/go-json"

// FileRef is the name/path pair used for a post's main file and attachments.
type FileRef struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Post is a creator post as returned by the posts and single-post endpoints.
type Post struct {
	ID          string          `json:"id"`
	User        string          `json:"user"`
	Service     string          `json:"service"`
	Title       string          `json:"title"`
	Content     string          `json:"content,omitempty"`
	Embed       json.RawMessage `json:"embed,omitempty"`
	SharedFile  bool            `json:"shared_file,omitempty"`
	Added       string          `json:"added,omitempty"`
	Published   string          `json:"published"` // ISO-8601
	Edited      *string         `json:"edited,omitempty"`
	File        *FileRef        `json:"file,omitempty"`
	Attachments []FileRef       `json:"attachments,omitempty"`
	Poll        json.RawMessage `json:"poll,omitempty"`
	Captions    json.RawMessage `json:"captions,omitempty"`
	Tags        json.RawMessage `json:"tags,omitempty"`
	Next        *string         `json:"next,omitempty"`
	Prev        *string         `json:"prev,omitempty"`
}

// Attachment is a file descriptor from the single-post response.
type Attachment struct {
	Server        string `json:"server"`
	Name          string `json:"name"`
	Extension     string `json:"extension"`
	NameExtension string `json:"name_extension"`
	Stem          string `json:"stem"`
	Path          string `json:"path"`
}

// Preview is a preview descriptor from the single-post response.
type Preview struct {
	Type   string `json:"type"`
	Server string `json:"server"`
	Name   string `json:"name"`
	Path   string `json:"path"`
}

// Video is a video descriptor from the single-post response.
type Video struct {
	Index         int    `json:"index"`
	Path          string `json:"path"`
	Name          string `json:"name"`
	Extension     string `json:"extension"`
	NameExtension string `json:"name_extension"`
	Server        string `json:"server"`
}

// PostResponse is the complete single-post payload.
type PostResponse struct {
	Post        Post                       `json:"post"`
	Attachments []Attachment               `json:"attachments"`
	Previews    []Preview                  `json:"previews"`
	Videos      []Video                    `json:"videos"`
	Props       map[string]json.RawMessage `json:"props,omitempty"`
}

// LegacyArtist is the artist block of the posts-legacy response.
type LegacyArtist struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Service    string  `json:"service"`
	Indexed    string  `json:"indexed"`
	Updated    string  `json:"updated"`
	PublicID   string  `json:"public_id"`
	RelationID *string `json:"relation_id"`
}

// LegacyProps is the props block of the posts-legacy response.
type LegacyProps struct {
	CurrentPage string       `json:"currentPage"`
	ID          string       `json:"id"`
	Service     string       `json:"service"`
	Name        string       `json:"name"`
	Count       int          `json:"count"`
	Limit       int          `json:"limit"`
	Artist      LegacyArtist `json:"artist"`
	DMCount     int          `json:"dm_count"`
	ShareCount  int          `json:"share_count"`
}

// LegacyPostsResponse is the posts-legacy payload. The result_* arrays are
// parallel to Results.
type LegacyPostsResponse struct {
	Props             LegacyProps    `json:"props"`
	Results           []Post         `json:"results"`
	ResultPreviews    [][]Preview    `json:"result_previews,omitempty"`
	ResultAttachments [][]Attachment `json:"result_attachments,omitempty"`
	ResultIsImage     []bool         `json:"result_is_image,omitempty"`
}
