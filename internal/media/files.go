// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package media

import (
	"sort"
	"strconv"
	"time"

	"github.com/tomtom215/coomono/internal/models"
)

// publishedLayouts are the timestamp shapes seen in the published field.
// Archive instances omit the zone; those values are read as UTC.
var publishedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// PublishedUnix parses a post's published timestamp, returning fallback
// when it is empty or unparseable.
func PublishedUnix(published string, fallback time.Time) int64 {
	if published == "" {
		return fallback.Unix()
	}
	for _, layout := range publishedLayouts {
		if t, err := time.ParseInLocation(layout, published, time.UTC); err == nil {
			return t.Unix()
		}
	}
	return fallback.Unix()
}

// FilesForPost derives media files from a post listing entry: the main file
// as "<postID>-main" followed by "<postID>-attachment-<n>" for each
// attachment. Listing entries carry no server, so videos use the instance
// domain fallback.
func FilesForPost(post *models.Post, b URLBuilder, now time.Time) []models.MediaFile {
	added := PublishedUnix(post.Published, now)
	files := make([]models.MediaFile, 0, len(post.Attachments)+1)

	if post.File != nil && post.File.Path != "" {
		files = append(files, b.newFile(post.ID+"-main", *post.File, "", models.MediaKindFile, added))
	}
	for i, att := range post.Attachments {
		if att.Path == "" {
			continue
		}
		id := post.ID + "-attachment-" + strconv.Itoa(i)
		files = append(files, b.newFile(id, att, "", models.MediaKindAttachment, added))
	}
	return files
}

// FilesForPostResponse derives media files from a single-post payload. Server
// hints from the attachments and videos arrays are applied by path, and
// videos not already listed are appended as "<postID>-video-<index>".
func FilesForPostResponse(resp *models.PostResponse, b URLBuilder, now time.Time) []models.MediaFile {
	post := &resp.Post

	servers := make(map[string]string, len(resp.Attachments)+len(resp.Videos)+len(resp.Previews))
	for _, p := range resp.Previews {
		if p.Server != "" {
			servers[p.Path] = p.Server
		}
	}
	for _, a := range resp.Attachments {
		if a.Server != "" {
			servers[a.Path] = a.Server
		}
	}
	for _, v := range resp.Videos {
		if v.Server != "" {
			servers[v.Path] = v.Server
		}
	}

	added := PublishedUnix(post.Published, now)
	files := make([]models.MediaFile, 0, len(post.Attachments)+len(resp.Videos)+1)
	seen := make(map[string]bool)

	if post.File != nil && post.File.Path != "" {
		files = append(files, b.newFile(post.ID+"-main", *post.File, servers[post.File.Path], models.MediaKindFile, added))
		seen[post.File.Path] = true
	}

	attachments := post.Attachments
	if len(attachments) == 0 {
		for _, a := range resp.Attachments {
			attachments = append(attachments, models.FileRef{Name: a.Name, Path: a.Path})
		}
	}
	for i, att := range attachments {
		if att.Path == "" || seen[att.Path] {
			continue
		}
		seen[att.Path] = true
		id := post.ID + "-attachment-" + strconv.Itoa(i)
		files = append(files, b.newFile(id, att, servers[att.Path], models.MediaKindAttachment, added))
	}

	for _, v := range resp.Videos {
		if v.Path == "" || seen[v.Path] {
			continue
		}
		seen[v.Path] = true
		id := post.ID + "-video-" + strconv.Itoa(v.Index)
		ref := models.FileRef{Name: v.Name, Path: v.Path}
		files = append(files, b.newFile(id, ref, v.Server, models.MediaKindFile, added))
	}
	return files
}

func (b URLBuilder) newFile(id string, ref models.FileRef, server string, kind models.MediaKind, added int64) models.MediaFile {
	name := ref.Name
	if name == "" {
		name = ref.Path
	}
	mediaType := b.Classify(name)

	f := models.MediaFile{
		ID:     id,
		Name:   ref.Name,
		Path:   ref.Path,
		Server: server,
		Kind:   kind,
		Type:   mediaType,
		Added:  added,
		URL:    b.FileURL(ref.Path, server, kind),
	}
	if mediaType == models.MediaTypeVideo {
		f.ThumbnailURL = b.ThumbnailURL(ref.Path, server)
	} else {
		f.ThumbnailURL = f.URL
	}
	return f
}

// Filter values accepted by FilterFiles.
const (
	FilterAll    = "all"
	FilterImages = "images"
	FilterVideos = "videos"
)

// FilterFiles keeps images or videos by name. Unknown filters keep everything.
// The result is a new slice.
func FilterFiles(files []models.MediaFile, filter string) []models.MediaFile {
	out := make([]models.MediaFile, 0, len(files))
	for _, f := range files {
		name := f.Name
		if name == "" {
			name = f.Path
		}
		switch filter {
		case FilterImages:
			if !IsImage(name) {
				continue
			}
		case FilterVideos:
			if !IsVideo(name) {
				continue
			}
		}
		out = append(out, f)
	}
	return out
}

// SortFilesByAdded stable-sorts files in place by Added.
func SortFilesByAdded(files []models.MediaFile, ascending bool) {
	sort.SliceStable(files, func(i, j int) bool {
		if ascending {
			return files[i].Added < files[j].Added
		}
		return files[i].Added > files[j].Added
	})
}
