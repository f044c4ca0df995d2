// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package media

import (
	"testing"
	"time"

	"github.com/tomtom215/coomono/internal/models"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestPublishedUnix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int64
	}{
		{"2024-01-02T03:04:05", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Unix()},
		{"2024-01-02T03:04:05.123456", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Unix()},
		{"2024-01-02T03:04:05+02:00", time.Date(2024, 1, 2, 1, 4, 5, 0, time.UTC).Unix()},
		{"2024-01-02", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).Unix()},
		{"", testNow.Unix()},
		{"yesterday", testNow.Unix()},
	}
	for _, tt := range tests {
		if got := PublishedUnix(tt.in, testNow); got != tt.want {
			t.Errorf("PublishedUnix(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFilesForPost(t *testing.T) {
	t.Parallel()

	post := &models.Post{
		ID:        "p1",
		Published: "2024-01-02T03:04:05",
		File:      &models.FileRef{Name: "cover.jpg", Path: "/aa/cover.jpg"},
		Attachments: []models.FileRef{
			{Name: "clip.mp4", Path: "/bb/clip.mp4"},
			{Name: "", Path: ""},
			{Name: "page.png", Path: "/cc/page.png"},
		},
	}

	files := FilesForPost(post, NewURLBuilder("kemono.su"), testNow)

	wantIDs := []string{"p1-main", "p1-attachment-0", "p1-attachment-2"}
	if len(files) != len(wantIDs) {
		t.Fatalf("len(files) = %d, want %d", len(files), len(wantIDs))
	}
	for i, id := range wantIDs {
		if files[i].ID != id {
			t.Errorf("files[%d].ID = %q, want %q", i, files[i].ID, id)
		}
	}

	wantAdded := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Unix()
	for _, f := range files {
		if f.Added != wantAdded {
			t.Errorf("%s.Added = %d, want %d", f.ID, f.Added, wantAdded)
		}
	}

	main := files[0]
	checkURL(t, "main.URL", main.URL, "https://img.kemono.su/file/data/aa/cover.jpg")
	checkURL(t, "main.ThumbnailURL", main.ThumbnailURL, main.URL)

	clip := files[1]
	if clip.Type != models.MediaTypeVideo || clip.Kind != models.MediaKindAttachment {
		t.Errorf("clip type/kind = %s/%s", clip.Type, clip.Kind)
	}
	checkURL(t, "clip.URL", clip.URL, "https://kemono.su/data/bb/clip.mp4")
	checkURL(t, "clip.ThumbnailURL", clip.ThumbnailURL, "https://img.kemono.su/thumbnail/data/bb/clip.mp4")
}

func TestFilesForPost_NoPublished(t *testing.T) {
	t.Parallel()

	post := &models.Post{ID: "p2", File: &models.FileRef{Name: "a.png", Path: "/a.png"}}
	files := FilesForPost(post, NewURLBuilder("coomer.su"), testNow)
	if len(files) != 1 || files[0].Added != testNow.Unix() {
		t.Errorf("files = %+v, want one file added at now", files)
	}
}

func TestFilesForPostResponse(t *testing.T) {
	t.Parallel()

	resp := &models.PostResponse{
		Post: models.Post{
			ID:          "77",
			Published:   "2024-03-04T05:06:07",
			File:        &models.FileRef{Name: "main.mp4", Path: "/m/main.mp4"},
			Attachments: []models.FileRef{{Name: "main.mp4", Path: "/m/main.mp4"}, {Name: "b.png", Path: "/m/b.png"}},
		},
		Attachments: []models.Attachment{
			{Server: "https://n1.example", Name: "main.mp4", Path: "/m/main.mp4"},
			{Server: "https://n1.example", Name: "b.png", Path: "/m/b.png"},
		},
		Videos: []models.Video{
			{Index: 0, Server: "https://n2.example", Name: "main.mp4", Path: "/m/main.mp4"},
			{Index: 1, Server: "https://n2.example", Name: "extra.webm", Path: "/m/extra.webm"},
		},
	}

	files := FilesForPostResponse(resp, NewURLBuilder("kemono.su"), testNow)

	wantIDs := []string{"77-main", "77-attachment-1", "77-video-1"}
	if len(files) != len(wantIDs) {
		t.Fatalf("len(files) = %d (%+v), want %d", len(files), files, len(wantIDs))
	}
	for i, id := range wantIDs {
		if files[i].ID != id {
			t.Errorf("files[%d].ID = %q, want %q", i, files[i].ID, id)
		}
	}

	// Videos listed last win the server hint for a shared path.
	checkURL(t, "main.URL", files[0].URL, "https://n2.example/data/m/main.mp4")
	checkURL(t, "image.URL", files[1].URL, "https://img.kemono.su/attachment/data/m/b.png")
	checkURL(t, "extra.URL", files[2].URL, "https://n2.example/data/m/extra.webm")
	if files[2].Server != "https://n2.example" {
		t.Errorf("extra.Server = %q", files[2].Server)
	}
}

func TestFilesForPostResponse_AttachmentsFromResponseOnly(t *testing.T) {
	t.Parallel()

	resp := &models.PostResponse{
		Post:        models.Post{ID: "9"},
		Attachments: []models.Attachment{{Server: "https://n1.example", Name: "a.wmv", Path: "/a.wmv"}},
	}

	files := FilesForPostResponse(resp, NewURLBuilder("coomer.su"), testNow)
	if len(files) != 1 {
		t.Fatalf("len(files) = %d, want 1", len(files))
	}
	checkURL(t, "URL", files[0].URL, "https://n1.example/data/a.wmv")
}

func TestFilterAndSortFiles(t *testing.T) {
	t.Parallel()

	files := []models.MediaFile{
		{ID: "a", Name: "a.png", Added: 30},
		{ID: "b", Name: "b.mp4", Added: 10},
		{ID: "c", Name: "c.zip", Added: 20},
		{ID: "d", Name: "d.JPG", Added: 10},
	}

	if got := FilterFiles(files, FilterImages); len(got) != 2 || got[0].ID != "a" || got[1].ID != "d" {
		t.Errorf("images = %+v", got)
	}
	if got := FilterFiles(files, FilterVideos); len(got) != 1 || got[0].ID != "b" {
		t.Errorf("videos = %+v", got)
	}
	if got := FilterFiles(files, FilterAll); len(got) != 4 {
		t.Errorf("all = %d files, want 4", len(got))
	}

	sorted := FilterFiles(files, "")
	SortFilesByAdded(sorted, true)
	order := ""
	for _, f := range sorted {
		order += f.ID
	}
	if order != "bdca" {
		t.Errorf("ascending order = %q, want bdca (stable for ties)", order)
	}

	SortFilesByAdded(sorted, false)
	if sorted[0].ID != "a" {
		t.Errorf("descending first = %q, want a", sorted[0].ID)
	}
	if files[0].ID != "a" || files[1].ID != "b" {
		t.Error("FilterFiles must not reorder the input")
	}
}
