// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package media

import (
	"testing"

	"github.com/tomtom215/coomono/internal/models"
)

func checkURL(t *testing.T, name, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %q, want %q", name, got, want)
	}
}

func TestClassifyByExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want models.MediaType
	}{
		{"/a/clip.mp4", models.MediaTypeVideo},
		{"/a/clip.MP4", models.MediaTypeVideo},
		{"movie.WebM", models.MediaTypeVideo},
		{"x.mov", models.MediaTypeVideo},
		{"x.avi", models.MediaTypeVideo},
		{"x.wmv", models.MediaTypeVideo},
		{"x.mkv", models.MediaTypeImage},
		{"x.mp4.png", models.MediaTypeImage},
		{"image.PNG", models.MediaTypeImage},
		{"", models.MediaTypeImage},
	}
	for _, tt := range tests {
		if got := ClassifyByExtension(tt.name); got != tt.want {
			t.Errorf("ClassifyByExtension(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestIsImage(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]bool{
		"a.jpg": true, "a.JPEG": true, "a.webp": true, "a.gif": true,
		"a.mp4": false, "a.zip": false, "a.pdf": false,
	} {
		if got := IsImage(name); got != want {
			t.Errorf("IsImage(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestURLBuilder_CreatorImages(t *testing.T) {
	t.Parallel()

	b := NewURLBuilder("kemono.su")
	checkURL(t, "ProfilePictureURL", b.ProfilePictureURL("patreon", "123"), "https://img.kemono.su/icons/patreon/123")
	checkURL(t, "BannerURL", b.BannerURL("fanbox", "9"), "https://img.kemono.su/banners/fanbox/9")
}

func TestURLBuilder_FileURL(t *testing.T) {
	t.Parallel()

	b := NewURLBuilder("coomer.su")

	tests := []struct {
		name   string
		path   string
		server string
		kind   models.MediaKind
		want   string
	}{
		{
			name:   "video with server routes through server",
			path:   "/path/clip.MP4",
			server: "https://n1.example",
			kind:   models.MediaKindFile,
			want:   "https://n1.example/data/path/clip.MP4",
		},
		{
			name:   "server trailing slash trimmed",
			path:   "/p/v.webm",
			server: "https://n2.example/",
			kind:   models.MediaKindAttachment,
			want:   "https://n2.example/data/p/v.webm",
		},
		{
			name: "video without server falls back to instance domain",
			path: "/p/v.mov",
			kind: models.MediaKindFile,
			want: "https://coomer.su/data/p/v.mov",
		},
		{
			name: "image routes through image origin with kind",
			path: "/path/img.PNG",
			kind: models.MediaKindThumbnail,
			want: "https://img.coomer.su/thumbnail/data/path/img.PNG",
		},
		{
			name:   "image ignores server",
			path:   "/a/b.jpg",
			server: "https://n1.example",
			kind:   models.MediaKindAttachment,
			want:   "https://img.coomer.su/attachment/data/a/b.jpg",
		},
		{
			name: "missing slash and kind",
			path: "a/b.jpg",
			want: "https://img.coomer.su/file/data/a/b.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			checkURL(t, "FileURL", b.FileURL(tt.path, tt.server, tt.kind), tt.want)
		})
	}
}

func TestURLBuilder_ThumbnailURL(t *testing.T) {
	t.Parallel()

	b := NewURLBuilder("kemono.su")
	checkURL(t, "ThumbnailURL", b.ThumbnailURL("/x/y.mp4", "https://n1.example"), "https://img.kemono.su/thumbnail/data/x/y.mp4")
}

func TestURLBuilder_WithClassifier(t *testing.T) {
	t.Parallel()

	allVideo := func(string) models.MediaType { return models.MediaTypeVideo }
	b := NewURLBuilder("kemono.su").WithClassifier(allVideo)

	checkURL(t, "FileURL", b.FileURL("/x/y.png", "https://n3.example", models.MediaKindFile), "https://n3.example/data/x/y.png")

	var zero URLBuilder
	if got := zero.Classify("a.mp4"); got != models.MediaTypeVideo {
		t.Errorf("zero builder Classify = %q, want video", got)
	}
}
