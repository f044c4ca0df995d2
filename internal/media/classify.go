// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package media

import (
	"regexp"

	"github.com/tomtom215/coomono/internal/models"
)

// Classifier decides whether a file name or path is an image or a video.
type Classifier func(name string) models.MediaType

var (
	videoExtPattern = regexp.MustCompile(`(?i)\.(mp4|webm|mov|avi|wmv)$`)
	imageExtPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)
)

// ClassifyByExtension reports MediaTypeVideo for mp4, webm, mov, avi and wmv
// (case-insensitive) and MediaTypeImage for everything else.
func ClassifyByExtension(name string) models.MediaType {
	if videoExtPattern.MatchString(name) {
		return models.MediaTypeVideo
	}
	return models.MediaTypeImage
}

// IsVideo reports whether name has a video extension.
func IsVideo(name string) bool {
	return videoExtPattern.MatchString(name)
}

// IsImage reports whether name has a known still-image extension. Files that
// are neither image nor video (archives, PDFs) fail both checks.
func IsImage(name string) bool {
	return imageExtPattern.MatchString(name)
}
