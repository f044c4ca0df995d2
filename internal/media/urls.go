// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package media

import (
	"net/url"
	"strings"

	"github.com/tomtom215/coomono/internal/models"
)

// URLBuilder builds media URLs against one instance domain.
// A builder without a classifier uses ClassifyByExtension.
type URLBuilder struct {
	domain   string
	classify Classifier
}

// NewURLBuilder returns a builder for domain using extension classification.
func NewURLBuilder(domain string) URLBuilder {
	return URLBuilder{domain: domain, classify: ClassifyByExtension}
}

// WithClassifier returns a copy of b using classify.
func (b URLBuilder) WithClassifier(classify Classifier) URLBuilder {
	b.classify = classify
	return b
}

// Domain returns the instance domain the builder targets.
func (b URLBuilder) Domain() string {
	return b.domain
}

// Classify applies the builder's classifier to name.
func (b URLBuilder) Classify(name string) models.MediaType {
	if b.classify == nil {
		return ClassifyByExtension(name)
	}
	return b.classify(name)
}

// ProfilePictureURL returns the creator icon URL.
func (b URLBuilder) ProfilePictureURL(service, id string) string {
	return b.imageOrigin() + "/icons/" + url.PathEscape(service) + "/" + url.PathEscape(id)
}

// BannerURL returns the creator banner URL.
func (b URLBuilder) BannerURL(service, id string) string {
	return b.imageOrigin() + "/banners/" + url.PathEscape(service) + "/" + url.PathEscape(id)
}

// FileURL returns the URL of a file at path. Videos are served from the
// per-file server; without one the instance domain is used, which may 404.
// Everything else goes through the image origin under the kind segment.
func (b URLBuilder) FileURL(path, server string, kind models.MediaKind) string {
	path = ensureLeadingSlash(path)
	if b.Classify(path) == models.MediaTypeVideo {
		if server = strings.TrimSuffix(server, "/"); server != "" {
			return server + "/data" + path
		}
		return "https://" + b.domain + "/data" + path
	}
	if kind == "" {
		kind = models.MediaKindFile
	}
	return b.imageOrigin() + "/" + string(kind) + "/data" + path
}

// ThumbnailURL returns the thumbnail URL for path. server is accepted for
// symmetry with FileURL; thumbnails always come from the image origin.
func (b URLBuilder) ThumbnailURL(path, _ string) string {
	return b.imageOrigin() + "/thumbnail/data" + ensureLeadingSlash(path)
}

func (b URLBuilder) imageOrigin() string {
	return "https://img." + b.domain
}

func ensureLeadingSlash(path string) string {
	if path == "" || path[0] == '/' {
		return path
	}
	return "/" + path
}
