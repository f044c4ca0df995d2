// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

/*
Package media builds media URLs for archive instances and derives renderable
media files from posts.

URL templates, for the current instance domain D:

	profile picture  https://img.D/icons/{service}/{id}
	banner           https://img.D/banners/{service}/{id}
	image file       https://img.D/{kind}/data{path}
	video file       {server}/data{path}   (https://D/data{path} without a server)
	thumbnail        https://img.D/thumbnail/data{path}

Image versus video is decided only by file extension through a Classifier.
ClassifyByExtension is the default; a content-type aware classifier can be
swapped in with URLBuilder.WithClassifier without touching callers.
*/
package media
