// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

/*
Package upstream is the REST client for creator archive instances.

Every archive instance (coomer.su, kemono.su, or a user-added mirror) serves
the same API shape under <scheme>://<domain>/api/v1:

	GET /creators.txt                          full creator directory (JSON array)
	GET /{service}/user/{id}/profile           creator profile
	GET /{service}/user/{id}/posts?o=N         posts page
	GET /{service}/user/{id}/posts-legacy?o=N  legacy posts page with previews
	GET /{service}/user/{id}/post/{postID}     single post with attachments/videos

HTTPClient talks to any domain passed per call. CircuitBreakerClient wraps
it with one gobreaker per domain so a dead mirror cannot trip requests to
the healthy ones. Both implement Client.

Non-2xx responses are returned as *StatusError; a 404 also matches
ErrNotFound through errors.Is.
*/
package upstream
