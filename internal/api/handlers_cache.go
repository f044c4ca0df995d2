// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package api

import (
	"net/http"

	"github.com/tomtom215/coomono/internal/models"
	"github.com/tomtom215/coomono/internal/validation"
)

// CacheStatus lists directory cache entries, lookup cache counters and
// circuit breaker states.
func (h *Handler) CacheStatus(w http.ResponseWriter, r *http.Request) {
	reg := h.svc.Registry()
	NewResponseWriter(w, r).Success(CacheResponse{
		Current:  reg.Current().URL,
		Entries:  reg.Snapshot(),
		Lookups:  h.svc.LookupStats(),
		Breakers: h.breakerStates(),
	})
}

// ClearCache drops one domain's directory entry (?domain=) or all of them
// (?all=true).
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	reg := h.svc.Registry()

	switch domain := models.NormalizeInstanceURL(r.URL.Query().Get("domain")); {
	case getBoolParam(r, "all"):
		reg.ClearAllCaches()
		rw.Success(map[string]interface{}{"cleared": "all"})
	case domain != "":
		reg.ClearCache(domain)
		rw.Success(map[string]interface{}{"cleared": domain})
	default:
		rw.BadRequest("domain or all=true is required")
	}
}

// MediaURL resolves a file path to its URL on the current instance.
func (h *Handler) MediaURL(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := r.URL.Query()

	req := validation.MediaURLQuery{
		Path:   q.Get("path"),
		Server: q.Get("server"),
		Kind:   q.Get("kind"),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(rw, verr)
		return
	}

	b := h.svc.URLs()
	resp := MediaURLResponse{
		URL:  b.FileURL(req.Path, req.Server, models.MediaKind(req.Kind)),
		Type: b.Classify(req.Path),
	}
	if resp.Type == models.MediaTypeVideo {
		resp.ThumbnailURL = b.ThumbnailURL(req.Path, req.Server)
	} else {
		resp.ThumbnailURL = resp.URL
	}
	rw.Success(resp)
}
