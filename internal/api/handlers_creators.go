// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/coomono/internal/directory"
	"github.com/tomtom215/coomono/internal/gallery"
	"github.com/tomtom215/coomono/internal/logging"
	"github.com/tomtom215/coomono/internal/validation"
)

// ListCreators returns a filtered, sorted page of the current instance's
// creator directory.
func (h *Handler) ListCreators(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := r.URL.Query()

	limit, ok := getIntParam(r, "limit", h.cfg.DefaultPageSize)
	if !ok {
		rw.BadRequest("limit must be an integer")
		return
	}
	offset, ok := getIntParam(r, "offset", 0)
	if !ok {
		rw.BadRequest("offset must be an integer")
		return
	}

	req := validation.CreatorListQuery{
		Search:  q.Get("q"),
		Service: q.Get("service"),
		Sort:    q.Get("sort"),
		Order:   q.Get("order"),
		Limit:   limit,
		Offset:  offset,
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(rw, verr)
		return
	}

	query := gallery.ListQuery{
		Search:    req.Search,
		Service:   req.Service,
		Ascending: ascending(req.Order, false),
		Limit:     h.pageLimit(req.Limit),
		Offset:    req.Offset,
	}
	if req.Sort != "" {
		query.Sort, _ = directory.ParseSortField(req.Sort)
	}

	res, err := h.svc.ListCreators(r.Context(), query)
	resp := CreatorListResponse{
		Creators: res.Creators,
		Total:    res.Total,
		Instance: res.Instance,
	}
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("instance", res.Instance.URL).Msg("Creator list unavailable")
		resp.Error = err.Error()
	}

	rw.SuccessWithPagination(resp, &PaginationMeta{
		Total:   int64(res.Total),
		Count:   len(res.Creators),
		Offset:  query.Offset,
		Limit:   query.Limit,
		HasMore: query.Offset+len(res.Creators) < res.Total,
	})
}

// RefreshCreators reloads the current instance's creator directory.
func (h *Handler) RefreshCreators(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if err := h.svc.RefreshCreators(r.Context()); err != nil {
		respondServiceError(rw, r, err)
		return
	}
	reg := h.svc.Registry()
	current := reg.Current().URL
	for _, e := range reg.Snapshot() {
		if e.Domain == current {
			rw.Success(e)
			return
		}
	}
	rw.Success(map[string]string{"domain": current})
}

// Creator returns a creator with its profile and image URLs.
func (h *Handler) Creator(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	d, err := h.svc.Creator(r.Context(), chi.URLParam(r, "service"), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(rw, r, err)
		return
	}
	rw.Success(CreatorResponse{
		Creator:           d.Creator,
		Profile:           d.Profile,
		ProfilePictureURL: d.ProfilePictureURL,
		BannerURL:         d.BannerURL,
		Favorited:         d.Favorited,
		Instance:          d.Instance,
	})
}

// CreatorPosts returns a page of a creator's posts with media files.
func (h *Handler) CreatorPosts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	offset, ok := getIntParam(r, "o", 0)
	if !ok {
		rw.BadRequest("o must be an integer")
		return
	}
	req := validation.PostsQuery{
		Offset: offset,
		Media:  r.URL.Query().Get("media"),
		Order:  r.URL.Query().Get("order"),
		Legacy: getBoolParam(r, "legacy"),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(rw, verr)
		return
	}

	page, err := h.svc.Posts(r.Context(), chi.URLParam(r, "service"), chi.URLParam(r, "id"), gallery.PostsQuery{
		Offset:        req.Offset,
		Legacy:        req.Legacy,
		Media:         req.Media,
		SortAscending: ascending(req.Order, false),
	})
	if err != nil {
		respondServiceError(rw, r, err)
		return
	}

	rw.SuccessWithPagination(PostsResponse{
		Posts:      page.Posts,
		Files:      page.Files,
		Offset:     page.Offset,
		NextOffset: page.NextOffset,
		HasMore:    page.HasMore,
		Count:      page.Count,
		Instance:   page.Instance,
	}, &PaginationMeta{
		Total:   int64(page.Count),
		Count:   len(page.Posts),
		Offset:  page.Offset,
		Limit:   gallery.PageSize,
		HasMore: page.HasMore,
	})
}

// CreatorPost returns a single post.
func (h *Handler) CreatorPost(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	d, err := h.svc.Post(r.Context(), chi.URLParam(r, "service"), chi.URLParam(r, "id"), chi.URLParam(r, "postID"))
	if err != nil {
		respondServiceError(rw, r, err)
		return
	}
	rw.Success(PostResponse{
		Post:     d.Post,
		Files:    d.Files,
		Next:     d.Next,
		Prev:     d.Prev,
		Instance: d.Instance,
	})
}
