// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/coomono/internal/gallery"
	"github.com/tomtom215/coomono/internal/instance"
	"github.com/tomtom215/coomono/internal/logging"
	"github.com/tomtom215/coomono/internal/upstream"
	"github.com/tomtom215/coomono/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// getIntParam reads an integer query parameter, returning defaultValue when
// it is absent. ok is false when the value is present but not an integer.
func getIntParam(r *http.Request, key string, defaultValue int) (value int, ok bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// getBoolParam reads a boolean query parameter. Empty and unparseable
// values are false.
func getBoolParam(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}

// decodeJSONBody decodes a bounded JSON body into v.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// respondValidation writes a validation failure.
func respondValidation(rw *ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
}

// respondServiceError maps gallery and upstream errors onto API errors.
func respondServiceError(rw *ResponseWriter, r *http.Request, err error) {
	var statusErr *upstream.StatusError
	switch {
	case errors.Is(err, gallery.ErrCreatorNotFound):
		rw.NotFound("Creator not found")
	case errors.Is(err, gallery.ErrPostNotFound):
		rw.NotFound("Post not found")
	case errors.Is(err, gallery.ErrUnknownInstance):
		rw.NotFound("Instance not found")
	case errors.Is(err, gallery.ErrInvalidInstance):
		rw.Error(http.StatusUnprocessableEntity, ErrCodeInvalidInstance, err.Error())
	case errors.Is(err, instance.ErrWaitTimeout):
		rw.ServiceUnavailable("Creator directory is still loading, retry shortly")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		rw.ServiceUnavailable("Instance is temporarily unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Request ended before upstream answered")
		rw.ServiceUnavailable("Request cancelled or timed out")
	case errors.As(err, &statusErr):
		rw.ExternalServiceError(statusErr.Domain, err)
	default:
		rw.ExternalServiceError("instance", err)
	}
}

// pageLimit clamps a requested page size.
func (h *Handler) pageLimit(limit int) int {
	if limit <= 0 {
		return h.cfg.DefaultPageSize
	}
	if limit > h.cfg.MaxPageSize {
		return h.cfg.MaxPageSize
	}
	return limit
}

// ascending maps an order parameter onto a sort direction.
func ascending(order string, defaultAscending bool) bool {
	switch strings.ToLower(order) {
	case "asc":
		return true
	case "desc":
		return false
	default:
		return defaultAscending
	}
}
