// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/coomono/internal/gallery"
	"github.com/tomtom215/coomono/internal/models"
	"github.com/tomtom215/coomono/internal/validation"
)

// ListInstances returns every known instance and the current one.
func (h *Handler) ListInstances(w http.ResponseWriter, r *http.Request) {
	reg := h.svc.Registry()
	NewResponseWriter(w, r).Success(InstancesResponse{
		Instances: reg.List(),
		Current:   reg.Current(),
	})
}

// CurrentInstance returns the current instance.
func (h *Handler) CurrentInstance(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.svc.Registry().Current())
}

// AddInstance validates an instance by fetching its directory and adds it.
func (h *Handler) AddInstance(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req validation.AddInstanceRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		rw.BadRequest("Invalid request body: " + err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(rw, verr)
		return
	}

	inst, err := h.svc.AddInstance(r.Context(), models.Instance{Name: req.Name, URL: req.URL}, req.Activate)
	switch {
	case err == nil:
		rw.Created(inst)
	case inst.URL != "" && errors.Is(err, gallery.ErrInvalidInstance):
		// Added, but activating it fell back to a default instance.
		rw.Success(SwitchResponse{Instance: inst, Fallback: true, Warning: err.Error()})
	default:
		respondServiceError(rw, r, err)
	}
}

// ValidateInstance reports whether an instance serves a creator directory
// without adding it or changing the current instance.
func (h *Handler) ValidateInstance(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req validation.ValidateInstanceRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		rw.BadRequest("Invalid request body: " + err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(rw, verr)
		return
	}

	result := h.svc.Registry().Validate(r.Context(), models.Instance{Name: req.Name, URL: req.URL})
	rw.Success(result)
}

// SwitchInstance makes a known instance current. When its directory cannot
// be loaded a default instance becomes current and the response carries a
// warning.
func (h *Handler) SwitchInstance(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req validation.SwitchInstanceRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		rw.BadRequest("Invalid request body: " + err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(rw, verr)
		return
	}

	inst, err := h.svc.SwitchInstance(r.Context(), req.URL)
	switch {
	case err == nil:
		rw.Success(SwitchResponse{Instance: inst})
	case errors.Is(err, gallery.ErrInvalidInstance):
		rw.Success(SwitchResponse{Instance: inst, Fallback: true, Warning: err.Error()})
	default:
		respondServiceError(rw, r, err)
	}
}
