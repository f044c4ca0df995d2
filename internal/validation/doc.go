// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built once and shared; it caches struct
// metadata and is safe for concurrent use. Field names in errors come from
// json tags (falling back to query tags) so messages name the fields a client
// actually sent.
//
// Custom rules:
//   - instance_domain: an archive instance given as a bare domain, optionally
//     prefixed with http:// or https:// and suffixed with a slash
//
// Example:
//
//	var req validation.AddInstanceRequest
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation
