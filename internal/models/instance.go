// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package models

import "strings"

// Instance is a named remote domain serving the aggregation API.
// Identity is the bare domain in URL, compared case-sensitively.
type Instance struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	IsDefault bool   `json:"is_default"`
}

// DefaultInstances returns the built-in instances in registry order.
// A fresh slice is returned on every call.
func DefaultInstances() []Instance {
	return []Instance{
		{Name: "Coomer", URL: "coomer.su", IsDefault: true},
		{Name: "Kemono", URL: "kemono.su", IsDefault: true},
	}
}

// NormalizeInstanceURL strips a leading http:// or https:// and any trailing
// slash. Case is preserved.
func NormalizeInstanceURL(raw string) string {
	u := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(u, "https://"):
		u = strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = strings.TrimPrefix(u, "http://")
	}
	return strings.TrimRight(u, "/")
}

// Normalized returns a copy of the instance with its URL normalized.
func (i Instance) Normalized() Instance {
	i.URL = NormalizeInstanceURL(i.URL)
	return i
}
