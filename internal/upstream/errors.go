// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches any *StatusError carrying HTTP 404.
var ErrNotFound = errors.New("upstream resource not found")

// StatusError is returned when an instance answers with a non-2xx status.
type StatusError struct {
	Domain     string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s returned status %d", e.Domain, e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s %s returned status %d: %s", e.Domain, e.Endpoint, e.StatusCode, e.Body)
}

// Is reports a match against ErrNotFound for 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
