// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

/*
Package models defines data structures for the Coomono gateway.

This package contains the JSON shapes consumed from the content-aggregation
API and the derived structures the gateway serves to its front-end. It is the
single source of truth for data structure definitions and has no
dependencies on other internal packages.

Key Components:

  - Instance: a named API domain (built-ins are Coomer and Kemono)
  - Creator / CreatorProfile: directory rows and extended profile data
  - Post / PostResponse / LegacyPostsResponse: post payloads
  - MediaFile: a renderable file derived from a post, with resolved URLs

Instance URLs are bare domains. NormalizeInstanceURL strips the protocol
prefix and preserves case, so "https://Foo.example" becomes "Foo.example".
*/
package models
