// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

/*
Package instance owns the set of known archive instances, the single current
instance, and a coalescing per-domain cache of creator directories.

# Fetch Coalescing

FetchDirectory guarantees at most one upstream directory fetch per domain at
any time:

  - A ready entry is returned immediately; a failed entry returns its cached
    error. Both stay until ClearCache or ClearAllCaches.
  - Otherwise the caller joins a singleflight call keyed by domain. The call
    re-checks the cache, marks the entry pending, and fetches with a context
    detached from every caller, so no caller can cancel it.
  - A caller that found the entry pending waits at most Config.WaitCeiling and
    then gets ErrWaitTimeout; the fetch keeps running and still fills the
    cache. Every caller may also give up through its own context.

Entries never expire on their own. The cache is keyed by domain, so switching
the current instance neither clears it nor interferes with in-flight fetches
for the previous domain.

# Validation

Validate runs a trial directory fetch for a candidate through the same path
without touching the current instance, so there is nothing to restore and no
window in which other callers observe the candidate as current.
*/
package instance
