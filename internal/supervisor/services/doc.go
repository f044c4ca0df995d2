// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

/*
Package services adapts gateway components to suture.Service.

Each wrapper translates a component's lifecycle into suture's
context-aware Serve method and implements fmt.Stringer so the supervisor's
event log can name it.

HTTPServerService runs an *http.Server and drains it with a bounded
Shutdown when the supervisor stops.

DirectoryRefreshService warms the current instance's creator directory at
startup and reloads it on a fixed interval. Load failures are logged and
left in the directory cache for the API to report.

	tree.AddCacheService(services.NewDirectoryRefreshService(svc, true, 30*time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
*/
package services
