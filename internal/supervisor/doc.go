// Coomono - Multi-Instance Creator Gallery Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coomono

/*
Package supervisor runs the gateway's long-lived services under a suture v4
supervisor tree.

# Tree Structure

	coomono (root)
	├── cache-layer
	│   └── DirectoryRefreshService
	└── api-layer
	    └── HTTPServerService

Each layer is its own supervisor, so a directory refresh that keeps
crashing enters backoff inside cache-layer while the API keeps serving
whatever the directory cache holds.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddCacheService(services.NewDirectoryRefreshService(gallerySvc, true, 30*time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)
	<-errCh

# Failure Handling

TreeConfig maps onto suture.Spec. Failures decay over FailureDecay seconds;
once their count passes FailureThreshold the supervisor waits
FailureBackoff before the next restart. ShutdownTimeout bounds how long
each service gets to return after its context is canceled.

Supervisor events are logged through sutureslog into the zerolog logger.
*/
package supervisor
