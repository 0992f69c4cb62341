// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package supervisor runs Shoprec's long-lived services under a suture v4 tree.

	RootSupervisor ("shoprec")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogRefreshService
	│   └── SignalMaintenanceService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A catalog outage restarts or backs off the data layer without touching the
HTTP server, which keeps answering from the last cached catalog.

Supervisor events (restarts, backoff, panics) are written through
sutureslog to an slog.Logger. Pass logging.NewSlogLogger() to route them
into the zerolog output.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddDataService(services.NewCatalogRefreshService(cache, interval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)
*/
package supervisor
