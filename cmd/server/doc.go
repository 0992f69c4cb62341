// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package main is the entry point for the shoprec server.

Shoprec ranks a storefront's product catalog for two widgets: "you may also
like" on a product page and "recommended for you" driven by a shopper's cart,
wishlist, recently viewed list and interaction counts.

# Application Architecture

The server runs under Suture v4 process supervision:

	RootSupervisor ("shoprec")
	├── DataSupervisor ("data-layer")
	│   ├── Catalog refresh (when the catalog is cached)
	│   └── Signal store maintenance
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog, with an slog bridge for suture events
 3. Signal store: in-memory or BadgerDB
 4. Catalog: storefront products API and/or a seed file, behind a TTL cache
 5. Recommendation engine
 6. HTTP router (chi) and server

# Configuration

Common environment variables:

	HTTP_PORT=8080
	CATALOG_URL=https://shop.example.com
	CATALOG_SEED_FILE=./products.json
	SIGNALS_STORE=badger
	SIGNALS_PATH=/data/signals
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for SHUTDOWN_TIMEOUT, then the signal store is closed.
*/
package main
