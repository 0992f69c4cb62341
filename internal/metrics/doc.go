// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package metrics defines the Prometheus collectors exported on /metrics.
//
// Collectors are registered on the default registry at init through
// promauto. Callers use the Record* helpers rather than touching the
// collectors directly so label sets stay consistent.
//
// Families:
//   - api_*: HTTP request counts, latency and in-flight requests
//   - recommend_*: ranking requests, latency, candidate and result sizes
//   - catalog_*: upstream fetches, cache efficiency, catalog size
//   - circuit_breaker_*: catalog upstream breaker state
//   - signal_store_*: shopper signal store operations
package metrics
