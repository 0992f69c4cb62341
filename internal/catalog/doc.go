// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package catalog loads the storefront product catalog and reshapes it into
// recommend.CatalogItem values.
//
// Sources compose:
//
//	HTTPSource      products API client (circuit breaker, client-side rate limit)
//	StaticSource    fixed in-memory catalog, usually from a seed file
//	FallbackSource  primary source with a secondary used on failure
//	CachedSource    TTL snapshot in front of any Source, serving stale data
//	                when a refresh fails
//
// Every record goes through Normalize, which applies the storefront's
// defaults: "_id" before "id", first image when no main image, a neutral
// category, in stock unless stated otherwise, and the active discount price.
package catalog
