// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package signals keeps each shopper's cart, wishlist, interaction counts
// and recently viewed list on the server, keyed by session ID.
//
// A Store persists whole recommend.ShopContext documents and applies
// read-modify-write updates atomically per session. Two backends exist:
//
//	MemoryStore  mutex-guarded map, lost on restart
//	BadgerStore  one JSON document per session in BadgerDB, expiring via TTL
//
// Service layers the storefront operations (record a view, add to cart,
// toggle the wishlist, ...) on top of a Store and produces the
// recommend.Signals snapshot the ranker consumes.
package signals
