// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package middleware provides http.HandlerFunc middleware shared by the
// API router: request ID propagation and Prometheus request metrics.
//
// The router adapts these to chi with a func(http.Handler) http.Handler
// shim, so they stay usable with a plain http.ServeMux as well.
package middleware
