// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package services provides suture.Service wrappers for Shoprec components.
//
// Every wrapper returns ctx.Err() when its context is canceled and logs
// recoverable failures instead of returning them, so a flaky upstream
// never puts the supervisor into backoff.
package services
