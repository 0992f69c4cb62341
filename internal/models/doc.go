// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package models defines the HTTP request and response shapes of the
recommendation API.

Every endpoint answers with APIResponse:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 3, "request_id": "..."}
	}

Failures set "status" to "error", leave "data" null and fill "error" with a
machine-readable code and a human-readable message.

Request bodies carry validate tags checked by the validation package.
Inline catalogs use the storefront products API shape (catalog.RawProduct)
so a storefront can post what it already has.
*/
package models
