// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "k must be at most 50",
//	    "details": {"field": "k"}
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid request body or query parameter
//   - INVALID_SESSION_ID, INVALID_PRODUCT_ID: Malformed identifiers
//   - PRODUCT_NOT_FOUND, CART_LINE_NOT_FOUND: Missing resources
//   - CATALOG_UNAVAILABLE: The products API cannot be reached
//   - RATE_LIMIT_EXCEEDED: Too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the readiness probe payload.
type HealthStatus struct {
	Status       string  `json:"status"`
	CatalogReady bool    `json:"catalog_ready"`
	CatalogItems int     `json:"catalog_items"`
	SignalStore  string  `json:"signal_store"`
	StoreReady   bool    `json:"store_ready"`
	Sessions     int     `json:"sessions"`
	Uptime       float64 `json:"uptime_seconds"`
}
