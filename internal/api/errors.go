// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/signals"
)

// errorMapping maps a sentinel error to a response.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

var serviceErrors = []errorMapping{
	{signals.ErrInvalidSessionID, http.StatusBadRequest, "INVALID_SESSION_ID", "Session ID must be 1-128 characters of letters, digits, '.', '_' or '-'"},
	{signals.ErrInvalidProductID, http.StatusBadRequest, "INVALID_PRODUCT_ID", "Product ID is missing or malformed"},
	{signals.ErrCartLineNotFound, http.StatusNotFound, "CART_LINE_NOT_FOUND", "Cart line not found"},
	{catalog.ErrItemNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found in catalog"},
	{catalog.ErrUpstream, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", "Product catalog is unavailable"},
	{signals.ErrStoreClosed, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Signal store is unavailable"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "TIMEOUT", "Request timed out"},
}

// classifyError returns the status, code and message for err.
func classifyError(err error) (status int, code, message string) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			return m.status, m.code, m.message
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
}

// respondServiceError maps err to a status code and error envelope.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := classifyError(err)
	respondError(w, r, status, code, message, err)
}
