// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Two custom tags are registered:
//
//   - productid: non-empty opaque product ID without control characters
//   - sessionid: 1-128 characters of letters, digits, '-', '_' or '.'
//
// Example usage:
//
//	type interactionRequest struct {
//	    ProductID string `json:"productId" validate:"productid"`
//	    Quantity  int    `json:"quantity" validate:"min=1,max=999"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
