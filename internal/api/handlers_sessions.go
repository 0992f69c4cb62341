// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/shoprec/internal/models"
	"github.com/tomtom215/shoprec/internal/recommend"
)

// SessionRecommendations handles GET /api/v1/sessions/{sessionID}/recommendations?k=&explain=
// Ranks the catalog against the session's stored signals. explain=true
// adds every catalog item with its score breakdown.
func (h *Handler) SessionRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sessionID := chi.URLParam(r, "sessionID")

	k, apiErr := h.parseK(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	sig, err := h.signals.Snapshot(ctx, sessionID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	items, err := h.catalog.Products(ctx)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	list := h.personalizedList(sig, items, k, getBoolParam(r, "explain", false))
	list.SessionID = sessionID
	respondSuccess(w, r, http.StatusOK, start, list)
}

// SessionSignals handles GET /api/v1/sessions/{sessionID}/signals
func (h *Handler) SessionSignals(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sessionID := chi.URLParam(r, "sessionID")

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	shop, err := h.signals.Context(ctx, sessionID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, models.NewSessionSignals(sessionID, shop))
}

// ResetSession handles DELETE /api/v1/sessions/{sessionID}
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sessionID := chi.URLParam(r, "sessionID")

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	if err := h.signals.Reset(ctx, sessionID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, map[string]interface{}{
		"session_id": sessionID,
		"reset":      true,
	})
}

// RecordView handles POST /api/v1/sessions/{sessionID}/views
// Counts a product page view and moves the product to the front of the
// recently viewed list.
func (h *Handler) RecordView(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sessionID := chi.URLParam(r, "sessionID")

	var req models.ViewRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	shop, err := h.signals.View(ctx, sessionID, req.ProductID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, models.NewSessionSignals(sessionID, shop))
}

// AddToCart handles POST /api/v1/sessions/{sessionID}/cart
// Quantities merge into an existing line with the same product and variant.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sessionID := chi.URLParam(r, "sessionID")

	var req models.CartAddRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	line, shop, err := h.signals.AddToCart(ctx, sessionID, recommend.CartLine{
		ProductID: req.ProductID,
		Variant:   req.Variant,
		Quantity:  req.Quantity,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, models.CartAddResult{
		Line:    line,
		Session: models.NewSessionSignals(sessionID, shop),
	})
}

// UpdateCartLine handles PUT /api/v1/sessions/{sessionID}/cart/{key}
// A quantity of 0 or less removes the line.
func (h *Handler) UpdateCartLine(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sessionID := chi.URLParam(r, "sessionID")
	key, ok := cartKeyParam(w, r)
	if !ok {
		return
	}

	var req models.CartQuantityRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	shop, err := h.signals.UpdateQuantity(ctx, sessionID, key, *req.Quantity)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, models.NewSessionSignals(sessionID, shop))
}

// RemoveCartLine handles DELETE /api/v1/sessions/{sessionID}/cart/{key}
func (h *Handler) RemoveCartLine(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sessionID := chi.URLParam(r, "sessionID")
	key, ok := cartKeyParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	shop, err := h.signals.RemoveFromCart(ctx, sessionID, key)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, models.NewSessionSignals(sessionID, shop))
}

// ClearCart handles DELETE /api/v1/sessions/{sessionID}/cart
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sessionID := chi.URLParam(r, "sessionID")

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	shop, err := h.signals.ClearCart(ctx, sessionID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, models.NewSessionSignals(sessionID, shop))
}

// ToggleWishlist handles POST /api/v1/sessions/{sessionID}/wishlist/{productID}
func (h *Handler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sessionID := chi.URLParam(r, "sessionID")
	productID := chi.URLParam(r, "productID")

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	wishlisted, shop, err := h.signals.ToggleWishlist(ctx, sessionID, productID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, start, models.WishlistToggle{
		ProductID:  productID,
		Wishlisted: wishlisted,
		Wishlist:   shop.Wishlist,
	})
}

// cartKeyParam returns the unescaped {key} URL parameter.
func cartKeyParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	key, err := url.PathUnescape(chi.URLParam(r, "key"))
	if err != nil || key == "" {
		respondError(w, r, http.StatusBadRequest, "INVALID_CART_KEY", "Invalid cart line key", err)
		return "", false
	}
	return key, true
}
