// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/logging"
	"github.com/tomtom215/shoprec/internal/metrics"
	"github.com/tomtom215/shoprec/internal/models"
	"github.com/tomtom215/shoprec/internal/recommend"
	"github.com/tomtom215/shoprec/internal/validation"
)

// ProductSimilar handles GET /api/v1/products/{productID}/similar?k=&session=
// Returns items similar to a catalog product. With a session it also
// records the product view and returns that session's personalized list,
// so a product page needs one round trip.
func (h *Handler) ProductSimilar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	productID := chi.URLParam(r, "productID")
	if verr := validation.ValidateVar("productID", productID, "productid"); verr != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_PRODUCT_ID", verr.Error(), nil)
		return
	}
	k, apiErr := h.parseK(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	sessionID := r.URL.Query().Get("session")
	if sessionID != "" && !validation.IsValidSessionID(sessionID) {
		respondError(w, r, http.StatusBadRequest, "INVALID_SESSION_ID", "Invalid session ID", nil)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	items, err := h.catalog.Products(ctx)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	ref, err := catalog.Find(items, productID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	page := models.ProductPageRecommendations{
		Product: ref,
		Similar: h.similarList(ref, items, k),
	}

	if sessionID != "" {
		ctx = logging.ContextWithSessionID(ctx, sessionID)
		shop, err := h.signals.View(ctx, sessionID, productID)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
		list := h.personalizedList(recommend.CollectSignals(shop), items, k, false)
		list.SessionID = sessionID
		page.Personalized = &list
	}

	respondSuccess(w, r, http.StatusOK, start, page)
}

// Similar handles POST /api/v1/recommendations/similar
// The reference is either an inline product or a product_id looked up in
// the catalog (inline or configured).
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SimilarRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if req.Product == nil && req.ProductID == "" {
		respondAPIError(w, r, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "product or product_id is required",
			Details: map[string]interface{}{"field": "product_id"},
		}, nil)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	items, err := h.resolveCatalog(ctx, req.Catalog)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	var ref recommend.CatalogItem
	if req.Product != nil {
		var ok bool
		ref, ok = catalog.Normalize(*req.Product, h.config.DefaultCategory)
		if !ok {
			respondError(w, r, http.StatusBadRequest, "INVALID_PRODUCT_ID", "product must carry _id or id", nil)
			return
		}
	} else {
		ref, err = catalog.Find(items, req.ProductID)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
	}

	respondSuccess(w, r, http.StatusOK, start, h.similarList(ref, items, h.clampK(req.K)))
}

// Personalized handles POST /api/v1/recommendations/personalized
// Ranks against a shop context posted by the caller; nothing is stored.
func (h *Handler) Personalized(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.PersonalizedRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	items, err := h.resolveCatalog(ctx, req.Catalog)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	list := h.personalizedList(recommend.CollectSignals(&req.Context), items, h.clampK(req.K), false)
	respondSuccess(w, r, http.StatusOK, start, list)
}

// EngineConfig handles GET /api/v1/recommendations/config
func (h *Handler) EngineConfig(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, time.Now(), models.EngineConfig{
		Config:  h.engine.Config(),
		MaxK:    h.config.MaxK,
		Metrics: h.engine.GetMetrics(),
	})
}

//nolint:gocritic // CatalogItem is passed by value to match the engine
func (h *Handler) similarList(ref recommend.CatalogItem, items []recommend.CatalogItem, k int) models.RecommendationList {
	start := time.Now()
	out := h.engine.Similar(ref, items, k)
	metrics.RecordRecommendation(models.ModeSimilar, len(items), len(out), time.Since(start))

	if k <= 0 {
		k = h.engine.Config().Similar.DefaultK
	}
	return models.RecommendationList{
		Mode:        models.ModeSimilar,
		Items:       out,
		Count:       len(out),
		K:           k,
		CatalogSize: len(items),
	}
}

//nolint:gocritic // Signals is a read-only snapshot
func (h *Handler) personalizedList(sig recommend.Signals, items []recommend.CatalogItem, k int, explain bool) models.RecommendationList {
	start := time.Now()
	out := h.engine.Personalized(sig, items, k)
	metrics.RecordRecommendation(models.ModePersonalized, len(items), len(out), time.Since(start))

	if k <= 0 {
		k = h.engine.Config().Personalized.DefaultK
	}
	list := models.RecommendationList{
		Mode:        models.ModePersonalized,
		Items:       out,
		Count:       len(out),
		K:           k,
		CatalogSize: len(items),
	}
	if explain {
		list.Explanation = h.engine.ExplainPersonalized(sig, items)
	}
	return list
}
