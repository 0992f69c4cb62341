// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/shoprec/internal/logging"
	"github.com/tomtom215/shoprec/internal/models"
)

// HealthLive handles GET /api/v1/health/live.
// It reports process liveness only and never touches dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, time.Now(), map[string]interface{}{
		"status":         "alive",
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /api/v1/health/ready.
// Ready means the catalog can be read and the signal store answers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	health := models.HealthStatus{
		Status:      "ready",
		SignalStore: h.signals.Store().Backend(),
		Uptime:      time.Since(h.startTime).Seconds(),
	}

	items, err := h.catalog.Products(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("readiness: catalog unavailable")
	} else {
		health.CatalogReady = true
		health.CatalogItems = len(items)
	}

	sessions, err := h.signals.Store().Count(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("readiness: signal store unavailable")
	} else {
		health.StoreReady = true
		health.Sessions = sessions
	}

	status := http.StatusOK
	if !health.CatalogReady || !health.StoreReady {
		health.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}
	respondSuccess(w, r, status, start, health)
}
