// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"context"
	"time"

	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/recommend"
	"github.com/tomtom215/shoprec/internal/signals"
)

// Handler defaults.
const (
	DefaultMaxK           = 50
	DefaultMaxBodyBytes   = 4 << 20
	DefaultRequestTimeout = 10 * time.Second
)

// HandlerConfig tunes request handling.
type HandlerConfig struct {
	// MaxK caps the k parameter of every ranking endpoint.
	MaxK int

	// MaxBodyBytes caps JSON request bodies.
	MaxBodyBytes int64

	// RequestTimeout bounds catalog and store work per request.
	RequestTimeout time.Duration

	// DefaultCategory labels uncategorised products in inline catalogs.
	DefaultCategory string
}

// Handler contains dependencies for HTTP request handlers.
type Handler struct {
	engine    *recommend.Engine
	catalog   catalog.Source
	signals   *signals.Service
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates a new Handler. Zero config fields take the package defaults.
//
//nolint:gocritic // HandlerConfig is copied once at construction
func NewHandler(engine *recommend.Engine, source catalog.Source, svc *signals.Service, cfg HandlerConfig) *Handler {
	if cfg.MaxK <= 0 {
		cfg.MaxK = DefaultMaxK
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.DefaultCategory == "" {
		cfg.DefaultCategory = catalog.DefaultCategory
	}
	return &Handler{
		engine:    engine,
		catalog:   source,
		signals:   svc,
		config:    cfg,
		startTime: time.Now(),
	}
}

// withTimeout bounds the work of one request.
func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.config.RequestTimeout)
}

// resolveCatalog normalizes an inline catalog, or reads the configured
// source when none was posted.
func (h *Handler) resolveCatalog(ctx context.Context, inline []catalog.RawProduct) ([]recommend.CatalogItem, error) {
	if len(inline) > 0 {
		items, _ := catalog.NormalizeAll(inline, h.config.DefaultCategory)
		return items, nil
	}
	return h.catalog.Products(ctx)
}
