// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// defaultEngine backs the package-level helpers.
var defaultEngine = &Engine{cfg: DefaultConfig(), logger: zerolog.Nop()}

// Engine ranks catalog items with a fixed configuration.
// It is safe for concurrent use.
type Engine struct {
	cfg    *Config
	logger zerolog.Logger

	similarRequests      atomic.Int64
	personalizedRequests atomic.Int64
	itemsScored          atomic.Int64
	lastDurationNanos    atomic.Int64
}

// Metrics is a point-in-time view of engine counters.
type Metrics struct {
	SimilarRequests      int64         `json:"similar_requests"`
	PersonalizedRequests int64         `json:"personalized_requests"`
	ItemsScored          int64         `json:"items_scored"`
	LastDuration         time.Duration `json:"last_duration_ns"`
}

// NewEngine validates cfg and returns an engine that uses a private copy.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Engine{
		cfg:    cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.cfg.Clone()
}

// Similar returns up to k items most like ref. ref itself is never
// returned. k <= 0 selects Similar.DefaultK.
//
//nolint:gocritic // CatalogItem is passed by value to keep the call site simple
func (e *Engine) Similar(ref CatalogItem, catalog []CatalogItem, k int) []CatalogItem {
	start := time.Now()
	k = e.resolveK(k, e.cfg.Similar.DefaultK)

	ranked := truncate(rankSimilar(e.cfg, ref, catalog), k)

	e.similarRequests.Add(1)
	e.record(len(catalog), start)
	e.logger.Debug().
		Str("ref_id", ref.ID).
		Int("catalog_size", len(catalog)).
		Int("k", k).
		Int("returned", len(ranked)).
		Dur("duration", time.Since(start)).
		Msg("similar items ranked")

	return items(ranked)
}

// Personalized returns up to k in-stock, non-carted items ranked against
// the shopper's interest profile. k <= 0 selects Personalized.DefaultK.
//
//nolint:gocritic // Signals is a read-only snapshot
func (e *Engine) Personalized(signals Signals, catalog []CatalogItem, k int) []CatalogItem {
	start := time.Now()
	k = e.resolveK(k, e.cfg.Personalized.DefaultK)

	ranked := selectEligible(rankPersonalized(e.cfg, signals, catalog), k)

	e.personalizedRequests.Add(1)
	e.record(len(catalog), start)
	e.logger.Debug().
		Int("catalog_size", len(catalog)).
		Int("interest_items", len(interestSet(signals, e.cfg.Profile.RecentLimit))).
		Int("k", k).
		Int("returned", len(ranked)).
		Dur("duration", time.Since(start)).
		Msg("personalized items ranked")

	return items(ranked)
}

// ExplainPersonalized returns every catalog item in personalized rank
// order with its score breakdown. Items the final filter drops are kept
// and flagged with Excluded and ExcludeReason.
//
//nolint:gocritic // Signals is a read-only snapshot
func (e *Engine) ExplainPersonalized(signals Signals, catalog []CatalogItem) []ScoredItem {
	start := time.Now()
	ranked := rankPersonalized(e.cfg, signals, catalog)
	e.record(len(catalog), start)
	return ranked
}

// Anchor returns the shopper's interest vector.
//
//nolint:gocritic // Signals is a read-only snapshot
func (e *Engine) Anchor(signals Signals, catalog []CatalogItem) AnchorVector {
	return buildAnchor(e.cfg, signals, catalog, vectorizeAll(catalog, e.cfg.Text))
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		SimilarRequests:      e.similarRequests.Load(),
		PersonalizedRequests: e.personalizedRequests.Load(),
		ItemsScored:          e.itemsScored.Load(),
		LastDuration:         time.Duration(e.lastDurationNanos.Load()),
	}
}

func (e *Engine) resolveK(k, def int) int {
	if k <= 0 {
		return def
	}
	return k
}

func (e *Engine) record(scored int, start time.Time) {
	e.itemsScored.Add(int64(scored))
	e.lastDurationNanos.Store(int64(time.Since(start)))
}
