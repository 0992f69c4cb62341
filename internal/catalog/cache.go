// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/metrics"
	"github.com/tomtom215/shoprec/internal/recommend"
)

// snapshot is one cached catalog with its expiry.
type snapshot struct {
	items     []recommend.CatalogItem
	fetchedAt time.Time
	expiresAt time.Time
}

// CacheStats tracks cache performance.
type CacheStats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	StaleServes int64     `json:"stale_serves"`
	Refreshes   int64     `json:"refreshes"`
	Items       int       `json:"items"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// CachedSource keeps a TTL snapshot of another Source. Concurrent misses
// share one upstream fetch. When a refresh fails and an older snapshot
// exists, the old snapshot is served and the error is logged.
type CachedSource struct {
	src    Source
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	snap  *snapshot
	stats CacheStats

	fetchMu sync.Mutex
}

// NewCachedSource wraps src. A ttl <= 0 caches until Invalidate or Refresh.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewCachedSource(src Source, ttl time.Duration, logger zerolog.Logger) *CachedSource {
	return &CachedSource{
		src:    src,
		ttl:    ttl,
		logger: logger.With().Str("component", "catalog_cache").Logger(),
		now:    time.Now,
	}
}

// Products returns the cached catalog, fetching when absent or expired.
func (c *CachedSource) Products(ctx context.Context) ([]recommend.CatalogItem, error) {
	if items, ok := c.fresh(); ok {
		c.recordLookup(true)
		return items, nil
	}
	c.recordLookup(false)

	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()

	// Another caller may have refreshed while we waited.
	if items, ok := c.fresh(); ok {
		return items, nil
	}
	return c.load(ctx)
}

// Refresh fetches unconditionally and replaces the snapshot on success.
func (c *CachedSource) Refresh(ctx context.Context) ([]recommend.CatalogItem, error) {
	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()
	return c.load(ctx)
}

// Invalidate drops the snapshot so the next read fetches.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

// Ready reports whether any snapshot, fresh or stale, is held.
func (c *CachedSource) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap != nil
}

// Stats returns a copy of the cache counters.
func (c *CachedSource) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats := c.stats
	if c.snap != nil {
		stats.Items = len(c.snap.items)
		stats.FetchedAt = c.snap.fetchedAt
	}
	return stats
}

func (c *CachedSource) fresh() ([]recommend.CatalogItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil || (c.ttl > 0 && c.now().After(c.snap.expiresAt)) {
		return nil, false
	}
	return c.snap.items, true
}

// recordLookup counts one Products call as a hit or a miss.
func (c *CachedSource) recordLookup(hit bool) {
	c.mu.Lock()
	if hit {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	c.mu.Unlock()
	metrics.RecordCatalogCache(hit)
}

// load must be called with fetchMu held.
func (c *CachedSource) load(ctx context.Context) ([]recommend.CatalogItem, error) {
	items, err := c.src.Products(ctx)
	if err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.snap == nil {
			return nil, err
		}
		c.stats.StaleServes++
		c.logger.Warn().
			Err(err).
			Time("fetched_at", c.snap.fetchedAt).
			Msg("catalog refresh failed, serving stale snapshot")
		return c.snap.items, nil
	}

	now := c.now()
	c.mu.Lock()
	c.snap = &snapshot{
		items:     items,
		fetchedAt: now,
		expiresAt: now.Add(c.ttl),
	}
	c.stats.Refreshes++
	c.mu.Unlock()

	return items, nil
}
