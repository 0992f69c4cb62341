// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/recommend"
)

// DefaultCatalogRefreshInterval is used when no interval is configured.
const DefaultCatalogRefreshInterval = 5 * time.Minute

// CatalogRefresher reloads a cached catalog. Satisfied by *catalog.CachedSource.
type CatalogRefresher interface {
	Refresh(ctx context.Context) ([]recommend.CatalogItem, error)
}

// CatalogRefreshService keeps the catalog cache warm so request paths
// rarely wait on the products API. Failed refreshes are logged and counted;
// the cache keeps serving its last snapshot.
type CatalogRefreshService struct {
	cache    CatalogRefresher
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
	name     string

	refreshes atomic.Int64
	failures  atomic.Int64
}

// NewCatalogRefreshService creates a refresh loop over cache.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogRefreshService(cache CatalogRefresher, interval time.Duration, logger zerolog.Logger) *CatalogRefreshService {
	if interval <= 0 {
		interval = DefaultCatalogRefreshInterval
	}
	return &CatalogRefreshService{
		cache:    cache,
		interval: interval,
		timeout:  time.Minute,
		logger:   logger.With().Str("service", "catalog-refresh").Logger(),
		name:     "catalog-refresh-service",
	}
}

// Serve implements suture.Service. It refreshes once at startup, then on
// every tick until ctx is canceled.
func (s *CatalogRefreshService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("catalog refresh service starting")

	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog refresh service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *CatalogRefreshService) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	items, err := s.cache.Refresh(refreshCtx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.failures.Add(1)
		s.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("catalog refresh failed")
		return
	}

	s.refreshes.Add(1)
	s.logger.Debug().
		Int("items", len(items)).
		Dur("duration", time.Since(start)).
		Msg("catalog refreshed")
}

// Stats returns successful and failed refresh counts.
func (s *CatalogRefreshService) Stats() (refreshes, failures int64) {
	return s.refreshes.Load(), s.failures.Load()
}

// String returns the service name for logging.
func (s *CatalogRefreshService) String() string {
	return s.name
}
