// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/config"
)

// initCatalog assembles the product source chain:
//
//	CachedSource -> FallbackSource(HTTPSource, seed file)
//
// Either end of the fallback may be absent. A zero CacheTTL skips the cache
// and the returned *CachedSource is nil.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initCatalog(cfg *config.CatalogConfig, logger zerolog.Logger) (catalog.Source, *catalog.CachedSource, error) {
	var upstream, seed catalog.Source

	if cfg.URL != "" {
		httpSrc, err := catalog.NewHTTPSource(catalog.HTTPConfig{
			BaseURL:         cfg.URL,
			Timeout:         cfg.Timeout,
			DefaultCategory: cfg.DefaultCategory,
			MaxItems:        cfg.MaxItems,
			RateLimit:       cfg.RateLimit,
			RateBurst:       cfg.RateBurst,
			BreakerFailures: cfg.BreakerFailures,
			BreakerTimeout:  cfg.BreakerTimeout,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		upstream = httpSrc
		logger.Info().Str("endpoint", httpSrc.Endpoint()).Msg("catalog upstream configured")
	}

	if cfg.SeedFile != "" {
		items, err := catalog.LoadSeedFile(cfg.SeedFile, cfg.DefaultCategory)
		if err != nil {
			return nil, nil, fmt.Errorf("load catalog seed file: %w", err)
		}
		seed = catalog.NewStaticSource(items)
		logger.Info().Str("file", cfg.SeedFile).Int("products", len(items)).Msg("catalog seed file loaded")
	}

	var src catalog.Source
	switch {
	case upstream != nil && seed != nil:
		src = &catalog.FallbackSource{Primary: upstream, Secondary: seed, Logger: logger}
	case upstream != nil:
		src = upstream
	case seed != nil:
		src = seed
	default:
		return nil, nil, errors.New("no catalog source configured: set CATALOG_URL or CATALOG_SEED_FILE")
	}

	if cfg.CacheTTL <= 0 {
		return src, nil, nil
	}
	cached := catalog.NewCachedSource(src, cfg.CacheTTL, logger)
	return cached, cached, nil
}
