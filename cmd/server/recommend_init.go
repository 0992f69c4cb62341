// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/config"
	"github.com/tomtom215/shoprec/internal/recommend"
)

// initRecommend builds the ranking engine from configuration.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, logger zerolog.Logger) (*recommend.Engine, error) {
	engineCfg := buildEngineConfig(cfg)

	logger.Info().
		Int("similar_k", engineCfg.Similar.DefaultK).
		Int("personalized_k", engineCfg.Personalized.DefaultK).
		Int("max_k", cfg.Recommend.MaxK).
		Msg("initializing recommendation engine")

	engine, err := recommend.NewEngine(engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	return engine, nil
}

// buildEngineConfig converts the koanf recommend section to an engine config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	rc := cfg.Recommend
	return &recommend.Config{
		Text: recommend.TextConfig{
			MaxTokens:      rc.MaxTokens,
			CategoryRepeat: rc.CategoryRepeat,
		},
		Similar: recommend.SimilarConfig{
			DefaultK:             rc.Similar.DefaultK,
			ContentWeight:        rc.Similar.ContentWeight,
			PriceWeight:          rc.Similar.PriceWeight,
			PriceFloor:           rc.Similar.PriceFloor,
			UnknownPriceAffinity: rc.Similar.UnknownPriceAffinity,
		},
		Profile: recommend.ProfileConfig{
			RecentLimit:   rc.Profile.RecentLimit,
			Base:          rc.Profile.Base,
			AddWeight:     rc.Profile.AddWeight,
			ViewDivisor:   rc.Profile.ViewDivisor,
			ViewCap:       rc.Profile.ViewCap,
			WishlistBonus: rc.Profile.WishlistBonus,
		},
		Personalized: recommend.PersonalizedConfig{
			DefaultK:           rc.Personalized.DefaultK,
			ContentWeight:      rc.Personalized.ContentWeight,
			PopularityWeight:   rc.Personalized.PopularityWeight,
			ViewPopularity:     rc.Personalized.ViewPopularity,
			AddPopularity:      rc.Personalized.AddPopularity,
			WishlistPopularity: rc.Personalized.WishlistPopularity,
			RecentBoost:        rc.Personalized.RecentBoost,
			CartBoost:          rc.Personalized.CartBoost,
			OutOfStockPenalty:  rc.Personalized.OutOfStockPenalty,
		},
	}
}
