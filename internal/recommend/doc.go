// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package recommend ranks storefront catalog items for two surfaces:
// "you may also like" lists next to a product, and "recommended for you"
// lists built from a shopper's interaction signals.
//
// # Scoring Model
//
// Every catalog item is reduced to a sparse term-frequency vector built from
// its category (counted twice), name and description. Two scorers run on top
// of those vectors:
//
//   - Similar: 0.75 * cosine(reference, candidate) + 0.25 * price affinity
//   - Personalized: 0.85 * cosine(anchor, candidate) + 0.15 * popularity + boost
//
// The anchor vector is the weighted sum of every item the shopper has
// wishlisted, carted, or viewed recently. Popularity comes from the shopper's
// own view and add-to-cart counters. The boost demotes items the shopper has
// already seen or already put in the cart.
//
// All weights live in Config and are validated by NewEngine.
//
// # Purity
//
// The engine owns no state beyond its configuration. Each call builds its
// vectors from the supplied catalog and signal snapshot and discards them on
// return, so an Engine may be shared freely between goroutines.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	similar := engine.Similar(product, catalog, 0)
//	forYou := engine.Personalized(recommend.CollectSignals(shop), catalog, 0)
//
// Passing k <= 0 selects the configured default list size.
package recommend
