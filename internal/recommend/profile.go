// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import "math"

// BuildAnchor folds the shopper's interest set into one weighted vector
// using the default configuration.
//
//nolint:gocritic // Signals is a read-only snapshot
func BuildAnchor(signals Signals, catalog []CatalogItem) AnchorVector {
	cfg := DefaultConfig()
	return buildAnchor(cfg, signals, catalog, vectorizeAll(catalog, cfg.Text))
}

// interestSet is wishlist ∪ cart ∪ the first RecentLimit recently viewed IDs.
//
//nolint:gocritic // Signals is a read-only snapshot
func interestSet(signals Signals, recentLimit int) IDSet {
	set := make(IDSet, len(signals.Wishlist)+len(signals.Cart)+recentLimit)
	for id := range signals.Wishlist {
		set[id] = struct{}{}
	}
	for id := range signals.Cart {
		set[id] = struct{}{}
	}
	recent := signals.RecentlyViewed
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	for _, id := range recent {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// interestWeight is Base + AddWeight*adds + min(ViewCap, views/ViewDivisor)
// plus WishlistBonus for wishlisted items.
//
//nolint:gocritic // ProfileConfig is small and read-only here
func interestWeight(cfg ProfileConfig, counts InteractionCounts, wishlisted bool) float64 {
	w := cfg.Base + cfg.AddWeight*float64(counts.Adds)
	if counts.Views > 0 {
		w += math.Min(cfg.ViewCap, float64(counts.Views)/cfg.ViewDivisor)
	}
	if wishlisted {
		w += cfg.WishlistBonus
	}
	return w
}

// buildAnchor walks the catalog in order. Each interest ID contributes once,
// from its first catalog occurrence. IDs missing from the catalog are ignored.
//
//nolint:gocritic // Signals is a read-only snapshot
func buildAnchor(cfg *Config, signals Signals, catalog []CatalogItem, vecs []TermVector) AnchorVector {
	anchor := make(AnchorVector)
	interests := interestSet(signals, cfg.Profile.RecentLimit)
	if len(interests) == 0 {
		return anchor
	}

	seen := make(IDSet, len(interests))
	for i := range catalog {
		id := catalog[i].ID
		if !interests.Has(id) || seen.Has(id) {
			continue
		}
		seen[id] = struct{}{}

		w := interestWeight(cfg.Profile, signals.counts(id), signals.Wishlist.Has(id))
		for tok, n := range vecs[i] {
			anchor[tok] += float64(n) * w
		}
	}
	return anchor
}

//nolint:gocritic // TextConfig is small and read-only here
func vectorizeAll(catalog []CatalogItem, cfg TextConfig) []TermVector {
	vecs := make([]TermVector, len(catalog))
	for i := range catalog {
		vecs[i] = vectorize(catalog[i], cfg)
	}
	return vecs
}
