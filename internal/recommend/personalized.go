// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import "sort"

// Exclusion reasons reported by ExplainPersonalized.
const (
	ExcludeInCart     = "in_cart"
	ExcludeOutOfStock = "out_of_stock"
)

// RecommendPersonalized returns up to k in-stock items the shopper has not
// carted, ranked against their interest profile, using the default
// configuration. k <= 0 selects the default of 12.
//
//nolint:gocritic // Signals is a read-only snapshot
func RecommendPersonalized(signals Signals, catalog []CatalogItem, k int) []CatalogItem {
	return defaultEngine.Personalized(signals, catalog, k)
}

// rankPersonalized scores every catalog item, including carted and
// out-of-stock ones, and sorts by effective score. Items the final filter
// would drop are flagged rather than removed.
//
//nolint:gocritic // Signals is a read-only snapshot
func rankPersonalized(cfg *Config, signals Signals, catalog []CatalogItem) []ScoredItem {
	vecs := vectorizeAll(catalog, cfg.Text)
	anchor := newAnchorIndex(buildAnchor(cfg, signals, catalog, vecs))
	recent := NewIDSet(signals.RecentlyViewed...)
	p := cfg.Personalized

	scored := make([]ScoredItem, len(catalog))
	for i := range catalog {
		item := catalog[i]
		counts := signals.counts(item.ID)
		inCart := signals.Cart.Has(item.ID)
		wishlisted := signals.Wishlist.Has(item.ID)

		b := &ScoreBreakdown{
			Content:    anchor.cosine(vecs[i]),
			Popularity: p.ViewPopularity*float64(counts.Views) + p.AddPopularity*float64(counts.Adds),
		}
		if wishlisted {
			b.Popularity += p.WishlistPopularity
		}
		if recent.Has(item.ID) {
			b.Boost += p.RecentBoost
		}
		if inCart {
			b.Boost += p.CartBoost
		}
		if !item.InStock {
			b.StockPenalty = p.OutOfStockPenalty
		}

		s := ScoredItem{
			Item:      item,
			Score:     p.ContentWeight*b.Content + p.PopularityWeight*b.Popularity + b.Boost + b.StockPenalty,
			Breakdown: b,
		}
		switch {
		case inCart:
			s.Excluded, s.ExcludeReason = true, ExcludeInCart
		case !item.InStock:
			s.Excluded, s.ExcludeReason = true, ExcludeOutOfStock
		}
		scored[i] = s
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// selectEligible keeps the first k items not flagged by rankPersonalized.
func selectEligible(ranked []ScoredItem, k int) []ScoredItem {
	out := make([]ScoredItem, 0, min(k, len(ranked)))
	for i := range ranked {
		if ranked[i].Excluded {
			continue
		}
		out = append(out, ranked[i])
		if len(out) == k {
			break
		}
	}
	return out
}
