// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import "sort"

// RecommendSimilar returns up to k catalog items most like ref, using the
// default configuration. k <= 0 selects the default of 10.
//
//nolint:gocritic // CatalogItem is passed by value to keep the call site simple
func RecommendSimilar(ref CatalogItem, catalog []CatalogItem, k int) []CatalogItem {
	return defaultEngine.Similar(ref, catalog, k)
}

// rankSimilar scores every candidate except ref and sorts them by score,
// descending. Ties keep catalog order. Stock is not considered.
//
//nolint:gocritic // CatalogItem is small and read-only here
func rankSimilar(cfg *Config, ref CatalogItem, catalog []CatalogItem) []ScoredItem {
	refVec := vectorize(ref, cfg.Text)
	scored := make([]ScoredItem, 0, len(catalog))
	for i := range catalog {
		cand := catalog[i]
		if cand.ID == ref.ID {
			continue
		}
		content := Cosine(refVec, vectorize(cand, cfg.Text))
		price := priceAffinity(ref.Price, cand.Price, cfg.Similar)
		scored = append(scored, ScoredItem{
			Item:  cand,
			Score: cfg.Similar.ContentWeight*content + cfg.Similar.PriceWeight*price,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func truncate(scored []ScoredItem, k int) []ScoredItem {
	if len(scored) > k {
		return scored[:k]
	}
	return scored
}
