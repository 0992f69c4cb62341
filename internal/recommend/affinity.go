// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import "math"

// PriceAffinity scores how close two prices are, in [0,1], using the
// default floor of 300 and 0.1 for unknown prices.
func PriceAffinity(a, b float64) float64 {
	return priceAffinity(a, b, DefaultConfig().Similar)
}

//nolint:gocritic // SimilarConfig is small and read-only here
func priceAffinity(a, b float64, cfg SimilarConfig) float64 {
	if !knownPrice(a) || !knownPrice(b) {
		return cfg.UnknownPriceAffinity
	}
	denom := math.Max(cfg.PriceFloor, math.Max(a, b))
	return math.Max(0, 1-math.Abs(a-b)/denom)
}

func knownPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0)
}
