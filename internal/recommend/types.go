// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

// CatalogItem is one product as seen by the ranker.
type CatalogItem struct {
	// ID is the opaque product identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Description is free text; may be empty.
	Description string `json:"description"`

	// Category is the category label; may be empty.
	Category string `json:"category"`

	// Price is the selling price. Zero or negative means unknown.
	Price float64 `json:"price"`

	// OriginalPrice is the list price before discount, when one applies.
	OriginalPrice *float64 `json:"original_price,omitempty"`

	// InStock reports availability. Use NewCatalogItem or the catalog
	// normaliser to get the true default for unspecified stock.
	InStock bool `json:"in_stock"`

	// Image is an opaque image reference, passed through untouched.
	Image string `json:"image,omitempty"`
}

// NewCatalogItem returns an in-stock item with the given identity.
func NewCatalogItem(id, name, category string, price float64) CatalogItem {
	return CatalogItem{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    price,
		InStock:  true,
	}
}

// TermVector maps a token to its occurrence count.
type TermVector map[string]int

// AnchorVector is the weighted term profile of a shopper's interests.
// Weights are fractional because view counts contribute in thirds.
type AnchorVector map[string]float64

// InteractionCounts holds per-item counters for one shopper.
type InteractionCounts struct {
	Views int `json:"view"`
	Adds  int `json:"add"`
}

// InteractionSignals maps item ID to counters. Absent items count as zero.
type InteractionSignals map[string]InteractionCounts

// IDSet is a membership-only set of item IDs.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids, skipping empty strings.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

// Has reports membership. A nil set contains nothing.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Signals is an immutable snapshot of one shopper's interactions.
type Signals struct {
	Interactions InteractionSignals `json:"interactions"`
	Wishlist     IDSet              `json:"-"`
	Cart         IDSet              `json:"-"`

	// RecentlyViewed is most-recent-first and holds no duplicates.
	RecentlyViewed []string `json:"recently_viewed"`
}

// counts returns the counters for id, zero when absent.
//
//nolint:gocritic // value receiver keeps Signals usable as a plain snapshot
func (s Signals) counts(id string) InteractionCounts {
	return s.Interactions[id].normalized()
}

// normalized clamps negative counters to zero.
func (c InteractionCounts) normalized() InteractionCounts {
	return InteractionCounts{Views: max(c.Views, 0), Adds: max(c.Adds, 0)}
}

// ScoreBreakdown records the components that produced a personalized score.
type ScoreBreakdown struct {
	Content    float64 `json:"content"`
	Popularity float64 `json:"popularity"`
	Boost      float64 `json:"boost"`

	// StockPenalty is non-zero for out-of-stock items.
	StockPenalty float64 `json:"stock_penalty"`
}

// ScoredItem is a catalog item with its ranking score.
type ScoredItem struct {
	Item CatalogItem `json:"item"`

	// Score is the effective sort key, including any stock penalty.
	Score float64 `json:"score"`

	// Breakdown is set by the personalized ranker only.
	Breakdown *ScoreBreakdown `json:"breakdown,omitempty"`

	// Excluded is true when the item would be dropped by the final
	// cart/stock filter.
	Excluded bool `json:"excluded"`

	// ExcludeReason is "in_cart" or "out_of_stock" when Excluded is set.
	ExcludeReason string `json:"exclude_reason,omitempty"`
}

// items strips scores from a ranked list.
func items(scored []ScoredItem) []CatalogItem {
	out := make([]CatalogItem, len(scored))
	for i := range scored {
		out[i] = scored[i].Item
	}
	return out
}
