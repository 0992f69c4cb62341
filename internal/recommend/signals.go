// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

// RecentlyViewedLimit bounds the recently viewed list.
const RecentlyViewedLimit = 15

// CartLine is one cart row as the storefront keeps it.
type CartLine struct {
	// Key identifies the row: the product ID, or "<id>::<variant>".
	Key       string  `json:"key"`
	ProductID string  `json:"id"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	Variant   string  `json:"variant,omitempty"`
}

// CartKey returns the row key for a product and optional variant.
func CartKey(productID, variant string) string {
	if variant == "" {
		return productID
	}
	return productID + "::" + variant
}

// ShopContext is the storefront's per-shopper state in its stored shape.
type ShopContext struct {
	CartItems      []CartLine         `json:"cart_items"`
	Wishlist       []string           `json:"wishlist"`
	Interactions   InteractionSignals `json:"interactions"`
	RecentlyViewed []string           `json:"recently_viewed"`
}

// CartCount is the total quantity across cart rows.
func (c *ShopContext) CartCount() int {
	n := 0
	for _, line := range c.CartItems {
		n += line.Quantity
	}
	return n
}

// CartSubtotal is the sum of price times quantity across cart rows.
func (c *ShopContext) CartSubtotal() float64 {
	var sum float64
	for _, line := range c.CartItems {
		sum += line.Price * float64(line.Quantity)
	}
	return sum
}

// CollectSignals reshapes a shop context into an engine snapshot.
// Cart membership is by product ID, so variants of one product collapse.
// Negative interaction counters are clamped to zero. The returned snapshot
// shares no memory with ctx.
func CollectSignals(ctx *ShopContext) Signals {
	if ctx == nil {
		return Signals{
			Interactions: InteractionSignals{},
			Wishlist:     IDSet{},
			Cart:         IDSet{},
		}
	}

	cart := make(IDSet, len(ctx.CartItems))
	for _, line := range ctx.CartItems {
		if line.ProductID != "" {
			cart[line.ProductID] = struct{}{}
		}
	}

	interactions := make(InteractionSignals, len(ctx.Interactions))
	for id, c := range ctx.Interactions {
		interactions[id] = c.normalized()
	}

	return Signals{
		Interactions:   interactions,
		Wishlist:       NewIDSet(ctx.Wishlist...),
		Cart:           cart,
		RecentlyViewed: append([]string(nil), ctx.RecentlyViewed...),
	}
}

// PushRecentlyViewed returns a new list with id at the front, any earlier
// occurrence removed, bounded to RecentlyViewedLimit. The input is not
// modified. An empty id returns a copy of list unchanged.
func PushRecentlyViewed(list []string, id string) []string {
	if id == "" {
		return append([]string(nil), list...)
	}
	next := make([]string, 0, min(len(list)+1, RecentlyViewedLimit))
	next = append(next, id)
	for _, existing := range list {
		if len(next) == RecentlyViewedLimit {
			break
		}
		if existing != id {
			next = append(next, existing)
		}
	}
	return next
}
