// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package signals

import (
	"slices"

	"github.com/tomtom215/shoprec/internal/recommend"
)

// recordView increments the view counter of productID.
func recordView(c *recommend.ShopContext, productID string) {
	counts := c.Interactions[productID]
	counts.Views++
	c.Interactions[productID] = counts
}

// recordAdd increments the add-to-cart counter of productID.
func recordAdd(c *recommend.ShopContext, productID string) {
	counts := c.Interactions[productID]
	counts.Adds++
	c.Interactions[productID] = counts
}

// pushRecent moves productID to the front of the recently viewed list.
func pushRecent(c *recommend.ShopContext, productID string) {
	c.RecentlyViewed = recommend.PushRecentlyViewed(c.RecentlyViewed, productID)
}

// addToCart merges line into the cart by key and records one add for the
// product, whatever the quantity. Quantity below 1 counts as 1.
func addToCart(c *recommend.ShopContext, line recommend.CartLine) recommend.CartLine {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	line.Key = recommend.CartKey(line.ProductID, line.Variant)

	idx := slices.IndexFunc(c.CartItems, func(l recommend.CartLine) bool { return l.Key == line.Key })
	if idx >= 0 {
		c.CartItems[idx].Quantity += line.Quantity
		line = c.CartItems[idx]
	} else {
		c.CartItems = append(c.CartItems, line)
	}

	recordAdd(c, line.ProductID)
	return line
}

// removeFromCart drops the line with key. It reports whether one existed.
func removeFromCart(c *recommend.ShopContext, key string) bool {
	n := len(c.CartItems)
	c.CartItems = slices.DeleteFunc(c.CartItems, func(l recommend.CartLine) bool { return l.Key == key })
	return len(c.CartItems) != n
}

// updateQuantity sets the quantity of key; quantity <= 0 removes the line.
// It reports whether the key existed.
func updateQuantity(c *recommend.ShopContext, key string, quantity int) bool {
	idx := slices.IndexFunc(c.CartItems, func(l recommend.CartLine) bool { return l.Key == key })
	if idx < 0 {
		return false
	}
	if quantity <= 0 {
		c.CartItems = slices.Delete(c.CartItems, idx, idx+1)
		return true
	}
	c.CartItems[idx].Quantity = quantity
	return true
}

// toggleWishlist adds productID when absent and removes it when present.
// It reports whether the product is wishlisted afterwards.
func toggleWishlist(c *recommend.ShopContext, productID string) bool {
	if idx := slices.Index(c.Wishlist, productID); idx >= 0 {
		c.Wishlist = slices.Delete(c.Wishlist, idx, idx+1)
		return false
	}
	c.Wishlist = append(c.Wishlist, productID)
	return true
}
