// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func outOfStock(item CatalogItem) CatalogItem {
	item.InStock = false
	return item
}

func ids(list []CatalogItem) []string {
	out := make([]string, len(list))
	for i := range list {
		out[i] = list[i].ID
	}
	return out
}

func assertIDs(t *testing.T, got []CatalogItem, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("ids = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("ids = %v, want %v", gotIDs, want)
		}
	}
}

func containsID(list []CatalogItem, id string) bool {
	for i := range list {
		if list[i].ID == id {
			return true
		}
	}
	return false
}

// toyCatalog is a small mixed storefront used across tests.
func toyCatalog() []CatalogItem {
	return []CatalogItem{
		NewCatalogItem("1", "Wooden Puzzle", "Toys", 25),
		NewCatalogItem("2", "Wooden Blocks", "Toys", 30),
		NewCatalogItem("3", "Running Shoes", "Shoes", 80),
		NewCatalogItem("4", "Soft Baby Blanket", "Bedding", 45),
		NewCatalogItem("5", "Plush Rattle", "Toys", 12),
		NewCatalogItem("6", "Canvas Sneakers", "Shoes", 60),
	}
}
