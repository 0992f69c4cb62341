// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"fmt"
	"reflect"
	"testing"
)

func TestRecommendPersonalized_CartItemNeverReturned(t *testing.T) {
	catalog := []CatalogItem{
		NewCatalogItem("x", "Wooden Puzzle", "Toys", 25),
		NewCatalogItem("y", "Wooden Puzzle", "Toys", 25),
		NewCatalogItem("z", "Running Shoes", "Shoes", 80),
	}
	// x has maximal content similarity with the anchor and the highest popularity.
	signals := Signals{
		Interactions: InteractionSignals{"x": {Views: 50, Adds: 10}},
		Wishlist:     NewIDSet("x"),
		Cart:         NewIDSet("x"),
	}

	got := RecommendPersonalized(signals, catalog, 0)
	if containsID(got, "x") {
		t.Errorf("RecommendPersonalized() = %v, contains carted item x", ids(got))
	}
	assertIDs(t, got, "y", "z")
}

func TestRecommendPersonalized_OutOfStockNeverReturned(t *testing.T) {
	catalog := []CatalogItem{
		outOfStock(NewCatalogItem("a", "Wooden Puzzle", "Toys", 25)),
		NewCatalogItem("b", "Running Shoes", "Shoes", 80),
		NewCatalogItem("c", "Wooden Puzzle", "Toys", 25),
	}
	signals := Signals{Wishlist: NewIDSet("c")}

	got := RecommendPersonalized(signals, catalog, 0)
	assertIDs(t, got, "c", "b")
}

func TestRecommendPersonalized_NoSignalsKeepsCatalogOrder(t *testing.T) {
	catalog := toyCatalog()
	catalog[2] = outOfStock(catalog[2])

	got := RecommendPersonalized(Signals{}, catalog, 0)
	assertIDs(t, got, "1", "2", "4", "5", "6")
}

func TestRecommendPersonalized_RecentlyViewedDemoted(t *testing.T) {
	catalog := []CatalogItem{
		NewCatalogItem("seen", "Bouncy Ball", "Toys", 10),
		NewCatalogItem("fresh", "Bouncy Ball", "Toys", 10),
		NewCatalogItem("fav", "Bouncy Ball", "Toys", 10),
	}
	signals := Signals{
		Wishlist:       NewIDSet("fav"),
		RecentlyViewed: []string{"seen"},
	}

	// fav: 0.85 + 0.15*0.2; fresh: 0.85; seen: 0.85 - 0.2
	got := RecommendPersonalized(signals, catalog, 0)
	assertIDs(t, got, "fav", "fresh", "seen")
}

func TestRecommendPersonalized_RecentBoostUsesWholeList(t *testing.T) {
	catalog := make([]CatalogItem, 0, 13)
	recent := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("r%d", i)
		catalog = append(catalog, NewCatalogItem(id, "Ball", "Toys", 10))
		recent = append(recent, id)
	}
	catalog = append(catalog, NewCatalogItem("new", "Ball", "Toys", 10))

	got := RecommendPersonalized(Signals{RecentlyViewed: recent}, catalog, 1)
	assertIDs(t, got, "new")
}

func TestRecommendPersonalized_Truncation(t *testing.T) {
	catalog := make([]CatalogItem, 20)
	for i := range catalog {
		catalog[i] = NewCatalogItem(fmt.Sprintf("p%d", i), "Ball", "Toys", 10)
	}
	catalog[0] = outOfStock(catalog[0])
	signals := Signals{Cart: NewIDSet("p1", "p2")}

	tests := []struct {
		name    string
		catalog []CatalogItem
		k       int
		want    int
	}{
		{"default k", catalog, 0, 12},
		{"explicit k", catalog, 5, 5},
		{"k beyond eligible", catalog, 100, 17},
		{"empty catalog", nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecommendPersonalized(signals, tt.catalog, tt.k); len(got) != tt.want {
				t.Errorf("len(RecommendPersonalized(k=%d)) = %d, want %d", tt.k, len(got), tt.want)
			}
		})
	}
}

func TestRecommendPersonalized_Idempotent(t *testing.T) {
	catalog := toyCatalog()
	signals := Signals{
		Interactions:   InteractionSignals{"1": {Views: 4}, "3": {Adds: 1}},
		Wishlist:       NewIDSet("5"),
		Cart:           NewIDSet("3"),
		RecentlyViewed: []string{"1", "6"},
	}

	first := RecommendPersonalized(signals, catalog, 0)
	second := RecommendPersonalized(signals, catalog, 0)
	if !reflect.DeepEqual(ids(first), ids(second)) {
		t.Errorf("RecommendPersonalized() not deterministic: %v vs %v", ids(first), ids(second))
	}
	if containsID(first, "3") {
		t.Errorf("RecommendPersonalized() = %v, contains carted item 3", ids(first))
	}
}

func TestRankPersonalized_Diagnostics(t *testing.T) {
	cfg := DefaultConfig()
	catalog := []CatalogItem{
		NewCatalogItem("cart", "Wooden Puzzle", "Toys", 25),
		outOfStock(NewCatalogItem("oos", "Wooden Puzzle", "Toys", 25)),
		NewCatalogItem("ok", "Running Shoes", "Shoes", 80),
	}
	signals := Signals{
		Interactions: InteractionSignals{"cart": {Adds: 1}},
		Cart:         NewIDSet("cart"),
	}

	ranked := rankPersonalized(cfg, signals, catalog)
	if len(ranked) != 3 {
		t.Fatalf("len(rankPersonalized()) = %d, want 3", len(ranked))
	}

	byID := make(map[string]ScoredItem, len(ranked))
	for _, s := range ranked {
		byID[s.Item.ID] = s
	}

	cart := byID["cart"]
	if !cart.Excluded || cart.ExcludeReason != ExcludeInCart {
		t.Errorf("cart item excluded = %v (%q), want true (%q)", cart.Excluded, cart.ExcludeReason, ExcludeInCart)
	}
	wantCart := 0.85*1 + 0.15*0.10 - 0.5
	if !approxEqual(cart.Score, wantCart) {
		t.Errorf("cart score = %v, want %v", cart.Score, wantCart)
	}

	oos := byID["oos"]
	if !oos.Excluded || oos.ExcludeReason != ExcludeOutOfStock {
		t.Errorf("oos item excluded = %v (%q), want true (%q)", oos.Excluded, oos.ExcludeReason, ExcludeOutOfStock)
	}
	if oos.Breakdown == nil || !approxEqual(oos.Breakdown.Content, 1) {
		t.Errorf("oos content = %+v, want 1 (scored before penalty)", oos.Breakdown)
	}
	if !approxEqual(oos.Score, 0.85-1000) {
		t.Errorf("oos score = %v, want %v", oos.Score, 0.85-1000)
	}

	if ranked[len(ranked)-1].Item.ID != "oos" {
		t.Errorf("last ranked = %s, want oos", ranked[len(ranked)-1].Item.ID)
	}
	if byID["ok"].Excluded {
		t.Error("in-stock, non-carted item flagged as excluded")
	}
}

func TestRankPersonalized_OutOfStockRelativeOrder(t *testing.T) {
	cfg := DefaultConfig()
	catalog := []CatalogItem{
		outOfStock(NewCatalogItem("weak", "Running Shoes", "Shoes", 80)),
		outOfStock(NewCatalogItem("strong", "Wooden Puzzle", "Toys", 25)),
		NewCatalogItem("anchor", "Wooden Puzzle", "Toys", 25),
	}
	signals := Signals{Wishlist: NewIDSet("anchor")}

	ranked := rankPersonalized(cfg, signals, catalog)
	got := []string{ranked[0].Item.ID, ranked[1].Item.ID, ranked[2].Item.ID}
	want := []string{"anchor", "strong", "weak"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rank order = %v, want %v", got, want)
	}
}

func TestSelectEligible(t *testing.T) {
	ranked := []ScoredItem{
		{Item: CatalogItem{ID: "a"}},
		{Item: CatalogItem{ID: "b"}, Excluded: true},
		{Item: CatalogItem{ID: "c"}},
		{Item: CatalogItem{ID: "d"}},
	}

	got := items(selectEligible(ranked, 2))
	assertIDs(t, got, "a", "c")

	if got := selectEligible(nil, 3); len(got) != 0 {
		t.Errorf("selectEligible(nil) = %v, want empty", got)
	}
}

func TestRecommendPersonalized_StableAcrossRuns(t *testing.T) {
	catalog := []CatalogItem{
		NewCatalogItem("r1", "Wooden Puzzle Board", "Toys", 25),
		NewCatalogItem("r2", "Soft Plush Bear", "Toys", 18),
		NewCatalogItem("r3", "Organic Cotton Blanket", "Bedding", 45),
		NewCatalogItem("r4", "Musical Wooden Xylophone", "Toys", 35),
		NewCatalogItem("r5", "Silicone Teething Ring", "Feeding", 9),
		NewCatalogItem("r6", "Canvas Baby Sneakers", "Shoes", 30),
	}
	for i := 0; i < 6; i++ {
		twin := NewCatalogItem(fmt.Sprintf("twin%d", i), "Wooden Stacking Bear", "Toys", 22)
		twin.Description = "soft organic cotton and wooden musical toy"
		catalog = append(catalog, twin)
	}
	signals := Signals{
		Interactions: InteractionSignals{
			"r1": {Views: 1}, "r2": {Views: 2}, "r3": {Views: 4},
			"r4": {Views: 5}, "r5": {Views: 7}, "r6": {Views: 11},
		},
		RecentlyViewed: []string{"r1", "r2", "r3", "r4", "r5", "r6"},
	}

	first := ids(RecommendPersonalized(signals, catalog, len(catalog)))
	for run := 0; run < 300; run++ {
		if got := ids(RecommendPersonalized(signals, catalog, len(catalog))); !reflect.DeepEqual(got, first) {
			t.Fatalf("RecommendPersonalized() run %d = %v, want %v", run, got, first)
		}
	}

	var twins []ScoredItem
	for _, s := range rankPersonalized(DefaultConfig(), signals, catalog) {
		if len(s.Item.ID) > 4 && s.Item.ID[:4] == "twin" {
			twins = append(twins, s)
		}
	}
	for i, s := range twins {
		if want := fmt.Sprintf("twin%d", i); s.Item.ID != want {
			t.Errorf("twin rank %d = %s, want %s (catalog order)", i, s.Item.ID, want)
		}
		if s.Score != twins[0].Score {
			t.Errorf("score(%s) = %.20f, want %.20f", s.Item.ID, s.Score, twins[0].Score)
		}
	}
}

func TestRankPersonalized_NegativeCountsAreNeutral(t *testing.T) {
	catalog := []CatalogItem{
		NewCatalogItem("w", "Wooden Puzzle", "Toys", 25),
		NewCatalogItem("twin", "Wooden Puzzle", "Toys", 25),
	}
	signals := Signals{
		Interactions: InteractionSignals{"w": {Views: -9, Adds: -5}},
		Wishlist:     NewIDSet("w"),
	}

	for _, s := range rankPersonalized(DefaultConfig(), signals, catalog) {
		switch s.Item.ID {
		case "twin":
			if !approxEqual(s.Breakdown.Content, 1) {
				t.Errorf("content(twin) = %v, want 1", s.Breakdown.Content)
			}
		case "w":
			if want := DefaultConfig().Personalized.WishlistPopularity; !approxEqual(s.Breakdown.Popularity, want) {
				t.Errorf("popularity(w) = %v, want %v", s.Breakdown.Popularity, want)
			}
		}
	}
}
