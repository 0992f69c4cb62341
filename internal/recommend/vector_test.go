// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"only separators", "!!! ---  ", []string{}},
		{"lower-cases", "Wooden Puzzle", []string{"wooden", "puzzle"}},
		{"punctuation splits", "don't stop", []string{"don", "t", "stop"}},
		{"mixed whitespace", "  multiple   spaces\tand\nlines ", []string{"multiple", "spaces", "and", "lines"}},
		{"digits kept", "Size 3T ABC123xyz", []string{"size", "3t", "abc123xyz"}},
		{"non-ascii separates", "Café Déjà", []string{"caf", "d", "j"}},
		{"hyphenated", "eco-friendly", []string{"eco", "friendly"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenize_Truncates(t *testing.T) {
	words := make([]string, 100)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}

	got := Tokenize(strings.Join(words, " "))
	if len(got) != DefaultMaxTokens {
		t.Fatalf("len(Tokenize()) = %d, want %d", len(got), DefaultMaxTokens)
	}
	if got[0] != "w0" || got[DefaultMaxTokens-1] != "w63" {
		t.Errorf("Tokenize() kept %q..%q, want w0..w63", got[0], got[DefaultMaxTokens-1])
	}
}

func TestVectorize(t *testing.T) {
	tests := []struct {
		name string
		item CatalogItem
		want TermVector
	}{
		{
			name: "category counted twice",
			item: CatalogItem{Category: "Baby Toys", Name: "Soft Toys"},
			want: TermVector{"baby": 2, "toys": 3, "soft": 1},
		},
		{
			name: "description included",
			item: CatalogItem{Category: "Shoes", Name: "Runner", Description: "light runner"},
			want: TermVector{"shoes": 2, "runner": 2, "light": 1},
		},
		{
			name: "missing fields contribute nothing",
			item: CatalogItem{ID: "x"},
			want: TermVector{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Vectorize(tt.item)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Vectorize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVectorize_Deterministic(t *testing.T) {
	item := CatalogItem{Category: "Toys", Name: "Stacking Rings", Description: "rings for stacking"}
	if a, b := Vectorize(item), Vectorize(item); !reflect.DeepEqual(a, b) {
		t.Errorf("Vectorize() not deterministic: %v vs %v", a, b)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b TermVector
		want float64
	}{
		{"both empty", TermVector{}, TermVector{}, 0},
		{"left empty", TermVector{}, TermVector{"a": 1}, 0},
		{"right nil", TermVector{"a": 1}, nil, 0},
		{"disjoint", TermVector{"a": 1}, TermVector{"b": 1}, 0},
		{"identical", TermVector{"a": 2, "b": 1}, TermVector{"a": 2, "b": 1}, 1},
		{"scaled", TermVector{"a": 1, "b": 1}, TermVector{"a": 3, "b": 3}, 1},
		{"partial overlap", TermVector{"a": 1, "b": 1}, TermVector{"a": 1}, 1 / math.Sqrt2},
		{"toys puzzle vs toys blocks", TermVector{"toys": 2, "wooden": 1, "puzzle": 1}, TermVector{"toys": 2, "wooden": 1, "blocks": 1}, 5.0 / 6.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if !approxEqual(got, tt.want) {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
			if rev := Cosine(tt.b, tt.a); !approxEqual(rev, got) {
				t.Errorf("Cosine() not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestCosine_Properties(t *testing.T) {
	catalog := toyCatalog()
	vecs := make([]TermVector, len(catalog))
	for i := range catalog {
		vecs[i] = Vectorize(catalog[i])
	}

	for i := range vecs {
		if self := Cosine(vecs[i], vecs[i]); !approxEqual(self, 1) {
			t.Errorf("Cosine(v%d, v%d) = %v, want 1", i, i, self)
		}
		for j := range vecs {
			s := Cosine(vecs[i], vecs[j])
			if s < 0 || s > 1 {
				t.Errorf("Cosine(v%d, v%d) = %v, want within [0,1]", i, j, s)
			}
		}
	}
}

func TestCosineAnchor_MatchesCosineForIntegerWeights(t *testing.T) {
	a := TermVector{"toys": 2, "wooden": 1, "puzzle": 1}
	b := TermVector{"toys": 2, "wooden": 1, "blocks": 1, "maple": 1}
	anchor := AnchorVector{"toys": 2, "wooden": 1, "puzzle": 1}

	if got, want := cosineAnchor(anchor, b), Cosine(a, b); !approxEqual(got, want) {
		t.Errorf("cosineAnchor() = %v, want %v", got, want)
	}
	if got := cosineAnchor(AnchorVector{}, b); got != 0 {
		t.Errorf("cosineAnchor(empty) = %v, want 0", got)
	}
	if got := cosineAnchor(AnchorVector{"toys": 0}, b); got != 0 {
		t.Errorf("cosineAnchor(zero weights) = %v, want 0", got)
	}
}
