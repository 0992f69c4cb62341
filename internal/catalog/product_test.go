// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package catalog

import (
	"errors"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		raw          RawProduct
		wantOK       bool
		wantID       string
		wantCategory string
		wantPrice    float64
		wantOriginal *float64
		wantInStock  bool
		wantImage    string
	}{
		{
			name:   "mongo id wins over id",
			raw:    RawProduct{MongoID: "m1", ID: "i1", Category: "Toys", Price: 10},
			wantOK: true, wantID: "m1", wantCategory: "Toys", wantPrice: 10, wantInStock: true,
		},
		{
			name:   "id fallback",
			raw:    RawProduct{ID: "i1", Category: "Toys", Price: 10},
			wantOK: true, wantID: "i1", wantCategory: "Toys", wantPrice: 10, wantInStock: true,
		},
		{
			name:   "no id dropped",
			raw:    RawProduct{Name: "Orphan"},
			wantOK: false,
		},
		{
			name:   "empty category becomes default",
			raw:    RawProduct{ID: "a", Price: 5},
			wantOK: true, wantID: "a", wantCategory: "General", wantPrice: 5, wantInStock: true,
		},
		{
			name:   "explicit out of stock",
			raw:    RawProduct{ID: "a", Category: "Toys", InStock: ptr(false)},
			wantOK: true, wantID: "a", wantCategory: "Toys", wantInStock: false,
		},
		{
			name:   "first image used when image empty",
			raw:    RawProduct{ID: "a", Category: "Toys", Images: []string{"one.png", "two.png"}},
			wantOK: true, wantID: "a", wantCategory: "Toys", wantInStock: true, wantImage: "one.png",
		},
		{
			name:   "main image preferred",
			raw:    RawProduct{ID: "a", Category: "Toys", Image: "main.png", Images: []string{"one.png"}},
			wantOK: true, wantID: "a", wantCategory: "Toys", wantInStock: true, wantImage: "main.png",
		},
		{
			name:   "active discount",
			raw:    RawProduct{ID: "a", Category: "Toys", Price: 199.99, ActiveDiscount: 15, DiscountStatus: "active"},
			wantOK: true, wantID: "a", wantCategory: "Toys", wantPrice: 169.99, wantOriginal: ptr(199.99), wantInStock: true,
		},
		{
			name:   "suggested discount ignored",
			raw:    RawProduct{ID: "a", Category: "Toys", Price: 100, ActiveDiscount: 15, DiscountStatus: "suggested"},
			wantOK: true, wantID: "a", wantCategory: "Toys", wantPrice: 100, wantInStock: true,
		},
		{
			name:   "original price passed through",
			raw:    RawProduct{ID: "a", Category: "Toys", Price: 80, OriginalPrice: ptr(120.0)},
			wantOK: true, wantID: "a", wantCategory: "Toys", wantPrice: 80, wantOriginal: ptr(120.0), wantInStock: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := Normalize(tt.raw, "")
			if ok != tt.wantOK {
				t.Fatalf("Normalize() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if item.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", item.ID, tt.wantID)
			}
			if item.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", item.Category, tt.wantCategory)
			}
			if item.Price != tt.wantPrice {
				t.Errorf("Price = %v, want %v", item.Price, tt.wantPrice)
			}
			if item.InStock != tt.wantInStock {
				t.Errorf("InStock = %v, want %v", item.InStock, tt.wantInStock)
			}
			if item.Image != tt.wantImage {
				t.Errorf("Image = %q, want %q", item.Image, tt.wantImage)
			}
			switch {
			case tt.wantOriginal == nil && item.OriginalPrice != nil:
				t.Errorf("OriginalPrice = %v, want nil", *item.OriginalPrice)
			case tt.wantOriginal != nil && item.OriginalPrice == nil:
				t.Errorf("OriginalPrice = nil, want %v", *tt.wantOriginal)
			case tt.wantOriginal != nil && *item.OriginalPrice != *tt.wantOriginal:
				t.Errorf("OriginalPrice = %v, want %v", *item.OriginalPrice, *tt.wantOriginal)
			}
		})
	}
}

func TestNormalize_CustomDefaultCategory(t *testing.T) {
	item, ok := Normalize(RawProduct{ID: "a"}, "Misc")
	if !ok {
		t.Fatal("Normalize() ok = false")
	}
	if item.Category != "Misc" {
		t.Errorf("Category = %q, want Misc", item.Category)
	}
}

func TestNormalizeAll(t *testing.T) {
	raws := []RawProduct{
		{ID: "a", Name: "first"},
		{Name: "no id"},
		{ID: "b"},
		{MongoID: "a", Name: "duplicate"},
	}

	items, skipped := NormalizeAll(raws, "")
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "b" {
		t.Fatalf("items = %+v, want ids [a b]", items)
	}
	if items[0].Name != "first" {
		t.Errorf("first occurrence not kept: Name = %q", items[0].Name)
	}
}

func TestFind(t *testing.T) {
	items, _ := NormalizeAll([]RawProduct{{ID: "a"}, {ID: "b"}}, "")

	got, err := Find(items, "b")
	if err != nil {
		t.Fatalf("Find(b) error = %v", err)
	}
	if got.ID != "b" {
		t.Errorf("Find(b).ID = %q, want b", got.ID)
	}

	if _, err := Find(items, "zzz"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Find(zzz) error = %v, want ErrItemNotFound", err)
	}
}

func TestDecodeProducts(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{"envelope", `{"products":[{"_id":"a"},{"_id":"b"}]}`, 2, false},
		{"bare array", ` [{"id":"a"}]`, 1, false},
		{"empty envelope", `{}`, 0, false},
		{"empty body", `  `, 0, true},
		{"malformed", `{"products":[`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raws, err := decodeProducts([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeProducts() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(raws) != tt.want {
				t.Errorf("len = %d, want %d", len(raws), tt.want)
			}
		})
	}
}
