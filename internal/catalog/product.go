// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shoprec/internal/recommend"
)

// DefaultCategory is the neutral label for uncategorised products.
const DefaultCategory = "General"

// DiscountStatusActive marks an admin-approved discount.
const DiscountStatusActive = "active"

// ErrItemNotFound is returned when a product ID is not in the catalog.
var ErrItemNotFound = errors.New("catalog item not found")

// RawProduct is a product record as served by the storefront products API.
type RawProduct struct {
	MongoID        string   `json:"_id"`
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Price          float64  `json:"price"`
	OriginalPrice  *float64 `json:"originalPrice"`
	Image          string   `json:"image"`
	Images         []string `json:"images"`
	InStock        *bool    `json:"inStock"`
	ActiveDiscount float64  `json:"activeDiscount"`
	DiscountStatus string   `json:"discountStatus"`
}

// Normalize converts raw into a catalog item. It reports false when the
// record has no usable ID. An empty defaultCategory selects DefaultCategory.
//
//nolint:gocritic // RawProduct is decoded by value from slices
func Normalize(raw RawProduct, defaultCategory string) (recommend.CatalogItem, bool) {
	id := raw.MongoID
	if id == "" {
		id = raw.ID
	}
	if id == "" {
		return recommend.CatalogItem{}, false
	}
	if defaultCategory == "" {
		defaultCategory = DefaultCategory
	}

	item := recommend.CatalogItem{
		ID:          id,
		Name:        raw.Name,
		Description: raw.Description,
		Category:    raw.Category,
		Price:       raw.Price,
		InStock:     raw.InStock == nil || *raw.InStock,
		Image:       raw.Image,
	}
	if item.Category == "" {
		item.Category = defaultCategory
	}
	if item.Image == "" && len(raw.Images) > 0 {
		item.Image = raw.Images[0]
	}
	if raw.OriginalPrice != nil && *raw.OriginalPrice > 0 {
		op := *raw.OriginalPrice
		item.OriginalPrice = &op
	}

	if raw.DiscountStatus == DiscountStatusActive && raw.ActiveDiscount > 0 && raw.Price > 0 {
		list := raw.Price
		item.Price = roundCents(raw.Price * (1 - raw.ActiveDiscount/100))
		item.OriginalPrice = &list
	}
	return item, true
}

// NormalizeAll normalizes raws in order, dropping records without an ID
// and later duplicates of an ID. It returns the kept items and the number
// of dropped records.
func NormalizeAll(raws []RawProduct, defaultCategory string) (items []recommend.CatalogItem, skipped int) {
	items = make([]recommend.CatalogItem, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for i := range raws {
		item, ok := Normalize(raws[i], defaultCategory)
		if !ok {
			skipped++
			continue
		}
		if _, dup := seen[item.ID]; dup {
			skipped++
			continue
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}
	return items, skipped
}

// Find returns the item with the given ID.
func Find(items []recommend.CatalogItem, id string) (recommend.CatalogItem, error) {
	for i := range items {
		if items[i].ID == id {
			return items[i], nil
		}
	}
	return recommend.CatalogItem{}, fmt.Errorf("%w: %q", ErrItemNotFound, id)
}

// decodeProducts accepts either {"products":[...]} or a bare array.
func decodeProducts(data []byte) ([]RawProduct, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty product payload")
	}

	if trimmed[0] == '[' {
		var raws []RawProduct
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("decode product list: %w", err)
		}
		return raws, nil
	}

	var envelope struct {
		Products []RawProduct `json:"products"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode product envelope: %w", err)
	}
	return envelope.Products, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
