// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package models

import (
	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/recommend"
)

// Recommendation modes.
const (
	ModeSimilar      = "similar"
	ModePersonalized = "personalized"
)

// MaxInlineCatalog bounds catalogs posted in request bodies.
const MaxInlineCatalog = 10000

// SimilarRequest asks for items like a reference product. Either Product
// or ProductID must be set; ProductID is looked up in the catalog.
type SimilarRequest struct {
	Product   *catalog.RawProduct  `json:"product,omitempty"`
	ProductID string               `json:"product_id,omitempty" validate:"omitempty,productid"`
	Catalog   []catalog.RawProduct `json:"catalog,omitempty" validate:"max=10000"`
	K         int                  `json:"k" validate:"min=0"`
}

// PersonalizedRequest ranks a catalog against a posted shop context.
type PersonalizedRequest struct {
	Context recommend.ShopContext `json:"context"`
	Catalog []catalog.RawProduct  `json:"catalog,omitempty" validate:"max=10000"`
	K       int                   `json:"k" validate:"min=0"`
}

// ViewRequest records a product page view.
type ViewRequest struct {
	ProductID string `json:"product_id" validate:"productid"`
}

// CartAddRequest adds a product to the cart.
type CartAddRequest struct {
	ProductID string  `json:"product_id" validate:"productid"`
	Variant   string  `json:"variant,omitempty" validate:"max=64"`
	Quantity  int     `json:"quantity" validate:"min=0,max=999"`
	Name      string  `json:"name,omitempty" validate:"max=256"`
	Price     float64 `json:"price" validate:"min=0"`
	Image     string  `json:"image,omitempty" validate:"max=2048"`
}

// CartQuantityRequest sets a cart line's quantity; 0 removes the line.
type CartQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=999"`
}

// RecommendationList is the payload of every ranking endpoint.
type RecommendationList struct {
	Mode        string                  `json:"mode"`
	Items       []recommend.CatalogItem `json:"items"`
	Count       int                     `json:"count"`
	K           int                     `json:"k"`
	CatalogSize int                     `json:"catalog_size"`
	SessionID   string                  `json:"session_id,omitempty"`

	// Explanation lists every catalog item with its score when requested.
	Explanation []recommend.ScoredItem `json:"explanation,omitempty"`
}

// ProductPageRecommendations holds both lists shown on a product page.
type ProductPageRecommendations struct {
	Product      recommend.CatalogItem `json:"product"`
	Similar      RecommendationList    `json:"similar"`
	Personalized *RecommendationList   `json:"personalized,omitempty"`
}

// SessionSignals is a session's stored context plus derived totals.
type SessionSignals struct {
	SessionID    string                 `json:"session_id"`
	Context      *recommend.ShopContext `json:"context"`
	CartCount    int                    `json:"cart_count"`
	CartSubtotal float64                `json:"cart_subtotal"`
}

// WishlistToggle reports a product's wishlist membership after a toggle.
type WishlistToggle struct {
	ProductID  string   `json:"product_id"`
	Wishlisted bool     `json:"wishlisted"`
	Wishlist   []string `json:"wishlist"`
}

// EngineConfig exposes the ranker configuration and counters.
type EngineConfig struct {
	Config  *recommend.Config `json:"config"`
	MaxK    int               `json:"max_k"`
	Metrics recommend.Metrics `json:"metrics"`
}

// CartAddResult is the merged cart line plus the session totals.
type CartAddResult struct {
	Line    recommend.CartLine `json:"line"`
	Session SessionSignals     `json:"session"`
}

// NewSessionSignals derives cart totals from shop.
func NewSessionSignals(sessionID string, shop *recommend.ShopContext) SessionSignals {
	out := SessionSignals{SessionID: sessionID, Context: shop}
	if shop != nil {
		out.CartCount = shop.CartCount()
		out.CartSubtotal = shop.CartSubtotal()
	}
	return out
}
