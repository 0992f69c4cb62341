// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"errors"
	"fmt"
	"math"
)

// Config holds every tunable constant of the ranker.
type Config struct {
	// Text controls tokenization and vector construction.
	Text TextConfig `json:"text"`

	// Similar controls the "you may also like" ranker.
	Similar SimilarConfig `json:"similar"`

	// Profile controls how interaction signals fold into the anchor vector.
	Profile ProfileConfig `json:"profile"`

	// Personalized controls the "recommended for you" ranker.
	Personalized PersonalizedConfig `json:"personalized"`
}

// TextConfig controls the tokenizer and vectorizer.
type TextConfig struct {
	// MaxTokens caps the tokens kept per text field.
	// Default: 64
	MaxTokens int `json:"max_tokens"`

	// CategoryRepeat is how many times category tokens are counted.
	// Default: 2
	CategoryRepeat int `json:"category_repeat"`
}

// SimilarConfig blends content similarity with price closeness.
type SimilarConfig struct {
	// DefaultK is the list size when the caller passes k <= 0.
	// Default: 10
	DefaultK int `json:"default_k"`

	// ContentWeight multiplies cosine(reference, candidate).
	// Default: 0.75
	ContentWeight float64 `json:"content_weight"`

	// PriceWeight multiplies price affinity.
	// Default: 0.25
	PriceWeight float64 `json:"price_weight"`

	// PriceFloor is the minimum denominator of the relative price gap.
	// Default: 300
	PriceFloor float64 `json:"price_floor"`

	// UnknownPriceAffinity is returned when either price is unknown.
	// Default: 0.1
	UnknownPriceAffinity float64 `json:"unknown_price_affinity"`
}

// ProfileConfig weighs items in the shopper's interest set.
// weight = Base + AddWeight*adds + min(ViewCap, views/ViewDivisor) + WishlistBonus
type ProfileConfig struct {
	// RecentLimit is how many recently viewed items join the interest set.
	// Default: 10
	RecentLimit int `json:"recent_limit"`

	// Base is the weight every interest item starts with.
	// Default: 1
	Base float64 `json:"base"`

	// AddWeight multiplies the add-to-cart count.
	// Default: 1
	AddWeight float64 `json:"add_weight"`

	// ViewDivisor divides the view count.
	// Default: 3
	ViewDivisor float64 `json:"view_divisor"`

	// ViewCap bounds the view contribution.
	// Default: 2
	ViewCap float64 `json:"view_cap"`

	// WishlistBonus is added for wishlisted items.
	// Default: 2
	WishlistBonus float64 `json:"wishlist_bonus"`
}

// PersonalizedConfig blends anchor similarity, popularity and boosts.
type PersonalizedConfig struct {
	// DefaultK is the list size when the caller passes k <= 0.
	// Default: 12
	DefaultK int `json:"default_k"`

	// ContentWeight multiplies cosine(anchor, candidate).
	// Default: 0.85
	ContentWeight float64 `json:"content_weight"`

	// PopularityWeight multiplies the popularity score.
	// Default: 0.15
	PopularityWeight float64 `json:"popularity_weight"`

	// ViewPopularity is the popularity earned per view.
	// Default: 0.02
	ViewPopularity float64 `json:"view_popularity"`

	// AddPopularity is the popularity earned per add-to-cart.
	// Default: 0.10
	AddPopularity float64 `json:"add_popularity"`

	// WishlistPopularity is the popularity of a wishlisted item.
	// Default: 0.2
	WishlistPopularity float64 `json:"wishlist_popularity"`

	// RecentBoost is added for recently viewed items.
	// Default: -0.2
	RecentBoost float64 `json:"recent_boost"`

	// CartBoost is added for items already in the cart.
	// Default: -0.5
	CartBoost float64 `json:"cart_boost"`

	// OutOfStockPenalty is added to the sort key of out-of-stock items.
	// Default: -1000
	OutOfStockPenalty float64 `json:"out_of_stock_penalty"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Text: TextConfig{
			MaxTokens:      64,
			CategoryRepeat: 2,
		},
		Similar: SimilarConfig{
			DefaultK:             10,
			ContentWeight:        0.75,
			PriceWeight:          0.25,
			PriceFloor:           300,
			UnknownPriceAffinity: 0.1,
		},
		Profile: ProfileConfig{
			RecentLimit:   10,
			Base:          1,
			AddWeight:     1,
			ViewDivisor:   3,
			ViewCap:       2,
			WishlistBonus: 2,
		},
		Personalized: PersonalizedConfig{
			DefaultK:           12,
			ContentWeight:      0.85,
			PopularityWeight:   0.15,
			ViewPopularity:     0.02,
			AddPopularity:      0.10,
			WishlistPopularity: 0.2,
			RecentBoost:        -0.2,
			CartBoost:          -0.5,
			OutOfStockPenalty:  -1000,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Text.MaxTokens <= 0 {
		return fmt.Errorf("text.max_tokens must be positive, got %d", c.Text.MaxTokens)
	}
	if c.Text.CategoryRepeat < 0 {
		return fmt.Errorf("text.category_repeat must be non-negative, got %d", c.Text.CategoryRepeat)
	}

	if c.Similar.DefaultK <= 0 {
		return fmt.Errorf("similar.default_k must be positive, got %d", c.Similar.DefaultK)
	}
	if err := checkWeight("similar.content_weight", c.Similar.ContentWeight); err != nil {
		return err
	}
	if err := checkWeight("similar.price_weight", c.Similar.PriceWeight); err != nil {
		return err
	}
	if c.Similar.PriceFloor <= 0 || math.IsNaN(c.Similar.PriceFloor) {
		return fmt.Errorf("similar.price_floor must be positive, got %f", c.Similar.PriceFloor)
	}
	if err := checkWeight("similar.unknown_price_affinity", c.Similar.UnknownPriceAffinity); err != nil {
		return err
	}

	if c.Profile.RecentLimit < 0 {
		return fmt.Errorf("profile.recent_limit must be non-negative, got %d", c.Profile.RecentLimit)
	}
	if c.Profile.ViewDivisor <= 0 {
		return fmt.Errorf("profile.view_divisor must be positive, got %f", c.Profile.ViewDivisor)
	}
	for name, v := range map[string]float64{
		"profile.base":           c.Profile.Base,
		"profile.add_weight":     c.Profile.AddWeight,
		"profile.view_cap":       c.Profile.ViewCap,
		"profile.wishlist_bonus": c.Profile.WishlistBonus,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a non-negative number, got %f", name, v)
		}
	}

	p := c.Personalized
	if p.DefaultK <= 0 {
		return fmt.Errorf("personalized.default_k must be positive, got %d", p.DefaultK)
	}
	if err := checkWeight("personalized.content_weight", p.ContentWeight); err != nil {
		return err
	}
	if err := checkWeight("personalized.popularity_weight", p.PopularityWeight); err != nil {
		return err
	}
	if p.OutOfStockPenalty > 0 {
		return fmt.Errorf("personalized.out_of_stock_penalty must not be positive, got %f", p.OutOfStockPenalty)
	}
	for name, v := range map[string]float64{
		"personalized.view_popularity":     p.ViewPopularity,
		"personalized.add_popularity":      p.AddPopularity,
		"personalized.wishlist_popularity": p.WishlistPopularity,
		"personalized.recent_boost":        p.RecentBoost,
		"personalized.cart_boost":          p.CartBoost,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite, got %f", name, v)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func checkWeight(name string, v float64) error {
	if v < 0 || v > 1 || math.IsNaN(v) {
		return fmt.Errorf("%s must be between 0 and 1, got %f", name, v)
	}
	return nil
}
