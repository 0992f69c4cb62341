// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package signals

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/metrics"
	"github.com/tomtom215/shoprec/internal/recommend"
	"github.com/tomtom215/shoprec/internal/validation"
)

// Service applies storefront operations to a Store.
type Service struct {
	store  Store
	logger zerolog.Logger
}

// NewService wraps store.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "signals").Str("backend", store.Backend()).Logger(),
	}
}

// Store returns the underlying store.
func (s *Service) Store() Store { return s.store }

// Context returns the session's shop context.
func (s *Service) Context(ctx context.Context, sessionID string) (*recommend.ShopContext, error) {
	if err := checkSession(sessionID); err != nil {
		return nil, err
	}
	start := time.Now()
	shop, err := s.store.Load(ctx, sessionID)
	metrics.RecordSignalStoreOp(s.store.Backend(), "load", time.Since(start), err)
	return shop, err
}

// Snapshot returns the session's signals in the shape the ranker consumes.
func (s *Service) Snapshot(ctx context.Context, sessionID string) (recommend.Signals, error) {
	shop, err := s.Context(ctx, sessionID)
	if err != nil {
		return recommend.Signals{}, err
	}
	return recommend.CollectSignals(shop), nil
}

// RecordView increments the product's view counter.
func (s *Service) RecordView(ctx context.Context, sessionID, productID string) (*recommend.ShopContext, error) {
	if err := checkProduct(productID); err != nil {
		return nil, err
	}
	return s.update(ctx, sessionID, "record_view", func(c *recommend.ShopContext) error {
		recordView(c, productID)
		return nil
	})
}

// PushRecentlyViewed moves the product to the front of the recently viewed list.
func (s *Service) PushRecentlyViewed(ctx context.Context, sessionID, productID string) (*recommend.ShopContext, error) {
	if err := checkProduct(productID); err != nil {
		return nil, err
	}
	return s.update(ctx, sessionID, "push_recent", func(c *recommend.ShopContext) error {
		pushRecent(c, productID)
		return nil
	})
}

// View records a product page view: the view counter and the recently
// viewed list change together.
func (s *Service) View(ctx context.Context, sessionID, productID string) (*recommend.ShopContext, error) {
	if err := checkProduct(productID); err != nil {
		return nil, err
	}
	return s.update(ctx, sessionID, "view", func(c *recommend.ShopContext) error {
		recordView(c, productID)
		pushRecent(c, productID)
		return nil
	})
}

// AddToCart merges line into the cart and records an add interaction.
// It returns the resulting cart line.
//
//nolint:gocritic // CartLine is copied into the cart anyway
func (s *Service) AddToCart(ctx context.Context, sessionID string, line recommend.CartLine) (recommend.CartLine, *recommend.ShopContext, error) {
	if err := checkProduct(line.ProductID); err != nil {
		return recommend.CartLine{}, nil, err
	}
	var merged recommend.CartLine
	shop, err := s.update(ctx, sessionID, "add_to_cart", func(c *recommend.ShopContext) error {
		merged = addToCart(c, line)
		return nil
	})
	if err != nil {
		return recommend.CartLine{}, nil, err
	}
	return merged, shop, nil
}

// RemoveFromCart drops the cart line with key.
func (s *Service) RemoveFromCart(ctx context.Context, sessionID, key string) (*recommend.ShopContext, error) {
	return s.update(ctx, sessionID, "remove_from_cart", func(c *recommend.ShopContext) error {
		if !removeFromCart(c, key) {
			return fmt.Errorf("%w: %q", ErrCartLineNotFound, key)
		}
		return nil
	})
}

// UpdateQuantity sets a cart line's quantity; quantity <= 0 removes it.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, key string, quantity int) (*recommend.ShopContext, error) {
	return s.update(ctx, sessionID, "update_quantity", func(c *recommend.ShopContext) error {
		if !updateQuantity(c, key, quantity) {
			return fmt.Errorf("%w: %q", ErrCartLineNotFound, key)
		}
		return nil
	})
}

// ClearCart empties the cart. Interactions and the wishlist are kept.
func (s *Service) ClearCart(ctx context.Context, sessionID string) (*recommend.ShopContext, error) {
	return s.update(ctx, sessionID, "clear_cart", func(c *recommend.ShopContext) error {
		c.CartItems = []recommend.CartLine{}
		return nil
	})
}

// ToggleWishlist flips the product's wishlist membership and reports
// whether it is wishlisted afterwards.
func (s *Service) ToggleWishlist(ctx context.Context, sessionID, productID string) (bool, *recommend.ShopContext, error) {
	if err := checkProduct(productID); err != nil {
		return false, nil, err
	}
	var wishlisted bool
	shop, err := s.update(ctx, sessionID, "toggle_wishlist", func(c *recommend.ShopContext) error {
		wishlisted = toggleWishlist(c, productID)
		return nil
	})
	if err != nil {
		return false, nil, err
	}
	return wishlisted, shop, nil
}

// Reset forgets everything about a session.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	if err := checkSession(sessionID); err != nil {
		return err
	}
	start := time.Now()
	err := s.store.Delete(ctx, sessionID)
	metrics.RecordSignalStoreOp(s.store.Backend(), "delete", time.Since(start), err)
	return err
}

func (s *Service) update(ctx context.Context, sessionID, op string, fn UpdateFunc) (*recommend.ShopContext, error) {
	if err := checkSession(sessionID); err != nil {
		return nil, err
	}

	start := time.Now()
	shop, err := s.store.Update(ctx, sessionID, func(c *recommend.ShopContext) error {
		return fn(ensure(c))
	})
	metrics.RecordSignalStoreOp(s.store.Backend(), op, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Str("op", op).
		Int("cart_lines", len(shop.CartItems)).
		Int("wishlist", len(shop.Wishlist)).
		Msg("shop context updated")
	return shop, nil
}

func checkSession(sessionID string) error {
	if !validation.IsValidSessionID(sessionID) {
		return fmt.Errorf("%w: %q", ErrInvalidSessionID, sessionID)
	}
	return nil
}

func checkProduct(productID string) error {
	if verr := validation.ValidateVar("product_id", productID, "productid"); verr != nil {
		return fmt.Errorf("%w: %s", ErrInvalidProductID, verr.Error())
	}
	return nil
}
