// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package signals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/shoprec/internal/recommend"
)

// StoreType selects a Store backend.
type StoreType string

const (
	// StoreMemory keeps sessions in process memory.
	StoreMemory StoreType = "memory"

	// StoreBadger persists sessions in BadgerDB.
	StoreBadger StoreType = "badger"
)

var (
	// ErrInvalidSessionID is returned for empty or malformed session IDs.
	ErrInvalidSessionID = errors.New("invalid session id")

	// ErrInvalidProductID is returned when an operation names no product.
	ErrInvalidProductID = errors.New("invalid product id")

	// ErrCartLineNotFound is returned when a cart key is not in the cart.
	ErrCartLineNotFound = errors.New("cart line not found")

	// ErrStoreClosed is returned after Close.
	ErrStoreClosed = errors.New("signal store closed")
)

// UpdateFunc mutates a session's context in place. Returning an error
// aborts the update and leaves the stored context unchanged.
type UpdateFunc func(c *recommend.ShopContext) error

// Store persists shop contexts by session ID.
type Store interface {
	// Load returns a copy of the session's context. Unknown sessions
	// yield an empty context, not an error.
	Load(ctx context.Context, sessionID string) (*recommend.ShopContext, error)

	// Update applies fn atomically and returns a copy of the result.
	Update(ctx context.Context, sessionID string, fn UpdateFunc) (*recommend.ShopContext, error)

	// Delete removes a session. Missing sessions are not an error.
	Delete(ctx context.Context, sessionID string) error

	// Count returns the number of live sessions.
	Count(ctx context.Context) (int, error)

	// Backend names the implementation for metrics and logs.
	Backend() string

	Close() error
}

// Open builds the store selected by storeType. path is only used by the
// badger backend; ttl <= 0 keeps sessions forever.
func Open(storeType StoreType, path string, ttl time.Duration) (Store, error) {
	switch storeType {
	case StoreMemory, "":
		return NewMemoryStore(ttl), nil
	case StoreBadger:
		return OpenBadgerStore(path, ttl)
	default:
		return nil, fmt.Errorf("unknown signal store %q", storeType)
	}
}

// newContext returns an empty, fully initialised context.
func newContext() *recommend.ShopContext {
	return &recommend.ShopContext{
		CartItems:      []recommend.CartLine{},
		Wishlist:       []string{},
		Interactions:   recommend.InteractionSignals{},
		RecentlyViewed: []string{},
	}
}

// ensure fills nil collections so mutations and JSON output are uniform.
func ensure(c *recommend.ShopContext) *recommend.ShopContext {
	if c == nil {
		return newContext()
	}
	if c.CartItems == nil {
		c.CartItems = []recommend.CartLine{}
	}
	if c.Wishlist == nil {
		c.Wishlist = []string{}
	}
	if c.Interactions == nil {
		c.Interactions = recommend.InteractionSignals{}
	}
	if c.RecentlyViewed == nil {
		c.RecentlyViewed = []string{}
	}
	return c
}

// cloneContext deep-copies c.
func cloneContext(c *recommend.ShopContext) *recommend.ShopContext {
	if c == nil {
		return newContext()
	}
	out := &recommend.ShopContext{
		CartItems:      append([]recommend.CartLine{}, c.CartItems...),
		Wishlist:       append([]string{}, c.Wishlist...),
		Interactions:   make(recommend.InteractionSignals, len(c.Interactions)),
		RecentlyViewed: append([]string{}, c.RecentlyViewed...),
	}
	for id, counts := range c.Interactions {
		out.Interactions[id] = counts
	}
	return out
}
