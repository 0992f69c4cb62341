// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package signals

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/shoprec/internal/recommend"
)

// shopKeyPrefix namespaces session documents.
const shopKeyPrefix = "shop:"

// maxConflictRetries bounds retries of a conflicting read-modify-write.
const maxConflictRetries = 5

// BadgerStore persists one JSON document per session. Each write resets
// the session TTL.
type BadgerStore struct {
	db     *badger.DB
	ttl    time.Duration
	owned  bool
	closed atomic.Bool
}

// OpenBadgerStore opens (or creates) a BadgerDB at path.
func OpenBadgerStore(path string, ttl time.Duration) (*BadgerStore, error) {
	if path == "" {
		return nil, errors.New("badger signal store requires a path")
	}
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for signals: %w", err)
	}
	return &BadgerStore{db: db, ttl: ttl, owned: true}, nil
}

// NewBadgerStore wraps an already open database. Close leaves db open.
func NewBadgerStore(db *badger.DB, ttl time.Duration) *BadgerStore {
	return &BadgerStore{db: db, ttl: ttl}
}

// Backend returns "badger".
func (s *BadgerStore) Backend() string { return string(StoreBadger) }

func shopKey(sessionID string) []byte {
	return []byte(shopKeyPrefix + sessionID)
}

// Load returns the stored context or an empty one.
func (s *BadgerStore) Load(ctx context.Context, sessionID string) (*recommend.ShopContext, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var shop *recommend.ShopContext
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		shop, err = readShop(txn, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return shop, nil
}

// Update runs a read-modify-write inside one transaction, retrying on
// write conflicts.
func (s *BadgerStore) Update(ctx context.Context, sessionID string, fn UpdateFunc) (*recommend.ShopContext, error) {
	for attempt := 0; ; attempt++ {
		if err := s.check(ctx); err != nil {
			return nil, err
		}

		var result *recommend.ShopContext
		err := s.db.Update(func(txn *badger.Txn) error {
			shop, err := readShop(txn, sessionID)
			if err != nil {
				return err
			}
			if err := fn(shop); err != nil {
				return err
			}

			data, err := json.Marshal(shop)
			if err != nil {
				return fmt.Errorf("marshal shop context: %w", err)
			}
			entry := badger.NewEntry(shopKey(sessionID), data)
			if s.ttl > 0 {
				entry = entry.WithTTL(s.ttl)
			}
			if err := txn.SetEntry(entry); err != nil {
				return fmt.Errorf("set shop context: %w", err)
			}
			result = shop
			return nil
		})

		if errors.Is(err, badger.ErrConflict) && attempt < maxConflictRetries {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

// Delete removes a session document.
func (s *BadgerStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(shopKey(sessionID)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete shop context: %w", err)
		}
		return nil
	})
}

// Count returns the number of unexpired session documents.
func (s *BadgerStore) Count(ctx context.Context) (int, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(shopKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// RunGC reclaims space in the value log. It returns nil when there was
// nothing to collect.
func (s *BadgerStore) RunGC(discardRatio float64) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}
	err := s.db.RunValueLogGC(discardRatio)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}

// Close closes the database if this store opened it.
func (s *BadgerStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.owned {
		return s.db.Close()
	}
	return nil
}

func (s *BadgerStore) check(ctx context.Context) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}
	return ctx.Err()
}

// readShop loads a session document, or an empty context when absent.
func readShop(txn *badger.Txn, sessionID string) (*recommend.ShopContext, error) {
	item, err := txn.Get(shopKey(sessionID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return newContext(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get shop context: %w", err)
	}

	var shop recommend.ShopContext
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &shop)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal shop context: %w", err)
	}
	return ensure(&shop), nil
}
