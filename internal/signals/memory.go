// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package signals

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/shoprec/internal/recommend"
)

type memoryEntry struct {
	shop      *recommend.ShopContext
	updatedAt time.Time
}

// MemoryStore keeps sessions in a map. Expired sessions read as empty and
// are removed by CleanupExpired.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	now      func() time.Time
	closed   bool
}

// NewMemoryStore creates an empty store. ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Backend returns "memory".
func (s *MemoryStore) Backend() string { return string(StoreMemory) }

// Load returns a copy of the session's context.
func (s *MemoryStore) Load(ctx context.Context, sessionID string) (*recommend.ShopContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	entry, ok := s.sessions[sessionID]
	if !ok || s.expired(entry) {
		return newContext(), nil
	}
	return cloneContext(entry.shop), nil
}

// Update applies fn to a private copy and stores it when fn succeeds.
func (s *MemoryStore) Update(ctx context.Context, sessionID string, fn UpdateFunc) (*recommend.ShopContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	working := newContext()
	if entry, ok := s.sessions[sessionID]; ok && !s.expired(entry) {
		working = cloneContext(entry.shop)
	}
	if err := fn(working); err != nil {
		return nil, err
	}

	s.sessions[sessionID] = &memoryEntry{shop: working, updatedAt: s.now()}
	return cloneContext(working), nil
}

// Delete removes a session.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	delete(s.sessions, sessionID)
	return nil
}

// Count returns the number of unexpired sessions.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrStoreClosed
	}
	n := 0
	for _, entry := range s.sessions {
		if !s.expired(entry) {
			n++
		}
	}
	return n, nil
}

// CleanupExpired removes expired sessions and returns how many were dropped.
func (s *MemoryStore) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, entry := range s.sessions {
		if s.expired(entry) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Close releases the store. Later calls fail with ErrStoreClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.sessions = nil
	return nil
}

func (s *MemoryStore) expired(entry *memoryEntry) bool {
	return s.ttl > 0 && s.now().Sub(entry.updatedAt) > s.ttl
}
