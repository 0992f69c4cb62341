// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/signals"
)

// DefaultMaintenanceInterval is used when no interval is configured.
const DefaultMaintenanceInterval = 10 * time.Minute

// badgerGCDiscardRatio is the value-log rewrite threshold.
const badgerGCDiscardRatio = 0.5

// expirer drops expired sessions. Satisfied by *signals.MemoryStore.
type expirer interface {
	CleanupExpired() int
}

// valueLogCollector compacts a value log. Satisfied by *signals.BadgerStore.
type valueLogCollector interface {
	RunGC(discardRatio float64) error
}

// SignalMaintenanceService periodically reclaims signal store space:
// expired sessions for the memory store, value-log GC for BadgerDB.
type SignalMaintenanceService struct {
	store    signals.Store
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewSignalMaintenanceService creates a maintenance loop over store. Stores
// that support neither operation make Serve idle until shutdown.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSignalMaintenanceService(store signals.Store, interval time.Duration, logger zerolog.Logger) *SignalMaintenanceService {
	if interval <= 0 {
		interval = DefaultMaintenanceInterval
	}
	return &SignalMaintenanceService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "signal-maintenance").Str("backend", store.Backend()).Logger(),
		name:     "signal-maintenance-service",
	}
}

// Serve implements suture.Service.
func (s *SignalMaintenanceService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *SignalMaintenanceService) runOnce() {
	start := time.Now()

	if e, ok := s.store.(expirer); ok {
		if n := e.CleanupExpired(); n > 0 {
			s.logger.Debug().Int("removed", n).Msg("expired sessions removed")
		}
	}

	if gc, ok := s.store.(valueLogCollector); ok {
		if err := gc.RunGC(badgerGCDiscardRatio); err != nil {
			s.logger.Warn().Err(err).Msg("value log GC failed")
			return
		}
	}

	s.logger.Debug().Dur("duration", time.Since(start)).Msg("signal store maintenance complete")
}

// String returns the service name for logging.
func (s *SignalMaintenanceService) String() string {
	return s.name
}
