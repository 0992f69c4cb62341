// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewEngine(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		engine, err := NewEngine(DefaultConfig(), zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		if engine == nil {
			t.Fatal("NewEngine() returned nil engine")
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Similar.DefaultK = 0
		if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
			t.Error("NewEngine() error = nil, want error for invalid config")
		}
	})

	t.Run("nil config", func(t *testing.T) {
		if _, err := NewEngine(nil, zerolog.Nop()); err == nil {
			t.Error("NewEngine(nil) error = nil, want error")
		}
	})

	t.Run("config is copied", func(t *testing.T) {
		cfg := DefaultConfig()
		engine, err := NewEngine(cfg, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		cfg.Similar.DefaultK = 1
		if got := engine.Config().Similar.DefaultK; got != 10 {
			t.Errorf("engine DefaultK = %d after caller mutation, want 10", got)
		}
	})
}

func TestEngine_CustomWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Similar.ContentWeight = 0
	cfg.Similar.PriceWeight = 1
	engine, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	ref := NewCatalogItem("ref", "Wooden Puzzle", "Toys", 100)
	catalog := []CatalogItem{
		NewCatalogItem("same-content", "Wooden Puzzle", "Toys", 900),
		NewCatalogItem("same-price", "Running Shoes", "Shoes", 100),
	}

	got := engine.Similar(ref, catalog, 0)
	assertIDs(t, got, "same-price", "same-content")
}

func TestEngine_CustomDefaultK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Personalized.DefaultK = 2
	engine, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	if got := engine.Personalized(Signals{}, toyCatalog(), 0); len(got) != 2 {
		t.Errorf("len(Personalized()) = %d, want 2", len(got))
	}
}

func TestEngine_ExplainPersonalized(t *testing.T) {
	engine, err := NewEngine(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	catalog := toyCatalog()
	catalog[3] = outOfStock(catalog[3])
	signals := Signals{Wishlist: NewIDSet("1"), Cart: NewIDSet("2")}

	explained := engine.ExplainPersonalized(signals, catalog)
	if len(explained) != len(catalog) {
		t.Fatalf("len(ExplainPersonalized()) = %d, want %d", len(explained), len(catalog))
	}

	var eligible []CatalogItem
	for _, s := range explained {
		if s.Breakdown == nil {
			t.Errorf("item %s has no breakdown", s.Item.ID)
		}
		if !s.Excluded {
			eligible = append(eligible, s.Item)
		}
	}

	got := engine.Personalized(signals, catalog, len(catalog))
	assertIDs(t, got, ids(eligible)...)
}

func TestEngine_Metrics(t *testing.T) {
	engine, err := NewEngine(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	catalog := toyCatalog()

	engine.Similar(catalog[0], catalog, 0)
	engine.Similar(catalog[1], catalog, 0)
	engine.Personalized(Signals{}, catalog, 0)

	m := engine.GetMetrics()
	if m.SimilarRequests != 2 {
		t.Errorf("SimilarRequests = %d, want 2", m.SimilarRequests)
	}
	if m.PersonalizedRequests != 1 {
		t.Errorf("PersonalizedRequests = %d, want 1", m.PersonalizedRequests)
	}
	if want := int64(3 * len(catalog)); m.ItemsScored != want {
		t.Errorf("ItemsScored = %d, want %d", m.ItemsScored, want)
	}
}

func TestEngine_LogsRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	engine, err := NewEngine(DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	catalog := toyCatalog()

	engine.Similar(catalog[0], catalog, 0)

	out := buf.String()
	if out != "" && !strings.Contains(out, `"component":"recommend"`) {
		t.Errorf("log output missing component field: %s", out)
	}
}

func TestEngine_ConcurrentUse(t *testing.T) {
	engine, err := NewEngine(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	catalog := toyCatalog()
	signals := Signals{Wishlist: NewIDSet("1"), RecentlyViewed: []string{"3"}}
	want := ids(engine.Personalized(signals, catalog, 0))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := ids(engine.Personalized(signals, catalog, 0))
			if strings.Join(got, ",") != strings.Join(want, ",") {
				t.Errorf("concurrent Personalized() = %v, want %v", got, want)
			}
			engine.Similar(catalog[0], catalog, 0)
		}()
	}
	wg.Wait()
}
