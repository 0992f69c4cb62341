// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// isolate clears config-related env vars and points CONFIG_PATH at nothing.
func isolate(t *testing.T) {
	t.Helper()
	for envName := range envMappings {
		upper := strings.ToUpper(envName)
		if _, ok := os.LookupEnv(upper); ok {
			t.Setenv(upper, "")
			os.Unsetenv(upper)
		}
	}
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Chdir(t.TempDir())
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8088 {
		t.Errorf("Server.Port = %d, want 8088", cfg.Server.Port)
	}
	if cfg.Catalog.DefaultCategory != "General" {
		t.Errorf("Catalog.DefaultCategory = %q, want General", cfg.Catalog.DefaultCategory)
	}
	if cfg.Signals.Store != "memory" {
		t.Errorf("Signals.Store = %q, want memory", cfg.Signals.Store)
	}
	if cfg.Recommend.Similar.ContentWeight != 0.75 || cfg.Recommend.Similar.PriceWeight != 0.25 {
		t.Errorf("similar weights = %v/%v, want 0.75/0.25",
			cfg.Recommend.Similar.ContentWeight, cfg.Recommend.Similar.PriceWeight)
	}
	if cfg.Recommend.Personalized.OutOfStockPenalty != -1000 {
		t.Errorf("OutOfStockPenalty = %v, want -1000", cfg.Recommend.Personalized.OutOfStockPenalty)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"CATALOG_URL", "catalog.url"},
		{"SIGNALS_STORE", "signals.store"},
		{"RECOMMEND_SIMILAR_PRICE_FLOOR", "recommend.similar.price_floor"},
		{"RECOMMEND_PERSONALIZED_CART_BOOST", "recommend.personalized.cart_boost"},
		{"recommend_profile_view_cap", "recommend.profile.view_cap"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Run("env path wins", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.yaml")
		if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv(ConfigPathEnvVar, path)
		if got := findConfigFile(); got != path {
			t.Errorf("findConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("missing env path falls back", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		t.Chdir(t.TempDir())
		if got := findConfigFile(); got != "" && got != "/etc/shoprec/config.yaml" && got != "/etc/shoprec/config.yml" {
			t.Errorf("findConfigFile() = %q, want no local file", got)
		}
	})
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolate(t)
	t.Setenv("CATALOG_URL", "http://shop.local:5000")
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CATALOG_CACHE_TTL", "45s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RECOMMEND_SIMILAR_K", "5")
	t.Setenv("RECOMMEND_PERSONALIZED_CART_BOOST", "-0.75")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Catalog.URL != "http://shop.local:5000" {
		t.Errorf("Catalog.URL = %q", cfg.Catalog.URL)
	}
	if cfg.Catalog.CacheTTL != 45*time.Second {
		t.Errorf("Catalog.CacheTTL = %v, want 45s", cfg.Catalog.CacheTTL)
	}
	wantOrigins := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, wantOrigins) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}
	if cfg.Recommend.Similar.DefaultK != 5 {
		t.Errorf("Similar.DefaultK = %d, want 5", cfg.Recommend.Similar.DefaultK)
	}
	if cfg.Recommend.Personalized.CartBoost != -0.75 {
		t.Errorf("Personalized.CartBoost = %v, want -0.75", cfg.Recommend.Personalized.CartBoost)
	}
	// Untouched values keep their defaults.
	if cfg.Recommend.Personalized.ContentWeight != 0.85 {
		t.Errorf("Personalized.ContentWeight = %v, want 0.85", cfg.Recommend.Personalized.ContentWeight)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 7000
catalog:
  seed_file: /srv/products.json
  default_category: Misc
signals:
  store: badger
  path: /srv/signals
recommend:
  similar:
    price_floor: 150
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Catalog.SeedFile != "/srv/products.json" || cfg.Catalog.DefaultCategory != "Misc" {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if cfg.Signals.Store != "badger" || cfg.Signals.Path != "/srv/signals" {
		t.Errorf("Signals = %+v", cfg.Signals)
	}
	if cfg.Recommend.Similar.PriceFloor != 150 {
		t.Errorf("Similar.PriceFloor = %v, want 150", cfg.Recommend.Similar.PriceFloor)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: 7000\ncatalog:\n  seed_file: /srv/products.json\nlogging:\n  level: warn\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7001")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want 7001 from env", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn from file", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"no catalog source", map[string]string{}},
		{"bad port", map[string]string{"CATALOG_SEED_FILE": "/x.json", "HTTP_PORT": "70000"}},
		{"bad store", map[string]string{"CATALOG_SEED_FILE": "/x.json", "SIGNALS_STORE": "redis"}},
		{"bad log level", map[string]string{"CATALOG_SEED_FILE": "/x.json", "LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadWithKoanf(); err == nil {
				t.Error("LoadWithKoanf() error = nil, want validation error")
			}
		})
	}
}
