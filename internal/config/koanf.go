// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
// The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/shoprec/config.yaml",
	"/etc/shoprec/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults, applied before file and env.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8088,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:   120,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
			MaxBodyBytes:    4 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			Timeout:         10 * time.Second,
			CacheTTL:        2 * time.Minute,
			RefreshInterval: time.Minute,
			DefaultCategory: "General",
			MaxItems:        10000,
			RateLimit:       2,
			RateBurst:       4,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Signals: SignalsConfig{
			Store:      "memory",
			Path:       "/data/signals",
			SessionTTL: 30 * 24 * time.Hour,
		},
		Recommend: RecommendConfig{
			MaxK:           50,
			MaxTokens:      64,
			CategoryRepeat: 2,
			Similar: SimilarWeights{
				DefaultK:             10,
				ContentWeight:        0.75,
				PriceWeight:          0.25,
				PriceFloor:           300,
				UnknownPriceAffinity: 0.1,
			},
			Profile: ProfileWeights{
				RecentLimit:   10,
				Base:          1,
				AddWeight:     1,
				ViewDivisor:   3,
				ViewCap:       2,
				WishlistBonus: 2,
			},
			Personalized: PersonalizedWeights{
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
		},
	}
}

// LoadWithKoanf loads configuration in three layers:
//
//  1. Defaults from defaultConfig
//  2. Optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables
//
// and validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				values = append(values, p)
			}
		}
		if err := k.Set(path, values); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"max_body_bytes":      "security.max_body_bytes",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"catalog_url":              "catalog.url",
	"catalog_seed_file":        "catalog.seed_file",
	"catalog_timeout":          "catalog.timeout",
	"catalog_cache_ttl":        "catalog.cache_ttl",
	"catalog_refresh_interval": "catalog.refresh_interval",
	"catalog_default_category": "catalog.default_category",
	"catalog_max_items":        "catalog.max_items",
	"catalog_rate_limit":       "catalog.rate_limit",
	"catalog_rate_burst":       "catalog.rate_burst",
	"catalog_breaker_failures": "catalog.breaker_failures",
	"catalog_breaker_timeout":  "catalog.breaker_timeout",

	"signals_store":       "signals.store",
	"signals_path":        "signals.path",
	"signals_session_ttl": "signals.session_ttl",

	"recommend_max_k":           "recommend.max_k",
	"recommend_max_tokens":      "recommend.max_tokens",
	"recommend_category_repeat": "recommend.category_repeat",

	"recommend_similar_k":                      "recommend.similar.default_k",
	"recommend_similar_content_weight":         "recommend.similar.content_weight",
	"recommend_similar_price_weight":           "recommend.similar.price_weight",
	"recommend_similar_price_floor":            "recommend.similar.price_floor",
	"recommend_similar_unknown_price_affinity": "recommend.similar.unknown_price_affinity",

	"recommend_profile_recent_limit":   "recommend.profile.recent_limit",
	"recommend_profile_base":           "recommend.profile.base",
	"recommend_profile_add_weight":     "recommend.profile.add_weight",
	"recommend_profile_view_divisor":   "recommend.profile.view_divisor",
	"recommend_profile_view_cap":       "recommend.profile.view_cap",
	"recommend_profile_wishlist_bonus": "recommend.profile.wishlist_bonus",

	"recommend_personalized_k":                   "recommend.personalized.default_k",
	"recommend_personalized_content_weight":      "recommend.personalized.content_weight",
	"recommend_personalized_popularity_weight":   "recommend.personalized.popularity_weight",
	"recommend_personalized_view_popularity":     "recommend.personalized.view_popularity",
	"recommend_personalized_add_popularity":      "recommend.personalized.add_popularity",
	"recommend_personalized_wishlist_popularity": "recommend.personalized.wishlist_popularity",
	"recommend_personalized_recent_boost":        "recommend.personalized.recent_boost",
	"recommend_personalized_cart_boost":          "recommend.personalized.cart_boost",

	"recommend_personalized_out_of_stock_penalty": "recommend.personalized.out_of_stock_penalty",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped names return "" and are skipped.
//
//   - HTTP_PORT -> server.port
//   - CATALOG_URL -> catalog.url
//   - RECOMMEND_SIMILAR_PRICE_FLOOR -> recommend.similar.price_floor
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
