// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package config loads shoprec configuration from defaults, an optional
// YAML file and environment variables, in that order of precedence.
//
// Environment variables keep their flat legacy names (HTTP_PORT,
// CATALOG_URL, RECOMMEND_SIMILAR_CONTENT_WEIGHT, ...) and are mapped onto
// the nested koanf paths by envTransformFunc. Unknown variables are ignored.
package config

import "time"

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Signals   SignalsConfig   `koanf:"signals"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// SecurityConfig holds request limiting and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	// MaxBodyBytes bounds JSON request bodies, which may carry an inline catalog.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CatalogConfig describes where products come from.
//
// Exactly one of URL or SeedFile is normally set. URL points at the
// storefront product API; SeedFile is a JSON file in the same
// {"products": [...]} shape, used for demos and tests.
//
// Environment Variables:
//   - CATALOG_URL: product API base URL
//   - CATALOG_SEED_FILE: path to a JSON product file
//   - CATALOG_TIMEOUT: upstream request timeout (default: 10s)
//   - CATALOG_CACHE_TTL: how long a fetched catalog is reused (default: 2m)
//   - CATALOG_REFRESH_INTERVAL: background warm-up interval (default: 1m, 0 disables)
//   - CATALOG_DEFAULT_CATEGORY: category for products without one (default: General)
//   - CATALOG_RATE_LIMIT: upstream requests per second (default: 2)
//   - CATALOG_BREAKER_FAILURES: consecutive failures that open the breaker (default: 5)
type CatalogConfig struct {
	URL             string        `koanf:"url"`
	SeedFile        string        `koanf:"seed_file"`
	Timeout         time.Duration `koanf:"timeout"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	DefaultCategory string        `koanf:"default_category"`
	MaxItems        int           `koanf:"max_items"`

	RateLimit       float64       `koanf:"rate_limit"`
	RateBurst       int           `koanf:"rate_burst"`
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// SignalsConfig selects the shopper signal store.
//
// Environment Variables:
//   - SIGNALS_STORE: memory or badger (default: memory)
//   - SIGNALS_PATH: BadgerDB directory (required for badger)
//   - SIGNALS_SESSION_TTL: idle lifetime of a session (default: 720h, 0 keeps forever)
type SignalsConfig struct {
	Store      string        `koanf:"store"`
	Path       string        `koanf:"path"`
	SessionTTL time.Duration `koanf:"session_ttl"`
}

// RecommendConfig holds the ranker's tunable constants.
// Field meanings match recommend.Config; cmd/server converts between them.
type RecommendConfig struct {
	// MaxK caps the k a client may request.
	// Default: 50
	MaxK int `koanf:"max_k"`

	MaxTokens      int `koanf:"max_tokens"`
	CategoryRepeat int `koanf:"category_repeat"`

	Similar      SimilarWeights      `koanf:"similar"`
	Profile      ProfileWeights      `koanf:"profile"`
	Personalized PersonalizedWeights `koanf:"personalized"`
}

// SimilarWeights configures "you may also like".
type SimilarWeights struct {
	DefaultK             int     `koanf:"default_k"`
	ContentWeight        float64 `koanf:"content_weight"`
	PriceWeight          float64 `koanf:"price_weight"`
	PriceFloor           float64 `koanf:"price_floor"`
	UnknownPriceAffinity float64 `koanf:"unknown_price_affinity"`
}

// ProfileWeights configures the anchor vector.
type ProfileWeights struct {
	RecentLimit   int     `koanf:"recent_limit"`
	Base          float64 `koanf:"base"`
	AddWeight     float64 `koanf:"add_weight"`
	ViewDivisor   float64 `koanf:"view_divisor"`
	ViewCap       float64 `koanf:"view_cap"`
	WishlistBonus float64 `koanf:"wishlist_bonus"`
}

// PersonalizedWeights configures "recommended for you".
type PersonalizedWeights struct {
	DefaultK           int     `koanf:"default_k"`
	ContentWeight      float64 `koanf:"content_weight"`
	PopularityWeight   float64 `koanf:"popularity_weight"`
	ViewPopularity     float64 `koanf:"view_popularity"`
	AddPopularity      float64 `koanf:"add_popularity"`
	WishlistPopularity float64 `koanf:"wishlist_popularity"`
	RecentBoost        float64 `koanf:"recent_boost"`
	CartBoost          float64 `koanf:"cart_boost"`
	OutOfStockPenalty  float64 `koanf:"out_of_stock_penalty"`
}

// Load is the standard entry point. It is equivalent to LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
