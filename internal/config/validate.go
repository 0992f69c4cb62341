// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

// Validate returns the first configuration error found.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	if f := strings.ToLower(c.Logging.Format); f != "json" && f != "console" {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateSignals(); err != nil {
		return err
	}
	return c.validateRecommend()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("server.environment must be development, staging or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %v", c.Security.RateLimitWindow)
		}
	}
	if c.Security.MaxBodyBytes <= 0 {
		return fmt.Errorf("security.max_body_bytes must be positive, got %d", c.Security.MaxBodyBytes)
	}
	if c.IsProduction() {
		for _, o := range c.Security.CORSOrigins {
			if o == "*" {
				return errors.New("security.cors_origins must not contain * in production")
			}
		}
	}
	return nil
}

func (c *Config) validateCatalog() error {
	cat := c.Catalog
	if cat.URL == "" && cat.SeedFile == "" {
		return errors.New("catalog.url or catalog.seed_file is required")
	}
	if cat.URL != "" {
		u, err := url.Parse(cat.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("catalog.url must be an absolute http(s) URL, got %q", cat.URL)
		}
	}
	if cat.Timeout <= 0 {
		return fmt.Errorf("catalog.timeout must be positive, got %v", cat.Timeout)
	}
	if cat.CacheTTL < 0 || cat.RefreshInterval < 0 {
		return errors.New("catalog.cache_ttl and catalog.refresh_interval must not be negative")
	}
	if cat.MaxItems <= 0 {
		return fmt.Errorf("catalog.max_items must be positive, got %d", cat.MaxItems)
	}
	if cat.RateLimit <= 0 || cat.RateBurst <= 0 {
		return errors.New("catalog.rate_limit and catalog.rate_burst must be positive")
	}
	if cat.BreakerFailures == 0 {
		return errors.New("catalog.breaker_failures must be positive")
	}
	return nil
}

func (c *Config) validateSignals() error {
	switch c.Signals.Store {
	case "memory":
	case "badger":
		if c.Signals.Path == "" {
			return errors.New("signals.path is required when signals.store is badger")
		}
	default:
		return fmt.Errorf("signals.store must be memory or badger, got %q", c.Signals.Store)
	}
	if c.Signals.SessionTTL < 0 {
		return fmt.Errorf("signals.session_ttl must not be negative, got %v", c.Signals.SessionTTL)
	}
	return nil
}

// validateRecommend checks list sizes only; weights are checked by
// recommend.Config.Validate when the engine is built.
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MaxK <= 0 {
		return fmt.Errorf("recommend.max_k must be positive, got %d", r.MaxK)
	}
	if r.Similar.DefaultK > r.MaxK {
		return fmt.Errorf("recommend.similar.default_k (%d) exceeds recommend.max_k (%d)", r.Similar.DefaultK, r.MaxK)
	}
	if r.Personalized.DefaultK > r.MaxK {
		return fmt.Errorf("recommend.personalized.default_k (%d) exceeds recommend.max_k (%d)", r.Personalized.DefaultK, r.MaxK)
	}
	return nil
}
