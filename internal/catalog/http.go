// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/shoprec/internal/metrics"
	"github.com/tomtom215/shoprec/internal/recommend"
)

// ProductsPath is the storefront endpoint listing every product.
const ProductsPath = "/api/products?all=true"

// BreakerName labels the catalog circuit breaker in metrics.
const BreakerName = "catalog-api"

// maxPayloadBytes bounds a products response body.
const maxPayloadBytes = 64 << 20

// ErrUpstream marks failures of the products API.
var ErrUpstream = errors.New("catalog upstream error")

// HTTPConfig configures an HTTPSource.
type HTTPConfig struct {
	// BaseURL is the storefront origin, e.g. "https://shop.example.com".
	BaseURL string

	// Timeout bounds a single fetch.
	Timeout time.Duration

	// DefaultCategory replaces empty categories.
	DefaultCategory string

	// MaxItems truncates oversized catalogs; 0 disables the cap.
	MaxItems int

	// RateLimit is the sustained fetches per second; 0 disables throttling.
	RateLimit float64
	RateBurst int

	// BreakerFailures consecutive failures open the circuit for BreakerTimeout.
	BreakerFailures uint32
	BreakerTimeout  time.Duration

	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

// HTTPSource fetches the catalog from the storefront products API.
type HTTPSource struct {
	endpoint        string
	client          *http.Client
	limiter         *rate.Limiter
	breaker         *gobreaker.CircuitBreaker[[]RawProduct]
	defaultCategory string
	maxItems        int
	logger          zerolog.Logger
}

// NewHTTPSource validates cfg and builds a source.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewHTTPSource(cfg HTTPConfig, logger zerolog.Logger) (*HTTPSource, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid catalog url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("catalog url must be http or https, got %q", cfg.BaseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("catalog url has no host: %q", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	logger = logger.With().Str("component", "catalog").Str("upstream", base.Host).Logger()

	return &HTTPSource{
		endpoint:        base.String() + ProductsPath,
		client:          client,
		limiter:         limiter,
		breaker:         newBreaker(BreakerName, cfg.BreakerFailures, cfg.BreakerTimeout, logger),
		defaultCategory: cfg.DefaultCategory,
		maxItems:        cfg.MaxItems,
		logger:          logger,
	}, nil
}

// Endpoint returns the full products URL.
func (s *HTTPSource) Endpoint() string {
	return s.endpoint
}

// BreakerState reports the circuit breaker state as "closed", "half-open" or "open".
func (s *HTTPSource) BreakerState() string {
	return stateToString(s.breaker.State())
}

// Products fetches and normalizes the full catalog.
func (s *HTTPSource) Products(ctx context.Context) ([]recommend.CatalogItem, error) {
	start := time.Now()

	if err := s.limiter.Wait(ctx); err != nil {
		metrics.RecordCatalogFetch(time.Since(start), 0, 0, "rate_limited", err)
		return nil, fmt.Errorf("catalog fetch throttled: %w", err)
	}

	raws, err := s.breaker.Execute(func() ([]RawProduct, error) {
		return s.fetch(ctx)
	})
	recordBreakerResult(s.breaker, err)
	if err != nil {
		reason := failureReason(err)
		metrics.RecordCatalogFetch(time.Since(start), 0, 0, reason, err)
		s.logger.Warn().Err(err).Str("reason", reason).Msg("catalog fetch failed")
		if isBreakerRejection(err) {
			return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		return nil, err
	}

	items, skipped := NormalizeAll(raws, s.defaultCategory)
	if s.maxItems > 0 && len(items) > s.maxItems {
		s.logger.Warn().
			Int("items", len(items)).
			Int("max_items", s.maxItems).
			Msg("catalog exceeds max items, truncating")
		skipped += len(items) - s.maxItems
		items = items[:s.maxItems]
	}

	metrics.RecordCatalogFetch(time.Since(start), len(items), skipped, "", nil)
	s.logger.Debug().
		Int("items", len(items)).
		Int("skipped", skipped).
		Dur("duration", time.Since(start)).
		Msg("catalog fetched")

	return items, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

func (s *HTTPSource) fetch(ctx context.Context) ([]RawProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %w", ErrUpstream, &statusError{code: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUpstream, err)
	}

	raws, err := decodeProducts(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, &decodeError{err: err})
	}
	return raws, nil
}

func failureReason(err error) string {
	var se *statusError
	var de *decodeError
	switch {
	case isBreakerRejection(err):
		return "breaker_open"
	case errors.As(err, &se):
		return "status"
	case errors.As(err, &de):
		return "decode"
	default:
		return "transport"
	}
}
