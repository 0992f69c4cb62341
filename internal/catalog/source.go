// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"go.yaml.in/yaml/v3"

	"github.com/tomtom215/shoprec/internal/recommend"
)

// Source yields the current catalog. Returned slices must be treated as
// read-only by callers.
type Source interface {
	Products(ctx context.Context) ([]recommend.CatalogItem, error)
}

// StaticSource serves a fixed catalog.
type StaticSource struct {
	items []recommend.CatalogItem
}

// NewStaticSource copies items into a new source.
func NewStaticSource(items []recommend.CatalogItem) *StaticSource {
	return &StaticSource{items: append([]recommend.CatalogItem(nil), items...)}
}

// Products returns the fixed catalog.
func (s *StaticSource) Products(ctx context.Context) ([]recommend.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.items, nil
}

// LoadSeedFile reads a JSON or YAML product file. The file holds either a
// list of products or an object with a "products" list, in the same shape
// the products API serves.
func LoadSeedFile(path, defaultCategory string) ([]recommend.CatalogItem, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse seed file %s: %w", path, err)
		}
	}

	raws, err := decodeProducts(data)
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	items, _ := NormalizeAll(raws, defaultCategory)
	if len(items) == 0 {
		return nil, fmt.Errorf("seed file %s contains no usable products", path)
	}
	return items, nil
}

// yamlToJSON re-encodes a YAML document so the JSON field tags apply.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// FallbackSource serves from Primary and falls back to Secondary when the
// primary fails.
type FallbackSource struct {
	Primary   Source
	Secondary Source
	Logger    zerolog.Logger
}

// Products tries the primary source first.
func (f *FallbackSource) Products(ctx context.Context) ([]recommend.CatalogItem, error) {
	items, err := f.Primary.Products(ctx)
	if err == nil {
		return items, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	f.Logger.Warn().Err(err).Msg("primary catalog source failed, using fallback")
	fallback, ferr := f.Secondary.Products(ctx)
	if ferr != nil {
		return nil, errors.Join(err, ferr)
	}
	return fallback, nil
}
