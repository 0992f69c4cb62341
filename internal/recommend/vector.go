// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"math"
	"sort"
	"strings"
)

// DefaultMaxTokens is the token cap used by Tokenize.
const DefaultMaxTokens = 64

// Tokenize lower-cases text and splits it into at most DefaultMaxTokens
// tokens of ASCII letters and digits. Any other character separates tokens.
func Tokenize(text string) []string {
	return tokenize(text, DefaultMaxTokens)
}

func tokenize(text string, limit int) []string {
	tokens := make([]string, 0, 8)
	if text == "" || limit <= 0 {
		return tokens
	}

	lower := strings.ToLower(text)
	start := -1
	for i := 0; i < len(lower); i++ {
		if isTokenByte(lower[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, lower[start:i])
			start = -1
			if len(tokens) == limit {
				return tokens
			}
		}
	}
	if start >= 0 {
		tokens = append(tokens, lower[start:])
	}
	return tokens
}

// isTokenByte reports whether b is an ASCII lower-case letter or digit.
// Multi-byte UTF-8 sequences never match, so non-ASCII runes separate tokens.
func isTokenByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// Vectorize builds the term vector of item using the default settings.
func Vectorize(item CatalogItem) TermVector {
	return vectorize(item, DefaultConfig().Text)
}

//nolint:gocritic // CatalogItem is small and read-only here
func vectorize(item CatalogItem, cfg TextConfig) TermVector {
	vec := make(TermVector)
	for _, tok := range tokenize(item.Category, cfg.MaxTokens) {
		vec[tok] += cfg.CategoryRepeat
	}
	for _, tok := range tokenize(item.Name, cfg.MaxTokens) {
		vec[tok]++
	}
	for _, tok := range tokenize(item.Description, cfg.MaxTokens) {
		vec[tok]++
	}
	return vec
}

// Cosine returns the cosine similarity of two term vectors in [0,1].
// An empty vector on either side yields 0.
func Cosine(a, b TermVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	var dot float64
	for tok, n := range small {
		if m, ok := large[tok]; ok {
			dot += float64(n) * float64(m)
		}
	}
	return bounded(dot, norm(a), norm(b))
}

// anchorIndex is an anchor vector with its tokens in sorted order and its
// norm computed once. Sums run in token order so equal inputs produce
// bit-identical scores on every call.
type anchorIndex struct {
	toks    []string
	weights []float64
	norm    float64
}

func newAnchorIndex(anchor AnchorVector) *anchorIndex {
	idx := &anchorIndex{toks: make([]string, 0, len(anchor))}
	for tok := range anchor {
		idx.toks = append(idx.toks, tok)
	}
	sort.Strings(idx.toks)

	idx.weights = make([]float64, len(idx.toks))
	var sq float64
	for i, tok := range idx.toks {
		w := anchor[tok]
		idx.weights[i] = w
		sq += w * w
	}
	idx.norm = math.Sqrt(sq)
	return idx
}

// cosine compares the anchor against an item vector.
func (a *anchorIndex) cosine(vec TermVector) float64 {
	if len(a.toks) == 0 || len(vec) == 0 {
		return 0
	}
	var dot float64
	for i, tok := range a.toks {
		if n, ok := vec[tok]; ok {
			dot += a.weights[i] * float64(n)
		}
	}
	return bounded(dot, a.norm, norm(vec))
}

// cosineAnchor compares a weighted anchor against an item vector.
func cosineAnchor(anchor AnchorVector, vec TermVector) float64 {
	return newAnchorIndex(anchor).cosine(vec)
}

func norm(v TermVector) float64 {
	var sq float64
	for _, n := range v {
		sq += float64(n) * float64(n)
	}
	return math.Sqrt(sq)
}

// bounded divides dot by the norms and clamps rounding noise into [0,1].
func bounded(dot, na, nb float64) float64 {
	if na == 0 || nb == 0 {
		return 0
	}
	s := dot / (na * nb)
	switch {
	case s > 1:
		return 1
	case s < 0 || math.IsNaN(s):
		return 0
	default:
		return s
	}
}
