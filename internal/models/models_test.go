// Shoprec - Storefront Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shoprec/internal/recommend"
	"github.com/tomtom215/shoprec/internal/validation"
)

func TestAPIResponse_ErrorShape(t *testing.T) {
	resp := APIResponse{
		Status:   StatusError,
		Metadata: Metadata{Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), RequestID: "req-1"},
		Error:    &APIError{Code: "PRODUCT_NOT_FOUND", Message: "Product not found in catalog"},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got := string(data)
	for _, want := range []string{`"status":"error"`, `"data":null`, `"request_id":"req-1"`, `"code":"PRODUCT_NOT_FOUND"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Marshal() = %s, missing %s", got, want)
		}
	}
	if strings.Contains(got, "query_time_ms") {
		t.Errorf("Marshal() = %s, want query_time_ms omitted when zero", got)
	}
}

func TestNewSessionSignals(t *testing.T) {
	shop := &recommend.ShopContext{
		CartItems: []recommend.CartLine{
			{Key: "a", ProductID: "a", Price: 10, Quantity: 2},
			{Key: "b::red", ProductID: "b", Variant: "red", Price: 2.5, Quantity: 4},
		},
	}

	got := NewSessionSignals("s1", shop)
	if got.CartCount != 6 {
		t.Errorf("CartCount = %d, want 6", got.CartCount)
	}
	if got.CartSubtotal != 30 {
		t.Errorf("CartSubtotal = %v, want 30", got.CartSubtotal)
	}

	empty := NewSessionSignals("s2", nil)
	if empty.CartCount != 0 || empty.Context != nil {
		t.Errorf("NewSessionSignals(nil) = %+v, want zero totals", empty)
	}
}

func TestRequestValidation(t *testing.T) {
	qty := 3
	tests := []struct {
		name    string
		req     interface{}
		wantErr bool
	}{
		{"view ok", &ViewRequest{ProductID: "p1"}, false},
		{"view empty", &ViewRequest{}, true},
		{"cart ok", &CartAddRequest{ProductID: "p1", Quantity: 1, Price: 9.99}, false},
		{"cart negative price", &CartAddRequest{ProductID: "p1", Price: -1}, true},
		{"cart huge quantity", &CartAddRequest{ProductID: "p1", Quantity: 5000}, true},
		{"quantity ok", &CartQuantityRequest{Quantity: &qty}, false},
		{"quantity missing", &CartQuantityRequest{}, true},
		{"similar by id", &SimilarRequest{ProductID: "p1", K: 4}, false},
		{"similar negative k", &SimilarRequest{ProductID: "p1", K: -2}, true},
		{"personalized empty", &PersonalizedRequest{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateStruct(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
