package filter

import (
	"errors"
	"testing"

	"github.com/cozyhaus/furnish/internal/domain"
	"github.com/cozyhaus/furnish/internal/domain/product"
)

func mustProduct(t *testing.T, brand, material, color string, price float64, categories ...string) product.Product {
	t.Helper()
	p, err := product.New("p1", "Oak Table", brand, "", price, categories, "", material, color, "")
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNew_InvalidPriceBounds(t *testing.T) {
	cases := []struct {
		name     string
		min, max float64
	}{
		{"negative min", -1, 0},
		{"negative max", 0, -1},
		{"min above max", 500, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New("", "", "", "", tc.min, tc.max)
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestFromMap(t *testing.T) {
	f, err := FromMap(map[string]any{
		"brand":     "IKEA",
		"category":  "chairs",
		"price_min": 100,
		"price_max": 500.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.IsEmpty() {
		t.Error("expected non-empty filters")
	}
}

func TestFromMap_UnknownKey(t *testing.T) {
	_, err := FromMap(map[string]any{"vibe": "cozy"})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for unknown key, got %v", err)
	}
}

func TestFromMap_WrongType(t *testing.T) {
	_, err := FromMap(map[string]any{"brand": 42})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for non-string brand, got %v", err)
	}

	_, err = FromMap(map[string]any{"price_max": "cheap"})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for non-numeric price, got %v", err)
	}
}

func TestMatches(t *testing.T) {
	p := mustProduct(t, "IKEA", "oak", "natural", 250, "chairs", "office")

	cases := []struct {
		name    string
		filters map[string]any
		want    bool
	}{
		{"empty matches", map[string]any{}, true},
		{"brand case-insensitive", map[string]any{"brand": "ikea"}, true},
		{"brand mismatch", map[string]any{"brand": "West Elm"}, false},
		{"category membership", map[string]any{"category": "Office"}, true},
		{"category missing", map[string]any{"category": "sofas"}, false},
		{"material match", map[string]any{"material": "OAK"}, true},
		{"color mismatch", map[string]any{"color": "black"}, false},
		{"price in range", map[string]any{"price_min": 200, "price_max": 300}, true},
		{"price below min", map[string]any{"price_min": 300}, false},
		{"price above max", map[string]any{"price_max": 200}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := FromMap(tc.filters)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := f.Matches(&p); got != tc.want {
				t.Errorf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCacheKey_Canonical(t *testing.T) {
	a, err := New("IKEA", "chairs", "", "", 0, 500)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New("ikea", "Chairs", "", "", 0, 500)
	if err != nil {
		t.Fatal(err)
	}

	if a.CacheKey() != b.CacheKey() {
		t.Errorf("equal filters produced different keys: %q vs %q", a.CacheKey(), b.CacheKey())
	}
	if a.CacheKey() != "brand=ikea&category=chairs&price_max=500" {
		t.Errorf("unexpected key: %q", a.CacheKey())
	}
}

func TestCacheKey_Empty(t *testing.T) {
	var f Filters
	if f.CacheKey() != "" {
		t.Errorf("expected empty key, got %q", f.CacheKey())
	}
}
