// Package filter defines attribute filters applied to retrieval candidates.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cozyhaus/furnish/internal/domain"
	"github.com/cozyhaus/furnish/internal/domain/product"
)

// Filters narrows candidates by exact attribute match and price range.
// The zero value matches everything.
type Filters struct {
	brand    string
	category string
	material string
	color    string
	priceMin float64
	priceMax float64
}

// New creates a validated filter set. Zero price bounds mean "unbounded".
func New(brand, category, material, color string, priceMin, priceMax float64) (Filters, error) {
	if priceMin < 0 {
		return Filters{}, domain.NewInvalidRequest("price_min", "must not be negative")
	}
	if priceMax < 0 {
		return Filters{}, domain.NewInvalidRequest("price_max", "must not be negative")
	}
	if priceMax > 0 && priceMin > priceMax {
		return Filters{}, domain.NewInvalidRequest("price_min", "must not exceed price_max")
	}
	return Filters{
		brand:    strings.ToLower(strings.TrimSpace(brand)),
		category: strings.ToLower(strings.TrimSpace(category)),
		material: strings.ToLower(strings.TrimSpace(material)),
		color:    strings.ToLower(strings.TrimSpace(color)),
		priceMin: priceMin,
		priceMax: priceMax,
	}, nil
}

// FromMap builds Filters from a loose request map. Unknown keys are rejected
// so that client typos fail loudly instead of silently matching everything.
func FromMap(m map[string]any) (Filters, error) {
	var brand, category, material, color string
	var priceMin, priceMax float64

	for key, raw := range m {
		switch key {
		case "brand", "category", "material", "color":
			s, ok := raw.(string)
			if !ok {
				return Filters{}, domain.NewInvalidRequest(key, "must be a string")
			}
			switch key {
			case "brand":
				brand = s
			case "category":
				category = s
			case "material":
				material = s
			case "color":
				color = s
			}
		case "price_min", "price_max":
			f, ok := toFloat(raw)
			if !ok {
				return Filters{}, domain.NewInvalidRequest(key, "must be a number")
			}
			if key == "price_min" {
				priceMin = f
			} else {
				priceMax = f
			}
		default:
			return Filters{}, domain.NewInvalidRequest(key, "unknown filter field")
		}
	}

	return New(brand, category, material, color, priceMin, priceMax)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// IsEmpty reports whether the filter set matches everything.
func (f Filters) IsEmpty() bool {
	return f.brand == "" && f.category == "" && f.material == "" &&
		f.color == "" && f.priceMin == 0 && f.priceMax == 0
}

// Matches reports whether a product passes all filter conditions.
func (f Filters) Matches(p *product.Product) bool {
	if f.brand != "" && !strings.EqualFold(p.Brand(), f.brand) {
		return false
	}
	if f.material != "" && !strings.EqualFold(p.Material(), f.material) {
		return false
	}
	if f.color != "" && !strings.EqualFold(p.Color(), f.color) {
		return false
	}
	if f.category != "" && !hasCategory(p, f.category) {
		return false
	}
	if f.priceMin > 0 && p.Price() < f.priceMin {
		return false
	}
	if f.priceMax > 0 && p.Price() > f.priceMax {
		return false
	}
	return true
}

func hasCategory(p *product.Product, category string) bool {
	for _, c := range p.Categories() {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// CacheKey returns a canonical string representation. Field order is fixed
// so that equal filters always produce the same key.
func (f Filters) CacheKey() string {
	if f.IsEmpty() {
		return ""
	}
	parts := make([]string, 0, 6)
	if f.brand != "" {
		parts = append(parts, "brand="+f.brand)
	}
	if f.category != "" {
		parts = append(parts, "category="+f.category)
	}
	if f.color != "" {
		parts = append(parts, "color="+f.color)
	}
	if f.material != "" {
		parts = append(parts, "material="+f.material)
	}
	if f.priceMin > 0 {
		parts = append(parts, fmt.Sprintf("price_min=%g", f.priceMin))
	}
	if f.priceMax > 0 {
		parts = append(parts, fmt.Sprintf("price_max=%g", f.priceMax))
	}
	sort.Strings(parts)
	return strings.Join(parts, "&")
}
