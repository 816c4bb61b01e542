// Package product defines the catalog item schema shared by all layers.
package product

import (
	"strings"
	"unicode/utf8"

	"github.com/cozyhaus/furnish/internal/domain"
)

// maxDescriptionLen bounds description text stored per product.
const maxDescriptionLen = 1000

// Product is an immutable catalog item. Identity is the unique id,
// not object identity; two values with the same id describe the same item.
type Product struct {
	id          string
	title       string
	brand       string
	description string
	price       float64
	categories  []string
	imageURL    string
	material    string
	color       string
	dimensions  string
}

// New validates and creates a product. Called once at the data-loading
// boundary; ranking code never re-checks field presence.
func New(
	id, title, brand, description string,
	price float64,
	categories []string,
	imageURL, material, color, dimensions string,
) (Product, error) {
	if strings.TrimSpace(id) == "" {
		return Product{}, domain.NewInvalidRequest("id", "must not be empty")
	}
	if strings.TrimSpace(title) == "" {
		return Product{}, domain.NewInvalidRequest("title", "must not be empty")
	}
	if price <= 0 {
		return Product{}, domain.NewInvalidRequest("price", "must be positive")
	}
	if len(description) > maxDescriptionLen {
		// Back up to a rune boundary so the cut never splits a multi-byte
		// character.
		cut := maxDescriptionLen - 3
		for cut > 0 && !utf8.RuneStart(description[cut]) {
			cut--
		}
		description = description[:cut] + "..."
	}
	if brand == "" {
		brand = "Unknown"
	}

	cats := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c != "" {
			cats = append(cats, c)
		}
	}

	return Product{
		id:          strings.TrimSpace(id),
		title:       strings.TrimSpace(title),
		brand:       brand,
		description: description,
		price:       price,
		categories:  cats,
		imageURL:    imageURL,
		material:    material,
		color:       color,
		dimensions:  dimensions,
	}, nil
}

// ID returns the unique product identifier.
func (p *Product) ID() string { return p.id }

// Title returns the product title.
func (p *Product) Title() string { return p.title }

// Brand returns the product brand.
func (p *Product) Brand() string { return p.brand }

// Description returns the product description.
func (p *Product) Description() string { return p.description }

// Price returns the product price.
func (p *Product) Price() float64 { return p.price }

// Categories returns the product category labels.
func (p *Product) Categories() []string { return p.categories }

// ImageURL returns the product image reference.
func (p *Product) ImageURL() string { return p.imageURL }

// Material returns the product material ("" when unknown).
func (p *Product) Material() string { return p.material }

// Color returns the product color ("" when unknown).
func (p *Product) Color() string { return p.color }

// Dimensions returns the product dimensions ("" when unknown).
func (p *Product) Dimensions() string { return p.dimensions }

// EmbedText builds the text representation used for semantic indexing.
func (p *Product) EmbedText() string {
	parts := []string{p.title, p.brand}
	if len(p.categories) > 0 {
		parts = append(parts, strings.Join(p.categories, " "))
	}
	if p.material != "" {
		parts = append(parts, p.material)
	}
	if p.color != "" {
		parts = append(parts, p.color)
	}
	if p.description != "" {
		parts = append(parts, p.description)
	}
	return strings.Join(parts, ". ")
}
