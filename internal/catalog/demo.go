package catalog

import "github.com/cozyhaus/furnish/internal/domain/product"

// demoProducts returns the built-in catalog used when no CSV snapshot is
// available. It covers several categories so fusion and diversification
// stay exercisable in fallback mode.
func demoProducts() []product.Product {
	specs := []struct {
		id, title, brand, description string
		price                         float64
		categories                    []string
		material, color               string
	}{
		{"demo-1", "Modern Office Chair", "ErgoSeat", "Comfortable ergonomic office chair with lumbar support", 299.99, []string{"office furniture", "chairs"}, "mesh", "black"},
		{"demo-2", "Wooden Dining Table", "OakCraft", "Solid oak dining table seating six", 899.99, []string{"dining furniture", "tables"}, "oak", "natural"},
		{"demo-3", "Velvet Accent Armchair", "NordicHaus", "Mid-century armchair with tapered legs", 449.00, []string{"living room", "chairs"}, "velvet", "emerald"},
		{"demo-4", "Industrial Bookshelf", "SteelFrame", "Five-tier open bookshelf with metal frame", 219.50, []string{"storage", "shelving"}, "steel", "black"},
		{"demo-5", "Linen Three-Seat Sofa", "NordicHaus", "Deep-seat sofa with washable linen covers", 1299.00, []string{"living room", "sofas"}, "linen", "grey"},
		{"demo-6", "Glass Coffee Table", "Clarita", "Tempered glass top with walnut base", 349.00, []string{"living room", "tables"}, "glass", "clear"},
		{"demo-7", "Rattan Pendant Lamp", "Lumina", "Hand-woven rattan shade, warm diffuse light", 129.00, []string{"lighting"}, "rattan", "natural"},
		{"demo-8", "Wool Area Rug 200x300", "TerraWeave", "Hand-tufted wool rug with geometric pattern", 549.00, []string{"rugs", "living room"}, "wool", "ivory"},
	}

	out := make([]product.Product, 0, len(specs))
	for _, s := range specs {
		p, err := product.New(s.id, s.title, s.brand, s.description, s.price,
			s.categories, "https://example.com/"+s.id+".jpg", s.material, s.color, "")
		if err != nil {
			// Static data validated by tests; unreachable at runtime.
			panic(err)
		}
		out = append(out, p)
	}
	return out
}
