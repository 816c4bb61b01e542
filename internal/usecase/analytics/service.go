// Package analytics computes catalog summary statistics from the current
// snapshot.
package analytics

import (
	"sort"

	"github.com/cozyhaus/furnish/internal/domain/product"
)

// Catalog is the snapshot reader the summary is computed from.
type Catalog interface {
	Products() []product.Product
	IsFallback() bool
}

// PriceStats aggregates catalog price distribution.
type PriceStats struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// LabelCount pairs a brand or category label with its product count.
type LabelCount struct {
	Label string
	Count int
}

// Summary is the catalog analytics report.
type Summary struct {
	TotalProducts   int
	TotalBrands     int
	TotalCategories int
	PriceStats      PriceStats
	TopBrands       []LabelCount
	TopCategories   []LabelCount
	DemoMode        bool
}

// topN caps the brand and category leaderboards.
const topN = 10

// Service computes analytics over the catalog snapshot.
type Service struct {
	catalog Catalog
}

// New creates an analytics service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Summarize computes the summary for the current snapshot. An empty
// catalog yields a zero summary, not an error.
func (s *Service) Summarize() Summary {
	products := s.catalog.Products()

	summary := Summary{
		TotalProducts: len(products),
		DemoMode:      s.catalog.IsFallback(),
	}
	if len(products) == 0 {
		return summary
	}

	brands := make(map[string]int)
	categories := make(map[string]int)
	prices := make([]float64, 0, len(products))

	for i := range products {
		p := &products[i]
		brands[p.Brand()]++
		for _, c := range p.Categories() {
			categories[c]++
		}
		prices = append(prices, p.Price())
	}

	summary.TotalBrands = len(brands)
	summary.TotalCategories = len(categories)
	summary.PriceStats = priceStats(prices)
	summary.TopBrands = topCounts(brands, topN)
	summary.TopCategories = topCounts(categories, topN)
	return summary
}

func priceStats(prices []float64) PriceStats {
	sort.Float64s(prices)

	var sum float64
	for _, p := range prices {
		sum += p
	}

	n := len(prices)
	median := prices[n/2]
	if n%2 == 0 {
		median = (prices[n/2-1] + prices[n/2]) / 2
	}

	return PriceStats{
		Min:    prices[0],
		Max:    prices[n-1],
		Mean:   sum / float64(n),
		Median: median,
	}
}

// topCounts returns the n most frequent labels, count descending with
// ties broken alphabetically so output is stable.
func topCounts(counts map[string]int, n int) []LabelCount {
	out := make([]LabelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, LabelCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
