package chi

import (
	"github.com/cozyhaus/furnish/internal/domain/request"
	analyticsuc "github.com/cozyhaus/furnish/internal/usecase/analytics"
	recommenduc "github.com/cozyhaus/furnish/internal/usecase/recommend"
)

type recommendRequest struct {
	Query    string         `json:"query"`
	K        int            `json:"k,omitempty"`
	Page     int            `json:"page,omitempty"`
	Size     int            `json:"size,omitempty"`
	Filters  map[string]any `json:"filters,omitempty"`
	ImageURL string         `json:"image_url,omitempty"`
}

type recommendResponse struct {
	Products     []productResponse `json:"products"`
	TotalFound   int               `json:"total_found"`
	TotalPages   int               `json:"total_pages"`
	Page         int               `json:"page"`
	SearchTimeMs float64           `json:"search_time_ms"`
	Cached       bool              `json:"cached"`
	Reasons      []string          `json:"reasons"`
	Query        string            `json:"query"`
}

type productResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Brand       string   `json:"brand"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Categories  []string `json:"categories,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Material    string   `json:"material,omitempty"`
	Color       string   `json:"color,omitempty"`
	Dimensions  string   `json:"dimensions,omitempty"`
	Score       float64  `json:"score"`
}

type refreshResponse struct {
	Products    int     `json:"products"`
	Mode        string  `json:"mode"`
	SkippedRows int     `json:"skipped_rows"`
	TookMs      float64 `json:"took_ms"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type priceStatsResponse struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

type labelCountResponse struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type summaryResponse struct {
	TotalProducts   int                  `json:"total_products"`
	TotalBrands     int                  `json:"total_brands"`
	TotalCategories int                  `json:"total_categories"`
	PriceStats      priceStatsResponse   `json:"price_stats"`
	TopBrands       []labelCountResponse `json:"top_brands"`
	TopCategories   []labelCountResponse `json:"top_categories"`
	DemoMode        bool                 `json:"demo_mode"`
}

func recommendToResponse(req *request.Request, result recommenduc.Result) recommendResponse {
	products := make([]productResponse, len(result.Items))
	for i, item := range result.Items {
		p := item.Product
		products[i] = productResponse{
			ID:          p.ID(),
			Title:       p.Title(),
			Brand:       p.Brand(),
			Description: p.Description(),
			Price:       p.Price(),
			Categories:  p.Categories(),
			ImageURL:    p.ImageURL(),
			Material:    p.Material(),
			Color:       p.Color(),
			Dimensions:  p.Dimensions(),
			Score:       item.Score,
		}
	}

	return recommendResponse{
		Products:     products,
		TotalFound:   result.TotalFound,
		TotalPages:   result.TotalPages,
		Page:         req.Page(),
		SearchTimeMs: result.Took.Seconds() * 1000,
		Cached:       result.Cached,
		Reasons:      result.Reasons,
		Query:        req.Query(),
	}
}

func summaryToResponse(s analyticsuc.Summary) summaryResponse {
	return summaryResponse{
		TotalProducts:   s.TotalProducts,
		TotalBrands:     s.TotalBrands,
		TotalCategories: s.TotalCategories,
		PriceStats: priceStatsResponse{
			Min:    s.PriceStats.Min,
			Max:    s.PriceStats.Max,
			Mean:   s.PriceStats.Mean,
			Median: s.PriceStats.Median,
		},
		TopBrands:     labelCountsToResponse(s.TopBrands),
		TopCategories: labelCountsToResponse(s.TopCategories),
		DemoMode:      s.DemoMode,
	}
}

func labelCountsToResponse(in []analyticsuc.LabelCount) []labelCountResponse {
	out := make([]labelCountResponse, len(in))
	for i, lc := range in {
		out[i] = labelCountResponse{Label: lc.Label, Count: lc.Count}
	}
	return out
}
