// Package catalog loads and holds the product snapshot the retrieval
// channels are built from.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cozyhaus/furnish/internal/domain/product"
)

// csvColumns maps header names to column indexes. Missing optional
// columns stay at -1.
type csvColumns struct {
	uniqID      int
	title       int
	brand       int
	description int
	price       int
	categories  int
	imageURL    int
	material    int
	color       int
	dimensions  int
}

func resolveColumns(header []string) (csvColumns, error) {
	cols := csvColumns{
		uniqID: -1, title: -1, brand: -1, description: -1, price: -1,
		categories: -1, imageURL: -1, material: -1, color: -1, dimensions: -1,
	}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "uniq_id", "id":
			cols.uniqID = i
		case "title", "name":
			cols.title = i
		case "brand":
			cols.brand = i
		case "description":
			cols.description = i
		case "price":
			cols.price = i
		case "categories", "category":
			cols.categories = i
		case "image_url", "image":
			cols.imageURL = i
		case "material":
			cols.material = i
		case "color", "colour":
			cols.color = i
		case "dimensions":
			cols.dimensions = i
		}
	}
	if cols.title < 0 {
		return cols, fmt.Errorf("csv header has no title column")
	}
	if cols.price < 0 {
		return cols, fmt.Errorf("csv header has no price column")
	}
	return cols, nil
}

// LoadCSV reads a product snapshot from a CSV file. Rows missing a title
// or carrying an unparseable or non-positive price are skipped rather
// than failing the whole load; the skipped count is reported alongside
// the products.
func LoadCSV(path string) (products []product.Product, skipped int, err error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, 0, fmt.Errorf("open catalog csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows in the wild are ragged

	header, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, 0, err
	}

	row := 0
	for {
		record, readErr := r.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, 0, fmt.Errorf("read csv row %d: %w", row+2, readErr)
		}
		row++

		p, ok := parseRow(record, cols, row)
		if !ok {
			skipped++
			continue
		}
		products = append(products, p)
	}

	return products, skipped, nil
}

func parseRow(record []string, cols csvColumns, row int) (product.Product, bool) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	title := field(cols.title)
	if title == "" {
		return product.Product{}, false
	}

	price, err := parsePrice(field(cols.price))
	if err != nil || price <= 0 {
		return product.Product{}, false
	}

	id := field(cols.uniqID)
	if id == "" {
		id = fmt.Sprintf("prod_%06d", row)
	}

	p, err := product.New(
		id,
		title,
		field(cols.brand),
		field(cols.description),
		price,
		splitCategories(field(cols.categories)),
		normalizeImageURL(field(cols.imageURL)),
		field(cols.material),
		field(cols.color),
		field(cols.dimensions),
	)
	if err != nil {
		return product.Product{}, false
	}
	return p, true
}

// parsePrice accepts plain floats plus currency-formatted strings
// ("$1,299.00").
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}
	return strconv.ParseFloat(s, 64)
}

// splitCategories breaks a raw categories cell into individual labels.
// Source data uses "|", ">" or "," as separators, sometimes mixed.
func splitCategories(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '|' || r == '>' || r == ','
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeImageURL handles the three shapes seen in source data: a bare
// URL, a stringified list like ['url1', 'url2'] (first entry wins), and
// garbage (dropped).
func normalizeImageURL(raw string) string {
	if strings.HasPrefix(raw, "['") && strings.HasSuffix(raw, "']") {
		inner := strings.TrimSuffix(strings.TrimPrefix(raw, "['"), "']")
		if i := strings.Index(inner, "'"); i >= 0 {
			inner = inner[:i]
		}
		raw = strings.TrimSpace(inner)
	}
	if !strings.HasPrefix(raw, "http") {
		return ""
	}
	return raw
}
