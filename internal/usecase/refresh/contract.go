package refresh

import (
	"context"

	"github.com/cozyhaus/furnish/internal/catalog"
	"github.com/cozyhaus/furnish/internal/domain/product"
)

// Catalog reloads and exposes the product snapshot.
type Catalog interface {
	Load(ctx context.Context)
	Products() []product.Product
	Mode() catalog.Mode
	SkippedRows() int
}

// Index rebuilds the retrieval index from a catalog snapshot.
type Index interface {
	Build(ctx context.Context, products []product.Product) error
}

// CacheClearer drops memoized recommendation results.
type CacheClearer interface {
	ClearCache()
}
