package channel

import (
	"context"

	"github.com/cozyhaus/furnish/internal/domain"
	"github.com/cozyhaus/furnish/internal/domain/product"
)

// Builder binds the shared index to its embedder and worker budget so
// callers can rebuild from a catalog snapshot without carrying either.
type Builder struct {
	index    *Index
	embedder domain.Embedder
	workers  int
}

// NewBuilder creates a Builder. workers <= 0 means one per CPU.
func NewBuilder(index *Index, embedder domain.Embedder, workers int) *Builder {
	return &Builder{index: index, embedder: embedder, workers: workers}
}

// Build rebuilds the index from products.
func (b *Builder) Build(ctx context.Context, products []product.Product) error {
	return b.index.Build(ctx, products, b.embedder, b.workers)
}
