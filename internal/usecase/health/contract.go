package health

import "context"

// Channel exposes retrieval channel readiness.
type Channel interface {
	Name() string
	Ready() bool
}

// CatalogReader reports the catalog snapshot state.
type CatalogReader interface {
	Ready() bool
	IsFallback() bool
}

// EmbeddingChecker verifies embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
