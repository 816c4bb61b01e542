package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cozyhaus/furnish/internal/domain/product"
	"github.com/cozyhaus/furnish/internal/logger"
)

// Mode reports where the current snapshot came from.
type Mode string

const (
	// ModeLive means the snapshot was loaded from the configured CSV.
	ModeLive Mode = "live"
	// ModeFallback means the built-in demo catalog is being served.
	ModeFallback Mode = "fallback"
)

// Store holds the current product snapshot behind a read lock. Load and
// Refresh swap the whole slice atomically; readers get a shared view that
// is never mutated after publication.
type Store struct {
	csvPath string

	mu       sync.RWMutex
	products []product.Product
	mode     Mode
	skipped  int
	loadedAt time.Time
}

// NewStore creates an empty store reading snapshots from csvPath.
// An empty csvPath pins the store to fallback mode.
func NewStore(csvPath string) *Store {
	return &Store{csvPath: csvPath}
}

// Load reads the CSV snapshot, falling back to the demo catalog when the
// file is missing or unreadable. It never fails: a recommendation service
// with no data still answers from the demo set.
func (s *Store) Load(ctx context.Context) {
	log := logger.FromContext(ctx)

	if s.csvPath != "" {
		products, skipped, err := LoadCSV(s.csvPath)
		if err == nil && len(products) > 0 {
			s.publish(products, ModeLive, skipped)
			log.Info("catalog loaded",
				zap.String("path", s.csvPath),
				zap.Int("products", len(products)),
				zap.Int("skipped_rows", skipped))
			return
		}
		if err != nil {
			log.Warn("catalog csv unavailable, serving demo products",
				zap.String("path", s.csvPath),
				zap.Error(err))
		} else {
			log.Warn("catalog csv produced no valid products, serving demo products",
				zap.String("path", s.csvPath))
		}
	}

	demo := demoProducts()
	s.publish(demo, ModeFallback, 0)
	log.Info("demo catalog loaded", zap.Int("products", len(demo)))
}

func (s *Store) publish(products []product.Product, mode Mode, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.mode = mode
	s.skipped = skipped
	s.loadedAt = time.Now()
}

// Products returns the current snapshot. Callers must not mutate it.
func (s *Store) Products() []product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Mode reports the current snapshot source.
func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// IsFallback reports whether the demo catalog is being served.
func (s *Store) IsFallback() bool {
	return s.Mode() == ModeFallback
}

// Len returns the number of products in the current snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// SkippedRows reports how many CSV rows the last load rejected.
func (s *Store) SkippedRows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skipped
}

// LoadedAt reports when the current snapshot was published.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Ready reports whether a snapshot has been published.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products) > 0
}
