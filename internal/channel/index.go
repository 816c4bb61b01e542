package channel

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/cozyhaus/furnish/internal/domain"
	"github.com/cozyhaus/furnish/internal/domain/product"
	"github.com/cozyhaus/furnish/internal/ranking"
)

// Index is a flat cosine-similarity index over a catalog snapshot.
// Vectors are L2-normalized at build time so search is a dot product.
// Build replaces the whole item set atomically; Search takes a read lock.
type Index struct {
	mu    sync.RWMutex
	items []indexItem
}

type indexItem struct {
	product product.Product
	vector  []float32
}

// NewIndex creates an empty index. It serves no results until Build runs.
func NewIndex() *Index {
	return &Index{}
}

// Build embeds every product and swaps in the new item set. Embedding
// runs on a bounded worker pool; the first embedding failure aborts the
// build and leaves the previous item set in place.
func (ix *Index) Build(ctx context.Context, products []product.Product, embedder domain.Embedder, workers int) error {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("create embedding pool: %w", err)
	}
	defer pool.Release()

	items := make([]indexItem, len(products))
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		buildErr error
	)
	fail := func(err error) {
		errOnce.Do(func() { buildErr = err })
	}

	for i := range products {
		i := i
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			res, embedErr := embedder.Embed(ctx, products[i].EmbedText())
			if embedErr != nil {
				fail(fmt.Errorf("embed product %s: %w", products[i].ID(), embedErr))
				return
			}
			items[i] = indexItem{
				product: products[i],
				vector:  normalize(res.Embedding),
			}
		})
		if submitErr != nil {
			wg.Done()
			fail(fmt.Errorf("submit embedding task: %w", submitErr))
			break
		}
	}
	wg.Wait()

	if buildErr != nil {
		return buildErr
	}

	ix.mu.Lock()
	ix.items = items
	ix.mu.Unlock()
	return nil
}

// Search returns the topN nearest items to the query vector by cosine
// similarity. The returned candidates carry their index vectors so
// downstream reranking can reuse them.
func (ix *Index) Search(query []float32, topN int) []ranking.Candidate {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if topN <= 0 || len(ix.items) == 0 || len(query) == 0 {
		return nil
	}

	q := normalize(query)

	type hit struct {
		idx   int
		score float32
	}
	hits := make([]hit, 0, len(ix.items))
	for i := range ix.items {
		if len(ix.items[i].vector) != len(q) {
			continue
		}
		hits = append(hits, hit{idx: i, score: dot(ix.items[i].vector, q)})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		// Stable order for equal scores: catalog position.
		return hits[i].idx < hits[j].idx
	})

	if len(hits) > topN {
		hits = hits[:topN]
	}

	out := make([]ranking.Candidate, len(hits))
	for i, h := range hits {
		out[i] = ranking.Candidate{
			Product: ix.items[h.idx].product,
			Vector:  ix.items[h.idx].vector,
		}
	}
	return out
}

// Ready reports whether the index holds any items.
func (ix *Index) Ready() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.items) > 0
}

// Len returns the number of indexed items.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.items)
}

func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := float32(math.Sqrt(sum))
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
