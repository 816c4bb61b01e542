// Package ranking implements the fusion and reranking math of the
// recommendation pipeline: reciprocal rank fusion across retrieval channels,
// maximal marginal relevance diversification, and pagination. All functions
// are pure and deterministic.
package ranking

import (
	"sort"

	"github.com/cozyhaus/furnish/internal/domain/product"
)

// Candidate is a single channel hit: the catalog product plus the optional
// embedding vector the channel matched on.
type Candidate struct {
	Product product.Product
	Vector  []float32
}

// RankedList is one channel's ordered output, best match first.
// Invariant: no duplicate product ids within a single list.
type RankedList struct {
	Channel string
	Items   []Candidate
}

// Scored is a fused candidate with its combined score and the discovery
// position used for deterministic tie-breaking.
type Scored struct {
	Candidate
	Score float64

	channel int // index of the first channel the candidate appeared in
	rank    int // rank within that channel
}

// Fuse merges channel outputs via Reciprocal Rank Fusion.
// Each candidate at 0-indexed rank r contributes 1/(r+1+c); a candidate
// present in several channels accumulates the sum. The result is sorted by
// descending combined score with ties broken by earliest discovery channel,
// then lowest rank in it, so repeated runs are byte-identical. Truncated to k.
func Fuse(channels []RankedList, k int, c float64) []Scored {
	if k <= 0 || len(channels) == 0 {
		return nil
	}

	byID := make(map[string]int) // product id -> index into fused
	fused := make([]Scored, 0)

	for ci, ch := range channels {
		for rank, cand := range ch.Items {
			score := 1.0 / (float64(rank) + 1.0 + c)

			if idx, ok := byID[cand.Product.ID()]; ok {
				fused[idx].Score += score
				// First-seen candidate is kept: it may carry the vector.
				if fused[idx].Vector == nil && cand.Vector != nil {
					fused[idx].Vector = cand.Vector
				}
				continue
			}

			byID[cand.Product.ID()] = len(fused)
			fused = append(fused, Scored{
				Candidate: cand,
				Score:     score,
				channel:   ci,
				rank:      rank,
			})
		}
	}

	sort.Slice(fused, func(i, j int) bool {
		if fused[i].Score != fused[j].Score {
			return fused[i].Score > fused[j].Score
		}
		if fused[i].channel != fused[j].channel {
			return fused[i].channel < fused[j].channel
		}
		return fused[i].rank < fused[j].rank
	})

	if len(fused) > k {
		fused = fused[:k]
	}
	return fused
}
