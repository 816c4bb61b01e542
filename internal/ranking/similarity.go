package ranking

import (
	"fmt"
	"math"
	"strings"
)

// Similarity scores how alike two candidates are, in [0,1].
type Similarity func(a, b *Candidate) float64

// SimilarityByName resolves a configured similarity strategy.
// Known strategies: "category" (default) and "cosine".
func SimilarityByName(name string) (Similarity, error) {
	switch name {
	case "", "category":
		return CategoryOverlap, nil
	case "cosine":
		return CosineVector, nil
	default:
		return nil, fmt.Errorf("unknown similarity strategy %q", name)
	}
}

// CategoryOverlap is the Jaccard overlap of the candidates' category sets.
func CategoryOverlap(a, b *Candidate) float64 {
	ac := a.Product.Categories()
	bc := b.Product.Categories()
	if len(ac) == 0 || len(bc) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(ac))
	for _, c := range ac {
		set[strings.ToLower(c)] = struct{}{}
	}

	shared := 0
	union := len(set)
	seen := make(map[string]struct{}, len(bc))
	for _, c := range bc {
		lc := strings.ToLower(c)
		if _, dup := seen[lc]; dup {
			continue
		}
		seen[lc] = struct{}{}
		if _, ok := set[lc]; ok {
			shared++
		} else {
			union++
		}
	}

	return float64(shared) / float64(union)
}

// CosineVector is the cosine similarity of the candidates' embedding vectors,
// clamped to [0,1]. Falls back to category overlap when either vector is missing.
func CosineVector(a, b *Candidate) float64 {
	if len(a.Vector) == 0 || len(b.Vector) == 0 || len(a.Vector) != len(b.Vector) {
		return CategoryOverlap(a, b)
	}

	var dot, na, nb float64
	for i := range a.Vector {
		dot += float64(a.Vector[i]) * float64(b.Vector[i])
		na += float64(a.Vector[i]) * float64(a.Vector[i])
		nb += float64(b.Vector[i]) * float64(b.Vector[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}

	cos := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if cos < 0 {
		return 0
	}
	if cos > 1 {
		return 1
	}
	return cos
}
