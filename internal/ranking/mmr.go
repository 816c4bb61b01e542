package ranking

// Diversify reorders the top of a fused list via Maximal Marginal Relevance.
//
// Greedy selection: the highest-relevance candidate seeds the result, then
// each step picks the unselected candidate maximizing
//
//	lambda*relevance - (1-lambda)*maxSimilarityToSelected
//
// where relevance is the fused score normalized by the list maximum. Ties go
// to the lowest original fused rank. lambda=1 degenerates to top-k by fused
// order; lambda=0 is pure diversity. When k >= len(fused) the input is
// returned unchanged — no reordering happens when nothing is trimmed.
func Diversify(fused []Scored, k int, lambda float64, sim Similarity) []Scored {
	if k >= len(fused) {
		return fused
	}
	if k <= 0 {
		return nil
	}
	if lambda < 0 {
		lambda = 0
	} else if lambda > 1 {
		lambda = 1
	}

	maxScore := fused[0].Score
	for _, s := range fused[1:] {
		if s.Score > maxScore {
			maxScore = s.Score
		}
	}
	relevance := func(s *Scored) float64 {
		if maxScore == 0 {
			return 0
		}
		return s.Score / maxScore
	}

	selected := make([]Scored, 0, k)
	taken := make([]bool, len(fused))

	// Seed: highest relevance. The fused list is already score-ordered.
	selected = append(selected, fused[0])
	taken[0] = true

	for len(selected) < k {
		bestIdx := -1
		bestScore := 0.0

		for i := range fused {
			if taken[i] {
				continue
			}

			maxSim := 0.0
			for j := range selected {
				if s := sim(&fused[i].Candidate, &selected[j].Candidate); s > maxSim {
					maxSim = s
				}
			}

			score := lambda*relevance(&fused[i]) - (1-lambda)*maxSim
			// Strict > keeps the lowest fused rank on ties: candidates are
			// visited in fused order.
			if bestIdx == -1 || score > bestScore {
				bestIdx = i
				bestScore = score
			}
		}

		if bestIdx == -1 {
			break
		}
		selected = append(selected, fused[bestIdx])
		taken[bestIdx] = true
	}

	return selected
}
