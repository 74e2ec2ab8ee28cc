package rag

import "math"

// CosineSimilarity returns the cosine of the angle between a and b,
// or 0 when either vector is empty, mismatched, or zero-length.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA <= 0 || normB <= 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// maximalMarginalRelevance selects up to k candidate indices, iteratively
// taking the candidate that maximizes
//
//	diversity*relevance(candidate) - (1-diversity)*maxSim(candidate, selected)
//
// so that results stay relevant to the query without piling up
// near-duplicates of each other. Candidates are scanned in order, so ties
// resolve deterministically to the earlier index.
func maximalMarginalRelevance(query []float32, candidates [][]float32, k int, diversity float64) []int {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}
	if diversity < 0 {
		diversity = 0
	}
	if diversity > 1 {
		diversity = 1
	}
	if k > len(candidates) {
		k = len(candidates)
	}

	relevance := make([]float64, len(candidates))
	for i := range candidates {
		relevance[i] = CosineSimilarity(query, candidates[i])
	}

	selected := make([]int, 0, k)
	picked := make([]bool, len(candidates))
	for len(selected) < k {
		best := -1
		bestScore := math.Inf(-1)
		for i := range candidates {
			if picked[i] {
				continue
			}
			var maxSim float64
			for j, s := range selected {
				sim := CosineSimilarity(candidates[i], candidates[s])
				if j == 0 || sim > maxSim {
					maxSim = sim
				}
			}
			score := diversity*relevance[i] - (1-diversity)*maxSim
			if score > bestScore {
				best = i
				bestScore = score
			}
		}
		if best < 0 {
			break
		}
		picked[best] = true
		selected = append(selected, best)
	}
	return selected
}
