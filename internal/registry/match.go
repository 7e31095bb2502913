package registry

import (
	"github.com/kozaktomas/facegate/internal/embedding"
)

// FindMatch scans the known embeddings for the best cosine match to query.
// It returns the index of the maximum similarity, with ties broken by first
// occurrence, and true only when that similarity strictly exceeds
// 1 - threshold. An empty known set is "no match" without any computation.
//
// Pure and stateless. Callers are responsible for filtering out vectors of
// the wrong dimensionality before calling.
func FindMatch(known [][]float32, query []float32, threshold float64) (int, bool) {
	if len(known) == 0 {
		return 0, false
	}

	bestIdx := 0
	bestSim := embedding.CosineSimilarity(known[0], query)
	for i := 1; i < len(known); i++ {
		// Strict > keeps the first occurrence on ties.
		if sim := embedding.CosineSimilarity(known[i], query); sim > bestSim {
			bestIdx = i
			bestSim = sim
		}
	}

	if bestSim > 1-threshold {
		return bestIdx, true
	}
	return 0, false
}
