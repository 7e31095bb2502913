package registry

import (
	"github.com/coder/hnsw"
	"github.com/kozaktomas/facegate/internal/constants"
	"github.com/kozaktomas/facegate/internal/embedding"
)

// EnableIndex builds an HNSW graph over the entries so Match can avoid a full
// linear scan on large registries. Candidates pulled from the graph are always
// re-scored with exact cosine similarity, so Match keeps the exact semantics
// of FindMatch.
func (ks *KnownSet) EnableIndex() {
	if len(ks.entries) == 0 {
		return
	}

	g := hnsw.NewGraph[int]()
	g.M = constants.HNSWMaxNeighbors
	g.Ml = 1.0 / float64(constants.HNSWMaxNeighbors) // Standard HNSW formula
	g.Distance = hnsw.CosineDistance

	for i := range ks.entries {
		g.Add(hnsw.MakeNode(i, ks.entries[i].Vector))
	}

	ks.graph = g
}

// HasIndex returns true if an HNSW index has been built for this set.
func (ks *KnownSet) HasIndex() bool {
	return ks.graph != nil
}

// Match finds the best match for query in the set, consulting the HNSW index
// when one is built and falling back to the linear scan otherwise.
func (ks *KnownSet) Match(query []float32, threshold float64) (int, bool) {
	if len(ks.entries) == 0 {
		return 0, false
	}
	if ks.graph == nil {
		return FindMatch(ks.Vectors(), query, threshold)
	}

	k := constants.IndexSearchCandidates
	if k > len(ks.entries) {
		k = len(ks.entries)
	}
	neighbors := ks.graph.Search(query, k)
	if len(neighbors) == 0 {
		return 0, false
	}

	// Exact re-score of the candidates. Equal similarities resolve to the
	// earliest index, matching the linear scan's tie-break.
	bestIdx := -1
	bestSim := 0.0
	for _, n := range neighbors {
		sim := embedding.CosineSimilarity(ks.entries[n.Key].Vector, query)
		if bestIdx == -1 || sim > bestSim || (sim == bestSim && n.Key < bestIdx) {
			bestIdx = n.Key
			bestSim = sim
		}
	}

	if bestSim > 1-threshold {
		return bestIdx, true
	}
	return 0, false
}
