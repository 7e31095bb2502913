// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Matching constants
const (
	// DefaultMatchThreshold is the default cosine-distance cutoff below which
	// two face embeddings are considered the same person
	DefaultMatchThreshold = 0.4

	// DefaultEmbeddingDim is the embedding dimension used when no model is configured
	DefaultEmbeddingDim = 128
)

// Index constants
const (
	// IndexMinEntries is the registry size at which the server switches from
	// a linear scan to the HNSW index
	IndexMinEntries = 256

	// IndexSearchCandidates is the number of nearest neighbors pulled from the
	// HNSW index before exact re-scoring
	IndexSearchCandidates = 10

	// HNSWMaxNeighbors is the M parameter of the HNSW graph
	HNSWMaxNeighbors = 16
)

// Upload constants
const (
	// MaxImageSize is the maximum dimension (width or height) before a photo
	// is downscaled for the embedding server
	MaxImageSize = 1920

	// MaxUploadBytes is the maximum accepted multipart upload size
	MaxUploadBytes = 20 << 20
)
