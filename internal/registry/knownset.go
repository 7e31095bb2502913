package registry

import (
	"fmt"

	"github.com/coder/hnsw"
)

// KnownSet is an immutable snapshot of all registered identities and their
// embeddings. It is rebuilt wholesale from a full fetch; there is no
// incremental update. Names are not guaranteed unique, matching operates on
// embeddings only.
type KnownSet struct {
	entries []Entry
	dim     int
	graph   *hnsw.Graph[int]
}

// BuildKnownSet builds a KnownSet from fetched records. Records whose encoding
// does not parse into exactly dim components are dropped and reported as
// warnings; they never abort the build.
func BuildKnownSet(records []Record, dim int) (*KnownSet, []*EncodingParseError) {
	ks := &KnownSet{dim: dim}
	var warnings []*EncodingParseError

	for _, rec := range records {
		vec, err := ParseEncoding(rec.Encoding, dim)
		if err != nil {
			warnings = append(warnings, &EncodingParseError{
				Name:   rec.Name,
				Reason: err.Error(),
			})
			continue
		}
		ks.entries = append(ks.entries, Entry{
			Name:   rec.Name,
			Vector: vec,
			Record: rec,
		})
	}

	return ks, warnings
}

// Len returns the number of admitted entries.
func (ks *KnownSet) Len() int {
	return len(ks.entries)
}

// Dim returns the embedding dimension of the set.
func (ks *KnownSet) Dim() int {
	return ks.dim
}

// Entry returns the entry at index i.
func (ks *KnownSet) Entry(i int) Entry {
	return ks.entries[i]
}

// Entries returns all entries in registration order.
func (ks *KnownSet) Entries() []Entry {
	return ks.entries
}

// Vectors returns the embeddings of all entries in registration order.
func (ks *KnownSet) Vectors() [][]float32 {
	vectors := make([][]float32, len(ks.entries))
	for i := range ks.entries {
		vectors[i] = ks.entries[i].Vector
	}
	return vectors
}

// Records returns the underlying records of all entries.
func (ks *KnownSet) Records() []Record {
	records := make([]Record, len(ks.entries))
	for i := range ks.entries {
		records[i] = ks.entries[i].Record
	}
	return records
}

// String implements fmt.Stringer for log lines.
func (ks *KnownSet) String() string {
	return fmt.Sprintf("KnownSet(%d entries, dim %d)", len(ks.entries), ks.dim)
}
