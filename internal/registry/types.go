// Package registry implements the face matching, registration and login
// policies over a snapshot of registered students.
package registry

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one persisted registration row. Records are immutable once
// written; there is no update or delete path.
type Record struct {
	Timestamp string `json:"timestamp"`  // RFC 3339
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Encoding  string `json:"encoding"` // embedding as comma-joined decimal text
}

// Entry is one registered identity admitted into a KnownSet.
type Entry struct {
	Name   string
	Vector []float32
	Record Record
}

// EncodeVector serializes an embedding as comma-joined decimal text,
// the format the record store persists.
func EncodeVector(vec []float32) string {
	parts := make([]string, len(vec))
	for i, v := range vec {
		parts[i] = strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	return strings.Join(parts, ",")
}

// ParseEncoding parses comma-joined decimal text into an embedding of exactly
// dim components.
func ParseEncoding(encoding string, dim int) ([]float32, error) {
	parts := strings.Split(strings.TrimSpace(encoding), ",")
	if len(parts) != dim {
		return nil, fmt.Errorf("expected %d components, got %d", dim, len(parts))
	}

	vec := make([]float32, dim)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		vec[i] = float32(f)
	}
	return vec, nil
}
