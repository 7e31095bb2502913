package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/kozaktomas/facegate/internal/registry"
)

// Store implements registry.Store over the students table. Embeddings are
// stored as pgvector values; the comma-joined encoding is converted at this
// boundary so the core never sees SQL types.
type Store struct {
	pool *Pool
	dim  int
}

// NewStore creates a PostgreSQL-backed record store.
func NewStore(pool *Pool, dim int) *Store {
	return &Store{pool: pool, dim: dim}
}

// FetchAll returns every registered student in registration order.
func (s *Store) FetchAll(ctx context.Context) ([]registry.Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT registered_at, student_id, name, embedding
		FROM students
		ORDER BY registered_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	var records []registry.Record
	for rows.Next() {
		var registeredAt time.Time
		var rec registry.Record
		var vec pgvector.Vector

		if err := rows.Scan(&registeredAt, &rec.StudentID, &rec.Name, &vec); err != nil {
			return nil, fmt.Errorf("scan student row: %w", err)
		}

		rec.Timestamp = registeredAt.UTC().Format(time.RFC3339)
		rec.Encoding = registry.EncodeVector(vec.Slice())
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	return records, nil
}

// Append inserts one new student row.
func (s *Store) Append(ctx context.Context, rec registry.Record) error {
	vec, err := registry.ParseEncoding(rec.Encoding, s.dim)
	if err != nil {
		return fmt.Errorf("invalid encoding: %w", err)
	}

	registeredAt, err := time.Parse(time.RFC3339, rec.Timestamp)
	if err != nil {
		return fmt.Errorf("invalid timestamp: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO students (id, registered_at, student_id, name, embedding)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), registeredAt, rec.StudentID, rec.Name, pgvector.NewVector(vec))
	if err != nil {
		return fmt.Errorf("insert student: %w", err)
	}

	return nil
}
