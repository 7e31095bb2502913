// Package mariadb implements the record store on MariaDB. The embedding is
// stored as comma-joined decimal text, the same format the sheet backend uses.
package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/kozaktomas/facegate/internal/registry"
)

// Store implements registry.Store over a MariaDB students table.
type Store struct {
	db *sql.DB
}

// NewStore opens a MariaDB connection pool and ensures the schema exists.
func NewStore(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("MariaDB DSN is required")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MariaDB: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MariaDB: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// ensureSchema creates the students table if it does not exist.
func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS students (
			id CHAR(36) PRIMARY KEY,
			registered_at DATETIME NOT NULL,
			student_id VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			encoding TEXT NOT NULL,
			INDEX idx_students_registered_at (registered_at)
		)
	`)
	if err != nil {
		return fmt.Errorf("create students table: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("closing database connection: %w", err)
		}
	}
	return nil
}

// FetchAll returns every registered student in registration order.
func (s *Store) FetchAll(ctx context.Context) ([]registry.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT registered_at, student_id, name, encoding
		FROM students
		ORDER BY registered_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	var records []registry.Record
	for rows.Next() {
		var registeredAt string
		var rec registry.Record

		if err := rows.Scan(&registeredAt, &rec.StudentID, &rec.Name, &rec.Encoding); err != nil {
			return nil, fmt.Errorf("scan student row: %w", err)
		}

		// DATETIME comes back as text unless parseTime is set on the DSN.
		ts, err := time.Parse("2006-01-02 15:04:05", registeredAt)
		if err != nil {
			return nil, fmt.Errorf("parse registered_at: %w", err)
		}
		rec.Timestamp = ts.UTC().Format(time.RFC3339)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	return records, nil
}

// Append inserts one new student row.
func (s *Store) Append(ctx context.Context, rec registry.Record) error {
	registeredAt, err := time.Parse(time.RFC3339, rec.Timestamp)
	if err != nil {
		return fmt.Errorf("invalid timestamp: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO students (id, registered_at, student_id, name, encoding)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.NewString(), registeredAt.UTC().Format("2006-01-02 15:04:05"), rec.StudentID, rec.Name, rec.Encoding)
	if err != nil {
		return fmt.Errorf("insert student: %w", err)
	}

	return nil
}
