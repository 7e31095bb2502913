// Package mock provides a mock record store for testing.
package mock

import (
	"context"
	"sync"

	"github.com/kozaktomas/facegate/internal/registry"
)

// Store is an in-memory implementation of registry.Store with error injection.
type Store struct {
	mu      sync.RWMutex
	records []registry.Record

	// Error injection
	FetchAllError error
	AppendError   error

	// Call counting
	AppendCalls int
}

// NewStore creates an empty mock store.
func NewStore() *Store {
	return &Store{}
}

// Seed replaces the stored records.
func (s *Store) Seed(records []registry.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]registry.Record(nil), records...)
}

// FetchAll returns all stored records.
func (s *Store) FetchAll(ctx context.Context) ([]registry.Record, error) {
	if s.FetchAllError != nil {
		return nil, s.FetchAllError
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]registry.Record(nil), s.records...), nil
}

// Append stores one new record.
func (s *Store) Append(ctx context.Context, rec registry.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AppendCalls++
	if s.AppendError != nil {
		return s.AppendError
	}
	s.records = append(s.records, rec)
	return nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
