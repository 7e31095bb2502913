package registry

import "context"

// Store is the minimal record store contract the policies depend on.
// Any persistent keyed store satisfies it; the default backend is a remote
// spreadsheet endpoint.
type Store interface {
	// FetchAll returns every persisted record.
	FetchAll(ctx context.Context) ([]Record, error)
	// Append persists one new record.
	Append(ctx context.Context, rec Record) error
}
