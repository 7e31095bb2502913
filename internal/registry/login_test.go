package registry

import (
	"errors"
	"testing"
)

func TestLogin_Authenticated(t *testing.T) {
	records := []Record{
		recordWithVector("Alice", "s1", unitVector(128, 0)),
		recordWithVector("Bob", "s2", unitVector(128, 1)),
	}
	known, _ := BuildKnownSet(records, 128)

	res, err := Login(known, unitVector(128, 1), 0.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != StatusAuthenticated {
		t.Fatalf("expected authenticated, got %s", res.Status)
	}
	if res.Entry.Name != "Bob" {
		t.Errorf("expected matched identity 'Bob', got '%s'", res.Entry.Name)
	}
}

func TestLogin_Rejected(t *testing.T) {
	records := []Record{
		recordWithVector("Alice", "s1", unitVector(128, 0)),
	}
	known, _ := BuildKnownSet(records, 128)

	res, err := Login(known, unitVector(128, 5), 0.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != StatusRejected {
		t.Errorf("expected rejected, got %s", res.Status)
	}
}

func TestLogin_EmptyRegistry(t *testing.T) {
	known, _ := BuildKnownSet(nil, 128)

	_, err := Login(known, unitVector(128, 0), 0.4)
	if !errors.Is(err, ErrEmptyRegistry) {
		t.Errorf("expected ErrEmptyRegistry, got %v", err)
	}
}

func TestLogin_MissingEmbedding(t *testing.T) {
	records := []Record{
		recordWithVector("Alice", "s1", unitVector(128, 0)),
	}
	known, _ := BuildKnownSet(records, 128)

	_, err := Login(known, nil, 0.4)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestLogin_MissingEmbeddingBeatsEmptyRegistry(t *testing.T) {
	// Missing input is reported before the empty-registry state.
	known, _ := BuildKnownSet(nil, 128)

	_, err := Login(known, nil, 0.4)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for missing embedding, got %v", err)
	}
}
