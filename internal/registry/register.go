package registry

import (
	"context"
	"strings"
	"time"
)

// Status reports the outcome of a policy decision.
type Status string

const (
	StatusRegistered    Status = "registered"
	StatusSkipped       Status = "skipped"
	StatusAuthenticated Status = "authenticated"
	StatusRejected      Status = "rejected"
)

// RegisterInput carries the user-supplied registration fields.
type RegisterInput struct {
	Name      string
	StudentID string
	Embedding []float32
}

// RegisterResult is the outcome of a registration attempt.
type RegisterResult struct {
	Status      Status
	MatchedName string // set on StatusSkipped: who the face already belongs to
	Record      Record // set on StatusRegistered: the persisted record
}

// Register registers a new student unless the face is already known.
// A matching face yields StatusSkipped without writing anything, preventing
// duplicate identities under different names or IDs. On StatusRegistered the
// caller owns invalidating its KnownSet snapshot so subsequent operations see
// the new record.
func Register(ctx context.Context, store Store, known *KnownSet, input RegisterInput, threshold float64) (*RegisterResult, error) {
	if len(input.Embedding) == 0 {
		return nil, &ValidationError{Field: "photo", Reason: "no face embedding provided"}
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	studentID := strings.TrimSpace(input.StudentID)
	if studentID == "" {
		return nil, &ValidationError{Field: "student_id", Reason: "must not be empty"}
	}

	if idx, ok := known.Match(input.Embedding, threshold); ok {
		return &RegisterResult{
			Status:      StatusSkipped,
			MatchedName: known.Entry(idx).Name,
		}, nil
	}

	rec := Record{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		StudentID: studentID,
		Name:      name,
		Encoding:  EncodeVector(input.Embedding),
	}

	if err := store.Append(ctx, rec); err != nil {
		return nil, &StoreError{Op: "append", Err: err}
	}

	return &RegisterResult{Status: StatusRegistered, Record: rec}, nil
}
