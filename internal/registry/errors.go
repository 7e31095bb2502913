package registry

import (
	"errors"
	"fmt"
)

// ErrEmptyRegistry is returned by Login when there are no registered students
// to match against. It is deliberately distinct from a rejection so the caller
// can counsel "register first" instead of "try again".
var ErrEmptyRegistry = errors.New("no registered students to match against")

// ValidationError reports missing or invalid user input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StoreError wraps a record store fetch or append failure. The failed
// operation aborts and is never retried automatically.
type StoreError struct {
	Op  string // "fetch" or "append"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("record store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// EncodingParseError reports a single fetched record whose encoding could not
// be parsed to the expected dimensionality. It is logged and the record is
// skipped; it never aborts a KnownSet build.
type EncodingParseError struct {
	Name   string
	Reason string
}

func (e *EncodingParseError) Error() string {
	return fmt.Sprintf("skipping record %q: %s", e.Name, e.Reason)
}
