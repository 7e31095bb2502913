// Package sheet implements the record store over a remote spreadsheet
// endpoint: a GET returns all rows as JSON, a POST appends one row.
package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kozaktomas/facegate/internal/registry"
)

const requestTimeout = 10 * time.Second

// Store talks to a single configured spreadsheet endpoint.
type Store struct {
	endpoint   string
	client     *http.Client
	captureDir string
}

// New creates a sheet store for the given endpoint URL.
func New(endpoint string) *Store {
	return NewWithCapture(endpoint, "")
}

// NewWithCapture creates a sheet store that additionally saves raw fetch
// responses to captureDir for building test fixtures.
func NewWithCapture(endpoint, captureDir string) *Store {
	return &Store{
		endpoint:   endpoint,
		client:     &http.Client{Timeout: requestTimeout},
		captureDir: captureDir,
	}
}

// FetchAll fetches every row from the endpoint. Unknown JSON fields are
// ignored; rows are returned as-is, without encoding validation (that is the
// KnownSet builder's job).
func (s *Store) FetchAll(ctx context.Context) ([]registry.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	s.captureResponse("fetch", body)

	var records []registry.Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}

	return records, nil
}

// Append posts one new row to the endpoint. Success is status-based; no
// structured error body is consumed.
func (s *Store) Append(ctx context.Context, rec registry.Record) error {
	jsonBody, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("could not marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// captureResponse saves a response body to the capture directory for testing.
func (s *Store) captureResponse(name string, body []byte) {
	if s.captureDir == "" {
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.json", name, timestamp)
	path := filepath.Join(s.captureDir, filename)

	// Pretty-print JSON if possible
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, body, "", "  "); err == nil {
		body = prettyJSON.Bytes()
	}

	// WriteFile error is non-critical for capturing - log and continue
	if err := os.WriteFile(path, body, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to capture response to %s: %v\n", path, err)
	}
}
