package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kozaktomas/facegate/internal/registry"
	"github.com/kozaktomas/facegate/internal/registry/mock"
)

const testDim = 4

var errDatabaseDown = errors.New("database down")

// stubExtractor returns a canned embedding (or error) regardless of the photo.
type stubExtractor struct {
	embedding []float32
	err       error
}

func (s *stubExtractor) ExtractFace(ctx context.Context, imageData []byte) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.embedding, nil
}

// testVector returns a unit vector along the given axis.
func testVector(axis int) []float32 {
	vec := make([]float32, testDim)
	vec[axis] = 1
	return vec
}

// seedRecord builds a stored record for the given identity and embedding.
func seedRecord(name, studentID string, vec []float32) registry.Record {
	return registry.Record{
		Timestamp: time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC).Format(time.RFC3339),
		StudentID: studentID,
		Name:      name,
		Encoding:  registry.EncodeVector(vec),
	}
}

// testStoreAndCache creates a seeded mock store with a cache over it.
func testStoreAndCache(records ...registry.Record) (*mock.Store, *registry.Cache) {
	store := mock.NewStore()
	store.Seed(records)
	return store, registry.NewCache(store, testDim)
}

// multipartPhotoRequest builds a multipart request with a photo part and
// optional extra form fields.
func multipartPhotoRequest(t *testing.T, path string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("photo", "face.jpg")
	if err != nil {
		t.Fatalf("failed to create photo part: %v", err)
	}
	if _, err := part.Write([]byte("fake-image-bytes")); err != nil {
		t.Fatalf("failed to write photo part: %v", err)
	}

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}
