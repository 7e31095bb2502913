package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/kozaktomas/facegate/internal/constants"
	"github.com/kozaktomas/facegate/internal/embedding"
	"github.com/kozaktomas/facegate/internal/registry"
)

// Extractor produces a face embedding for an uploaded photo. Satisfied by
// embedding.Client; tests substitute a stub.
type Extractor interface {
	ExtractFace(ctx context.Context, imageData []byte) ([]float32, error)
}

// studentJSON is the identity shape returned by the API. The embedding itself
// is never exposed.
type studentJSON struct {
	Timestamp string `json:"timestamp"`
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
}

func studentFromRecord(rec registry.Record) studentJSON {
	return studentJSON{
		Timestamp: rec.Timestamp,
		StudentID: rec.StudentID,
		Name:      rec.Name,
	}
}

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusForError maps policy and extractor errors onto HTTP status codes.
func statusForError(err error) int {
	var verr *registry.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, embedding.ErrNoFace),
		errors.Is(err, embedding.ErrMultipleFaces):
		return http.StatusBadRequest
	case errors.Is(err, registry.ErrEmptyRegistry):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// readPhoto reads the "photo" part of a multipart upload.
func readPhoto(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		return nil, &registry.ValidationError{Field: "photo", Reason: "invalid multipart form"}
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		return nil, &registry.ValidationError{Field: "photo", Reason: "missing photo upload"}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &registry.ValidationError{Field: "photo", Reason: "could not read photo upload"}
	}
	return data, nil
}

// logSkipWarnings logs per-record parse warnings without aborting anything.
func logSkipWarnings(warnings []*registry.EncodingParseError) {
	for _, w := range warnings {
		log.Printf("warning: %s", sanitizeForLog(w.Error()))
	}
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
