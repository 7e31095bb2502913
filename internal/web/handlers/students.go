package handlers

import (
	"net/http"

	"github.com/kozaktomas/facegate/internal/registry"
)

// StudentsHandler handles read and refresh operations on the registry.
type StudentsHandler struct {
	cache *registry.Cache
}

// NewStudentsHandler creates a students handler.
func NewStudentsHandler(cache *registry.Cache) *StudentsHandler {
	return &StudentsHandler{cache: cache}
}

// List handles GET /api/v1/students. An optional "q" query parameter filters
// by name or student ID, diacritic-insensitively.
func (h *StudentsHandler) List(w http.ResponseWriter, r *http.Request) {
	known, err := h.cache.Snapshot(r.Context())
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	entries := known.Search(r.URL.Query().Get("q"))

	students := make([]studentJSON, 0, len(entries))
	for _, e := range entries {
		students = append(students, studentFromRecord(e.Record))
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"count":    len(students),
		"students": students,
	})
}

// Refresh handles POST /api/v1/students/refresh. It rebuilds the known set
// from a full re-fetch; per-record parse warnings are logged and counted but
// never fail the rebuild.
func (h *StudentsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	known, warnings, err := h.cache.Refresh(r.Context())
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}
	logSkipWarnings(warnings)

	respondJSON(w, http.StatusOK, map[string]any{
		"count":   known.Len(),
		"skipped": len(warnings),
	})
}
