package handlers

import (
	"net/http"

	"github.com/kozaktomas/facegate/internal/registry"
)

// RegisterHandler handles student registration requests.
type RegisterHandler struct {
	extractor Extractor
	store     registry.Store
	cache     *registry.Cache
	threshold float64
}

// NewRegisterHandler creates a registration handler.
func NewRegisterHandler(extractor Extractor, store registry.Store, cache *registry.Cache, threshold float64) *RegisterHandler {
	return &RegisterHandler{
		extractor: extractor,
		store:     store,
		cache:     cache,
		threshold: threshold,
	}
}

// Register handles POST /api/v1/register. The request is a multipart form
// with "photo", "name" and "student_id" fields.
func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	photo, err := readPhoto(r)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	embedding, err := h.extractor.ExtractFace(r.Context(), photo)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	known, err := h.cache.Snapshot(r.Context())
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	result, err := registry.Register(r.Context(), h.store, known, registry.RegisterInput{
		Name:      r.FormValue("name"),
		StudentID: r.FormValue("student_id"),
		Embedding: embedding,
	}, h.threshold)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	if result.Status == registry.StatusSkipped {
		respondJSON(w, http.StatusOK, map[string]any{
			"status":       result.Status,
			"matched_name": result.MatchedName,
		})
		return
	}

	// New record persisted, the next snapshot must see it.
	h.cache.Invalidate()

	respondJSON(w, http.StatusCreated, map[string]any{
		"status":  result.Status,
		"student": studentFromRecord(result.Record),
	})
}
