package handlers

import (
	"net/http"

	"github.com/kozaktomas/facegate/internal/registry"
	"github.com/kozaktomas/facegate/internal/web/middleware"
)

// LoginHandler handles face login and the session endpoints.
type LoginHandler struct {
	extractor Extractor
	cache     *registry.Cache
	sessions  *middleware.SessionManager
	threshold float64
}

// NewLoginHandler creates a login handler.
func NewLoginHandler(extractor Extractor, cache *registry.Cache, sessions *middleware.SessionManager, threshold float64) *LoginHandler {
	return &LoginHandler{
		extractor: extractor,
		cache:     cache,
		sessions:  sessions,
		threshold: threshold,
	}
}

// Login handles POST /api/v1/login. The request is a multipart form with a
// single "photo" field. An authenticated login opens a session and sets the
// signed session cookie.
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
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

	result, err := registry.Login(known, embedding, h.threshold)
	if err != nil {
		respondError(w, statusForError(err), err.Error())
		return
	}

	if result.Status == registry.StatusRejected {
		respondJSON(w, http.StatusUnauthorized, map[string]any{
			"status": result.Status,
		})
		return
	}

	rec := result.Entry.Record
	session, err := h.sessions.CreateSession(rec.Name, rec.StudentID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	h.sessions.SetSessionCookie(w, session)

	respondJSON(w, http.StatusOK, map[string]any{
		"status":  result.Status,
		"student": studentFromRecord(rec),
		"session": session,
	})
}

// Logout handles POST /api/v1/logout.
func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session := h.sessions.GetSessionFromRequest(r); session != nil {
		h.sessions.DeleteSession(session.ID)
	}
	h.sessions.ClearSessionCookie(w)

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Session handles GET /api/v1/session and reports whether the caller holds a
// valid session.
func (h *LoginHandler) Session(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetSessionFromRequest(r)
	if session == nil {
		respondJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"session":       session,
	})
}
