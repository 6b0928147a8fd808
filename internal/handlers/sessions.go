package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/cardforge/pkg/session"
)

// sessionResponse decorates a session with derived flags the frontend
// keys its flow on.
type sessionResponse struct {
	*session.Session
	HasModel   bool `json:"has_model"`
	HasArchive bool `json:"has_archive"`
}

func toSessionResponse(s *session.Session) sessionResponse {
	return sessionResponse{
		Session:    s,
		HasModel:   s.HasModel(),
		HasArchive: s.HasArchive(),
	}
}

// createSession starts a new working session.
func (h *Handlers) createSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.Create(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toSessionResponse(sess))
}

// getSession reports session status.
func (h *Handlers) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toSessionResponse(sess))
}

// deleteSession drops a session; its stored files are cleaned up by the
// store's eviction callback.
func (h *Handlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
