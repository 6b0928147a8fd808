package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/cardforge/pkg/archive"
	"github.com/dmitrymomot/cardforge/pkg/extract"
	"github.com/dmitrymomot/cardforge/pkg/render"
	"github.com/dmitrymomot/cardforge/pkg/session"
	"github.com/dmitrymomot/cardforge/pkg/storage"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError maps domain sentinels onto HTTP statuses and logs
// server-side failures.
func (h *Handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, extract.ErrUnsupportedFormat):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, render.ErrInvalidLayout),
		errors.Is(err, render.ErrInvalidColor),
		errors.Is(err, render.ErrInvalidModel):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, archive.ErrNoFiles):
		status = http.StatusConflict
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, errPayloadTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, errUnsupportedMedia):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, errConflict):
		status = http.StatusConflict
	case errors.Is(err, errUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	h.respondJSON(w, status, errorResponse{Error: err.Error()})
}

// Request-level sentinels the status mapper understands.
var (
	errBadRequest       = errors.New("bad request")
	errPayloadTooLarge  = errors.New("payload too large")
	errUnsupportedMedia = errors.New("unsupported media type")
	errConflict         = errors.New("conflict")
	errUnavailable      = errors.New("service unavailable")
)
