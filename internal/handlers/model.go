package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/cardforge/pkg/session"
	"github.com/dmitrymomot/cardforge/pkg/storage"
)

// uploadModel receives the model image (multipart field "model") and
// stores it under the session's working prefix.
func (h *Handlers) uploadModel(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.store.Get(r.Context(), sessionID); err != nil {
		h.respondError(w, r, err)
		return
	}

	data, filename, err := h.readUpload(r, "model", h.upload.MaxModelBytes)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	contentType, _ := storage.DetectMIME(bytes.NewReader(data))
	if !storage.IsAllowedModelType(contentType) {
		h.respondError(w, r, fmt.Errorf("%w: model must be PNG or JPEG, got %s", errUnsupportedMedia, contentType))
		return
	}

	ext := ".png"
	if contentType == "image/jpeg" {
		ext = ".jpg"
	}
	key := sessionKey(sessionID, "model"+ext)

	if _, err := h.files.Put(r.Context(), key, bytes.NewReader(data), int64(len(data))); err != nil {
		h.respondError(w, r, err)
		return
	}

	var staleKey string
	sess, err := h.store.Update(r.Context(), sessionID, func(s *session.Session) error {
		if s.ModelKey != "" && s.ModelKey != key {
			staleKey = s.ModelKey
		}
		s.ModelKey = key
		s.ModelName = filename
		// A new model invalidates any previous batch.
		s.ArchiveKey = ""
		s.Rendered = 0
		return nil
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	// A model re-uploaded under a different extension leaves the old
	// blob behind otherwise.
	if staleKey != "" {
		if err := h.files.Delete(r.Context(), staleKey); err != nil {
			h.log.WarnContext(r.Context(), "stale model cleanup failed",
				slog.String("key", staleKey), slog.Any("error", err))
		}
	}

	h.respondJSON(w, http.StatusOK, toSessionResponse(sess))
}

// readUpload pulls one file out of a multipart form, bounded by limit.
func (h *Handlers) readUpload(r *http.Request, field string, limit int64) (data []byte, filename string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, limit+512)

	file, header, err := r.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", fmt.Errorf("%w: limit is %d bytes", errPayloadTooLarge, limit)
		}
		return nil, "", fmt.Errorf("%w: missing file field %q", errBadRequest, field)
	}
	defer file.Close()

	if header.Size > limit {
		return nil, "", fmt.Errorf("%w: limit is %d bytes", errPayloadTooLarge, limit)
	}

	data, err = io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("%w: reading upload: %v", errBadRequest, err)
	}
	if int64(len(data)) > limit {
		return nil, "", fmt.Errorf("%w: limit is %d bytes", errPayloadTooLarge, limit)
	}

	return data, header.Filename, nil
}

// sessionKey builds a storage key scoped to the session.
func sessionKey(sessionID, name string) string {
	return "sessions/" + sessionID + "/" + name
}
