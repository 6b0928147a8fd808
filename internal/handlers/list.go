package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/cardforge/pkg/extract"
	"github.com/dmitrymomot/cardforge/pkg/records"
	"github.com/dmitrymomot/cardforge/pkg/session"
	"github.com/dmitrymomot/cardforge/pkg/storage"
)

// listResponse returns the extracted records for client-side review.
type listResponse struct {
	Records []records.Record `json:"records"`
	Dropped bool             `json:"extraction_failed,omitempty"`
}

// uploadList receives the guest list, either as a multipart file (field
// "list": txt, docx, pdf or xlsx) or as a raw text body, extracts
// records, and stores them on the session.
//
// A corrupt document is not an upload error: extraction failure
// degrades to an empty record set, flagged in the response so the
// frontend can tell the user.
func (h *Handlers) uploadList(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.store.Get(r.Context(), sessionID); err != nil {
		h.respondError(w, r, err)
		return
	}

	recs, extractionFailed, err := h.extractRecords(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if len(recs) > h.render.MaxRecords {
		h.respondError(w, r, fmt.Errorf("%w: list has %d records, limit is %d", errPayloadTooLarge, len(recs), h.render.MaxRecords))
		return
	}

	if extractionFailed {
		h.log.WarnContext(r.Context(), "list extraction failed, treating as empty",
			slog.String("session_id", sessionID))
	}

	if _, err := h.store.Update(r.Context(), sessionID, func(s *session.Session) error {
		s.Records = recs
		// A new list invalidates any previous batch.
		s.ArchiveKey = ""
		s.Rendered = 0
		return nil
	}); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, listResponse{Records: recs, Dropped: extractionFailed})
}

// extractRecords picks the right extraction path for the request shape.
func (h *Handlers) extractRecords(r *http.Request) (recs []records.Record, extractionFailed bool, err error) {
	contentType := r.Header.Get("Content-Type")

	// Raw text body: parse directly.
	if strings.HasPrefix(contentType, "text/plain") {
		body, err := io.ReadAll(io.LimitReader(r.Body, h.upload.MaxListBytes+1))
		if err != nil {
			return nil, false, fmt.Errorf("%w: reading body: %v", errBadRequest, err)
		}
		if int64(len(body)) > h.upload.MaxListBytes {
			return nil, false, fmt.Errorf("%w: limit is %d bytes", errPayloadTooLarge, h.upload.MaxListBytes)
		}
		return records.Parse(string(body)), false, nil
	}

	data, filename, err := h.readUpload(r, "list", h.upload.MaxListBytes)
	if err != nil {
		return nil, false, err
	}

	sniffed, _ := storage.DetectMIME(bytes.NewReader(data))
	if !storage.IsAllowedListType(sniffed) {
		return nil, false, fmt.Errorf("%w: list must be txt, docx, pdf or xlsx, got %s", errUnsupportedMedia, sniffed)
	}

	recs, err = extract.Records(data, filename)
	if errors.Is(err, extract.ErrCorruptDocument) || errors.Is(err, extract.ErrNoWorksheet) {
		// Unreadable upload degrades to an empty list.
		return []records.Record{}, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return recs, false, nil
}

// replaceRecordsRequest is the client-corrected guest list.
type replaceRecordsRequest struct {
	Records []records.Record `json:"records"`
}

// replaceRecords overwrites the session's record set with the client's
// reviewed version. Empty names are dropped; order is preserved.
func (h *Handlers) replaceRecords(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req replaceRecordsRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, h.upload.MaxListBytes)).Decode(&req); err != nil {
		h.respondError(w, r, fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err))
		return
	}

	if len(req.Records) > h.render.MaxRecords {
		h.respondError(w, r, fmt.Errorf("%w: %d records, limit is %d", errPayloadTooLarge, len(req.Records), h.render.MaxRecords))
		return
	}

	recs := make([]records.Record, 0, len(req.Records))
	for _, rec := range req.Records {
		rec.Name = strings.TrimSpace(rec.Name)
		rec.Table = strings.TrimSpace(rec.Table)
		if rec.Name == "" {
			continue
		}
		recs = append(recs, rec)
	}

	sess, err := h.store.Update(r.Context(), sessionID, func(s *session.Session) error {
		s.Records = recs
		s.ArchiveKey = ""
		s.Rendered = 0
		return nil
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toSessionResponse(sess))
}
