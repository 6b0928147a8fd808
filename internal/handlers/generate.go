package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/cardforge/pkg/archive"
	"github.com/dmitrymomot/cardforge/pkg/render"
	"github.com/dmitrymomot/cardforge/pkg/session"
)

// generateRequest carries the text layout for the batch.
type generateRequest struct {
	Layout render.Layout `json:"layout"`
}

// generate renders one invitation per record and packages the batch as
// a ZIP under the session's working prefix. Concurrent calls for the
// same session share one run.
func (h *Handlers) generate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req generateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		h.respondError(w, r, fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err))
		return
	}

	result, err, _ := h.generateGroup.Do(sessionID, func() (any, error) {
		return h.runGeneration(r, sessionID, req.Layout)
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *Handlers) runGeneration(r *http.Request, sessionID string, layout render.Layout) (any, error) {
	// The run is shared across collapsed callers, so it must not die
	// with whichever request happened to start it.
	ctx := context.WithoutCancel(r.Context())

	sess, err := h.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.HasModel() {
		return nil, fmt.Errorf("%w: no model image uploaded", errConflict)
	}
	if len(sess.Records) == 0 {
		return nil, fmt.Errorf("%w: no guest records", errConflict)
	}

	rc, err := h.files.Get(ctx, sess.ModelKey)
	if err != nil {
		return nil, err
	}
	model, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	layout.FontPath = h.render.FontPath
	renderer, err := render.New(model, layout)
	if err != nil {
		return nil, err
	}

	files, err := renderer.RenderBatch(ctx, sess.Records, h.render.Concurrency)
	if err != nil {
		return nil, err
	}

	zipped, err := archive.Bytes(files)
	if err != nil {
		return nil, err
	}

	key := sessionKey(sessionID, "batch.zip")
	if _, err := h.files.Put(ctx, key, bytes.NewReader(zipped), int64(len(zipped))); err != nil {
		return nil, err
	}

	updated, err := h.store.Update(ctx, sessionID, func(s *session.Session) error {
		s.ArchiveKey = key
		s.Rendered = len(files)
		s.GeneratedAt = time.Now()
		s.Layout = &layout
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSessionResponse(updated), nil
}

// downloadArchive streams the generated ZIP.
func (h *Handlers) downloadArchive(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	sess, err := h.store.Get(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if !sess.HasArchive() {
		h.respondError(w, r, fmt.Errorf("%w: no batch generated yet", errConflict))
		return
	}

	rc, err := h.files.Get(r.Context(), sess.ArchiveKey)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	defer rc.Close()

	filename := fmt.Sprintf("invitations-%.8s.zip", sess.ID)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = io.Copy(w, rc)
}
