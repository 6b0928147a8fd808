// Package handlers implements the HTTP API: session lifecycle, model
// and guest list uploads, batch generation, archive download, and the
// contact form relay.
package handlers

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/cardforge/internal/config"
	"github.com/dmitrymomot/cardforge/middlewares"
	"github.com/dmitrymomot/cardforge/pkg/mailer"
	"github.com/dmitrymomot/cardforge/pkg/ratelimit"
	"github.com/dmitrymomot/cardforge/pkg/session"
	"github.com/dmitrymomot/cardforge/pkg/storage"
)

// Handlers carries the API's dependencies.
type Handlers struct {
	store   *session.Store
	files   storage.Storage
	mail    *mailer.Mailer // nil disables the contact form
	limiter ratelimit.Limiter
	log     *slog.Logger

	upload config.UploadConfig
	render config.RenderConfig

	// generate collapses concurrent generation calls per session.
	generateGroup singleflight.Group
}

// New creates the API handlers.
func New(
	store *session.Store,
	files storage.Storage,
	mail *mailer.Mailer,
	limiter ratelimit.Limiter,
	upload config.UploadConfig,
	render config.RenderConfig,
	log *slog.Logger,
) *Handlers {
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{
		store:   store,
		files:   files,
		mail:    mail,
		limiter: limiter,
		upload:  upload,
		render:  render,
		log:     log,
	}
}

// Routes mounts the API under /api.
func (h *Handlers) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", h.createSession)

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Delete("/", h.deleteSession)
			r.Post("/model", h.uploadModel)
			r.Post("/list", h.uploadList)
			r.Put("/records", h.replaceRecords)
			r.Post("/generate", h.generate)
			r.Get("/archive", h.downloadArchive)
		})

		r.With(middlewares.RateLimit(h.limiter, h.log)).
			Post("/contact", h.contact)
	})
}
