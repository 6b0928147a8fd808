package server

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/cardforge/internal/config"
	"github.com/dmitrymomot/cardforge/internal/handlers"
	"github.com/dmitrymomot/cardforge/middlewares"
	"github.com/dmitrymomot/cardforge/pkg/health"
)

// NewRouter assembles the application router: global middleware, health
// probes, the API, and the static frontend.
func NewRouter(cfg config.Config, h *handlers.Handlers, checks health.Checks, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middlewares.RequestID())
	r.Use(middlewares.Recover(log))
	cors := middlewares.DefaultCORSConfig
	if len(cfg.CORSOrigins) > 0 {
		cors.AllowOrigins = cfg.CORSOrigins
	}
	r.Use(middlewares.CORS(cors))
	r.Use(middlewares.Timeout(cfg.RequestTimeout))

	r.Get("/healthz", health.LivenessHandler())
	r.Get("/readyz", health.ReadinessHandler(checks, log))

	h.Routes(r)

	if cfg.StaticDir != "" {
		if _, err := os.Stat(cfg.StaticDir); err == nil {
			r.NotFound(staticHandler(cfg.StaticDir))
		} else {
			log.Warn("static dir missing, frontend disabled", slog.String("dir", cfg.StaticDir))
		}
	}

	return r
}

// staticHandler serves files from dir, falling back to index.html for
// unknown paths so client-side routing keeps working.
func staticHandler(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	}
}
