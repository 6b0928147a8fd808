// Command cardforge serves the invitation batch renderer: clients
// upload a model image and a guest list, tune the extracted records,
// and download a ZIP of personalized invitations.
package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/cardforge/internal/config"
	"github.com/dmitrymomot/cardforge/internal/handlers"
	"github.com/dmitrymomot/cardforge/internal/server"
	"github.com/dmitrymomot/cardforge/middlewares"
	"github.com/dmitrymomot/cardforge/pkg/health"
	"github.com/dmitrymomot/cardforge/pkg/logger"
	"github.com/dmitrymomot/cardforge/pkg/mailer"
	"github.com/dmitrymomot/cardforge/pkg/mailer/resend"
	"github.com/dmitrymomot/cardforge/pkg/ratelimit"
	"github.com/dmitrymomot/cardforge/pkg/redis"
	"github.com/dmitrymomot/cardforge/pkg/session"
	"github.com/dmitrymomot/cardforge/pkg/storage"
)

//go:embed templates
var templatesFS embed.FS

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor())
	checks := health.Checks{}

	files, err := newStorage(cfg.Storage, checks)
	if err != nil {
		return err
	}

	store := session.NewStore(
		session.WithTTL(cfg.Session.TTL),
		session.WithMaxSessions(cfg.Session.MaxSessions),
	)
	store.OnEvict(func(s *session.Session) {
		ctx := context.Background()
		for _, key := range s.Keys() {
			if err := files.Delete(ctx, key); err != nil {
				log.Warn("evicted session file cleanup failed",
					slog.String("key", key), slog.Any("error", err))
			}
		}
		if local, ok := files.(*storage.Local); ok {
			_ = local.DeletePrefix(ctx, "sessions/"+s.ID)
		}
	})

	var limiter ratelimit.Limiter = ratelimit.Unlimited{}
	var serverOpts []server.Option
	if cfg.Contact.RedisURL != "" {
		client, err := redis.Open(ctx, cfg.Contact.RedisURL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		limiter = ratelimit.NewRedis(client, cfg.Contact.RateLimit, cfg.Contact.RateWindow)
		checks["redis"] = redis.Healthcheck(client)
		serverOpts = append(serverOpts, server.WithShutdownHook(func(context.Context) error {
			return client.Close()
		}))
	}

	var mail *mailer.Mailer
	if cfg.Resend.APIKey != "" && cfg.Mailer.ContactInbox != "" {
		templates, err := fs.Sub(templatesFS, "templates")
		if err != nil {
			return err
		}
		mail = mailer.New(resend.New(cfg.Resend), mailer.NewRenderer(templates, ""), cfg.Mailer)
	} else {
		log.Info("contact form disabled: resend or inbox not configured")
	}

	h := handlers.New(store, files, mail, limiter, cfg.Upload, cfg.Render, log)
	router := server.NewRouter(*cfg, h, checks, log)

	// Periodic sweep complements the store's janitor so evicted
	// sessions release their stored files on a predictable schedule.
	// For local storage it also removes working directories whose
	// session is gone, e.g. after an unclean restart.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Session.CleanupSchedule, func() {
		if n := store.SweepExpired(); n > 0 {
			log.Info("swept expired sessions", slog.Int("count", n))
		}
		if local, ok := files.(*storage.Local); ok {
			sweepOrphans(context.Background(), local, cfg.Storage.Dir, store, log)
		}
	}); err != nil {
		return fmt.Errorf("schedule session cleanup: %w", err)
	}
	scheduler.Start()

	serverOpts = append(serverOpts,
		server.WithShutdownHook(func(ctx context.Context) error {
			select {
			case <-scheduler.Stop().Done():
			case <-ctx.Done():
			}
			return nil
		}),
		server.WithShutdownHook(func(context.Context) error {
			return store.Close()
		}),
	)

	return server.New(cfg.Addr, router, log, serverOpts...).Run(ctx)
}

// sweepOrphans removes local working directories with no live session.
func sweepOrphans(ctx context.Context, local *storage.Local, baseDir string, store *session.Store, log *slog.Logger) {
	entries, err := os.ReadDir(filepath.Join(baseDir, "sessions"))
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := store.Get(ctx, entry.Name()); err == nil {
			continue
		}
		if err := local.DeletePrefix(ctx, "sessions/"+entry.Name()); err != nil {
			log.Warn("orphaned session dir cleanup failed",
				slog.String("session_id", entry.Name()), slog.Any("error", err))
		}
	}
}

// newStorage builds the configured file backend and registers its
// readiness check.
func newStorage(cfg config.StorageConfig, checks health.Checks) (storage.Storage, error) {
	switch cfg.Driver {
	case "s3":
		s3, err := storage.NewS3(storage.Config{
			Bucket:    cfg.Bucket,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
			PathStyle: cfg.PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("init s3 storage: %w", err)
		}
		checks["storage"] = s3.Healthcheck
		return s3, nil
	case "local", "":
		local, err := storage.NewLocal(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("init local storage: %w", err)
		}
		checks["storage"] = local.Healthcheck
		return local, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
