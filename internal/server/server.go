// Package server owns the HTTP server lifecycle: listener setup,
// signal-aware graceful shutdown, and shutdown hooks for dependencies.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Opinionated server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB

	defaultShutdownTimeout = 30 * time.Second
)

// Server wraps http.Server with graceful shutdown.
type Server struct {
	srv      *http.Server
	log      *slog.Logger
	listener net.Listener

	shutdownTimeout time.Duration
	shutdownHooks   []func(ctx context.Context) error
	done            chan struct{}
}

// Option configures the server.
type Option func(*Server)

// WithShutdownTimeout overrides how long graceful shutdown may take.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithShutdownHook registers a cleanup function to run after the HTTP
// server stops. Hooks run in registration order.
func WithShutdownHook(hook func(ctx context.Context) error) Option {
	return func(s *Server) {
		s.shutdownHooks = append(s.shutdownHooks, hook)
	}
}

// New creates a server listening on addr serving handler.
func New(addr string, handler http.Handler, log *slog.Logger, opts ...Option) *Server {
	if log == nil {
		log = slog.Default()
	}

	s := &Server{
		log:             log,
		shutdownTimeout: defaultShutdownTimeout,
		done:            make(chan struct{}),
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       defaultReadTimeout,
			WriteTimeout:      defaultWriteTimeout,
			IdleTimeout:       defaultIdleTimeout,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			MaxHeaderBytes:    defaultMaxHeaderBytes,
		},
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr returns the listener's address, or empty before Run.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run starts the server and blocks until SIGINT/SIGTERM, a Stop call,
// or a serve error. It then shuts down gracefully and runs the
// registered shutdown hooks.
func (s *Server) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.listener = ln

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	case <-s.done:
	}

	s.log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}

	for _, hook := range s.shutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			s.log.Error("shutdown hook failed", slog.Any("error", err))
		}
	}

	if len(errs) > 0 {
		s.log.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}

	s.log.Info("shutdown completed")
	return nil
}

// Stop triggers graceful shutdown programmatically.
func (s *Server) Stop() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}
