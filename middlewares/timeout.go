package middlewares

import (
	"context"
	"net/http"
	"time"
)

// DefaultTimeout bounds request handling. Batch generation for large
// lists is the slowest path and fits comfortably within it.
const DefaultTimeout = 60 * time.Second

// Timeout cancels the request context after d. Handlers observe the
// cancellation through ctx.Err(); the batch renderer aborts outstanding
// work when it fires.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	if d <= 0 {
		d = DefaultTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
