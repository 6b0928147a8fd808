// Package middlewares provides the HTTP middleware stack: request IDs,
// panic recovery, CORS for the browser frontend, per-request timeouts,
// and the contact form rate limit.
//
// All middlewares are standard func(http.Handler) http.Handler wrappers
// compatible with chi's Use.
package middlewares
