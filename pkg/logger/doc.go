// Package logger builds the application's slog loggers.
//
// The default logger writes JSON to stdout. When a Sentry DSN is
// configured, warnings and errors are additionally shipped to Sentry
// through its slog handler. Context extractors inject request-scoped
// attributes (request ID, session ID) into every record at log time.
package logger
