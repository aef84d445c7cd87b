// Package logger provides structured logging for the SDK built on log/slog.
//
// The package produces JSON-formatted logs with optional context-based
// attribute injection and optional Sentry error reporting. Context
// extractors run on every log call, so request-scoped values such as
// request IDs are always fresh:
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithExtractors(api.RequestIDExtractor()),
//	)
//
// Sentry integration degrades gracefully: when the DSN is empty or
// initialization fails, logging continues to the configured writer only.
package logger
