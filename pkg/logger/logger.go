package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ContextExtractor extracts a slog attribute from context.
// Extraction happens per log call so request-scoped values stay fresh.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// Option configures the logger built by New.
type Option func(*options)

type options struct {
	writer     io.Writer
	level      slog.Leveler
	extractors []ContextExtractor
	sentry     *SentryConfig
}

func defaultOptions() *options {
	return &options{
		writer: os.Stdout,
		level:  slog.LevelInfo,
	}
}

// WithWriter sets the destination for JSON log output.
// Defaults to stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithLevel sets the minimum log level.
// Defaults to slog.LevelInfo.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		if level != nil {
			o.level = level
		}
	}
}

// WithExtractors adds context extractors applied to every log record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// WithSentry enables Sentry fan-out for warnings and errors.
// If the DSN is empty the option is a no-op, so the same code path
// works in development and production.
func WithSentry(cfg SentryConfig) Option {
	return func(o *options) {
		o.sentry = &cfg
	}
}

// New creates a JSON-formatted slog logger.
//
// Example:
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithSentry(sentryCfg),
//	)
func New(opts ...Option) *slog.Logger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	var handler slog.Handler = slog.NewJSONHandler(o.writer, &slog.HandlerOptions{
		Level: o.level,
	})

	if o.sentry != nil && o.sentry.DSN != "" {
		if sh, err := newSentryHandler(*o.sentry); err == nil {
			handler = newMultiHandler(handler, sh)
		} else {
			// Graceful degradation: keep stdout logging if Sentry init fails.
			slog.New(handler).Error("failed to initialize sentry", slog.String("error", err.Error()))
		}
	}

	return slog.New(newExtractorHandler(handler, o.extractors...))
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// extractorHandler wraps a slog.Handler and injects context-extracted
// attributes before delegating to the underlying handler.
type extractorHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func newExtractorHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	if len(clean) == 0 {
		return next
	}
	return &extractorHandler{next: next, extractors: clean}
}

func (h *extractorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *extractorHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *extractorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &extractorHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *extractorHandler) WithGroup(name string) slog.Handler {
	return &extractorHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
