package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor reads one attribute from a record's context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler appends extracted attributes to each record at log time.
// A key the record already carries is not added again, so an explicit
// RequestID attribute on the call wins over the context value.
type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func newContextHandler(next slog.Handler, extractors []ContextExtractor) slog.Handler {
	if len(extractors) == 0 {
		return next
	}
	return &contextHandler{next: next, extractors: extractors}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if ctx == nil {
		return h.next.Handle(ctx, rec)
	}

	var (
		extra []slog.Attr
		keys  map[string]struct{}
	)
	for _, ex := range h.extractors {
		attr, ok := ex(ctx)
		if !ok || attr.Key == "" {
			continue
		}
		if keys == nil {
			keys = recordKeys(rec)
		}
		if _, dup := keys[attr.Key]; dup {
			continue
		}
		keys[attr.Key] = struct{}{}
		extra = append(extra, attr)
	}
	if len(extra) == 0 {
		return h.next.Handle(ctx, rec)
	}

	// rec may share attribute storage with the caller's copy.
	rec = rec.Clone()
	rec.AddAttrs(extra...)
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}

func recordKeys(rec slog.Record) map[string]struct{} {
	keys := make(map[string]struct{}, rec.NumAttrs())
	rec.Attrs(func(a slog.Attr) bool {
		keys[a.Key] = struct{}{}
		return true
	})
	return keys
}
