package logger

import (
	"context"
	"log/slog"
	"maps"
)

// ContextExtractor pulls one attribute out of a context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler appends extracted attributes to each record. A key already
// bound through With, or passed at the call site, is not added again.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
	bound      map[string]struct{}
}

func newContextHandler(next slog.Handler, extractors []ContextExtractor) slog.Handler {
	if len(extractors) == 0 {
		return next
	}
	return &contextHandler{Handler: next, extractors: extractors}
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	var present map[string]struct{}
	if rec.NumAttrs() > 0 {
		present = make(map[string]struct{}, rec.NumAttrs())
		rec.Attrs(func(a slog.Attr) bool {
			present[a.Key] = struct{}{}
			return true
		})
	}

	for _, ex := range h.extractors {
		attr, ok := ex(ctx)
		if !ok || attr.Key == "" {
			continue
		}
		if _, dup := h.bound[attr.Key]; dup {
			continue
		}
		if _, dup := present[attr.Key]; dup {
			continue
		}
		rec.AddAttrs(attr)
	}
	return h.Handler.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := maps.Clone(h.bound)
	if bound == nil {
		bound = make(map[string]struct{}, len(attrs))
	}
	for _, a := range attrs {
		bound[a.Key] = struct{}{}
	}
	return &contextHandler{
		Handler:    h.Handler.WithAttrs(attrs),
		extractors: h.extractors,
		bound:      bound,
	}
}

// WithGroup starts with no bound keys: extracted attributes land inside the group.
func (h *contextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &contextHandler{
		Handler:    h.Handler.WithGroup(name),
		extractors: h.extractors,
	}
}
