package logging

import (
	"context"
	"log/slog"
)

// runHandler stamps every record with the session id and, for records logged
// through the *Context methods, with the segment, stage and video id carried
// by the context. Keys already bound on the logger are not repeated.
type runHandler struct {
	base      slog.Handler
	sessionID string
	bound     map[string]struct{}
	grouped   bool
}

func newRunHandler(base slog.Handler, sessionID string) slog.Handler {
	if base == nil {
		return slog.DiscardHandler
	}
	return &runHandler{base: base, sessionID: sessionID, bound: map[string]struct{}{}}
}

func (h *runHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *runHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.grouped {
		return h.base.Handle(ctx, record)
	}
	present := make(map[string]struct{}, record.NumAttrs())
	record.Attrs(func(a slog.Attr) bool {
		present[a.Key] = struct{}{}
		return true
	})
	for _, attr := range ContextFields(ctx) {
		if _, ok := h.bound[attr.Key]; ok {
			continue
		}
		if _, ok := present[attr.Key]; ok {
			continue
		}
		record.AddAttrs(attr)
	}
	if h.sessionID != "" {
		record.AddAttrs(slog.String(FieldSessionID, h.sessionID))
	}
	return h.base.Handle(ctx, record)
}

func (h *runHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := make(map[string]struct{}, len(h.bound)+len(attrs))
	for key := range h.bound {
		bound[key] = struct{}{}
	}
	if !h.grouped {
		for _, a := range attrs {
			bound[a.Key] = struct{}{}
		}
	}
	return &runHandler{base: h.base.WithAttrs(attrs), sessionID: h.sessionID, bound: bound, grouped: h.grouped}
}

// WithGroup stops injection: run fields belong at the top level.
func (h *runHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &runHandler{base: h.base.WithGroup(name), sessionID: h.sessionID, bound: h.bound, grouped: true}
}
