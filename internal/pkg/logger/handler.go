package logger

import (
	"context"
	"errors"
	log "log/slog"
)

// teeHandler 把一条日志同时交给本地和远程两个出口。
// 任何一个出口失败不影响另一个出口收到日志。
type teeHandler struct {
	local  log.Handler
	remote log.Handler
}

func (h *teeHandler) Enabled(ctx context.Context, level log.Level) bool {
	return h.local.Enabled(ctx, level) || h.remote.Enabled(ctx, level)
}

func (h *teeHandler) Handle(ctx context.Context, r log.Record) error {
	var localErr, remoteErr error
	if h.local.Enabled(ctx, r.Level) {
		localErr = h.local.Handle(ctx, r.Clone())
	}
	if h.remote.Enabled(ctx, r.Level) {
		remoteErr = h.remote.Handle(ctx, r.Clone())
	}
	return errors.Join(localErr, remoteErr)
}

func (h *teeHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &teeHandler{
		local:  h.local.WithAttrs(attrs),
		remote: h.remote.WithAttrs(attrs),
	}
}

func (h *teeHandler) WithGroup(name string) log.Handler {
	return &teeHandler{
		local:  h.local.WithGroup(name),
		remote: h.remote.WithGroup(name),
	}
}

// traceFilterHandler 只放行带链路 ID 的日志，进程内部噪音不上报远端
type traceFilterHandler struct {
	next log.Handler
}

func (h *traceFilterHandler) Enabled(ctx context.Context, level log.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *traceFilterHandler) Handle(ctx context.Context, r log.Record) error {
	if TraceIDFromContext(ctx) == "" && !recordHasTrace(r) {
		return nil
	}
	return h.next.Handle(ctx, r)
}

func (h *traceFilterHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &traceFilterHandler{next: h.next.WithAttrs(attrs)}
}

func (h *traceFilterHandler) WithGroup(name string) log.Handler {
	return &traceFilterHandler{next: h.next.WithGroup(name)}
}

func recordHasTrace(r log.Record) bool {
	found := false
	r.Attrs(func(a log.Attr) bool {
		if a.Key == TraceIDKey && a.Value.String() != "" {
			found = true
			return false
		}
		return true
	})
	return found
}
