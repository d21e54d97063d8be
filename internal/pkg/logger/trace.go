package logger

import (
	"context"
	log "log/slog"
)

// 请求链路在 Context 里携带的身份信息键
const (
	TraceIDKey = "trace_id"
	UserIDKey  = "user_id"
)

// TraceIDFromContext 取出链路 ID，不存在时返回空串
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// contextHandler 把 Context 里的链路 ID 和用户 ID 落到每条日志上
type contextHandler struct {
	next log.Handler
}

func (h *contextHandler) Enabled(ctx context.Context, level log.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, r log.Record) error {
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		r.AddAttrs(log.String(TraceIDKey, traceID))
	}
	if ctx != nil {
		if userID, ok := ctx.Value(UserIDKey).(uint64); ok && userID > 0 {
			r.AddAttrs(log.Uint64(UserIDKey, userID))
		}
	}
	return h.next.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) log.Handler {
	return &contextHandler{next: h.next.WithGroup(name)}
}
