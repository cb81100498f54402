package xlog

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// 编译时接口检查
var _ slog.Handler = (*handler)(nil)

// handler 把 slog 记录转发给 Logger
type handler struct {
	l      *Logger
	attrs  []Field
	prefix string
}

// NewHandler 返回写入 l 的 slog.Handler
//
// slog 级别向下归入 Debug/Info/Warn/Error；属性值按 slog.Value.String 转为字符串，
// 分组展开为以点分隔的 key（如 "req.method"）。ctx 中有有效的 OpenTelemetry
// span 时，trace_id 和 span_id 作为最前面的两个字段输出。
// 时间戳取自 Logger 的时钟而不是 slog.Record.Time，与轮转判定保持一致。
func NewHandler(l *Logger) slog.Handler {
	return &handler{l: l}
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.l.Enabled(LevelFromSlog(level))
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	fields := make([]Field, 0, 2+len(h.attrs)+r.NumAttrs())

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			Field{Key: KeyTraceID, Value: sc.TraceID().String()},
			Field{Key: KeySpanID, Value: sc.SpanID().String()},
		)
	}
	fields = append(fields, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, h.prefix, a)
		return true
	})

	h.l.LogWithFields(LevelFromSlog(r.Level), r.Message, fields)
	return nil
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := make([]Field, len(h.attrs), len(h.attrs)+len(attrs))
	copy(next, h.attrs)
	for _, a := range attrs {
		next = appendAttr(next, h.prefix, a)
	}
	return &handler{l: h.l, attrs: next, prefix: h.prefix}
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &handler{l: h.l, attrs: h.attrs, prefix: h.prefix + name + "."}
}

// appendAttr 展开属性，遵循 slog 约定：空属性忽略，空分组忽略，key 为空的分组内联
func appendAttr(dst []Field, prefix string, a slog.Attr) []Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return dst
		}
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range group {
			dst = appendAttr(dst, p, ga)
		}
		return dst
	}
	if a.Key == "" {
		return dst
	}
	return append(dst, Field{Key: prefix + a.Key, Value: a.Value.String()})
}
