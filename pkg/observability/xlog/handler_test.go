package xlog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/qdlog/pkg/observability/xlog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]string {
	t.Helper()
	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got), "line: %s", buf.String())
	return got
}

func TestHandler_FlattensAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(t, &buf, xlog.WithFormat(xlog.FormatJSON))
	logger := slog.New(xlog.NewHandler(l))

	logger.With("svc", "api").WithGroup("req").Info("handled",
		"method", "GET",
		slog.Int("status", 200),
		slog.Group("user", slog.String("id", "u1")),
		slog.Group("empty"),
		slog.Duration("took", 1500*time.Millisecond),
	)

	got := decodeLine(t, &buf)
	assert.Equal(t, "info", got["level"])
	assert.Equal(t, "handled", got["msg"])
	assert.Equal(t, "api", got["svc"])
	assert.Equal(t, "GET", got["req.method"])
	assert.Equal(t, "200", got["req.status"])
	assert.Equal(t, "u1", got["req.user.id"])
	assert.Equal(t, "1.5s", got["req.took"])
	assert.NotContains(t, got, "req.empty")
}

func TestHandler_InlineGroupAndEmptyAttr(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(t, &buf)
	logger := slog.New(xlog.NewHandler(l))

	logger.Info("m", slog.Group("", slog.String("a", "1")), slog.Attr{}, slog.String("b", "2"))
	assert.Equal(t, "2025-01-15T10:30:00 [INFO ] m a=1 b=2\n", buf.String())
}

func TestHandler_LevelMapping(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(t, &buf)
	logger := slog.New(xlog.NewHandler(l))
	ctx := context.Background()

	logger.Debug("hidden")
	assert.Empty(t, buf.String())
	assert.False(t, logger.Enabled(ctx, slog.LevelDebug))

	logger.Log(ctx, slog.LevelWarn+2, "custom")
	assert.Equal(t, "2025-01-15T10:30:00 [WARN ] custom\n", buf.String())

	require.NoError(t, l.SetLevel(xlog.LevelOff))
	buf.Reset()
	logger.Error("silenced")
	assert.Empty(t, buf.String())
}

func TestHandler_TraceIDs(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(t, &buf, xlog.WithFormat(xlog.FormatJSON))
	logger := slog.New(xlog.NewHandler(l)).With("svc", "api")

	tid, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	sid, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    tid,
		SpanID:     sid,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "traced")
	assert.Equal(t,
		`{"time":"2025-01-15T10:30:00","level":"info","msg":"traced","trace_id":"4bf92f3577b34da6a3ce929d0e0e4736","span_id":"00f067aa0ba902b7","svc":"api"}`+"\n",
		buf.String())

	buf.Reset()
	logger.InfoContext(context.Background(), "untraced")
	got := decodeLine(t, &buf)
	assert.NotContains(t, got, "trace_id")
	assert.NotContains(t, got, "span_id")
}
