package xmetrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	defaultInstrumentationName = "github.com/omeyang/qdlog/pkg/observability/xlog"

	metricRecordsEmitted = "xlog.records.emitted"
	metricWritesDropped  = "xlog.writes.dropped"
	metricRotations      = "xlog.rotations"

	attrLevel  = "level"
	attrSink   = "sink"
	attrReason = "reason"
	attrMode   = "mode"
	attrStatus = "status"
)

type otelConfig struct {
	instrumentationName string
	meterProvider       metric.MeterProvider
}

// Option 定义 OTel Recorder 的配置选项。
type Option func(*otelConfig)

// WithInstrumentationName 设置 OTel instrumentation 名称，空字符串被忽略。
func WithInstrumentationName(name string) Option {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithMeterProvider 设置 MeterProvider，nil 被忽略（使用全局 provider）。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// NewOTelRecorder 创建基于 OpenTelemetry 的 Recorder。
func NewOTelRecorder(opts ...Option) (Recorder, error) {
	cfg := &otelConfig{
		instrumentationName: defaultInstrumentationName,
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)

	emitted, err := meter.Int64Counter(
		metricRecordsEmitted,
		metric.WithDescription("log records that passed the level filter"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateCounter, metricRecordsEmitted, err)
	}

	dropped, err := meter.Int64Counter(
		metricWritesDropped,
		metric.WithDescription("writes dropped by a single sink"),
		metric.WithUnit("{write}"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateCounter, metricWritesDropped, err)
	}

	rotations, err := meter.Int64Counter(
		metricRotations,
		metric.WithDescription("log file rotations"),
		metric.WithUnit("{rotation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateCounter, metricRotations, err)
	}

	return &otelRecorder{
		emitted:   emitted,
		dropped:   dropped,
		rotations: rotations,
	}, nil
}

type otelRecorder struct {
	emitted   metric.Int64Counter
	dropped   metric.Int64Counter
	rotations metric.Int64Counter
}

// RecordEmitted 记录一条通过级别过滤的记录。
func (r *otelRecorder) RecordEmitted(ctx context.Context, level string) {
	r.emitted.Add(normalizeContext(ctx), 1,
		metric.WithAttributes(attribute.String(attrLevel, level)))
}

// RecordDropped 记录一次被丢弃的写入。
func (r *otelRecorder) RecordDropped(ctx context.Context, sink, reason string) {
	r.dropped.Add(normalizeContext(ctx), 1,
		metric.WithAttributes(
			attribute.String(attrSink, sink),
			attribute.String(attrReason, reason),
		))
}

// RecordRotation 记录一次文件轮转。
func (r *otelRecorder) RecordRotation(ctx context.Context, mode string, err error) {
	r.rotations.Add(normalizeContext(ctx), 1,
		metric.WithAttributes(
			attribute.String(attrMode, mode),
			attribute.String(attrStatus, StatusOf(err)),
		))
}

func normalizeContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
