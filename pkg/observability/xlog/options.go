package xlog

import (
	"io"
	"time"

	"github.com/omeyang/qdlog/pkg/observability/xmetrics"
	"github.com/omeyang/qdlog/pkg/observability/xrotate"
)

// Option Logger 配置选项函数
type Option func(*Logger)

// sinkFactory 创建文件输出，测试中可替换
type sinkFactory func(path string, mode xrotate.Mode, maxSize, maxFiles int64, now time.Time, opts ...xrotate.Option) (xrotate.Rotator, error)

func newFileSink(path string, mode xrotate.Mode, maxSize, maxFiles int64, now time.Time, opts ...xrotate.Option) (xrotate.Rotator, error) {
	s, err := xrotate.NewFileSink(path, mode, maxSize, maxFiles, now, opts...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// WithLevel 设置初始最低级别，非法值被忽略
func WithLevel(level Level) Option {
	return func(l *Logger) {
		if level.IsValid() {
			l.minLevel = level
		}
	}
}

// WithFormat 设置初始输出格式，非法值被忽略
func WithFormat(format Format) Option {
	return func(l *Logger) {
		if format.IsValid() {
			l.format = format
		}
	}
}

// WithStdout 替换标准输出目标（默认 os.Stdout），nil 被忽略
//
// 目标若实现 Flush() error，Logger.Flush 时会调用它。
func WithStdout(w io.Writer) Option {
	return func(l *Logger) {
		if w != nil {
			l.stdout = w
		}
	}
}

// WithStdoutEnabled 设置是否输出到标准输出，默认开启
func WithStdoutEnabled(enable bool) Option {
	return func(l *Logger) {
		l.stdoutOn = enable
	}
}

// WithClock 设置时钟（默认 time.Now），用于时间戳和轮转判定
//
// 时间戳按返回值自身的时区格式化。
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithRecorder 设置计量接口，默认 xmetrics.NoopRecorder
func WithRecorder(r xmetrics.Recorder) Option {
	return func(l *Logger) {
		if r != nil {
			l.recorder = r
		}
	}
}

// WithOnError 设置内部错误回调
//
// 写入失败、轮转失败等不会返回给调用方的错误通过它上报。
// 回调在 Logger 锁外执行，可以安全地再调用 Logger 的方法。
func WithOnError(fn func(error)) Option {
	return func(l *Logger) {
		l.onError = fn
	}
}

// WithSinkOptions 设置创建文件输出时使用的 xrotate 选项
func WithSinkOptions(opts ...xrotate.Option) Option {
	return func(l *Logger) {
		l.sinkOpts = append(l.sinkOpts, opts...)
	}
}
