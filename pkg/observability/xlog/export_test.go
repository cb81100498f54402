package xlog

import (
	"time"

	"github.com/omeyang/qdlog/pkg/observability/xrotate"
)

// WithSinkFactoryForTest 替换文件输出的构造函数（仅用于测试注入 mock Rotator）
func WithSinkFactoryForTest(fn func(path string, mode xrotate.Mode, maxSize, maxFiles int64, now time.Time, opts ...xrotate.Option) (xrotate.Rotator, error)) Option {
	return func(l *Logger) {
		l.newSink = fn
	}
}

// AppendJSONStringForTest 暴露 JSON 字符串转义
func AppendJSONStringForTest(dst []byte, s string) []byte {
	return appendJSONString(dst, s)
}
