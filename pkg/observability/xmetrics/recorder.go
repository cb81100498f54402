package xmetrics

import "context"

// 丢弃原因
const (
	// ReasonDegraded 文件 sink 处于降级状态
	ReasonDegraded = "degraded"
	// ReasonWriteError 底层写入失败
	ReasonWriteError = "write_error"
	// ReasonClosed 输出已关闭
	ReasonClosed = "closed"
)

// 输出类型
const (
	// SinkStdout 标准输出
	SinkStdout = "stdout"
	// SinkFile 文件 sink
	SinkFile = "file"
)

// 轮转结果状态
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Recorder 日志管线计量接口
type Recorder interface {
	// RecordEmitted 记录一条通过级别过滤的记录
	RecordEmitted(ctx context.Context, level string)

	// RecordDropped 记录某个输出丢弃了一次写入
	RecordDropped(ctx context.Context, sink, reason string)

	// RecordRotation 记录一次文件轮转，err 非 nil 表示轮转中有步骤失败
	RecordRotation(ctx context.Context, mode string, err error)
}

// NoopRecorder 是空实现。
type NoopRecorder struct{}

// RecordEmitted 空实现。
func (NoopRecorder) RecordEmitted(context.Context, string) {}

// RecordDropped 空实现。
func (NoopRecorder) RecordDropped(context.Context, string, string) {}

// RecordRotation 空实现。
func (NoopRecorder) RecordRotation(context.Context, string, error) {}

// StatusOf 根据错误推导状态。
func StatusOf(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}
