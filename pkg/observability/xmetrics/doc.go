// Package xmetrics 定义日志管线的计量接口。
//
// # 设计理念
//
// xlog 只依赖最小化的 [Recorder] 接口，默认使用 [NoopRecorder]；
// [NewOTelRecorder] 提供基于 OpenTelemetry metric API 的实现。
//
// Recorder 的调用发生在日志写入热路径上，实现必须轻量且不得回写同一个 Logger
// （否则会产生递归写入）。
//
// # 使用示例
//
//	rec, err := xmetrics.NewOTelRecorder(xmetrics.WithMeterProvider(mp))
//	if err != nil {
//		return err
//	}
//	logger := xlog.New(xlog.WithRecorder(rec))
//
// # 指标命名
//
//   - xlog.records.emitted（属性 level）：通过级别过滤并分发的记录数
//   - xlog.writes.dropped（属性 sink / reason）：单个输出丢弃的写入数
//   - xlog.rotations（属性 mode / status）：文件轮转次数
package xmetrics
