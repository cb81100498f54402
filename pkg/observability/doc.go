// Package observability 提供日志输出相关的子包。
//
// 子包列表：
//   - xlog: 分级日志，TEXT/JSON 两种行格式，输出到 stdout 和最多 8 个文件
//   - xrotate: 日志文件输出与轮转策略（size/daily/hourly）
//   - xmetrics: 日志写入和轮转的指标记录，基于 OpenTelemetry
//
// 依赖方向：xlog → xrotate、xmetrics；xrotate 和 xmetrics 互不依赖。
package observability
