// Package xlog 结构化日志核心：级别过滤、TEXT/JSON 单行格式、stdout 与文件扇出。
//
// # 创建 Logger
//
// [New] 接受函数式选项，默认 Info 级别、text 格式、输出到 os.Stdout、没有文件输出：
//
//	logger := xlog.New(xlog.WithOnError(func(err error) { ... }))
//	defer logger.Close()
//
//	if err := logger.AddFileRotate("/var/log/app.log", xrotate.ModeSize, 10<<20, 5); err != nil {
//	    os.Exit(int(xlog.CodeOf(err)))
//	}
//	logger.Warn("disk low", xlog.String("disk", "/dev/sda1"), xlog.String("pct", "95"))
//
// # 日志级别
//
// LevelDebug(0)、LevelInfo(1)、LevelWarn(2)、LevelError(3)、LevelOff(4)。
// 记录级别不低于 Logger 最低级别时输出；最低级别为 LevelOff 时不输出任何记录。
// [ParseLevel] 大小写不敏感，Level 实现 encoding.TextMarshaler/TextUnmarshaler。
//
// # 输出格式
//
// text：
//
//	2025-01-15T10:30:00 [WARN ] disk low disk=/dev/sda1 pct=95
//
// json：
//
//	{"time":"2025-01-15T10:30:00","level":"warn","msg":"disk low","disk":"/dev/sda1","pct":"95"}
//
// 时间戳精确到秒，按时钟返回值的时区输出，不带时区后缀。text 格式的字段原样拼接；
// json 格式只转义引号、反斜杠和 0x20 以下的控制字节，其它字节原样输出。
// 字段按传入顺序输出，Key 为空的字段被跳过。
//
// # 文件输出与轮转
//
// 每个 Logger 最多 [MaxFileSinks] 个文件输出，由 xrotate.FileSink 实现。
// 每条记录写入前先执行 [Logger.CheckRotate]；也可以由外部定时调用（见 xcron）。
// 单个输出写入或轮转失败不会返回给调用方，通过 [WithOnError] 与 xmetrics.Recorder 上报。
//
// # 错误码
//
// [CodeOf] 把 AddFile/AddFileRotate 返回的错误映射为稳定的数值错误码，
// 供命令行工具作为退出码使用。
//
// # slog 桥接
//
// [NewHandler] 把 Logger 包装为 slog.Handler，自动附加 OpenTelemetry trace_id/span_id。
package xlog
