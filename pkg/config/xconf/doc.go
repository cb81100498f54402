// Package xconf 基于 koanf 的日志配置加载。
//
// # 加载
//
// [Load] 按扩展名识别 YAML/JSON 文件，[Parse] 从字节数据加载（如 K8s ConfigMap）。
// 日志配置默认位于 "log" 键下，可用 [WithKey] 修改：
//
//	src, err := xconf.Load("/etc/app/log.yaml")
//	cfg, err := src.Logger()
//	logger, err := xconf.Build(cfg, xlog.WithOnError(report))
//
// # 热更新
//
// [Watch] 用 fsnotify 监视配置文件所在目录，防抖后重载并回调。
// 回调中可调用 [ApplyRuntime] 更新级别、格式和 stdout 开关；文件输出列表不热更新。
package xconf
