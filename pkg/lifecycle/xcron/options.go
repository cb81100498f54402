package xcron

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// 标准 5 字段解析器（分 时 日 月 周）加描述符（@every、@daily 等）
var standardParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type options struct {
	logger   *slog.Logger
	location *time.Location
	parser   cron.Parser
}

// Option 调度器配置选项
type Option func(*options)

func defaultOptions() *options {
	return &options{
		logger:   slog.Default(),
		location: time.Local,
		parser:   standardParser,
	}
}

// WithLogger 设置调度器自身的日志，nil 被忽略
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLocation 设置 cron 表达式的时区，默认本地时区
//
// 按日轮转的文件名使用 Logger 时钟的时区，两者应保持一致。
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithSeconds 启用秒级精度（6 字段表达式）
func WithSeconds() Option {
	return func(o *options) {
		o.parser = cron.NewParser(
			cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
		)
	}
}
