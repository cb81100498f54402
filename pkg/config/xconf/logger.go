package xconf

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/omeyang/qdlog/pkg/observability/xlog"
	"github.com/omeyang/qdlog/pkg/observability/xrotate"
)

// LoggerConfig 日志配置
//
// 示例（YAML）：
//
//	log:
//	  level: info
//	  format: json
//	  stdout: true
//	  create_dir: true
//	  file_mode: "0640"
//	  rotate_schedule: "@every 1m"
//	  files:
//	    - path: /var/log/app.log
//	      rotate: size
//	      max_size: 10485760
//	      max_files: 5
//	    - path: /var/log/app-daily.log
//	      rotate: daily
type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	// Stdout 未设置时视为 true
	Stdout *bool `koanf:"stdout"`

	// CreateDir 打开文件前自动创建父目录
	CreateDir bool `koanf:"create_dir"`
	// FileMode 新建日志文件权限（八进制字符串，如 "0640"），空表示默认 0644
	FileMode string `koanf:"file_mode"`
	// MaxPathLen 文件路径长度上限，0 表示默认值 1024，负数表示不限制
	MaxPathLen int `koanf:"max_path_len"`

	// RotateSchedule 定时执行 CheckRotate 的 cron 表达式，空表示只在写入时检查
	RotateSchedule string `koanf:"rotate_schedule"`

	Files []FileConfig `koanf:"files"`
}

// FileConfig 单个文件输出配置
type FileConfig struct {
	Path     string `koanf:"path"`
	Rotate   string `koanf:"rotate"`
	MaxSize  int64  `koanf:"max_size"`
	MaxFiles int64  `koanf:"max_files"`
}

// DefaultLoggerConfig 返回默认配置：info 级别、text 格式、输出到 stdout、没有文件。
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  "info",
		Format: "text",
	}
}

// StdoutEnabled 返回是否输出到 stdout。
func (c LoggerConfig) StdoutEnabled() bool {
	return c.Stdout == nil || *c.Stdout
}

// Validate 校验配置，返回的错误都包装 ErrInvalidConfig。
func (c LoggerConfig) Validate() error {
	var errs []error
	if _, err := xlog.ParseLevel(c.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := xlog.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.fileMode(); err != nil {
		errs = append(errs, err)
	}
	if len(c.Files) > xlog.MaxFileSinks {
		errs = append(errs, fmt.Errorf("%d files configured, at most %d", len(c.Files), xlog.MaxFileSinks))
	}
	for i, f := range c.Files {
		if strings.TrimSpace(f.Path) == "" {
			errs = append(errs, fmt.Errorf("files[%d]: empty path", i))
		}
		if _, err := xrotate.ParseMode(f.Rotate); err != nil {
			errs = append(errs, fmt.Errorf("files[%d]: %w", i, err))
		}
		if f.MaxSize < 0 {
			errs = append(errs, fmt.Errorf("files[%d]: negative max_size %d", i, f.MaxSize))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (c LoggerConfig) fileMode() (os.FileMode, error) {
	if c.FileMode == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(c.FileMode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("file_mode %q: %w", c.FileMode, err)
	}
	return os.FileMode(v), nil
}

// SinkOptions 返回创建文件输出使用的 xrotate 选项。
func (c LoggerConfig) SinkOptions() []xrotate.Option {
	opts := []xrotate.Option{xrotate.WithCreateDir(c.CreateDir)}
	if mode, err := c.fileMode(); err == nil && mode != 0 {
		opts = append(opts, xrotate.WithFileMode(mode))
	}
	if c.MaxPathLen != 0 {
		opts = append(opts, xrotate.WithMaxPathLen(c.MaxPathLen))
	}
	return opts
}

// Build 按配置创建 Logger 并添加全部文件输出
//
// opts 追加在配置之后，可覆盖时钟、Recorder、OnError 等。
// 任一文件输出创建失败时关闭已创建的部分并返回错误，错误可用 xlog.CodeOf 转换。
func Build(cfg LoggerConfig, opts ...xlog.Option) (*xlog.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := xlog.ParseLevel(cfg.Level)
	format, _ := xlog.ParseFormat(cfg.Format)

	base := []xlog.Option{
		xlog.WithLevel(level),
		xlog.WithFormat(format),
		xlog.WithStdoutEnabled(cfg.StdoutEnabled()),
		xlog.WithSinkOptions(cfg.SinkOptions()...),
	}
	logger := xlog.New(append(base, opts...)...)

	for _, f := range cfg.Files {
		mode, _ := xrotate.ParseMode(f.Rotate)
		if err := logger.AddFileRotate(f.Path, mode, f.MaxSize, f.MaxFiles); err != nil {
			return nil, errors.Join(err, logger.Close())
		}
	}
	return logger, nil
}

// ApplyRuntime 将可热更新的设置（级别、格式、stdout 开关）应用到已有 Logger
//
// 文件输出列表不会热更新，修改 files 需要重建 Logger。
func ApplyRuntime(logger *xlog.Logger, cfg LoggerConfig) error {
	level, err := xlog.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	format, err := xlog.ParseFormat(cfg.Format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := logger.SetLevel(level); err != nil {
		return err
	}
	if err := logger.SetFormat(format); err != nil {
		return err
	}
	if cfg.StdoutEnabled() {
		logger.EnableStdout()
	} else {
		logger.DisableStdout()
	}
	return nil
}
