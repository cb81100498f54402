package xrotate

import (
	"fmt"
	"os"
)

// 默认配置值
const (
	// DefaultFileMode 新建日志文件的权限
	DefaultFileMode os.FileMode = 0644

	// DefaultMaxPathLen 默认路径长度上限（字节），超过时返回 ErrPathTooLong 而不是截断
	DefaultMaxPathLen = 1024
)

type sinkConfig struct {
	fileMode   os.FileMode
	createDir  bool
	maxPathLen int
}

// Option FileSink 配置选项函数
type Option func(*sinkConfig)

func defaultSinkConfig() sinkConfig {
	return sinkConfig{
		fileMode:   DefaultFileMode,
		maxPathLen: DefaultMaxPathLen,
	}
}

// WithFileMode 设置新建日志文件的权限，仅允许权限位（0000~0777），0 表示使用默认值
func WithFileMode(mode os.FileMode) Option {
	return func(c *sinkConfig) {
		c.fileMode = mode
	}
}

// WithCreateDir 打开文件前是否自动创建父目录（权限 0750）
//
// 默认关闭：父目录不存在时创建 sink 返回 ErrOpenFailed。
func WithCreateDir(enable bool) Option {
	return func(c *sinkConfig) {
		c.createDir = enable
	}
}

// WithMaxPathLen 设置 basePath 的长度上限，n <= 0 表示不限制
func WithMaxPathLen(n int) Option {
	return func(c *sinkConfig) {
		c.maxPathLen = n
	}
}

func (c *sinkConfig) validate() error {
	if c.fileMode == 0 {
		c.fileMode = DefaultFileMode
	}
	if c.fileMode&^os.FileMode(0o777) != 0 {
		return fmt.Errorf("%w: got %04o, only permission bits (0000~0777) allowed",
			ErrInvalidFileMode, c.fileMode)
	}
	return nil
}
