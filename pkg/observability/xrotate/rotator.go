package xrotate

import (
	"io"
	"time"
)

// 编译时断言：Rotator 接口是 io.WriteCloser 的超集
var _ io.WriteCloser = (Rotator)(nil)

// Rotator 可轮转的日志输出
//
// xlog.Logger 只依赖此接口。所有实现都必须是并发安全的，且：
//   - Close 可重复调用
//   - Close 后 Write 返回 [ErrClosed]
//   - 降级状态下 Write 返回 [ErrDegraded] 且不写入任何数据
type Rotator interface {
	// Write 写入一条已格式化的记录
	Write(p []byte) (n int, err error)

	// Close 同步并关闭底层文件
	Close() error

	// Flush 将已写入的数据同步到稳定存储
	Flush() error

	// CheckAndRotate 按轮转策略判定并在到期时轮转，返回是否执行了轮转
	CheckAndRotate(now time.Time) (bool, error)

	// Rotate 无条件轮转
	Rotate(now time.Time) error

	// Status 返回状态快照
	Status() Status
}
