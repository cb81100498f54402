package xlog

import (
	"errors"
	"fmt"

	"github.com/omeyang/qdlog/pkg/observability/xrotate"
)

// 参数错误，均包装 ErrInvalidArgument
var (
	// ErrInvalidArgument 参数错误的根错误
	ErrInvalidArgument = errors.New("xlog: invalid argument")

	// ErrClosed Logger 已关闭
	ErrClosed = fmt.Errorf("%w: logger closed", ErrInvalidArgument)

	// ErrTooManyFiles 文件输出已达上限 MaxFileSinks
	ErrTooManyFiles = fmt.Errorf("%w: too many file sinks", ErrInvalidArgument)

	// ErrEmptyPath 文件路径为空
	ErrEmptyPath = fmt.Errorf("%w: empty path", ErrInvalidArgument)

	// ErrInvalidMode 轮转模式不合法
	ErrInvalidMode = fmt.Errorf("%w: invalid rotation mode", ErrInvalidArgument)
)

// ErrorCode 与外部调用约定一致的数值错误码
type ErrorCode int

// 错误码常量，数值固定
const (
	CodeOK              ErrorCode = 0
	CodeAllocFailed     ErrorCode = 2 // 保留编号，Go 中内存分配不会以错误返回
	CodeFileError       ErrorCode = 3
	CodeInvalidArgument ErrorCode = 4
)

// String 返回错误码名称
func (c ErrorCode) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeAllocFailed:
		return "alloc_failed"
	case CodeFileError:
		return "file_error"
	case CodeInvalidArgument:
		return "invalid_argument"
	default:
		return "unknown"
	}
}

// CodeOf 将 Logger 返回的错误映射为错误码
//
// nil → CodeOK；参数类错误 → CodeInvalidArgument；其余（文件打开失败、IO 错误）→ CodeFileError。
func CodeOf(err error) ErrorCode {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, xrotate.ErrEmptyFilename),
		errors.Is(err, xrotate.ErrInvalidFilename),
		errors.Is(err, xrotate.ErrInvalidMode),
		errors.Is(err, xrotate.ErrPathTooLong),
		errors.Is(err, xrotate.ErrInvalidFileMode):
		return CodeInvalidArgument
	default:
		return CodeFileError
	}
}
