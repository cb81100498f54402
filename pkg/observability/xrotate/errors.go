package xrotate

import "errors"

// 配置校验错误
var (
	// ErrEmptyFilename 文件名为空
	ErrEmptyFilename = errors.New("xrotate: filename is required")

	// ErrInvalidFilename 文件名格式无效（如包含空字节）
	ErrInvalidFilename = errors.New("xrotate: invalid filename")

	// ErrInvalidMode 轮转模式无效
	ErrInvalidMode = errors.New("xrotate: invalid rotation mode")

	// ErrPathTooLong 路径长度超过 WithMaxPathLen 设置的上限
	ErrPathTooLong = errors.New("xrotate: path too long")

	// ErrInvalidFileMode FileMode 包含非权限位（仅允许低 9 位 0000~0777）
	ErrInvalidFileMode = errors.New("xrotate: invalid FileMode")
)

// 运行期错误
var (
	// ErrOpenFailed 打开（或轮转后重新打开）日志文件失败
	ErrOpenFailed = errors.New("xrotate: open log file failed")

	// ErrDegraded sink 处于降级状态（轮转后重新打开失败），写入被丢弃
	ErrDegraded = errors.New("xrotate: sink degraded, write dropped")

	// ErrClosed sink 已关闭
	ErrClosed = errors.New("xrotate: sink is closed")
)
