package xrotate

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/omeyang/qdlog/pkg/util/xfile"
)

// 编译时接口检查
var _ Rotator = (*FileSink)(nil)

// rotateState 轮转簿记
type rotateState struct {
	// size 当前文件字节数：打开时取文件长度，之后累加本进程写入的字节数（非实时 stat）
	size     int64
	lastDay  int // 上次（重新）打开时的年内日序号
	lastHour int // 上次（重新）打开时的小时
}

func (st *rotateState) stamp(now time.Time) {
	st.lastDay = now.YearDay()
	st.lastHour = now.Hour()
}

// Status FileSink 的状态快照
type Status struct {
	BasePath   string
	ActivePath string
	Mode       Mode
	Size       int64
	Degraded   bool
}

// FileSink 单个日志文件输出
//
// 独占一个追加模式的文件句柄。除降级状态外，未关闭的 sink 始终持有一个打开的句柄。
// 方法可并发调用。
type FileSink struct {
	base     string
	mode     Mode
	maxSize  int64
	maxFiles int64
	cfg      sinkConfig

	mu     sync.Mutex
	file   *os.File // nil 表示降级或已关闭
	active string
	state  rotateState
	closed bool
}

// NewFileSink 创建并打开一个文件 sink
//
// 参数：
//   - path: basePath，轮转文件都以它为前缀
//   - mode: 轮转模式
//   - maxSize: size 模式的阈值（字节），<= 0 表示永不按大小轮转
//   - maxFiles: size 模式保留的备份数，<= 0 表示不限制
//   - now: 用于计算初始文件名和轮转时间戳
//
// 初始大小取自磁盘上已有文件的长度，重启后继续累计。
func NewFileSink(path string, mode Mode, maxSize, maxFiles int64, now time.Time, opts ...Option) (*FileSink, error) {
	if path == "" {
		return nil, ErrEmptyFilename
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}

	cfg := defaultSinkConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	safePath, err := xfile.SanitizePath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilename, err)
	}
	if cfg.maxPathLen > 0 && len(safePath) > cfg.maxPathLen {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrPathTooLong, len(safePath), cfg.maxPathLen)
	}
	if cfg.createDir {
		if err := xfile.EnsureDir(safePath); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
		}
	}

	s := &FileSink{
		base:     safePath,
		mode:     mode,
		maxSize:  maxSize,
		maxFiles: maxFiles,
		cfg:      cfg,
	}

	active := ActivePath(safePath, mode, now)
	f, err := s.open(active)
	if err != nil {
		return nil, err
	}

	var size int64
	if info, statErr := f.Stat(); statErr == nil {
		size = info.Size()
	}

	s.file = f
	s.active = active
	s.state.size = size
	s.state.stamp(now)
	return s, nil
}

func (s *FileSink) open(path string) (*os.File, error) {
	//#nosec G304 -- 路径已经过 SanitizePath 校验
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, s.cfg.fileMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}
	return f, nil
}

// ShouldRotate 判定在 now 时刻写入前是否需要轮转
func (s *FileSink) ShouldRotate(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	return shouldRotate(s.mode, &s.state, s.maxSize, now)
}

// CheckAndRotate 到期时执行轮转
//
// 返回是否执行了轮转。成功轮转后判定条件不再成立，紧接着的第二次调用是空操作；
// size 模式重新打开失败时条件保持成立，下一次调用继续重试。
// 返回的错误只描述本次轮转中失败的步骤；即使出错，轮转簿记也已更新。
func (s *FileSink) CheckAndRotate(now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !shouldRotate(s.mode, &s.state, s.maxSize, now) {
		return false, nil
	}
	return true, s.rotateLocked(now)
}

// Rotate 无条件执行一次轮转
//
// none 模式下等价于关闭并重新打开 basePath，可配合外部 logrotate 使用。
func (s *FileSink) Rotate(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.rotateLocked(now)
}

// rotateLocked 关闭当前句柄，按模式归档或切换文件，再重新打开
//
// 时间戳总是更新为 now。重新打开成功时 size 取新文件的实际大小（归档失败时
// 仍是旧文件），失败时进入降级状态。size 模式降级后 size 保持不低于上限，
// 下一次 CheckAndRotate 会直接重试打开，不再移动备份。
func (s *FileSink) rotateLocked(now time.Time) error {
	var errs []error

	wasOpen := s.file != nil
	if wasOpen {
		if err := s.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("xrotate: close %s: %w", s.active, err))
		}
		s.file = nil
	}

	next := s.base
	switch s.mode {
	case ModeSize:
		// 降级状态下 base 已经归档过
		if wasOpen {
			if err := shiftBackups(s.base, s.maxFiles); err != nil {
				errs = append(errs, err)
			}
		}
	case ModeDaily, ModeHourly:
		next = ActivePath(s.base, s.mode, now)
	}

	s.active = next
	s.state.stamp(now)

	f, err := s.open(next)
	if err != nil {
		if s.mode == ModeSize && s.maxSize > 0 {
			s.state.size = max(s.state.size, s.maxSize)
		} else {
			s.state.size = 0
		}
		return errors.Join(append(errs, err)...)
	}

	var size int64
	if info, statErr := f.Stat(); statErr == nil {
		size = info.Size()
	}
	s.file = f
	s.state.size = size

	return errors.Join(errs...)
}

// Write 追加写入，累加当前文件大小
//
// 降级状态返回 (0, ErrDegraded)，关闭后返回 (0, ErrClosed)。
// 写入直接进入 OS（os.File 无用户态缓冲），返回时记录已交给内核。
func (s *FileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	if s.file == nil {
		return 0, ErrDegraded
	}
	n, err := s.file.Write(p)
	s.state.size += int64(n)
	if err != nil {
		return n, fmt.Errorf("xrotate: write %s: %w", s.active, err)
	}
	return n, nil
}

// Flush 将已写入数据同步到稳定存储（fsync）
//
// 降级或已关闭的 sink 是空操作。
func (s *FileSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	return s.file.Sync()
}

// Close 先同步再关闭句柄，可重复调用
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.file == nil {
		return nil
	}
	f := s.file
	s.file = nil
	return errors.Join(f.Sync(), f.Close())
}

// Status 返回状态快照
func (s *FileSink) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		BasePath:   s.base,
		ActivePath: s.active,
		Mode:       s.mode,
		Size:       s.state.size,
		Degraded:   !s.closed && s.file == nil,
	}
}
