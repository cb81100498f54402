package xlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/omeyang/qdlog/pkg/observability/xmetrics"
	"github.com/omeyang/qdlog/pkg/observability/xrotate"
)

// MaxFileSinks 单个 Logger 最多持有的文件输出数
const MaxFileSinks = 8

// flusher 带用户态缓冲的 stdout 目标
type flusher interface {
	Flush() error
}

// fileSlot 一个文件输出及其不可变属性
type fileSlot struct {
	path string
	mode xrotate.Mode
	sink xrotate.Rotator
}

// Logger 按级别过滤记录，格式化后依次写入 stdout 和全部文件输出
//
// 零值不可用，使用 [New] 创建。所有方法并发安全；
// 文件输出归 Logger 所有，随 [Logger.Close] 一起关闭。
type Logger struct {
	mu       sync.Mutex
	minLevel Level
	format   Format
	stdoutOn bool
	stdout   io.Writer
	files    []fileSlot
	closed   bool

	now      func() time.Time
	recorder xmetrics.Recorder
	onError  func(error)
	sinkOpts []xrotate.Option
	newSink  sinkFactory
}

// New 创建 Logger
//
// 默认：LevelInfo、FormatText、输出到 os.Stdout、没有文件输出。
func New(opts ...Option) *Logger {
	l := &Logger{
		minLevel: LevelInfo,
		format:   FormatText,
		stdoutOn: true,
		stdout:   os.Stdout,
		files:    make([]fileSlot, 0, MaxFileSinks),
		now:      time.Now,
		recorder: xmetrics.NoopRecorder{},
		newSink:  newFileSink,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// SetLevel 设置最低级别，LevelOff 关闭全部输出
func (l *Logger) SetLevel(level Level) error {
	if !level.IsValid() {
		return fmt.Errorf("%w: level %d", ErrInvalidArgument, int(level))
	}
	l.mu.Lock()
	l.minLevel = level
	l.mu.Unlock()
	return nil
}

// GetLevel 返回当前最低级别
func (l *Logger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.minLevel
}

// Enabled 该级别的记录当前是否会输出
func (l *Logger) Enabled(level Level) bool {
	if !level.isRecordLevel() {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.closed && level >= l.minLevel
}

// SetFormat 设置输出格式，对所有输出生效
func (l *Logger) SetFormat(format Format) error {
	if !format.IsValid() {
		return fmt.Errorf("%w: format %d", ErrInvalidArgument, int(format))
	}
	l.mu.Lock()
	l.format = format
	l.mu.Unlock()
	return nil
}

// GetFormat 返回当前输出格式
func (l *Logger) GetFormat() Format {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.format
}

// EnableStdout 开启标准输出
func (l *Logger) EnableStdout() {
	l.mu.Lock()
	l.stdoutOn = true
	l.mu.Unlock()
}

// DisableStdout 关闭标准输出，文件输出不受影响
func (l *Logger) DisableStdout() {
	l.mu.Lock()
	l.stdoutOn = false
	l.mu.Unlock()
}

// StdoutEnabled 标准输出是否开启
func (l *Logger) StdoutEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stdoutOn
}

// AddFile 添加一个不轮转的文件输出
func (l *Logger) AddFile(path string) error {
	return l.AddFileRotate(path, xrotate.ModeNone, 0, 0)
}

// AddFileRotate 添加一个带轮转策略的文件输出
//
// maxSize/maxFiles 只对 ModeSize 有意义；maxFiles <= 0 表示不限制备份数。
// 输出按添加顺序写入。错误可用 [CodeOf] 转换为错误码。
func (l *Logger) AddFileRotate(path string, mode xrotate.Mode, maxSize, maxFiles int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case l.closed:
		return ErrClosed
	case len(l.files) >= MaxFileSinks:
		return ErrTooManyFiles
	case path == "":
		return ErrEmptyPath
	case !mode.IsValid():
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}

	sink, err := l.newSink(path, mode, maxSize, maxFiles, l.now(), l.sinkOpts...)
	if err != nil {
		return fmt.Errorf("xlog: add file %s: %w", path, err)
	}
	l.files = append(l.files, fileSlot{path: path, mode: mode, sink: sink})
	return nil
}

// CheckRotate 对每个文件输出判定并执行到期的轮转
//
// 每个输出每次调用最多轮转一次，连续两次调用时第二次是空操作。
// 轮转失败不返回，通过 OnError 和 Recorder 上报。
func (l *Logger) CheckRotate() {
	l.mu.Lock()
	errs := l.checkRotateLocked(l.now())
	l.mu.Unlock()
	l.reportErrors(errs)
}

// Rotate 无条件轮转全部文件输出
//
// 用于配合外部日志归档工具，也是按大小轮转的降级输出的恢复途径。
func (l *Logger) Rotate() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}

	now := l.now()
	var errs []error
	for _, f := range l.files {
		err := f.sink.Rotate(now)
		l.recorder.RecordRotation(context.Background(), f.mode.String(), err)
		if err != nil {
			errs = append(errs, fmt.Errorf("xlog: rotate %s: %w", f.path, err))
		}
	}
	return errors.Join(errs...)
}

func (l *Logger) checkRotateLocked(now time.Time) []error {
	if l.closed {
		return nil
	}
	var errs []error
	for _, f := range l.files {
		rotated, err := f.sink.CheckAndRotate(now)
		if !rotated {
			continue
		}
		l.recorder.RecordRotation(context.Background(), f.mode.String(), err)
		if err != nil {
			errs = append(errs, fmt.Errorf("xlog: rotate %s: %w", f.path, err))
		}
	}
	return errs
}

// Log 输出一条不带字段的记录
func (l *Logger) Log(level Level, msg string) {
	l.LogWithFields(level, msg, nil)
}

// LogWithFields 输出一条带字段的记录
//
// 依次：级别过滤、轮转检查、写 stdout、按添加顺序写每个文件输出。
// 记录只格式化一次；Key 为空的字段被跳过。
// 单个输出的失败不影响其它输出，也不返回给调用方。
func (l *Logger) LogWithFields(level Level, msg string, fields []Field) {
	if !level.isRecordLevel() {
		return
	}
	l.reportErrors(l.emit(level, msg, fields))
}

// Debug 输出 DEBUG 级别记录
func (l *Logger) Debug(msg string, fields ...Field) {
	l.LogWithFields(LevelDebug, msg, fields)
}

// Info 输出 INFO 级别记录
func (l *Logger) Info(msg string, fields ...Field) {
	l.LogWithFields(LevelInfo, msg, fields)
}

// Warn 输出 WARN 级别记录
func (l *Logger) Warn(msg string, fields ...Field) {
	l.LogWithFields(LevelWarn, msg, fields)
}

// Error 输出 ERROR 级别记录
func (l *Logger) Error(msg string, fields ...Field) {
	l.LogWithFields(LevelError, msg, fields)
}

func (l *Logger) emit(level Level, msg string, fields []Field) []error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || level < l.minLevel {
		return nil
	}

	now := l.now()
	errs := l.checkRotateLocked(now)

	buf := renderPooled(l.format, level, msg, fields, now)
	defer recordPool.Put(buf)

	ctx := context.Background()
	l.recorder.RecordEmitted(ctx, level.lowerName())

	if l.stdoutOn {
		if _, err := l.stdout.Write(buf.B); err != nil {
			l.recorder.RecordDropped(ctx, xmetrics.SinkStdout, xmetrics.ReasonWriteError)
			errs = append(errs, fmt.Errorf("xlog: write stdout: %w", err))
		}
	}

	for _, f := range l.files {
		if _, err := f.sink.Write(buf.B); err != nil {
			l.recorder.RecordDropped(ctx, xmetrics.SinkFile, dropReason(err))
			errs = append(errs, fmt.Errorf("xlog: write %s: %w", f.path, err))
		}
	}
	return errs
}

func dropReason(err error) string {
	switch {
	case errors.Is(err, xrotate.ErrDegraded):
		return xmetrics.ReasonDegraded
	case errors.Is(err, xrotate.ErrClosed):
		return xmetrics.ReasonClosed
	default:
		return xmetrics.ReasonWriteError
	}
}

func (l *Logger) reportErrors(errs []error) {
	if l.onError == nil {
		return
	}
	for _, err := range errs {
		l.onError(err)
	}
}

// Flush 刷新 stdout（若目标实现 Flush）和全部文件输出
func (l *Logger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	return l.flushLocked()
}

func (l *Logger) flushLocked() error {
	var errs []error
	if f, ok := l.stdout.(flusher); ok && l.stdoutOn {
		if err := f.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("xlog: flush stdout: %w", err))
		}
	}
	for _, f := range l.files {
		if err := f.sink.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("xlog: flush %s: %w", f.path, err))
		}
	}
	return errors.Join(errs...)
}

// Close 刷新并关闭全部文件输出，可重复调用
//
// 关闭后的日志调用是空操作，AddFile 返回 ErrClosed。
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true

	errs := []error{l.flushLocked()}
	for _, f := range l.files {
		if err := f.sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("xlog: close %s: %w", f.path, err))
		}
	}
	l.files = nil
	return errors.Join(errs...)
}

// Files 返回各文件输出的状态快照，顺序与添加顺序一致
func (l *Logger) Files() []xrotate.Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]xrotate.Status, 0, len(l.files))
	for _, f := range l.files {
		out = append(out, f.sink.Status())
	}
	return out
}
