package xlog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level 日志级别
//
// 数值固定：Debug(0) < Info(1) < Warn(2) < Error(3) < Off(4)。
// Off 只用作 Logger 的最低级别，表示关闭全部输出。
type Level int

// 日志级别常量
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

// String 返回大写级别名（DEBUG/INFO/WARN/ERROR/OFF），未知值返回 "Level(n)"
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// lowerName JSON 输出中的级别名
func (l Level) lowerName() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "off"
	}
}

// IsValid 是否为可作为 Logger 最低级别的值（Debug..Off）
func (l Level) IsValid() bool {
	return l >= LevelDebug && l <= LevelOff
}

// isRecordLevel 记录自身的级别只能是 Debug..Error
func (l Level) isRecordLevel() bool {
	return l >= LevelDebug && l <= LevelError
}

// MarshalText 实现 encoding.TextMarshaler 接口
func (l Level) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("%w: level %d", ErrInvalidArgument, int(l))
	}
	return []byte(strings.ToLower(l.String())), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口
//
// 支持从配置文件直接反序列化日志级别。
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel 解析字符串为日志级别
// 支持 debug/info/warn/warning/error/off（大小写不敏感，自动 TrimSpace）
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "off", "none":
		return LevelOff, nil
	default:
		return LevelInfo, fmt.Errorf("%w: unknown level %q", ErrInvalidArgument, s)
	}
}

// SlogLevel 转换为 slog.Level
//
// LevelOff 映射为比 slog.LevelError 更高的值，任何 slog 记录都达不到。
func (l Level) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

// LevelFromSlog 将 slog.Level 归入最接近的级别（向下取整）
//
// 低于 Info 的都视为 Debug，高于 Error 的都视为 Error。
func LevelFromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelInfo:
		return LevelDebug
	case l < slog.LevelWarn:
		return LevelInfo
	case l < slog.LevelError:
		return LevelWarn
	default:
		return LevelError
	}
}

// Format 输出格式，对 Logger 的所有输出全局生效
type Format int

// 输出格式常量
const (
	FormatText Format = iota
	FormatJSON
)

// String 返回 "text"/"json"，未知值返回 "Format(n)"
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// IsValid 是否为已知格式
func (f Format) IsValid() bool {
	return f == FormatText || f == FormatJSON
}

// MarshalText 实现 encoding.TextMarshaler 接口
func (f Format) MarshalText() ([]byte, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("%w: format %d", ErrInvalidArgument, int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口
func (f *Format) UnmarshalText(data []byte) error {
	parsed, err := ParseFormat(string(data))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFormat 解析输出格式：text 或 json，空字符串视为 text
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("%w: unknown format %q", ErrInvalidArgument, s)
	}
}
