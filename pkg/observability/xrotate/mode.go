package xrotate

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode 轮转模式，创建 sink 时确定，之后不可变
type Mode int

// 轮转模式常量，数值与外部调用约定保持一致
const (
	ModeNone   Mode = 0
	ModeSize   Mode = 1
	ModeDaily  Mode = 2
	ModeHourly Mode = 3
)

// String 返回小写模式名；未知值返回 "Mode(n)"
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeSize:
		return "size"
	case ModeDaily:
		return "daily"
	case ModeHourly:
		return "hourly"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// IsValid 检查是否为已定义的模式
func (m Mode) IsValid() bool {
	return m >= ModeNone && m <= ModeHourly
}

// IsCalendar 是否为按日历切换文件的模式（daily/hourly）
func (m Mode) IsCalendar() bool {
	return m == ModeDaily || m == ModeHourly
}

// MarshalText 实现 encoding.TextMarshaler 接口
func (m Mode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口
func (m *Mode) UnmarshalText(data []byte) error {
	parsed, err := ParseMode(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode 解析轮转模式（大小写不敏感，自动 TrimSpace）
// 空字符串视为 none。
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ModeNone, nil
	case "size":
		return ModeSize, nil
	case "daily", "day":
		return ModeDaily, nil
	case "hourly", "hour":
		return ModeHourly, nil
	default:
		return ModeNone, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}
