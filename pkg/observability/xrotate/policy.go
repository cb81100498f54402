package xrotate

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/omeyang/qdlog/pkg/util/xfile"
)

const (
	// dailyLayout 按日轮转的文件名后缀
	dailyLayout = "20060102"
	// hourlyLayout 按小时轮转的文件名后缀
	hourlyLayout = "2006010215"
	// unboundedShiftFrom maxFiles <= 0 时备份平移的起始序号
	unboundedShiftFrom = 99
)

// ActivePath 计算指定模式下当前应写入的文件路径
//
// none/size 模式返回 base 本身；daily 返回 base.YYYYMMDD；hourly 返回 base.YYYYMMDDHH。
// 创建 sink 和轮转使用同一规则，因此按日历轮转的 sink 从创建起就写入带时间戳的文件。
func ActivePath(base string, mode Mode, now time.Time) string {
	switch mode {
	case ModeDaily:
		return base + "." + now.Format(dailyLayout)
	case ModeHourly:
		return base + "." + now.Format(hourlyLayout)
	default:
		return base
	}
}

// BackupPath 返回按大小轮转的第 i 个备份路径（base.i）
func BackupPath(base string, i int64) string {
	return base + "." + strconv.FormatInt(i, 10)
}

// shouldRotate 判定是否需要在下一次写入前轮转
func shouldRotate(mode Mode, st *rotateState, maxSize int64, now time.Time) bool {
	switch mode {
	case ModeSize:
		return maxSize > 0 && st.size >= maxSize
	case ModeDaily:
		return now.YearDay() != st.lastDay
	case ModeHourly:
		return now.Hour() != st.lastHour || now.YearDay() != st.lastDay
	default:
		return false
	}
}

// shiftBackups 平移编号备份并把当前文件归档为 base.1
//
// 步骤：
//  1. maxFiles > 0 时删除 base.<maxFiles>（最旧）
//  2. i 从 maxFiles-1（无上限时从 99）递减到 1，base.i -> base.i+1
//  3. base -> base.1
//
// 每一步都是尽力而为：源文件不存在直接跳过；其他失败收集后合并返回，
// 不中断后续步骤，调用方仍会重新打开 base。
func shiftBackups(base string, maxFiles int64) error {
	var errs []error

	if maxFiles > 0 {
		if err := xfile.RemoveIfExists(BackupPath(base, maxFiles)); err != nil {
			errs = append(errs, fmt.Errorf("xrotate: remove oldest backup: %w", err))
		}
	}

	from := int64(unboundedShiftFrom)
	if maxFiles > 0 {
		from = maxFiles - 1
	}
	for i := from; i >= 1; i-- {
		if _, err := xfile.RenameIfExists(BackupPath(base, i), BackupPath(base, i+1)); err != nil {
			errs = append(errs, fmt.Errorf("xrotate: shift backup %d: %w", i, err))
		}
	}

	if _, err := xfile.RenameIfExists(base, BackupPath(base, 1)); err != nil {
		errs = append(errs, fmt.Errorf("xrotate: archive current file: %w", err))
	}

	return errors.Join(errs...)
}
