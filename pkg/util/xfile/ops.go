package xfile

import (
	"errors"
	"io/fs"
	"os"
)

// RemoveIfExists 删除文件，文件不存在视为成功。
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// RenameIfExists 将 oldPath 重命名为 newPath。
//
// 源文件不存在时返回 (false, nil)；目标已存在时被覆盖（与 rename(2) 一致）。
func RenameIfExists(oldPath, newPath string) (bool, error) {
	err := os.Rename(oldPath, newPath)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
