package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// containsNullByte 检测路径是否包含空字节。
func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// SanitizePath 校验并规范化日志文件路径
//
// 只拒绝操作系统无法正确表达的路径：
//   - 空路径返回 [ErrEmptyPath]
//   - 包含空字节返回 [ErrNullByte]
//
// 其余路径经 filepath.Clean 规范化后原样返回，包括含 ".." 的相对路径
// （"../app.log"）。以分隔符结尾的路径保留结尾分隔符，交给打开文件时失败。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}

	if containsNullByte(filename) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}

	cleaned := filepath.Clean(filename)
	// Clean 会去掉结尾分隔符，目录路径需要保持原样
	if strings.HasSuffix(filename, "/") && !strings.HasSuffix(cleaned, "/") {
		cleaned += "/"
	}
	return cleaned, nil
}
