// Package xfile 提供日志文件路径校验和尽力而为的文件操作工具。
//
// # 路径校验
//
// [SanitizePath] 只拒绝空路径和含空字节的路径，其余路径（包括 "../app.log"
// 这样的相对路径）规范化后交给 os.OpenFile，能否打开由操作系统决定。
//
// # 目录准备
//
// [EnsureDir] 在打开日志文件前创建父目录（默认权限 0750）。
//
// # 轮转辅助
//
// 轮转备份的移动是尽力而为的：源文件不存在时跳过，而不是失败。
//
//   - [RemoveIfExists]: 删除文件，文件不存在视为成功
//   - [RenameIfExists]: 重命名文件，源文件不存在时返回 false
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断：
//
//	_, err := xfile.SanitizePath("app\x00.log")
//	if errors.Is(err, xfile.ErrNullByte) {
//	    // 处理非法路径
//	}
package xfile
