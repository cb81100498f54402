// Package xrotate 提供带轮转策略的日志文件输出（FileSink）。
//
// 每个 FileSink 独占一个以追加模式打开的文件句柄，并维护自己的轮转状态：
// 当前文件已写入字节数、上次（重新）打开时的年内日序号和小时。
//
// # 轮转模式
//
//   - [ModeNone]: 不轮转，始终写入 basePath
//   - [ModeSize]: 当前文件大小 >= maxSize 时轮转，备份为 basePath.1 … basePath.N，
//     数字越大越旧；maxFiles > 0 时最旧的 basePath.<maxFiles> 被删除
//   - [ModeDaily]: 跨日时切换到 basePath.YYYYMMDD
//   - [ModeHourly]: 跨小时（或跨日）时切换到 basePath.YYYYMMDDHH
//
// 按大小轮转是"归档旧文件"（滚动窗口），按日历轮转是"切换到新文件"（旧文件保持不动，
// 不做数量限制）。两者只共享判定接口，不共享重命名算法。
//
// # 降级状态
//
// 轮转后重新打开文件失败时，FileSink 进入降级状态：Write 返回 [ErrDegraded]，
// 数据被丢弃，直到下一次成功轮转。按大小轮转的降级 sink 保持轮转条件成立，
// 每次 [FileSink.CheckAndRotate] 都会重试打开 basePath（不再平移备份）；
// 按日历轮转的降级 sink 在下一个边界重试。[FileSink.Rotate] 随时可以强制恢复。
//
// # 时间
//
// FileSink 不读取系统时钟，所有判定都基于调用方传入的 now，便于测试和统一时钟。
// 日历文件名使用 now 自身的时区。
package xrotate
