// Package xcron 基于 [robfig/cron/v3] 的日志维护调度。
//
// 每条记录写入前 Logger 都会检查轮转，但写入稀疏时（例如夜间没有日志），
// 按日/按小时的切换会推迟到下一条记录。Scheduler 在空闲期按 cron 表达式
// 主动调用 CheckRotate，也可以定期 Flush 把数据同步到磁盘。
//
//	s := xcron.New(xcron.WithLogger(slog.Default()))
//	if _, err := s.AddCheckRotate("@every 1m", logger); err != nil {
//	    return err
//	}
//	s.Start()
//	defer s.Stop()
//
// 任务串行执行：上一次未完成时跳过本次（cron.SkipIfStillRunning），
// panic 被恢复并记录（cron.Recover）。
//
// [robfig/cron/v3]: https://github.com/robfig/cron
package xcron
