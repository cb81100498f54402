// Package xrun 基于 [errgroup] + context 的进程生命周期管理。
//
// 多个服务（读取输入、定时轮转、配置监视等）在同一个 [Group] 中运行，
// 任一服务出错或收到终止信号时全部取消：
//
//	err := xrun.Run(ctx,
//	    pipe.Run,
//	    scheduler.Run,
//	    xrun.OnSignal(syscall.SIGHUP, func() { _ = logger.Rotate() }),
//	)
//	if errors.Is(err, xrun.ErrSignal) {
//	    // 正常退出
//	}
//
// 默认终止信号为 SIGINT、SIGTERM、SIGQUIT，可用 [WithSignals] 修改，
// [WithoutSignalHandler] 禁用。
//
// [errgroup]: https://pkg.go.dev/golang.org/x/sync/errgroup
package xrun
