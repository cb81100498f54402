package xrun

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// DefaultSignals 返回默认的终止信号：SIGINT、SIGTERM、SIGQUIT。
//
// SIGHUP 不在其中：日志进程通常用它触发重新打开文件（见 [OnSignal]）。
// 每次调用返回新的切片。
func DefaultSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	}
}

// testSigChanKey 测试中通过 context 注入信号通道，避免发送真实信号
type testSigChanKey struct{}

func testSigChan(ctx context.Context) <-chan os.Signal {
	c, ok := ctx.Value(testSigChanKey{}).(<-chan os.Signal)
	if !ok {
		return nil
	}
	return c
}

func withTestSigChan(ctx context.Context, c <-chan os.Signal) context.Context {
	return context.WithValue(ctx, testSigChanKey{}, c)
}

// OnSignal 返回一个服务：每收到一次 sig 就调用一次 fn，直到 ctx 取消
//
// 典型用法是 SIGHUP 时强制轮转，配合外部 logrotate 重新打开日志文件：
//
//	g.Go(xrun.OnSignal(syscall.SIGHUP, func() {
//	    if err := logger.Rotate(); err != nil { ... }
//	}))
//
// ctx 取消时返回 nil。fn 为 nil 时返回 ErrNilFunc。
func OnSignal(sig os.Signal, fn func()) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if fn == nil {
			return ErrNilFunc
		}
		testc := testSigChan(ctx)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, sig)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-testc:
				fn()
			case <-sigCh:
				fn()
			}
		}
	}
}
