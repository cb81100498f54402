// xlogctl 是 xlog 的命令行工具：把标准输入逐行写入按配置创建的 Logger，
// 或者输出单条日志、强制轮转、检查配置。
//
// 用法:
//
//	xlogctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config     配置文件（YAML/JSON，读取 log 段）
//	-l, --level      最低日志级别 (debug/info/warn/error/off)
//	-f, --format     输出格式 (text/json)
//	    --file       输出文件，可重复，最多 8 个
//	    --rotate     --file 的轮转模式 (none/size/daily/hourly)
//	    --max-size   size 模式的文件大小上限（字节）
//	    --max-files  size 模式保留的备份数，0 表示不限
//	    --create-dir 自动创建日志目录
//	    --no-stdout  不输出到标准输出
//	    --schedule   定时检查轮转的 cron 表达式（如 "@every 1m"）
//	    --metrics    通过 OpenTelemetry 全局 MeterProvider 记录指标
//
// 命令行选项覆盖配置文件中的同名设置；--file 追加在配置文件的 files 之后。
//
// 命令:
//
//	pipe     逐行读取标准输入并写入日志，直到 EOF 或收到终止信号
//	emit     输出一条日志
//	rotate   打开配置的文件并强制轮转一次
//	check    校验配置并打印各文件输出的状态
//
// pipe 运行期间收到 SIGHUP 时强制轮转（配合外部 logrotate）；
// 指定 --config 时监视配置文件，级别、格式、stdout 开关修改后立即生效。
//
// 退出码:
//
//	0: 成功（包括 pipe 收到终止信号正常退出）
//	1: 运行失败（文件打开失败、读取输入失败等）
//	2: 参数或配置错误
//
// 示例:
//
//	app | xlogctl --file /var/log/app.log --rotate size --max-size 10485760 --max-files 5 pipe
//	app | xlogctl -c /etc/app/log.yaml pipe --severity warn
//	xlogctl -f json emit --severity error --field code=E42 "disk low"
//	xlogctl -c /etc/app/log.yaml rotate
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/qdlog/pkg/config/xconf"
	"github.com/omeyang/qdlog/pkg/lifecycle/xrun"
	"github.com/omeyang/qdlog/pkg/observability/xlog"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(context.Background(), os.Args))
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "xlogctl",
		Usage:   "xlog 命令行工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Flags:   createGlobalFlags(),
		Commands: []*cli.Command{
			createPipeCommand(),
			createEmitCommand(),
			createRotateCommand(),
			createCheckCommand(),
		},
		DefaultCommand: "help",
		// --field 的值可能包含逗号
		DisableSliceFlagSeparator: true,
		Authors: []any{
			"qdlog Team",
		},
		// 禁止 urfave/cli 直接调用 os.Exit，由 run() 统一映射退出码
		ExitErrHandler: func(_ context.Context, cmd *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(cmd.Root().ErrWriter, err)
			}
		},
	}
}

func run(ctx context.Context, args []string) int {
	return exitCode(createApp().Run(ctx, args))
}

// exitCode 把命令错误映射为退出码，非 0 时错误信息已写到 stderr
func exitCode(err error) int {
	if err == nil || errors.Is(err, xrun.ErrSignal) {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	if errors.Is(err, xconf.ErrInvalidConfig) ||
		errors.Is(err, xconf.ErrEmptyPath) ||
		errors.Is(err, xconf.ErrUnsupportedFormat) ||
		errors.Is(err, xconf.ErrParseFailed) ||
		errors.Is(err, xconf.ErrUnmarshalFailed) ||
		xlog.CodeOf(err) == xlog.CodeInvalidArgument {
		fmt.Fprintf(os.Stderr, "配置错误: %v\n", err)
		return 2
	}
	if isCLIUsageError(err) {
		// flag 解析器已输出错误详情
		return 2
	}
	fmt.Fprintf(os.Stderr, "错误: %v\n", err)
	return 1
}

// isCLIUsageError 判断是否为 urfave/cli 产生的参数错误（未知 flag、flag 值无法解析等）
func isCLIUsageError(err error) bool {
	if _, ok := err.(cli.ExitCoder); ok {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{
		"flag provided but not defined",
		"invalid value",
		"flag needs an argument",
		"No help topic for",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
