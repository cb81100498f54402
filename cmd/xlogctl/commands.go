package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/qdlog/pkg/config/xconf"
	"github.com/omeyang/qdlog/pkg/lifecycle/xcron"
	"github.com/omeyang/qdlog/pkg/lifecycle/xrun"
	"github.com/omeyang/qdlog/pkg/observability/xlog"
	"github.com/omeyang/qdlog/pkg/observability/xmetrics"
)

// maxLineBytes pipe 单行输入上限，超出时返回读取错误
const maxLineBytes = 1 << 20

// errInputDone 标准输入读取完毕，pipe 以此结束整个运行组
var errInputDone = errors.New("xlogctl: input done")

// exitError 表示需要非零退出码但已完成输出的场景。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 表示命令参数错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func createGlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "配置文件路径（YAML/JSON）",
		},
		&cli.StringFlag{
			Name:    "level",
			Aliases: []string{"l"},
			Usage:   "最低日志级别 (debug/info/warn/error/off)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "输出格式 (text/json)",
		},
		&cli.StringSliceFlag{
			Name:  "file",
			Usage: "输出文件，可重复",
		},
		&cli.StringFlag{
			Name:  "rotate",
			Usage: "--file 的轮转模式 (none/size/daily/hourly)",
			Value: "none",
		},
		&cli.Int64Flag{
			Name:  "max-size",
			Usage: "size 模式的文件大小上限（字节）",
		},
		&cli.Int64Flag{
			Name:  "max-files",
			Usage: "size 模式保留的备份数，0 表示不限",
		},
		&cli.BoolFlag{
			Name:  "create-dir",
			Usage: "自动创建日志目录",
		},
		&cli.BoolFlag{
			Name:  "no-stdout",
			Usage: "不输出到标准输出",
		},
		&cli.StringFlag{
			Name:  "schedule",
			Usage: "定时检查轮转的 cron 表达式",
		},
		&cli.BoolFlag{
			Name:  "metrics",
			Usage: "通过 OpenTelemetry 全局 MeterProvider 记录指标",
		},
	}
}

func recordFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "severity",
			Aliases: []string{"s"},
			Usage:   "记录级别 (debug/info/warn/error)",
			Value:   "info",
		},
		&cli.StringSliceFlag{
			Name:  "field",
			Usage: "附加字段 key=value，可重复",
		},
	}
}

func createPipeCommand() *cli.Command {
	return &cli.Command{
		Name:  "pipe",
		Usage: "逐行读取标准输入并写入日志",
		Description: `每个非空行作为一条日志的消息。读到 EOF 或收到 SIGINT/SIGTERM/SIGQUIT 时
刷新并关闭全部输出后退出；收到 SIGHUP 时强制轮转。`,
		Flags:  recordFlags(),
		Action: cmdPipe,
	}
}

func createEmitCommand() *cli.Command {
	return &cli.Command{
		Name:      "emit",
		Usage:     "输出一条日志",
		ArgsUsage: "<message>",
		Flags:     recordFlags(),
		Action:    cmdEmit,
	}
}

func createRotateCommand() *cli.Command {
	return &cli.Command{
		Name:   "rotate",
		Usage:  "打开配置的文件并强制轮转一次",
		Action: cmdRotate,
	}
}

func createCheckCommand() *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  "校验配置并打印各文件输出的状态",
		Action: cmdCheck,
	}
}

func cmdPipe(ctx context.Context, cmd *cli.Command) (err error) {
	level, fields, err := parseRecordFlags(cmd)
	if err != nil {
		return err
	}
	cfg, src, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, logger.Close()) }()

	slogger := slog.New(xlog.NewHandler(logger))

	services := []func(context.Context) error{
		pipeLines(cmd.Root().Reader, logger, level, fields),
		xrun.OnSignal(syscall.SIGHUP, func() {
			if rerr := logger.Rotate(); rerr != nil {
				slogger.Warn("xlogctl: rotate on SIGHUP failed", slog.Any("error", rerr))
			}
		}),
	}

	if cfg.RotateSchedule != "" {
		sched := xcron.New(xcron.WithLogger(slogger))
		if _, serr := sched.AddCheckRotate(cfg.RotateSchedule, logger); serr != nil {
			return &usageError{msg: serr.Error()}
		}
		services = append(services, sched.Run)
	}

	if src != nil {
		w, werr := xconf.Watch(src, reloadCallback(cmd, logger, slogger))
		if werr != nil {
			return werr
		}
		services = append(services, w.Run)
	}

	err = xrun.RunWithOptions(ctx,
		[]xrun.Option{xrun.WithLogger(slogger), xrun.WithName("xlogctl")},
		services...,
	)
	if errors.Is(err, errInputDone) {
		return nil
	}
	return err
}

// pipeLines 返回把 r 的每一行写入 logger 的服务
//
// 读取在独立 goroutine 中进行；ctx 取消时服务立即返回，
// 阻塞在 Read 上的 goroutine 随进程退出。
func pipeLines(r io.Reader, logger *xlog.Logger, level xlog.Level, fields []xlog.Field) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		lines := make(chan string)
		scanErr := make(chan error, 1)

		go func() {
			var err error
			defer func() {
				scanErr <- err
				close(lines)
			}()

			sc := bufio.NewScanner(r)
			sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
			for sc.Scan() {
				select {
				case lines <- sc.Text():
				case <-ctx.Done():
					err = ctx.Err()
					return
				}
			}
			err = sc.Err()
		}()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case line, ok := <-lines:
				if !ok {
					if err := <-scanErr; err != nil {
						return fmt.Errorf("xlogctl: read input: %w", err)
					}
					return errInputDone
				}
				line = strings.TrimRight(line, "\r")
				if line == "" {
					continue
				}
				logger.LogWithFields(level, line, fields)
			}
		}
	}
}

// reloadCallback 配置文件变化时重新应用命令行覆盖，再把运行时设置应用到 logger
func reloadCallback(cmd *cli.Command, logger *xlog.Logger, slogger *slog.Logger) xconf.WatchCallback {
	return func(cfg xconf.LoggerConfig, err error) {
		if err != nil {
			slogger.Warn("xlogctl: reload config failed", slog.Any("error", err))
			return
		}
		applyFlags(cmd, &cfg)
		if err := xconf.ApplyRuntime(logger, cfg); err != nil {
			slogger.Warn("xlogctl: apply config failed", slog.Any("error", err))
			return
		}
		slogger.Info("xlogctl: config reloaded",
			slog.String("level", logger.GetLevel().String()),
			slog.String("format", logger.GetFormat().String()),
		)
	}
}

func cmdEmit(_ context.Context, cmd *cli.Command) (err error) {
	msg := strings.Join(cmd.Args().Slice(), " ")
	if msg == "" {
		return &usageError{msg: "emit 需要日志内容"}
	}
	level, fields, err := parseRecordFlags(cmd)
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, logger.Close()) }()

	logger.LogWithFields(level, msg, fields)
	return nil
}

func cmdRotate(_ context.Context, cmd *cli.Command) (err error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(cfg.Files) == 0 {
		return &usageError{msg: "没有配置文件输出（使用 --file 或 --config）"}
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, logger.Close()) }()

	if err := logger.Rotate(); err != nil {
		return err
	}
	printFiles(cmd.Root().Writer, logger)
	return nil
}

func cmdCheck(_ context.Context, cmd *cli.Command) (err error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, logger.Close()) }()

	w := cmd.Root().Writer
	schedule := cfg.RotateSchedule
	if schedule == "" {
		schedule = "-"
	}
	fmt.Fprintf(w, "level:    %s\n", logger.GetLevel())
	fmt.Fprintf(w, "format:   %s\n", logger.GetFormat())
	fmt.Fprintf(w, "stdout:   %t\n", logger.StdoutEnabled())
	fmt.Fprintf(w, "schedule: %s\n", schedule)

	if degraded := printFiles(w, logger); degraded > 0 {
		return &exitError{code: 1}
	}
	return nil
}

// printFiles 打印文件输出状态，返回降级的数量
func printFiles(w io.Writer, logger *xlog.Logger) int {
	files := logger.Files()
	fmt.Fprintf(w, "files:    %d\n", len(files))
	degraded := 0
	for _, st := range files {
		fmt.Fprintf(w, "  %s mode=%s active=%s size=%d degraded=%t\n",
			st.BasePath, st.Mode, st.ActivePath, st.Size, st.Degraded)
		if st.Degraded {
			degraded++
		}
	}
	return degraded
}

// loadConfig 读取配置文件（如有）并应用命令行覆盖
//
// 未指定 --config 时返回的 Source 为 nil。
func loadConfig(cmd *cli.Command) (xconf.LoggerConfig, *xconf.Source, error) {
	cfg := xconf.DefaultLoggerConfig()
	var src *xconf.Source

	if path := cmd.String("config"); path != "" {
		var err error
		if src, err = xconf.Load(path); err != nil {
			return cfg, nil, err
		}
		if cfg, err = src.Logger(); err != nil {
			return cfg, nil, err
		}
	}

	applyFlags(cmd, &cfg)
	for _, path := range cmd.StringSlice("file") {
		cfg.Files = append(cfg.Files, xconf.FileConfig{
			Path:     path,
			Rotate:   cmd.String("rotate"),
			MaxSize:  cmd.Int64("max-size"),
			MaxFiles: cmd.Int64("max-files"),
		})
	}

	if cfg.RotateSchedule != "" {
		if err := xcron.ParseSchedule(cfg.RotateSchedule); err != nil {
			return cfg, nil, &usageError{msg: err.Error()}
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, src, nil
}

// applyFlags 把显式设置的全局选项覆盖到 cfg，files 不在此处理
func applyFlags(cmd *cli.Command, cfg *xconf.LoggerConfig) {
	if cmd.IsSet("level") {
		cfg.Level = cmd.String("level")
	}
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}
	if cmd.Bool("no-stdout") {
		off := false
		cfg.Stdout = &off
	}
	if cmd.IsSet("create-dir") {
		cfg.CreateDir = cmd.Bool("create-dir")
	}
	if cmd.IsSet("schedule") {
		cfg.RotateSchedule = cmd.String("schedule")
	}
}

// newLogger 按配置创建 Logger，单个输出的写入错误打印到 stderr
func newLogger(cmd *cli.Command, cfg xconf.LoggerConfig) (*xlog.Logger, error) {
	errW := cmd.Root().ErrWriter
	opts := []xlog.Option{
		xlog.WithStdout(cmd.Root().Writer),
		xlog.WithOnError(func(err error) {
			fmt.Fprintf(errW, "xlogctl: %v\n", err)
		}),
	}
	if cmd.Bool("metrics") {
		rec, err := xmetrics.NewOTelRecorder(xmetrics.WithInstrumentationName("xlogctl"))
		if err != nil {
			return nil, err
		}
		opts = append(opts, xlog.WithRecorder(rec))
	}
	return xconf.Build(cfg, opts...)
}

// parseRecordFlags 解析 --severity 和 --field
func parseRecordFlags(cmd *cli.Command) (xlog.Level, []xlog.Field, error) {
	level, err := xlog.ParseLevel(cmd.String("severity"))
	if err != nil {
		return 0, nil, &usageError{msg: fmt.Sprintf("--severity: %v", err)}
	}
	if level == xlog.LevelOff {
		return 0, nil, &usageError{msg: "--severity: off 不能作为记录级别"}
	}
	fields, err := parseFields(cmd.StringSlice("field"))
	if err != nil {
		return 0, nil, err
	}
	return level, fields, nil
}

// parseFields 解析 key=value 形式的字段，value 可以包含 '='
func parseFields(raw []string) ([]xlog.Field, error) {
	fields := make([]xlog.Field, 0, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, &usageError{msg: fmt.Sprintf("--field %q: 需要 key=value 格式", kv)}
		}
		fields = append(fields, xlog.String(key, value))
	}
	return fields, nil
}
