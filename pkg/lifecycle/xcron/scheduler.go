package xcron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrNilTarget 表示任务目标为 nil。
var ErrNilTarget = errors.New("xcron: target cannot be nil")

// RotateChecker 可按策略检查轮转的对象，*xlog.Logger 满足此接口
type RotateChecker interface {
	CheckRotate()
}

// Flusher 可刷新到稳定存储的对象，*xlog.Logger 满足此接口
type Flusher interface {
	Flush() error
}

// Stats 执行统计快照
type Stats struct {
	Runs     int64
	Failures int64
	LastRun  time.Time
}

type counters struct {
	runs     atomic.Int64
	failures atomic.Int64
	lastRun  atomic.Int64 // UnixNano
}

func (c *counters) observe(now time.Time, err error) {
	c.runs.Add(1)
	c.lastRun.Store(now.UnixNano())
	if err != nil {
		c.failures.Add(1)
	}
}

// Scheduler 日志维护任务调度器
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	stats  counters
}

// New 创建调度器，需调用 Start 或 Run 开始调度
func New(opts ...Option) *Scheduler {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	cl := cronLogger{l: o.logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(o.location),
			cron.WithParser(o.parser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: o.logger,
	}
}

// ParseSchedule 用默认的 5 字段解析器校验 cron 表达式
func ParseSchedule(spec string) error {
	if _, err := standardParser.Parse(spec); err != nil {
		return fmt.Errorf("xcron: invalid schedule %q: %w", spec, err)
	}
	return nil
}

// AddCheckRotate 按 spec 定期调用 target.CheckRotate
func (s *Scheduler) AddCheckRotate(spec string, target RotateChecker) (cron.EntryID, error) {
	if target == nil {
		return 0, ErrNilTarget
	}
	return s.add(spec, &checkRotateJob{target: target, s: s})
}

// AddFlush 按 spec 定期调用 target.Flush，失败只记录日志
func (s *Scheduler) AddFlush(spec string, target Flusher) (cron.EntryID, error) {
	if target == nil {
		return 0, ErrNilTarget
	}
	return s.add(spec, &flushJob{target: target, s: s})
}

func (s *Scheduler) add(spec string, job cron.Job) (cron.EntryID, error) {
	id, err := s.cron.AddJob(spec, job)
	if err != nil {
		return 0, fmt.Errorf("xcron: failed to add job: %w", err)
	}
	return id, nil
}

// Remove 移除任务
func (s *Scheduler) Remove(id cron.EntryID) {
	s.cron.Remove(id)
}

// Entries 返回已注册的任务
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// Start 在后台开始调度
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop 停止调度，返回的 context 在进行中的任务结束后完成
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Run 调度直到 ctx 取消，然后等待进行中的任务结束
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start()
	<-ctx.Done()
	<-s.Stop().Done()
	return nil
}

// Stats 返回执行统计快照
func (s *Scheduler) Stats() Stats {
	st := Stats{
		Runs:     s.stats.runs.Load(),
		Failures: s.stats.failures.Load(),
	}
	if ns := s.stats.lastRun.Load(); ns != 0 {
		st.LastRun = time.Unix(0, ns)
	}
	return st
}

type checkRotateJob struct {
	target RotateChecker
	s      *Scheduler
}

func (j *checkRotateJob) Run() {
	j.target.CheckRotate()
	j.s.stats.observe(time.Now(), nil)
}

type flushJob struct {
	target Flusher
	s      *Scheduler
}

func (j *flushJob) Run() {
	err := j.target.Flush()
	j.s.stats.observe(time.Now(), err)
	if err != nil {
		j.s.logger.Warn("xcron: scheduled flush failed", slog.Any("error", err))
	}
}

// cronLogger 把 cron.Logger 适配到 slog
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("xcron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("xcron: "+msg, append([]any{slog.Any("error", err)}, keysAndValues...)...)
}
