package xconf

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reloadRecorder 线程安全地记录回调结果
type reloadRecorder struct {
	mu   sync.Mutex
	cfgs []LoggerConfig
	errs []error
}

func (r *reloadRecorder) callback(cfg LoggerConfig, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfgs = append(r.cfgs, cfg)
	r.errs = append(r.errs, err)
}

func (r *reloadRecorder) last() (LoggerConfig, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.cfgs)
	if n == 0 {
		return LoggerConfig{}, 0, nil
	}
	return r.cfgs[n-1], n, r.errs[n-1]
}

func TestWatch_Reload(t *testing.T) {
	path := writeConfig(t, "log.yaml", "log:\n  level: info\n")
	src, err := Load(path)
	require.NoError(t, err)

	var rec reloadRecorder
	w, err := Watch(src, rec.callback, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	w.StartAsync()
	defer func() { assert.NoError(t, w.Stop()) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: error\n  format: json\n"), 0600))

	assert.Eventually(t, func() bool {
		cfg, n, err := rec.last()
		return n > 0 && err == nil && cfg.Level == "error"
	}, 2*time.Second, 20*time.Millisecond)

	cfg, _, _ := rec.last()
	assert.Equal(t, "json", cfg.Format)
}

func TestWatch_InvalidContentReported(t *testing.T) {
	path := writeConfig(t, "log.yaml", "log:\n  level: info\n")
	src, err := Load(path)
	require.NoError(t, err)

	var rec reloadRecorder
	w, err := Watch(src, rec.callback, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	w.StartAsync()
	defer func() { assert.NoError(t, w.Stop()) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0600))

	assert.Eventually(t, func() bool {
		_, n, err := rec.last()
		return n > 0 && err != nil
	}, 2*time.Second, 20*time.Millisecond)

	_, _, err = rec.last()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWatch_Rejected(t *testing.T) {
	src, err := Parse(nil, FormatYAML)
	require.NoError(t, err)
	_, err = Watch(src, nil)
	assert.ErrorIs(t, err, ErrNotReloadable)

	_, err = Watch(nil, nil)
	assert.ErrorIs(t, err, ErrNotReloadable)
}

func TestWatch_StopIdempotent(t *testing.T) {
	src, err := Load(writeConfig(t, "log.yaml", "log:\n  level: info\n"))
	require.NoError(t, err)

	w, err := Watch(src, nil)
	require.NoError(t, err)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	// 停止后不能再启动
	w.StartAsync()
	w.Start()
}

func TestWatch_Run(t *testing.T) {
	src, err := Load(writeConfig(t, "log.yaml", "log:\n  level: info\n"))
	require.NoError(t, err)

	w, err := Watch(src, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
