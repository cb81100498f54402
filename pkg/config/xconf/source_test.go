package xconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `log:
  level: debug
  format: json
  stdout: false
  create_dir: true
  file_mode: "0640"
  rotate_schedule: "@every 1m"
  files:
    - path: /var/log/app.log
      rotate: size
      max_size: 100
      max_files: 2
    - path: /var/log/app-daily.log
      rotate: daily
`

const sampleJSON = `{
  "log": {
    "level": "warn",
    "format": "text",
    "files": [
      {"path": "/var/log/app.log", "rotate": "hourly"}
    ]
  }
}`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	src, err := Load(writeConfig(t, "log.yaml", sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, src.Format())
	assert.Equal(t, "debug", src.Client().String("log.level"))

	cfg, err := src.Logger()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.False(t, cfg.StdoutEnabled())
	assert.True(t, cfg.CreateDir)
	assert.Equal(t, "0640", cfg.FileMode)
	assert.Equal(t, "@every 1m", cfg.RotateSchedule)
	require.Len(t, cfg.Files, 2)
	assert.Equal(t, FileConfig{Path: "/var/log/app.log", Rotate: "size", MaxSize: 100, MaxFiles: 2}, cfg.Files[0])
	assert.Equal(t, FileConfig{Path: "/var/log/app-daily.log", Rotate: "daily"}, cfg.Files[1])
}

func TestLoad_JSON(t *testing.T) {
	src, err := Load(writeConfig(t, "log.json", sampleJSON))
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, src.Format())

	cfg, err := src.Logger()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Level)
	assert.True(t, cfg.StdoutEnabled())
	require.Len(t, cfg.Files, 1)
	assert.Equal(t, "hourly", cfg.Files[0].Rotate)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Load("/etc/app/log.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrLoadFailed)

	_, err = Load(writeConfig(t, "bad.json", "{not json"))
	assert.ErrorIs(t, err, ErrParseFailed)
}

func TestParse(t *testing.T) {
	t.Run("空数据返回默认配置", func(t *testing.T) {
		src, err := Parse(nil, FormatYAML)
		require.NoError(t, err)
		cfg, err := src.Logger()
		require.NoError(t, err)
		assert.Equal(t, DefaultLoggerConfig(), cfg)
		assert.Empty(t, src.Path())
	})

	t.Run("不支持的格式", func(t *testing.T) {
		_, err := Parse([]byte("a=1"), Format("toml"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("自定义键", func(t *testing.T) {
		data := []byte("app:\n  logging:\n    level: error\n")
		src, err := Parse(data, FormatYAML, WithKey("app.logging"))
		require.NoError(t, err)
		cfg, err := src.Logger()
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.Level)
		assert.Equal(t, "text", cfg.Format)
	})

	t.Run("整个文档", func(t *testing.T) {
		src, err := Parse([]byte(`{"level":"off"}`), FormatJSON, WithKey(""))
		require.NoError(t, err)
		cfg, err := src.Logger()
		require.NoError(t, err)
		assert.Equal(t, "off", cfg.Level)
	})

	t.Run("非法值", func(t *testing.T) {
		src, err := Parse([]byte("log:\n  level: loud\n"), FormatYAML)
		require.NoError(t, err)
		_, err = src.Logger()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("不能重载", func(t *testing.T) {
		src, err := Parse(nil, FormatJSON)
		require.NoError(t, err)
		assert.ErrorIs(t, src.Reload(), ErrNotReloadable)
	})
}

func TestSource_Reload(t *testing.T) {
	path := writeConfig(t, "log.yaml", "log:\n  level: info\n")
	src, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: error\n"), 0600))
	require.NoError(t, src.Reload())
	cfg, err := src.Logger()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Level)

	// 解析失败时保留旧内容
	require.NoError(t, os.WriteFile(path, []byte("log: [unclosed\n"), 0600))
	assert.ErrorIs(t, src.Reload(), ErrParseFailed)
	assert.Equal(t, "error", src.Client().String("log.level"))
}

func TestSource_UnmarshalCustomTag(t *testing.T) {
	type target struct {
		Level string `cfg:"level"`
	}
	src, err := Parse([]byte("log:\n  level: warn\n"), FormatYAML, WithTag("cfg"), WithDelim("/"))
	require.NoError(t, err)

	var got target
	require.NoError(t, src.Unmarshal("log", &got))
	assert.Equal(t, "warn", got.Level)
	assert.Equal(t, "warn", src.Client().String("log/level"))
}
