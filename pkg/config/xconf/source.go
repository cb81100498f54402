package xconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	// FormatYAML YAML 格式。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// Source 一份已加载的配置文档
//
// 并发安全；Reload 原子地替换底层 koanf 实例。
type Source struct {
	mu      sync.RWMutex
	k       *koanf.Koanf
	path    string
	format  Format
	opts    *Options
	isBytes bool
}

// Load 从文件加载配置，按扩展名识别格式（.yaml/.yml 或 .json）。
func Load(path string, opts ...Option) (*Source, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	options := applyOptions(opts)
	k, err := readFile(path, format, options)
	if err != nil {
		return nil, err
	}
	return &Source{k: k, path: path, format: format, opts: options}, nil
}

// Parse 从字节数据加载配置，需要显式指定格式。
//
// 空数据得到空配置，Logger 返回默认值。
func Parse(data []byte, format Format, opts ...Option) (*Source, error) {
	if !isValidFormat(format) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	options := applyOptions(opts)
	k := koanf.New(options.Delim)
	if len(data) > 0 {
		if err := loadData(k, data, format); err != nil {
			return nil, err
		}
	}
	return &Source{k: k, format: format, opts: options, isBytes: true}, nil
}

func applyOptions(opts []Option) *Options {
	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}
	return options
}

// Client 返回底层的 koanf 实例。
func (s *Source) Client() *koanf.Koanf {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.k
}

// Unmarshal 将指定路径的配置反序列化到目标结构体，path 为空时反序列化整个文档。
func (s *Source) Unmarshal(path string, target any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.k.UnmarshalWithConf(path, target, koanf.UnmarshalConf{Tag: s.opts.Tag}); err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return nil
}

// Logger 读取并校验日志配置，缺省字段取 [DefaultLoggerConfig] 的值。
func (s *Source) Logger() (LoggerConfig, error) {
	cfg := DefaultLoggerConfig()
	if err := s.Unmarshal(s.opts.Key, &cfg); err != nil {
		return LoggerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return LoggerConfig{}, err
	}
	return cfg, nil
}

// Reload 重新读取配置文件，解析失败时保留旧内容。
func (s *Source) Reload() error {
	if s.isBytes {
		return ErrNotReloadable
	}
	k, err := readFile(s.path, s.format, s.opts)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.k = k
	s.mu.Unlock()
	return nil
}

// Path 返回配置文件路径，从字节数据创建时为空。
func (s *Source) Path() string {
	return s.path
}

// Format 返回配置格式。
func (s *Source) Format() Format {
	return s.format
}

func readFile(path string, format Format, opts *Options) (*koanf.Koanf, error) {
	//#nosec G304 -- 配置路径由调用方提供
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	k := koanf.New(opts.Delim)
	if err := loadData(k, data, format); err != nil {
		return nil, err
	}
	return k, nil
}

// detectFormat 根据文件扩展名检测配置格式。
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}

func isValidFormat(format Format) bool {
	return format == FormatYAML || format == FormatJSON
}

// loadData 加载数据到 koanf 实例。
func loadData(k *koanf.Koanf, data []byte, format Format) error {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return ErrUnsupportedFormat
	}

	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return nil
}
