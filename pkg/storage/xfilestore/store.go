package xfilestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/omeyang/nativekit/pkg/storage/xstore"
)

// Format 标识文件的序列化格式。
type Format string

// 支持的文件格式。
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// delim 是 koanf 的层级分隔符。
// 配置文件是扁平对象，选用键名中不会出现的分隔符避免意外展开层级。
const delim = "::"

// Store 是基于单个本地文件的后端实现。
type Store struct {
	path   string
	format Format
	parser koanf.Parser

	mu   sync.RWMutex
	data map[string]string
}

var _ xstore.Backend = (*Store)(nil)

// New 打开文件后端，按扩展名检测格式（.json、.yaml、.yml）。
// 文件不存在时从空状态启动，首次写入时创建。
func New(path string) (*Store, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path:   path,
		format: format,
		parser: parserFor(format),
		data:   make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path 返回后端文件路径。
func (s *Store) Path() string { return s.path }

// Format 返回文件格式。
func (s *Store) Format() Format { return s.format }

// Read 返回键下的原生值。键不存在不是错误。
func (s *Store) Read(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.data[key]
	return raw, ok, nil
}

// Write 写入键值并立即落盘。
func (s *Store) Write(_ context.Context, key, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = raw
	return s.flushLocked()
}

// Delete 移除键并立即落盘。键不存在时为空操作。
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flushLocked()
}

// Keys 返回当前存在的全部键。
func (s *Store) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	return keys, nil
}

// Reload 丢弃内存状态并重新读取文件。
// 文件被外部修改后调用；Watch 的回调触发前会自动调用。
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]string)
	return s.loadLocked()
}

// load 读取文件内容到内存。
func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() error {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("xfilestore: read %s: %w", s.path, err)
	}
	if len(content) == 0 {
		return nil
	}

	k := koanf.New(delim)
	if err := k.Load(rawbytes.Provider(content), s.parser); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrParseFailed, s.path, err)
	}

	for key, value := range k.All() {
		s.data[key] = coerceString(value)
	}
	return nil
}

// flushLocked 全量序列化并原子落盘，调用方必须持有写锁。
func (s *Store) flushLocked() error {
	out := make(map[string]any, len(s.data))
	for key, raw := range s.data {
		out[key] = raw
	}

	content, err := s.parser.Marshal(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	// 写临时文件后重命名，同目录保证重命名原子。
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// detectFormat 根据文件扩展名检测格式。
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}

// parserFor 返回格式对应的 koanf 解析器。
func parserFor(format Format) koanf.Parser {
	if format == FormatYAML {
		return kyaml.Parser()
	}
	return kjson.Parser()
}

// coerceString 把手工编辑的文件里的非字符串标量还原为原生字符串。
// 未加引号的 YAML 数字和布尔会被解析器解析为具体类型。
func coerceString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
