//go:build windows

package xwinreg

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"

	"github.com/omeyang/nativekit/pkg/storage/xstore"
)

// 包级错误。
var (
	// ErrEmptyPath 表示未提供注册表子键路径。
	ErrEmptyPath = errors.New("xwinreg: empty key path")
)

// Store 是基于 Windows 注册表的后端实现。
//
// 每次操作打开并关闭子键，不长期持有句柄；注册表本身保证
// 单个值读写的原子性。
type Store struct {
	root registry.Key
	path string
}

var _ xstore.Backend = (*Store)(nil)

// Option 配置 Store。
type Option func(*Store)

// WithRoot 设置根键，默认为 registry.CURRENT_USER。
func WithRoot(root registry.Key) Option {
	return func(s *Store) { s.root = root }
}

// New 创建注册表后端。
// path 为根键下的子键路径，例如 `Software\MyCompany\MyApp`。
// 子键不存在时首次写入会创建。
func New(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	s := &Store{
		root: registry.CURRENT_USER,
		path: path,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path 返回子键路径。
func (s *Store) Path() string { return s.path }

// Read 返回值名下的字符串。值或子键不存在不是错误。
func (s *Store) Read(_ context.Context, key string) (string, bool, error) {
	k, err := registry.OpenKey(s.root, s.path, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("xwinreg: open key: %w", err)
	}
	defer k.Close()

	raw, _, err := k.GetStringValue(key)
	if errors.Is(err, registry.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("xwinreg: read %q: %w", key, err)
	}
	return raw, true, nil
}

// Write 写入字符串值，子键不存在时创建。
func (s *Store) Write(_ context.Context, key, raw string) error {
	k, _, err := registry.CreateKey(s.root, s.path, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("xwinreg: create key: %w", err)
	}
	defer k.Close()

	if err := k.SetStringValue(key, raw); err != nil {
		return fmt.Errorf("xwinreg: write %q: %w", key, err)
	}
	return nil
}

// Delete 移除值。值或子键不存在时为空操作。
func (s *Store) Delete(_ context.Context, key string) error {
	k, err := registry.OpenKey(s.root, s.path, registry.SET_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("xwinreg: open key: %w", err)
	}
	defer k.Close()

	if err := k.DeleteValue(key); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("xwinreg: delete %q: %w", key, err)
	}
	return nil
}

// Keys 返回子键下当前存在的全部值名。
func (s *Store) Keys(_ context.Context) ([]string, error) {
	k, err := registry.OpenKey(s.root, s.path, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("xwinreg: open key: %w", err)
	}
	defer k.Close()

	names, err := k.ReadValueNames(0)
	if err != nil {
		return nil, fmt.Errorf("xwinreg: list values: %w", err)
	}
	return names, nil
}
