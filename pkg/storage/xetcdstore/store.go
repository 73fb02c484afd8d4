package xetcdstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/omeyang/nativekit/pkg/storage/xstore"
)

// DefaultPrefix 是设置项键的默认前缀。
const DefaultPrefix = "/nativekit/settings/"

// 包级错误。
var (
	// ErrNilClient 表示传入的客户端为 nil。
	ErrNilClient = errors.New("xetcdstore: nil client")
)

// KV 定义后端需要的 etcd KV 操作，用于依赖注入和测试。
// 接口方法与 clientv3.KV 保持一致。
type KV interface {
	Get(ctx context.Context, key string, opts ...clientv3.OpOption) (*clientv3.GetResponse, error)
	Put(ctx context.Context, key, val string, opts ...clientv3.OpOption) (*clientv3.PutResponse, error)
	Delete(ctx context.Context, key string, opts ...clientv3.OpOption) (*clientv3.DeleteResponse, error)
}

// 确保 *clientv3.Client 实现 KV 接口（编译时检查）
var _ KV = (*clientv3.Client)(nil)

// Store 是基于 etcd 的后端实现。
type Store struct {
	client KV
	prefix string
}

var _ xstore.Backend = (*Store)(nil)

// Option 配置 Store。
type Option func(*Store)

// WithPrefix 设置键前缀，默认为 DefaultPrefix。
// 前缀自动补全结尾的 "/"。
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix == "" {
			return
		}
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		s.prefix = prefix
	}
}

// New 创建 etcd 后端。客户端由调用方注入并负责关闭。
func New(client KV, opts ...Option) (*Store, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	s := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Prefix 返回键前缀。
func (s *Store) Prefix() string { return s.prefix }

// Read 返回键下的原生值。键不存在不是错误。
func (s *Store) Read(ctx context.Context, key string) (string, bool, error) {
	resp, err := s.client.Get(ctx, s.prefix+key)
	if err != nil {
		return "", false, fmt.Errorf("xetcdstore: get %q: %w", key, err)
	}
	if len(resp.Kvs) == 0 {
		return "", false, nil
	}
	return string(resp.Kvs[0].Value), true, nil
}

// Write 写入键值。
func (s *Store) Write(ctx context.Context, key, raw string) error {
	if _, err := s.client.Put(ctx, s.prefix+key, raw); err != nil {
		return fmt.Errorf("xetcdstore: put %q: %w", key, err)
	}
	return nil
}

// Delete 移除键。键不存在时为空操作。
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.client.Delete(ctx, s.prefix+key); err != nil {
		return fmt.Errorf("xetcdstore: delete %q: %w", key, err)
	}
	return nil
}

// Keys 返回前缀下当前存在的全部键（去除前缀后的名称）。
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	resp, err := s.client.Get(ctx, s.prefix,
		clientv3.WithPrefix(), clientv3.WithKeysOnly())
	if err != nil {
		return nil, fmt.Errorf("xetcdstore: list keys: %w", err)
	}

	keys := make([]string, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		keys = append(keys, strings.TrimPrefix(string(kv.Key), s.prefix))
	}
	return keys, nil
}
