package xredistore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/omeyang/nativekit/pkg/storage/xstore"
)

// DefaultHashKey 是存放全部设置项的默认 Hash 键。
const DefaultHashKey = "nativekit:settings"

// 包级错误。
var (
	// ErrNilClient 表示传入的客户端为 nil。
	ErrNilClient = errors.New("xredistore: nil client")
)

// Store 是基于 Redis Hash 的后端实现。
type Store struct {
	client  redis.UniversalClient
	hashKey string
}

var _ xstore.Backend = (*Store)(nil)

// Option 配置 Store。
type Option func(*Store)

// WithHashKey 设置存放设置项的 Hash 键，默认为 DefaultHashKey。
// 多个应用共用一个 Redis 实例时应各自指定独立的键。
func WithHashKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.hashKey = key
		}
	}
}

// New 创建 Redis 后端。客户端由调用方注入并负责关闭。
func New(client redis.UniversalClient, opts ...Option) (*Store, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	s := &Store{
		client:  client,
		hashKey: DefaultHashKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Client 返回底层的 redis.UniversalClient。
func (s *Store) Client() redis.UniversalClient { return s.client }

// HashKey 返回存放设置项的 Hash 键。
func (s *Store) HashKey() string { return s.hashKey }

// Read 返回字段下的原生值。字段不存在不是错误。
func (s *Store) Read(ctx context.Context, key string) (string, bool, error) {
	raw, err := s.client.HGet(ctx, s.hashKey, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("xredistore: hget %s: %w", key, err)
	}
	return raw, true, nil
}

// Write 写入字段值。
func (s *Store) Write(ctx context.Context, key, raw string) error {
	if err := s.client.HSet(ctx, s.hashKey, key, raw).Err(); err != nil {
		return fmt.Errorf("xredistore: hset %s: %w", key, err)
	}
	return nil
}

// Delete 移除字段。字段不存在时为空操作。
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.HDel(ctx, s.hashKey, key).Err(); err != nil {
		return fmt.Errorf("xredistore: hdel %s: %w", key, err)
	}
	return nil
}

// Keys 返回当前存在的全部字段。
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.client.HKeys(ctx, s.hashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("xredistore: hkeys: %w", err)
	}
	return keys, nil
}
