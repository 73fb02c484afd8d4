package xsettings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/omeyang/nativekit/pkg/option/xoption"
	"github.com/omeyang/nativekit/pkg/storage/xstore"
)

// DefaultVersionKey 是版本标记的默认后端键。
const DefaultVersionKey = "ConfigVersion"

// Config 是绑定到单个后端的配置实例。
//
// 必须通过 New 创建。实例方法并发安全（单进程内）；
// 多个实例共享同一后端时互相不可见对方的缓存。
type Config struct {
	reg     *xoption.Registry
	backend xstore.Backend

	mu        sync.Mutex
	cache     *lru.Cache[string, cacheEntry]
	overrides map[string]any

	cacheAll   bool
	resolver   Resolver
	logger     *slog.Logger
	version    int64
	versionKey string
	migrateFn  MigrationFunc
}

// cacheEntry 记录设置项最近一次已知状态。
// present 为 false 表示已知后端不存在该键（删除或读取未命中后记录），
// 此时 value/raw 无意义。
type cacheEntry struct {
	value   any
	raw     string
	present bool
}

// Option 配置 Config 实例的可选参数。
type Option func(*Config)

// WithCache 设置实例级缓存策略，默认关闭。
// 单个设置项可通过 xoption.WithCachePolicy 覆盖此策略。
func WithCache(enabled bool) Option {
	return func(c *Config) { c.cacheAll = enabled }
}

// WithResolver 设置读取失败的解析器钩子。
// 未设置时失败会被记录日志并回落到设置项默认值。
func WithResolver(r Resolver) Option {
	return func(c *Config) { c.resolver = r }
}

// WithLogger 设置日志器，默认为 slog.Default()。
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithVersion 声明当前配置版本，默认为 1。
func WithVersion(v int64) Option {
	return func(c *Config) { c.version = v }
}

// WithVersionKey 重命名版本标记的后端键，默认为 DefaultVersionKey。
func WithVersionKey(key string) Option {
	return func(c *Config) {
		if key != "" {
			c.versionKey = key
		}
	}
}

// WithMigration 注册迁移逻辑，构造时执行一次。
// 通常与 Steps 配合使用。
func WithMigration(fn MigrationFunc) Option {
	return func(c *Config) { c.migrateFn = fn }
}

// New 构造配置实例并立即执行版本迁移。
//
// 迁移完成前不返回；除版本键外的设置项在迁移期间通过正常读取路径访问，
// 单个设置项的解析失败不会中断迁移（走解析器兜底）。
func New(ctx context.Context, reg *xoption.Registry, backend xstore.Backend, opts ...Option) (*Config, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	if backend == nil {
		return nil, ErrNilBackend
	}

	c := &Config{
		reg:        reg,
		backend:    backend,
		overrides:  make(map[string]any),
		logger:     slog.Default(),
		version:    1,
		versionKey: DefaultVersionKey,
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, ok := reg.Lookup(c.versionKey); ok {
		return nil, fmt.Errorf("%w: %q", ErrVersionKeyCollision, c.versionKey)
	}

	// 缓存容量与注册表同阶即可；+1 避免空注册表的零容量。
	cache, err := lru.New[string, cacheEntry](reg.Len() + 1)
	if err != nil {
		return nil, fmt.Errorf("xsettings: create cache: %w", err)
	}
	c.cache = cache

	if err := c.runMigration(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Registry 返回绑定的注册表。
func (c *Config) Registry() *xoption.Registry { return c.reg }

// Version 返回当前声明的配置版本。
func (c *Config) Version() int64 { return c.version }

// VersionKey 返回版本标记的后端键。
func (c *Config) VersionKey() string { return c.versionKey }

// InvalidateCache 清空实例缓存。
// 后端被外部修改后调用，使后续读取重新触达后端。
func (c *Config) InvalidateCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Purge()
}

// cacheEnabled 判定单个设置项是否参与缓存。
func (c *Config) cacheEnabled(opt *xoption.Option) bool {
	switch opt.CachePolicy() {
	case xoption.CacheEnabled:
		return true
	case xoption.CacheDisabled:
		return false
	default:
		return c.cacheAll
	}
}

// cacheStore 按缓存策略记录条目。
func (c *Config) cacheStore(opt *xoption.Option, e cacheEntry) {
	if c.cacheEnabled(opt) {
		c.cache.Add(opt.Name(), e)
	}
}
