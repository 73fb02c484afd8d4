package xsettings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/omeyang/nativekit/pkg/option/xoption"
)

// Get 返回设置项的类型化值。
//
// 读取优先级：环境变量覆盖 → 临时覆盖 → 缓存 → 后端 → 默认值。
// 存储数据损坏时经解析器兜底，因此声明了默认值的设置项读取不会硬性失败。
func (c *Config) Get(ctx context.Context, name string) (any, error) {
	value, _, err := c.GetSource(ctx, name)
	return value, err
}

// GetSource 与 Get 相同，并额外报告值的来源。
func (c *Config) GetSource(ctx context.Context, name string) (any, ValueSource, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookupLocked(ctx, name)
}

// Get 以具体类型返回设置项的值。
// 实际类型与 T 不符时返回错误而非 panic。
func Get[T any](ctx context.Context, c *Config, name string) (T, error) {
	var zero T
	value, err := c.Get(ctx, name)
	if err != nil {
		return zero, err
	}
	if value == nil {
		return zero, nil
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("xsettings: option %q holds %T, not %T", name, value, zero)
	}
	return typed, nil
}

// lookupLocked 执行完整的读取管线，调用方必须持有 c.mu。
func (c *Config) lookupLocked(ctx context.Context, name string) (any, ValueSource, error) {
	opt, ok := c.reg.Lookup(name)
	if !ok {
		return nil, SourceDefault, fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}

	// 环境变量覆盖优先于一切存储状态。
	if key := opt.EnvKey(); key != "" {
		if env, found := os.LookupEnv(key); found {
			value, err := c.decodeEnv(opt, env)
			if err != nil {
				return c.resolveFailure(name, opt.Default(), err, env, SourceEnv)
			}
			return value, SourceEnv, nil
		}
	}

	if value, found := c.overrides[name]; found {
		return value, SourceTransient, nil
	}

	if entry, found := c.cache.Get(name); found {
		if !entry.present {
			return opt.Default(), SourceDefault, nil
		}
		return entry.value, SourceCache, nil
	}

	raw, present, err := c.backend.Read(ctx, name)
	if err != nil {
		return nil, SourceBackend, fmt.Errorf("xsettings: read option %q: %w", name, err)
	}
	if !present {
		// 记录已知缺失，后续读取与删除都不必再触达后端。
		c.cacheStore(opt, cacheEntry{present: false})
		return opt.Default(), SourceDefault, nil
	}

	value, err := c.decodeRaw(opt, raw)
	if err != nil {
		value, vsource, rerr := c.resolveFailure(name, opt.Default(), err, raw, SourceBackend)
		if rerr != nil {
			return nil, vsource, rerr
		}
		// 兜底结果同样写入缓存，损坏的存储值不必每次读取都触达后端。
		c.cacheStore(opt, cacheEntry{value: value, raw: raw, present: true})
		return value, vsource, nil
	}

	c.cacheStore(opt, cacheEntry{value: value, raw: raw, present: true})
	return value, SourceBackend, nil
}

// decodeRaw 将后端原生值解析并校验为类型化值。
func (c *Config) decodeRaw(opt *xoption.Option, raw string) (any, error) {
	value, err := opt.Deserialize(raw)
	if err != nil {
		return nil, err
	}
	if err := opt.Validate(value); err != nil {
		return nil, err
	}
	return value, nil
}

// decodeEnv 将环境变量内容（JSON 形式）解析并校验为类型化值。
func (c *Config) decodeEnv(opt *xoption.Option, env string) (any, error) {
	value, err := opt.FromJSON(json.RawMessage(env))
	if err != nil {
		return nil, err
	}
	if err := opt.Validate(value); err != nil {
		return nil, err
	}
	return value, nil
}

// Set 写入设置项的类型化值。
//
// value 为 nil 等价于 Delete。写入校验严格：非法值直接返回
// ErrValidation，不进入解析器。新值与缓存一致时跳过后端写入。
func (c *Config) Set(ctx context.Context, name string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setLocked(ctx, name, value)
}

// setLocked 执行完整的写入管线，调用方必须持有 c.mu。
func (c *Config) setLocked(ctx context.Context, name string, value any) error {
	opt, ok := c.reg.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}

	// 显式写入终结临时覆盖。
	delete(c.overrides, name)

	if value == nil {
		return c.deleteLocked(ctx, opt)
	}

	if err := opt.Validate(value); err != nil {
		return err
	}
	raw, err := opt.Serialize(value)
	if err != nil {
		return err
	}

	if entry, found := c.cache.Get(name); found && entry.present && entry.raw == raw {
		c.logger.Debug("option unchanged, skipping backend write", "option", name)
		return nil
	}

	if err := c.backend.Write(ctx, name, raw); err != nil {
		return fmt.Errorf("xsettings: write option %q: %w", name, err)
	}
	c.cacheStore(opt, cacheEntry{value: value, raw: raw, present: true})
	return nil
}

// Delete 从后端移除设置项，之后读取回到默认值。
// 键本就不存在时为幂等的空操作。
func (c *Config) Delete(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	opt, ok := c.reg.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	delete(c.overrides, name)
	return c.deleteLocked(ctx, opt)
}

// deleteLocked 执行后端删除并记录缺失。已知缺失时跳过后端。
func (c *Config) deleteLocked(ctx context.Context, opt *xoption.Option) error {
	name := opt.Name()
	if entry, found := c.cache.Get(name); found && !entry.present {
		return nil
	}
	if err := c.backend.Delete(ctx, name); err != nil {
		return fmt.Errorf("xsettings: delete option %q: %w", name, err)
	}
	c.cacheStore(opt, cacheEntry{present: false})
	return nil
}

// GetRaw 返回设置项的后端原生值，不经过编解码。
// 键不存在时返回 ok=false。绕过缓存与各类覆盖。
func (c *Config) GetRaw(ctx context.Context, name string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.reg.Lookup(name); !ok {
		return "", false, fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	return c.backend.Read(ctx, name)
}

// SetRaw 直接写入后端原生值，不做校验。
// 供迁移逻辑对旧格式数据做原地改写；常规代码应使用 Set。
func (c *Config) SetRaw(ctx context.Context, name string, raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.backend.Write(ctx, name, raw); err != nil {
		return fmt.Errorf("xsettings: write raw %q: %w", name, err)
	}
	// 原生值未经解析，使既有缓存失效即可。
	c.cache.Remove(name)
	return nil
}

// GetJSON 返回设置项当前值的 JSON 形式。
func (c *Config) GetJSON(ctx context.Context, name string) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	opt, ok := c.reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	value, _, err := c.lookupLocked(ctx, name)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return json.RawMessage("null"), nil
	}
	return opt.ToJSON(value)
}

// SetJSON 以 JSON 形式写入设置项。JSON null 等价于 Delete。
func (c *Config) SetJSON(ctx context.Context, name string, data json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	opt, ok := c.reg.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	if isJSONNull(data) {
		delete(c.overrides, name)
		return c.deleteLocked(ctx, opt)
	}
	value, err := opt.FromJSON(data)
	if err != nil {
		return err
	}
	return c.setLocked(ctx, name, value)
}

// SetTransient 设置临时覆盖：仅对本实例可见，不写入后端。
// 适用于命令行参数等一次性覆盖。后续对同一设置项的 Set 或 Delete
// 会清除该覆盖。value 为 nil 时仅清除覆盖。
func (c *Config) SetTransient(ctx context.Context, name string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	opt, ok := c.reg.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	if value == nil {
		delete(c.overrides, name)
		return nil
	}
	if err := opt.Validate(value); err != nil {
		return err
	}
	c.overrides[name] = value
	return nil
}

// Reset 删除所有已注册设置项的存储值并清空临时覆盖，
// 使全部读取回到默认值。版本标记保持不变。
func (c *Config) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.overrides)
	for _, opt := range c.reg.Options() {
		if err := c.deleteLocked(ctx, opt); err != nil {
			return err
		}
	}
	return nil
}

// isJSONNull 报告数据是否为 JSON null 字面量。
func isJSONNull(data json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return false
	}
	return v == nil
}
