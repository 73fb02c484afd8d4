package xsettings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Snapshot 导出全部设置项当前值的 JSON 对象。
//
// 键按注册表声明顺序排列，便于人工审阅与版本库内的稳定 diff。
// 无存储值的设置项导出其默认值；版本标记不包含在快照中。
func (c *Config) Snapshot(ctx context.Context) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, opt := range c.reg.Options() {
		value, _, err := c.lookupLocked(ctx, opt.Name())
		if err != nil {
			return nil, fmt.Errorf("xsettings: snapshot: %w", err)
		}

		data := json.RawMessage("null")
		if value != nil {
			data, err = opt.ToJSON(value)
			if err != nil {
				return nil, fmt.Errorf("xsettings: snapshot: %w", err)
			}
		}

		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(opt.Name())
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(data)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Restore 从快照写回设置项，逐键尽力而为。
//
// 未注册的键记录日志后忽略，保证旧快照可导入新版本。JSON null 删除对应
// 设置项。单个键解析失败走解析器兜底（来源为 SourceRestore），校验失败
// 记入返回错误；其余键照常恢复，返回值聚合所有失败。
func (c *Config) Restore(ctx context.Context, snapshot json.RawMessage) error {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(snapshot, &entries); err != nil {
		return fmt.Errorf("%w: %w", ErrBadSnapshot, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	// 按注册表顺序恢复，使多次 Restore 的写入顺序可重现。
	for _, opt := range c.reg.Options() {
		data, found := entries[opt.Name()]
		if !found {
			continue
		}
		delete(entries, opt.Name())

		if err := c.restoreOne(ctx, opt.Name(), data); err != nil {
			errs = append(errs, fmt.Errorf("restore %q: %w", opt.Name(), err))
		}
	}

	for name := range entries {
		c.logger.Warn("snapshot contains unknown option, skipping", "option", name)
	}
	return errors.Join(errs...)
}

// restoreOne 恢复单个设置项，调用方必须持有 c.mu。
func (c *Config) restoreOne(ctx context.Context, name string, data json.RawMessage) error {
	opt, _ := c.reg.Lookup(name)

	if isJSONNull(data) {
		delete(c.overrides, name)
		return c.deleteLocked(ctx, opt)
	}

	value, err := opt.FromJSON(data)
	if err != nil {
		value, _, rerr := c.resolveFailure(name, nil, err, data, SourceRestore)
		if rerr != nil {
			return rerr
		}
		if value == nil {
			// 解析器选择放弃该键，保留既有存储值。
			return nil
		}
		return c.setLocked(ctx, name, value)
	}
	return c.setLocked(ctx, name, value)
}
