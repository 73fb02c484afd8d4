package xsettings

import (
	"context"
	"fmt"
	"sort"
	"strconv"
)

// VersionUnset 表示后端尚无版本标记（全新存储）。
const VersionUnset int64 = 0

// MigrationFunc 在构造期执行一次，将存储从 stored 版本迁移到当前版本。
// stored 为 VersionUnset 时表示全新存储。返回错误会使 New 失败。
type MigrationFunc func(ctx context.Context, c *Config, stored int64) error

// Step 是一段版本边界迁移：把低于 To 的存储提升到 To。
type Step struct {
	// To 为该段迁移完成后的版本。
	To int64

	// Apply 执行该段迁移。
	Apply func(ctx context.Context, c *Config) error
}

// Steps 把若干边界迁移组合成 MigrationFunc。
//
// 各段按 To 从小到大依次应用，存储版本低于某段的 To 时该段生效，
// 因此一次构造可跨越多个版本边界。全新存储（VersionUnset）跳过所有段，
// 无旧数据可迁。
func Steps(steps ...Step) MigrationFunc {
	ordered := make([]Step, len(steps))
	copy(ordered, steps)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].To < ordered[j].To })

	return func(ctx context.Context, c *Config, stored int64) error {
		if stored == VersionUnset {
			return nil
		}
		for _, step := range ordered {
			if stored >= step.To {
				continue
			}
			if err := step.Apply(ctx, c); err != nil {
				return fmt.Errorf("step to version %d: %w", step.To, err)
			}
		}
		return nil
	}
}

// runMigration 读取存储版本、执行迁移并写回当前版本。
//
// 版本单调不减：存储版本高于当前版本时不迁移也不回写
// （新版本写入的存储由旧版本代码打开时保持原样）。
func (c *Config) runMigration(ctx context.Context) error {
	raw, present, err := c.backend.Read(ctx, c.versionKey)
	if err != nil {
		return fmt.Errorf("%w: read stored version: %w", ErrMigration, err)
	}

	stored := VersionUnset
	if present {
		stored, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: malformed stored version %q: %w", ErrMigration, raw, err)
		}
	}

	if stored > c.version {
		c.logger.Warn("stored version is newer than current, leaving storage untouched",
			"stored", stored, "current", c.version)
		return nil
	}
	if stored == c.version {
		return nil
	}

	if c.migrateFn != nil {
		if err := c.migrateFn(ctx, c, stored); err != nil {
			return fmt.Errorf("%w: from version %d to %d: %w", ErrMigration, stored, c.version, err)
		}
	}

	if err := c.backend.Write(ctx, c.versionKey, strconv.FormatInt(c.version, 10)); err != nil {
		return fmt.Errorf("%w: write current version: %w", ErrMigration, err)
	}
	if stored != VersionUnset {
		c.logger.Info("configuration migrated", "from", stored, "to", c.version)
	}
	return nil
}

// Rename 把设置项的存储值从旧键移动到新键，供迁移步骤使用。
//
// 旧键无值时为空操作；新键已有值时保留新键的值，仅删除旧键。
func (c *Config) Rename(ctx context.Context, oldName, newName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, present, err := c.backend.Read(ctx, oldName)
	if err != nil {
		return fmt.Errorf("xsettings: rename %q: %w", oldName, err)
	}
	if !present {
		return nil
	}

	_, taken, err := c.backend.Read(ctx, newName)
	if err != nil {
		return fmt.Errorf("xsettings: rename %q: %w", oldName, err)
	}
	if !taken {
		if err := c.backend.Write(ctx, newName, raw); err != nil {
			return fmt.Errorf("xsettings: rename %q to %q: %w", oldName, newName, err)
		}
		c.cache.Remove(newName)
	}

	if err := c.backend.Delete(ctx, oldName); err != nil {
		return fmt.Errorf("xsettings: rename %q: %w", oldName, err)
	}
	c.cache.Remove(oldName)
	return nil
}
