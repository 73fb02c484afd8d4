package xsettings

import "fmt"

// ValueSource 标识一次读取结果的来源。
type ValueSource int

const (
	// SourceDefault 值来自设置项声明的默认值。
	SourceDefault ValueSource = iota

	// SourceBackend 值来自后端存储。
	SourceBackend

	// SourceCache 值来自实例缓存。
	SourceCache

	// SourceEnv 值来自环境变量覆盖。
	SourceEnv

	// SourceTransient 值来自临时覆盖（SetTransient）。
	SourceTransient

	// SourceResolver 值由解析器钩子兜底产生。
	SourceResolver

	// SourceRestore 值来自快照恢复的输入。
	// 仅出现在传递给解析器的 Failure 中。
	SourceRestore
)

// String 返回来源的可读名称。
func (s ValueSource) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceBackend:
		return "backend"
	case SourceCache:
		return "cache"
	case SourceEnv:
		return "env"
	case SourceTransient:
		return "transient"
	case SourceResolver:
		return "resolver"
	case SourceRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// Failure 描述一次无法信任存储数据的读取失败，交由解析器兜底。
type Failure struct {
	// Err 为触发失败的错误，匹配 xoption.ErrValidation 或
	// xoption.ErrDeserialization 哨兵。
	Err error

	// Name 为设置项名称。
	Name string

	// Raw 为触发失败的原生值或 JSON 值。
	Raw any

	// Source 标识该值的来源（env、backend 或 restore）。
	Source ValueSource
}

// Resolver 是读取路径的最后防线。
//
// 返回的值直接作为本次读取的结果并按缓存策略写入缓存。
// 返回非 nil 错误是致命条件：本次访问以 ErrResolver 中止，
// 不存在静默的无限回落链。Resolver 自身不应再访问触发失败的设置项。
type Resolver func(f Failure) (value any, err error)

// resolveFailure 调用解析器钩子；未设置解析器时记录失败并返回默认值。
// 返回的来源标识兜底值的实际出处（SourceResolver 或 SourceDefault）。
func (c *Config) resolveFailure(name string, def any, ferr error, raw any, source ValueSource) (any, ValueSource, error) {
	f := Failure{Err: ferr, Name: name, Raw: raw, Source: source}

	if c.resolver == nil {
		c.logger.Error("cannot resolve option value, falling back to default",
			"option", name, "source", source.String(), "error", ferr)
		return def, SourceDefault, nil
	}

	value, err := c.resolver(f)
	if err != nil {
		return nil, SourceResolver, fmt.Errorf("%w: option %q: %w", ErrResolver, name, err)
	}
	return value, SourceResolver, nil
}
