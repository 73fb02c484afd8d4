package xoption

import (
	"encoding/json"
	"fmt"
)

// CachePolicy 控制单个设置项是否参与实例级缓存。
type CachePolicy int

const (
	// CacheInherit 跟随 Config 实例的全局缓存策略。
	CacheInherit CachePolicy = iota

	// CacheEnabled 强制启用缓存，无论实例策略如何。
	CacheEnabled

	// CacheDisabled 强制禁用缓存，无论实例策略如何。
	CacheDisabled
)

// Option 是单个设置项的不可变描述符：标识、默认值、编解码器与缓存策略。
// 通过 New 构造，构造后不再修改，生命周期与注册表一致。
type Option struct {
	name   string
	codec  Codec
	def    any
	cache  CachePolicy
	envKey string
	envSet bool
	doc    string
}

// Attr 配置 Option 的可选属性。
type Attr func(*Option)

// WithDefault 设置默认值。
// 无存储值或读取解析失败（默认解析器）时返回该值。构造时即校验合法性。
func WithDefault(value any) Attr {
	return func(o *Option) { o.def = value }
}

// WithCachePolicy 设置缓存策略，默认为 CacheInherit。
func WithCachePolicy(p CachePolicy) Attr {
	return func(o *Option) { o.cache = p }
}

// WithEnv 设置环境变量名，不能为空。
// 该环境变量存在时，其内容（JSON 形式）覆盖存储的值。
func WithEnv(key string) Attr {
	return func(o *Option) {
		o.envKey = key
		o.envSet = true
	}
}

// WithDoc 设置人类可读的说明。
func WithDoc(doc string) Attr {
	return func(o *Option) { o.doc = doc }
}

// New 构造设置项描述符。
//
// 声明期校验（违规立即返回错误，不延迟到首次使用）：
//   - name 不能为空
//   - codec 不能为 nil，容器编解码器的元素必须是标量
//   - 环境变量名（若设置）不能为空
//   - 默认值（若设置）必须通过 codec.Validate
func New(name string, codec Codec, attrs ...Attr) (*Option, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInitialization)
	}
	if codec == nil {
		return nil, fmt.Errorf("%w: nil codec for %q", ErrInitialization, name)
	}

	if err := checkElemCodec(codec); err != nil {
		return nil, fmt.Errorf("%w: option %q: %w", ErrInitialization, name, err)
	}

	o := &Option{name: name, codec: codec}
	for _, attr := range attrs {
		attr(o)
	}

	if o.envSet && o.envKey == "" {
		return nil, fmt.Errorf("%w: option %q has empty env key", ErrInitialization, name)
	}

	if o.def != nil {
		if err := codec.Validate(o.def); err != nil {
			return nil, fmt.Errorf("%w: option %q has invalid default: %w", ErrInitialization, name, err)
		}
	}

	return o, nil
}

// MustNew 与 New 相同，声明不合法时 panic。
// 适用于包级静态声明。
func MustNew(name string, codec Codec, attrs ...Attr) *Option {
	o, err := New(name, codec, attrs...)
	if err != nil {
		panic(err)
	}
	return o
}

// checkElemCodec 校验容器编解码器的元素合法性。
func checkElemCodec(codec Codec) error {
	var elem Codec
	switch c := codec.(type) {
	case ArrayCodec:
		elem = c.Elem
	case MapCodec:
		elem = c.Elem
	default:
		return nil
	}
	if elem == nil {
		return fmt.Errorf("container codec requires an element codec")
	}
	if isContainerKind(elem.Kind()) {
		return fmt.Errorf("container codec cannot nest another container")
	}
	return nil
}

// Name 返回设置项名称，即后端存储键。
func (o *Option) Name() string { return o.name }

// Codec 返回编解码器。
func (o *Option) Codec() Codec { return o.codec }

// Default 返回默认值，未设置时为 nil。
func (o *Option) Default() any { return o.def }

// CachePolicy 返回缓存策略。
func (o *Option) CachePolicy() CachePolicy { return o.cache }

// EnvKey 返回环境变量名，未设置时为空字符串。
func (o *Option) EnvKey() string { return o.envKey }

// Doc 返回说明文本。
func (o *Option) Doc() string { return o.doc }

// =============================================================================
// 带名称标注的编解码封装
//
// Codec 实现不感知设置项名称，以下方法在错误中补充名称后再返回，
// 调用方应优先使用这些封装而非直接调用 Codec。
// =============================================================================

// Validate 校验类型化值。
func (o *Option) Validate(value any) error {
	return o.named(o.codec.Validate(value))
}

// Serialize 将类型化值编码为原生值。
func (o *Option) Serialize(value any) (string, error) {
	raw, err := o.codec.Serialize(value)
	return raw, o.named(err)
}

// Deserialize 将原生值解析为类型化值。
func (o *Option) Deserialize(raw string) (any, error) {
	value, err := o.codec.Deserialize(raw)
	return value, o.named(err)
}

// ToJSON 将类型化值编码为 JSON 形式。
func (o *Option) ToJSON(value any) (json.RawMessage, error) {
	data, err := o.codec.ToJSON(value)
	return data, o.named(err)
}

// FromJSON 将 JSON 形式解析为类型化值。
func (o *Option) FromJSON(data json.RawMessage) (any, error) {
	value, err := o.codec.FromJSON(data)
	return value, o.named(err)
}

// named 在类型化错误上补充设置项名称。
func (o *Option) named(err error) error {
	switch e := any(err).(type) {
	case *ValidationError:
		if e.Name == "" {
			e.Name = o.name
		}
	case *DeserializationError:
		if e.Name == "" {
			e.Name = o.name
		}
	}
	return err
}
