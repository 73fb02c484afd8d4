package xoption

import (
	"errors"
	"fmt"
)

// 声明期与运行期错误。
var (
	// ErrInitialization 表示设置项声明不合法（空名称、nil 编解码器、默认值无效等）。
	ErrInitialization = errors.New("xoption: invalid option declaration")

	// ErrDuplicateOption 表示同一注册表内重复声明了同名设置项。
	ErrDuplicateOption = errors.New("xoption: duplicate option name")

	// ErrKindMismatch 表示覆盖继承的设置项时编解码器种类发生了变化。
	ErrKindMismatch = errors.New("xoption: option overridden with different codec kind")

	// ErrValidation 表示类型化值违反了设置项的约束。
	// 具体错误为 *ValidationError，可通过 errors.Is 匹配此哨兵。
	ErrValidation = errors.New("xoption: validation failed")

	// ErrDeserialization 表示存储的值无法解析为声明的类型。
	// 具体错误为 *DeserializationError，可通过 errors.Is 匹配此哨兵。
	ErrDeserialization = errors.New("xoption: deserialization failed")
)

// ValidationError 描述一次校验失败。
// Name 为设置项名称，直接调用 Codec 时可能为空。
type ValidationError struct {
	Name   string
	Value  any
	Reason string
}

// Error 实现 error 接口。
func (e *ValidationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("xoption: invalid value %v for %q: %s", e.Value, e.Name, e.Reason)
	}
	return fmt.Sprintf("xoption: invalid value %v: %s", e.Value, e.Reason)
}

// Unwrap 匹配 ErrValidation 哨兵。
func (e *ValidationError) Unwrap() error { return ErrValidation }

// DeserializationError 描述一次反序列化失败。
// Raw 为触发失败的原生值或 JSON 值。
type DeserializationError struct {
	Name   string
	Raw    any
	Reason string
}

// Error 实现 error 接口。
func (e *DeserializationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("xoption: cannot deserialize %v for %q: %s", e.Raw, e.Name, e.Reason)
	}
	return fmt.Sprintf("xoption: cannot deserialize %v: %s", e.Raw, e.Reason)
}

// Unwrap 匹配 ErrDeserialization 哨兵。
func (e *DeserializationError) Unwrap() error { return ErrDeserialization }

// validationErrf 构造不带名称的校验错误，名称由 Option 层补充。
func validationErrf(value any, format string, args ...any) error {
	return &ValidationError{Value: value, Reason: fmt.Sprintf(format, args...)}
}

// deserializationErrf 构造不带名称的反序列化错误，名称由 Option 层补充。
func deserializationErrf(raw any, format string, args ...any) error {
	return &DeserializationError{Raw: raw, Reason: fmt.Sprintf(format, args...)}
}
