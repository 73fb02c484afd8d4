package xoption

import "encoding/json"

// Kind 标识编解码器的种类。
// 覆盖继承的设置项时种类必须保持一致。
type Kind string

// 内置编解码器种类。
const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
	KindArray  Kind = "array"
	KindMap    Kind = "map"
)

// Codec 定义单一设置项类型在三种表示之间的转换与校验契约。
//
// 实现约束：
//   - Deserialize 与 FromJSON 对无法解析的输入返回 *DeserializationError
//   - Validate 对违反约束的值返回 *ValidationError
//   - Serialize 与 ToJSON 对所有通过 Validate 的值必须成功，
//     且 Deserialize(Serialize(v)) == v、FromJSON(ToJSON(v)) == v
//     （可接受值域上无信息丢失）
//
// 新增设置项类型只需实现此接口，注册表、缓存与迁移逻辑无需改动。
type Codec interface {
	// Kind 返回编解码器种类。
	Kind() Kind

	// Validate 校验类型化值是否满足约束。
	Validate(value any) error

	// Serialize 将类型化值编码为后端存储的原生字符串。
	Serialize(value any) (string, error)

	// Deserialize 将原生字符串解析为类型化值。
	Deserialize(raw string) (any, error)

	// ToJSON 将类型化值编码为 JSON 形式。
	ToJSON(value any) (json.RawMessage, error)

	// FromJSON 将 JSON 形式解析为类型化值。
	FromJSON(data json.RawMessage) (any, error)
}

// isContainerKind 报告种类是否为容器。
// 容器的元素编解码器必须是标量，避免嵌套容器的原生表示歧义。
func isContainerKind(k Kind) bool {
	return k == KindArray || k == KindMap
}
