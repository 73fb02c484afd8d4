package xoption

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// =============================================================================
// StringCodec
// =============================================================================

// StringCodec 编解码字符串设置项。
// 原生值即字符串本身。
type StringCodec struct {
	// DisallowEmpty 为 true 时空字符串视为非法值。
	DisallowEmpty bool

	// Choices 非空时限定允许的取值集合。
	Choices []string
}

// Kind 返回 KindString。
func (c StringCodec) Kind() Kind { return KindString }

// Validate 校验类型化值。
func (c StringCodec) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return validationErrf(value, "must be a string, got %T", value)
	}
	if c.DisallowEmpty && s == "" {
		return validationErrf(value, "empty value is not allowed")
	}
	if len(c.Choices) > 0 && !slices.Contains(c.Choices, s) {
		return validationErrf(value, "must be one of %v", c.Choices)
	}
	return nil
}

// Serialize 将字符串编码为原生值。
func (c StringCodec) Serialize(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", validationErrf(value, "must be a string, got %T", value)
	}
	return s, nil
}

// Deserialize 将原生值解析为字符串。
func (c StringCodec) Deserialize(raw string) (any, error) {
	return raw, nil
}

// ToJSON 编码为 JSON 字符串。
func (c StringCodec) ToJSON(value any) (json.RawMessage, error) {
	s, ok := value.(string)
	if !ok {
		return nil, validationErrf(value, "must be a string, got %T", value)
	}
	return json.Marshal(s)
}

// FromJSON 解析 JSON 字符串。
func (c StringCodec) FromJSON(data json.RawMessage) (any, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, deserializationErrf(string(data), "not a JSON string")
	}
	return s, nil
}

// =============================================================================
// IntCodec
// =============================================================================

// IntCodec 编解码整数设置项。
// 类型化值的规范形式为 int64，Validate 与 Serialize 同时接受 int。
type IntCodec struct {
	// Min 非 nil 时限定最小值（含）。
	Min *int64

	// Max 非 nil 时限定最大值（含）。
	Max *int64

	// Choices 非空时限定允许的取值集合。
	Choices []int64
}

// Kind 返回 KindInt。
func (c IntCodec) Kind() Kind { return KindInt }

// asInt64 将常见整数输入归一化为 int64。
func asInt64(value any) (int64, bool) {
	switch n := value.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

// Validate 校验类型化值。
func (c IntCodec) Validate(value any) error {
	n, ok := asInt64(value)
	if !ok {
		return validationErrf(value, "must be an integer, got %T", value)
	}
	if c.Min != nil && n < *c.Min {
		return validationErrf(value, "must be >= %d", *c.Min)
	}
	if c.Max != nil && n > *c.Max {
		return validationErrf(value, "must be <= %d", *c.Max)
	}
	if len(c.Choices) > 0 && !slices.Contains(c.Choices, n) {
		return validationErrf(value, "must be one of %v", c.Choices)
	}
	return nil
}

// Serialize 编码为十进制字符串。
func (c IntCodec) Serialize(value any) (string, error) {
	n, ok := asInt64(value)
	if !ok {
		return "", validationErrf(value, "must be an integer, got %T", value)
	}
	return strconv.FormatInt(n, 10), nil
}

// Deserialize 解析十进制字符串，返回 int64。
func (c IntCodec) Deserialize(raw string) (any, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, deserializationErrf(raw, "not an integer")
	}
	return n, nil
}

// ToJSON 编码为 JSON 数字。
func (c IntCodec) ToJSON(value any) (json.RawMessage, error) {
	n, ok := asInt64(value)
	if !ok {
		return nil, validationErrf(value, "must be an integer, got %T", value)
	}
	return json.Marshal(n)
}

// FromJSON 解析 JSON 整数。带小数部分的数字与字符串均视为非法。
func (c IntCodec) FromJSON(data json.RawMessage) (any, error) {
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return nil, deserializationErrf(string(data), "not a JSON number")
	}
	n, err := num.Int64()
	if err != nil {
		return nil, deserializationErrf(string(data), "not a JSON integer")
	}
	return n, nil
}

// =============================================================================
// FloatCodec
// =============================================================================

// FloatCodec 编解码浮点设置项。
// 类型化值的规范形式为 float64，整数输入会被提升。
type FloatCodec struct {
	// Min 非 nil 时限定最小值（含）。
	Min *float64

	// Max 非 nil 时限定最大值（含）。
	Max *float64
}

// Kind 返回 KindFloat。
func (c FloatCodec) Kind() Kind { return KindFloat }

// asFloat64 将数值输入归一化为 float64。
func asFloat64(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Validate 校验类型化值。
func (c FloatCodec) Validate(value any) error {
	f, ok := asFloat64(value)
	if !ok {
		return validationErrf(value, "must be a number, got %T", value)
	}
	if c.Min != nil && f < *c.Min {
		return validationErrf(value, "must be >= %v", *c.Min)
	}
	if c.Max != nil && f > *c.Max {
		return validationErrf(value, "must be <= %v", *c.Max)
	}
	return nil
}

// Serialize 编码为最短无损十进制表示。
func (c FloatCodec) Serialize(value any) (string, error) {
	f, ok := asFloat64(value)
	if !ok {
		return "", validationErrf(value, "must be a number, got %T", value)
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

// Deserialize 解析浮点字符串，返回 float64。
func (c FloatCodec) Deserialize(raw string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, deserializationErrf(raw, "not a number")
	}
	return f, nil
}

// ToJSON 编码为 JSON 数字。
func (c FloatCodec) ToJSON(value any) (json.RawMessage, error) {
	f, ok := asFloat64(value)
	if !ok {
		return nil, validationErrf(value, "must be a number, got %T", value)
	}
	return json.Marshal(f)
}

// FromJSON 解析 JSON 数字，返回 float64。
func (c FloatCodec) FromJSON(data json.RawMessage) (any, error) {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, deserializationErrf(string(data), "not a JSON number")
	}
	return f, nil
}

// =============================================================================
// BoolCodec
// =============================================================================

// 布尔原生值的允许形式，大小写不敏感。
var (
	trueRawValues  = []string{"1", "YES", "TRUE", "ON"}
	falseRawValues = []string{"0", "NO", "FALSE", "OFF"}
)

// BoolCodec 编解码布尔设置项。
// 序列化为 "1"/"0"，反序列化额外接受 YES/NO、TRUE/FALSE、ON/OFF。
type BoolCodec struct{}

// Kind 返回 KindBool。
func (c BoolCodec) Kind() Kind { return KindBool }

// Validate 校验类型化值。
func (c BoolCodec) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return validationErrf(value, "must be a bool, got %T", value)
	}
	return nil
}

// Serialize 编码为 "1" 或 "0"。
func (c BoolCodec) Serialize(value any) (string, error) {
	b, ok := value.(bool)
	if !ok {
		return "", validationErrf(value, "must be a bool, got %T", value)
	}
	if b {
		return "1", nil
	}
	return "0", nil
}

// Deserialize 解析布尔原生值。
func (c BoolCodec) Deserialize(raw string) (any, error) {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	if slices.Contains(trueRawValues, upper) {
		return true, nil
	}
	if slices.Contains(falseRawValues, upper) {
		return false, nil
	}
	return nil, deserializationErrf(raw, "must be one of %v or %v", trueRawValues, falseRawValues)
}

// ToJSON 编码为 JSON 布尔。
func (c BoolCodec) ToJSON(value any) (json.RawMessage, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, validationErrf(value, "must be a bool, got %T", value)
	}
	return json.Marshal(b)
}

// FromJSON 解析 JSON 布尔。
func (c BoolCodec) FromJSON(data json.RawMessage) (any, error) {
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, deserializationErrf(string(data), "not a JSON boolean")
	}
	return b, nil
}
