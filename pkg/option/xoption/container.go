package xoption

import "encoding/json"

// =============================================================================
// ArrayCodec
// =============================================================================

// ArrayCodec 编解码有序列表设置项，元素由标量编解码器处理。
// 类型化值为 []any，原生值为 JSON 数组文本。
type ArrayCodec struct {
	// Elem 元素编解码器，必须是标量。
	Elem Codec
}

// Kind 返回 KindArray。
func (c ArrayCodec) Kind() Kind { return KindArray }

// Validate 校验类型化值及其每个元素。
func (c ArrayCodec) Validate(value any) error {
	items, ok := value.([]any)
	if !ok {
		return validationErrf(value, "must be a []any, got %T", value)
	}
	for _, item := range items {
		if err := c.Elem.Validate(item); err != nil {
			return err
		}
	}
	return nil
}

// Serialize 编码为 JSON 数组文本。
func (c ArrayCodec) Serialize(value any) (string, error) {
	data, err := c.ToJSON(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Deserialize 解析 JSON 数组文本。
func (c ArrayCodec) Deserialize(raw string) (any, error) {
	return c.FromJSON(json.RawMessage(raw))
}

// ToJSON 逐元素编码后组装 JSON 数组，避免重复序列化。
func (c ArrayCodec) ToJSON(value any) (json.RawMessage, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, validationErrf(value, "must be a []any, got %T", value)
	}
	encoded := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		data, err := c.Elem.ToJSON(item)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, data)
	}
	return json.Marshal(encoded)
}

// FromJSON 解析 JSON 数组并逐元素解码。
func (c ArrayCodec) FromJSON(data json.RawMessage) (any, error) {
	var encoded []json.RawMessage
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, deserializationErrf(string(data), "not a JSON array")
	}
	items := make([]any, 0, len(encoded))
	for _, e := range encoded {
		item, err := c.Elem.FromJSON(e)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// =============================================================================
// MapCodec
// =============================================================================

// MapCodec 编解码字符串键的映射设置项，值由标量编解码器处理。
// 类型化值为 map[string]any，原生值为 JSON 对象文本（键按字典序）。
type MapCodec struct {
	// Elem 值编解码器，必须是标量。
	Elem Codec
}

// Kind 返回 KindMap。
func (c MapCodec) Kind() Kind { return KindMap }

// Validate 校验类型化值及其每个值。
func (c MapCodec) Validate(value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return validationErrf(value, "must be a map[string]any, got %T", value)
	}
	for _, v := range m {
		if err := c.Elem.Validate(v); err != nil {
			return err
		}
	}
	return nil
}

// Serialize 编码为 JSON 对象文本。
func (c MapCodec) Serialize(value any) (string, error) {
	data, err := c.ToJSON(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Deserialize 解析 JSON 对象文本。
func (c MapCodec) Deserialize(raw string) (any, error) {
	return c.FromJSON(json.RawMessage(raw))
}

// ToJSON 逐值编码后组装 JSON 对象。
// encoding/json 对 map 按键排序，结果是确定性的。
func (c MapCodec) ToJSON(value any) (json.RawMessage, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, validationErrf(value, "must be a map[string]any, got %T", value)
	}
	encoded := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		data, err := c.Elem.ToJSON(v)
		if err != nil {
			return nil, err
		}
		encoded[k] = data
	}
	return json.Marshal(encoded)
}

// FromJSON 解析 JSON 对象并逐值解码。
func (c MapCodec) FromJSON(data json.RawMessage) (any, error) {
	var encoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, deserializationErrf(string(data), "not a JSON object")
	}
	m := make(map[string]any, len(encoded))
	for k, e := range encoded {
		v, err := c.Elem.FromJSON(e)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}
