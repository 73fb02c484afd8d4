package xoption

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// 辅助函数
// =============================================================================

func int64Ptr(n int64) *int64       { return &n }
func float64Ptr(f float64) *float64 { return &f }

// assertRawRoundTrip 验证原生值往返无信息丢失。
func assertRawRoundTrip(t *testing.T, c Codec, value any) {
	t.Helper()

	require.NoError(t, c.Validate(value))

	raw, err := c.Serialize(value)
	require.NoError(t, err)

	back, err := c.Deserialize(raw)
	require.NoError(t, err)
	assert.Equal(t, value, back)
}

// assertJSONRoundTrip 验证 JSON 值往返无信息丢失。
func assertJSONRoundTrip(t *testing.T, c Codec, value any) {
	t.Helper()

	data, err := c.ToJSON(value)
	require.NoError(t, err)

	back, err := c.FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, value, back)
}

// =============================================================================
// StringCodec
// =============================================================================

func TestStringCodec_RoundTrip(t *testing.T) {
	c := StringCodec{}
	for _, v := range []any{"", "hello", "多字节字符串", "with \"quotes\" and \n newline"} {
		assertRawRoundTrip(t, c, v)
		assertJSONRoundTrip(t, c, v)
	}
}

func TestStringCodec_DisallowEmpty_RejectsEmpty(t *testing.T) {
	c := StringCodec{DisallowEmpty: true}

	err := c.Validate("")
	assert.ErrorIs(t, err, ErrValidation)

	assert.NoError(t, c.Validate("x"))
}

func TestStringCodec_Choices_EnforcesMembership(t *testing.T) {
	c := StringCodec{Choices: []string{"red", "green", "blue"}}

	assert.NoError(t, c.Validate("green"))

	err := c.Validate("yellow")
	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "yellow", verr.Value)
}

func TestStringCodec_Validate_RejectsNonString(t *testing.T) {
	c := StringCodec{}
	assert.ErrorIs(t, c.Validate(42), ErrValidation)
	assert.ErrorIs(t, c.Validate(nil), ErrValidation)
}

func TestStringCodec_FromJSON_RejectsNonString(t *testing.T) {
	c := StringCodec{}
	_, err := c.FromJSON(json.RawMessage(`42`))
	assert.ErrorIs(t, err, ErrDeserialization)
}

// =============================================================================
// IntCodec
// =============================================================================

func TestIntCodec_RoundTrip(t *testing.T) {
	c := IntCodec{}
	for _, v := range []any{int64(0), int64(-1), int64(42), int64(1<<62 - 1)} {
		assertRawRoundTrip(t, c, v)
		assertJSONRoundTrip(t, c, v)
	}
}

func TestIntCodec_Deserialize_RejectsGarbage(t *testing.T) {
	c := IntCodec{}

	_, err := c.Deserialize("abc")
	assert.ErrorIs(t, err, ErrDeserialization)

	_, err = c.Deserialize("1.5")
	assert.ErrorIs(t, err, ErrDeserialization)
}

func TestIntCodec_Range_Enforced(t *testing.T) {
	c := IntCodec{Min: int64Ptr(1), Max: int64Ptr(10)}

	assert.NoError(t, c.Validate(int64(1)))
	assert.NoError(t, c.Validate(int64(10)))
	assert.ErrorIs(t, c.Validate(int64(0)), ErrValidation)
	assert.ErrorIs(t, c.Validate(int64(11)), ErrValidation)
}

func TestIntCodec_AcceptsPlainInt(t *testing.T) {
	c := IntCodec{}

	require.NoError(t, c.Validate(7))

	raw, err := c.Serialize(7)
	require.NoError(t, err)
	assert.Equal(t, "7", raw)

	// 规范形式始终为 int64。
	back, err := c.Deserialize(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), back)
}

func TestIntCodec_FromJSON_RejectsFloatAndString(t *testing.T) {
	c := IntCodec{}

	_, err := c.FromJSON(json.RawMessage(`1.5`))
	assert.ErrorIs(t, err, ErrDeserialization)

	_, err = c.FromJSON(json.RawMessage(`"1"`))
	assert.ErrorIs(t, err, ErrDeserialization)
}

// =============================================================================
// FloatCodec
// =============================================================================

func TestFloatCodec_RoundTrip(t *testing.T) {
	c := FloatCodec{}
	for _, v := range []any{float64(0), 3.14, -2.5e10, 1e-9} {
		assertRawRoundTrip(t, c, v)
		assertJSONRoundTrip(t, c, v)
	}
}

func TestFloatCodec_Range_Enforced(t *testing.T) {
	c := FloatCodec{Min: float64Ptr(0), Max: float64Ptr(1)}

	assert.NoError(t, c.Validate(0.5))
	assert.ErrorIs(t, c.Validate(-0.1), ErrValidation)
	assert.ErrorIs(t, c.Validate(1.1), ErrValidation)
}

func TestFloatCodec_Deserialize_RejectsGarbage(t *testing.T) {
	c := FloatCodec{}
	_, err := c.Deserialize("not-a-number")
	assert.ErrorIs(t, err, ErrDeserialization)
}

// =============================================================================
// BoolCodec
// =============================================================================

func TestBoolCodec_RoundTrip(t *testing.T) {
	c := BoolCodec{}
	assertRawRoundTrip(t, c, true)
	assertRawRoundTrip(t, c, false)
	assertJSONRoundTrip(t, c, true)
	assertJSONRoundTrip(t, c, false)
}

func TestBoolCodec_Deserialize_AcceptsAliases(t *testing.T) {
	c := BoolCodec{}

	tests := []struct {
		raw  string
		want bool
	}{
		{"1", true}, {"YES", true}, {"true", true}, {"On", true},
		{"0", false}, {"no", false}, {"FALSE", false}, {"off", false},
	}
	for _, tt := range tests {
		got, err := c.Deserialize(tt.raw)
		require.NoError(t, err, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}
}

func TestBoolCodec_Deserialize_RejectsGarbage(t *testing.T) {
	c := BoolCodec{}
	_, err := c.Deserialize("maybe")
	assert.ErrorIs(t, err, ErrDeserialization)
}

// =============================================================================
// ArrayCodec / MapCodec
// =============================================================================

func TestArrayCodec_RoundTrip(t *testing.T) {
	c := ArrayCodec{Elem: StringCodec{}}

	value := []any{"a", "b", "c"}
	assertRawRoundTrip(t, c, value)
	assertJSONRoundTrip(t, c, value)

	empty := []any{}
	assertRawRoundTrip(t, c, empty)
}

func TestArrayCodec_Validate_ChecksElements(t *testing.T) {
	c := ArrayCodec{Elem: IntCodec{Min: int64Ptr(0)}}

	assert.NoError(t, c.Validate([]any{int64(1), int64(2)}))
	assert.ErrorIs(t, c.Validate([]any{int64(1), int64(-2)}), ErrValidation)
	assert.ErrorIs(t, c.Validate([]any{"x"}), ErrValidation)
	assert.ErrorIs(t, c.Validate("not-a-slice"), ErrValidation)
}

func TestArrayCodec_FromJSON_RejectsNonArray(t *testing.T) {
	c := ArrayCodec{Elem: StringCodec{}}
	_, err := c.FromJSON(json.RawMessage(`{"a":1}`))
	assert.ErrorIs(t, err, ErrDeserialization)
}

func TestMapCodec_RoundTrip(t *testing.T) {
	c := MapCodec{Elem: IntCodec{}}

	value := map[string]any{"a": int64(1), "b": int64(2)}
	assertRawRoundTrip(t, c, value)
	assertJSONRoundTrip(t, c, value)
}

func TestMapCodec_Serialize_Deterministic(t *testing.T) {
	c := MapCodec{Elem: IntCodec{}}
	value := map[string]any{"b": int64(2), "a": int64(1), "c": int64(3)}

	first, err := c.Serialize(value)
	require.NoError(t, err)
	second, err := c.Serialize(value)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, first)
}

func TestMapCodec_Validate_ChecksValues(t *testing.T) {
	c := MapCodec{Elem: BoolCodec{}}

	assert.NoError(t, c.Validate(map[string]any{"on": true}))
	assert.ErrorIs(t, c.Validate(map[string]any{"on": "yes"}), ErrValidation)
	assert.ErrorIs(t, c.Validate([]any{}), ErrValidation)
}
