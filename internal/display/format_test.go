package display

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "long string", value: "hello world", want: "hel...rld"},
		{name: "exactly eight", value: "abcdefgh", want: "abc...fgh"},
		{name: "seven characters", value: "abcdefg", want: "***"},
		{name: "short string", value: "hi", want: "***"},
		{name: "single character", value: "x", want: "***"},
		{name: "empty string", value: "", want: "(empty string)"},
		{name: "multibyte counted by character", value: "ééééééé", want: "***"},
		{name: "multibyte long", value: "ñandú-añejo", want: "ñan...ejo"},
		{name: "null", value: nil, want: "(null)"},
		{name: "undefined", value: Undefined, want: "(undefined)"},
		{name: "number", value: json.Number("42"), want: "***"},
		{name: "float", value: 3.14, want: "***"},
		{name: "boolean", value: false, want: "***"},
		{name: "object", value: map[string]any{"a": "b"}, want: "***"},
		{name: "array", value: []any{"x"}, want: "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Mask(tt.value))
		})
	}
}

func TestReveal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "(null)", Reveal(nil))
	assert.Equal(t, "(undefined)", Reveal(Undefined))
	assert.Equal(t, "hello world", Reveal("hello world"))
	assert.Equal(t, "", Reveal(""))
	assert.Equal(t, "true", Reveal(true))
}

func TestStringify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "plain", want: "plain"},
		{name: "null", value: nil, want: "null"},
		{name: "undefined", value: Undefined, want: "undefined"},
		{name: "true", value: true, want: "true"},
		{name: "json number", value: json.Number("9007199254740993"), want: "9007199254740993"},
		{name: "exponent literal", value: json.Number("1e3"), want: "1000"},
		{name: "trailing zero", value: json.Number("1.50"), want: "1.5"},
		{name: "negative zero", value: json.Number("-0"), want: "0"},
		{name: "negative zero fraction", value: json.Number("-0.0"), want: "0"},
		{name: "negative integer", value: json.Number("-42"), want: "-42"},
		{name: "tiny literal", value: json.Number("1E-7"), want: "1e-7"},
		{name: "huge literal", value: json.Number("2.5e21"), want: "2.5e+21"},
		{name: "integral float", value: float64(1234567), want: "1234567"},
		{name: "fraction", value: 0.5, want: "0.5"},
		{name: "huge float", value: 1e21, want: "1e+21"},
		{name: "int", value: 7, want: "7"},
		{name: "object", value: map[string]any{"b": json.Number("1"), "a": "x"}, want: `{"a":"x","b":1}`},
		{name: "array", value: []any{"x", json.Number("2"), nil}, want: `["x",2,null]`},
		{name: "raw", value: json.RawMessage(`{"k":true}`), want: `{"k":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Stringify(tt.value))
		})
	}
}

func TestUndefinedEncodesAsNull(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(map[string]any{"k": Undefined})
	assert.NoError(t, err)
	assert.Equal(t, `{"k":null}`, string(data))
}
