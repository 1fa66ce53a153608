package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ValueKind tags the payload carried by a Value.
type ValueKind uint8

const (
	// ValueUnset marks a position the host left empty.
	ValueUnset ValueKind = iota
	// ValueString carries text.
	ValueString
	// ValueNumber carries a number.
	ValueNumber
	// ValueBool carries a boolean.
	ValueBool
)

func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValueBool:
		return "bool"
	default:
		return "unset"
	}
}

// Value is an input value: a string, a number or a bool. The zero Value is unset.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
}

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: ValueString, str: s} }

// NumberValue wraps a number.
func NumberValue(n float64) Value { return Value{kind: ValueNumber, num: n} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{kind: ValueBool, b: b} }

// ValueOf converts a plain Go value. Supported: nil, string, bool and the
// integer and float types.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return x, nil
	case string:
		return StringValue(x), nil
	case bool:
		return BoolValue(x), nil
	case int:
		return NumberValue(float64(x)), nil
	case int32:
		return NumberValue(float64(x)), nil
	case int64:
		return NumberValue(float64(x)), nil
	case uint:
		return NumberValue(float64(x)), nil
	case uint64:
		return NumberValue(float64(x)), nil
	case float32:
		return NumberValue(float64(x)), nil
	case float64:
		return NumberValue(x), nil
	default:
		return Value{}, fmt.Errorf("unsupported input value type %T", v)
	}
}

// Kind returns the payload tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsSet reports whether the value carries a payload.
func (v Value) IsSet() bool { return v.kind != ValueUnset }

// Str returns the string payload.
func (v Value) Str() (string, bool) { return v.str, v.kind == ValueString }

// Number returns the numeric payload.
func (v Value) Number() (float64, bool) { return v.num, v.kind == ValueNumber }

// Bool returns the boolean payload.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == ValueBool }

// Index interprets a numeric payload as a non-negative list index.
func (v Value) Index() (int, bool) {
	if v.kind != ValueNumber || v.num < 0 || v.num != math.Trunc(v.num) || v.num > math.MaxInt32 {
		return 0, false
	}
	return int(v.num), true
}

// Any returns the payload as a plain Go value (nil when unset).
func (v Value) Any() any {
	switch v.kind {
	case ValueString:
		return v.str
	case ValueNumber:
		return v.num
	case ValueBool:
		return v.b
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case ValueString:
		return strconv.Quote(v.str)
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.b)
	default:
		return "<unset>"
	}
}

// MarshalJSON encodes the payload; unset encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// UnmarshalJSON decodes null, strings, numbers and bools.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
