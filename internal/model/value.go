package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kuperiu/bimsyncManager/pkg/utils"
)

// ValueKind enumerates the shapes a resolved product value can take.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindNumber
	KindBool
	KindString
	KindObject
)

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Value is a single cell value. The zero Value is null.
//
// Values are comparable with == and can be used as map keys: objects and
// arrays are held as their canonical JSON text.
type Value struct {
	Kind   ValueKind
	Number float64
	Bool   bool
	Text   string
}

func NullValue() Value { return Value{} }

func NumberValue(f float64) Value { return Value{Kind: KindNumber, Number: f} }

func StringValue(s string) Value { return Value{Kind: KindString, Text: s} }

func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// ValueOf converts a decoded JSON value (or a Go scalar) into a Value.
func ValueOf(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return NullValue()
	case Value:
		return v
	case string:
		return StringValue(v)
	case bool:
		return BoolValue(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return NumberValue(f)
		}
		return StringValue(v.String())
	case *Record:
		if v == nil {
			return NullValue()
		}
		return objectValue(v)
	}
	if f, ok := utils.Numeric(raw); ok {
		return NumberValue(f)
	}
	return objectValue(raw)
}

func objectValue(raw interface{}) Value {
	data, err := json.Marshal(raw)
	if err != nil {
		return Value{Kind: KindObject, Text: fmt.Sprintf("%v", raw)}
	}
	return Value{Kind: KindObject, Text: string(data)}
}

func (v Value) IsNull() bool { return v.Kind == KindNull }

func (v Value) IsNumber() bool { return v.Kind == KindNumber }

// Float is the numeric coercion used by the summing aggregations:
// numbers as-is, booleans as 1/0, fully numeric strings parsed,
// everything else (null, text, objects) counts as 0.
func (v Value) Float() float64 {
	switch v.Kind {
	case KindNumber:
		return v.Number
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	case KindString:
		if f, ok := utils.ParseNumber(v.Text); ok {
			return f
		}
		return 0
	default:
		return 0
	}
}

// String renders the value for display; null renders as "null".
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return FormatNumber(v.Number)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindString, KindObject:
		return v.Text
	default:
		return "null"
	}
}

// Compare orders values for First/Last/Minimum/Maximum. Kinds order as
// number < bool < string < object < null; numbers compare numerically,
// strings and objects lexicographically, false before true.
func (v Value) Compare(other Value) int {
	if ra, rb := v.rank(), other.rank(); ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch v.Kind {
	case KindNumber:
		switch {
		case v.Number < other.Number:
			return -1
		case v.Number > other.Number:
			return 1
		}
		return 0
	case KindBool:
		switch {
		case v.Bool == other.Bool:
			return 0
		case !v.Bool:
			return -1
		}
		return 1
	case KindString, KindObject:
		return strings.Compare(v.Text, other.Text)
	default:
		return 0
	}
}

func (v Value) rank() int {
	switch v.Kind {
	case KindNumber:
		return 0
	case KindBool:
		return 1
	case KindString:
		return 2
	case KindObject:
		return 3
	default:
		return 4
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		if math.IsNaN(v.Number) || math.IsInf(v.Number, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.Number)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindString:
		return json.Marshal(v.Text)
	case KindObject:
		if json.Valid([]byte(v.Text)) {
			return []byte(v.Text), nil
		}
		return json.Marshal(v.Text)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return err
		}
		*v = Value{Kind: KindObject, Text: buf.String()}
		return nil
	}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = ValueOf(raw)
	return nil
}

// FormatNumber prints a float without exponent or trailing zeros.
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Row is one pivot row keyed by column GUID.
type Row map[string]Value
