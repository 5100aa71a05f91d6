package model

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies which variant of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindRenderable
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindRenderable:
		return "renderable"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Value is a single displayable field value.
// Renderable values carry pre-styled text alongside the plain text used for
// searching.
type Value struct {
	kind    Kind
	str     string
	num     float64
	boolean bool
	styled  string
}

// Null returns the empty value.
func Null() Value { return Value{} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a float.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int wraps an integer as a Number.
func Int(i int64) Value { return Number(float64(i)) }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Renderable wraps styled output. plain is what search and copy see.
func Renderable(plain, styled string) Value {
	return Value{kind: KindRenderable, str: plain, styled: styled}
}

// Kind reports the variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds no value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsNumber returns the numeric payload and whether v is a Number.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsBool returns the boolean payload and whether v is a Bool.
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// String returns the plain string form of v. Null has an empty string form.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindRenderable:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.boolean)
	default:
		return ""
	}
}

// Display returns the text shown in a cell: styled output for renderables,
// the plain string form otherwise.
func (v Value) Display() string {
	if v.kind == KindRenderable {
		return v.styled
	}
	return v.String()
}

// Truthy follows JavaScript truthiness: null, "", 0, NaN and false are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindBool:
		return v.boolean
	case KindRenderable:
		return true
	default:
		return false
	}
}

// Equal compares kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.boolean == other.boolean
	case KindRenderable:
		return v.str == other.str && v.styled == other.styled
	default:
		return true
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
