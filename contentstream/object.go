package contentstream

import (
	"strconv"
	"strings"
)

// Object is an operand of a content-stream operator
type Object interface {
	Kind() ObjectKind
	String() string
}

// ObjectKind identifies the operand variant
type ObjectKind int

const (
	KindNull ObjectKind = iota
	KindBool
	KindInt
	KindReal
	KindString
	KindName
	KindArray
	KindDict
)

func (k ObjectKind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindReal:
		return "Real"
	case KindString:
		return "String"
	case KindName:
		return "Name"
	case KindArray:
		return "Array"
	case KindDict:
		return "Dict"
	default:
		return "Unknown"
	}
}

// Null is the null operand
type Null struct{}

func (Null) Kind() ObjectKind { return KindNull }
func (Null) String() string   { return "null" }

// Bool is a boolean operand
type Bool bool

func (b Bool) Kind() ObjectKind { return KindBool }
func (b Bool) String() string   { return strconv.FormatBool(bool(b)) }

// Int is an integer operand
type Int int64

func (i Int) Kind() ObjectKind { return KindInt }
func (i Int) String() string   { return strconv.FormatInt(int64(i), 10) }

// Real is a real-number operand
type Real float64

func (r Real) Kind() ObjectKind { return KindReal }
func (r Real) String() string   { return strconv.FormatFloat(float64(r), 'f', -1, 64) }

// String is a literal or hexadecimal string operand holding raw bytes
type String string

func (s String) Kind() ObjectKind { return KindString }
func (s String) String() string   { return string(s) }

// Name is a name operand, stored without the leading slash
type Name string

func (n Name) Kind() ObjectKind { return KindName }
func (n Name) String() string   { return "/" + string(n) }

// Array is an array operand
type Array []Object

func (a Array) Kind() ObjectKind { return KindArray }
func (a Array) String() string {
	parts := make([]string, 0, len(a))
	for _, obj := range a {
		parts = append(parts, obj.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Dict is a dictionary operand. Keys are names without the slash.
type Dict map[string]Object

func (d Dict) Kind() ObjectKind { return KindDict }
func (d Dict) String() string {
	var sb strings.Builder
	sb.WriteString("<<")
	for k, v := range d {
		sb.WriteString(" /")
		sb.WriteString(k)
		sb.WriteByte(' ')
		sb.WriteString(v.String())
	}
	sb.WriteString(" >>")
	return sb.String()
}

// Name returns the value of key as a name
func (d Dict) Name(key string) (string, bool) {
	n, ok := d[key].(Name)
	return string(n), ok
}

// Int returns the value of key as an integer
func (d Dict) Int(key string) (int, bool) {
	f, ok := ToFloat(d[key])
	return int(f), ok
}

// Bool returns the value of key as a boolean
func (d Dict) Bool(key string) (bool, bool) {
	b, ok := d[key].(Bool)
	return bool(b), ok
}

// ToFloat converts a numeric operand to float64
func ToFloat(obj Object) (float64, bool) {
	switch v := obj.(type) {
	case Int:
		return float64(v), true
	case Real:
		return float64(v), true
	default:
		return 0, false
	}
}

// ToFloats converts a list of numeric operands. ok is false if any operand
// is not a number.
func ToFloats(objs []Object) ([]float64, bool) {
	out := make([]float64, len(objs))
	for i, o := range objs {
		f, ok := ToFloat(o)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}
