// FILE: lixenwraith/flagconf/convert.go
package flagconf

import (
	"errors"
	"fmt"
	"strconv"
)

// valueKind is the storage class of a field, derived from T and Enum.
type valueKind int

const (
	kindUnsupported valueKind = iota
	kindString
	kindInt
	kindBool
	kindFloat
	kindEnum
)

var errNoEnumParser = errors.New("enum field has no parser")

func (f *Field[T]) kind() valueKind {
	if f.Enum != nil {
		return kindEnum
	}
	switch any(f.Default).(type) {
	case string:
		return kindString
	case int:
		return kindInt
	case bool:
		return kindBool
	case float64:
		return kindFloat
	}
	return kindUnsupported
}

// settable reports whether the field can be assigned by name.
func (f *Field[T]) settable() bool {
	switch f.kind() {
	case kindUnsupported:
		return false
	case kindEnum:
		return f.Enum.Parse != nil
	}
	return true
}

// typeName is the type label shown in help output.
func (f *Field[T]) typeName() string {
	switch f.kind() {
	case kindString:
		return "string"
	case kindInt:
		return "int"
	case kindBool:
		return "bool"
	case kindFloat:
		return "double"
	case kindEnum:
		return "enum"
	}
	return "unknown"
}

// parse converts a CLI string to T.
// Booleans accept "true" and "1"; anything else is false.
func (f *Field[T]) parse(raw string) (T, error) {
	var zero T
	var out any
	switch f.kind() {
	case kindString:
		out = raw
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return zero, err
		}
		out = n
	case kindBool:
		out = raw == "true" || raw == "1"
	case kindFloat:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return zero, err
		}
		out = n
	case kindEnum:
		if f.Enum.Parse == nil {
			return zero, errNoEnumParser
		}
		return f.Enum.Parse(raw)
	default:
		return zero, fmt.Errorf("unsupported field type %T", f.Default)
	}
	return out.(T), nil
}

// format renders v for help and CLI dumps.
func (f *Field[T]) format(v T) string {
	if f.kind() == kindEnum {
		if f.Enum.Format != nil {
			return f.Enum.Format(v)
		}
		return fmt.Sprint(v)
	}
	switch x := any(v).(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}

// quoted reports whether the rendered value is a string in dumps.
func (f *Field[T]) quoted() bool {
	switch f.kind() {
	case kindString:
		return true
	case kindEnum:
		return f.Enum.Format != nil
	}
	return false
}

// encodable returns the value in the shape the TOML encoder expects.
// Enums without a formatter fall back to their decimal ordinal when the
// ordinal is an integer.
func (f *Field[T]) encodable(v T) any {
	switch f.kind() {
	case kindString, kindBool, kindFloat:
		return any(v)
	case kindInt:
		return int64(any(v).(int))
	case kindEnum:
		if f.Enum.Format != nil {
			return f.Enum.Format(v)
		}
		s := fmt.Sprint(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		return s
	}
	return fmt.Sprint(v)
}
