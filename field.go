// FILE: lixenwraith/flagconf/field.go
package flagconf

import "reflect"

// Node is a single child of a configuration record: either a *Field[T] or a
// *Group[R]. The interface is sealed; walkers switch over the two kinds.
type Node interface {
	node()
}

// Record is implemented by every configuration record. Fields returns the
// record's children in registration order, which is also resolution order.
//
//	type ServerConfig struct {
//	    Host flagconf.Field[string]
//	    Port flagconf.Field[int]
//	}
//
//	func (c *ServerConfig) Fields() []flagconf.Node {
//	    return []flagconf.Node{&c.Host, &c.Port}
//	}
type Record interface {
	Fields() []Node
}

// EnumTraits supplies name conversion for enum-typed fields.
// Without Parse the field cannot be set from the CLI or a preset.
// Without Format the value is displayed by its ordinal.
type EnumTraits[T comparable] struct {
	Parse  func(s string) (T, error)
	Format func(v T) string
}

// Field is a typed configuration leaf. T is string, int, bool, float64, or an
// enum type described by Enum.
//
// The exported members are the declaration and are not modified by the
// package. The current value reads as Default until a successful assignment.
type Field[T comparable] struct {
	Default     T
	Flags       []string
	Required    bool
	Description string
	Verifier    func(v T) bool
	Enum        *EnumTraits[T]

	value T
	set   bool
}

func (f *Field[T]) node() {}

// Value returns the current value.
func (f *Field[T]) Value() T {
	if !f.set {
		return f.Default
	}
	return f.value
}

// IsSet reports whether the field was assigned by the CLI or a preset,
// even if the assigned value equals the default.
func (f *Field[T]) IsSet() bool {
	return f.set
}

// IsRequired reports whether Init fails when the field stays unset.
func (f *Field[T]) IsRequired() bool {
	return f.Required
}

// FlagList returns a copy of the flag spellings.
func (f *Field[T]) FlagList() []string {
	out := make([]string, len(f.Flags))
	copy(out, f.Flags)
	return out
}

// Changed reports whether the current value differs from the default.
func (f *Field[T]) Changed() bool {
	return f.Value() != f.Default
}

// SetValue runs the verifier and commits v on success.
// On rejection the field is left untouched and false is returned.
func (f *Field[T]) SetValue(v T) bool {
	if f.Verifier != nil && !f.Verifier(v) {
		return false
	}
	f.value = v
	f.set = true
	return true
}

// Reset restores the default and clears the set marker.
func (f *Field[T]) Reset() {
	var zero T
	f.value = zero
	f.set = false
}

// Group wraps a nested record under a name. The name is a path segment:
// a field flagged --port inside a group named "db" is addressed as --db.port.
type Group[R Record] struct {
	Name   string
	Config R
}

func (g *Group[R]) node() {}

// GroupName returns the group's path segment.
func (g *Group[R]) GroupName() string {
	return g.Name
}

// Fields delegates to the wrapped record.
func (g *Group[R]) Fields() []Node {
	if g.hasNilRecord() {
		return nil
	}
	return g.Config.Fields()
}

// hasNilRecord guards against a group declared with a nil record pointer.
func (g *Group[R]) hasNilRecord() bool {
	rv := reflect.ValueOf(g.Config)
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}
