// FILE: lixenwraith/flagconf/walk.go
package flagconf

import "strings"

// leaf is the type-erased view of a *Field[T] used by tree walkers.
type leaf interface {
	Node
	FlagList() []string
	IsRequired() bool
	IsSet() bool
	Changed() bool
	Reset()

	describe() string
	typeName() string
	settable() bool
	assign(raw string) (accepted bool, err error)
	load(src PresetSource, key string) (found bool, raw string, accepted bool, err error)
	verifiesCurrent() bool
	defaultText() string
	currentText() string
	isQuoted() bool
	encoded() any
	current() any
}

// branch is the type-erased view of a *Group[R].
type branch interface {
	Node
	GroupName() string
	Fields() []Node
	hasNilRecord() bool
}

func (f *Field[T]) describe() string { return f.Description }

func (f *Field[T]) assign(raw string) (bool, error) {
	v, err := f.parse(raw)
	if err != nil {
		return false, err
	}
	return f.SetValue(v), nil
}

func (f *Field[T]) verifiesCurrent() bool {
	return f.Verifier == nil || f.Verifier(f.Value())
}

func (f *Field[T]) defaultText() string { return f.format(f.Default) }
func (f *Field[T]) currentText() string { return f.format(f.Value()) }
func (f *Field[T]) isQuoted() bool      { return f.quoted() }
func (f *Field[T]) encoded() any        { return f.encodable(f.Value()) }
func (f *Field[T]) current() any        { return f.Value() }

// visitor holds the callbacks of a depth-first walk. prefix is the dotted
// path of the enclosing groups, empty at the top level.
type visitor struct {
	leaf  func(l leaf, prefix string)
	group func(b branch, prefix string) (descend bool)
}

// walk visits nodes in registration order.
func walk(nodes []Node, prefix string, v visitor) {
	for _, n := range nodes {
		switch node := n.(type) {
		case leaf:
			if v.leaf != nil {
				v.leaf(node, prefix)
			}
		case branch:
			if v.group != nil && !v.group(node, prefix) {
				continue
			}
			walk(node.Fields(), joinPath(prefix, node.GroupName()), v)
		}
	}
}

// joinPath appends a segment to a dotted path.
func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

// splitMarker separates the leading "--" or "-" from a flag.
func splitMarker(flag string) (marker, body string) {
	switch {
	case strings.HasPrefix(flag, "--"):
		return "--", flag[2:]
	case strings.HasPrefix(flag, "-"):
		return "-", flag[1:]
	}
	return "", flag
}

// bareKey strips the leading dashes of a flag: "--log-level" -> "log-level".
func bareKey(flag string) string {
	_, body := splitMarker(flag)
	return body
}

// qualify prefixes a flag with its group path: ("--port", "db") -> "--db.port".
func qualify(flag, prefix string) string {
	if prefix == "" {
		return flag
	}
	marker, body := splitMarker(flag)
	return marker + prefix + "." + body
}

// primaryFlag returns the qualified first flag, or "unknown" for flagless fields.
func primaryFlag(l leaf, prefix string) string {
	flags := l.FlagList()
	if len(flags) == 0 {
		return "unknown"
	}
	return qualify(flags[0], prefix)
}

// fieldPath is the dotted address of a field: group path plus bare first flag.
// Flagless fields have no path.
func fieldPath(l leaf, prefix string) string {
	flags := l.FlagList()
	if len(flags) == 0 {
		return ""
	}
	return joinPath(prefix, bareKey(flags[0]))
}
