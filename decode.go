// FILE: lixenwraith/flagconf/decode.go
package flagconf

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// values flattens the tree into dotted path -> current value.
// Flagless fields have no path and are left out.
func values(nodes []Node) map[string]any {
	out := make(map[string]any)
	walk(nodes, "", visitor{
		leaf: func(l leaf, prefix string) {
			if path := fieldPath(l, prefix); path != "" {
				out[path] = l.current()
			}
		},
	})
	return out
}

// nestedValues builds a nested map mirroring the group structure.
func nestedValues(nodes []Node) map[string]any {
	nested := make(map[string]any)
	for path, v := range values(nodes) {
		setNestedValue(nested, path, v)
	}
	return nested
}

// scan decodes the current values into target using "toml" struct tags.
// Groups map to nested structs, fields to their bare first flag name.
func scan(nodes []Node, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(nestedValues(nodes)); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	return nil
}
