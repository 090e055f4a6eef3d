// FILE: lixenwraith/flagconf/validate.go
package flagconf

import (
	"fmt"
	"log/slog"
)

// checkStructure reports reserved flags and malformed groups. It runs before
// any argument is parsed.
func checkStructure(nodes []Node) error {
	errs := &collector{stage: "validation"}

	walk(nodes, "", visitor{
		leaf: func(l leaf, prefix string) {
			for _, flag := range l.FlagList() {
				if isPresetFlag(flag) {
					errs.add(&FieldError{Kind: ErrReservedFlag, Flag: flag, Description: l.describe()})
				}
			}
		},
		group: func(b branch, prefix string) bool {
			name := b.GroupName()
			switch {
			case !isValidKeySegment(name):
				errs.add(&FieldError{
					Kind: ErrInvalidGroup,
					Flag: joinPath(prefix, name),
					Err:  fmt.Errorf("group name %q must be a non-empty bare key (A-Za-z0-9_-)", name),
				})
			case b.hasNilRecord():
				errs.add(&FieldError{
					Kind: ErrInvalidGroup,
					Flag: joinPath(prefix, name),
					Err:  fmt.Errorf("group %q has no configuration record", name),
				})
				return false
			}
			return true
		},
	})

	return errs.report()
}

// checkRequired reports every required field left unset and every set field
// whose current value no longer passes its verifier.
func checkRequired(nodes []Node) error {
	errs := &collector{stage: "validation"}

	walk(nodes, "", visitor{
		leaf: func(l leaf, prefix string) {
			flag := primaryFlag(l, prefix)
			switch {
			case l.IsRequired() && !l.IsSet():
				errs.add(&FieldError{Kind: ErrRequired, Flag: flag, Description: l.describe()})
			case l.IsSet() && !l.verifiesCurrent():
				errs.add(&FieldError{Kind: ErrRejected, Flag: flag, Value: l.currentText(), Description: l.describe()})
			}
		},
	})

	return errs.report()
}

// lintFlags logs flags that resolve in surprising ways. A flag claimed by
// more than one field at the same level goes to the first in registration
// order; --help and -h are consumed by the tokenizer and never reach a field.
func lintFlags(nodes []Node, logger *slog.Logger) {
	owners := make(map[string]string)

	walk(nodes, "", visitor{
		leaf: func(l leaf, prefix string) {
			for _, flag := range l.FlagList() {
				if isHelpFlag(flag) && prefix == "" {
					logger.Warn("flag is reserved for help and can never be set",
						"flag", flag, "field", primaryFlag(l, prefix))
					continue
				}
				qualified := qualify(flag, prefix)
				if first, dup := owners[qualified]; dup {
					logger.Warn("flag declared by more than one field; first declaration wins",
						"flag", qualified, "first", first)
					continue
				}
				owners[qualified] = primaryFlag(l, prefix)
			}
		},
	})
}
