// FILE: lixenwraith/flagconf/resolve.go
package flagconf

import (
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// UnknownFlagPolicy decides what happens to a CLI flag no field claims.
type UnknownFlagPolicy int

const (
	// UnknownFlagError fails Init, listing every unknown flag (default)
	UnknownFlagError UnknownFlagPolicy = iota
	// UnknownFlagWarn logs each unknown flag and proceeds
	UnknownFlagWarn
	// UnknownFlagIgnore proceeds silently
	UnknownFlagIgnore
)

func (p UnknownFlagPolicy) String() string {
	switch p {
	case UnknownFlagError:
		return "error"
	case UnknownFlagWarn:
		return "warn"
	case UnknownFlagIgnore:
		return "ignore"
	}
	return "unknown"
}

// claim is the outcome of offering a token to the tree.
type claim struct {
	field    leaf
	accepted bool
	err      error
}

// lookup offers a CLI token to nodes in registration order. A field claims
// the token only on an exact flag match. A group named g claims tokens whose
// body starts with "g."; the prefix is stripped, the dash marker reattached,
// and the rewritten token offered to the group's children.
// Returns nil when nothing claimed the token.
func lookup(nodes []Node, token string) leaf {
	for _, n := range nodes {
		switch node := n.(type) {
		case leaf:
			if node.settable() && slices.Contains(node.FlagList(), token) {
				return node
			}
		case branch:
			marker, body := splitMarker(token)
			rest, ok := strings.CutPrefix(body, node.GroupName()+".")
			if !ok {
				continue
			}
			if l := lookup(node.Fields(), marker+rest); l != nil {
				return l
			}
		}
	}
	return nil
}

// resolve assigns value to the field claiming token.
func resolve(nodes []Node, token, value string) *claim {
	l := lookup(nodes, token)
	if l == nil {
		return nil
	}
	accepted, err := l.assign(value)
	return &claim{field: l, accepted: accepted, err: err}
}

// applyCLI resolves every assignment in order, so the last occurrence of a
// flag wins. Conversion failures, verifier rejections and (under
// UnknownFlagError) unknown flags are aggregated into one report.
func applyCLI(nodes []Node, assignments []Assignment, policy UnknownFlagPolicy, logger *slog.Logger) error {
	errs := &collector{stage: "application"}

	for _, a := range assignments {
		c := resolve(nodes, a.Flag, a.Value)
		switch {
		case c == nil:
			switch policy {
			case UnknownFlagError:
				errs.add(&FieldError{Kind: ErrUnknownFlag, Flag: a.Flag, Value: a.Value})
			case UnknownFlagWarn:
				logger.Warn("ignoring unknown flag", "flag", a.Flag, "value", a.Value)
			}
		case c.err != nil:
			errs.add(&FieldError{
				Kind:        ErrConversion,
				Flag:        a.Flag,
				Value:       a.Value,
				Description: c.field.describe(),
				Err:         unwrapNumError(c.err),
			})
		case !c.accepted:
			errs.add(&FieldError{
				Kind:        ErrRejected,
				Flag:        a.Flag,
				Value:       a.Value,
				Description: c.field.describe(),
			})
		}
	}

	return errs.report()
}

// applyPreset fills fields from src. Each flag spelling of a field is tried
// as a bare key with its dashes stripped; group names do not take part, so
// preset keys are flat and same-named flags in different groups share a key.
// The first spelling present in src wins.
func applyPreset(nodes []Node, src PresetSource, logger *slog.Logger) error {
	errs := &collector{stage: "preset"}
	typed, canCheck := src.(interface{ Has(key string) bool })

	walk(nodes, "", visitor{
		leaf: func(l leaf, _ string) {
			if !l.settable() {
				return
			}
			for _, flag := range l.FlagList() {
				key := bareKey(flag)
				found, raw, accepted, err := l.load(src, key)
				if !found {
					if canCheck && typed.Has(key) {
						logger.Debug("preset key has mismatched type", "key", key, "want", l.typeName())
					}
					continue
				}
				switch {
				case err != nil:
					errs.add(&FieldError{Kind: ErrConversion, Flag: key, Value: raw, Description: l.describe(), Err: err})
				case !accepted:
					errs.add(&FieldError{Kind: ErrRejected, Flag: key, Value: raw, Description: l.describe()})
				}
				return
			}
		},
	})

	return errs.report()
}

// unwrapNumError trims strconv's function prefix from conversion errors.
func unwrapNumError(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}
