// FILE: lixenwraith/flagconf/convenience.go
package flagconf

import (
	"fmt"
	"os"
)

// Quick resolves configs from os.Args with default settings.
// This is the recommended way to initialize configuration for most applications.
func Quick[R Record](configs R) (*Loader[R], error) {
	l := New(configs)
	return l, l.Init(os.Args[1:])
}

// MustQuick is like Quick but prints the failure and exits with status 1
func MustQuick[R Record](configs R) *Loader[R] {
	l := New(configs)
	l.MustInit(os.Args[1:])
	return l
}

// Validate checks that the named flags resolve to set fields. Flags use the
// dotted form, e.g. "--db.port".
func (l *Loader[R]) Validate(flags ...string) error {
	errs := &collector{stage: "validation"}
	nodes := l.Configs.Fields()
	for _, flag := range flags {
		f := lookup(nodes, flag)
		switch {
		case f == nil:
			errs.add(&FieldError{Kind: ErrUnknownFlag, Flag: flag})
		case !f.IsSet():
			errs.add(&FieldError{Kind: ErrRequired, Flag: flag, Description: f.describe()})
		}
	}
	if err := errs.report(); err != nil {
		return fmt.Errorf("missing configuration: %w", err)
	}
	return nil
}
