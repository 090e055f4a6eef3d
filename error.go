// FILE: lixenwraith/flagconf/error.go
package flagconf

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

var (
	// ErrReservedFlag marks a field declaring --preset or -p.
	ErrReservedFlag = errors.New("reserved flag")
	// ErrInvalidGroup marks a group with a bad name or a nil record.
	ErrInvalidGroup = errors.New("invalid group")
	// ErrUnknownFlag marks a CLI token no field claimed.
	ErrUnknownFlag = errors.New("unknown flag")
	// ErrConversion marks a value that cannot convert to the field's type.
	ErrConversion = errors.New("type conversion failed")
	// ErrRejected marks a well-typed value refused by the field's verifier.
	ErrRejected = errors.New("value rejected by verifier")
	// ErrRequired marks a required field left unset.
	ErrRequired = errors.New("required field not set")
	// ErrValidator marks a failure returned by a custom record validator.
	ErrValidator = errors.New("validator failed")

	ErrUnsupportedFormat = errors.New("unsupported preset format")
	ErrPresetNotFound    = errors.New("preset file not found")
	ErrPresetParse       = errors.New("failed to parse preset")

	// ErrHelpRequested is returned by Init after help was printed when the
	// configured exit function returns instead of terminating the process.
	ErrHelpRequested = errors.New("help requested")
	// ErrAlreadyInitialized is returned by a second Init without Reset.
	ErrAlreadyInitialized = errors.New("loader already initialized")
)

// FieldError describes one problem attributed to a flag.
type FieldError struct {
	Kind        error  // one of the sentinel errors above
	Flag        string // fully-qualified flag, e.g. --db.port
	Value       string // offending raw value, if any
	Description string // field description, if any
	Err         error  // underlying cause, if any
}

func (e *FieldError) Error() string {
	var b strings.Builder
	switch {
	case errors.Is(e.Kind, ErrReservedFlag):
		fmt.Fprintf(&b, "Config field cannot use reserved flag '%s'", e.Flag)
	case errors.Is(e.Kind, ErrRequired):
		fmt.Fprintf(&b, "Required field '%s' is not set", e.Flag)
	case errors.Is(e.Kind, ErrUnknownFlag):
		fmt.Fprintf(&b, "Unknown flag '%s'", e.Flag)
	case errors.Is(e.Kind, ErrRejected):
		fmt.Fprintf(&b, "Validation failed for flag '%s'", e.Flag)
		if e.Description != "" {
			fmt.Fprintf(&b, " (%s)", e.Description)
		}
		fmt.Fprintf(&b, ": value = %s", e.Value)
	case errors.Is(e.Kind, ErrConversion):
		fmt.Fprintf(&b, "Invalid value %q for flag '%s'", e.Value, e.Flag)
	default:
		b.WriteString(e.Kind.Error())
		if e.Flag != "" {
			fmt.Fprintf(&b, " '%s'", e.Flag)
		}
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *FieldError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Report aggregates every problem found by one stage of Init.
type Report struct {
	Stage    string // "validation", "application", ...
	Problems []error
}

func (r *Report) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Configuration %s failed with %d error(s):\n\n", r.Stage, len(r.Problems))
	for _, p := range r.Problems {
		b.WriteString("  • ")
		b.WriteString(p.Error())
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Report) Unwrap() []error {
	return r.Problems
}

// Flags returns the flag of every FieldError in the report, in order.
func (r *Report) Flags() []string {
	var flags []string
	for _, p := range r.Problems {
		var fe *FieldError
		if errors.As(p, &fe) && fe.Flag != "" {
			flags = append(flags, fe.Flag)
		}
	}
	return flags
}

// collector accumulates problems for a single stage.
type collector struct {
	stage string
	errs  error
}

func (c *collector) add(err error) {
	c.errs = multierr.Append(c.errs, err)
}

// merge adds the problems of another stage's report one by one.
func (c *collector) merge(err error) {
	if err == nil {
		return
	}
	var rep *Report
	if errors.As(err, &rep) {
		for _, p := range rep.Problems {
			c.add(p)
		}
		return
	}
	c.add(err)
}

// report returns nil when nothing was collected.
func (c *collector) report() error {
	if c.errs == nil {
		return nil
	}
	return &Report{Stage: c.stage, Problems: multierr.Errors(c.errs)}
}
