// FILE: lixenwraith/flagconf/loader.go
package flagconf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// ValidatorFunc checks cross-field constraints after all values are resolved.
type ValidatorFunc[R Record] func(configs R) error

// Loader owns a configuration record and populates it once at startup.
// It is not safe for concurrent use; resolve once, then treat as read-only.
type Loader[R Record] struct {
	Configs      R
	HelpFormat   HelpFormat
	UnknownFlags UnknownFlagPolicy
	Logger       *slog.Logger
	Stdout       io.Writer
	Stderr       io.Writer
	// Exit terminates the process after --help (status 0) and in MustInit
	// (status 1). Defaults to os.Exit.
	Exit func(code int)
	// Discovery, when set, locates a preset file if none is given with --preset.
	Discovery *DiscoveryOptions

	validators  []ValidatorFunc[R]
	parsers     map[string]PresetParser
	parsed      *ParsedArgs
	presetPath  string
	initialized bool
}

// New creates a Loader for configs with default settings.
func New[R Record](configs R) *Loader[R] {
	format := DefaultHelpFormat()
	if len(os.Args) > 0 {
		format.ProgramName = filepath.Base(os.Args[0])
	}
	return &Loader[R]{
		Configs:      configs,
		HelpFormat:   format,
		UnknownFlags: UnknownFlagError,
		Logger:       NewLogger("warn", os.Stderr),
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Exit:         os.Exit,
		parsers:      defaultPresetParsers(),
	}
}

// RegisterPresetFormat makes files with extension ext (e.g. ".json")
// loadable as presets.
func (l *Loader[R]) RegisterPresetFormat(ext string, parse PresetParser) {
	if l.parsers == nil {
		l.parsers = defaultPresetParsers()
	}
	l.parsers[ext] = parse
}

// Init resolves the configuration from args (without the program name):
// reserved-flag check, tokenizing, preset loading, CLI overrides, help,
// required-field validation and custom validators, in that order.
// Problems of each stage are aggregated into a *Report. A failed Init
// leaves every field at its default, so a retry starts clean.
func (l *Loader[R]) Init(args []string) (err error) {
	if l.initialized {
		return ErrAlreadyInitialized
	}
	logger := l.logger()
	nodes := l.Configs.Fields()

	if err := checkStructure(nodes); err != nil {
		return err
	}
	lintFlags(nodes, logger)

	defer func() {
		if err != nil {
			l.Reset()
		}
	}()

	l.parsed = ParseArgs(args)

	applied := &collector{stage: "application"}

	if path := l.resolvePresetPath(); path != "" {
		src, err := readPreset(path, l.parsers)
		if err != nil {
			return err
		}
		l.presetPath = path
		logger.Debug("loading preset", "path", path)
		applied.merge(applyPreset(nodes, src, logger))
	}

	applied.merge(applyCLI(nodes, l.parsed.Assignments, l.UnknownFlags, logger))
	if err := applied.report(); err != nil {
		return err
	}

	if l.parsed.HasHelp {
		fmt.Fprintln(l.stdout(), l.Help(l.parsed.HelpFilter))
		l.exit(0)
		return ErrHelpRequested
	}

	if err := checkRequired(nodes); err != nil {
		return err
	}

	validated := &collector{stage: "validation"}
	for _, validate := range l.validators {
		if err := validate(l.Configs); err != nil {
			validated.add(fmt.Errorf("%w: %w", ErrValidator, err))
		}
	}
	if err := validated.report(); err != nil {
		return err
	}

	l.initialized = true
	logger.Debug("configuration initialized",
		"preset", l.presetPath,
		"assignments", len(l.parsed.Assignments),
		"positional", len(l.parsed.Positional))
	return nil
}

// MustInit is like Init but prints the error and exits with status 1.
func (l *Loader[R]) MustInit(args []string) {
	err := l.Init(args)
	if err == nil || errors.Is(err, ErrHelpRequested) {
		return
	}
	fmt.Fprint(l.stderr(), err.Error())
	var rep *Report
	if !errors.As(err, &rep) {
		fmt.Fprintln(l.stderr())
	}
	l.exit(1)
}

// resolvePresetPath prefers --preset over discovery.
func (l *Loader[R]) resolvePresetPath() string {
	if l.parsed.HasPreset {
		return l.parsed.PresetPath
	}
	if l.Discovery != nil {
		if path := l.Discovery.find(); path != "" {
			l.logger().Debug("discovered preset", "path", path)
			return path
		}
	}
	return ""
}

// IsInitialized reports whether Init completed successfully.
func (l *Loader[R]) IsInitialized() bool {
	return l.initialized
}

// Args returns the tokenized command line of the last Init, or nil.
func (l *Loader[R]) Args() *ParsedArgs {
	return l.parsed
}

// Positional returns the non-flag arguments of the last Init.
func (l *Loader[R]) Positional() []string {
	if l.parsed == nil {
		return nil
	}
	return l.parsed.Positional
}

// PresetPath returns the preset file loaded by Init, if any.
func (l *Loader[R]) PresetPath() string {
	return l.presetPath
}

// Help renders help text with the loader's HelpFormat.
func (l *Loader[R]) Help(filter string) string {
	return l.HelpWith(filter, l.HelpFormat)
}

// HelpWith renders help text with a custom format.
func (l *Loader[R]) HelpWith(filter string, format HelpFormat) string {
	return newHelpRenderer(l.Configs.Fields(), format).render(filter)
}

// Dump renders the current values. With onlyChanges, fields still equal to
// their default are left out.
func (l *Loader[R]) Dump(format Format, onlyChanges bool) (string, error) {
	return dump(l.Configs.Fields(), format, onlyChanges, l.logger())
}

// Save writes a dump to path atomically. A FormatTOML file can be passed
// back with --preset.
func (l *Loader[R]) Save(path string, format Format, onlyChanges bool) error {
	data, err := l.Dump(format, onlyChanges)
	if err != nil {
		return err
	}
	return savePreset(path, []byte(data))
}

// Values returns dotted path -> current value for every flagged field.
func (l *Loader[R]) Values() map[string]any {
	return values(l.Configs.Fields())
}

// Scan decodes the current values into target, a pointer to a struct using
// "toml" tags: groups as nested structs, fields by their bare first flag.
func (l *Loader[R]) Scan(target any) error {
	return scan(l.Configs.Fields(), target)
}

// Reset restores every field to its default and clears the initialized state.
func (l *Loader[R]) Reset() {
	walk(l.Configs.Fields(), "", visitor{
		leaf: func(f leaf, _ string) { f.Reset() },
	})
	l.parsed = nil
	l.presetPath = ""
	l.initialized = false
}

func (l *Loader[R]) logger() *slog.Logger {
	if l.Logger == nil {
		l.Logger = NewLogger("warn", l.stderr())
	}
	return l.Logger
}

func (l *Loader[R]) stdout() io.Writer {
	if l.Stdout == nil {
		return os.Stdout
	}
	return l.Stdout
}

func (l *Loader[R]) stderr() io.Writer {
	if l.Stderr == nil {
		return os.Stderr
	}
	return l.Stderr
}

func (l *Loader[R]) exit(code int) {
	if l.Exit == nil {
		os.Exit(code)
	}
	l.Exit(code)
}
