// FILE: lixenwraith/flagconf/builder.go
package flagconf

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Builder provides a fluent interface for building a Loader and running Init
type Builder[R Record] struct {
	loader *Loader[R]
	args   []string
}

// NewBuilder creates a new builder for configs, reading os.Args[1:] by default
func NewBuilder[R Record](configs R) *Builder[R] {
	return &Builder[R]{
		loader: New(configs),
		args:   os.Args[1:],
	}
}

// WithArgs sets the command-line arguments, without the program name
func (b *Builder[R]) WithArgs(args []string) *Builder[R] {
	b.args = args
	return b
}

// WithUnknownFlags sets how unclaimed flags are handled
func (b *Builder[R]) WithUnknownFlags(policy UnknownFlagPolicy) *Builder[R] {
	b.loader.UnknownFlags = policy
	return b
}

// WithHelpFormat sets the help rendering options. An empty ProgramName keeps
// the name taken from os.Args.
func (b *Builder[R]) WithHelpFormat(format HelpFormat) *Builder[R] {
	if format.ProgramName == "" {
		format.ProgramName = b.loader.HelpFormat.ProgramName
	}
	b.loader.HelpFormat = format
	return b
}

// WithLogger sets the diagnostics logger
func (b *Builder[R]) WithLogger(logger *slog.Logger) *Builder[R] {
	b.loader.Logger = logger
	return b
}

// WithOutput redirects help output and MustInit error output
func (b *Builder[R]) WithOutput(stdout, stderr io.Writer) *Builder[R] {
	b.loader.Stdout = stdout
	b.loader.Stderr = stderr
	return b
}

// WithExitFunc replaces os.Exit
func (b *Builder[R]) WithExitFunc(exit func(code int)) *Builder[R] {
	b.loader.Exit = exit
	return b
}

// WithPresetDiscovery enables lookup of a preset file when --preset is absent
func (b *Builder[R]) WithPresetDiscovery(opts DiscoveryOptions) *Builder[R] {
	b.loader.Discovery = &opts
	return b
}

// WithPresetFormat registers a parser for an additional preset file extension
func (b *Builder[R]) WithPresetFormat(ext string, parse PresetParser) *Builder[R] {
	b.loader.RegisterPresetFormat(ext, parse)
	return b
}

// WithValidator adds a validation function that runs after required-field checks.
// Multiple validators can be added; all run and their failures are aggregated.
func (b *Builder[R]) WithValidator(fn ValidatorFunc[R]) *Builder[R] {
	if fn != nil {
		b.loader.validators = append(b.loader.validators, fn)
	}
	return b
}

// Build runs Init and returns the loader. On error the loader is still
// returned so help and dumps remain available.
func (b *Builder[R]) Build() (*Loader[R], error) {
	if err := b.loader.Init(b.args); err != nil {
		return b.loader, err
	}
	return b.loader, nil
}

// MustBuild is like Build but panics on error
func (b *Builder[R]) MustBuild() *Loader[R] {
	l, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return l
}

// BuildAndScan builds and decodes the resolved values into target
func (b *Builder[R]) BuildAndScan(target any) error {
	l, err := b.Build()
	if err != nil {
		return err
	}
	if err := l.Scan(target); err != nil {
		return fmt.Errorf("failed to scan final config into target: %w", err)
	}
	return nil
}
