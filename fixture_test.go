// FILE: lixenwraith/flagconf/fixture_test.go
package flagconf

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// appRecord is the two-field schema used by the startup scenarios.
type appRecord struct {
	Filename Field[string]
	LogLevel Field[int]
}

func (r *appRecord) Fields() []Node { return []Node{&r.Filename, &r.LogLevel} }

func newAppRecord() *appRecord {
	return &appRecord{
		Filename: Field[string]{
			Default:     "input.txt",
			Flags:       []string{"--file", "-f"},
			Required:    true,
			Description: "Input file",
		},
		LogLevel: Field[int]{
			Default: 2,
			Flags:   []string{"--log-level", "-l"},
		},
	}
}

type color int

const (
	colorRed color = iota
	colorGreen
	colorBlue
)

var colorNames = []string{"red", "green", "blue"}

func parseColor(s string) (color, error) {
	for i, name := range colorNames {
		if s == name {
			return color(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

func formatColor(c color) string { return colorNames[c] }

type poolRecord struct {
	Size    Field[int]
	Timeout Field[float64]
}

func (r *poolRecord) Fields() []Node { return []Node{&r.Size, &r.Timeout} }

type dbRecord struct {
	Host Field[string]
	Port Field[int]
	Pool Group[*poolRecord]
}

func (r *dbRecord) Fields() []Node { return []Node{&r.Host, &r.Port, &r.Pool} }

// treeRecord exercises every value kind and two levels of nesting.
type treeRecord struct {
	Name    Field[string]
	Verbose Field[bool]
	Color   Field[color]
	DB      Group[*dbRecord]
}

func (r *treeRecord) Fields() []Node { return []Node{&r.Name, &r.Verbose, &r.Color, &r.DB} }

func newTreeRecord() *treeRecord {
	return &treeRecord{
		Name: Field[string]{
			Default:     "svc",
			Flags:       []string{"--name", "-n"},
			Description: "Service name",
		},
		Verbose: Field[bool]{
			Flags:       []string{"--verbose", "-v"},
			Description: "Verbose output",
		},
		Color: Field[color]{
			Default:     colorRed,
			Flags:       []string{"--color"},
			Description: "Output color",
			Enum:        &EnumTraits[color]{Parse: parseColor, Format: formatColor},
		},
		DB: Group[*dbRecord]{
			Name: "db",
			Config: &dbRecord{
				Host: Field[string]{
					Default:     "localhost",
					Flags:       []string{"--host"},
					Description: "Database host",
				},
				Port: Field[int]{
					Default:     5432,
					Flags:       []string{"--port", "-P"},
					Description: "Database port",
					Verifier:    func(p int) bool { return p > 0 && p < 65536 },
				},
				Pool: Group[*poolRecord]{
					Name: "pool",
					Config: &poolRecord{
						Size: Field[int]{
							Default:     10,
							Flags:       []string{"--size"},
							Description: "Pool size",
						},
						Timeout: Field[float64]{
							Default:     30,
							Flags:       []string{"--timeout"},
							Description: "Acquire timeout in seconds",
						},
					},
				},
			},
		},
	}
}

// testLoader wraps a Loader with captured output, logs and exit codes.
type testLoader[R Record] struct {
	*Loader[R]
	out   *bytes.Buffer
	logs  *bytes.Buffer
	exits []int
}

func newTestLoader[R Record](configs R) *testLoader[R] {
	tl := &testLoader[R]{
		Loader: New(configs),
		out:    &bytes.Buffer{},
		logs:   &bytes.Buffer{},
	}
	tl.Stdout = tl.out
	tl.Stderr = tl.out
	tl.Logger = NewLogger("debug", tl.logs)
	tl.Exit = func(code int) { tl.exits = append(tl.exits, code) }
	tl.HelpFormat = HelpFormat{ProgramName: "prog", MaxWidth: 100, ShowCurrentValues: true}
	return tl
}

func writePreset(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func quietLogger() *slog.Logger {
	return NewLogger("error", io.Discard)
}
