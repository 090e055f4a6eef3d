// FILE: lixenwraith/flagconf/serialize.go
package flagconf

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Format selects the value dump representation.
type Format int

const (
	// FormatCLI renders one --path=value assignment per line
	FormatCLI Format = iota
	// FormatTOML renders one key = value assignment per line, loadable as a preset
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatCLI:
		return "cli"
	case FormatTOML:
		return "toml"
	}
	return "unknown"
}

// dump walks the tree and renders every flagged field. With onlyChanges,
// fields equal to their default are skipped. TOML keys are bare and shared
// across groups; only the first field per key is written, matching the
// preset loader, and the rest are logged.
func dump(nodes []Node, format Format, onlyChanges bool, logger *slog.Logger) (string, error) {
	var b strings.Builder
	var firstErr error
	written := make(map[string]string)

	walk(nodes, "", visitor{
		leaf: func(l leaf, prefix string) {
			if firstErr != nil || len(l.FlagList()) == 0 {
				return
			}
			if onlyChanges && !l.Changed() {
				return
			}
			switch format {
			case FormatCLI:
				b.WriteString(cliLine(l, prefix))
			case FormatTOML:
				key := bareKey(l.FlagList()[0])
				if owner, dup := written[key]; dup {
					logger.Warn("preset key already written by another field; skipping",
						"key", key, "field", primaryFlag(l, prefix), "owner", owner)
					return
				}
				line, err := tomlLine(key, l)
				if err != nil {
					firstErr = err
					return
				}
				written[key] = primaryFlag(l, prefix)
				b.WriteString(line)
			default:
				firstErr = fmt.Errorf("unknown dump format %d", format)
			}
		},
	})

	if firstErr != nil {
		return "", firstErr
	}
	return b.String(), nil
}

// cliLine renders the qualified first flag, keeping its dash marker:
// --db.host="x", -db.o=1. Quoted kinds get double quotes.
func cliLine(l leaf, prefix string) string {
	flag := qualify(l.FlagList()[0], prefix)
	if l.isQuoted() {
		return fmt.Sprintf("%s=\"%s\"\n", flag, l.currentText())
	}
	return fmt.Sprintf("%s=%s\n", flag, l.currentText())
}

// tomlLine renders the field under key. Encoding goes through the TOML
// encoder so quoting and escaping match what the preset parser reads.
func tomlLine(key string, l leaf) (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]any{key: l.encoded()}); err != nil {
		return "", fmt.Errorf("failed to encode '%s': %w", key, err)
	}
	return buf.String(), nil
}

// savePreset replaces path with data. The dump goes to a sibling temp file
// first so a reader never sees a half-written preset.
func savePreset(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory for '%s': %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("cannot stage dump of '%s': %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("cannot write dump of '%s': %w", path, err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("cannot set mode on dump of '%s': %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("cannot flush dump of '%s': %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("cannot close dump of '%s': %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("cannot move dump into '%s': %w", path, err)
	}
	return nil
}
