// FILE: lixenwraith/flagconf/preset.go
package flagconf

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// MaxPresetSize bounds the size of a preset file accepted by the loader.
const MaxPresetSize = 10 << 20

// PresetSource is a flat key to typed-value lookup built from a preset file.
// A key whose value has a different type reads as absent.
type PresetSource interface {
	String(key string) (string, bool)
	Int(key string) (int, bool)
	Bool(key string) (bool, bool)
	Float(key string) (float64, bool)
}

// PresetParser builds a PresetSource from raw file contents.
type PresetParser func(data []byte) (PresetSource, error)

// mapSource serves lookups from the top level of a decoded document.
// Nested tables are never consulted.
type mapSource struct {
	data map[string]any
}

// ParseTOML decodes a TOML document into a PresetSource.
func ParseTOML(data []byte) (PresetSource, error) {
	doc := make(map[string]any)
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &mapSource{data: doc}, nil
}

// ParseYAML decodes a YAML mapping into a PresetSource.
func ParseYAML(data []byte) (PresetSource, error) {
	doc := make(map[string]any)
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &mapSource{data: doc}, nil
}

func (s *mapSource) Has(key string) bool {
	_, ok := s.data[key]
	return ok
}

func (s *mapSource) String(key string) (string, bool) {
	v, ok := s.data[key].(string)
	return v, ok
}

func (s *mapSource) Int(key string) (int, bool) {
	switch v := s.data[key].(type) {
	case int:
		return v, true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

func (s *mapSource) Bool(key string) (bool, bool) {
	v, ok := s.data[key].(bool)
	return v, ok
}

func (s *mapSource) Float(key string) (float64, bool) {
	switch v := s.data[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

// defaultPresetParsers maps file extensions to parsers.
func defaultPresetParsers() map[string]PresetParser {
	return map[string]PresetParser{
		".toml": ParseTOML,
		".tml":  ParseTOML,
		".yaml": ParseYAML,
		".yml":  ParseYAML,
	}
}

// readPreset selects a parser by extension and decodes the file.
// Unknown extensions fail before the file is opened.
func readPreset(path string, parsers map[string]PresetParser) (PresetSource, error) {
	ext := strings.ToLower(filepath.Ext(path))
	parse, ok := parsers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: '%s'", ErrPresetNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat preset file '%s': %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("preset path '%s' is a directory", path)
	}
	if info.Size() > MaxPresetSize {
		return nil, fmt.Errorf("preset file '%s' exceeds maximum size %d bytes", path, MaxPresetSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file '%s': %w", path, err)
	}

	src, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrPresetParse, path, err)
	}
	return src, nil
}

// load looks key up in src with the getter matching the field's type and
// commits a present value. raw is the value's display form for error reports.
func (f *Field[T]) load(src PresetSource, key string) (found bool, raw string, accepted bool, err error) {
	var v any
	switch f.kind() {
	case kindString:
		v, found = src.String(key)
	case kindInt:
		v, found = src.Int(key)
	case kindBool:
		v, found = src.Bool(key)
	case kindFloat:
		v, found = src.Float(key)
	case kindEnum:
		if f.Enum.Parse == nil {
			return false, "", false, nil
		}
		s, ok := src.String(key)
		if !ok {
			// Ordinal form, as written by dumps of enums without a formatter.
			n, okInt := src.Int(key)
			if !okInt {
				return false, "", false, nil
			}
			s = strconv.Itoa(n)
		}
		ev, perr := f.Enum.Parse(s)
		if perr != nil {
			return true, s, false, perr
		}
		return true, s, f.SetValue(ev), nil
	default:
		return false, "", false, nil
	}
	if !found {
		return false, "", false, nil
	}
	tv := v.(T)
	return true, f.format(tv), f.SetValue(tv), nil
}
