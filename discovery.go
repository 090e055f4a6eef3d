// FILE: lixenwraith/flagconf/discovery.go
package flagconf

import (
	"os"
	"path/filepath"
)

// DiscoveryOptions configures automatic preset discovery when no --preset
// is given on the command line.
type DiscoveryOptions struct {
	// Base name of preset file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths, searched first
	Paths []string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) DiscoveryOptions {
	return DiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".toml", ".yaml", ".yml"},
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// searchPaths lists directories in lookup order.
func (o *DiscoveryOptions) searchPaths() []string {
	paths := append([]string(nil), o.Paths...)
	if o.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			paths = append(paths, cwd)
		}
	}
	if o.UseXDG {
		paths = append(paths, xdgPresetDirs(o.Name)...)
	}
	return paths
}

// find returns the first existing regular file, or "" when none exists.
// No file found is not an error; the application runs with defaults.
func (o *DiscoveryOptions) find() string {
	if o.Name == "" {
		return ""
	}
	for _, dir := range o.searchPaths() {
		for _, ext := range o.Extensions {
			path := filepath.Join(dir, o.Name+ext)
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path
			}
		}
	}
	return ""
}

// xdgPresetDirs lists the per-application preset directories from the XDG
// base directory spec: the user config home first, then the system dirs.
func xdgPresetDirs(appName string) []string {
	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" {
		if userHome := os.Getenv("HOME"); userHome != "" {
			home = filepath.Join(userHome, ".config")
		}
	}

	system := filepath.SplitList(os.Getenv("XDG_CONFIG_DIRS"))
	if len(system) == 0 {
		system = []string{"/etc/xdg", "/etc"}
	}

	var bases []string
	if home != "" {
		bases = append(bases, home)
	}
	bases = append(bases, system...)

	dirs := make([]string, 0, len(bases))
	for _, base := range bases {
		if base != "" {
			dirs = append(dirs, filepath.Join(base, appName))
		}
	}
	return dirs
}
