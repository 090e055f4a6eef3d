// FILE: lixenwraith/flagconf/help.go
package flagconf

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/term"
)

// ANSI escape sequences used by the help renderer.
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiGray   = "\033[90m"
)

const (
	defaultHelpWidth = 80
	minWrapWidth     = 40
)

// Help filters understood by the renderer besides group names.
const (
	HelpFilterAll      = "all"
	HelpFilterRequired = "required"
	HelpFilterGroups   = "groups"
	HelpFilterFilters  = "filters"
)

// HelpFormat controls help rendering.
type HelpFormat struct {
	ProgramName string
	UseColors   bool
	// Interactive shows navigation hints for a bare --help instead of the
	// full listing.
	Interactive bool
	// MaxWidth wraps descriptions; 0 detects the terminal width.
	MaxWidth          int
	ShowCurrentValues bool
}

// DefaultHelpFormat returns the standard help format
func DefaultHelpFormat() HelpFormat {
	return HelpFormat{
		ProgramName:       "program",
		UseColors:         true,
		Interactive:       true,
		ShowCurrentValues: true,
	}
}

// AutoHelpFormat is DefaultHelpFormat with colors enabled only when w is a
// terminal.
func AutoHelpFormat(w io.Writer) HelpFormat {
	f := DefaultHelpFormat()
	f.UseColors = isTerminal(w)
	return f
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// width resolves MaxWidth, probing stdout when unset.
func (f HelpFormat) width() int {
	if f.MaxWidth > 0 {
		return f.MaxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultHelpWidth
}

// helpRenderer walks a configuration tree into usage text.
type helpRenderer struct {
	nodes  []Node
	format HelpFormat
	width  int
}

func newHelpRenderer(nodes []Node, format HelpFormat) *helpRenderer {
	return &helpRenderer{nodes: nodes, format: format, width: format.width()}
}

func (h *helpRenderer) paint(text, color string) string {
	if !h.format.UseColors {
		return text
	}
	return color + text + ansiReset
}

// render dispatches on the help filter.
func (h *helpRenderer) render(filter string) string {
	switch filter {
	case "":
		if h.format.Interactive {
			return h.navigation()
		}
		return h.full()
	case HelpFilterAll:
		return h.full()
	case HelpFilterRequired:
		return h.required()
	case HelpFilterGroups:
		return h.groups()
	case HelpFilterFilters, "help":
		return h.filters()
	}
	return h.group(filter)
}

func (h *helpRenderer) navigation() string {
	var b strings.Builder
	prog := h.format.ProgramName

	fmt.Fprintf(&b, "%s has many configuration options.\n\n", h.paint(prog, ansiBold))
	b.WriteString("Interactive help is enabled to help you navigate its usage.\n")
	fmt.Fprintf(&b, "Run %s with one of the following:\n\n", h.paint(HelpFlag, ansiCyan))
	h.filterList(&b)

	fmt.Fprintf(&b, "\n%s\n", h.paint("Examples:", ansiBold))
	for _, f := range []string{HelpFilterAll, HelpFilterGroups, HelpFilterRequired, HelpFilterFilters} {
		fmt.Fprintf(&b, "  %s %s %s\n", prog, HelpFlag, h.paint(f, ansiCyan))
	}
	return b.String()
}

func (h *helpRenderer) filterList(b *strings.Builder) {
	entries := [][2]string{
		{HelpFilterAll, "Show all configuration options"},
		{HelpFilterGroups, "Show only the configuration group structure"},
		{HelpFilterRequired, "Show only required fields"},
		{HelpFilterFilters, "List all available groups and filters"},
		{"<group>", "Show only a specific configuration group"},
	}
	for _, e := range entries {
		fmt.Fprintf(b, "  %s - %s\n", h.paint(fmt.Sprintf("%-9s", e[0]), ansiCyan), e[1])
	}
}

func (h *helpRenderer) full() string {
	var b strings.Builder

	b.WriteString(h.paint("Usage: ", ansiBold))
	b.WriteString(h.format.ProgramName)
	b.WriteString(" [OPTIONS]")
	walk(h.nodes, "", visitor{
		leaf: func(l leaf, prefix string) {
			if l.IsRequired() && len(l.FlagList()) > 0 {
				fmt.Fprintf(&b, " %s <%s>", primaryFlag(l, prefix), l.typeName())
			}
		},
	})
	fmt.Fprintf(&b, "\n\n%s\n", h.paint("Options:", ansiBold))

	helpDesc := "Show this help message"
	if h.format.Interactive {
		helpDesc += " (use --help <filter> for filtered help)"
	}
	fmt.Fprintf(&b, "  %s  %s  %s\n", h.paint(HelpFlag+", "+HelpFlagShort, ansiCyan), h.paint("<void>", ansiYellow), helpDesc)
	fmt.Fprintf(&b, "  %s  %s  %s\n", h.paint(PresetFlag+", "+PresetFlagShort, ansiCyan), h.paint("<file>", ansiYellow),
		"Load configuration from a TOML or YAML preset file (reserved)")

	h.tree(&b, h.nodes, 0, "")

	if h.format.Interactive {
		fmt.Fprintf(&b, "\n%s\n", h.paint("Interactive Help:", ansiBold))
		b.WriteString("  --help all           Show all configuration options\n")
		b.WriteString("  --help required      Show only required fields\n")
		b.WriteString("  --help <group>       Show only fields in specific group\n")
		b.WriteString("  --help filters       Show all available filters\n")
	}
	return b.String()
}

// tree prints nodes hierarchically, indenting one level per group.
func (h *helpRenderer) tree(b *strings.Builder, nodes []Node, depth int, prefix string) {
	for _, n := range nodes {
		switch node := n.(type) {
		case leaf:
			h.field(b, node, depth, prefix)
		case branch:
			indent := strings.Repeat("  ", depth)
			fmt.Fprintf(b, "  %s%s\n", indent, h.paint(node.GroupName()+":", ansiGreen))
			h.tree(b, node.Fields(), depth+1, joinPath(prefix, node.GroupName()))
		}
	}
}

func (h *helpRenderer) field(b *strings.Builder, l leaf, depth int, prefix string) {
	flags := l.FlagList()
	if len(flags) == 0 {
		return
	}

	var line strings.Builder
	line.WriteString("  ")
	line.WriteString(strings.Repeat("  ", depth))
	if l.IsRequired() {
		line.WriteString(h.paint("[Required] ", ansiRed))
	}

	qualified := make([]string, len(flags))
	for i, f := range flags {
		qualified[i] = qualify(f, prefix)
	}
	line.WriteString(h.paint(strings.Join(qualified, ", "), ansiCyan))
	line.WriteString("  ")
	line.WriteString(h.paint("<"+l.typeName()+">", ansiYellow))
	line.WriteString("  ")

	// The description wraps under its own start column.
	column := uniseg.StringWidth(stripANSI(line.String()))
	desc := l.describe()
	if desc == "" {
		desc = "No description provided for this config"
	}
	desc += " " + h.defaultNote(l)

	b.WriteString(line.String())
	h.wrap(b, desc, column)
	if h.format.ShowCurrentValues && l.IsSet() {
		b.WriteString(" ")
		b.WriteString(h.paint("(current: "+h.literal(l, l.currentText())+")", ansiGray))
	}
	b.WriteByte('\n')
}

func (h *helpRenderer) defaultNote(l leaf) string {
	return h.paint("(default: "+h.literal(l, l.defaultText())+")", ansiGray)
}

func (h *helpRenderer) literal(l leaf, text string) string {
	if l.isQuoted() {
		return `"` + text + `"`
	}
	return text
}

// wrap writes text word-wrapped to the renderer width, continuation lines
// indented to column. Widths are measured in terminal cells.
func (h *helpRenderer) wrap(b *strings.Builder, text string, column int) {
	available := h.width - column
	if available < minWrapWidth {
		available = minWrapWidth
	}
	indent := strings.Repeat(" ", column)

	lineWidth := 0
	for i, word := range strings.Fields(text) {
		w := uniseg.StringWidth(stripANSI(word))
		switch {
		case i == 0:
		case lineWidth+1+w > available:
			b.WriteByte('\n')
			b.WriteString(indent)
			lineWidth = 0
		default:
			b.WriteByte(' ')
			lineWidth++
		}
		b.WriteString(word)
		lineWidth += w
	}
}

func (h *helpRenderer) required() string {
	var b, fields strings.Builder
	fmt.Fprintf(&b, "%s%s:\n\n", h.paint("Required Fields for ", ansiBold), h.format.ProgramName)

	walk(h.nodes, "", visitor{
		leaf: func(l leaf, prefix string) {
			if !l.IsRequired() || len(l.FlagList()) == 0 {
				return
			}
			fmt.Fprintf(&fields, "  %s  %s  %s\n",
				h.paint(primaryFlag(l, prefix), ansiCyan),
				h.paint("<"+l.typeName()+">", ansiYellow),
				l.describe())
		},
	})

	if fields.Len() == 0 {
		b.WriteString("No required fields found.\n")
	} else {
		b.WriteString(fields.String())
	}
	return b.String()
}

func (h *helpRenderer) groups() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s:\n\n", h.paint("Configuration Groups for ", ansiBold), h.format.ProgramName)

	walk(h.nodes, "", visitor{
		group: func(g branch, prefix string) bool {
			depth := 0
			if prefix != "" {
				depth = strings.Count(prefix, ".") + 1
			}
			fmt.Fprintf(&b, "  %s%s %s\n",
				strings.Repeat("  ", depth),
				h.paint(g.GroupName(), ansiGreen),
				h.paint("("+joinPath(prefix, g.GroupName())+")", ansiGray))
			return true
		},
	})
	return b.String()
}

func (h *helpRenderer) filters() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", h.paint("Available Help Filters:", ansiBold))
	h.filterList(&b)

	names := groupPaths(h.nodes)
	if len(names) > 0 {
		fmt.Fprintf(&b, "\n%s\n", h.paint("Available Groups:", ansiBold))
		for _, name := range names {
			fmt.Fprintf(&b, "  %s\n", h.paint(name, ansiCyan))
		}
	}
	return b.String()
}

// group prints every group whose name or dotted path equals filter.
func (h *helpRenderer) group(filter string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s':\n\n", h.paint("Help for group '", ansiBold), filter)

	found := false
	walk(h.nodes, "", visitor{
		group: func(g branch, prefix string) bool {
			path := joinPath(prefix, g.GroupName())
			if g.GroupName() != filter && path != filter {
				return true
			}
			found = true
			fmt.Fprintf(&b, "  %s\n", h.paint(g.GroupName()+":", ansiGreen))
			h.tree(&b, g.Fields(), 1, path)
			return false
		},
	})

	if !found {
		fmt.Fprintf(&b, "No group found matching '%s'\n", filter)
		b.WriteString("Use --help filters to see available groups\n")
	}
	return b.String()
}

// groupPaths lists the dotted path of every group, depth first.
func groupPaths(nodes []Node) []string {
	var names []string
	walk(nodes, "", visitor{
		group: func(g branch, prefix string) bool {
			names = append(names, joinPath(prefix, g.GroupName()))
			return true
		},
	})
	return names
}

// stripANSI removes SGR escape sequences so widths count visible cells only.
func stripANSI(s string) string {
	if !strings.Contains(s, "\033[") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
