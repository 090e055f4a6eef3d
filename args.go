// FILE: lixenwraith/flagconf/args.go
package flagconf

import "strings"

// Reserved control flags. Fields may not claim the preset flags.
const (
	PresetFlag      = "--preset"
	PresetFlagShort = "-p"
	HelpFlag        = "--help"
	HelpFlagShort   = "-h"
)

// Assignment is a single flag=value pair taken from the command line.
type Assignment struct {
	Flag  string
	Value string
}

// ParsedArgs is the tokenized command line.
type ParsedArgs struct {
	// Assignments in command-line order; later entries win for the same flag.
	Assignments []Assignment
	// Positional holds non-flag tokens not consumed as values and every token
	// after a bare "--".
	Positional []string

	HasHelp    bool
	HelpFilter string

	HasPreset  bool
	PresetPath string
}

// Lookup returns the last value given for flag.
func (p *ParsedArgs) Lookup(flag string) (string, bool) {
	for i := len(p.Assignments) - 1; i >= 0; i-- {
		if p.Assignments[i].Flag == flag {
			return p.Assignments[i].Value, true
		}
	}
	return "", false
}

func isPresetFlag(flag string) bool {
	return flag == PresetFlag || flag == PresetFlagShort
}

func isHelpFlag(flag string) bool {
	return flag == HelpFlag || flag == HelpFlagShort
}

func looksLikeFlag(arg string) bool {
	return strings.HasPrefix(arg, "-")
}

// ParseArgs tokenizes command-line arguments, excluding the program name.
// Accepted forms are "--key value", "--key=value", "-k value" and "-k=value".
// A flag with neither an attached value nor a following non-flag token is
// dropped. --help/-h optionally consume a following filter token; --preset/-p
// consume the following path.
func ParseArgs(args []string) *ParsedArgs {
	parsed := &ParsedArgs{}
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			parsed.Positional = append(parsed.Positional, args[i+1:]...)
			break
		}
		if !looksLikeFlag(arg) || arg == "-" {
			parsed.Positional = append(parsed.Positional, arg)
			continue
		}

		flag, value, hasValue := strings.Cut(arg, "=")

		if isHelpFlag(flag) {
			parsed.HasHelp = true
			if hasValue {
				parsed.HelpFilter = value
			} else if i+1 < len(args) && !looksLikeFlag(args[i+1]) {
				parsed.HelpFilter = args[i+1]
				i++
			}
			continue
		}

		if !hasValue && i+1 < len(args) && !looksLikeFlag(args[i+1]) {
			value = args[i+1]
			hasValue = true
			i++
		}
		if !hasValue {
			continue
		}

		if isPresetFlag(flag) {
			parsed.HasPreset = true
			parsed.PresetPath = value
			continue
		}

		parsed.Assignments = append(parsed.Assignments, Assignment{Flag: flag, Value: value})
	}
	return parsed
}
