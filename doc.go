// FILE: lixenwraith/flagconf/doc.go

// Package flagconf populates a typed configuration tree from command-line
// flags and an optional preset file, validates it, and renders help text
// and value dumps.
//
// Features:
//   - Typed fields (string, int, bool, float64, enums) with defaults,
//     multiple flag spellings, required markers and verifiers
//   - Named groups addressed with dotted flags (--db.pool.size=20)
//   - TOML and YAML presets via --preset/-p, optionally discovered in XDG dirs
//   - Aggregated error reports instead of fail-on-first
//   - Filterable help (--help, --help all|required|groups|filters|<group>)
//   - CLI and TOML dumps of current or changed values
//
// Quick Start:
//
//	type ServerConfig struct {
//	    Host flagconf.Field[string]
//	    Port flagconf.Field[int]
//	}
//
//	func (c *ServerConfig) Fields() []flagconf.Node {
//	    return []flagconf.Node{&c.Host, &c.Port}
//	}
//
//	type AppConfig struct {
//	    Server flagconf.Group[*ServerConfig]
//	}
//
//	func (c *AppConfig) Fields() []flagconf.Node {
//	    return []flagconf.Node{&c.Server}
//	}
//
//	cfg := &AppConfig{Server: flagconf.Group[*ServerConfig]{
//	    Name: "server",
//	    Config: &ServerConfig{
//	        Host: flagconf.Field[string]{Default: "localhost", Flags: []string{"--host"}},
//	        Port: flagconf.Field[int]{Default: 8080, Flags: []string{"--port"}, Required: true},
//	    },
//	}}
//
//	loader := flagconf.MustQuick(cfg)
//	port := cfg.Server.Config.Port.Value()
//
// Precedence (highest to lowest):
//  1. Command-line arguments (--server.port=9090)
//  2. Preset file (port = 9090, keys are bare flag names)
//  3. Default values
//
// A Loader is not safe for concurrent use. Resolve once at startup and treat
// the tree as read-only afterwards.
package flagconf
