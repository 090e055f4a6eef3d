// FILE: lixenwraith/flagconf/cmd/main.go
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lixenwraith/flagconf"
)

// Mode selects how the demo server runs.
type Mode int

const (
	ModeDev Mode = iota
	ModeProd
)

var modeNames = []string{"dev", "prod"}

func parseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "invalid"
}

type ServerConfig struct {
	Host flagconf.Field[string]
	Port flagconf.Field[int]
	Mode flagconf.Field[Mode]
}

func (c *ServerConfig) Fields() []flagconf.Node {
	return []flagconf.Node{&c.Host, &c.Port, &c.Mode}
}

type PoolConfig struct {
	Size    flagconf.Field[int]
	Timeout flagconf.Field[float64]
}

func (c *PoolConfig) Fields() []flagconf.Node {
	return []flagconf.Node{&c.Size, &c.Timeout}
}

type DatabaseConfig struct {
	URL  flagconf.Field[string]
	Pool flagconf.Group[*PoolConfig]
}

func (c *DatabaseConfig) Fields() []flagconf.Node {
	return []flagconf.Node{&c.URL, &c.Pool}
}

type AppConfig struct {
	LogLevel flagconf.Field[slog.Level]
	Verbose  flagconf.Field[bool]
	Dump     flagconf.Field[string]
	Server   flagconf.Group[*ServerConfig]
	Database flagconf.Group[*DatabaseConfig]
}

func (c *AppConfig) Fields() []flagconf.Node {
	return []flagconf.Node{&c.LogLevel, &c.Verbose, &c.Dump, &c.Server, &c.Database}
}

func newAppConfig() *AppConfig {
	return &AppConfig{
		LogLevel: flagconf.Field[slog.Level]{
			Default:     slog.LevelInfo,
			Flags:       []string{"--log-level"},
			Description: "Log level: debug, info, warn or error",
			Enum:        flagconf.LevelEnum(),
		},
		Verbose: flagconf.Field[bool]{
			Flags:       []string{"--verbose", "-v"},
			Description: "Print the resolved configuration",
		},
		Dump: flagconf.Field[string]{
			Flags:       []string{"--dump"},
			Description: "Write changed values to this TOML file, usable with --preset",
		},
		Server: flagconf.Group[*ServerConfig]{
			Name: "server",
			Config: &ServerConfig{
				Host: flagconf.Field[string]{
					Default:     "localhost",
					Flags:       []string{"--host"},
					Description: "Listen address",
				},
				Port: flagconf.Field[int]{
					Default:     8080,
					Flags:       []string{"--port"},
					Description: "Listen port",
					Verifier:    func(p int) bool { return p > 0 && p < 65536 },
				},
				Mode: flagconf.Field[Mode]{
					Default:     ModeDev,
					Flags:       []string{"--mode"},
					Description: "Run mode: dev or prod",
					Enum:        &flagconf.EnumTraits[Mode]{Parse: parseMode, Format: Mode.String},
				},
			},
		},
		Database: flagconf.Group[*DatabaseConfig]{
			Name: "database",
			Config: &DatabaseConfig{
				URL: flagconf.Field[string]{
					Flags:       []string{"--url"},
					Required:    true,
					Description: "Database connection URL",
				},
				Pool: flagconf.Group[*PoolConfig]{
					Name: "pool",
					Config: &PoolConfig{
						Size: flagconf.Field[int]{
							Default:     10,
							Flags:       []string{"--size"},
							Description: "Maximum open connections",
							Verifier:    func(n int) bool { return n > 0 },
						},
						Timeout: flagconf.Field[float64]{
							Default:     30,
							Flags:       []string{"--timeout"},
							Description: "Connection acquire timeout in seconds",
						},
					},
				},
			},
		},
	}
}

func main() {
	cfg := newAppConfig()

	helpFormat := flagconf.AutoHelpFormat(os.Stdout)
	helpFormat.ProgramName = "flagconf-demo"

	loader, err := flagconf.NewBuilder(cfg).
		WithHelpFormat(helpFormat).
		WithPresetDiscovery(flagconf.DefaultDiscoveryOptions("flagconf-demo")).
		WithValidator(func(c *AppConfig) error {
			if c.Server.Config.Mode.Value() == ModeProd && c.Server.Config.Host.Value() == "localhost" {
				return errors.New("prod mode requires a non-local --server.host")
			}
			return nil
		}).
		Build()
	if err != nil {
		fmt.Fprint(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel.Value()}))
	logger.Info("configuration loaded",
		"preset", loader.PresetPath(),
		"listen", fmt.Sprintf("%s:%d", cfg.Server.Config.Host.Value(), cfg.Server.Config.Port.Value()),
		"mode", cfg.Server.Config.Mode.Value().String())

	if cfg.Verbose.Value() {
		out, err := loader.Dump(flagconf.FormatCLI, false)
		if err != nil {
			logger.Error("dump failed", "error", err)
			os.Exit(1)
		}
		fmt.Print(out)
	}

	if path := cfg.Dump.Value(); path != "" {
		if err := loader.Save(path, flagconf.FormatTOML, true); err != nil {
			logger.Error("save failed", "error", err)
			os.Exit(1)
		}
		logger.Info("preset written", "path", path)
	}
}
