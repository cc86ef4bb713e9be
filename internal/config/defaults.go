package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/life.yaml
var defaultYAML []byte

// DefaultPrompt is the interpreter prompt used when none is configured.
const DefaultPrompt = "gol> "

// Default returns the hard-coded default configuration.
func Default() Config {
	return Config{
		Shell: ShellConfig{
			Prompt:    DefaultPrompt,
			EchoBoard: true,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "~/.life/history.db",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Watch: WatchConfig{
			Shape:    "glider",
			TickRate: 10,
		},
		Server: ServerConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
