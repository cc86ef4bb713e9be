// Package config provides YAML-based configuration loading for the life
// shell, the watch view and the SSH server.
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Shell   ShellConfig   `yaml:"shell"`
	Shapes  ShapesConfig  `yaml:"shapes"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Watch   WatchConfig   `yaml:"watch"`
	Server  ServerConfig  `yaml:"server"`
}

// ShellConfig controls the line interpreter.
type ShellConfig struct {
	Prompt    string `yaml:"prompt"`
	EchoBoard bool   `yaml:"echo_board"` // Print the board after mutating commands
}

// ShapesConfig points at extra shape files.
type ShapesConfig struct {
	Dir string `yaml:"dir"` // Optional directory of *.yaml shape files
}

// StorageConfig controls the session history database.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// WatchConfig controls the animated watch view.
type WatchConfig struct {
	Columns  int    `yaml:"columns"` // 0 = fit terminal
	Rows     int    `yaml:"rows"`    // 0 = fit terminal
	Shape    string `yaml:"shape"`
	TickRate int    `yaml:"tick_rate"` // Generations per second
}

// ServerConfig controls the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"` // Auto-generated under ~/.life when empty
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}
