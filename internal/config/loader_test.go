package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.yaml")
	content := `
shell:
  prompt: "> "
  echo_board: false
storage:
  enabled: false
watch:
  shape: pulsar
  tick_rate: 25
server:
  idle_timeout: 90s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Shell.Prompt != "> " || cfg.Shell.EchoBoard {
		t.Errorf("Shell = %+v, expected prompt \"> \" without echo", cfg.Shell)
	}
	if cfg.Storage.Enabled {
		t.Error("Storage.Enabled should be false")
	}
	if cfg.Watch.Shape != "pulsar" || cfg.Watch.TickRate != 25 {
		t.Errorf("Watch = %+v, expected pulsar at 25", cfg.Watch)
	}
	if cfg.Server.IdleTimeout != 90*time.Second {
		t.Errorf("IdleTimeout = %v, expected 90s", cfg.Server.IdleTimeout)
	}
	// Unset values keep their defaults.
	if cfg.Server.Address != ":23235" {
		t.Errorf("Address = %q, expected default", cfg.Server.Address)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, expected default", cfg.Log.Level)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("shell: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(bad)
	if err == nil {
		t.Error("Load() of a malformed file should fail")
	}
	if cfg.Shell.Prompt != DefaultPrompt {
		t.Errorf("Load() should return defaults on error, got prompt %q", cfg.Shell.Prompt)
	}
}

func TestParseNormalizes(t *testing.T) {
	cfg, err := Parse([]byte(`
watch:
  tick_rate: -4
  columns: -1
server:
  address: ""
log:
  level: ""
`))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	def := Default()
	if cfg.Watch.TickRate != def.Watch.TickRate {
		t.Errorf("TickRate = %d, expected %d", cfg.Watch.TickRate, def.Watch.TickRate)
	}
	if cfg.Watch.Columns != 0 {
		t.Errorf("Columns = %d, expected 0", cfg.Watch.Columns)
	}
	if cfg.Server.Address != def.Server.Address {
		t.Errorf("Address = %q, expected %q", cfg.Server.Address, def.Server.Address)
	}
	if cfg.Log.Level != def.Log.Level {
		t.Errorf("Log.Level = %q, expected %q", cfg.Log.Level, def.Log.Level)
	}
}

func TestExpandHome(t *testing.T) {
	path, err := ExpandHome("/tmp/history.db")
	if err != nil || path != "/tmp/history.db" {
		t.Errorf("ExpandHome(absolute) = %q, %v", path, err)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err = ExpandHome("~/.life/history.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if path != filepath.Join(home, ".life", "history.db") {
		t.Errorf("ExpandHome() = %q, expected path under %s", path, home)
	}
}
