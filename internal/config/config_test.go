package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dsaleh/appimage-installer/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_valid(t *testing.T) {
	path := writeConfig(t, `
notify         = false
notify_command = ""
log_file       = "/tmp/appimage-installer.log"
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Notify {
		t.Error("expected notify disabled")
	}
	if cfg.LogFile != "/tmp/appimage-installer.log" {
		t.Errorf("unexpected log_file: %s", cfg.LogFile)
	}
}

func TestLoad_partialKeepsDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `log_file = "x.log"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Notify || cfg.NotifyCommand != "notify-send" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_missingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != config.Defaults() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_validationErrors(t *testing.T) {
	_, err := config.Load(writeConfig(t, `
notify         = true
notify_command = " "
colour         = "red"
`))
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_syntaxError(t *testing.T) {
	if _, err := config.Load(writeConfig(t, `notify = `)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDefaultPath_xdg(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/x")
	if got := config.DefaultPath(); got != "/x/appimage-installer/config.toml" {
		t.Errorf("unexpected path: %s", got)
	}
}
