package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dsaleh/appimage-installer/internal/log"
)

// DefaultPath returns ~/.config/appimage-installer/config.toml, honouring XDG_CONFIG_HOME.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, "appimage-installer", "config.toml")
}

// Load parses the config file at path on top of Defaults.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug(log.CatConfig, "no config file, using defaults", "path", path)
		return Defaults(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	var errs []string
	for _, key := range md.Undecoded() {
		errs = append(errs, fmt.Sprintf("unknown key %q", key.String()))
	}
	if cfg.Notify && strings.TrimSpace(cfg.NotifyCommand) == "" {
		errs = append(errs, "notify_command is required when notify is enabled")
	}
	if len(errs) > 0 {
		return Config{}, fmt.Errorf("config validation errors:\n%s", strings.Join(errs, "\n"))
	}

	log.Debug(log.CatConfig, "loaded config", "path", path, "notify", cfg.Notify, "log_file", cfg.LogFile)
	return cfg, nil
}
