// Package config loads the rwsort configuration file and resolves the
// RimWorld directories the sorter operates on.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the configuration file rwsort looks for.
const FileName = "rwsort.toml"

// Behaviour holds the switches that change how a sort run behaves.
type Behaviour struct {
	UpdateCheck  bool `toml:"update_check"`
	KeepUnknown  bool `toml:"keep_unknown"`
	DisableSteam bool `toml:"disable_steam"`
	Offline      bool `toml:"offline"`
}

// Paths holds explicit directory overrides. Empty fields fall back to the
// platform defaults.
type Paths struct {
	SteamDir      string `toml:"steam_dir"`
	DRMFreeDir    string `toml:"drm_free_dir"`
	GameConfigDir string `toml:"game_config_dir"`
	WorkshopDir   string `toml:"workshop_dir"`
	LocalModsDir  string `toml:"local_mods_dir"`
}

// GitHub holds the credentials for the optional unknown-mod issue
// submission. Both fields must be set for submission to be possible.
type GitHub struct {
	User  string `toml:"user"`
	Token string `toml:"token"`
}

// Config is the full rwsort configuration, loaded once at startup and passed
// into every component that needs it.
type Config struct {
	Behaviour Behaviour `toml:"behaviour"`
	Paths     Paths     `toml:"paths"`
	GitHub    GitHub    `toml:"github"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Behaviour: Behaviour{UpdateCheck: true},
	}
}

// Load reads the configuration from path. When path is empty the standard
// locations are searched ($XDG_CONFIG_HOME/rwsort/rwsort.toml, then the
// working directory) and a missing file yields the defaults. An explicitly
// named file must exist, and a malformed file is always an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = locate()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func locate() string {
	if p := filepath.Join(xdg.ConfigHome, "rwsort", FileName); fileExists(p) {
		return p
	}
	if fileExists(FileName) {
		return FileName
	}
	return ""
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// GitHubConfigured reports whether both credentials needed for issue
// submission are present.
func (c *Config) GitHubConfigured() bool {
	return c.GitHub.User != "" && c.GitHub.Token != ""
}
