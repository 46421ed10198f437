package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// workshopGameID is RimWorld's Steam app ID, the directory name Steam uses
// for its workshop content.
const workshopGameID = "294100"

// SteamDir returns the Steam installation root, preferring the configured
// override. Empty when Steam is disabled or the platform default cannot be
// determined.
func (c *Config) SteamDir() string {
	if c.Behaviour.DisableSteam {
		return ""
	}
	if c.Paths.SteamDir != "" {
		return c.Paths.SteamDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Steam")
	case "windows":
		return `C:\Program Files (x86)\Steam`
	default:
		return filepath.Join(home, ".steam", "steam")
	}
}

// RimWorldSteamDir returns the Steam copy of the game, empty when Steam is
// unavailable.
func (c *Config) RimWorldSteamDir() string {
	steam := c.SteamDir()
	if steam == "" {
		return ""
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(steam, "steamapps", "common", "RimWorld", "RimWorldMac.app")
	}
	return filepath.Join(steam, "steamapps", "common", "RimWorld")
}

// GameDir returns the RimWorld installation directory: the Steam copy when
// present, otherwise the configured DRM-free location.
func (c *Config) GameDir() string {
	if p := c.RimWorldSteamDir(); p != "" {
		return p
	}
	return c.Paths.DRMFreeDir
}

// GameConfigDir returns the directory holding ModsConfig.xml and the game's
// save data.
func (c *Config) GameConfigDir() string {
	if c.Paths.GameConfigDir != "" {
		return c.Paths.GameConfigDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "RimWorld", "Config")
	case "windows":
		return filepath.Join(home, "AppData", "LocalLow", "Ludeon Studios", "RimWorld by Ludeon Studios", "Config")
	default:
		return filepath.Join(home, ".config", "unity3d", "Ludeon Studios", "RimWorld by Ludeon Studios", "Config")
	}
}

// ModsConfigFile returns the full path of ModsConfig.xml, empty when the
// game config directory cannot be determined.
func (c *Config) ModsConfigFile() string {
	dir := c.GameConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "ModsConfig.xml")
}

// WorkshopDir returns the Steam Workshop content directory for RimWorld, or
// empty when Steam is disabled or undetected.
func (c *Config) WorkshopDir() string {
	if c.Behaviour.DisableSteam {
		return ""
	}
	if c.Paths.WorkshopDir != "" {
		return c.Paths.WorkshopDir
	}
	steam := c.SteamDir()
	if steam == "" {
		return ""
	}
	return filepath.Join(steam, "steamapps", "workshop", "content", workshopGameID)
}

// LocalModsDir returns the game's local Mods directory.
func (c *Config) LocalModsDir() string {
	if c.Paths.LocalModsDir != "" {
		return c.Paths.LocalModsDir
	}
	game := c.GameDir()
	if game == "" {
		return ""
	}
	return filepath.Join(game, "Mods")
}

// SteamDetected reports whether a Steam RimWorld installation actually
// exists on disk. The workshop name fallback is only attempted when it does.
func (c *Config) SteamDetected() bool {
	p := c.RimWorldSteamDir()
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// GameDetected reports whether any RimWorld installation could be located.
func (c *Config) GameDetected() bool {
	p := c.GameDir()
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
