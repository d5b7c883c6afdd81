// Package config provides the TOML config file and XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "divvy", "config.toml")
}

// DefaultDataDir returns the directory holding saves, artwork, and logs.
func DefaultDataDir() string {
	return filepath.Join(XDGDataHome(), "divvy")
}

// SaveDir returns the save-file directory under a data dir.
func SaveDir(dataDir string) string {
	return filepath.Join(dataDir, "saves")
}

// ArtDir returns the generated-artwork directory under a data dir.
func ArtDir(dataDir string) string {
	return filepath.Join(dataDir, "art")
}

// LogPath returns the log file path under a data dir. The TUI owns stdout,
// so logs always go to a file.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "divvy.log")
}
