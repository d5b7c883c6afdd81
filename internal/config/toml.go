package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. All fields are optional;
// nil means "not set", so env variables and flags can layer on top.
type FileConfig struct {
	Player PlayerConfig `toml:"player"`
	Art    ArtConfig    `toml:"art"`
}

// PlayerConfig maps player-related settings.
type PlayerConfig struct {
	Name *string `toml:"name"`
}

// ArtConfig maps reward-artwork generation settings.
type ArtConfig struct {
	Provider       *string `toml:"provider"`
	Model          *string `toml:"model"`
	TimeoutSeconds *int    `toml:"timeout-seconds"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
