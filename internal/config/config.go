// Package config loads and saves the application-level configuration.
// User-visible preferences (theme, sort, filter, confirmation flags) live
// in the database's settings table, not here; this file covers what must
// be known before the database is open.
package config

import (
	"os"
	"path/filepath"
)

const (
	configDir  = ".config/plume"
	configFile = "config.json"
)

// Config is the root configuration structure.
type Config struct {
	DBPath string    `json:"dbPath"`
	Log    LogConfig `json:"log"`
	UI     UIConfig  `json:"ui"`
}

// LogConfig controls the slog output. The terminal owns stderr while the
// program runs, so logs go to a file.
type LogConfig struct {
	File  string `json:"file"`
	Debug bool   `json:"debug"`
}

// UIConfig configures editor appearance.
type UIConfig struct {
	WrapWidth   int  `json:"wrapWidth"`   // preview word wrap, 0 = pane width
	ShowCounter bool `json:"showCounter"` // word/char counter in the status bar
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DBPath: filepath.Join(dataDir(), "plume.db"),
		Log: LogConfig{
			File: filepath.Join(dataDir(), "plume.log"),
		},
		UI: UIConfig{
			ShowCounter: true,
		},
	}
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configFile
	}
	return filepath.Join(home, configDir, configFile)
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, configDir)
}
