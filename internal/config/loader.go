package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// rawConfig is the JSON-unmarshaling intermediary. Pointer fields make
// "absent" distinguishable from zero values during the defaults merge.
type rawConfig struct {
	DBPath string       `json:"dbPath"`
	Log    rawLogConfig `json:"log"`
	UI     rawUIConfig  `json:"ui"`
}

type rawLogConfig struct {
	File  string `json:"file"`
	Debug *bool  `json:"debug"`
}

type rawUIConfig struct {
	WrapWidth   *int  `json:"wrapWidth"`
	ShowCounter *bool `json:"showCounter"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path. If path is empty it
// uses ~/.config/plume/config.json; a missing file returns defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	// Merge raw config into defaults
	if raw.DBPath != "" {
		cfg.DBPath = expandHome(raw.DBPath)
	}
	if raw.Log.File != "" {
		cfg.Log.File = expandHome(raw.Log.File)
	}
	if raw.Log.Debug != nil {
		cfg.Log.Debug = *raw.Log.Debug
	}
	if raw.UI.WrapWidth != nil {
		cfg.UI.WrapWidth = *raw.UI.WrapWidth
	}
	if raw.UI.ShowCounter != nil {
		cfg.UI.ShowCounter = *raw.UI.ShowCounter
	}

	return cfg, nil
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
