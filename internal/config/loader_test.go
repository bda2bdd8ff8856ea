package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DBPath == "" {
		t.Error("default dbPath should not be empty")
	}
	if cfg.Log.File == "" {
		t.Error("default log file should not be empty")
	}
	if !cfg.UI.ShowCounter {
		t.Error("counter should be shown by default")
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.json")
	if err != nil {
		t.Errorf("should not error on missing file: %v", err)
	}
	if cfg == nil {
		t.Error("should return default config")
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := []byte(`{
		"dbPath": "/tmp/notes.db",
		"log": {
			"debug": true
		},
		"ui": {
			"showCounter": false
		}
	}`)

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.DBPath != "/tmp/notes.db" {
		t.Errorf("got dbPath %q, want '/tmp/notes.db'", cfg.DBPath)
	}
	if !cfg.Log.Debug {
		t.Error("debug should be enabled")
	}
	if cfg.UI.ShowCounter {
		t.Error("showCounter should be false")
	}
	// Default values should still be present
	if cfg.Log.File == "" {
		t.Error("log file should keep its default")
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{invalid`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("invalid JSON should error")
	}
}

func TestLoadFrom_ExpandsHome(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{"dbPath": "~/notes/plume.db"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	want := filepath.Join(home, "notes", "plume.db")
	if cfg.DBPath != want {
		t.Errorf("got %q, want %q", cfg.DBPath, want)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := Default()
	cfg.DBPath = "/data/plume.db"
	cfg.Log.Debug = true
	cfg.UI.WrapWidth = 100

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.DBPath != cfg.DBPath {
		t.Errorf("got dbPath %q, want %q", loaded.DBPath, cfg.DBPath)
	}
	if loaded.Log.Debug != cfg.Log.Debug {
		t.Error("debug flag lost in round trip")
	}
	if loaded.UI.WrapWidth != cfg.UI.WrapWidth {
		t.Errorf("got wrapWidth %d, want %d", loaded.UI.WrapWidth, cfg.UI.WrapWidth)
	}
}
