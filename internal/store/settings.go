package store

import (
	"database/sql"
	"fmt"
)

// Settings keys. Values are stored as plain text; boolean settings use the
// literals "True" and "False" for compatibility with databases written by
// earlier releases.
const (
	SettingTheme               = "theme"
	SettingSortMethod          = "sort_method"
	SettingCurrentCategory     = "current_category"
	SettingSpotifyConfirmation = "show_spotify_confirmation"
)

// GetSetting returns the value for key. ok is false when the key is absent.
func (s *Store) GetSetting(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting upserts a settings row. Settings are never deleted.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}
