// Package store provides SQLite-backed persistence for notes, their
// category assignments, and application settings.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultDBFile is the database filename used when none is configured.
const DefaultDBFile = "plume.db"

// Store handles SQLite operations for notes, categories and settings.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dbPath and applies the
// schema migration. The migration is additive and idempotent: it is safe
// to call Open against a database produced by any earlier version.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// migrate creates tables and indexes if missing, adds columns introduced
// after the first release, and seeds default settings rows.
func (s *Store) migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS notes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    last_accessed TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_last_accessed ON notes(last_accessed);
CREATE TABLE IF NOT EXISTS note_categories (
    note_id INTEGER NOT NULL,
    category TEXT NOT NULL,
    UNIQUE(note_id, category)
);
CREATE INDEX IF NOT EXISTS idx_note_categories_note ON note_categories(note_id);
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// The pinned column postdates the original notes table.
	hasPinned, err := s.hasColumn("notes", "pinned")
	if err != nil {
		return err
	}
	if !hasPinned {
		if _, err := s.db.Exec(`ALTER TABLE notes ADD COLUMN pinned INTEGER DEFAULT 0`); err != nil {
			return err
		}
	}

	return s.seedDefaults()
}

// hasColumn reports whether the table already carries the named column.
func (s *Store) hasColumn(table, column string) (bool, error) {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notnull    int
			dflt       sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &primaryKey); err != nil {
			return false, fmt.Errorf("scan table info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// seedDefaults inserts default settings rows only where absent, so running
// the migration repeatedly never duplicates or resets them.
func (s *Store) seedDefaults() error {
	defaults := map[string]string{
		SettingTheme:               "light",
		SettingSortMethod:          string(SortDateDesc),
		SettingCurrentCategory:     string(FilterAll),
		SettingSpotifyConfirmation: "True",
	}
	for key, value := range defaults {
		_, err := s.db.Exec(`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`, key, value)
		if err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}
	return nil
}

// boolToInt converts a bool to an int for SQLite.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
