package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// MaxPinned caps how many notes may be pinned at once.
const MaxPinned = 3

// UntitledLabel is the display fallback for an empty title. Name sorts
// collate empty titles as this literal so they land where the user sees
// them in the list.
const UntitledLabel = "Untitled"

// ErrPinLimit is returned when pinning would exceed MaxPinned.
var ErrPinLimit = errors.New("pin limit reached")

// ErrNoteNotFound is returned when an operation references a missing note.
var ErrNoteNotFound = errors.New("note not found")

// Sort identifies a list ordering for the non-pinned group. Pinned notes
// always come first, ordered by creation time descending, regardless of
// the active sort.
type Sort string

const (
	SortDateDesc     Sort = "date_desc"
	SortDateAsc      Sort = "date_asc"
	SortNameAsc      Sort = "name_asc"
	SortNameDesc     Sort = "name_desc"
	SortModifiedDesc Sort = "modified_desc"
	SortModifiedAsc  Sort = "modified_asc"
)

// ModifiedBased reports whether the sort key depends on last_accessed,
// meaning an edit flush can reorder the list.
func (s Sort) ModifiedBased() bool {
	return s == SortModifiedDesc || s == SortModifiedAsc
}

// Note is a fully-loaded note row.
type Note struct {
	ID           int64
	Title        string
	Content      string
	CreatedAt    time.Time
	LastAccessed time.Time
	Pinned       bool
}

// NoteMeta is the listing projection of a note: everything the list pane
// needs without the content blob.
type NoteMeta struct {
	ID        int64
	Title     string
	CreatedAt time.Time
	Pinned    bool
}

// CreateNote inserts an empty note and returns its id. created_at and
// last_accessed are both set to now.
func (s *Store) CreateNote() (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(`
		INSERT INTO notes (title, content, created_at, last_accessed)
		VALUES ('', '', ?, ?)
	`, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("note id: %w", err)
	}
	return id, nil
}

// UpdateNote writes title and content and bumps last_accessed. It is
// idempotent; the last writer wins.
func (s *Store) UpdateNote(id int64, title, content string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`
		UPDATE notes SET title = ?, content = ?, last_accessed = ? WHERE id = ?
	`, title, content, now, id)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

// UpdateTitle writes only the title. Unlike UpdateNote it does not touch
// last_accessed: the immediate title sync that runs on every keystroke
// must not churn the modified-time sort order before the debounced flush.
func (s *Store) UpdateTitle(id int64, title string) error {
	_, err := s.db.Exec(`UPDATE notes SET title = ? WHERE id = ?`, title, id)
	if err != nil {
		return fmt.Errorf("update title: %w", err)
	}
	return nil
}

// DeleteNote removes the note and its category assignments in a single
// transaction, so a crash mid-delete cannot leave orphaned assignments.
func (s *Store) DeleteNote(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM note_categories WHERE note_id = ?`, id); err != nil {
		return fmt.Errorf("delete note categories: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return tx.Commit()
}

// SetPinned pins or unpins a note. Pinning a fourth note fails with
// ErrPinLimit and leaves state unchanged; the count check and the update
// share one transaction so concurrent openers cannot race past the cap.
func (s *Store) SetPinned(id int64, pinned bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin pin: %w", err)
	}
	defer tx.Rollback()

	if pinned {
		var count int
		err := tx.QueryRow(`SELECT COUNT(*) FROM notes WHERE pinned = 1 AND id != ?`, id).Scan(&count)
		if err != nil {
			return fmt.Errorf("count pinned: %w", err)
		}
		if count >= MaxPinned {
			return ErrPinLimit
		}
	}

	res, err := tx.Exec(`UPDATE notes SET pinned = ? WHERE id = ?`, boolToInt(pinned), id)
	if err != nil {
		return fmt.Errorf("update pinned: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrNoteNotFound, id)
	}
	return tx.Commit()
}

// GetNote retrieves a full note by id, or (nil, nil) when absent.
func (s *Store) GetNote(id int64) (*Note, error) {
	var (
		note                    Note
		createdAt, lastAccessed string
		pinned                  int
	)
	err := s.db.QueryRow(`
		SELECT id, title, content, created_at, last_accessed, pinned
		FROM notes WHERE id = ?
	`, id).Scan(&note.ID, &note.Title, &note.Content, &createdAt, &lastAccessed, &pinned)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query note: %w", err)
	}

	note.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	note.LastAccessed, _ = time.Parse(time.RFC3339, lastAccessed)
	note.Pinned = pinned == 1
	return &note, nil
}

// GetContent reads just the content blob, for the lazy load on first open.
func (s *Store) GetContent(id int64) (string, error) {
	var content string
	err := s.db.QueryRow(`SELECT content FROM notes WHERE id = ?`, id).Scan(&content)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %d", ErrNoteNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("query content: %w", err)
	}
	return content, nil
}

// TouchAccessed bumps last_accessed to now, recording an open.
func (s *Store) TouchAccessed(id int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`UPDATE notes SET last_accessed = ? WHERE id = ?`, now, id)
	if err != nil {
		return fmt.Errorf("touch note: %w", err)
	}
	return nil
}

// LastAccessedNote returns the most recently accessed note, or (nil, nil)
// when the store is empty. Used to restore the previous session's note.
func (s *Store) LastAccessedNote() (*Note, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM notes ORDER BY last_accessed DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last accessed: %w", err)
	}
	return s.GetNote(id)
}

// FindByTitle returns the id of the first note with an exact title match,
// or 0 when none exists.
func (s *Store) FindByTitle(title string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM notes WHERE title = ? LIMIT 1`, title).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find by title: %w", err)
	}
	return id, nil
}

// CountNotes returns the number of notes in the store.
func (s *Store) CountNotes() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return count, nil
}

// CountPinned returns the number of pinned notes.
func (s *Store) CountPinned() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM notes WHERE pinned = 1`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pinned: %w", err)
	}
	return count, nil
}

// ListNotes returns the ordered listing: pinned notes first (creation time
// descending, whatever the active sort), then the rest per sort, both
// restricted by the category filter.
func (s *Store) ListNotes(sort Sort, filter Category) ([]NoteMeta, error) {
	filterClause, filterArgs := filterSQL(filter)

	pinned, err := s.queryMetas(`
		SELECT n.id, n.title, n.created_at, n.pinned FROM notes n
		WHERE n.pinned = 1`+filterClause+`
		ORDER BY n.created_at DESC`, filterArgs...)
	if err != nil {
		return nil, err
	}

	others, err := s.queryMetas(`
		SELECT n.id, n.title, n.created_at, n.pinned FROM notes n
		WHERE n.pinned = 0`+filterClause+`
		ORDER BY `+orderSQL(sort), filterArgs...)
	if err != nil {
		return nil, err
	}

	return append(pinned, others...), nil
}

func filterSQL(filter Category) (string, []any) {
	switch filter {
	case FilterAll, "":
		return "", nil
	case FilterNoCategory:
		return ` AND NOT EXISTS (SELECT 1 FROM note_categories c WHERE c.note_id = n.id)`, nil
	default:
		return ` AND EXISTS (SELECT 1 FROM note_categories c WHERE c.note_id = n.id AND c.category = ?)`,
			[]any{string(filter)}
	}
}

func orderSQL(sort Sort) string {
	switch sort {
	case SortDateAsc:
		return "n.created_at ASC"
	case SortNameAsc:
		return "CASE WHEN n.title = '' THEN '" + UntitledLabel + "' ELSE n.title END COLLATE NOCASE ASC"
	case SortNameDesc:
		return "CASE WHEN n.title = '' THEN '" + UntitledLabel + "' ELSE n.title END COLLATE NOCASE DESC"
	case SortModifiedDesc:
		return "n.last_accessed DESC"
	case SortModifiedAsc:
		return "n.last_accessed ASC"
	default: // SortDateDesc
		return "n.created_at DESC"
	}
}

func (s *Store) queryMetas(query string, args ...any) ([]NoteMeta, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var metas []NoteMeta
	for rows.Next() {
		var (
			meta      NoteMeta
			createdAt string
			pinned    int
		)
		if err := rows.Scan(&meta.ID, &meta.Title, &createdAt, &pinned); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		meta.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		meta.Pinned = pinned == 1
		metas = append(metas, meta)
	}
	return metas, rows.Err()
}
