package store

import (
	"errors"
	"fmt"
)

// MaxCategories caps how many categories a single note may carry.
const MaxCategories = 2

// ErrCategoryLimit is returned when assigning would exceed MaxCategories.
var ErrCategoryLimit = errors.New("category limit reached")

// ErrInvalidCategory is returned for a category outside the fixed set.
var ErrInvalidCategory = errors.New("invalid category")

// Category names a fixed tag, or one of the two filter pseudo-values.
type Category string

const (
	CategoryPersonal    Category = "personal"
	CategoryStudy       Category = "study"
	CategoryWork        Category = "work"
	CategoryDaily       Category = "daily"
	CategoryInspiration Category = "inspiration"

	// Filter-only values: FilterAll applies no filter, FilterNoCategory
	// selects notes with zero assignments.
	FilterAll        Category = "all"
	FilterNoCategory Category = "no_category"
)

// Categories is the fixed assignable set, in display order.
var Categories = []Category{
	CategoryPersonal,
	CategoryStudy,
	CategoryWork,
	CategoryDaily,
	CategoryInspiration,
}

// ValidCategory reports whether cat is one of the five assignable tags.
func ValidCategory(cat Category) bool {
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// ValidFilter reports whether cat may be used as a list filter.
func ValidFilter(cat Category) bool {
	return cat == FilterAll || cat == FilterNoCategory || ValidCategory(cat)
}

// AddCategory assigns a category to a note. A third distinct assignment
// fails with ErrCategoryLimit and leaves state unchanged; re-assigning an
// existing pair is a no-op. Count check and insert share a transaction.
func (s *Store) AddCategory(id int64, cat Category) error {
	if !ValidCategory(cat) {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, cat)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin add category: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM note_categories WHERE note_id = ? AND category != ?
	`, id, string(cat)).Scan(&count)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count >= MaxCategories {
		return ErrCategoryLimit
	}

	_, err = tx.Exec(`
		INSERT OR IGNORE INTO note_categories (note_id, category) VALUES (?, ?)
	`, id, string(cat))
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return tx.Commit()
}

// RemoveCategory removes a category assignment. Removing an absent pair is
// a no-op.
func (s *Store) RemoveCategory(id int64, cat Category) error {
	_, err := s.db.Exec(`
		DELETE FROM note_categories WHERE note_id = ? AND category = ?
	`, id, string(cat))
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// NoteCategories returns the note's assignments in display order.
func (s *Store) NoteCategories(id int64) ([]Category, error) {
	rows, err := s.db.Query(`
		SELECT category FROM note_categories WHERE note_id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	assigned := map[Category]bool{}
	for rows.Next() {
		var cat string
		if err := rows.Scan(&cat); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		assigned[Category(cat)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var cats []Category
	for _, c := range Categories {
		if assigned[c] {
			cats = append(cats, c)
		}
	}
	return cats, nil
}
