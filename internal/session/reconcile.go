package session

import (
	"fmt"

	"github.com/soriane/plume/internal/store"
)

// Lister is the slice of the store the reconciler needs.
type Lister interface {
	ListNotes(sort store.Sort, filter store.Category) ([]store.NoteMeta, error)
	NoteCategories(id int64) ([]store.Category, error)
	GetNote(id int64) (*store.Note, error)
	GetContent(id int64) (string, error)
	TouchAccessed(id int64) error
}

// Row is one visible line of the note list. A separator row carries no
// note and sits between the pinned group and the rest.
type Row struct {
	Meta      store.NoteMeta
	Separator bool
}

// ListState is the outcome of a rebuild: the rows to render, which note
// keeps the selection, and whether the empty state applies.
type ListState struct {
	Rows       []Row
	SelectedID int64 // 0 when nothing is selected
	Empty      bool
}

// Reconciler rebuilds the visible ordered list from the store after every
// structural change and keeps the cache coherent while doing so.
type Reconciler struct {
	store  Lister
	cache  *Cache
	Sort   store.Sort
	Filter store.Category
}

// NewReconciler wires a reconciler over the store and cache with the given
// initial sort and filter.
func NewReconciler(st Lister, cache *Cache, sort store.Sort, filter store.Category) *Reconciler {
	return &Reconciler{store: st, cache: cache, Sort: sort, Filter: filter}
}

// Rebuild lists notes under the active sort and filter, merges every row
// into the cache, inserts the pinned/others separator when both groups are
// non-empty, and re-selects the remembered note when it is still visible.
func (r *Reconciler) Rebuild(selected int64) (ListState, error) {
	metas, err := r.store.ListNotes(r.Sort, r.Filter)
	if err != nil {
		return ListState{}, fmt.Errorf("list notes: %w", err)
	}

	var pinned, others []store.NoteMeta
	for _, m := range metas {
		if m.Pinned {
			pinned = append(pinned, m)
		} else {
			others = append(others, m)
		}
	}

	rows := make([]Row, 0, len(metas)+1)
	for _, m := range pinned {
		rows = append(rows, Row{Meta: m})
	}
	if len(pinned) > 0 && len(others) > 0 {
		rows = append(rows, Row{Separator: true})
	}
	for _, m := range others {
		rows = append(rows, Row{Meta: m})
	}

	for _, m := range metas {
		cats, err := r.store.NoteCategories(m.ID)
		if err != nil {
			return ListState{}, fmt.Errorf("note categories: %w", err)
		}
		r.cache.Merge(m, cats)
	}

	state := ListState{Rows: rows, Empty: len(metas) == 0}
	if selected != 0 {
		for _, row := range rows {
			if !row.Separator && row.Meta.ID == selected {
				state.SelectedID = selected
				break
			}
		}
	}
	return state, nil
}

// Open returns the cache entry for id, lazily loading the content blob on
// first open. The store read also records the access time; a reopen during
// the session is served entirely from cache.
func (r *Reconciler) Open(id int64) (*Entry, error) {
	e := r.cache.Get(id)
	if e != nil && e.Content != nil {
		return e, nil
	}

	if e == nil {
		note, err := r.store.GetNote(id)
		if err != nil {
			return nil, fmt.Errorf("load note: %w", err)
		}
		if note == nil {
			return nil, fmt.Errorf("%w: %d", store.ErrNoteNotFound, id)
		}
		cats, err := r.store.NoteCategories(id)
		if err != nil {
			return nil, fmt.Errorf("note categories: %w", err)
		}
		e = &Entry{Title: note.Title, Pinned: note.Pinned, Categories: cats}
		e.Content = &note.Content
		r.cache.Put(id, e)
	} else {
		content, err := r.store.GetContent(id)
		if err != nil {
			return nil, fmt.Errorf("load content: %w", err)
		}
		e.Content = &content
	}

	if err := r.store.TouchAccessed(id); err != nil {
		return nil, fmt.Errorf("touch note: %w", err)
	}
	return e, nil
}
