// Package session holds the in-memory side of a running window: the note
// cache and the list reconciler. Everything here is derived from the store
// and disposable; the store always wins on conflict.
package session

import "github.com/soriane/plume/internal/store"

// Entry is the cached, possibly partial, view of one note. Title is always
// present after the note has been listed; Content stays nil until the note
// is first opened and is backfilled from the store exactly once per session.
type Entry struct {
	Title      string
	Content    *string
	Pinned     bool
	Categories []store.Category
}

// Cache maps note ids to entries for the current session.
type Cache struct {
	entries map[int64]*Entry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[int64]*Entry)}
}

// Get returns the entry for id, or nil.
func (c *Cache) Get(id int64) *Entry {
	return c.entries[id]
}

// Merge folds a listing row into the cache. A missing entry is created with
// nil content; an existing entry only has its volatile fields (pinned,
// categories) replaced, so a lazily loaded content blob or an in-flight
// title edit is never clobbered by a list reload.
func (c *Cache) Merge(meta store.NoteMeta, cats []store.Category) {
	if e, ok := c.entries[meta.ID]; ok {
		e.Pinned = meta.Pinned
		e.Categories = cats
		return
	}
	c.entries[meta.ID] = &Entry{
		Title:      meta.Title,
		Pinned:     meta.Pinned,
		Categories: cats,
	}
}

// SetContent backfills the content blob after a lazy load or a flush.
func (c *Cache) SetContent(id int64, content string) {
	if e, ok := c.entries[id]; ok {
		e.Content = &content
	}
}

// SetTitle records a title edit.
func (c *Cache) SetTitle(id int64, title string) {
	if e, ok := c.entries[id]; ok {
		e.Title = title
	}
}

// Put replaces the whole entry, used when a note is loaded in full.
func (c *Cache) Put(id int64, e *Entry) {
	c.entries[id] = e
}

// Forget drops the entry, used on delete.
func (c *Cache) Forget(id int64) {
	delete(c.entries, id)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}
