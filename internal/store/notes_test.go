package store

import (
	"testing"
)

// makeNote creates a note with the given title and content.
func makeNote(t *testing.T, s *Store, title, content string) int64 {
	t.Helper()
	id, err := s.CreateNote()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateNote(id, title, content); err != nil {
		t.Fatal(err)
	}
	return id
}

func TestListPinnedFirstForEverySort(t *testing.T) {
	s := openTestStore(t)

	a := makeNote(t, s, "alpha", "")
	b := makeNote(t, s, "beta", "")
	c := makeNote(t, s, "gamma", "")
	_ = c

	if err := s.SetPinned(b, true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetPinned(a, true); err != nil {
		t.Fatal(err)
	}

	sorts := []Sort{
		SortDateDesc, SortDateAsc,
		SortNameAsc, SortNameDesc,
		SortModifiedDesc, SortModifiedAsc,
	}
	for _, sort := range sorts {
		t.Run(string(sort), func(t *testing.T) {
			metas, err := s.ListNotes(sort, FilterAll)
			if err != nil {
				t.Fatalf("ListNotes: %v", err)
			}
			if len(metas) != 3 {
				t.Fatalf("got %d notes, want 3", len(metas))
			}
			seenUnpinned := false
			for _, m := range metas {
				if !m.Pinned {
					seenUnpinned = true
				} else if seenUnpinned {
					t.Fatalf("pinned note %d after non-pinned in sort %s", m.ID, sort)
				}
			}
		})
	}
}

func TestListNameSortTreatsEmptyAsUntitled(t *testing.T) {
	s := openTestStore(t)

	makeNote(t, s, "apple", "")
	makeNote(t, s, "", "") // collates as "Untitled"
	makeNote(t, s, "zebra", "")

	metas, err := s.ListNotes(SortNameAsc, FilterAll)
	if err != nil {
		t.Fatal(err)
	}
	got := make([]string, len(metas))
	for i, m := range metas {
		got[i] = m.Title
	}
	want := []string{"apple", "", "zebra"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got order %q, want %q", got, want)
		}
	}
}

func TestListNameSortCaseInsensitive(t *testing.T) {
	s := openTestStore(t)

	makeNote(t, s, "Banana", "")
	makeNote(t, s, "apple", "")
	makeNote(t, s, "Cherry", "")

	metas, err := s.ListNotes(SortNameAsc, FilterAll)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"apple", "Banana", "Cherry"}
	for i, m := range metas {
		if m.Title != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, m.Title, want[i])
		}
	}
}

func TestListAutosavedTitleSortsAlphabetically(t *testing.T) {
	s := openTestStore(t)

	makeNote(t, s, "Recipes", "")
	makeNote(t, s, "Zoo trip", "")

	// A new note whose title is flushed by the autosave window.
	id, err := s.CreateNote()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateNote(id, "Shopping", "milk, eggs"); err != nil {
		t.Fatal(err)
	}

	metas, err := s.ListNotes(SortNameAsc, FilterAll)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Recipes", "Shopping", "Zoo trip"}
	for i, m := range metas {
		if m.Title != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, m.Title, want[i])
		}
	}
}

func TestListModifiedSortOrdersByAccess(t *testing.T) {
	s := openTestStore(t)

	first := makeNote(t, s, "first", "")
	second := makeNote(t, s, "second", "")

	// Editing "first" makes it the most recently modified. RFC3339 has
	// second resolution, so force a distinct timestamp.
	if err := forceAccessed(s, second, "2020-01-01T00:00:00Z"); err != nil {
		t.Fatal(err)
	}

	metas, err := s.ListNotes(SortModifiedDesc, FilterAll)
	if err != nil {
		t.Fatal(err)
	}
	if metas[0].ID != first {
		t.Errorf("got first row %d, want %d (most recently modified)", metas[0].ID, first)
	}

	metas, err = s.ListNotes(SortModifiedAsc, FilterAll)
	if err != nil {
		t.Fatal(err)
	}
	if metas[0].ID != second {
		t.Errorf("got first row %d, want %d (least recently modified)", metas[0].ID, second)
	}
}

func forceAccessed(s *Store, id int64, ts string) error {
	_, err := s.db.Exec(`UPDATE notes SET last_accessed = ? WHERE id = ?`, ts, id)
	return err
}

func TestSortModifiedBased(t *testing.T) {
	tests := []struct {
		sort Sort
		want bool
	}{
		{SortDateDesc, false},
		{SortDateAsc, false},
		{SortNameAsc, false},
		{SortNameDesc, false},
		{SortModifiedDesc, true},
		{SortModifiedAsc, true},
	}
	for _, tt := range tests {
		if got := tt.sort.ModifiedBased(); got != tt.want {
			t.Errorf("%s.ModifiedBased() = %v, want %v", tt.sort, got, tt.want)
		}
	}
}

func TestLastAccessedNote(t *testing.T) {
	s := openTestStore(t)

	note, err := s.LastAccessedNote()
	if err != nil {
		t.Fatal(err)
	}
	if note != nil {
		t.Fatal("empty store should have no last note")
	}

	old := makeNote(t, s, "old", "")
	recent := makeNote(t, s, "recent", "")
	if err := forceAccessed(s, old, "2020-01-01T00:00:00Z"); err != nil {
		t.Fatal(err)
	}

	note, err = s.LastAccessedNote()
	if err != nil {
		t.Fatal(err)
	}
	if note == nil || note.ID != recent {
		t.Errorf("got %+v, want note %d", note, recent)
	}
}

func TestGetContentLazyLoad(t *testing.T) {
	s := openTestStore(t)

	id := makeNote(t, s, "t", "body text")

	content, err := s.GetContent(id)
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if content != "body text" {
		t.Errorf("got %q, want 'body text'", content)
	}
}
