// Package app wires the store, session cache, reconciler, and autosave
// scheduler into the root Bubble Tea model.
package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/soriane/plume/internal/autosave"
	"github.com/soriane/plume/internal/config"
	"github.com/soriane/plume/internal/session"
	"github.com/soriane/plume/internal/store"
	"github.com/soriane/plume/internal/styles"
	"github.com/soriane/plume/internal/ui"
	"github.com/soriane/plume/internal/watch"
)

// pane identifies which side of the split owns keyboard input.
type pane int

const (
	paneList pane = iota
	paneEditor
)

// editorField identifies the focused editor input.
type editorField int

const (
	fieldTitle editorField = iota
	fieldBody
)

// menuKind identifies the open inline menu, if any.
type menuKind int

const (
	menuNone menuKind = iota
	menuSort
	menuCategory
)

// dialogAction names what a confirmed dialog should do.
type dialogAction int

const (
	actionNone dialogAction = iota
	actionInfo
	actionDelete
	actionSpotify
)

const (
	listPaneWidth = 32

	// dateFormat renders creation dates in the list and is matched by the
	// search filter.
	dateFormat = "Jan 2, 2006"

	aboutTitle = "About Plume"

	// spotifyURL is the liked-songs collection the music shortcut opens.
	spotifyURL = "https://open.spotify.com/collection/tracks"

	// watchSuppression is how long after our own store write we ignore
	// file watcher events, so we do not reconcile against ourselves.
	watchSuppression = 500 * time.Millisecond
)

var sortLabels = map[store.Sort]string{
	store.SortDateDesc:     "Newest first",
	store.SortDateAsc:      "Oldest first",
	store.SortNameAsc:      "Name A-Z",
	store.SortNameDesc:     "Name Z-A",
	store.SortModifiedDesc: "Recently modified",
	store.SortModifiedAsc:  "Least recently modified",
}

// sortOrder is the menu display order.
var sortOrder = []store.Sort{
	store.SortDateDesc,
	store.SortDateAsc,
	store.SortNameAsc,
	store.SortNameDesc,
	store.SortModifiedDesc,
	store.SortModifiedAsc,
}

// filterCycle is the order the filter shortcut steps through.
var filterCycle = []store.Category{
	store.FilterAll,
	store.CategoryPersonal,
	store.CategoryStudy,
	store.CategoryWork,
	store.CategoryDaily,
	store.CategoryInspiration,
	store.FilterNoCategory,
}

// Model is the root Bubble Tea model.
type Model struct {
	cfg   *config.Config
	st    *store.Store
	cache *session.Cache
	rec   *session.Reconciler
	sched *autosave.Scheduler
	w     *watch.Watcher

	width, height int
	focus         pane
	field         editorField

	rows       []session.Row
	cursor     int
	selectedID int64
	empty      bool

	titleInput textinput.Model
	body       textarea.Model

	search    textinput.Model
	searching bool

	previewing bool
	preview    string

	menu       menuKind
	menuCursor int

	dialog          *ui.ConfirmDialog
	dialogAction    dialogAction
	pendingDeleteID int64
	// delete confirmations can be skipped for the rest of the session;
	// the spotify confirmation skip is a persisted setting.
	skipDeleteConfirm bool

	suppressWatchUntil time.Time
	status             string
}

// New restores persisted settings, builds the initial list, and opens the
// last-accessed note, creating a first note on an empty store.
func New(cfg *config.Config, st *store.Store, w *watch.Watcher) (*Model, error) {
	cache := session.NewCache()

	sort := store.SortDateDesc
	if v, ok, err := st.GetSetting(store.SettingSortMethod); err != nil {
		return nil, err
	} else if ok {
		sort = store.Sort(v)
	}

	filter := store.FilterAll
	if v, ok, err := st.GetSetting(store.SettingCurrentCategory); err != nil {
		return nil, err
	} else if ok && store.ValidFilter(store.Category(v)) {
		filter = store.Category(v)
	}

	if v, ok, err := st.GetSetting(store.SettingTheme); err != nil {
		return nil, err
	} else if ok {
		styles.Apply(v)
	}

	m := &Model{
		cfg:   cfg,
		st:    st,
		cache: cache,
		rec:   session.NewReconciler(st, cache, sort, filter),
		sched: autosave.New(),
		w:     w,
	}

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = store.UntitledLabel
	m.titleInput.Prompt = ""
	m.titleInput.CharLimit = 200

	m.body = textarea.New()
	m.body.Placeholder = "Start writing..."
	m.body.ShowLineNumbers = false
	m.body.CharLimit = 0

	m.search = textinput.New()
	m.search.Placeholder = "Search notes"
	m.search.Prompt = "/ "

	if err := m.startupNote(); err != nil {
		return nil, err
	}
	if err := m.rebuild(); err != nil {
		return nil, err
	}
	return m, nil
}

// startupNote opens the note from the previous session, or creates the
// very first note when the store is empty.
func (m *Model) startupNote() error {
	note, err := m.st.LastAccessedNote()
	if err != nil {
		return err
	}
	if note == nil {
		id, err := m.st.CreateNote()
		if err != nil {
			return err
		}
		m.suppressWatch()
		return m.openNote(id)
	}
	return m.openNote(note.ID)
}

// Init starts the watcher listen loop.
func (m *Model) Init() tea.Cmd {
	return listenWatch(m.w)
}

// rebuild re-reads the list from the store and clamps the cursor.
func (m *Model) rebuild() error {
	state, err := m.rec.Rebuild(m.selectedID)
	if err != nil {
		return err
	}
	m.rows = state.Rows
	m.empty = state.Empty
	m.selectedID = state.SelectedID

	if m.selectedID != 0 {
		for i, row := range m.visibleRows() {
			if !row.Separator && row.Meta.ID == m.selectedID {
				m.cursor = i
				break
			}
		}
	}
	m.clampCursor()
	return nil
}

// visibleRows applies the in-memory search filter on top of the store's
// sort and category filter. Separators are dropped while searching.
func (m *Model) visibleRows() []session.Row {
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if !m.searching || query == "" {
		return m.rows
	}

	var out []session.Row
	for _, row := range m.rows {
		if row.Separator {
			continue
		}
		title := row.Meta.Title
		if title == "" {
			title = store.UntitledLabel
		}
		haystack := strings.ToLower(title + " " + row.Meta.CreatedAt.Local().Format(dateFormat))
		if strings.Contains(haystack, query) {
			out = append(out, row)
		}
	}
	return out
}

func (m *Model) clampCursor() {
	rows := m.visibleRows()
	if len(rows) == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if rows[m.cursor].Separator {
		if m.cursor+1 < len(rows) {
			m.cursor++
		} else if m.cursor > 0 {
			m.cursor--
		}
	}
}

// cursorRow returns the row under the cursor, or nil.
func (m *Model) cursorRow() *session.Row {
	rows := m.visibleRows()
	if m.cursor < 0 || m.cursor >= len(rows) || rows[m.cursor].Separator {
		return nil
	}
	return &rows[m.cursor]
}

// openNote loads a note into the editor and resets the autosave baseline.
func (m *Model) openNote(id int64) error {
	entry, err := m.rec.Open(id)
	if err != nil {
		return err
	}
	m.selectedID = id
	m.titleInput.SetValue(entry.Title)
	m.body.SetValue(*entry.Content)
	m.sched.NoteOpened(id, entry.Title, *entry.Content)
	m.previewing = false
	return nil
}

// flush writes the editor state to the store if it changed, and rebuilds
// the list only when the sort key depends on the modified time.
func (m *Model) flush() {
	if m.selectedID == 0 {
		return
	}
	title, content := m.titleInput.Value(), m.body.Value()
	if !m.sched.Dirty(title, content) {
		return
	}
	if err := m.st.UpdateNote(m.selectedID, title, content); err != nil {
		slog.Error("autosave flush failed", "note", m.selectedID, "error", err)
		return
	}
	m.suppressWatch()
	m.sched.Flushed(title, content)
	m.cache.SetTitle(m.selectedID, title)
	m.cache.SetContent(m.selectedID, content)

	if m.rec.Sort.ModifiedBased() {
		m.reportErr(m.rebuild())
	} else {
		m.retitleRow(m.selectedID, title)
	}
}

// retitleRow updates a row's title in place, avoiding a full rebuild for
// edits that cannot reorder the list.
func (m *Model) retitleRow(id int64, title string) {
	for i := range m.rows {
		if !m.rows[i].Separator && m.rows[i].Meta.ID == id {
			m.rows[i].Meta.Title = title
			return
		}
	}
}

func (m *Model) suppressWatch() {
	m.suppressWatchUntil = time.Now().Add(watchSuppression)
}

// reportErr logs a store error; the UI keeps its previous state.
func (m *Model) reportErr(err error) {
	if err == nil {
		return
	}
	slog.Error("store operation failed", "error", err)
	m.status = "storage error, see log"
}

// counterText renders the word and character counter for the status bar.
func counterText(content string) string {
	words := len(strings.Fields(content))
	chars := len([]rune(content))
	return fmt.Sprintf("%d words · %d chars", words, chars)
}

// autoformatDashes replaces a trailing "--" with an em dash. It reports
// whether a replacement happened.
func autoformatDashes(s string) (string, bool) {
	if strings.HasSuffix(s, "--") {
		return s[:len(s)-2] + "—", true
	}
	return s, false
}
