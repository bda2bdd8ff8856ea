package app

import (
	"errors"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/soriane/plume/internal/store"
	"github.com/soriane/plume/internal/styles"
	"github.com/soriane/plume/internal/ui"
)

// Update is the root message handler.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeEditor()
		if m.previewing {
			m.renderPreview()
		}
		return m, nil

	case autosaveTickMsg:
		if m.sched.Expire(msg.noteID, m.titleInput.Value(), m.body.Value()) {
			m.flush()
		}
		return m, nil

	case dbChangedMsg:
		if time.Now().After(m.suppressWatchUntil) {
			m.reportErr(m.rebuild())
		}
		return m, listenWatch(m.w)

	case urlOpenedMsg:
		if msg.err != nil {
			slog.Error("browser launch failed", "error", msg.err)
			m.status = "could not open browser"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.flush()
		return m, tea.Quit
	}

	if m.dialog != nil {
		return m.updateDialog(msg)
	}
	if m.menu != menuNone {
		return m.updateMenu(msg)
	}
	if m.searching && m.search.Focused() {
		return m.updateSearch(msg)
	}

	if m.focus == paneEditor {
		return m.updateEditor(msg)
	}
	return m.updateList(msg)
}

// --- dialogs ---

func (m *Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.dialog.Update(msg) {
	case ui.DialogConfirmed:
		action := m.dialogAction
		checked := m.dialog.Checked()
		m.closeDialog()

		switch action {
		case actionDelete:
			if checked {
				m.skipDeleteConfirm = true
			}
			m.deleteNote(m.pendingDeleteID)
		case actionSpotify:
			if checked {
				m.reportErr(m.st.SetSetting(store.SettingSpotifyConfirmation, "False"))
			}
			return m, openURL(spotifyURL)
		}

	case ui.DialogCancelled:
		m.closeDialog()
	}
	return m, nil
}

func (m *Model) closeDialog() {
	m.dialog = nil
	m.dialogAction = actionNone
	m.pendingDeleteID = 0
}

func (m *Model) showInfo(title, message string) {
	m.dialog = ui.NewInfoDialog(title, message)
	m.dialogAction = actionInfo
}

// --- menus ---

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.menuLen()
	switch msg.String() {
	case "esc":
		m.menu = menuNone
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < items-1 {
			m.menuCursor++
		}
	case "enter", " ":
		switch m.menu {
		case menuSort:
			m.applySort(sortOrder[m.menuCursor])
			m.menu = menuNone
		case menuCategory:
			// toggling keeps the menu open so both slots can be set
			m.toggleCategory(store.Categories[m.menuCursor])
		}
	}
	return m, nil
}

func (m *Model) menuLen() int {
	if m.menu == menuSort {
		return len(sortOrder)
	}
	return len(store.Categories)
}

func (m *Model) applySort(sort store.Sort) {
	m.rec.Sort = sort
	m.reportErr(m.st.SetSetting(store.SettingSortMethod, string(sort)))
	m.suppressWatch()
	m.reportErr(m.rebuild())
}

func (m *Model) toggleCategory(cat store.Category) {
	row := m.cursorRow()
	if row == nil {
		return
	}
	id := row.Meta.ID

	assigned := false
	if e := m.cache.Get(id); e != nil {
		for _, c := range e.Categories {
			if c == cat {
				assigned = true
				break
			}
		}
	}

	var err error
	if assigned {
		err = m.st.RemoveCategory(id, cat)
	} else {
		err = m.st.AddCategory(id, cat)
	}
	if errors.Is(err, store.ErrCategoryLimit) {
		m.menu = menuNone
		m.showInfo("Category limit", "A note can have at most 2 categories. Remove one first.")
		return
	}
	if err != nil {
		m.reportErr(err)
		return
	}
	m.suppressWatch()
	m.reportErr(m.rebuild())
}

// --- search ---

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.SetValue("")
		m.search.Blur()
		m.clampCursor()
		return m, nil
	case "enter":
		// keep the filter, hand navigation back to the list
		m.search.Blur()
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	m.clampCursor()
	return m, cmd
}

// --- list pane ---

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.flush()
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)

	case "enter", "l", "tab":
		if row := m.cursorRow(); row != nil {
			if row.Meta.ID != m.selectedID {
				m.flush()
				if err := m.openNote(row.Meta.ID); err != nil {
					m.reportErr(err)
					return m, nil
				}
			}
			m.focusEditor(fieldBody)
		}

	case "n":
		return m, m.newNote()

	case "d":
		if row := m.cursorRow(); row != nil {
			if m.skipDeleteConfirm {
				m.deleteNote(row.Meta.ID)
			} else {
				title := row.Meta.Title
				if title == "" {
					title = store.UntitledLabel
				}
				m.dialog = ui.NewConfirmDialog("Delete note", "Delete \""+title+"\"? This cannot be undone.")
				m.dialog.CheckboxLabel = "Don't ask again this session"
				m.dialogAction = actionDelete
				m.pendingDeleteID = row.Meta.ID
			}
		}

	case "p":
		m.togglePin()

	case "s":
		m.menu = menuSort
		m.menuCursor = 0
		for i, s := range sortOrder {
			if s == m.rec.Sort {
				m.menuCursor = i
				break
			}
		}

	case "c":
		if m.cursorRow() != nil {
			m.menu = menuCategory
			m.menuCursor = 0
		}

	case "f":
		m.cycleFilter()

	case "/":
		m.searching = true
		m.search.Focus()

	case "y":
		m.yankNote()

	case "o":
		return m.openSpotify()

	case "a":
		m.openAboutNote()

	case "t":
		m.toggleTheme()
	}

	return m, nil
}

func (m *Model) moveCursor(dir int) {
	rows := m.visibleRows()
	i := m.cursor + dir
	for i >= 0 && i < len(rows) && rows[i].Separator {
		i += dir
	}
	if i >= 0 && i < len(rows) {
		m.cursor = i
	}
}

func (m *Model) focusEditor(field editorField) {
	m.focus = paneEditor
	m.field = field
	if field == fieldTitle {
		m.titleInput.Focus()
		m.body.Blur()
	} else {
		m.titleInput.Blur()
		m.body.Focus()
	}
}

func (m *Model) newNote() tea.Cmd {
	m.flush()
	id, err := m.st.CreateNote()
	if err != nil {
		m.reportErr(err)
		return nil
	}
	m.suppressWatch()

	// A fresh note has no categories, so any active category filter would
	// hide it and drop the selection. Reset to the unfiltered view.
	if m.rec.Filter != store.FilterAll {
		m.rec.Filter = store.FilterAll
		m.reportErr(m.st.SetSetting(store.SettingCurrentCategory, string(store.FilterAll)))
	}
	if err := m.openNote(id); err != nil {
		m.reportErr(err)
		return nil
	}
	m.reportErr(m.rebuild())
	m.focusEditor(fieldTitle)
	return nil
}

func (m *Model) deleteNote(id int64) {
	if err := m.st.DeleteNote(id); err != nil {
		m.reportErr(err)
		return
	}
	m.suppressWatch()
	m.cache.Forget(id)

	if id == m.selectedID {
		m.selectedID = 0
		m.titleInput.SetValue("")
		m.body.SetValue("")
		m.sched.NoteOpened(0, "", "")
		m.previewing = false
	}
	m.reportErr(m.rebuild())

	// land the editor on whatever the cursor now points at
	if m.selectedID == 0 {
		if row := m.cursorRow(); row != nil {
			m.reportErr(m.openNote(row.Meta.ID))
		}
	}
}

func (m *Model) togglePin() {
	row := m.cursorRow()
	if row == nil {
		return
	}
	err := m.st.SetPinned(row.Meta.ID, !row.Meta.Pinned)
	if errors.Is(err, store.ErrPinLimit) {
		m.showInfo("Pin limit", "You can pin at most 3 notes. Unpin one first.")
		return
	}
	if err != nil {
		m.reportErr(err)
		return
	}
	m.suppressWatch()
	m.reportErr(m.rebuild())
}

func (m *Model) cycleFilter() {
	next := filterCycle[0]
	for i, f := range filterCycle {
		if f == m.rec.Filter {
			next = filterCycle[(i+1)%len(filterCycle)]
			break
		}
	}
	m.rec.Filter = next
	m.reportErr(m.st.SetSetting(store.SettingCurrentCategory, string(next)))
	m.suppressWatch()
	m.reportErr(m.rebuild())
}

func (m *Model) yankNote() {
	row := m.cursorRow()
	if row == nil {
		return
	}
	content, err := m.st.GetContent(row.Meta.ID)
	if err != nil {
		m.reportErr(err)
		return
	}
	if err := clipboard.WriteAll(content); err != nil {
		slog.Error("clipboard write failed", "error", err)
		m.status = "clipboard unavailable"
		return
	}
	m.status = "copied to clipboard"
}

func (m *Model) openSpotify() (tea.Model, tea.Cmd) {
	v, ok, err := m.st.GetSetting(store.SettingSpotifyConfirmation)
	if err != nil {
		m.reportErr(err)
		return m, nil
	}
	if ok && v == "False" {
		return m, openURL(spotifyURL)
	}
	m.dialog = ui.NewConfirmDialog("Open Spotify", "Open your liked songs in the browser?")
	m.dialog.CheckboxLabel = "Don't ask again"
	m.dialogAction = actionSpotify
	return m, nil
}

// openAboutNote finds the about note by title, creating it on first use.
func (m *Model) openAboutNote() {
	m.flush()
	id, err := m.st.FindByTitle(aboutTitle)
	if err != nil {
		m.reportErr(err)
		return
	}
	if id == 0 {
		id, err = m.st.CreateNote()
		if err != nil {
			m.reportErr(err)
			return
		}
		if err := m.st.UpdateNote(id, aboutTitle, aboutContent); err != nil {
			m.reportErr(err)
			return
		}
		m.suppressWatch()
	}
	if err := m.openNote(id); err != nil {
		m.reportErr(err)
		return
	}
	m.reportErr(m.rebuild())
	m.focusEditor(fieldBody)
}

func (m *Model) toggleTheme() {
	next := "dark"
	if styles.Current() == "dark" {
		next = "light"
	}
	styles.Apply(next)
	m.reportErr(m.st.SetSetting(store.SettingTheme, next))
	m.suppressWatch()
	if m.previewing {
		m.renderPreview()
	}
}

// --- editor pane ---

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.previewing {
			m.previewing = false
			return m, nil
		}
		m.flush()
		m.focus = paneList
		m.titleInput.Blur()
		m.body.Blur()
		return m, nil

	case "ctrl+s":
		m.flush()
		m.status = "saved"
		return m, nil

	case "ctrl+p":
		m.previewing = !m.previewing
		if m.previewing {
			m.renderPreview()
		}
		return m, nil

	case "ctrl+y":
		if err := clipboard.WriteAll(m.body.Value()); err != nil {
			slog.Error("clipboard write failed", "error", err)
			m.status = "clipboard unavailable"
		} else {
			m.status = "copied to clipboard"
		}
		return m, nil

	case "tab":
		if m.field == fieldTitle {
			m.focusEditor(fieldBody)
		} else {
			m.focusEditor(fieldTitle)
		}
		return m, nil
	}

	if m.previewing {
		return m, nil
	}

	if m.field == fieldTitle {
		return m.updateTitle(msg)
	}
	return m.updateBody(msg)
}

// updateTitle routes a key to the title input. Title changes sync to the
// store on every keystroke; the debounced flush covers the content.
func (m *Model) updateTitle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		m.focusEditor(fieldBody)
		return m, nil
	}

	before := m.titleInput.Value()
	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	title := m.titleInput.Value()
	if title == before || m.selectedID == 0 {
		return m, cmd
	}

	if err := m.st.UpdateTitle(m.selectedID, title); err != nil {
		slog.Error("title sync failed", "note", m.selectedID, "error", err)
	} else {
		m.suppressWatch()
	}
	m.cache.SetTitle(m.selectedID, title)
	m.retitleRow(m.selectedID, title)

	var cmds []tea.Cmd
	cmds = append(cmds, cmd)
	if m.sched.Edit() {
		cmds = append(cmds, armAutosave(m.selectedID))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) updateBody(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.body.Value()
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	content := m.body.Value()
	if content == before {
		return m, cmd
	}

	if formatted, ok := autoformatDashes(content); ok {
		m.body.SetValue(formatted)
	}

	var cmds []tea.Cmd
	cmds = append(cmds, cmd)
	if m.sched.Edit() {
		cmds = append(cmds, armAutosave(m.selectedID))
	}
	return m, tea.Batch(cmds...)
}
