package app

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/soriane/plume/internal/session"
	"github.com/soriane/plume/internal/store"
	"github.com/soriane/plume/internal/styles"
	"github.com/soriane/plume/internal/ui"
)

// each list row renders as a title line plus a date line.
const rowHeight = 2

func (m *Model) editorWidth() int {
	w := m.width - listPaneWidth - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) editorHeight() int {
	h := m.height - 5
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) resizeEditor() {
	m.titleInput.Width = m.editorWidth() - 1
	m.body.SetWidth(m.editorWidth())
	m.body.SetHeight(m.editorHeight())
}

// renderPreview runs the body through the markdown renderer. Failures fall
// back to the raw text.
func (m *Model) renderPreview() {
	wrap := m.cfg.UI.WrapWidth
	if wrap <= 0 || wrap > m.editorWidth() {
		wrap = m.editorWidth()
	}

	style := "light"
	if styles.Current() == "dark" {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		slog.Error("preview renderer init failed", "error", err)
		m.preview = m.body.Value()
		return
	}
	out, err := r.Render(m.body.Value())
	if err != nil {
		slog.Error("preview render failed", "error", err)
		m.preview = m.body.Value()
		return
	}
	m.preview = out
}

// View renders the split layout with any open menu or dialog composited on
// top.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.viewList(),
		m.viewEditor(),
	)
	screen := lipgloss.JoinVertical(lipgloss.Left, main, m.viewStatusBar())

	if m.menu != menuNone {
		return ui.PlaceOverlay(screen, m.viewMenu(), m.width, m.height)
	}
	if m.dialog != nil {
		return ui.PlaceOverlay(screen, m.dialog.View(), m.width, m.height)
	}
	return screen
}

func (m *Model) viewList() string {
	innerWidth := listPaneWidth - 2
	var b strings.Builder

	header := "Plume"
	if m.rec.Filter != store.FilterAll {
		header += " · " + filterLabel(m.rec.Filter)
	}
	b.WriteString(styles.TitleInput.Render(runewidth.Truncate(header, innerWidth, "…")))
	b.WriteString("\n")

	if m.searching {
		b.WriteString(styles.SearchBar.Render(m.search.View()))
		b.WriteString("\n")
	}

	rows := m.visibleRows()
	if len(rows) == 0 {
		if m.empty {
			b.WriteString(styles.EmptyState.Width(innerWidth).Render("No notes yet.\nPress n to create one."))
		} else {
			b.WriteString(styles.EmptyState.Width(innerWidth).Render("No matching notes."))
		}
		return m.framedList(b.String())
	}

	listHeight := m.height - 4
	if m.searching {
		listHeight--
	}
	maxRows := listHeight / rowHeight
	if maxRows < 1 {
		maxRows = 1
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(rows) {
		end = len(rows)
	}

	for i := start; i < end; i++ {
		b.WriteString(m.viewRow(rows[i], i == m.cursor, innerWidth))
		b.WriteString("\n")
	}
	return m.framedList(strings.TrimSuffix(b.String(), "\n"))
}

func (m *Model) framedList(content string) string {
	frame := styles.PaneBorderInactive
	if m.focus == paneList {
		frame = styles.PaneBorderActive
	}
	return frame.Width(listPaneWidth).Height(m.height - 3).Render(
		styles.ListPane.Render(content),
	)
}

func (m *Model) viewRow(row session.Row, selected bool, width int) string {
	if row.Separator {
		return styles.Separator.Render(strings.Repeat("─", width)) + "\n"
	}

	title := row.Meta.Title
	if title == "" {
		title = store.UntitledLabel
	}
	prefix := "  "
	if row.Meta.Pinned {
		prefix = "⭐ "
	}

	rowStyle := styles.ListRow
	switch {
	case row.Meta.Pinned && selected:
		rowStyle = styles.ListRowPinnedSelected
	case row.Meta.Pinned:
		rowStyle = styles.ListRowPinned
	case selected:
		rowStyle = styles.ListRowSelected
	}

	titleLine := rowStyle.Render(runewidth.Truncate(prefix+title, width, "…"))

	dateLine := "   " + row.Meta.CreatedAt.Local().Format(dateFormat)
	if e := m.cache.Get(row.Meta.ID); e != nil && len(e.Categories) > 0 {
		tags := make([]string, len(e.Categories))
		for i, c := range e.Categories {
			tags[i] = string(c)
		}
		dateLine += " · " + strings.Join(tags, ", ")
	}

	return titleLine + "\n" + styles.ListDate.Render(runewidth.Truncate(dateLine, width, "…"))
}

func (m *Model) viewEditor() string {
	frame := styles.PaneBorderInactive
	if m.focus == paneEditor {
		frame = styles.PaneBorderActive
	}

	if m.selectedID == 0 {
		return frame.Width(m.editorWidth() + 2).Height(m.height - 3).Render(
			styles.EmptyState.Width(m.editorWidth()).Render("Select a note"),
		)
	}

	title := styles.TitleInput.Render(m.titleInput.View())

	var content string
	if m.previewing {
		content = m.preview
	} else {
		content = m.body.View()
	}

	return frame.Width(m.editorWidth() + 2).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", content),
	)
}

func (m *Model) viewStatusBar() string {
	parts := []string{sortLabels[m.rec.Sort]}
	if m.cfg.UI.ShowCounter && m.selectedID != 0 {
		parts = append(parts, styles.Counter.Render(counterText(m.body.Value())))
	}
	if m.previewing {
		parts = append(parts, "preview")
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}

	line := strings.Join(parts, "  │  ")
	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "…")
	}
	return styles.StatusBar.Render(line)
}

func (m *Model) viewMenu() string {
	var b strings.Builder
	switch m.menu {
	case menuSort:
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Sort notes"))
		b.WriteString("\n\n")
		for i, s := range sortOrder {
			label := sortLabels[s]
			if s == m.rec.Sort {
				label = "• " + label
			} else {
				label = "  " + label
			}
			b.WriteString(m.menuItem(label, i == m.menuCursor))
			b.WriteString("\n")
		}
	case menuCategory:
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Categories"))
		b.WriteString("\n\n")
		assigned := map[store.Category]bool{}
		if row := m.cursorRow(); row != nil {
			if e := m.cache.Get(row.Meta.ID); e != nil {
				for _, c := range e.Categories {
					assigned[c] = true
				}
			}
		}
		for i, c := range store.Categories {
			mark := "[ ]"
			if assigned[c] {
				mark = "[x]"
			}
			b.WriteString(m.menuItem(mark+" "+string(c), i == m.menuCursor))
			b.WriteString("\n")
		}
	}
	return styles.Dialog.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m *Model) menuItem(label string, selected bool) string {
	if selected {
		return styles.MenuItemSelected.Render(label)
	}
	return styles.MenuItem.Render(label)
}

func filterLabel(f store.Category) string {
	switch f {
	case store.FilterAll:
		return "all"
	case store.FilterNoCategory:
		return "no category"
	default:
		return string(f)
	}
}
