// Package styles holds the lipgloss styles for both themes. Apply swaps
// the active palette; the exported styles are package-level and updated in
// place, so every view picks up a theme change on its next render.
package styles

import "github.com/charmbracelet/lipgloss"

// Active palette colors (updated by Apply).
var (
	Accent        = lipgloss.Color(LightTheme.Colors.Accent)
	Highlight     = lipgloss.Color(LightTheme.Colors.Highlight)
	ErrorColor    = lipgloss.Color(LightTheme.Colors.Error)
	TextPrimary   = lipgloss.Color(LightTheme.Colors.TextPrimary)
	TextSecondary = lipgloss.Color(LightTheme.Colors.TextSecondary)
	TextMuted     = lipgloss.Color(LightTheme.Colors.TextMuted)
)

// Component styles (updated by Apply).
var (
	ListPane = lipgloss.NewStyle()

	ListRow = lipgloss.NewStyle()

	ListRowSelected = lipgloss.NewStyle().Bold(true)

	ListRowPinned = lipgloss.NewStyle()

	ListRowPinnedSelected = lipgloss.NewStyle().Bold(true)

	ListDate = lipgloss.NewStyle()

	Separator = lipgloss.NewStyle()

	TitleInput = lipgloss.NewStyle().Bold(true)

	SearchBar = lipgloss.NewStyle()

	StatusBar = lipgloss.NewStyle()

	Counter = lipgloss.NewStyle()

	EmptyState = lipgloss.NewStyle().Align(lipgloss.Center)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2)

	DialogButton = lipgloss.NewStyle().Padding(0, 2)

	DialogButtonFocus = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	MenuItem = lipgloss.NewStyle().Padding(0, 1)

	MenuItemSelected = lipgloss.NewStyle().Padding(0, 1).Bold(true)

	PaneBorderActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder())

	PaneBorderInactive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder())
)

// current is the active theme name.
var current = LightTheme.Name

// Current returns the active theme name.
func Current() string {
	return current
}

// Apply activates the named theme, rewriting every exported style.
func Apply(name string) {
	theme := ThemeByName(name)
	current = theme.Name
	c := theme.Colors

	Accent = lipgloss.Color(c.Accent)
	Highlight = lipgloss.Color(c.Highlight)
	ErrorColor = lipgloss.Color(c.Error)
	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextSecondary = lipgloss.Color(c.TextSecondary)
	TextMuted = lipgloss.Color(c.TextMuted)

	ListPane = ListPane.Background(lipgloss.Color(c.BgList))

	ListRow = ListRow.
		Foreground(TextPrimary)

	ListRowSelected = ListRowSelected.
		Foreground(lipgloss.Color(c.RowSelectedFg)).
		Background(lipgloss.Color(c.RowSelectedBg))

	ListRowPinned = ListRowPinned.
		Foreground(TextPrimary).
		Background(lipgloss.Color(c.PinnedBg))

	ListRowPinnedSelected = ListRowPinnedSelected.
		Foreground(lipgloss.Color(c.RowSelectedFg)).
		Background(lipgloss.Color(c.PinnedSelected))

	ListDate = ListDate.Foreground(TextMuted)

	Separator = Separator.Foreground(lipgloss.Color(c.SeparatorColor))

	TitleInput = TitleInput.Foreground(TextPrimary)

	SearchBar = SearchBar.Foreground(lipgloss.Color(c.TextMuted))

	StatusBar = StatusBar.Foreground(TextSecondary)

	Counter = Counter.Foreground(TextMuted)

	EmptyState = EmptyState.Foreground(TextMuted)

	Dialog = Dialog.BorderForeground(lipgloss.Color(c.DialogBorder))

	DialogButton = DialogButton.Foreground(TextSecondary)

	DialogButtonFocus = DialogButtonFocus.
		Foreground(lipgloss.Color(c.RowSelectedFg)).
		Background(lipgloss.Color(c.RowSelectedBg))

	MenuItem = MenuItem.Foreground(TextSecondary)

	MenuItemSelected = MenuItemSelected.
		Foreground(lipgloss.Color(c.RowSelectedFg)).
		Background(lipgloss.Color(c.RowSelectedBg))

	PaneBorderActive = PaneBorderActive.BorderForeground(Accent)

	PaneBorderInactive = PaneBorderInactive.BorderForeground(lipgloss.Color(c.SeparatorColor))
}

func init() {
	Apply(LightTheme.Name)
}
