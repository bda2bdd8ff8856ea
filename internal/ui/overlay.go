package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DimStyle recolors screen content behind a dialog. Existing ANSI codes are
// stripped first because SGR faint does not combine reliably with color
// codes across terminals.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// PlaceOverlay centers dialog over a dimmed rendering of screen.
func PlaceOverlay(screen, dialog string, width, height int) string {
	rows := screenRows(screen, width, height)
	dialogRows := strings.Split(dialog, "\n")
	dialogWidth := lipgloss.Width(dialog)

	x0 := max((width-dialogWidth)/2, 0)
	y0 := max((height-len(dialogRows))/2, 0)

	var b strings.Builder
	for y, row := range rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		d := y - y0
		if d < 0 || d >= len(dialogRows) {
			b.WriteString(DimStyle.Render(row))
			continue
		}
		b.WriteString(DimStyle.Render(ansi.Truncate(row, x0, "")))
		b.WriteString(dialogRows[d])
		if right := x0 + dialogWidth; right < width {
			b.WriteString(DimStyle.Render(ansi.Cut(row, right, width)))
		}
	}
	return b.String()
}

// screenRows normalizes the screen to height plain-text rows padded to
// width, so margins can be carved out by visual position alone.
func screenRows(screen string, width, height int) []string {
	lines := strings.Split(screen, "\n")
	rows := make([]string, height)
	for y := range rows {
		var line string
		if y < len(lines) {
			line = ansi.Strip(lines[y])
		}
		if pad := width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		rows[y] = line
	}
	return rows
}
