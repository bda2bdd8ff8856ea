// Package ui provides shared UI components for the TUI.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/soriane/plume/internal/styles"
)

// DialogResult is what the user decided.
type DialogResult int

const (
	DialogPending DialogResult = iota
	DialogConfirmed
	DialogCancelled
)

// focusable dialog elements, cycled with tab/arrows.
type dialogFocus int

const (
	focusConfirm dialogFocus = iota
	focusCancel
	focusCheckbox
)

// ConfirmDialog is a confirmation modal with yes/no buttons and an
// optional "don't ask again" checkbox.
type ConfirmDialog struct {
	Title         string
	Message       string
	ConfirmLabel  string
	CancelLabel   string
	CheckboxLabel string // empty = no checkbox
	Width         int

	focus   dialogFocus
	checked bool
}

// NewConfirmDialog creates a dialog with sensible defaults.
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: "Yes",
		CancelLabel:  "No",
		Width:        50,
	}
}

// NewInfoDialog creates a single-button informational dialog, used for
// the pin and category limit messages.
func NewInfoDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: "OK",
		Width:        50,
	}
}

// Checked reports the state of the "don't ask again" checkbox.
func (d *ConfirmDialog) Checked() bool {
	return d.checked
}

// info dialogs have no cancel button.
func (d *ConfirmDialog) isInfo() bool {
	return d.CancelLabel == ""
}

// Update handles a key press and reports the user's decision, which stays
// DialogPending until enter or esc.
func (d *ConfirmDialog) Update(msg tea.KeyMsg) DialogResult {
	switch msg.String() {
	case "esc":
		return DialogCancelled
	case "enter":
		switch d.focus {
		case focusCancel:
			return DialogCancelled
		case focusCheckbox:
			d.checked = !d.checked
			return DialogPending
		default:
			return DialogConfirmed
		}
	case "tab", "right", "down":
		d.focus = d.nextFocus(1)
	case "shift+tab", "left", "up":
		d.focus = d.nextFocus(-1)
	case " ":
		if d.focus == focusCheckbox {
			d.checked = !d.checked
		}
	case "y", "Y":
		if !d.isInfo() {
			return DialogConfirmed
		}
	case "n", "N":
		if !d.isInfo() {
			return DialogCancelled
		}
	}
	return DialogPending
}

func (d *ConfirmDialog) nextFocus(dir int) dialogFocus {
	order := []dialogFocus{focusConfirm}
	if !d.isInfo() {
		order = append(order, focusCancel)
	}
	if d.CheckboxLabel != "" {
		order = append(order, focusCheckbox)
	}
	for i, f := range order {
		if f == d.focus {
			return order[(i+dir+len(order))%len(order)]
		}
	}
	return order[0]
}

// View renders the dialog box.
func (d *ConfirmDialog) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimary).Render(d.Title)
	message := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(d.Width - 6).
		Render(d.Message)

	var buttons []string
	buttons = append(buttons, d.button(d.ConfirmLabel, focusConfirm))
	if !d.isInfo() {
		buttons = append(buttons, d.button(d.CancelLabel, focusCancel))
	}
	buttonRow := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)

	parts := []string{title, "", message, "", buttonRow}
	if d.CheckboxLabel != "" {
		parts = append(parts, "", d.checkbox())
	}

	return styles.Dialog.Width(d.Width).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)
}

func (d *ConfirmDialog) button(label string, f dialogFocus) string {
	if d.focus == f {
		return styles.DialogButtonFocus.Render(label)
	}
	return styles.DialogButton.Render(label)
}

func (d *ConfirmDialog) checkbox() string {
	mark := "[ ]"
	if d.checked {
		mark = "[x]"
	}
	line := mark + " " + d.CheckboxLabel
	if d.focus == focusCheckbox {
		return styles.DialogButtonFocus.Render(line)
	}
	return styles.DialogButton.Render(line)
}
